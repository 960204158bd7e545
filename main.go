package main

import "github.com/mouse-blink/stakeout/cmd"

func main() {
	cmd.Execute()
}
