package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	m "github.com/mouse-blink/stakeout/internal/model"
)

var framesTestFile string
var framesRaw bool
var failLineFile string
var failLineMethod string
var originTestFile string

func init() {
	framesCmd.Flags().StringVarP(&framesTestFile, "test-file", "t", "", "test file the traceback belongs to (required)")
	framesCmd.Flags().BoolVar(&framesRaw, "raw", false, "print plain frame records instead of a table")

	if err := framesCmd.MarkFlagRequired("test-file"); err != nil {
		panic(err)
	}

	failLineCmd.Flags().StringVarP(&failLineFile, "file", "f", "", "target file whose frames to match (required)")
	failLineCmd.Flags().StringVarP(&failLineMethod, "method", "m", "", "test method name (required)")

	for _, flag := range []string{"file", "method"} {
		if err := failLineCmd.MarkFlagRequired(flag); err != nil {
			panic(err)
		}
	}

	originCmd.Flags().StringVarP(&originTestFile, "test-file", "t", "", "test file the traceback belongs to (required)")

	if err := originCmd.MarkFlagRequired("test-file"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(framesCmd)
	rootCmd.AddCommand(failLineCmd)
	rootCmd.AddCommand(originCmd)
}

var framesCmd = &cobra.Command{
	Use:   "frames",
	Short: "Reduce a traceback on stdin to the frames worth looking at",
	Long: `Frames reads a raw traceback from stdin, drops runner scaffolding,
keeps test and user frames, and stops at the first library frame. The
result is the slice of the call chain an engineer should actually
inspect.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readAll(cmd.InOrStdin())
		if err != nil {
			return err
		}

		report := triager.BuildReport(text, m.Path(framesTestFile))
		frames := report.Frames

		if framesRaw {
			for _, f := range frames {
				cmd.Printf("File %q, line %d, in %s\n", f.File, f.Line, f.Func)
			}

			return nil
		}

		if report.Message != "" {
			cmd.Printf("%s failure: %s\n", report.Kind, report.Message)
		}

		classes := make([]m.FrameClass, len(frames))
		for i, f := range frames {
			classes[i] = triager.Classify(f, m.Path(framesTestFile))
		}

		if err := ui.Start(); err != nil {
			return err
		}
		defer ui.Close()

		return ui.DisplayFrames(frames, classes)
	},
}

var failLineCmd = &cobra.Command{
	Use:   "fail-line",
	Short: "Extract the failing line number from a traceback on stdin",
	Long: `Fail-line reads a raw traceback from stdin and prints the line of the
last frame matching the target file and method. Prints 0 when no frame
matches; 0 is never a valid line number.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readAll(cmd.InOrStdin())
		if err != nil {
			return err
		}

		cmd.Println(triager.FailLine(text, m.Path(failLineFile), failLineMethod))

		return nil
	},
}

var originCmd = &cobra.Command{
	Use:   "origin",
	Short: "Find where in user code the error on stdin originates",
	Long: `Origin reads a raw traceback from stdin and prints the deepest frame
that belongs to the user's own source, as "file:line". Prints nothing
when the error never left the test file or library code.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readAll(cmd.InOrStdin())
		if err != nil {
			return err
		}

		file, line := triager.UserErrorLocation(text, m.Path(originTestFile))
		if file == "" {
			return nil
		}

		cmd.Printf("%s:%d\n", file, line)

		return nil
	},
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return string(data), nil
}
