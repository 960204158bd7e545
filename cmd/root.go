// Package cmd provides the root command and CLI setup for stakeout.
package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mouse-blink/stakeout/internal/adapter"
	"github.com/mouse-blink/stakeout/internal/controller"
	"github.com/mouse-blink/stakeout/internal/domain"
)

var fsAdapter adapter.SourceFSAdapter
var goFileAdapter adapter.GoFileAdapter
var storeAdapter adapter.StoreAdapter
var runnerAdapter adapter.RunnerAdapter
var highlighter adapter.Highlighter
var planner domain.Planner
var transformer domain.Transformer
var preflight domain.Preflight
var orchestrator domain.Orchestrator
var triager domain.Triager
var reconstructor domain.Reconstructor
var sourceView *domain.SourceView
var ui controller.UI
var logger zerolog.Logger

var verboseFlag bool

func init() {
	initConfig()

	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()

	fsAdapter = adapter.NewLocalSourceFSAdapter()
	goFileAdapter = adapter.NewLocalGoFileAdapter()
	storeAdapter = adapter.NewFileStoreAdapter(viper.GetString("workdir"))
	runnerAdapter = adapter.NewLocalRunnerAdapter(viper.GetString("gobin"))
	highlighter = adapter.NewChromaHighlighter(viper.GetString("style"))
	planner = domain.NewPlanner(storeAdapter)
	transformer = domain.NewTransformer(goFileAdapter, planner)
	preflight = domain.NewPreflight(fsAdapter, goFileAdapter, runnerAdapter)
	orchestrator = domain.NewOrchestrator(fsAdapter, transformer, planner, preflight, logger)
	triager = domain.NewTriager()
	reconstructor = domain.NewReconstructor(highlighter)
	sourceView = domain.NewSourceView(fsAdapter, transformer, highlighter)
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))

	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
}

// initConfig loads .stakeout.yaml from the working directory plus STAKEOUT_*
// environment overrides. A missing config file is the normal case.
func initConfig() {
	viper.SetConfigName(".stakeout")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("STAKEOUT")
	viper.AutomaticEnv()

	viper.SetDefault("workdir", ".stakeout")
	viper.SetDefault("debugger", string(defaultDebugger()))
	viper.SetDefault("gobin", "go")
	viper.SetDefault("style", "monokai")

	_ = viper.ReadInConfig()
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stakeout",
		Short: "Prepare a failing test for an interactive debugging session",
		Long: `Stakeout turns one failing test into a debugger-ready standalone harness:
it strips timeout hazards, injects trace-entry statements at the right
source locations, preflights the rewritten file, and falls back to
fixture-setup injection when the direct approach cannot work.

The triage commands consume raw tracebacks and execution traces from a
test run and reduce them to what an engineer should actually look at.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verboseFlag {
				logger = logger.Level(zerolog.DebugLevel)
			}
		},
	}
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
