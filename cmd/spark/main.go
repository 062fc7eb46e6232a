package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

var (
	configPath  string
	debug       bool
	dataDir     string
	startScreen string

	cfg     appConfig
	logger  = zap.NewNop()
	syncLog = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "spark",
	Short: "Spark - see who and what is nearby",
	Long: `Spark is a terminal discovery app: a live map of busy venues, a deck of
people nearby to swipe through, an inbox of spark requests and your profile.

Run without arguments to start the interactive interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cmd.Flags().Changed("debug") {
			cfg.Debug = debug
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
		if startScreen != "" {
			if !validScreens[startScreen] {
				return fmt.Errorf("invalid --start: %q", startScreen)
			}
			cfg.StartScreen = startScreen
		}
		logger, syncLog = configureRuntimeLogger(cfg.LogFile, cfg.Debug)
		logger.Info("starting", zap.String("version", version), zap.String("config", cfg.ConfigPath))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		syncLog()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context(), cfg, logger)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Spark - Terminal Discovery\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is $HOME/.config/spark/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log at debug level")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory with YAML files overriding the built-in sample data")
	rootCmd.Flags().StringVar(&startScreen, "start", "", "screen to open first: map, discover, sparks or profile")

	rootCmd.AddCommand(versionCmd, venuesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
