// Package cmd holds the sapbridge CLI: a long-running bridge server plus
// one-shot operator commands for the same transactions.
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zeusmes/sapbridge/internal/bridge"
	"github.com/zeusmes/sapbridge/internal/config"
	"github.com/zeusmes/sapbridge/internal/sapgui"
	"github.com/zeusmes/sapbridge/internal/telemetry"
	"github.com/zeusmes/sapbridge/internal/version"
)

var log zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "sapbridge",
	Short: "Bridge between the Zeus orchestrator and a live SAP GUI session",
	Long: `sapbridge drives a running SAP GUI client through its scripting
interface, turning Zeus business requests (create / release process orders)
into COR1/COR2 UI automation against the single live session.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (default from LOG_LEVEL env, else info)")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			level = os.Getenv("LOG_LEVEL")
		}
		log = setupLogging(level)
	}
}

func setupLogging(level string) zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	switch level {
	case "debug":
		logger = logger.Level(zerolog.DebugLevel)
	case "warn":
		logger = logger.Level(zerolog.WarnLevel)
	case "error":
		logger = logger.Level(zerolog.ErrorLevel)
	default:
		logger = logger.Level(zerolog.InfoLevel)
	}
	return logger
}

// loadConfig reads the --config file over the built-in defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// newBridge wires the service layer the way every command needs it.
func newBridge(cfg *config.Config) (*bridge.Bridge, *telemetry.Metrics) {
	metrics := telemetry.New()
	b := bridge.New(log, cfg, metrics, sapgui.NewConnector())
	return b, metrics
}
