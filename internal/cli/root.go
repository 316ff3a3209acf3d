package cli

import (
	"log/slog"
	"os"

	"github.com/me/slicecfg/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	client *Client
)

// defaultServer returns the default server URL, checking SLICECFG_SERVER env var first.
func defaultServer() string {
	if s := os.Getenv("SLICECFG_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

// NewRootCmd creates the root cobra command for the slicecfg CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "slicecfg",
		Short: "Slicer configuration presets, profiles and slice jobs",
		Long: "slicecfg renders slicer configurations for MiracleGrue and Skeinforge, " +
			"manages named profiles on a slicecfg server, and runs slicing jobs locally.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.FromFlags(flagLogLevel, flagLogFormat, flagDebug)
			client = NewClient(flagServer, logger)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "slicecfg server URL (or SLICECFG_SERVER env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newPresetCmd(),
		newDefaultsCmd(),
		newProfilesCmd(),
		newSliceCmd(),
	)

	return root
}
