package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/chris-regnier/gdeltctl/internal/config"
	"github.com/chris-regnier/gdeltctl/internal/gdelt"
	"github.com/chris-regnier/gdeltctl/internal/mcptools"
	"github.com/chris-regnier/gdeltctl/internal/telemetry"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X .../cmd.version=...".
var version = "dev"

var (
	cfgFile    string
	jsonOutput bool
	logLevel   string
	appConfig  *config.Config
	logger     *slog.Logger
	dispatcher *mcptools.Dispatcher

	shutdownTelemetry = func(context.Context) error { return nil }
)

var rootCmd = newCommandTree()

func init() {
	rootCmd.PersistentPreRunE = setupRuntime
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return shutdownTelemetry(ctx)
	}
}

// newCommandTree builds the command hierarchy without runtime setup hooks.
// Subcommands read the package-level dispatcher and config.
func newCommandTree() *cobra.Command {
	root := &cobra.Command{
		Use:   "gdeltctl",
		Short: "Query the GDELT news APIs from the terminal or over MCP",
		Long: `gdeltctl exposes the GDELT DOC 2.0 and GEO 2.0 APIs as six tools:
article search, coverage timelines, tone histograms, geographic points,
image-bearing articles and a short-window monitor.

Run the tools directly from the command line, or serve them to an MCP
client with "gdeltctl mcp-serve".`,
		Version: version,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output structured content as JSON")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug|info|warn|error), overrides config")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	root.SilenceErrors = true
	root.SilenceUsage = true

	root.AddCommand(
		newSearchCmd(),
		newTimelineCmd(),
		newToneCmd(),
		newGeoCmd(),
		newImagesCmd(),
		newMonitorCmd(),
		newToolsCmd(),
		newConfigCmd(),
		newMCPServeCmd(),
	)
	return root
}

func setupRuntime(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	appConfig = cfg

	// stdout is reserved for command output and the MCP stdio protocol
	logger, err = telemetry.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	shutdown, err := telemetry.Setup(cmd.Context(), cfg.OTelEndpoint, version)
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	shutdownTelemetry = shutdown

	dispatcher = newDispatcher(cfg, logger)
	return nil
}

func newDispatcher(cfg *config.Config, logger *slog.Logger) *mcptools.Dispatcher {
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "gdeltctl/" + version
	}
	client := gdelt.NewClient(gdelt.Options{
		DocURL:     cfg.DocAPIURL,
		GeoURL:     cfg.GeoAPIURL,
		UserAgent:  userAgent,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		Logger:     logger,
	})
	return mcptools.NewDispatcher(mcptools.NewRegistry(client), logger)
}

// Execute runs the root command and reports any error on stderr.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
