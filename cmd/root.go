package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/sonarr-sweep/config"
	"github.com/s0up4200/sonarr-sweep/filter"
	"github.com/s0up4200/sonarr-sweep/sonarr"
)

var (
	cfgFile      string
	cfg          *config.Config
	logger       zerolog.Logger
	sonarrClient *sonarr.Client
	operations   *sonarr.Operations
	presets      *filter.Manager

	// Command flags
	filterExpr    string
	preset        string
	dryRun        bool
	noConfirm     bool
	keepFiles     bool
	keepMonitored bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sonarr-sweep",
	Short: "Unmonitor watched Sonarr episodes and remove their files",
	Long: `sonarr-sweep is a CLI tool that finds episodes of a series in Sonarr by
TVDB ID, narrows them down with a filter expression, and unmonitors them and
deletes their files so Sonarr does not download them again.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "d", false, "perform a dry run without making changes")

	// Add subcommands
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(tagsCmd)
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	// Override dry-run from command line if specified
	if cmd.Flags().Changed("dry-run") {
		cfg.Safety.DryRun = dryRun
	}

	sonarrClient, err = sonarr.NewClient(cfg.Sonarr.URL, cfg.Sonarr.APIKey, logger,
		sonarr.WithTimeout(cfg.Sonarr.Timeout),
		sonarr.WithUserAgent("sonarr-sweep/"+appVersion),
		sonarr.WithDebug(strings.EqualFold(cfg.Logging.Level, "debug")),
	)
	if err != nil {
		return fmt.Errorf("failed to create Sonarr client: %w", err)
	}

	operations = sonarr.NewOperations(sonarrClient, logger, sonarr.WithOutput(cmd.OutOrStdout()))

	presets = filter.NewManager()
	if err := presets.RegisterFilters(cfg.Filter.PresetExpressions()); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Colors only make sense on a terminal
	fd := os.Stderr.Fd()
	color := cfg.Color && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:     "test",
	Short:   "Test connection to Sonarr",
	Long:    `Test the connection to your Sonarr instance and display basic information.`,
	PreRunE: initializeApp,
	RunE:    runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Testing connection to Sonarr at %s...\n", sonarrClient.BaseURL())

	ctx := cmd.Context()
	status, err := sonarrClient.SystemStatus(ctx)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	fmt.Fprintln(out, "✓ Connection successful!")

	tags, err := sonarrClient.Tags(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s Statistics:\n", status.AppName)
	fmt.Fprintf(out, "- Version: %s\n", status.Version)
	fmt.Fprintf(out, "- Total tags: %d\n", len(tags))

	if len(tags) > 0 {
		fmt.Fprintf(out, "\nAvailable tags:\n")
		for _, tag := range tags {
			fmt.Fprintf(out, "  • %s (ID: %d)\n", tag.Label, tag.ID)
		}
	}

	if names := presets.ListFilters(); len(names) > 0 {
		fmt.Fprintf(out, "\nFilter presets: %s\n", strings.Join(names, ", "))
	}

	return nil
}

// seriesCmd represents the series command
var seriesCmd = &cobra.Command{
	Use:     "series <tvdb-id>",
	Short:   "Show the Sonarr series for a TVDB ID",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runSeries,
}

func runSeries(cmd *cobra.Command, args []string) error {
	series, err := operations.FindSeries(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), operations.Formatter().FormatSeriesList(series))
	return nil
}

// tagsCmd represents the tags command
var tagsCmd = &cobra.Command{
	Use:     "tags",
	Short:   "List all Sonarr tags",
	Args:    cobra.NoArgs,
	PreRunE: initializeApp,
	RunE:    runTags,
}

func runTags(cmd *cobra.Command, args []string) error {
	tags, err := sonarrClient.Tags(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(tags) == 0 {
		fmt.Fprintln(out, "No tags found")
		return nil
	}
	for _, tag := range tags {
		fmt.Fprintf(out, "%d\t%s\n", tag.ID, tag.Label)
	}
	return nil
}

// resolveFilter determines the filter to use.
// Priority: command line filter > preset > configured default. A nil filter
// means none was given.
func resolveFilter() (filter.Filter, string, error) {
	if filterExpr != "" {
		f, err := filter.CompileFilter(filterExpr)
		if err != nil {
			return nil, "", fmt.Errorf("invalid filter expression: %w", err)
		}
		return f, f.Expression(), nil
	}

	if preset != "" {
		f, ok := presets.GetFilter(preset)
		if !ok {
			return nil, "", &filter.UnknownPresetError{Name: preset, Available: presets.ListFilters()}
		}
		return f, f.Expression(), nil
	}

	if cfg.Filter.DefaultExpression != "" {
		f, err := filter.CompileFilter(cfg.Filter.DefaultExpression)
		if err != nil {
			return nil, "", fmt.Errorf("invalid filter.default_expression: %w", err)
		}
		return f, f.Expression(), nil
	}

	return nil, "", nil
}
