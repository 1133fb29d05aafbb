package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/sonarr-sweep/filter"
	"github.com/s0up4200/sonarr-sweep/sonarr"
)

// episodesCmd represents the episodes command
var episodesCmd = &cobra.Command{
	Use:   "episodes <tvdb-id>",
	Short: "List episodes of a series matching the filter criteria",
	Long: `List the episodes of every Sonarr series with the given TVDB ID that match
the filter expression. Without a filter every episode is listed.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runEpisodes,
}

// deleteFileCmd represents the delete-file command
var deleteFileCmd = &cobra.Command{
	Use:     "delete-file <episode-file-id>",
	Short:   "Delete a single episode file from disk",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runDeleteFile,
}

// unmonitorCmd represents the unmonitor command
var unmonitorCmd = &cobra.Command{
	Use:     "unmonitor <episode-id>",
	Short:   "Unmonitor a single episode",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runUnmonitor,
}

// sweepCmd represents the sweep command
var sweepCmd = &cobra.Command{
	Use:   "sweep <tvdb-id>",
	Short: "Unmonitor matching episodes and delete their files",
	Long: `Unmonitor the episodes of a series that match the filter expression and
delete their files from disk.

A filter is required; use --filter "true" to sweep every episode.
Dry-run is on by default in the config; pass --dry-run=false to apply.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runSweep,
}

func init() {
	rootCmd.AddCommand(episodesCmd)
	rootCmd.AddCommand(deleteFileCmd)
	rootCmd.AddCommand(unmonitorCmd)
	rootCmd.AddCommand(sweepCmd)

	episodesCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	episodesCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")

	sweepCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	sweepCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	sweepCmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "skip confirmation prompt")
	sweepCmd.Flags().BoolVar(&keepFiles, "keep-files", false, "do not delete episode files")
	sweepCmd.Flags().BoolVar(&keepMonitored, "keep-monitored", false, "do not unmonitor episodes")
}

func runEpisodes(cmd *cobra.Command, args []string) error {
	f, expr, err := resolveFilter()
	if err != nil {
		return err
	}

	var match func(sonarr.EpisodeDetails) bool
	if f != nil {
		match = f.Evaluate
	}

	logger.Info().Str("tvdb_id", args[0]).Str("filter", expr).Msg("Searching episodes")

	episodes, err := operations.SearchEpisodes(cmd.Context(), args[0], match)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), operations.Formatter().FormatEpisodeList(episodes))
	return nil
}

func runDeleteFile(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "episode file ID")
	if err != nil {
		return err
	}

	if cfg.Safety.DryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "DRY RUN: would delete episode file %d\n", id)
		return nil
	}

	if err := sonarrClient.DeleteEpisodeFile(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted episode file %d\n", id)
	return nil
}

func runUnmonitor(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "episode ID")
	if err != nil {
		return err
	}

	if cfg.Safety.DryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "DRY RUN: would unmonitor episode %d\n", id)
		return nil
	}

	if err := sonarrClient.UnmonitorEpisode(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Unmonitored episode %d\n", id)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	f, expr, err := resolveFilter()
	if err != nil {
		return err
	}
	if f == nil {
		return fmt.Errorf("no filter expression specified; use --filter \"true\" to sweep every episode")
	}

	logger.Info().Str("tvdb_id", args[0]).Str("filter", expr).Msg("Searching episodes to sweep")

	ctx := cmd.Context()
	episodes, err := operations.SearchEpisodes(ctx, args[0], nil)
	if err != nil {
		return err
	}

	var matches []sonarr.EpisodeDetails
	if filterExpr == "" && preset != "" {
		matches, err = presets.EvaluateFilter(ctx, preset, episodes)
	} else {
		matches, err = filter.Apply(ctx, f, episodes)
	}
	if err != nil {
		return err
	}

	opts := sonarr.SweepOptions{
		DryRun:        cfg.Safety.DryRun,
		DeleteFiles:   cfg.Sweep.DeleteFiles && !keepFiles,
		Unmonitor:     cfg.Sweep.Unmonitor && !keepMonitored,
		ConfirmDelete: cfg.Safety.ConfirmDelete && !noConfirm,
		Concurrency:   cfg.Sweep.Concurrency,
	}

	result, err := operations.SweepEpisodes(ctx, matches, opts)
	if err != nil {
		return err
	}

	if !opts.DryRun && len(result.Successful) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Swept %d of %d episodes\n", len(result.Successful), result.Requested)
	}
	return nil
}

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", what, arg)
	}
	return id, nil
}
