package sonarr

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// SeriesDetails is a series with its tag IDs resolved to labels
type SeriesDetails struct {
	Series   SeriesInfo
	TagNames []string
}

// EpisodeDetails is an episode together with the series context filters need
type EpisodeDetails struct {
	Episode     EpisodeInfo
	SeriesTitle string
	TagNames    []string
}

// SweepOptions contains options for sweeping episodes
type SweepOptions struct {
	DryRun        bool
	DeleteFiles   bool
	Unmonitor     bool
	ConfirmDelete bool
	Concurrency   int
}

// Operations handles episode search and sweep operations
type Operations struct {
	api       EpisodeAPI
	logger    zerolog.Logger
	formatter EpisodeFormatter
	out       io.Writer
	confirm   func(prompt string) bool
}

// OperationsOption configures Operations
type OperationsOption func(*Operations)

// WithOutput sets where plans and listings are printed
func WithOutput(w io.Writer) OperationsOption {
	return func(o *Operations) {
		o.out = w
	}
}

// WithConfirm replaces the interactive confirmation prompt
func WithConfirm(confirm func(prompt string) bool) OperationsOption {
	return func(o *Operations) {
		o.confirm = confirm
	}
}

// WithFormatter sets a custom formatter
func WithFormatter(formatter EpisodeFormatter) OperationsOption {
	return func(o *Operations) {
		o.formatter = formatter
	}
}

// NewOperations creates a new Operations instance
func NewOperations(api EpisodeAPI, logger zerolog.Logger, opts ...OperationsOption) *Operations {
	o := &Operations{
		api:       api,
		logger:    logger,
		formatter: NewConsoleFormatter(),
		out:       os.Stdout,
	}
	o.confirm = o.promptConfirm

	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Formatter returns the formatter used for output
func (o *Operations) Formatter() EpisodeFormatter {
	return o.formatter
}

// FindSeries looks up the series for a TVDB ID and resolves their tag labels
func (o *Operations) FindSeries(ctx context.Context, tvdbID string) ([]SeriesDetails, error) {
	series, err := o.api.SeriesByTVDBID(ctx, tvdbID)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return []SeriesDetails{}, nil
	}
	if len(series) > 1 {
		o.logger.Warn().
			Str("tvdb_id", tvdbID).
			Int("count", len(series)).
			Msg("TVDB ID matches more than one series")
	}

	tags, err := o.api.Tags(ctx)
	if err != nil {
		return nil, err
	}
	labels := make(map[int64]string, len(tags))
	for _, tag := range tags {
		labels[tag.ID] = tag.Label
	}

	results := make([]SeriesDetails, 0, len(series))
	for _, s := range series {
		details := SeriesDetails{Series: s, TagNames: make([]string, 0, len(s.Tags))}
		for _, id := range s.Tags {
			if label, ok := labels[id]; ok {
				details.TagNames = append(details.TagNames, label)
			}
		}
		results = append(results, details)
	}
	return results, nil
}

// SearchEpisodes returns the episodes of every series matching tvdbID for which
// match returns true, ordered by series, season and episode. A nil match
// selects every episode.
func (o *Operations) SearchEpisodes(ctx context.Context, tvdbID string, match func(EpisodeDetails) bool) ([]EpisodeDetails, error) {
	series, err := o.FindSeries(ctx, tvdbID)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		o.logger.Info().Str("tvdb_id", tvdbID).Msg("No series found for TVDB ID")
		return []EpisodeDetails{}, nil
	}

	var results []EpisodeDetails
	for _, s := range series {
		episodes, err := o.api.EpisodesBySeries(ctx, s.Series.ID)
		if err != nil {
			return nil, err
		}

		for _, ep := range episodes {
			details := EpisodeDetails{
				Episode:     ep,
				SeriesTitle: s.Series.Title,
				TagNames:    s.TagNames,
			}
			if match == nil || match(details) {
				results = append(results, details)
			}
		}
	}

	slices.SortStableFunc(results, compareEpisodes)

	o.logger.Info().Msgf("Found %d episodes matching filter", len(results))
	return results, nil
}

func compareEpisodes(a, b EpisodeDetails) int {
	if a.Episode.SeriesID != b.Episode.SeriesID {
		return compareInt64(a.Episode.SeriesID, b.Episode.SeriesID)
	}
	if a.Episode.SeasonNumber != b.Episode.SeasonNumber {
		return a.Episode.SeasonNumber - b.Episode.SeasonNumber
	}
	return a.Episode.EpisodeNumber - b.Episode.EpisodeNumber
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// SweepEpisodes unmonitors the given episodes and deletes their files.
//
// Episodes with nothing to do under opts are skipped. Failures of individual
// episodes do not stop the others; they are collected in the result and
// reported as an error once all episodes were processed.
func (o *Operations) SweepEpisodes(ctx context.Context, episodes []EpisodeDetails, opts SweepOptions) (*BatchResult, error) {
	if !opts.DeleteFiles && !opts.Unmonitor {
		return nil, fmt.Errorf("nothing to do: file deletion and unmonitoring are both disabled")
	}

	planned := make([]EpisodeDetails, 0, len(episodes))
	for _, ep := range episodes {
		if needsSweep(ep.Episode, opts) {
			planned = append(planned, ep)
		}
	}

	if len(planned) == 0 {
		o.logger.Info().Msg("No episodes to sweep")
		return &BatchResult{}, nil
	}

	if opts.DryRun {
		o.logger.Info().Msg("DRY RUN MODE - No episodes will be changed")
		fmt.Fprint(o.out, o.formatter.FormatSweepPlan(planned, opts))
		return &BatchResult{Requested: len(planned)}, nil
	}

	if opts.ConfirmDelete {
		fmt.Fprint(o.out, o.formatter.FormatSweepPlan(planned, opts))
		prompt := fmt.Sprintf("\nAre you sure you want to sweep %d episode(s)? [y/N]: ", len(planned))
		if !o.confirm(prompt) {
			o.logger.Info().Msg("Sweep cancelled by user")
			return &BatchResult{}, nil
		}
	}

	result := o.batchSweep(ctx, planned, opts)

	o.logger.Info().
		Int("swept", len(result.Successful)).
		Int("failed", len(result.Failed)).
		Msg("Sweep complete")

	for _, failure := range result.Failed {
		o.logger.Error().
			Err(failure.Err).
			Int64("episode_id", failure.EpisodeID).
			Str("episode", failure.Episode).
			Str("step", failure.Step).
			Msg("Failed to sweep episode")
	}

	if len(result.Failed) > 0 {
		return result, fmt.Errorf("failed to sweep %d of %d episodes", len(result.Failed), result.Requested)
	}
	return result, nil
}

// needsSweep reports whether opts would change anything for the episode
func needsSweep(ep EpisodeInfo, opts SweepOptions) bool {
	return (opts.Unmonitor && ep.Monitored) || (opts.DeleteFiles && ep.HasFile())
}

// promptConfirm asks on stdin. Without a terminal there is nobody to ask, so
// the answer is no.
func (o *Operations) promptConfirm(prompt string) bool {
	fd := os.Stdin.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		o.logger.Warn().Msg("Confirmation required but stdin is not a terminal; use --no-confirm to proceed")
		return false
	}

	fmt.Fprint(o.out, prompt)

	response, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.ToLower(strings.TrimSpace(response)) == "y"
}
