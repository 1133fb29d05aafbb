package sonarr

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Concurrency bounds for sweep operations
const (
	DefaultConcurrency = 5
	MaxConcurrency     = 20
)

// Sweep steps reported in SweepError
const (
	StepUnmonitor  = "unmonitor"
	StepDeleteFile = "delete file"
)

// BatchResult contains the results of a sweep
type BatchResult struct {
	Requested  int
	Successful []int64
	Failed     []SweepError
}

// SweepError contains information about a failed episode sweep
type SweepError struct {
	EpisodeID int64
	Episode   string
	Step      string
	Err       error
}

// Error implements the error interface
func (e SweepError) Error() string {
	return fmt.Sprintf("failed to %s for episode %s (ID: %d): %v", e.Step, e.Episode, e.EpisodeID, e.Err)
}

func (e SweepError) Unwrap() error {
	return e.Err
}

// batchSweep sweeps episodes concurrently. Each episode is independent: a
// failure is recorded and the rest carry on.
func (o *Operations) batchSweep(ctx context.Context, episodes []EpisodeDetails, opts SweepOptions) *BatchResult {
	result := &BatchResult{
		Requested: len(episodes),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrencyLimit(opts.Concurrency))

	successChan := make(chan int64, len(episodes))
	errorChan := make(chan SweepError, len(episodes))

	for _, ep := range episodes {
		g.Go(func() error {
			if err := o.sweepEpisode(ctx, ep, opts); err != nil {
				errorChan <- *err
			} else {
				successChan <- ep.Episode.ID
			}
			return nil // Don't stop on individual errors
		})
	}

	_ = g.Wait()
	close(successChan)
	close(errorChan)

	for id := range successChan {
		result.Successful = append(result.Successful, id)
	}
	for err := range errorChan {
		result.Failed = append(result.Failed, err)
	}

	slices.Sort(result.Successful)
	slices.SortFunc(result.Failed, func(a, b SweepError) int {
		return cmp.Compare(a.EpisodeID, b.EpisodeID)
	})

	return result
}

// sweepEpisode unmonitors before deleting so Sonarr does not grab the episode
// again in between.
func (o *Operations) sweepEpisode(ctx context.Context, ep EpisodeDetails, opts SweepOptions) *SweepError {
	episode := ep.Episode
	fail := func(step string, err error) *SweepError {
		return &SweepError{
			EpisodeID: episode.ID,
			Episode:   fmt.Sprintf("%s %s", ep.SeriesTitle, episode.Label()),
			Step:      step,
			Err:       err,
		}
	}

	if opts.Unmonitor && episode.Monitored {
		if err := o.api.UnmonitorEpisode(ctx, episode.ID); err != nil {
			return fail(StepUnmonitor, err)
		}
	}

	if opts.DeleteFiles && episode.HasFile() {
		if err := o.api.DeleteEpisodeFile(ctx, *episode.EpisodeFileID); err != nil {
			return fail(StepDeleteFile, err)
		}
	}

	o.logger.Debug().
		Int64("episode_id", episode.ID).
		Str("episode", episode.Label()).
		Msg("Swept episode")
	return nil
}

func concurrencyLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultConcurrency
	case n > MaxConcurrency:
		return MaxConcurrency
	}
	return n
}
