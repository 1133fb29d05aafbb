package sonarr

import (
	"context"
)

//go:generate mockgen -destination=mocks/mock_api.go -package=mocks github.com/s0up4200/sonarr-sweep/sonarr EpisodeAPI

// EpisodeAPI defines the Sonarr operations the sweep relies on
type EpisodeAPI interface {
	// Series operations
	SeriesByTVDBID(ctx context.Context, tvdbID string) ([]SeriesInfo, error)

	// Tag operations
	Tags(ctx context.Context) ([]Tag, error)

	// Episode operations
	EpisodesBySeries(ctx context.Context, seriesID int64) ([]EpisodeInfo, error)
	UnmonitorEpisode(ctx context.Context, episodeID int64) error

	// File operations
	DeleteEpisodeFile(ctx context.Context, episodeFileID int64) error
}

var _ EpisodeAPI = (*Client)(nil)

// EpisodeFormatter defines the interface for formatting episode output
type EpisodeFormatter interface {
	FormatSeriesList(series []SeriesDetails) string
	FormatEpisodeList(episodes []EpisodeDetails) string
	FormatSweepPlan(episodes []EpisodeDetails, opts SweepOptions) string
}
