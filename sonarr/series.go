package sonarr

import (
	"context"
	"fmt"
	"net/http"
)

// SeriesByTVDBID returns the series Sonarr knows for a TVDB ID, in the order
// the server returned them. No match is an empty slice, not an error.
func (c *Client) SeriesByTVDBID(ctx context.Context, tvdbID string) ([]SeriesInfo, error) {
	var series []SeriesInfo
	err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "series",
		query:    map[string]string{"tvdbId": tvdbID},
	}, &series)
	if err != nil {
		return nil, fmt.Errorf("failed to look up series for TVDB ID %s: %w", tvdbID, err)
	}
	if series == nil {
		series = []SeriesInfo{}
	}

	c.logger.Debug().Str("tvdb_id", tvdbID).Msgf("Retrieved %d series from Sonarr", len(series))
	return series, nil
}

// Tags retrieves all tags from Sonarr
func (c *Client) Tags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	if err := c.do(ctx, request{method: http.MethodGet, endpoint: "tag"}, &tags); err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	if tags == nil {
		tags = []Tag{}
	}

	c.logger.Debug().Msgf("Retrieved %d tags from Sonarr", len(tags))
	return tags, nil
}

// SystemStatus retrieves the Sonarr application name and version
func (c *Client) SystemStatus(ctx context.Context) (*SystemStatus, error) {
	var status SystemStatus
	if err := c.do(ctx, request{method: http.MethodGet, endpoint: "system/status"}, &status); err != nil {
		return nil, fmt.Errorf("failed to get system status: %w", err)
	}
	return &status, nil
}
