package sonarr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// EpisodesBySeries retrieves all episodes of a series. An unknown series ID is
// not checked here; whatever Sonarr answers is returned.
func (c *Client) EpisodesBySeries(ctx context.Context, seriesID int64) ([]EpisodeInfo, error) {
	var episodes []EpisodeInfo
	err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "episode",
		query:    map[string]string{"seriesId": formatID(seriesID)},
	}, &episodes)
	if err != nil {
		return nil, fmt.Errorf("failed to get episodes for series ID %d: %w", seriesID, err)
	}
	if episodes == nil {
		episodes = []EpisodeInfo{}
	}

	c.logger.Debug().Int64("series_id", seriesID).Msgf("Retrieved %d episodes from Sonarr", len(episodes))
	return episodes, nil
}

// DeleteEpisodeFile deletes an episode file, removing the media from disk.
// Deleting the same ID twice fails the second time.
func (c *Client) DeleteEpisodeFile(ctx context.Context, episodeFileID int64) error {
	err := c.do(ctx, request{
		method:   http.MethodDelete,
		endpoint: "episodefile/{id}",
		path:     map[string]string{"id": formatID(episodeFileID)},
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to delete episode file ID %d: %w", episodeFileID, err)
	}

	c.logger.Info().Int64("episode_file_id", episodeFileID).Msg("Successfully deleted episode file")
	return nil
}

// Episode retrieves a single episode with all of its fields. A body that is
// null or describes another episode is a decode error.
func (c *Client) Episode(ctx context.Context, episodeID int64) (*EpisodeInfo, error) {
	var episode EpisodeInfo
	err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "episode/{id}",
		path:     map[string]string{"id": formatID(episodeID)},
	}, &episode)
	if err == nil {
		err = checkEpisodeRecord(&episode, episodeID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get episode ID %d: %w", episodeID, err)
	}
	return &episode, nil
}

func checkEpisodeRecord(episode *EpisodeInfo, episodeID int64) error {
	switch {
	case episode.fields == nil:
		return &DecodeError{Endpoint: "episode/{id}", Err: errors.New("empty episode record")}
	case episode.ID != episodeID:
		return &DecodeError{
			Endpoint: "episode/{id}",
			Err:      fmt.Errorf("record has id %d, requested %d", episode.ID, episodeID),
		}
	}
	return nil
}

// UpdateEpisode replaces the episode resource with the given record. Sonarr
// has no partial update, so the record must be complete: pass one obtained
// from Episode.
func (c *Client) UpdateEpisode(ctx context.Context, episode *EpisodeInfo) error {
	if episode.ID <= 0 {
		return fmt.Errorf("failed to update episode: invalid episode ID %d", episode.ID)
	}
	return c.putEpisode(ctx, episode.ID, episode)
}

// putEpisode writes episode to the resource of episodeID
func (c *Client) putEpisode(ctx context.Context, episodeID int64, episode *EpisodeInfo) error {
	err := c.do(ctx, request{
		method:   http.MethodPut,
		endpoint: "episode/{id}",
		path:     map[string]string{"id": formatID(episodeID)},
		body:     episode,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to update episode ID %d: %w", episodeID, err)
	}
	return nil
}

// UnmonitorEpisode stops Sonarr from acquiring an episode again.
//
// It reads the episode, clears monitored and writes the full record back. If
// the read fails nothing is written. If the write fails the remote episode is
// as it was. The sequence is not atomic: changes made by others between the
// read and the write are overwritten.
func (c *Client) UnmonitorEpisode(ctx context.Context, episodeID int64) error {
	episode, err := c.Episode(ctx, episodeID)
	if err != nil {
		return err
	}

	episode.Monitored = false

	if err := c.putEpisode(ctx, episodeID, episode); err != nil {
		return err
	}

	c.logger.Info().
		Int64("episode_id", episodeID).
		Str("episode", episode.Label()).
		Str("title", episode.Title).
		Msg("Successfully unmonitored episode")
	return nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
