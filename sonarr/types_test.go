package sonarr

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEpisode(t *testing.T, data string) EpisodeInfo {
	t.Helper()
	var ep EpisodeInfo
	require.NoError(t, json.Unmarshal([]byte(data), &ep))
	return ep
}

func TestEpisodeInfo_UnchangedRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "full record",
			data: fullEpisode,
		},
		{
			name: "no file",
			data: `{"id":2,"seriesId":42,"seasonNumber":1,"episodeNumber":2,"title":"x","monitored":false}`,
		},
		{
			name: "null file id",
			data: `{"id":2,"seriesId":42,"episodeFileId":null,"monitored":true}`,
		},
		{
			name: "zero file id",
			data: `{"id":2,"episodeFileId":0,"monitored":true,"series":{"title":"nested","id":42}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep := decodeEpisode(t, tt.data)

			out, err := json.Marshal(ep)
			require.NoError(t, err)
			assert.JSONEq(t, tt.data, string(out))
		})
	}
}

func TestEpisodeInfo_ModifiedFields(t *testing.T) {
	ep := decodeEpisode(t, fullEpisode)

	ep.Monitored = false
	ep.SeasonNumber = 2

	out, err := json.Marshal(ep)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(out, &fields))
	assert.Equal(t, false, fields["monitored"])
	assert.Equal(t, float64(2), fields["seasonNumber"])
	assert.Equal(t, "2008-01-20", fields["airDate"])
	assert.Equal(t, float64(555), fields["episodeFileId"])
}

func TestEpisodeInfo_FileIDChanges(t *testing.T) {
	t.Run("cleared", func(t *testing.T) {
		ep := decodeEpisode(t, `{"id":1,"episodeFileId":555}`)
		ep.EpisodeFileID = nil

		out, err := json.Marshal(ep)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":1,"episodeFileId":null}`, string(out))
	})

	t.Run("set where absent", func(t *testing.T) {
		ep := decodeEpisode(t, `{"id":1}`)
		id := int64(7)
		ep.EpisodeFileID = &id

		out, err := json.Marshal(ep)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":1,"episodeFileId":7}`, string(out))
	})

	t.Run("decoded pointer is not shared", func(t *testing.T) {
		ep := decodeEpisode(t, `{"id":1,"episodeFileId":555}`)
		*ep.EpisodeFileID = 9

		out, err := json.Marshal(ep)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":1,"episodeFileId":9}`, string(out))
	})
}

func TestEpisodeInfo_ConstructedValue(t *testing.T) {
	id := int64(77)
	ep := EpisodeInfo{
		ID:            3,
		SeriesID:      42,
		EpisodeFileID: &id,
		Title:         "Pilot",
		SeasonNumber:  1,
		EpisodeNumber: 1,
		Monitored:     true,
	}

	out, err := json.Marshal(ep)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 3,
		"seriesId": 42,
		"episodeFileId": 77,
		"title": "Pilot",
		"seasonNumber": 1,
		"episodeNumber": 1,
		"monitored": true
	}`, string(out))

	_, ok := ep.Field("overview")
	assert.False(t, ok)
}

func TestEpisodeInfo_Helpers(t *testing.T) {
	zero := int64(0)
	file := int64(12)

	tests := []struct {
		name      string
		episode   EpisodeInfo
		wantFile  bool
		wantLabel string
	}{
		{"no file", EpisodeInfo{SeasonNumber: 1, EpisodeNumber: 2}, false, "S01E02"},
		{"zero file id", EpisodeInfo{EpisodeFileID: &zero, SeasonNumber: 0, EpisodeNumber: 5}, false, "S00E05"},
		{"with file", EpisodeInfo{EpisodeFileID: &file, SeasonNumber: 12, EpisodeNumber: 103}, true, "S12E103"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantFile, tt.episode.HasFile())
			assert.Equal(t, tt.wantLabel, tt.episode.Label())
		})
	}
}

func TestEpisodeInfo_RejectsInvalidJSON(t *testing.T) {
	var ep EpisodeInfo
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &ep))
	assert.Error(t, json.Unmarshal([]byte(`{"monitored":"yes"}`), &ep))
}
