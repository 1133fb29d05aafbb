package sonarr

import (
	"encoding/json"
	"fmt"
	"maps"
)

// SeriesInfo is a series as returned by the series lookup
type SeriesInfo struct {
	Title string  `json:"title"`
	ID    int64   `json:"id"`
	Tags  []int64 `json:"tags,omitempty"`
}

// String renders the series as Title(ID)
func (s SeriesInfo) String() string {
	return fmt.Sprintf("%s(%d)", s.Title, s.ID)
}

// Tag is a user-defined Sonarr label
type Tag struct {
	Label string `json:"label"`
	ID    int64  `json:"id"`
}

// SystemStatus is the subset of /system/status used for connection checks
type SystemStatus struct {
	AppName string `json:"appName"`
	Version string `json:"version"`
}

// EpisodeInfo is a Sonarr episode.
//
// An EpisodeInfo decoded from the API keeps every field of the original
// object, modelled or not, and MarshalJSON writes them all back. Fields whose
// typed value is unchanged are re-emitted with their original bytes, so a
// decode/modify/encode cycle only alters what was modified.
type EpisodeInfo struct {
	ID            int64
	SeriesID      int64
	EpisodeFileID *int64
	Title         string
	SeasonNumber  int
	EpisodeNumber int
	Monitored     bool

	// fields holds the raw object as received
	fields map[string]json.RawMessage
	// decoded is the typed view of fields at decode time
	decoded episodeWire
}

// episodeWire maps the modelled fields to their wire names
type episodeWire struct {
	ID            int64  `json:"id"`
	SeriesID      int64  `json:"seriesId"`
	EpisodeFileID *int64 `json:"episodeFileId"`
	Title         string `json:"title"`
	SeasonNumber  int    `json:"seasonNumber"`
	EpisodeNumber int    `json:"episodeNumber"`
	Monitored     bool   `json:"monitored"`
}

// HasFile reports whether a file is attached to the episode
func (e *EpisodeInfo) HasFile() bool {
	return e.EpisodeFileID != nil && *e.EpisodeFileID > 0
}

// Label renders the episode as S01E02
func (e *EpisodeInfo) Label() string {
	return fmt.Sprintf("S%02dE%02d", e.SeasonNumber, e.EpisodeNumber)
}

// Field returns the raw value of a wire field as received, including fields
// the struct does not model.
func (e *EpisodeInfo) Field(name string) (json.RawMessage, bool) {
	raw, ok := e.fields[name]
	return raw, ok
}

// UnmarshalJSON decodes the modelled fields and retains the whole object.
func (e *EpisodeInfo) UnmarshalJSON(data []byte) error {
	var wire episodeWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*e = EpisodeInfo{
		ID:            wire.ID,
		SeriesID:      wire.SeriesID,
		EpisodeFileID: copyID(wire.EpisodeFileID),
		Title:         wire.Title,
		SeasonNumber:  wire.SeasonNumber,
		EpisodeNumber: wire.EpisodeNumber,
		Monitored:     wire.Monitored,
		fields:        fields,
		decoded:       wire,
	}
	return nil
}

// MarshalJSON encodes the retained object with the modelled fields overlaid.
func (e EpisodeInfo) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(e.fields)+7)
	maps.Copy(out, e.fields)

	overlay := []struct {
		key       string
		value     any
		unchanged bool
	}{
		{"id", e.ID, e.ID == e.decoded.ID},
		{"seriesId", e.SeriesID, e.SeriesID == e.decoded.SeriesID},
		{"title", e.Title, e.Title == e.decoded.Title},
		{"seasonNumber", e.SeasonNumber, e.SeasonNumber == e.decoded.SeasonNumber},
		{"episodeNumber", e.EpisodeNumber, e.EpisodeNumber == e.decoded.EpisodeNumber},
		{"monitored", e.Monitored, e.Monitored == e.decoded.Monitored},
	}

	for _, f := range overlay {
		// Decoded records keep unchanged fields as received, absent ones included
		if e.fields != nil && f.unchanged {
			continue
		}
		raw, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		out[f.key] = raw
	}

	// An absent file id stays absent; anything else is written when it changed.
	_, present := out["episodeFileId"]
	switch {
	case e.fields != nil && sameID(e.EpisodeFileID, e.decoded.EpisodeFileID):
	case e.EpisodeFileID == nil && !present:
	case e.EpisodeFileID == nil:
		out["episodeFileId"] = json.RawMessage("null")
	default:
		raw, err := json.Marshal(*e.EpisodeFileID)
		if err != nil {
			return nil, err
		}
		out["episodeFileId"] = raw
	}

	return json.Marshal(out)
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
