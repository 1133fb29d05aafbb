package sonarr

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "0123456789abcdef0123456789abcdef"

// fakeRequest captures details of a request to the fake server.
type fakeRequest struct {
	Method  string
	Path    string
	Query   url.Values
	APIKeys []string
	Body    []byte
}

// fakeSonarr is an in-memory Sonarr with no concurrency control, like the real
// one. Episodes are stored as the raw JSON last written to them.
type fakeSonarr struct {
	t      *testing.T
	server *httptest.Server

	mu               sync.Mutex
	series           map[string]string
	tags             string
	episodesBySeries map[string]string
	episodes         map[int64][]byte
	files            map[int64]bool
	requests         []fakeRequest

	// Failure injection; zero means behave normally
	listStatus int
	listBody   string
	putStatus  int

	// onEpisodeRead runs after an episode was read from the store and before
	// it is written to the client
	onEpisodeRead func(id int64)
}

func newFakeSonarr(t *testing.T) *fakeSonarr {
	t.Helper()

	f := &fakeSonarr{
		t:                t,
		series:           make(map[string]string),
		tags:             "[]",
		episodesBySeries: make(map[string]string),
		episodes:         make(map[int64][]byte),
		files:            make(map[int64]bool),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/series", f.handleSeries)
	mux.HandleFunc("GET /api/v3/tag", f.handleTags)
	mux.HandleFunc("GET /api/v3/episode", f.handleEpisodes)
	mux.HandleFunc("GET /api/v3/episode/{id}", f.handleGetEpisode)
	mux.HandleFunc("PUT /api/v3/episode/{id}", f.handlePutEpisode)
	mux.HandleFunc("DELETE /api/v3/episodefile/{id}", f.handleDeleteFile)
	mux.HandleFunc("GET /api/v3/system/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"appName":"Sonarr","version":"4.0.0.0"}`)
	})

	f.server = httptest.NewServer(f.record(mux))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeSonarr) client(opts ...Option) *Client {
	f.t.Helper()
	opts = append([]Option{WithTimeout(5 * time.Second)}, opts...)
	client, err := NewClient(f.server.URL, testAPIKey, zerolog.Nop(), opts...)
	require.NoError(f.t, err)
	return client
}

// record tracks every request and rejects a wrong API key
func (f *fakeSonarr) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		f.mu.Lock()
		f.requests = append(f.requests, fakeRequest{
			Method:  r.Method,
			Path:    r.URL.Path,
			Query:   r.URL.Query(),
			APIKeys: r.Header.Values(apiKeyHeader),
			Body:    body,
		})
		f.mu.Unlock()

		if r.Header.Get(apiKeyHeader) != testAPIKey {
			writeJSON(w, http.StatusUnauthorized, `{"message":"Unauthorized"}`)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *fakeSonarr) handleSeries(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listStatus != 0 {
		writeJSON(w, f.listStatus, f.listBody)
		return
	}
	body, ok := f.series[r.URL.Query().Get("tvdbId")]
	if !ok {
		body = "[]"
	}
	writeJSON(w, http.StatusOK, body)
}

func (f *fakeSonarr) handleTags(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, f.tags)
}

func (f *fakeSonarr) handleEpisodes(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	body, ok := f.episodesBySeries[r.URL.Query().Get("seriesId")]
	if !ok {
		body = "[]"
	}
	writeJSON(w, http.StatusOK, body)
}

func (f *fakeSonarr) handleGetEpisode(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, `{"message":"invalid id"}`)
		return
	}

	f.mu.Lock()
	stored, ok := f.episodes[id]
	snapshot := bytes.Clone(stored)
	hook := f.onEpisodeRead
	f.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, `{"message":"NotFound","description":"Episode not found"}`)
		return
	}
	if hook != nil {
		hook(id)
	}
	writeJSON(w, http.StatusOK, string(snapshot))
}

func (f *fakeSonarr) handlePutEpisode(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, `{"message":"invalid id"}`)
		return
	}
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.putStatus != 0 {
		writeJSON(w, f.putStatus, `{"message":"Internal Server Error"}`)
		return
	}
	if _, ok := f.episodes[id]; !ok {
		writeJSON(w, http.StatusNotFound, `{"message":"NotFound"}`)
		return
	}
	if !json.Valid(body) {
		writeJSON(w, http.StatusBadRequest, `[{"propertyName":"","errorMessage":"Invalid request body"}]`)
		return
	}
	f.episodes[id] = body
	writeJSON(w, http.StatusAccepted, string(body))
}

func (f *fakeSonarr) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, `{"message":"invalid id"}`)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.files[id] {
		writeJSON(w, http.StatusNotFound, `{"message":"NotFound"}`)
		return
	}
	delete(f.files, id)
	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeSonarr) setEpisode(id int64, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.episodes[id] = []byte(body)
}

// episode returns the remote state of an episode, decoded field by field
func (f *fakeSonarr) episode(id int64) map[string]json.RawMessage {
	f.t.Helper()
	f.mu.Lock()
	raw := bytes.Clone(f.episodes[id])
	f.mu.Unlock()

	var fields map[string]json.RawMessage
	require.NoError(f.t, json.Unmarshal(raw, &fields))
	return fields
}

func (f *fakeSonarr) rawEpisode(id int64) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return bytes.Clone(f.episodes[id])
}

func (f *fakeSonarr) recorded() []fakeRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fakeRequest(nil), f.requests...)
}

func (f *fakeSonarr) count(method string) int {
	var n int
	for _, req := range f.recorded() {
		if req.Method == method {
			n++
		}
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
