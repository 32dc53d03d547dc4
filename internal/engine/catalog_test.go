package engine_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/subarr/internal/engine"
	"github.com/vmunix/subarr/pkg/subdl"
)

func TestSubDLCatalog_SearchTranslatesItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("tmdb_id"))
		assert.Equal(t, "tv", q.Get("type"))
		assert.Equal(t, "1", q.Get("season_number"))
		assert.Equal(t, "2", q.Get("episode_number"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": true, "subtitles": [
			{"name": "Show S01E02", "releases": ["Show.S01E02.720p.WEB-GROUPY"]}
		]}`))
	}))
	defer server.Close()

	catalog := &engine.SubDLCatalog{Client: subdl.New("k", "t", subdl.WithSearchURL(server.URL))}
	entries, err := catalog.Search(context.Background(), episodeItem, "en")
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "Show S01E02", entries[0].Name)
	assert.Equal(t, []string{"Show.S01E02.720p.WEB-GROUPY"}, entries[0].Releases)
}

func TestSubDLCatalog_SearchUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	catalog := &engine.SubDLCatalog{Client: subdl.New("k", "t", subdl.WithSearchURL(server.URL))}
	_, err := catalog.Search(context.Background(), movieItem, "en")
	assert.ErrorIs(t, err, engine.ErrCatalogUnavailable)
}

func TestSubDLCatalog_UploadErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: engine.ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, wantErr: engine.ErrUnauthorized},
		{name: "server error", status: http.StatusInternalServerError, wantErr: engine.ErrCatalogUnavailable},
		{name: "refused", status: http.StatusUnprocessableEntity, wantErr: engine.ErrUploadRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			path := filepath.Join(t.TempDir(), "Movie.A.2020.srt")
			require.NoError(t, os.WriteFile(path, []byte("1\n"), 0o644))

			catalog := &engine.SubDLCatalog{Client: subdl.New("k", "t", subdl.WithUploadURL(server.URL))}
			err := catalog.Upload(context.Background(), movieItem, engine.Subtitle{Path: path, Language: "en"})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
