package arr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMovies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/movie", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "title": "Movie A", "year": 2020, "tmdbId": 603, "imdbId": "tt0133093",
			 "path": "/data/movies/Movie A (2020)", "hasFile": true,
			 "movieFile": {"relativePath": "Movie.A.2020.GROUPX.mkv", "releaseGroup": "GROUPX"}},
			{"id": 2, "title": "Movie B", "year": 2021, "tmdbId": 604,
			 "path": "/data/movies/Movie B (2021)", "hasFile": false}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	movies, err := client.ListMovies(context.Background())
	require.NoError(t, err)

	require.Len(t, movies, 2)
	assert.Equal(t, int64(603), movies[0].TMDBID)
	assert.Equal(t, "tt0133093", movies[0].IMDBID)
	assert.True(t, movies[0].HasFile)
	require.NotNil(t, movies[0].MovieFile)
	assert.Equal(t, "Movie.A.2020.GROUPX.mkv", movies[0].MovieFile.RelativePath)
	assert.False(t, movies[1].HasFile)
	assert.Nil(t, movies[1].MovieFile)
}

func TestListEpisodeFiles_PassesSeriesID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/episodefile", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("seriesId"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 7, "seriesId": 42, "relativePath": "Season 1/Show.S01E02.mkv", "releaseGroup": "GROUPY"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	files, err := client.ListEpisodeFiles(context.Background(), 42)
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, int64(7), files[0].ID)
	assert.Equal(t, "Season 1/Show.S01E02.mkv", files[0].RelativePath)
}

func TestListEpisodes_PassesSeriesID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/episode", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("seriesId"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 9, "seriesId": 42, "seasonNumber": 1, "episodeNumber": 2, "episodeFileId": 7}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	episodes, err := client.ListEpisodes(context.Background(), 42)
	require.NoError(t, err)

	require.Len(t, episodes, 1)
	assert.Equal(t, 1, episodes[0].SeasonNumber)
	assert.Equal(t, 2, episodes[0].EpisodeNumber)
	assert.Equal(t, int64(7), episodes[0].EpisodeFileID)
}

func TestClient_InvalidAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "wrong-key")
	_, err := client.ListMovies(context.Background())
	assert.ErrorIs(t, err, ErrInvalidAPIKey)
}

func TestClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	_, err := client.ListSeries(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 500")
}

func TestClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	client := NewClient(server.URL, "test-key")
	_, err := client.ListMovies(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
