package arr

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vmunix/subarr/internal/engine"
)

// MovieSource turns a Radarr listing into engine items.
type MovieSource struct {
	client *Client
	log    *slog.Logger
}

// NewMovieSource creates a movie item source over a Radarr client.
func NewMovieSource(client *Client, log *slog.Logger) *MovieSource {
	if log == nil {
		log = slog.Default()
	}
	return &MovieSource{client: client, log: log}
}

// Items lists Radarr movies that have a downloaded file.
func (s *MovieSource) Items(ctx context.Context) ([]engine.Item, error) {
	movies, err := s.client.ListMovies(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]engine.Item, 0, len(movies))
	for _, m := range movies {
		if !m.HasFile || m.MovieFile == nil || m.MovieFile.RelativePath == "" {
			s.log.Debug("movie has no usable file", "title", m.Title)
			continue
		}
		if m.Path == "" || m.TMDBID == 0 {
			s.log.Debug("movie missing path or tmdb id", "title", m.Title)
			continue
		}
		items = append(items, engine.Item{
			Kind:      engine.KindMovie,
			TMDBID:    m.TMDBID,
			IMDBID:    m.IMDBID,
			Title:     fmt.Sprintf("%s (%d)", m.Title, m.Year),
			RemoteDir: m.Path,
			VideoFile: m.MovieFile.RelativePath,
		})
	}
	s.log.Info("listed movies", "total", len(movies), "with_files", len(items))
	return items, nil
}

// EpisodeSource turns Sonarr listings into engine items, one per
// downloaded episode file.
type EpisodeSource struct {
	client *Client
	log    *slog.Logger
}

// NewEpisodeSource creates an episode item source over a Sonarr client.
func NewEpisodeSource(client *Client, log *slog.Logger) *EpisodeSource {
	if log == nil {
		log = slog.Default()
	}
	return &EpisodeSource{client: client, log: log}
}

// Items joins each series' episode files to episode metadata via the
// file id; files that cannot be mapped or lack season/episode numbers are
// skipped with a log line.
func (s *EpisodeSource) Items(ctx context.Context) ([]engine.Item, error) {
	series, err := s.client.ListSeries(ctx)
	if err != nil {
		return nil, err
	}

	var items []engine.Item
	for _, sr := range series {
		if sr.Statistics.EpisodeFileCount == 0 {
			continue
		}
		if sr.TMDBID == 0 {
			s.log.Debug("series missing tmdb id", "title", sr.Title)
			continue
		}

		files, err := s.client.ListEpisodeFiles(ctx, sr.ID)
		if err != nil {
			return nil, err
		}
		episodes, err := s.client.ListEpisodes(ctx, sr.ID)
		if err != nil {
			return nil, err
		}

		byFileID := make(map[int64]Episode, len(episodes))
		for _, ep := range episodes {
			if ep.EpisodeFileID != 0 {
				byFileID[ep.EpisodeFileID] = ep
			}
		}

		for _, f := range files {
			ep, ok := byFileID[f.ID]
			if !ok {
				s.log.Debug("episode file not mapped to an episode", "series", sr.Title, "file", f.RelativePath)
				continue
			}
			if ep.SeasonNumber == 0 && ep.EpisodeNumber == 0 {
				s.log.Debug("episode missing season or number", "series", sr.Title, "file", f.RelativePath)
				continue
			}
			if f.RelativePath == "" {
				s.log.Debug("episode file missing relative path", "series", sr.Title)
				continue
			}
			items = append(items, engine.Item{
				Kind:      engine.KindEpisode,
				TMDBID:    sr.TMDBID,
				IMDBID:    sr.IMDBID,
				Title:     fmt.Sprintf("%s - S%02dE%02d", sr.Title, ep.SeasonNumber, ep.EpisodeNumber),
				Season:    ep.SeasonNumber,
				Episode:   ep.EpisodeNumber,
				RemoteDir: sr.Path,
				VideoFile: f.RelativePath,
			})
		}
	}
	s.log.Info("listed episodes", "series", len(series), "episodes_with_files", len(items))
	return items, nil
}
