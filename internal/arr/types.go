package arr

// Movie is a Radarr library entry (v3 API, fields we consume).
type Movie struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Year      int        `json:"year"`
	TMDBID    int64      `json:"tmdbId"`
	IMDBID    string     `json:"imdbId"`
	Path      string     `json:"path"`
	HasFile   bool       `json:"hasFile"`
	MovieFile *MovieFile `json:"movieFile"`
}

// MovieFile is the downloaded file attached to a movie.
type MovieFile struct {
	RelativePath string `json:"relativePath"`
	ReleaseGroup string `json:"releaseGroup"`
}

// Series is a Sonarr library entry.
type Series struct {
	ID         int64            `json:"id"`
	Title      string           `json:"title"`
	Path       string           `json:"path"`
	TMDBID     int64            `json:"tmdbId"`
	IMDBID     string           `json:"imdbId"`
	Statistics SeriesStatistics `json:"statistics"`
}

// SeriesStatistics carries Sonarr's per-series file counters.
type SeriesStatistics struct {
	EpisodeFileCount int `json:"episodeFileCount"`
}

// EpisodeFile is one downloaded file belonging to a series.
type EpisodeFile struct {
	ID           int64  `json:"id"`
	SeriesID     int64  `json:"seriesId"`
	RelativePath string `json:"relativePath"`
	ReleaseGroup string `json:"releaseGroup"`
}

// Episode is Sonarr's metadata record for one episode.
type Episode struct {
	ID            int64  `json:"id"`
	SeriesID      int64  `json:"seriesId"`
	SeasonNumber  int    `json:"seasonNumber"`
	EpisodeNumber int    `json:"episodeNumber"`
	Title         string `json:"title"`
	EpisodeFileID int64  `json:"episodeFileId"`
}
