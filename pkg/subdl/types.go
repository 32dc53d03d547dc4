package subdl

// SearchQuery identifies the content to search existing subtitles for.
type SearchQuery struct {
	TMDBID    int64
	Type      string // "movie" or "tv"
	Languages string
	Season    int // tv only
	Episode   int // tv only
}

// Subtitle is one existing catalog entry from a search.
type Subtitle struct {
	Name     string   `json:"name"`
	Lang     string   `json:"lang"`
	URL      string   `json:"url"`
	Releases []string `json:"releases"`
}

// searchResponse is the JSON envelope of the search endpoint.
type searchResponse struct {
	Status    bool       `json:"status"`
	Error     string     `json:"error"`
	Subtitles []Subtitle `json:"subtitles"`
}

// UploadRequest carries everything needed for the three-step upload.
type UploadRequest struct {
	Type            string // "movie" or "tv"
	TMDBID          int64
	IMDBID          string
	Name            string // display name, e.g. "Movie A (2020)"
	Lang            string // uppercased on the wire
	Season          int
	Episode         int
	HearingImpaired bool
	FilePath        string // local .srt file
}

type nIDResponse struct {
	OK  bool   `json:"ok"`
	NID string `json:"n_id"`
}

type fileUploadResponse struct {
	OK   bool `json:"ok"`
	File struct {
		FileNID string `json:"file_n_id"`
	} `json:"file"`
}

type completeResponse struct {
	Status bool `json:"status"`
}
