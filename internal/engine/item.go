// Package engine reconciles local subtitle files against the remote catalog,
// deciding per item whether to upload, skip, or retry on a later run.
package engine

import "fmt"

// Kind identifies the media manager an item came from.
type Kind string

const (
	KindMovie   Kind = "movie"
	KindEpisode Kind = "episode"
)

// Item is one movie or episode reported by a media manager.
// Immutable for the run; only its Key survives in the ledger.
type Item struct {
	Kind    Kind
	TMDBID  int64
	IMDBID  string
	Title   string
	Season  int // episodes only
	Episode int // episodes only

	// RemoteDir is the content directory as the media manager sees it;
	// VideoFile is the media file's path relative to that directory.
	RemoteDir string
	VideoFile string
}

// Key returns the stable ledger key for this item. Keys derive from remote
// identifiers, not paths, so file moves never cause reprocessing.
func (i Item) Key() string {
	if i.Kind == KindEpisode {
		return fmt.Sprintf("tv:%d:%d:%d", i.TMDBID, i.Season, i.Episode)
	}
	return fmt.Sprintf("movie:%d", i.TMDBID)
}

// Subtitle is a resolved local subtitle file with its derived metadata.
type Subtitle struct {
	Path            string
	Group           string // "" when unknown
	HearingImpaired bool
	Language        string
}
