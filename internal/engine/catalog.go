package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmunix/subarr/pkg/subdl"
)

// SubDLCatalog adapts the SubDL client to the engine's Catalog and
// Uploader interfaces, translating items and error classes.
type SubDLCatalog struct {
	Client *subdl.Client
}

var _ Catalog = (*SubDLCatalog)(nil)
var _ Uploader = (*SubDLCatalog)(nil)

// Search queries SubDL for existing subtitles covering the item.
func (c *SubDLCatalog) Search(ctx context.Context, item Item, language string) ([]RemoteEntry, error) {
	subs, err := c.Client.Search(ctx, subdl.SearchQuery{
		TMDBID:    item.TMDBID,
		Type:      catalogType(item.Kind),
		Languages: language,
		Season:    item.Season,
		Episode:   item.Episode,
	})
	if err != nil {
		if errors.Is(err, subdl.ErrUnavailable) {
			return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		}
		return nil, err
	}

	entries := make([]RemoteEntry, len(subs))
	for i, s := range subs {
		entries[i] = RemoteEntry{Name: s.Name, Releases: s.Releases}
	}
	return entries, nil
}

// Upload sends the subtitle through SubDL's three-step upload flow.
func (c *SubDLCatalog) Upload(ctx context.Context, item Item, sub Subtitle) error {
	err := c.Client.Upload(ctx, subdl.UploadRequest{
		Type:            catalogType(item.Kind),
		TMDBID:          item.TMDBID,
		IMDBID:          item.IMDBID,
		Name:            item.Title,
		Lang:            sub.Language,
		Season:          item.Season,
		Episode:         item.Episode,
		HearingImpaired: sub.HearingImpaired,
		FilePath:        sub.Path,
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, subdl.ErrUnauthorized):
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	case errors.Is(err, subdl.ErrUnavailable):
		return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	case errors.Is(err, subdl.ErrRejected):
		return fmt.Errorf("%w: %v", ErrUploadRejected, err)
	default:
		return err
	}
}

func catalogType(k Kind) string {
	if k == KindEpisode {
		return "tv"
	}
	return "movie"
}
