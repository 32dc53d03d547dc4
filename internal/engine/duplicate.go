package engine

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hbollon/go-edlib"
)

// RemoteEntry is one existing subtitle reported by the catalog search.
type RemoteEntry struct {
	Name     string
	Releases []string // release names this subtitle covers
}

// Catalog searches the remote subtitle host for existing entries.
type Catalog interface {
	Search(ctx context.Context, item Item, language string) ([]RemoteEntry, error)
}

// DuplicateChecker decides whether an equivalent subtitle already exists
// remotely, by comparing release groups case-insensitively.
type DuplicateChecker struct {
	catalog Catalog
	log     *slog.Logger
}

// NewDuplicateChecker creates a duplicate checker over the given catalog.
func NewDuplicateChecker(catalog Catalog, log *slog.Logger) *DuplicateChecker {
	if log == nil {
		log = slog.Default()
	}
	return &DuplicateChecker{catalog: catalog, log: log}
}

// Check searches the catalog and reports whether any existing entry covers
// the local release group. An unknown local group can never be confirmed
// as a duplicate, so no search is issued and the item proceeds.
// Search failures surface as ErrCatalogUnavailable from the catalog and
// propagate unchanged: the caller skips the item without finalizing it.
func (c *DuplicateChecker) Check(ctx context.Context, item Item, group, language string) (bool, error) {
	if group == "" {
		c.log.Debug("release group unknown, duplicate cannot be confirmed", "item", item.Title)
		return false, nil
	}

	entries, err := c.catalog.Search(ctx, item, language)
	if err != nil {
		return false, err
	}

	lower := strings.ToLower(group)
	for _, entry := range entries {
		for _, rel := range entry.Releases {
			if strings.Contains(strings.ToLower(rel), lower) {
				c.log.Info("duplicate found", "item", item.Title, "group", group, "release", rel)
				return true, nil
			}
		}
	}

	if nearest, score := c.nearestRelease(lower, entries); nearest != "" {
		c.log.Debug("no duplicate", "item", item.Title, "group", group,
			"nearest_release", nearest, "similarity", score)
	}
	return false, nil
}

// nearestRelease finds the existing release most similar to the local
// group. Informational only; the duplicate decision never depends on it.
func (c *DuplicateChecker) nearestRelease(group string, entries []RemoteEntry) (string, float64) {
	var best string
	var bestScore float64
	for _, entry := range entries {
		for _, rel := range entry.Releases {
			score := float64(edlib.JaroWinklerSimilarity(group, strings.ToLower(rel)))
			if score > bestScore {
				best, bestScore = rel, score
			}
		}
	}
	return best, bestScore
}
