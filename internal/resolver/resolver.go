// Package resolver maps media-manager paths to local subtitle files.
package resolver

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmunix/subarr/internal/engine"
)

// RootMapping substitutes a remote root reported by the media manager with
// the root the same storage is mounted under locally.
type RootMapping struct {
	Remote string
	Local  string
}

// Resolver locates local .srt files for engine items.
// Purely a lookup: absence is a nil result, not an error.
type Resolver struct {
	roots map[engine.Kind][]RootMapping
	log   *slog.Logger
}

// New creates a Resolver with per-kind root mappings.
func New(roots map[engine.Kind][]RootMapping, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{roots: roots, log: log}
}

var _ engine.Resolver = (*Resolver)(nil)

// Resolve returns the path of a subtitle matching the item's video file,
// or "" when the content directory or a matching .srt does not exist.
// The match is <video base>.srt or <video base>.<anything>.srt.
func (r *Resolver) Resolve(item engine.Item) (string, error) {
	dir := r.localDir(item)
	if dir == "" {
		r.log.Debug("no local directory for item", "item", item.Title, "remote_dir", item.RemoteDir)
		return "", nil
	}
	if item.VideoFile == "" {
		return "", nil
	}

	video := filepath.Join(dir, item.VideoFile)
	base := strings.TrimSuffix(video, filepath.Ext(video))

	matches, err := filepath.Glob(escapeGlob(base) + "*.srt")
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", nil
	}
	return matches[0], nil
}

// localDir maps the remote-reported content directory onto the first
// configured local root that actually contains it.
func (r *Resolver) localDir(item engine.Item) string {
	name := filepath.Base(item.RemoteDir)
	for _, root := range r.roots[item.Kind] {
		// Exact prefix substitution when the remote root is known.
		var candidate string
		if root.Remote != "" && strings.HasPrefix(item.RemoteDir, root.Remote) {
			candidate = filepath.Join(root.Local, strings.TrimPrefix(item.RemoteDir, root.Remote))
		} else {
			candidate = filepath.Join(root.Local, name)
		}
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}
	return ""
}

// escapeGlob neutralizes glob metacharacters in a literal path prefix.
func escapeGlob(s string) string {
	replacer := strings.NewReplacer("*", `\*`, "?", `\?`, "[", `\[`)
	return replacer.Replace(s)
}
