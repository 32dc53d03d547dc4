// Package subtitle extracts release metadata from subtitle filenames.
package subtitle

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Meta contains information derived from a subtitle filename.
// Group is empty when no release group could be determined.
type Meta struct {
	Group           string
	HearingImpaired bool
}

// hiTags mark a subtitle as containing non-dialogue audio cues.
var hiTags = []string{".hi.", ".sdh.", ".cc."}

// trailingTags are subtitle-specific suffix tokens that sit between the
// release name and the extension (e.g. Movie.2020-GROUP.en.hi.srt).
var trailingTags = map[string]bool{
	"hi": true, "sdh": true, "cc": true, "forced": true,
}

var (
	yearToken       = regexp.MustCompile(`^(19|20)\d{2}$`)
	seasonEpToken   = regexp.MustCompile(`(?i)^s\d{1,2}e\d{1,3}$`)
	resolutionToken = regexp.MustCompile(`(?i)^(480p|576p|720p|1080p|2160p|4k)$`)
	langToken       = regexp.MustCompile(`^[a-z]{2,3}$`)
)

// sourceTokens are release-source and codec markers that never name a group.
var sourceTokens = map[string]bool{
	"bluray": true, "webdl": true, "webrip": true, "hdtv": true, "dvdrip": true,
	"web": true, "x264": true, "x265": true, "hevc": true, "aac": true,
}

// Parse extracts release metadata from a subtitle filename.
// Pure and deterministic; callers may invoke it on every run.
func Parse(name string) Meta {
	return Meta{
		Group:           Group(name),
		HearingImpaired: HearingImpaired(name),
	}
}

// HearingImpaired reports whether the filename carries a hearing-impaired
// tag (.hi., .sdh. or .cc., any case).
func HearingImpaired(name string) bool {
	lower := strings.ToLower(name)
	for _, tag := range hiTags {
		if strings.Contains(lower, tag) {
			return true
		}
	}
	return false
}

// Group extracts the release group from a subtitle filename.
// The group is the trailing dash-delimited token when a dash is present
// (scene convention, e.g. Movie.2020.1080p.WEB-GROUP.srt); otherwise the
// final dot-delimited token is used unless it is a known non-group marker.
// Returns "" when no group can be determined.
func Group(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	tokens := strings.Split(base, ".")

	// Drop trailing subtitle tags and language codes so that
	// Movie.2020-GROUP.en.hi resolves the same as Movie.2020-GROUP.
	for len(tokens) > 0 {
		last := strings.ToLower(tokens[len(tokens)-1])
		if trailingTags[last] || langToken.MatchString(last) {
			tokens = tokens[:len(tokens)-1]
			continue
		}
		break
	}
	if len(tokens) == 0 {
		return ""
	}

	base = strings.Join(tokens, ".")
	if idx := strings.LastIndex(base, "-"); idx >= 0 {
		group := base[idx+1:]
		// A dash inside an earlier token can leave dots behind (WEB-DL.GROUP).
		if dot := strings.LastIndex(group, "."); dot >= 0 {
			group = group[dot+1:]
		}
		if group == "" || isNoise(group) {
			return ""
		}
		return group
	}

	last := tokens[len(tokens)-1]
	if isNoise(last) {
		return ""
	}
	return last
}

// isNoise reports whether a token is a structural marker rather than a
// release-group name.
func isNoise(token string) bool {
	lower := strings.ToLower(token)
	switch {
	case yearToken.MatchString(token):
		return true
	case seasonEpToken.MatchString(token):
		return true
	case resolutionToken.MatchString(token):
		return true
	case sourceTokens[lower]:
		return true
	}
	return false
}
