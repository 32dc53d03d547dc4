package engine_test

import (
	"io"
	"log/slog"
	"time"

	"github.com/vmunix/subarr/internal/engine"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memLedger is an in-memory ledger implementation.
type memLedger struct {
	entries map[string]string
}

func newMemLedger() *memLedger {
	return &memLedger{entries: make(map[string]string)}
}

func (m *memLedger) Exists(key string) bool {
	_, ok := m.entries[key]
	return ok
}

func (m *memLedger) Record(key, outcome string) error {
	m.entries[key] = outcome
	return nil
}

// fakeResolver returns canned paths by item key.
type fakeResolver struct {
	paths map[string]string
	err   error
}

func (f *fakeResolver) Resolve(item engine.Item) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.paths[item.Key()], nil
}

// memHistory captures reported decisions.
type memHistory struct {
	rows []historyRow
}

type historyRow struct {
	key      string
	title    string
	decision engine.Decision
	detail   string
}

func (m *memHistory) Record(key, title string, d engine.Decision, detail string) error {
	m.rows = append(m.rows, historyRow{key: key, title: title, decision: d, detail: detail})
	return nil
}

// autoApprovers builds automatic approvers with a near-zero wait for both
// kinds. A nil interrupt channel never fires, so the wait always completes.
func autoApprovers() map[engine.Kind]engine.Approver {
	return map[engine.Kind]engine.Approver{
		engine.KindMovie:   engine.NewAutoApprover(engine.NewWaiter(time.Millisecond, time.Millisecond), nil, testLogger()),
		engine.KindEpisode: engine.NewAutoApprover(engine.NewWaiter(time.Millisecond, time.Millisecond), nil, testLogger()),
	}
}

var movieItem = engine.Item{
	Kind:      engine.KindMovie,
	TMDBID:    1,
	IMDBID:    "tt0000001",
	Title:     "Movie A (2020)",
	RemoteDir: "/data/movies/Movie A (2020)",
	VideoFile: "Movie.A.2020.GROUPX.mkv",
}

var episodeItem = engine.Item{
	Kind:      engine.KindEpisode,
	TMDBID:    2,
	Title:     "Show - S01E02",
	Season:    1,
	Episode:   2,
	RemoteDir: "/data/tv/Show",
	VideoFile: "Season 1/Show.S01E02.mkv",
}
