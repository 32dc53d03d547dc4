// Package ledger persists finalized per-item outcomes as a line-oriented
// append log. The format is deliberately human-inspectable: operators force
// reprocessing by deleting lines.
package ledger

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Outcome tags written next to each key.
const (
	OutcomeUploaded = "uploaded"
	OutcomeSkipped  = "skipped"
)

// Ledger is an append-only record of finalized items. Keys written once
// are never reprocessed. Single-threaded use only; durability ordering
// (write before the next item) is the only correctness requirement.
type Ledger struct {
	path    string
	file    *os.File
	entries map[string]string // key -> outcome
}

// Open loads the ledger at path, creating it if absent.
// Lines are "<key> <outcome>"; bare keys from older runs count as skipped.
func Open(path string) (*Ledger, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	entries := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		key, outcome, found := strings.Cut(line, " ")
		if !found {
			outcome = OutcomeSkipped
		}
		entries[key] = outcome
	}
	if err := scanner.Err(); err != nil {
		f.Close()
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	// Position at the end for appends.
	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		f.Close()
		return nil, fmt.Errorf("seek ledger: %w", err)
	}

	return &Ledger{path: path, file: f, entries: entries}, nil
}

// Exists reports whether the key was already finalized.
func (l *Ledger) Exists(key string) bool {
	_, ok := l.entries[key]
	return ok
}

// Outcome returns the recorded outcome for a key, or "" when absent.
func (l *Ledger) Outcome(key string) string {
	return l.entries[key]
}

// Len returns the number of finalized entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Record appends a finalized entry and syncs it to disk before returning,
// so a crash mid-run loses at most the in-flight item.
func (l *Ledger) Record(key, outcome string) error {
	if _, err := fmt.Fprintf(l.file, "%s %s\n", key, outcome); err != nil {
		return fmt.Errorf("append ledger: %w", err)
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("sync ledger: %w", err)
	}
	l.entries[key] = outcome
	return nil
}

// Close releases the underlying file.
func (l *Ledger) Close() error {
	return l.file.Close()
}
