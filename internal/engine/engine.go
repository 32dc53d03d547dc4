package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/vmunix/subarr/pkg/subtitle"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/vmunix/subarr/internal/engine Catalog,Uploader

// Resolver locates the local subtitle file for an item.
// An empty path with a nil error means no subtitle exists: a normal skip.
type Resolver interface {
	Resolve(item Item) (string, error)
}

// Uploader sends a subtitle to the remote catalog.
type Uploader interface {
	Upload(ctx context.Context, item Item, sub Subtitle) error
}

// Ledger is the durable record of finalized items. It is the single
// source of truth for "already handled".
type Ledger interface {
	Exists(key string) bool
	Record(key, outcome string) error
}

// HistoryRecorder captures per-item decisions for the run report.
// Never consulted for eligibility.
type HistoryRecorder interface {
	Record(itemKey, title string, decision Decision, detail string) error
}

// Config wires an Engine's collaborators.
type Config struct {
	Resolver      Resolver
	Catalog       Catalog
	Uploader      Uploader
	Ledger        Ledger
	History       HistoryRecorder // optional
	Approvers     map[Kind]Approver
	BlockedGroups []string
	Language      string
	Logger        *slog.Logger
}

// Engine processes items sequentially to a terminal decision each.
type Engine struct {
	resolver Resolver
	checker  *DuplicateChecker
	uploader Uploader
	ledger   Ledger
	history  HistoryRecorder
	approver map[Kind]Approver
	blocked  map[string]bool
	language string
	log      *slog.Logger
}

// New creates an Engine.
func New(cfg Config) *Engine {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	blocked := make(map[string]bool, len(cfg.BlockedGroups))
	for _, g := range cfg.BlockedGroups {
		blocked[strings.ToLower(g)] = true
	}
	return &Engine{
		resolver: cfg.Resolver,
		checker:  NewDuplicateChecker(cfg.Catalog, log),
		uploader: cfg.Uploader,
		ledger:   cfg.Ledger,
		history:  cfg.History,
		approver: cfg.Approvers,
		blocked:  blocked,
		language: cfg.Language,
		log:      log,
	}
}

// Summary counts the decisions of one run.
type Summary struct {
	Uploaded int
	Skipped  int
	Retried  int // not finalized, retried next run
	Ledgered int // skipped via ledger lookup before processing
}

// Run processes the items in order. It returns early only on run-fatal
// errors (rejected upload credential, broken ledger, context end); every
// item-scoped failure is logged and the run continues.
func (e *Engine) Run(ctx context.Context, items []Item) (*Summary, error) {
	sum := &Summary{}
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		key := item.Key()
		if e.ledger.Exists(key) {
			e.log.Info("already processed", "item", item.Title, "key", key)
			sum.Ledgered++
			continue
		}

		decision, err := e.processItem(ctx, item)
		if err != nil {
			return sum, err
		}
		switch {
		case decision == DecisionUpload:
			sum.Uploaded++
		case decision.Finalizes():
			sum.Skipped++
		default:
			sum.Retried++
		}
	}
	return sum, nil
}

// processItem drives one item through the pipeline to a terminal decision.
func (e *Engine) processItem(ctx context.Context, item Item) (Decision, error) {
	st := StatusStart

	path, err := e.resolver.Resolve(item)
	if err != nil {
		e.log.Warn("resolve failed, will retry next run", "item", item.Title, "error", err)
		e.report(item, DecisionSearchFailed, "resolve: "+err.Error())
		return DecisionSearchFailed, nil
	}
	if err := advance(&st, StatusResolved); err != nil {
		return "", err
	}
	if path == "" {
		e.log.Info("no matching subtitle file", "item", item.Title)
		return e.finalize(&st, item, DecisionSkipNoSubtitle, "")
	}

	meta := subtitle.Parse(filepath.Base(path))
	if err := advance(&st, StatusNormalized); err != nil {
		return "", err
	}
	sub := Subtitle{
		Path:            path,
		Group:           meta.Group,
		HearingImpaired: meta.HearingImpaired,
		Language:        e.language,
	}
	e.log.Info("found subtitle", "item", item.Title, "file", filepath.Base(path),
		"group", orUnknown(sub.Group), "hearing_impaired", sub.HearingImpaired)

	if sub.Group != "" && e.blocked[strings.ToLower(sub.Group)] {
		return e.finalize(&st, item, DecisionSkipBlockedGroup, sub.Group)
	}

	dup, err := e.checker.Check(ctx, item, sub.Group, e.language)
	if err != nil {
		e.log.Warn("catalog search failed, will retry next run", "item", item.Title, "error", err)
		e.report(item, DecisionSearchFailed, err.Error())
		return DecisionSearchFailed, nil
	}
	if err := advance(&st, StatusDuplicateChecked); err != nil {
		return "", err
	}
	if dup {
		return e.finalize(&st, item, DecisionSkipDuplicate, sub.Group)
	}

	approval, err := e.approver[item.Kind].Approve(ctx, item, sub)
	if err != nil {
		return "", fmt.Errorf("approve %s: %w", item.Key(), err)
	}
	if err := advance(&st, StatusDecided); err != nil {
		return "", err
	}
	if approval != ApprovalGranted {
		e.log.Info("upload cancelled", "item", item.Title)
		return e.finalize(&st, item, DecisionSkipCancelled, "")
	}

	if err := e.uploader.Upload(ctx, item, sub); err != nil {
		if errors.Is(err, ErrCatalogUnavailable) {
			e.log.Warn("upload transport failed, will retry next run", "item", item.Title, "error", err)
			e.report(item, DecisionSearchFailed, err.Error())
			return DecisionSearchFailed, nil
		}
		// Rejected or unauthorized: fatal for the run, never item-scoped.
		return "", fmt.Errorf("upload %s: %w", item.Key(), err)
	}
	return e.finalize(&st, item, DecisionUpload, filepath.Base(path))
}

// finalize records the terminal decision durably before the next item.
func (e *Engine) finalize(st *Status, item Item, d Decision, detail string) (Decision, error) {
	if err := advance(st, StatusFinalized); err != nil {
		return "", err
	}
	if err := e.ledger.Record(item.Key(), d.Outcome()); err != nil {
		return "", fmt.Errorf("record ledger for %s: %w", item.Key(), err)
	}
	e.report(item, d, detail)
	e.log.Info("item finalized", "item", item.Title, "key", item.Key(), "decision", string(d))
	return d, nil
}

func (e *Engine) report(item Item, d Decision, detail string) {
	if e.history == nil {
		return
	}
	if err := e.history.Record(item.Key(), item.Title, d, detail); err != nil {
		e.log.Warn("history write failed", "key", item.Key(), "error", err)
	}
}

func advance(st *Status, to Status) error {
	if !st.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, *st, to)
	}
	*st = to
	return nil
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
