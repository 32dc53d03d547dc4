package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vmunix/subarr/internal/arr"
	"github.com/vmunix/subarr/internal/config"
	"github.com/vmunix/subarr/internal/engine"
	"github.com/vmunix/subarr/internal/history"
	"github.com/vmunix/subarr/internal/ledger"
	"github.com/vmunix/subarr/internal/resolver"
	"github.com/vmunix/subarr/pkg/subdl"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process the library once, uploading missing subtitles",
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return &config.ConfigError{Path: configPath, Errors: errs}
	}

	log := newLogger(cfg.LogLevel)

	// Fail fast on an expired upload token rather than mid-run.
	if err := subdl.CheckToken(cfg.SubDL.UploadToken, time.Now()); err != nil {
		return err
	}

	needsPrompt := (cfg.Radarr != nil && !cfg.Radarr.AutoUpload) ||
		(cfg.Sonarr != nil && !cfg.Sonarr.AutoUpload)
	if needsPrompt && !isatty.IsTerminal(os.Stdin.Fd()) {
		return errors.New("interactive approval needs a terminal; enable auto_upload or run from a tty")
	}

	lock := flock.New(cfg.LedgerPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return errors.New("another run is already in progress")
	}
	defer func() { _ = lock.Unlock() }()

	led, err := ledger.Open(cfg.LedgerPath)
	if err != nil {
		return err
	}
	defer led.Close()
	log.Info("ledger loaded", "path", cfg.LedgerPath, "entries", led.Len())

	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	// SIGTERM ends the run; SIGINT only cancels the in-flight upload wait.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	roots := make(map[engine.Kind][]resolver.RootMapping)
	approvers := make(map[engine.Kind]engine.Approver)
	var movieItems, episodeItems []engine.Item

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Radarr != nil {
		src := arr.NewMovieSource(
			arr.NewClient(cfg.Radarr.URL, cfg.Radarr.APIKey),
			log.With("component", "radarr"))
		g.Go(func() error {
			items, err := src.Items(gctx)
			movieItems = items
			return err
		})
		roots[engine.KindMovie] = mapRoots(cfg.Radarr.Roots)
		approvers[engine.KindMovie] = approverFor(cfg.Radarr, cfg.Delay, interrupts, log)
	}
	if cfg.Sonarr != nil {
		src := arr.NewEpisodeSource(
			arr.NewClient(cfg.Sonarr.URL, cfg.Sonarr.APIKey),
			log.With("component", "sonarr"))
		g.Go(func() error {
			items, err := src.Items(gctx)
			episodeItems = items
			return err
		})
		roots[engine.KindEpisode] = mapRoots(cfg.Sonarr.Roots)
		approvers[engine.KindEpisode] = approverFor(cfg.Sonarr, cfg.Delay, interrupts, log)
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("list library items: %w", err)
	}

	catalog := &engine.SubDLCatalog{
		Client: subdl.New(cfg.SubDL.SearchAPIKey, cfg.SubDL.UploadToken, subdl.WithLogger(log)),
	}
	runID := uuid.NewString()
	eng := engine.New(engine.Config{
		Resolver:      resolver.New(roots, log.With("component", "resolver")),
		Catalog:       catalog,
		Uploader:      catalog,
		Ledger:        led,
		History:       &history.Recorder{Store: store, RunID: runID},
		Approvers:     approvers,
		BlockedGroups: cfg.BlockedGroups,
		Language:      strings.ToLower(cfg.Language),
		Logger:        log,
	})

	items := append(movieItems, episodeItems...)
	log.Info("run starting", "run_id", runID, "items", len(items), "language", cfg.Language)

	sum, runErr := eng.Run(ctx, items)
	if sum != nil {
		log.Info("run finished",
			"uploaded", sum.Uploaded,
			"skipped", sum.Skipped,
			"retry_next_run", sum.Retried,
			"already_done", sum.Ledgered)
	}
	return runErr
}

// approverFor picks the per-kind approval strategy.
func approverFor(m *config.ManagerConfig, delay config.DelayConfig, interrupts <-chan os.Signal, log *slog.Logger) engine.Approver {
	if m.AutoUpload {
		return engine.NewAutoApprover(engine.NewWaiter(delay.Min(), delay.Max()), interrupts, log)
	}
	return engine.NewPromptApprover(os.Stdin, os.Stdout)
}

func mapRoots(roots []config.RootMapping) []resolver.RootMapping {
	out := make([]resolver.RootMapping, len(roots))
	for i, r := range roots {
		out[i] = resolver.RootMapping{Remote: r.Remote, Local: r.Local}
	}
	return out
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
