package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tinytelemetry/spark/internal/dataset"
	"github.com/tinytelemetry/spark/internal/inbox"
	"github.com/tinytelemetry/spark/internal/island"
	"github.com/tinytelemetry/spark/internal/model"
	"github.com/tinytelemetry/spark/internal/swipe"
	"github.com/tinytelemetry/spark/internal/tui"
	"github.com/tinytelemetry/spark/internal/venuedb"
	"go.uber.org/zap"
)

func loadDataset(ctx context.Context, cfg appConfig, log *zap.Logger) (*model.Dataset, error) {
	fsys := dataset.Default()
	if cfg.DataDir != "" {
		fsys = dataset.Dir(cfg.DataDir)
	}
	data, err := dataset.NewLoader(fsys, log).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	return data, nil
}

func openStore(ctx context.Context, data *model.Dataset, cfg appConfig, log *zap.Logger) (*venuedb.Store, error) {
	store, err := venuedb.Open(ctx, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize DuckDB: %w", err)
	}
	if cfg.QueryTimeout > 0 {
		store.QueryTimeout = cfg.QueryTimeout
	}
	if err := store.LoadVenues(data.Venues); err != nil {
		store.Close()
		return nil, fmt.Errorf("loading venues: %w", err)
	}
	return store, nil
}

func trackerConfig(cfg appConfig) swipe.TrackerConfig {
	return swipe.TrackerConfig{
		SwipeThreshold: cfg.SwipeThreshold,
		RotationPerPx:  cfg.RotationPerPx,
		FadeDistance:   cfg.FadeDistance,
		ClampOpacity:   cfg.ClampOpacity,
	}
}

// buildApp wires the pages around one shared island.
func buildApp(data *model.Dataset, store model.VenueStore, cfg appConfig, log *zap.Logger) *tui.App {
	isl := island.New(cfg.NotifyDuration, log)
	scale := tui.PointerScale{PxPerColumn: cfg.PxPerColumn, PxPerRow: cfg.PxPerRow}

	mapPage := tui.NewMapPage(data, store, isl, scale, log)
	discover := tui.NewDiscoverPage(data, isl, store, tui.DiscoverConfig{
		Tracker:     trackerConfig(cfg),
		SettleDelay: cfg.SettleDelay,
		RearmDelay:  cfg.RearmDelay,
		Scale:       scale,
	}, log)
	sparks := tui.NewSparksPage(inbox.New(data.Sparks, cfg.SettleDelay, isl, log), scale, log)
	profile := tui.NewProfilePage(data.Settings, store, isl, log)

	return tui.NewApp(isl, log, cfg.StartScreen, mapPage, discover, sparks, profile)
}

func runTUI(ctx context.Context, cfg appConfig, log *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	data, err := loadDataset(ctx, cfg, log)
	if err != nil {
		return err
	}
	store, err := openStore(ctx, data, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	app := buildApp(data, store, cfg, log)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}
	log.Info("bye")
	return nil
}
