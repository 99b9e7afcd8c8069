package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"blockslash/internal/config"
	"blockslash/internal/document"
	"blockslash/internal/eventbus"
	"blockslash/internal/palette"
	"blockslash/internal/ui"
)

// forwardedEvents reach the UI as ui.EventMsg
var forwardedEvents = []eventbus.EventType{
	eventbus.EventError,
	eventbus.EventConfigSaved,
}

// loggedEvents are written to the log at debug level
var loggedEvents = []eventbus.EventType{
	eventbus.EventBlockAdded,
	eventbus.EventBlockDeleted,
	eventbus.EventFocusChanged,
	eventbus.EventPaletteOpened,
	eventbus.EventPaletteEnded,
	eventbus.EventConfigLoaded,
}

func runEditor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Editor.LogFile, verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	bus := eventbus.New(logger)
	defer bus.Close()

	for _, t := range loggedEvents {
		unsubscribe := bus.Subscribe(t, func(e eventbus.DomainEvent) {
			logger.Debug("event", zap.String("type", string(e.Type())), zap.Any("event", e))
		})
		defer unsubscribe()
	}
	bus.Publish(eventbus.ConfigLoadedEvent{Path: configService(nil).Path(), Flags: cfg.Flags})

	reg, err := palette.RegistryFromConfig(cfg.Palette.Entries)
	if err != nil {
		return err
	}
	ids, err := document.NewIDGenerator(cfg.Editor.IDGenerator)
	if err != nil {
		return err
	}
	page := document.NewPage(ids, document.NewAwareness(cfg.Flags), bus)
	page.Bootstrap(cfg.Editor.Title)
	logger.Info("session started",
		zap.String("title", cfg.Editor.Title),
		zap.String("ids", cfg.Editor.IDGenerator),
		zap.Bool(config.FlagAppendFlavourSlash, cfg.Flag(config.FlagAppendFlavourSlash)))

	sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	model := ui.NewModel(ui.Options{
		Page:     page,
		Registry: reg,
		Config:   cfg,
		Bus:      bus,
		Logger:   logger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	model.SetProgram(p)

	events := make(chan eventbus.DomainEvent, 100)
	for _, t := range forwardedEvents {
		unsubscribe := bus.Subscribe(t, func(e eventbus.DomainEvent) {
			select {
			case events <- e:
			default:
				logger.Warn("event channel full, dropping event", zap.String("type", string(e.Type())))
			}
		})
		defer unsubscribe()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case e := <-events:
				p.Send(ui.EventMsg{Event: e})
			}
		}
	})

	if err := g.Wait(); err != nil {
		logger.Error("editor stopped", zap.Error(err))
		return fmt.Errorf("error running editor: %w", err)
	}
	logger.Info("session ended")
	return nil
}

// configService returns the service for --config or the default location
func configService(bus eventbus.EventBus) config.ConfigService {
	var svc config.ConfigService
	if configPath != "" {
		svc = config.NewConfigServiceForPath(configPath)
	} else {
		svc = config.NewConfigService()
	}
	if bus != nil {
		svc = config.WithBus(svc, bus)
	}
	return svc
}

// loadConfig loads the config and applies --flag overrides
func loadConfig(bus eventbus.EventBus) (*config.Config, error) {
	cfg, err := configService(bus).Load()
	if err != nil {
		return nil, err
	}
	overrides, err := parseFlagOverrides(flagOverrides)
	if err != nil {
		return nil, err
	}
	if cfg.Flags == nil {
		cfg.Flags = make(map[string]bool, len(overrides))
	}
	for name, on := range overrides {
		cfg.Flags[name] = on
	}
	return cfg, nil
}

// parseFlagOverrides reads name=bool pairs; a bare name means true
func parseFlagOverrides(values []string) (map[string]bool, error) {
	out := make(map[string]bool, len(values))
	for _, v := range values {
		name, raw, found := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid --flag %q: missing name", v)
		}
		on := true
		if found {
			var err error
			on, err = strconv.ParseBool(strings.TrimSpace(raw))
			if err != nil {
				return nil, fmt.Errorf("invalid --flag %q: %w", v, err)
			}
		}
		out[name] = on
	}
	return out, nil
}

// newLogger builds a production logger writing to path. The terminal
// belongs to the editor, so nothing is written to stderr.
func newLogger(path string, debug bool) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
