package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Carmen-Shannon/oxy-console/engine/bridge"
	"github.com/Carmen-Shannon/oxy-console/engine/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var connectURL string

func newUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "run the reference UI surface in its own process behind the websocket bridge",
		Args:  cobra.NoArgs,
		RunE:  runUI,
	}
	cmd.Flags().StringVar(&connectURL, "connect", "", "bridge URL, e.g. ws://127.0.0.1:8787/bridge (defaults to the configured listen address)")
	return cmd
}

func runUI(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	url := connectURL
	if url == "" {
		url = "ws://" + cfg.Bridge.Listen + cfg.Bridge.Path
	}

	surface := ui.NewSurface(ui.WithCards(cfg.UI.Cards...), ui.WithVisibleCards(cfg.UI.VisibleCards), ui.WithLogger(log),
		ui.WithOnOpen(func(c ui.Card) {
			log.Info("open", zap.String("title", c.Title), zap.String("link", c.Link))
		}))
	receiver := bridge.NewReceiver(url, surface, bridge.WithReceiverLogger(log))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := receiver.Run(gctx); err != nil {
			return err
		}
		// The console closed the bridge or we were interrupted; either way the ticker stops too.
		log.Info("console bridge closed")
		stop()
		return nil
	})
	g.Go(func() error {
		return tickSurface(gctx, surface, log)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// tickSurface advances the surface's timeline at 60Hz and logs stage changes.
func tickSurface(ctx context.Context, surface ui.Surface, log *zap.Logger) error {
	const step = time.Second / 60
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	stage := surface.Stage()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			surface.Update(float32(step.Seconds()))
			if s := surface.Stage(); s != stage {
				stage = s
				log.Info("ui stage", zap.Stringer("stage", s), zap.Int("index", surface.Index()))
			}
		}
	}
}
