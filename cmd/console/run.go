package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Carmen-Shannon/oxy-console/engine"
	"github.com/Carmen-Shannon/oxy-console/engine/bridge"
	"github.com/Carmen-Shannon/oxy-console/engine/camera"
	"github.com/Carmen-Shannon/oxy-console/engine/config"
	"github.com/Carmen-Shannon/oxy-console/engine/console"
	"github.com/Carmen-Shannon/oxy-console/engine/loader"
	"github.com/Carmen-Shannon/oxy-console/engine/renderer"
	"github.com/Carmen-Shannon/oxy-console/engine/scene"
	"github.com/Carmen-Shannon/oxy-console/engine/ui"
	"github.com/Carmen-Shannon/oxy-console/engine/window"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	modelPath  string
	bridgeMode string
	profile    bool
	frameLimit float64
	software   bool
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "open the console window and run the frame loop",
		Args:  cobra.NoArgs,
		RunE:  runConsole,
	}
	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "glTF/GLB model (overrides config)")
	cmd.Flags().StringVar(&bridgeMode, "bridge", "", "bridge mode: local or websocket (overrides config)")
	cmd.Flags().BoolVar(&profile, "profile", false, "log frame statistics once per second")
	cmd.Flags().Float64Var(&frameLimit, "fps", 0, "frame rate cap, 0 for display pacing")
	cmd.Flags().BoolVar(&software, "software", false, "force the software WebGPU adapter")
	return cmd
}

func runConsole(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if modelPath != "" {
		cfg.Model.Path = modelPath
	}
	if bridgeMode != "" {
		cfg.Bridge.Mode = bridgeMode
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sc, err := loadScene(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	var (
		channel bridge.Channel
		surface ui.Surface
	)
	switch cfg.Bridge.Mode {
	case config.BridgeWebsocket:
		hub := bridge.NewHub(bridge.WithHubLogger(log), bridge.WithQueueSize(cfg.Bridge.QueueSize))
		defer hub.Close()
		serveBridge(g, gctx, cfg, hub, log)
		channel = hub
	default:
		surface = ui.NewSurface(ui.WithCards(cfg.UI.Cards...), ui.WithVisibleCards(cfg.UI.VisibleCards), ui.WithLogger(log))
		channel = bridge.NewLocal(surface, bridge.WithLocalLogger(log))
	}

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithLogger(log),
	)
	if err != nil {
		return err
	}
	defer func() { _ = win.Close() }()

	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithForceSoftwareRenderer(software),
		renderer.WithLogger(log),
	)
	if err != nil {
		return err
	}
	defer r.Release()

	session := console.NewSession(sc, channel,
		console.WithLogger(log),
		console.WithCamera(camera.NewCamera(cfg.CameraOptions()...)),
		console.WithDamping(cfg.Tuning.Damping),
		console.WithResolverOptions(cfg.ResolverOptions()...),
		console.WithTrackerOptions(cfg.TrackerOptions()...),
		console.WithNamePolicy(cfg.Controls),
		console.WithKeyBindings(cfg.Keys),
	)

	eng := engine.NewEngine(win, session,
		engine.WithPresenter(r),
		engine.WithProfiling(profile),
		engine.WithFrameLimit(frameLimit),
		engine.WithLogger(log),
	)
	if surface != nil {
		eng.SetFrameCallback(surface.Update)
	}
	eng.SetDrawCallback(drawScene(r, session, surface, log))

	// The frame loop owns the main thread; everything else runs in the group.
	runErr := eng.Run(gctx)
	stop()
	waitErr := g.Wait()

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return waitErr
}

// loadScene loads the configured model and runs the registration pass over it.
func loadScene(cfg *config.Config, log *zap.Logger) (scene.Scene, error) {
	l := loader.NewLoader(loader.BackendTypeGLTF, loader.WithLogger(log))
	nodes, err := l.Load(cfg.Model.Path)
	if err != nil {
		return nil, err
	}
	sc, err := scene.Discover(nodes, cfg.Controls, scene.WithName(cfg.Model.Path), scene.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("failed to register controls: %w", err)
	}
	return sc, nil
}

// serveBridge runs the websocket hub's HTTP server until ctx ends.
func serveBridge(g *errgroup.Group, ctx context.Context, cfg *config.Config, hub bridge.Hub, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Bridge.Path, hub)
	srv := &http.Server{
		Addr:              cfg.Bridge.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		log.Info("bridge listening", zap.String("addr", srv.Addr), zap.String("path", cfg.Bridge.Path),
			zap.String("vocabulary", bridge.VocabularyVersion()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("bridge server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}
