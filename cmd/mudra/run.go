package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/display"
	"github.com/ayusman/mudra/internal/logging"
	"github.com/ayusman/mudra/internal/metrics"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start gesture control",
	RunE:  runMudra,
}

func init() {
	for _, cmd := range []*cobra.Command{rootCmd, runCmd} {
		cmd.Flags().Int("camera", 0, "camera device index")
		cmd.Flags().Bool("headless", false, "run without the preview window")
		cmd.Flags().Bool("tray", false, "show a system tray icon (implies --headless)")
		cmd.Flags().String("addr", "", "serve status, journal and metrics on this address, e.g. 127.0.0.1:7070")
	}
	rootCmd.AddCommand(runCmd)
}

// loadConfig layers command-line flags over config.Load.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("camera") {
		cfg.CameraID, _ = flags.GetInt("camera")
	}
	if flags.Changed("headless") {
		cfg.Headless, _ = flags.GetBool("headless")
	}
	if flags.Changed("tray") {
		cfg.Tray, _ = flags.GetBool("tray")
	}
	if flags.Changed("addr") {
		cfg.Addr, _ = flags.GetString("addr")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// actionDefaults merges configured launch overrides over the goos defaults.
func actionDefaults(cfg *config.Config, goos string) action.Defaults {
	targets := action.DefaultTargets(goos)
	if cfg.Launch.Notepad != "" {
		targets.Notepad = cfg.Launch.Notepad
	}
	if cfg.Launch.Calculator != "" {
		targets.Calculator = cfg.Launch.Calculator
	}
	if cfg.Launch.Browser != "" {
		targets.Browser = cfg.Launch.Browser
	}
	return action.Defaults{
		Targets:        targets,
		Shortcuts:      action.DefaultShortcuts(goos),
		ScreenshotPath: cfg.ScreenshotPath,
	}
}

func runMudra(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	log := logging.New(level, os.Stderr)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	runner := action.NewRunner(time.Duration(cfg.EffectTimeoutMS)*time.Millisecond, log, m)
	defer runner.Wait()
	table := action.DefaultTable(runner, log, actionDefaults(cfg, runtime.GOOS))

	det, err := detector.NewMediaPipeDetector(detector.Config{
		MaxHands:      cfg.MaxHands,
		MinConfidence: cfg.MinConfidence,
		Python:        cfg.Python,
		Script:        cfg.DetectorScript,
	})
	if err != nil {
		return fmt.Errorf("hand detector: %w", err)
	}

	var disp display.Display = display.Headless{}
	var stream *server.Stream
	switch {
	case !cfg.Headless && !cfg.Tray:
		disp = display.NewWindow("mudra")
	case cfg.Addr != "":
		stream = server.NewStream()
		disp = stream
	}

	a := app.New(app.Config{
		Camera: capture.NewCamera(capture.Config{
			Device: cfg.CameraID,
			Width:  cfg.FrameWidth,
			Height: cfg.FrameHeight,
		}),
		Detector: det,
		Display:  disp,
		Table:    table,
		Metrics:  m,
		Log:      log,
		Mirror:   true,
	})

	st, err := store.New(log)
	if err != nil {
		return fmt.Errorf("dispatch journal: %w", err)
	}
	defer st.Close()
	a.Subscribe(st)

	hub := server.NewHub(log)
	a.Subscribe(hub)

	if cfg.Addr != "" {
		srv := server.New(server.Config{
			Controller: a,
			Store:      st,
			Table:      table,
			Metrics:    m,
			Hub:        hub,
			Stream:     stream,
			Log:        log,
		})
		go func() {
			if err := srv.Run(ctx, cfg.Addr); err != nil {
				log.Error("http server stopped", "error", err)
			}
		}()
	}

	if cfg.Tray {
		return runWithTray(ctx, stop, a, cfg, log)
	}
	return a.Run(ctx)
}

// runWithTray runs the loop on a goroutine because the tray needs the main
// one.
func runWithTray(ctx context.Context, stop context.CancelFunc, a *app.App, cfg *config.Config, log *slog.Logger) error {
	t := tray.New()
	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
		log.Info("detection toggled from tray", "enabled", enabled)
	})
	t.OnQuit(stop)
	if cfg.Addr != "" {
		url := "http://" + dialable(cfg.Addr) + "/api/status"
		t.OnStatus(func() {
			if err := action.Launch(openCommand(runtime.GOOS) + " " + url)(ctx); err != nil {
				log.Warn("open status page", "error", err)
			}
		})
	}
	a.Subscribe(t)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Run(ctx)
		t.Stop()
	}()

	t.Run()
	stop()
	return <-errCh
}

func openCommand(goos string) string {
	switch goos {
	case "windows":
		return "cmd /c start"
	case "darwin":
		return "open"
	default:
		return "xdg-open"
	}
}

// dialable turns a listen address like ":7070" into "localhost:7070".
func dialable(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
