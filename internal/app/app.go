// Package app runs the frame loop: read, mirror, detect, classify,
// stabilize, render, and poll for quit.
package app

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/display"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/metrics"
)

// Observer is told about every dispatch. It runs on the loop goroutine and
// must not block.
type Observer interface {
	OnDispatch(d gesture.Dispatch)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(d gesture.Dispatch)

func (f ObserverFunc) OnDispatch(d gesture.Dispatch) { f(d) }

// Config holds the loop's collaborators. Camera, Detector and Table are
// required.
type Config struct {
	Camera   capture.Camera
	Detector detector.Detector
	Display  display.Display
	Table    gesture.ActionTable
	Metrics  *metrics.Metrics
	Log      *slog.Logger
	// Now is the frame clock. Defaults to time.Now.
	Now func() time.Time
	// Mirror flips each frame horizontally before detection.
	Mirror bool
}

// Status is a snapshot for side surfaces.
type Status struct {
	Enabled      bool          `json:"enabled"`
	Frames       uint64        `json:"frames"`
	Current      gesture.Label `json:"current"`
	LastGesture  gesture.Label `json:"last_gesture"`
	LastAction   string        `json:"last_action"`
	LastDispatch time.Time     `json:"last_dispatch"`
}

// App owns the camera, detector and gesture session for one run.
type App struct {
	camera   capture.Camera
	detector detector.Detector
	display  display.Display
	session  *gesture.Session
	metrics  *metrics.Metrics
	log      *slog.Logger
	now      func() time.Time
	mirror   bool

	observers  []Observer
	enabled    atomic.Bool
	wasEnabled bool
	frames     atomic.Uint64

	mu      sync.RWMutex
	current gesture.Label
	last    gesture.Dispatch
}

// New creates an App. Detection starts enabled.
func New(cfg Config) *App {
	if cfg.Display == nil {
		cfg.Display = display.Headless{}
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	a := &App{
		camera:     cfg.Camera,
		detector:   cfg.Detector,
		display:    cfg.Display,
		session:    gesture.NewSession(cfg.Table),
		metrics:    cfg.Metrics,
		log:        cfg.Log,
		now:        cfg.Now,
		mirror:     cfg.Mirror,
		wasEnabled: true,
	}
	a.enabled.Store(true)
	return a
}

// Subscribe adds an observer. Call before Run.
func (a *App) Subscribe(o Observer) {
	a.observers = append(a.observers, o)
}

// SetEnabled pauses or resumes detection. While paused frames are still
// shown but nothing is classified. Resuming forgets the last wrist
// position so the first frame back cannot read as a swipe.
func (a *App) SetEnabled(enabled bool) {
	a.enabled.Store(enabled)
}

// IsEnabled reports whether detection is running.
func (a *App) IsEnabled() bool {
	return a.enabled.Load()
}

// Status returns a snapshot safe to call from any goroutine.
func (a *App) Status() Status {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return Status{
		Enabled:      a.enabled.Load(),
		Frames:       a.frames.Load(),
		Current:      a.current,
		LastGesture:  a.last.Label,
		LastAction:   a.last.Action,
		LastDispatch: a.last.At,
	}
}

// Run processes frames until ctx is cancelled, the display asks to quit or
// a frame cannot be read. Camera, detector and display are released on
// return in that order.
func (a *App) Run(ctx context.Context) error {
	if err := a.camera.Open(); err != nil {
		if cerr := a.display.Close(); cerr != nil {
			a.log.Error("close display", "error", cerr)
		}
		return fmt.Errorf("open camera: %w", err)
	}
	defer a.release()

	a.log.Info("gesture control started", "mirror", a.mirror)

	for {
		if err := ctx.Err(); err != nil {
			a.log.Info("gesture control stopping", "reason", err)
			return nil
		}

		quit, err := a.step()
		if err != nil {
			return err
		}
		if quit {
			a.log.Info("quit requested")
			return nil
		}
	}
}

func (a *App) step() (bool, error) {
	frame, err := a.camera.ReadFrame()
	if err != nil {
		return false, fmt.Errorf("read frame: %w", err)
	}
	defer frame.Close()

	start := time.Now()
	if a.mirror {
		capture.Mirror(frame)
	}

	enabled := a.enabled.Load()
	if enabled && !a.wasEnabled {
		a.session.Tracker().Reset()
	}
	a.wasEnabled = enabled

	if !enabled {
		return a.display.Show(frame, nil, "paused"), nil
	}

	hands, err := a.detector.Detect(frame)
	if err != nil {
		a.log.Warn("hand detection failed", "error", err)
		a.metrics.DetectorError()
		hands = nil
	}

	res := a.session.Step(hands, image.Pt(frame.Cols(), frame.Rows()), a.now())
	a.frames.Add(1)
	a.metrics.ObserveFrame(len(hands), string(res.Label), time.Since(start))

	a.mu.Lock()
	a.current = res.Label
	if res.Dispatched {
		a.last = res.Dispatch
	}
	a.mu.Unlock()

	if res.Dispatched {
		a.metrics.Dispatched(string(res.Dispatch.Label), res.Dispatch.Action)
		for _, o := range a.observers {
			o.OnDispatch(res.Dispatch)
		}
	}

	caption := ""
	if res.Label != gesture.None {
		caption = res.Label.String()
	}
	return a.display.Show(frame, hands, caption), nil
}

func (a *App) release() {
	if err := a.camera.Close(); err != nil {
		a.log.Error("close camera", "error", err)
	}
	if err := a.detector.Close(); err != nil {
		a.log.Error("close detector", "error", err)
	}
	if err := a.display.Close(); err != nil {
		a.log.Error("close display", "error", err)
	}
	a.log.Info("gesture control stopped")
}
