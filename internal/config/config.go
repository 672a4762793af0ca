// Package config defines the process configuration and its layered loader.
//
// Gesture thresholds (cooldown, swipe distance, pinch distance) are
// constants in the gesture and detector packages and are not configurable.
package config

import (
	"fmt"
	"strings"

	"github.com/ayusman/mudra/internal/logging"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// CameraID selects the video device.
	CameraID    int `koanf:"camera_id"`
	FrameWidth  int `koanf:"frame_width"`
	FrameHeight int `koanf:"frame_height"`

	// Headless disables the preview window.
	Headless bool `koanf:"headless"`
	// Tray runs a system tray icon. Implies Headless.
	Tray bool `koanf:"tray"`

	// Addr is the HTTP status listen address. Empty disables the server.
	Addr string `koanf:"addr"`

	// Python and DetectorScript override detector discovery.
	Python         string  `koanf:"python"`
	DetectorScript string  `koanf:"detector_script"`
	MaxHands       int     `koanf:"max_hands"`
	MinConfidence  float64 `koanf:"min_confidence"`

	// EffectTimeoutMS bounds each OS action.
	EffectTimeoutMS int    `koanf:"effect_timeout_ms"`
	ScreenshotPath  string `koanf:"screenshot_path"`

	// Launch overrides the programs started by launch gestures. Empty
	// entries keep the platform default.
	Launch Launch `koanf:"launch"`
}

// Launch holds launch command overrides.
type Launch struct {
	Notepad    string `koanf:"notepad"`
	Calculator string `koanf:"calculator"`
	Browser    string `koanf:"browser"`
}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		CameraID:        0,
		FrameWidth:      640,
		FrameHeight:     480,
		Addr:            "",
		MaxHands:        2,
		MinConfidence:   0.7,
		EffectTimeoutMS: 5000,
		ScreenshotPath:  "screenshot.png",
	}
}

// Validate reports the first bad field wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.CameraID < 0 {
		return fmt.Errorf("%w: camera_id must be >= 0, got %d", ErrInvalidConfig, c.CameraID)
	}
	if c.FrameWidth <= 0 || c.FrameHeight <= 0 {
		return fmt.Errorf("%w: frame size must be positive, got %dx%d", ErrInvalidConfig, c.FrameWidth, c.FrameHeight)
	}
	if c.MaxHands < 1 || c.MaxHands > 2 {
		return fmt.Errorf("%w: max_hands must be 1 or 2, got %d", ErrInvalidConfig, c.MaxHands)
	}
	if c.MinConfidence <= 0 || c.MinConfidence > 1 {
		return fmt.Errorf("%w: min_confidence must be in (0, 1], got %g", ErrInvalidConfig, c.MinConfidence)
	}
	if c.EffectTimeoutMS <= 0 {
		return fmt.Errorf("%w: effect_timeout_ms must be positive", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.ScreenshotPath) == "" {
		return fmt.Errorf("%w: screenshot_path must not be empty", ErrInvalidConfig)
	}
	return nil
}
