package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/ayusman/mudra/internal/config"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnv(t)

			cfg, err := config.Load("")

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.CameraID, convey.ShouldEqual, 0)
				convey.So(cfg.FrameWidth, convey.ShouldEqual, 640)
				convey.So(cfg.FrameHeight, convey.ShouldEqual, 480)
				convey.So(cfg.MaxHands, convey.ShouldEqual, 2)
				convey.So(cfg.MinConfidence, convey.ShouldEqual, 0.7)
				convey.So(cfg.Addr, convey.ShouldBeEmpty)
				convey.So(cfg.Launch.Notepad, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnv(t)
			t.Setenv("MUDRA_CAMERA_ID", "2")
			t.Setenv("MUDRA_HEADLESS", "true")
			t.Setenv("MUDRA_ADDR", "127.0.0.1:7070")
			t.Setenv("MUDRA_MIN_CONFIDENCE", "0.5")
			t.Setenv("MUDRA_LAUNCH_BROWSER", "firefox")

			cfg, err := config.Load("")

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.CameraID, convey.ShouldEqual, 2)
				convey.So(cfg.Headless, convey.ShouldBeTrue)
				convey.So(cfg.Addr, convey.ShouldEqual, "127.0.0.1:7070")
				convey.So(cfg.MinConfidence, convey.ShouldEqual, 0.5)
				convey.So(cfg.Launch.Browser, convey.ShouldEqual, "firefox")
				convey.So(cfg.FrameWidth, convey.ShouldEqual, 640)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			clearConfigEnv(t)
			path := writeConfig(t, `
log_level: debug
camera_id: 1
frame_width: 1280
frame_height: 720
tray: true
screenshot_path: /tmp/shot.png
launch:
  notepad: kate
  calculator: kcalc
`)

			cfg, err := config.Load(path)

			convey.Convey("Then it should load from the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.CameraID, convey.ShouldEqual, 1)
				convey.So(cfg.FrameWidth, convey.ShouldEqual, 1280)
				convey.So(cfg.Tray, convey.ShouldBeTrue)
				convey.So(cfg.ScreenshotPath, convey.ShouldEqual, "/tmp/shot.png")
				convey.So(cfg.Launch.Notepad, convey.ShouldEqual, "kate")
				convey.So(cfg.Launch.Calculator, convey.ShouldEqual, "kcalc")
				convey.So(cfg.Launch.Browser, convey.ShouldBeEmpty)
			})

			convey.Convey("And env vars take precedence over the file", func() {
				t.Setenv("MUDRA_CAMERA_ID", "3")
				t.Setenv("MUDRA_LAUNCH_NOTEPAD", "gedit")

				cfg, err := config.Load(path)

				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.CameraID, convey.ShouldEqual, 3)
				convey.So(cfg.Launch.Notepad, convey.ShouldEqual, "gedit")
				convey.So(cfg.FrameWidth, convey.ShouldEqual, 1280)
			})
		})

		convey.Convey("When MUDRA_CONFIG names the file", func() {
			clearConfigEnv(t)
			t.Setenv("MUDRA_CONFIG", writeConfig(t, "camera_id: 4\n"))

			cfg, err := config.Load("")

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.CameraID, convey.ShouldEqual, 4)
		})

		convey.Convey("When the file does not exist", func() {
			clearConfigEnv(t)

			_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When a value is invalid", func() {
			clearConfigEnv(t)
			t.Setenv("MUDRA_MAX_HANDS", "3")

			_, err := config.Load("")

			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MUDRA_CONFIG", "MUDRA_LOG_LEVEL", "MUDRA_CAMERA_ID", "MUDRA_FRAME_WIDTH",
		"MUDRA_FRAME_HEIGHT", "MUDRA_HEADLESS", "MUDRA_TRAY", "MUDRA_ADDR",
		"MUDRA_PYTHON", "MUDRA_DETECTOR_SCRIPT", "MUDRA_MAX_HANDS", "MUDRA_MIN_CONFIDENCE",
		"MUDRA_EFFECT_TIMEOUT_MS", "MUDRA_SCREENSHOT_PATH", "MUDRA_LAUNCH_NOTEPAD",
		"MUDRA_LAUNCH_CALCULATOR", "MUDRA_LAUNCH_BROWSER",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mudra.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
