package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/mudra/internal/config"
)

func TestActionDefaults(t *testing.T) {
	cfg := config.New()
	cfg.Launch.Browser = "firefox"

	d := actionDefaults(cfg, "linux")

	assert.Equal(t, "gedit", d.Targets.Notepad)
	assert.Equal(t, "firefox", d.Targets.Browser)
	assert.Equal(t, "screenshot.png", d.ScreenshotPath)
	assert.Equal(t, "alt+f4", d.Shortcuts.Close.String())
}

func TestDialable(t *testing.T) {
	tests := map[string]string{
		":7070":          "localhost:7070",
		"0.0.0.0:80":     "localhost:80",
		"127.0.0.1:7070": "127.0.0.1:7070",
		"bogus":          "bogus",
	}
	for in, want := range tests {
		assert.Equal(t, want, dialable(in), in)
	}
}

func TestOpenCommand(t *testing.T) {
	assert.Equal(t, "open", openCommand("darwin"))
	assert.Equal(t, "xdg-open", openCommand("linux"))
	assert.Equal(t, "cmd /c start", openCommand("windows"))
}

func TestCommands(t *testing.T) {
	t.Setenv("MUDRA_CONFIG", "")

	t.Run("version", func(t *testing.T) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"version"})
		require.NoError(t, rootCmd.Execute())
		assert.Equal(t, "mudra version dev\n", out.String())
	})

	t.Run("gestures", func(t *testing.T) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"gestures"})
		require.NoError(t, rootCmd.Execute())

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 11)
		assert.True(t, strings.HasPrefix(lines[0], "GESTURE"))
		assert.Contains(t, out.String(), "Palm open detected: Opening Notepad")

		var okLine string
		for _, l := range lines {
			if strings.HasPrefix(l, "ok_sign") {
				okLine = l
			}
		}
		assert.Contains(t, okLine, "-")
	})
}
