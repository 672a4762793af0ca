package action

import (
	"bytes"
	"context"
	"log/slog"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/logging"
)

func TestTable_Dispatch(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(slog.LevelInfo, &buf)
	runner := NewRunner(time.Second, log, nil)
	table := NewTable(runner, log)

	fired := make(chan struct{}, 1)
	table.Bind(gesture.PalmOpen, Binding{
		Name:        "open_notepad",
		Description: "Palm open detected: Opening Notepad",
		Effect: func(ctx context.Context) error {
			fired <- struct{}{}
			return nil
		},
	})

	t.Run("bound", func(t *testing.T) {
		name, ok := table.Dispatch(gesture.PalmOpen)
		require.True(t, ok)
		assert.Equal(t, "open_notepad", name)

		runner.Wait()
		select {
		case <-fired:
		default:
			t.Fatal("effect did not run")
		}
		assert.Contains(t, buf.String(), "Palm open detected: Opening Notepad")
	})

	t.Run("unbound", func(t *testing.T) {
		buf.Reset()
		name, ok := table.Dispatch(gesture.OkSign)
		assert.False(t, ok)
		assert.Empty(t, name)
		assert.Empty(t, buf.String())
	})

	t.Run("nil effect still dispatches", func(t *testing.T) {
		table.Bind(gesture.RingUp, Binding{Name: "screenshot", Description: "ring"})
		name, ok := table.Dispatch(gesture.RingUp)
		assert.True(t, ok)
		assert.Equal(t, "screenshot", name)
	})
}

func TestDefaultTable(t *testing.T) {
	table := DefaultTable(NewRunner(0, logging.NewNop(), nil), logging.NewNop(), Defaults{
		Targets:   DefaultTargets("linux"),
		Shortcuts: DefaultShortcuts("linux"),
	})

	want := map[gesture.Label]string{
		gesture.PalmOpen:    "open_notepad",
		gesture.SwipeUp:     "close_app",
		gesture.PeaceSign:   "open_calculator",
		gesture.ThumbUp:     "open_browser",
		gesture.RingUp:      "screenshot",
		gesture.TwoIndexUp:  "minimize_window",
		gesture.TwoMiddleUp: "maximize_window",
		gesture.SwipeLeft:   "switch_left",
		gesture.SwipeRight:  "switch_right",
	}

	for label, name := range want {
		b, ok := table.Lookup(label)
		require.True(t, ok, label.String())
		assert.Equal(t, name, b.Name)
		assert.NotEmpty(t, b.Description)
		assert.NotNil(t, b.Effect)
	}

	_, ok := table.Lookup(gesture.OkSign)
	assert.False(t, ok, "ok_sign must stay unbound")

	_, ok = table.Lookup(gesture.None)
	assert.False(t, ok)

	entries := table.Entries()
	require.Len(t, entries, len(gesture.Labels))
	for i, e := range entries {
		assert.Equal(t, gesture.Labels[i], e.Label)
	}
}

func TestDefaultShortcuts(t *testing.T) {
	assert.Equal(t, "alt+f4", DefaultShortcuts("windows").Close.String())
	assert.Equal(t, "alt+shift+tab", DefaultShortcuts("linux").Previous.String())
	assert.Equal(t, "cmd+w", DefaultShortcuts("darwin").Close.String())
	assert.Equal(t, "ctrl+cmd+f", DefaultShortcuts("darwin").Maximize.String())
}

func TestDefaultTargets(t *testing.T) {
	for _, goos := range []string{"windows", "darwin", "linux", "freebsd"} {
		tg := DefaultTargets(goos)
		assert.NotEmpty(t, tg.Notepad, goos)
		assert.NotEmpty(t, tg.Calculator, goos)
		assert.NotEmpty(t, tg.Browser, goos)
	}
}

func TestLaunch(t *testing.T) {
	ctx := context.Background()

	t.Run("empty command", func(t *testing.T) {
		assert.ErrorIs(t, Launch("   ")(ctx), ErrEmptyCommand)
	})

	t.Run("missing program", func(t *testing.T) {
		err := Launch("mudra-no-such-program --flag")(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mudra-no-such-program")
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, Launch("true")(cctx), context.Canceled)
	})

	t.Run("starts without waiting", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("needs a POSIX sleep")
		}
		start := time.Now()
		require.NoError(t, Launch("sleep 2")(ctx))
		assert.Less(t, time.Since(start), time.Second)
	})
}

func TestHotkey_NoKey(t *testing.T) {
	assert.Error(t, Hotkey(KeyCombo{})(context.Background()))
}
