package action

import (
	"log/slog"

	"github.com/ayusman/mudra/internal/gesture"
)

// Targets are the programs the launch gestures start.
type Targets struct {
	Notepad    string
	Calculator string
	Browser    string
}

// DefaultTargets returns launch commands for goos.
func DefaultTargets(goos string) Targets {
	switch goos {
	case "windows":
		return Targets{Notepad: "notepad.exe", Calculator: "calc.exe", Browser: "cmd /c start chrome"}
	case "darwin":
		return Targets{Notepad: "open -a TextEdit", Calculator: "open -a Calculator", Browser: "open -a Safari"}
	default:
		return Targets{Notepad: "gedit", Calculator: "gnome-calculator", Browser: "x-www-browser"}
	}
}

// Shortcuts are the window-management key combos.
type Shortcuts struct {
	Close    KeyCombo
	Minimize KeyCombo
	Maximize KeyCombo
	Previous KeyCombo
	Next     KeyCombo
}

// DefaultShortcuts returns window-management combos for goos.
func DefaultShortcuts(goos string) Shortcuts {
	if goos == "darwin" {
		return Shortcuts{
			Close:    Combo("w", "cmd"),
			Minimize: Combo("m", "cmd"),
			Maximize: Combo("f", "ctrl", "cmd"),
			Previous: Combo("tab", "cmd", "shift"),
			Next:     Combo("tab", "cmd"),
		}
	}
	return Shortcuts{
		Close:    Combo("f4", "alt"),
		Minimize: Combo("down", "cmd"),
		Maximize: Combo("up", "cmd"),
		Previous: Combo("tab", "alt", "shift"),
		Next:     Combo("tab", "alt"),
	}
}

// Defaults configures DefaultTable.
type Defaults struct {
	Targets        Targets
	Shortcuts      Shortcuts
	ScreenshotPath string
}

// DefaultTable binds every gesture except OkSign, which stays unbound.
func DefaultTable(runner *Runner, log *slog.Logger, d Defaults) *Table {
	if d.ScreenshotPath == "" {
		d.ScreenshotPath = "screenshot.png"
	}

	t := NewTable(runner, log)
	t.Bind(gesture.PalmOpen, Binding{
		Name:        "open_notepad",
		Description: "Palm open detected: Opening Notepad",
		Effect:      Launch(d.Targets.Notepad),
	})
	t.Bind(gesture.SwipeUp, Binding{
		Name:        "close_app",
		Description: "Swipe up detected: Closing Active Window",
		Effect:      Hotkey(d.Shortcuts.Close),
	})
	t.Bind(gesture.PeaceSign, Binding{
		Name:        "open_calculator",
		Description: "Peace sign detected: Opening Calculator",
		Effect:      Launch(d.Targets.Calculator),
	})
	t.Bind(gesture.ThumbUp, Binding{
		Name:        "open_browser",
		Description: "Thumb up detected: Opening Browser",
		Effect:      Launch(d.Targets.Browser),
	})
	t.Bind(gesture.RingUp, Binding{
		Name:        "screenshot",
		Description: "Ring finger up detected: Taking Screenshot",
		Effect:      Screenshot(d.ScreenshotPath),
	})
	t.Bind(gesture.TwoIndexUp, Binding{
		Name:        "minimize_window",
		Description: "Two index fingers up detected: Minimize Window",
		Effect:      Hotkey(d.Shortcuts.Minimize),
	})
	t.Bind(gesture.TwoMiddleUp, Binding{
		Name:        "maximize_window",
		Description: "Two middle fingers up detected: Maximize Window",
		Effect:      Hotkey(d.Shortcuts.Maximize),
	})
	t.Bind(gesture.SwipeLeft, Binding{
		Name:        "switch_left",
		Description: "Swipe detected: Switching to previous window",
		Effect:      Hotkey(d.Shortcuts.Previous),
	})
	t.Bind(gesture.SwipeRight, Binding{
		Name:        "switch_right",
		Description: "Swipe detected: Switching to next window",
		Effect:      Hotkey(d.Shortcuts.Next),
	})
	return t
}
