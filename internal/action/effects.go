package action

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/go-vgo/robotgo"
	"gocv.io/x/gocv"
)

// ErrEmptyCommand is returned by Launch effects with no program configured.
var ErrEmptyCommand = errors.New("empty launch command")

// Launch starts command (program followed by space-separated arguments) and
// does not wait for it. The process outlives the effect and ctx.
func Launch(command string) Effect {
	return func(ctx context.Context) error {
		fields := strings.Fields(command)
		if len(fields) == 0 {
			return ErrEmptyCommand
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd := exec.Command(fields[0], fields[1:]...)
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("launch %s: %w", fields[0], err)
		}

		go cmd.Wait()
		return nil
	}
}

// Hotkey taps key while holding modifiers ("alt", "shift", "ctrl", "cmd").
func Hotkey(combo KeyCombo) Effect {
	return func(ctx context.Context) error {
		if combo.Key == "" {
			return fmt.Errorf("hotkey: no key")
		}
		mods := make([]interface{}, len(combo.Modifiers))
		for i, m := range combo.Modifiers {
			mods[i] = m
		}
		if err := robotgo.KeyTap(combo.Key, mods...); err != nil {
			return fmt.Errorf("hotkey %s: %w", combo, err)
		}
		return nil
	}
}

// Screenshot captures the whole screen to path. The image format follows
// the file extension.
func Screenshot(path string) Effect {
	return func(ctx context.Context) error {
		bit := robotgo.CaptureScreen()
		if bit == nil {
			return errors.New("capture screen failed")
		}
		defer robotgo.FreeBitmap(bit)

		mat, err := gocv.ImageToMatRGB(robotgo.ToImage(bit))
		if err != nil {
			return fmt.Errorf("convert screenshot: %w", err)
		}
		defer mat.Close()

		if ok := gocv.IMWrite(path, mat); !ok {
			return fmt.Errorf("write screenshot to %s", path)
		}
		return nil
	}
}

// KeyCombo is a key plus held modifiers.
type KeyCombo struct {
	Key       string
	Modifiers []string
}

// Combo builds a KeyCombo.
func Combo(key string, modifiers ...string) KeyCombo {
	return KeyCombo{Key: key, Modifiers: modifiers}
}

func (k KeyCombo) String() string {
	return strings.Join(append(append([]string{}, k.Modifiers...), k.Key), "+")
}
