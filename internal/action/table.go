package action

import (
	"log/slog"

	"github.com/ayusman/mudra/internal/gesture"
)

// Binding is the effect a gesture fires.
type Binding struct {
	Name        string // stable action name, e.g. "open_notepad"
	Description string // console line printed on dispatch
	Effect      Effect
}

// Entry is a label with its binding, for listing.
type Entry struct {
	Label   gesture.Label
	Binding Binding
}

// Table maps gestures to bindings. Dispatch is only called from the frame
// loop; Bind is meant for setup before the loop starts.
type Table struct {
	bindings map[gesture.Label]Binding
	runner   *Runner
	log      *slog.Logger
}

// NewTable creates an empty table running effects on runner.
func NewTable(runner *Runner, log *slog.Logger) *Table {
	return &Table{
		bindings: make(map[gesture.Label]Binding),
		runner:   runner,
		log:      log,
	}
}

// Bind sets the binding for label, replacing any existing one.
func (t *Table) Bind(label gesture.Label, b Binding) {
	t.bindings[label] = b
}

// Lookup returns the binding for label.
func (t *Table) Lookup(label gesture.Label) (Binding, bool) {
	b, ok := t.bindings[label]
	return b, ok
}

// Dispatch logs the binding for label and starts its effect. It returns
// false, doing nothing, when label is unbound.
func (t *Table) Dispatch(label gesture.Label) (string, bool) {
	b, ok := t.bindings[label]
	if !ok {
		return "", false
	}

	t.log.Info(b.Description, "gesture", label.String(), "action", b.Name)
	if b.Effect != nil {
		t.runner.Go(b.Name, b.Effect)
	}
	return b.Name, true
}

// Entries lists bindings in gesture.Labels order. Unbound labels are
// included with a zero Binding.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(gesture.Labels))
	for _, label := range gesture.Labels {
		entries = append(entries, Entry{Label: label, Binding: t.bindings[label]})
	}
	return entries
}

var _ gesture.ActionTable = (*Table)(nil)
