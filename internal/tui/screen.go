package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
)

// Executor runs one submitted line and returns the text to display.
type Executor func(ctx context.Context, input string) (string, error)

// Screen describes one entry of the menu.
type Screen struct {
	Title       string // menu and header label, e.g. "Tracker"
	Description string // shown next to the menu key
	Prompt      string // input panel title
	Placeholder string
	Command     string // echoed before each submission, e.g. "tracker issue"
	ErrorPrefix string // e.g. "Tracker error"
	Execute     Executor
}

type entryKind int

const (
	entryPreview entryKind = iota
	entryResult
	entryError
)

type entry struct {
	kind entryKind
	text string
}

type screenState struct {
	def    Screen
	input  textinput.Model
	output []entry
	busy   bool
}

func newScreenState(def Screen) *screenState {
	input := textinput.New()
	input.Placeholder = def.Placeholder
	input.Prompt = "> "
	input.CharLimit = 4096
	return &screenState{def: def, input: input}
}

// push appends an entry and drops the oldest ones beyond limit. A limit of
// zero keeps everything.
func (s *screenState) push(kind entryKind, text string, limit int) {
	s.output = append(s.output, entry{kind: kind, text: text})
	if limit > 0 && len(s.output) > limit {
		s.output = append([]entry(nil), s.output[len(s.output)-limit:]...)
	}
}
