package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/kingrea/wanderguide/internal/flow"
)

type keyMap struct {
	Choose key.Binding
	Prev   key.Binding
	Next   key.Binding
	Jump   key.Binding
	Link   key.Binding
	Retry  key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Choose: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "choose")),
		Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous stop")),
		Next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next stop")),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump to stop"),
		),
		Link:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "maps link")),
		Retry: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "start over")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpFor lists the bindings that do something on screen.
func (k keyMap) helpFor(screen flow.Screen) string {
	var bindings []key.Binding
	switch screen.(type) {
	case flow.QuizStep:
		bindings = []key.Binding{k.Choose}
	case flow.TourStop:
		bindings = []key.Binding{k.Prev, k.Next, k.Jump, k.Link}
	case flow.Failed:
		bindings = []key.Binding{k.Retry}
	}
	bindings = append(bindings, k.Quit)
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" → "+h.Desc)
	}
	return strings.Join(parts, "    ")
}
