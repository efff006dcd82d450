// Package tuitest provides testing utilities for TUI components.
package tuitest

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes and trailing whitespace so views can be
// compared as plain text.
func StripANSI(s string) string {
	s = ansi.Strip(s)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// KeyPress creates a key press message for a single rune.
func KeyPress(key rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{key}}
}

// KeyType creates a key press message for a special key such as tea.KeyTab.
func KeyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// KeyDown creates a down arrow key press message.
func KeyDown() tea.KeyMsg { return KeyType(tea.KeyDown) }

// KeyUp creates an up arrow key press message.
func KeyUp() tea.KeyMsg { return KeyType(tea.KeyUp) }

// KeyEnter creates an enter key press message.
func KeyEnter() tea.KeyMsg { return KeyType(tea.KeyEnter) }

// KeyEsc creates an escape key press message.
func KeyEsc() tea.KeyMsg { return KeyType(tea.KeyEsc) }

// WindowSize creates a window size message.
func WindowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}

// Drain runs cmd and every command it produces, feeding resulting messages
// into update until no commands remain or limit messages were delivered.
// Batches are flattened; tick commands must not be passed in.
func Drain(cmd tea.Cmd, update func(tea.Msg) tea.Cmd, limit int) {
	queue := []tea.Cmd{cmd}
	for delivered := 0; len(queue) > 0 && delivered < limit; {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if msg == nil {
			continue
		}

		delivered++
		queue = append(queue, update(msg))
	}
}
