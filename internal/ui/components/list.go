package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pranavj/mentis/internal/ui/theme"
)

// ListItem is one selectable row: a label plus an optional dim detail.
type ListItem struct {
	Label  string
	Detail string
}

// List is a vertical selector over items.
type List struct {
	Items    []ListItem
	Selected int
	focused  bool
}

// NewList creates a list over items with the first one selected.
func NewList(items []ListItem) List {
	return List{Items: items, focused: true}
}

// SetItems replaces the items, clamping the selection.
func (l *List) SetItems(items []ListItem) {
	l.Items = items
	if l.Selected >= len(items) {
		l.Selected = len(items) - 1
	}
	if l.Selected < 0 {
		l.Selected = 0
	}
}

// Focus controls whether the list responds to keys and highlights.
func (l *List) Focus(focused bool) {
	l.focused = focused
}

// Focused reports whether the list has focus.
func (l List) Focused() bool {
	return l.focused
}

// Current returns the selected item, or nil when the list is empty.
func (l List) Current() *ListItem {
	if l.Selected < 0 || l.Selected >= len(l.Items) {
		return nil
	}
	return &l.Items[l.Selected]
}

// Update handles keyboard navigation.
func (l List) Update(msg tea.Msg) (List, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !l.focused || len(l.Items) == 0 {
		return l, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if l.Selected > 0 {
			l.Selected--
		}
	case "down", "j":
		if l.Selected < len(l.Items)-1 {
			l.Selected++
		}
	}

	return l, nil
}

// View renders the list.
func (l List) View() string {
	var b strings.Builder
	for i, item := range l.Items {
		cursor := "  "
		style := theme.Unselected
		if i == l.Selected && l.focused {
			cursor = "│ "
			style = theme.Selected
		}

		b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render(cursor))
		b.WriteString(style.Render(item.Label))
		if item.Detail != "" {
			b.WriteString("  ")
			b.WriteString(theme.Hint.Render(item.Detail))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
