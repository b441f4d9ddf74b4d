package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pranavj/mentis/internal/history"
	"github.com/pranavj/mentis/internal/router"
	"github.com/pranavj/mentis/internal/screen"
	"github.com/pranavj/mentis/internal/screens/study"
	"github.com/pranavj/mentis/internal/store"
	"github.com/pranavj/mentis/internal/studyguide"
	"github.com/pranavj/mentis/internal/ui/components"
	"github.com/pranavj/mentis/internal/ui/layout"
	"github.com/pranavj/mentis/internal/ui/theme"
)

// loadedMsg delivers the full topic history.
type loadedMsg struct {
	Entries []history.Entry
	Err     error
}

// HistoryScreen lists every studied topic, newest first. Selecting one
// re-opens its stored guide without a content call.
type HistoryScreen struct {
	content *studyguide.Service
	hist    *history.Store
	results store.QuizResultRepo

	list    components.List
	entries []history.Entry
	loaded  bool
	errMsg  string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(content *studyguide.Service, hist *history.Store, results store.QuizResultRepo) *HistoryScreen {
	return &HistoryScreen{
		content: content,
		hist:    hist,
		results: results,
		list:    components.NewList(nil),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		entries, err := s.hist.List(context.Background(), 0)
		return loadedMsg{Entries: entries, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if len(s.entries) == 0 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Re-open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.entries = msg.Entries
		items := make([]components.ListItem, len(msg.Entries))
		for i, e := range msg.Entries {
			items[i] = components.ListItem{
				Label:  e.Guide.Topic,
				Detail: fmt.Sprintf("%s · %d sources", e.CreatedAt.Format("Jan 2, 2006"), len(e.Guide.Sources)),
			}
		}
		s.list.SetItems(items)
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return s, s.openSelected()
		}
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *HistoryScreen) openSelected() tea.Cmd {
	if s.list.Selected < 0 || s.list.Selected >= len(s.entries) {
		return nil
	}
	guide := s.entries[s.list.Selected].Guide
	return func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: study.FromGuide(s.content, s.hist, s.results, guide),
		}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.Incorrect.Render("Could not load history: " + s.errMsg))
	}

	if s.loaded && len(s.entries) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.Hint.Render("Nothing studied yet. Start a topic from the home screen."))
	}

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d topics studied", len(s.entries))))
	b.WriteString("\n\n")
	b.WriteString(s.list.View())

	return lipgloss.NewStyle().Padding(1, 4).Render(b.String())
}
