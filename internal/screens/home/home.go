package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pranavj/mentis/internal/history"
	"github.com/pranavj/mentis/internal/router"
	"github.com/pranavj/mentis/internal/screen"
	historyscreen "github.com/pranavj/mentis/internal/screens/history"
	"github.com/pranavj/mentis/internal/screens/study"
	"github.com/pranavj/mentis/internal/store"
	"github.com/pranavj/mentis/internal/studyguide"
	"github.com/pranavj/mentis/internal/ui/components"
	"github.com/pranavj/mentis/internal/ui/layout"
	"github.com/pranavj/mentis/internal/ui/theme"
)

const recentLimit = 5

// recentsMsg delivers the recent-topic list.
type recentsMsg struct {
	Entries []history.Entry
	Err     error
}

// HomeScreen is the topic entry point: a prompt for a new topic plus the
// most recent topics for quick re-opening.
type HomeScreen struct {
	content *studyguide.Service
	hist    *history.Store
	results store.QuizResultRepo

	input   components.TextInput
	recents components.List
	entries []history.Entry

	// focus alternates between the topic input and the recents list.
	listFocused bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(content *studyguide.Service, hist *history.Store, results store.QuizResultRepo) *HomeScreen {
	s := &HomeScreen{
		content: content,
		hist:    hist,
		results: results,
		input:   components.NewTextInput("What do you want to learn about?", 200),
		recents: components.NewList(nil),
	}
	s.recents.Focus(false)
	return s
}

func (s *HomeScreen) Init() tea.Cmd {
	return tea.Batch(s.input.Init(), s.loadRecents())
}

func (s *HomeScreen) Title() string {
	return "New Topic"
}

func (s *HomeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Study"},
	}
	if len(s.entries) > 0 {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Recent topics"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "Ctrl+H", Description: "History"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
	return hints
}

func (s *HomeScreen) loadRecents() tea.Cmd {
	return func() tea.Msg {
		entries, err := s.hist.List(context.Background(), recentLimit)
		return recentsMsg{Entries: entries, Err: err}
	}
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recentsMsg:
		// History is a convenience; a failed load just hides the list.
		if msg.Err == nil {
			s.entries = msg.Entries
			items := make([]components.ListItem, len(msg.Entries))
			for i, e := range msg.Entries {
				items[i] = components.ListItem{
					Label:  e.Guide.Topic,
					Detail: e.CreatedAt.Format("Jan 2"),
				}
			}
			s.recents.SetItems(items)
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			if len(s.entries) > 0 {
				s.listFocused = !s.listFocused
				s.recents.Focus(s.listFocused)
			}
			return s, nil

		case "ctrl+h":
			return s, func() tea.Msg {
				return router.PushScreenMsg{
					Screen: historyscreen.New(s.content, s.hist, s.results),
				}
			}

		case "enter":
			if s.listFocused {
				return s, s.openSelected()
			}
			return s, s.submitTopic()
		}
	}

	if s.listFocused {
		var cmd tea.Cmd
		s.recents, cmd = s.recents.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *HomeScreen) submitTopic() tea.Cmd {
	topic := s.input.Value()
	if topic == "" {
		return nil
	}
	s.input.Reset()
	return func() tea.Msg {
		return router.PushScreenMsg{
			Screen: study.New(s.content, s.hist, s.results, topic),
		}
	}
}

func (s *HomeScreen) openSelected() tea.Cmd {
	if s.recents.Selected < 0 || s.recents.Selected >= len(s.entries) {
		return nil
	}
	guide := s.entries[s.recents.Selected].Guide
	return func() tea.Msg {
		return router.PushScreenMsg{
			Screen: study.FromGuide(s.content, s.hist, s.results, guide),
		}
	}
}

func (s *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width - 8).Render("Mentis"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width - 8).Render("Pick a topic. Read the guide. Take the quiz."))
	b.WriteString("\n\n\n")

	inputLabel := "Topic"
	if !s.listFocused {
		inputLabel = theme.Selected.Render(inputLabel)
	} else {
		inputLabel = theme.Hint.Render(inputLabel)
	}
	b.WriteString(inputLabel)
	b.WriteString("\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	if len(s.entries) > 0 {
		recentsLabel := fmt.Sprintf("Recent topics (%d)", len(s.entries))
		if s.listFocused {
			recentsLabel = theme.Selected.Render(recentsLabel)
		} else {
			recentsLabel = theme.Hint.Render(recentsLabel)
		}
		b.WriteString(recentsLabel)
		b.WriteString("\n")
		b.WriteString(s.recents.View())
	}

	return lipgloss.NewStyle().Padding(1, 4).Render(b.String())
}
