package components

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pranavj/mentis/internal/ui/theme"
)

// SpinnerTickMsg advances the spinner animation.
type SpinnerTickMsg time.Time

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 120 * time.Millisecond

// Spinner is a small loading indicator with a label.
type Spinner struct {
	frame int
	Label string
}

// NewSpinner creates a spinner with the given label.
func NewSpinner(label string) Spinner {
	return Spinner{Label: label}
}

// Tick returns the command that drives the animation.
func (s Spinner) Tick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return SpinnerTickMsg(t)
	})
}

// Update advances the frame on tick messages and reschedules.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if _, ok := msg.(SpinnerTickMsg); ok {
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, s.Tick()
	}
	return s, nil
}

// View renders the spinner frame and label.
func (s Spinner) View() string {
	return lipgloss.NewStyle().Foreground(theme.Primary).Render(spinnerFrames[s.frame]) +
		" " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.Label)
}
