package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/pranavj/mentis/internal/quiz"
	"github.com/pranavj/mentis/internal/session"
	"github.com/pranavj/mentis/internal/studyguide"
	"github.com/pranavj/mentis/internal/ui/layout"
	"github.com/pranavj/mentis/internal/ui/theme"
)

func (s *StudyScreen) View(width, height int) string {
	switch s.sess.State() {
	case session.StateGeneratingGuide:
		return s.renderWait(width, height, "Researching your topic...")
	case session.StateStudying, session.StateGeneratingSummary, session.StateGeneratingKeyPoints:
		return s.renderGuide(width, height)
	case session.StateAskingQuestion:
		return s.renderQuestion(width, height)
	case session.StateEvaluatingAnswer:
		return s.renderEvaluating(width, height)
	case session.StateShowingFeedback:
		return s.renderFeedback(width, height)
	case session.StateQuizComplete:
		return s.renderComplete(width, height)
	case session.StateError:
		return s.renderError(width, height)
	}
	return ""
}

func (s *StudyScreen) renderWait(width, height int, label string) string {
	spin := s.spin
	spin.Label = label
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(spin.View())
}

// renderGuide shows the guide text with the optional summary/key-point
// panel above it. Scrolling applies to the guide body only.
func (s *StudyScreen) renderGuide(width, height int) string {
	g := s.sess.Guide()
	if g == nil {
		return ""
	}

	contentWidth := layout.ContentWidth(width)
	var b strings.Builder

	if panel := s.renderAuxPanel(contentWidth); panel != "" {
		b.WriteString(panel)
		b.WriteString("\n\n")
	}

	body := lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(theme.Text).
		Render(g.Content)

	if sources := renderSources(g.Sources, contentWidth); sources != "" {
		body += "\n\n" + sources
	}

	used := lipgloss.Height(b.String())
	b.WriteString(scrollWindow(body, s.scroll, height-used-1))

	return lipgloss.NewStyle().PaddingLeft(4).Render(b.String())
}

func (s *StudyScreen) renderAuxPanel(width int) string {
	switch s.sess.State() {
	case session.StateGeneratingSummary:
		return theme.AuxPanel.Width(width).Render(s.spinLabeled("Summarizing..."))
	case session.StateGeneratingKeyPoints:
		return theme.AuxPanel.Width(width).Render(s.spinLabeled("Extracting key points..."))
	}

	var title, text string
	switch {
	case s.sess.Summary() != "":
		title, text = "Summary", s.sess.Summary()
	case s.sess.KeyPoints() != "":
		title, text = "Key Points", s.sess.KeyPoints()
	default:
		return ""
	}

	heading := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(title)
	return theme.AuxPanel.Width(width).Render(heading + "\n\n" + text)
}

func (s *StudyScreen) spinLabeled(label string) string {
	spin := s.spin
	spin.Label = label
	return spin.View()
}

func renderSources(sources []studyguide.Source, width int) string {
	if len(sources) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render("Sources"))
	b.WriteString("\n")
	for _, src := range sources {
		b.WriteString(theme.Hint.Render("  • " + src.Title))
		b.WriteString("\n")
		b.WriteString("    " + theme.SourceLink.Render(truncateLine(src.URI, width-4)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *StudyScreen) renderQuestion(width, height int) string {
	qz := s.sess.Quiz()
	if qz == nil || qz.Current() == "" {
		return s.renderWait(width, height, "Thinking of a question...")
	}

	contentWidth := layout.ContentWidth(width)
	var b strings.Builder

	b.WriteString(renderQuizHeader(qz, contentWidth))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(theme.Text).
		Bold(true).
		Render(qz.Current()))
	b.WriteString("\n\n")

	b.WriteString(s.input.View())

	return lipgloss.NewStyle().Padding(1, 4).Render(b.String())
}

func (s *StudyScreen) renderEvaluating(width, height int) string {
	return s.renderWait(width, height, "Checking your answer...")
}

func (s *StudyScreen) renderFeedback(width, height int) string {
	qz := s.sess.Quiz()
	fb := qz.Feedback()
	if fb == nil {
		return ""
	}

	contentWidth := layout.ContentWidth(width)
	var b strings.Builder

	b.WriteString(renderQuizHeader(qz, contentWidth))
	b.WriteString("\n\n")

	b.WriteString(renderVerdict(fb.Evaluation))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(theme.Text).
		Render(fb.Explanation))

	return lipgloss.NewStyle().Padding(1, 4).Render(b.String())
}

func renderVerdict(e studyguide.Evaluation) string {
	switch e {
	case studyguide.EvaluationCorrect:
		return theme.Correct.Render("✓ Correct")
	case studyguide.EvaluationPartial:
		return theme.Partial.Render("◐ Partially Correct")
	case studyguide.EvaluationIncorrect:
		return theme.Incorrect.Render("✗ Incorrect")
	}
	return theme.Partial.Render("? " + string(e))
}

func renderQuizHeader(qz *quiz.Quiz, width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Question %d of %d", qz.Number(), quiz.SessionLength))

	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Score: %d", qz.Score()))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (s *StudyScreen) renderComplete(width, height int) string {
	qz := s.sess.Quiz()
	if qz == nil {
		return ""
	}

	score := qz.Score()
	var verdict string
	switch {
	case score == quiz.SessionLength:
		verdict = theme.Correct.Render("Perfect score!")
	case score >= quiz.SessionLength/2+1:
		verdict = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Well done!")
	default:
		verdict = theme.Hint.Render("Worth another read.")
	}

	lines := []string{
		theme.Title.Render("Quiz Complete"),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render(fmt.Sprintf("You scored %d / %d", score, quiz.SessionLength)),
		"",
		verdict,
	}
	if s.saveErr != "" {
		lines = append(lines, "", theme.Hint.Render("(result not saved: "+s.saveErr+")"))
	}

	card := theme.Card.Render(strings.Join(lines, "\n"))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}

func (s *StudyScreen) renderError(width, height int) string {
	card := theme.Card.
		BorderForeground(theme.Error).
		Render(theme.Incorrect.Render("Something went wrong") +
			"\n\n" +
			lipgloss.NewStyle().Width(layout.ContentWidth(width)/2).Foreground(theme.Text).
				Render(s.sess.ErrMsg()) +
			"\n\n" +
			theme.Hint.Render("Press Enter to start over"))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}

// scrollWindow slices rendered text to the visible line range.
func scrollWindow(rendered string, offset, visible int) string {
	if visible <= 0 {
		return ""
	}
	lines := strings.Split(rendered, "\n")
	if offset > len(lines)-visible {
		offset = len(lines) - visible
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + visible
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[offset:end], "\n")
}

func truncateLine(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
