package study

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/pranavj/mentis/internal/history"
	"github.com/pranavj/mentis/internal/quiz"
	"github.com/pranavj/mentis/internal/router"
	"github.com/pranavj/mentis/internal/screen"
	"github.com/pranavj/mentis/internal/session"
	"github.com/pranavj/mentis/internal/store"
	"github.com/pranavj/mentis/internal/studyguide"
	"github.com/pranavj/mentis/internal/ui/components"
	"github.com/pranavj/mentis/internal/ui/layout"
)

// StudyScreen drives one topic end to end: guide generation, reading with
// the summary/key-point panel, and the quiz loop. All logic lives in the
// session state machine; this screen dispatches triggers into it and runs
// the effects it returns as commands.
type StudyScreen struct {
	content *studyguide.Service
	hist    *history.Store
	results store.QuizResultRepo

	sess    *session.Session
	pending session.Effect // effect from construction, run by Init

	input       components.TextInput
	spin        components.Spinner
	scroll      int
	resultSaved bool
	saveErr     string
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)

// New creates a StudyScreen that generates a fresh guide for topic.
func New(content *studyguide.Service, hist *history.Store, results store.QuizResultRepo, topic string) *StudyScreen {
	s := newScreen(content, hist, results)
	s.pending = s.sess.SubmitTopic(topic)
	return s
}

// FromGuide creates a StudyScreen over a guide re-opened from history; no
// content call is made until the user starts a quiz or opens a panel.
func FromGuide(content *studyguide.Service, hist *history.Store, results store.QuizResultRepo, g *studyguide.Guide) *StudyScreen {
	s := newScreen(content, hist, results)
	s.sess.ShowHistory()
	s.sess.SelectHistory(g)
	return s
}

func newScreen(content *studyguide.Service, hist *history.Store, results store.QuizResultRepo) *StudyScreen {
	return &StudyScreen{
		content: content,
		hist:    hist,
		results: results,
		sess:    session.New(),
		input:   components.NewTextInput("Type your answer...", 500),
		spin:    components.NewSpinner("Working..."),
	}
}

func (s *StudyScreen) Init() tea.Cmd {
	cmd := s.run(s.pending)
	s.pending = session.EffectNone
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, s.spin.Tick())
}

func (s *StudyScreen) Title() string {
	switch s.sess.State() {
	case session.StateGeneratingGuide:
		return "Generating Guide"
	case session.StateAskingQuestion, session.StateEvaluatingAnswer, session.StateShowingFeedback:
		return "Quiz"
	case session.StateQuizComplete:
		return "Quiz Complete"
	case session.StateError:
		return "Error"
	}
	return "Study"
}

// Topic is shown in the header once known.
func (s *StudyScreen) Topic() string {
	return s.sess.Topic()
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	switch s.sess.State() {
	case session.StateStudying:
		return []layout.KeyHint{
			{Key: "Q", Description: "Quiz"},
			{Key: "S", Description: "Summary"},
			{Key: "K", Description: "Key points"},
			{Key: "↑↓", Description: "Scroll"},
			{Key: "Esc", Description: "Back"},
		}
	case session.StateAskingQuestion:
		if s.sess.Quiz() != nil && s.sess.Quiz().Current() != "" {
			return []layout.KeyHint{
				{Key: "Enter", Description: "Submit"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	case session.StateShowingFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
		}
	case session.StateQuizComplete:
		return []layout.KeyHint{
			{Key: "R", Description: "Retake"},
			{Key: "N", Description: "New topic"},
			{Key: "Esc", Description: "Back"},
		}
	case session.StateError:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back to start"},
		}
	}
	return nil
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case guideMsg:
		return s.handleGuide(msg)

	case questionMsg:
		return s.handleQuestion(msg)

	case feedbackMsg:
		return s.handleFeedback(msg)

	case auxMsg:
		return s.handleAux(msg)

	case resultSavedMsg:
		if msg.Err != nil {
			s.saveErr = msg.Err.Error()
		}
		return s, nil

	case components.SpinnerTickMsg:
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.answerInputActive() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *StudyScreen) answerInputActive() bool {
	return s.sess.State() == session.StateAskingQuestion &&
		s.sess.Quiz() != nil && s.sess.Quiz().Current() != ""
}

func (s *StudyScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.sess.State() {
	case session.StateStudying:
		switch key {
		case "q":
			s.resultSaved = false
			s.saveErr = ""
			return s, s.effectCmd(s.sess.StartQuiz())
		case "s":
			return s, s.effectCmd(s.sess.ToggleSummary())
		case "k":
			return s, s.effectCmd(s.sess.ToggleKeyPoints())
		case "up":
			if s.scroll > 0 {
				s.scroll--
			}
		case "down":
			s.scroll++
		case "pgup":
			s.scroll -= 10
			if s.scroll < 0 {
				s.scroll = 0
			}
		case "pgdown":
			s.scroll += 10
		}
		return s, nil

	case session.StateAskingQuestion:
		if !s.answerInputActive() {
			return s, nil
		}
		if key == "enter" {
			answer := s.input.Value()
			eff := s.sess.SubmitAnswer(answer)
			if eff == session.EffectNone {
				return s, nil
			}
			s.input.Reset()
			return s, s.effectCmd(eff)
		}
		// Typing goes to the answer box.
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case session.StateShowingFeedback:
		if key == "enter" {
			cmd := s.effectCmd(s.sess.Advance())
			if s.sess.State() == session.StateQuizComplete {
				return s, tea.Batch(cmd, s.saveResult())
			}
			return s, cmd
		}

	case session.StateQuizComplete:
		switch key {
		case "r":
			s.resultSaved = false
			s.saveErr = ""
			return s, s.effectCmd(s.sess.StartQuiz())
		case "n":
			s.sess.Reset()
			return s, func() tea.Msg { return router.HomeMsg{} }
		}

	case session.StateError:
		if key == "enter" {
			s.sess.Reset()
			return s, func() tea.Msg { return router.HomeMsg{} }
		}
	}

	return s, nil
}

// effectCmd turns a transition's effect into the command that fulfils it,
// restarting the spinner for the wait.
func (s *StudyScreen) effectCmd(eff session.Effect) tea.Cmd {
	cmd := s.run(eff)
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, s.spin.Tick())
}

func (s *StudyScreen) run(eff session.Effect) tea.Cmd {
	switch eff {
	case session.EffectFetchGuide:
		return s.fetchGuide()
	case session.EffectFetchQuestion:
		return s.fetchQuestion()
	case session.EffectFetchEvaluation:
		return s.fetchEvaluation()
	case session.EffectFetchSummary:
		return s.fetchAux(auxSummary)
	case session.EffectFetchKeyPoints:
		return s.fetchAux(auxKeyPoints)
	}
	return nil
}

// fetchGuide generates the guide and records it in the topic history.
// History is best-effort: a write failure never blocks studying.
func (s *StudyScreen) fetchGuide() tea.Cmd {
	topic := s.sess.Topic()
	return func() tea.Msg {
		ctx := context.Background()
		g, err := s.content.GenerateGuide(ctx, topic)
		if err != nil {
			return guideMsg{Err: err}
		}
		_, _ = s.hist.Add(ctx, g)
		return guideMsg{Guide: g}
	}
}

func (s *StudyScreen) fetchQuestion() tea.Cmd {
	guide := s.sess.Guide().Content
	asked := s.sess.Quiz().Asked()
	return func() tea.Msg {
		q, err := s.content.GenerateQuestion(context.Background(), guide, asked)
		return questionMsg{Question: q, Err: err}
	}
}

func (s *StudyScreen) fetchEvaluation() tea.Cmd {
	guide := s.sess.Guide().Content
	question := s.sess.Quiz().Current()
	answer := s.sess.PendingAnswer()
	return func() tea.Msg {
		fb, err := s.content.EvaluateAnswer(context.Background(), guide, question, answer)
		return feedbackMsg{Feedback: fb, Err: err}
	}
}

func (s *StudyScreen) fetchAux(kind auxKind) tea.Cmd {
	guide := s.sess.Guide().Content
	return func() tea.Msg {
		var text string
		var err error
		if kind == auxSummary {
			text, err = s.content.Summarize(context.Background(), guide)
		} else {
			text, err = s.content.KeyPoints(context.Background(), guide)
		}
		return auxMsg{Kind: kind, Text: text, Err: err}
	}
}

func (s *StudyScreen) saveResult() tea.Cmd {
	qz := s.sess.Quiz()
	if qz == nil || s.results == nil || s.resultSaved {
		return nil
	}
	s.resultSaved = true
	rec := store.QuizResultRecord{
		ID:    qz.ID(),
		Topic: qz.Topic(),
		Score: qz.Score(),
		Total: quiz.SessionLength,
	}
	return func() tea.Msg {
		return resultSavedMsg{Err: s.results.Record(context.Background(), rec)}
	}
}

func (s *StudyScreen) handleGuide(msg guideMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.sess.Fail(msg.Err.Error())
		return s, nil
	}
	s.scroll = 0
	s.sess.GuideReady(msg.Guide)
	return s, nil
}

func (s *StudyScreen) handleQuestion(msg questionMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.sess.Fail(msg.Err.Error())
		return s, nil
	}
	s.sess.QuestionReady(msg.Question)
	s.input = components.NewTextInput("Type your answer...", 500)
	return s, s.input.Init()
}

func (s *StudyScreen) handleFeedback(msg feedbackMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.sess.Fail(msg.Err.Error())
		return s, nil
	}
	s.sess.FeedbackReady(msg.Feedback)
	return s, nil
}

func (s *StudyScreen) handleAux(msg auxMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.sess.Fail(msg.Err.Error())
		return s, nil
	}
	if msg.Kind == auxSummary {
		s.sess.SummaryReady(msg.Text)
	} else {
		s.sess.KeyPointsReady(msg.Text)
	}
	return s, nil
}
