package session

import (
	"strings"

	"github.com/pranavj/mentis/internal/quiz"
	"github.com/pranavj/mentis/internal/studyguide"
)

// State is the single mode the app is in. Exactly one is active; the data
// fields on Session are meaningful only in the states that populate them.
type State int

const (
	StateInitial State = iota
	StateGeneratingGuide
	StateStudying
	StateGeneratingKeyPoints
	StateGeneratingSummary
	StateAskingQuestion
	StateEvaluatingAnswer
	StateShowingFeedback
	StateQuizComplete
	StateShowingHistory
	StateError
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateGeneratingGuide:
		return "generating-guide"
	case StateStudying:
		return "studying"
	case StateGeneratingKeyPoints:
		return "generating-key-points"
	case StateGeneratingSummary:
		return "generating-summary"
	case StateAskingQuestion:
		return "asking-question"
	case StateEvaluatingAnswer:
		return "evaluating-answer"
	case StateShowingFeedback:
		return "showing-feedback"
	case StateQuizComplete:
		return "quiz-complete"
	case StateShowingHistory:
		return "showing-history"
	case StateError:
		return "error"
	}
	return "unknown"
}

// working reports whether a content call is in flight in this state. Only
// one call is ever in flight: transitions into a working state are the only
// way to start a call, and no trigger is accepted while in one except the
// call's own completion or failure.
func (s State) working() bool {
	switch s {
	case StateGeneratingGuide, StateGeneratingKeyPoints, StateGeneratingSummary,
		StateAskingQuestion, StateEvaluatingAnswer:
		return true
	}
	return false
}

// Effect tells the caller which content call to run after a transition.
// The session itself never performs I/O.
type Effect int

const (
	EffectNone Effect = iota
	EffectFetchGuide
	EffectFetchQuestion
	EffectFetchEvaluation
	EffectFetchSummary
	EffectFetchKeyPoints
)

// Session is the application state machine. All mutation happens through
// its transition methods, each of which validates the current state and
// returns the effect the caller must run. A trigger fired in the wrong
// state is ignored and returns EffectNone.
type Session struct {
	state State

	topic string
	guide *studyguide.Guide

	// summary and keyPoints are mutually exclusive: populating one
	// clears the other.
	summary   string
	keyPoints string

	quiz          *quiz.Quiz
	pendingAnswer string

	errMsg string
}

// New returns a session in the initial state.
func New() *Session {
	return &Session{state: StateInitial}
}

func (s *Session) State() State             { return s.state }
func (s *Session) Topic() string            { return s.topic }
func (s *Session) Guide() *studyguide.Guide { return s.guide }
func (s *Session) Summary() string          { return s.summary }
func (s *Session) KeyPoints() string        { return s.keyPoints }
func (s *Session) Quiz() *quiz.Quiz         { return s.quiz }
func (s *Session) PendingAnswer() string    { return s.pendingAnswer }
func (s *Session) ErrMsg() string           { return s.errMsg }

// SubmitTopic starts guide generation for topic. Valid only in the initial
// state with a non-blank topic.
func (s *Session) SubmitTopic(topic string) Effect {
	topic = strings.TrimSpace(topic)
	if s.state != StateInitial || topic == "" {
		return EffectNone
	}
	s.topic = topic
	s.state = StateGeneratingGuide
	return EffectFetchGuide
}

// GuideReady completes guide generation.
func (s *Session) GuideReady(g *studyguide.Guide) Effect {
	if s.state != StateGeneratingGuide {
		return EffectNone
	}
	s.guide = g
	s.state = StateStudying
	return EffectNone
}

// Fail moves the machine to the error state with msg. Valid only while a
// content call is in flight. Quiz progress is discarded; the only way out
// is Reset.
func (s *Session) Fail(msg string) Effect {
	if !s.state.working() {
		return EffectNone
	}
	s.quiz = nil
	s.pendingAnswer = ""
	s.errMsg = msg
	s.state = StateError
	return EffectNone
}

// StartQuiz begins a fresh quiz over the current guide, discarding any
// previous quiz. Valid from studying and from a completed quiz.
func (s *Session) StartQuiz() Effect {
	if s.state != StateStudying && s.state != StateQuizComplete {
		return EffectNone
	}
	s.quiz = quiz.New(s.topic)
	s.pendingAnswer = ""
	return s.requestQuestion()
}

// requestQuestion either asks for the next question or, once the quiz has
// its full complement, completes it without a call.
func (s *Session) requestQuestion() Effect {
	if s.quiz.Done() {
		s.state = StateQuizComplete
		return EffectNone
	}
	s.state = StateAskingQuestion
	return EffectFetchQuestion
}

// QuestionReady records the fetched question as current.
func (s *Session) QuestionReady(question string) Effect {
	if s.state != StateAskingQuestion || s.quiz == nil {
		return EffectNone
	}
	s.quiz.Pose(question)
	return EffectNone
}

// SubmitAnswer sends the learner's answer for evaluation. Valid only with
// a question on screen and non-blank text.
func (s *Session) SubmitAnswer(text string) Effect {
	text = strings.TrimSpace(text)
	if s.state != StateAskingQuestion || text == "" {
		return EffectNone
	}
	if s.quiz == nil || s.quiz.Current() == "" {
		return EffectNone
	}
	s.pendingAnswer = text
	s.state = StateEvaluatingAnswer
	return EffectFetchEvaluation
}

// FeedbackReady records the evaluation of the pending answer.
func (s *Session) FeedbackReady(fb *studyguide.Feedback) Effect {
	if s.state != StateEvaluatingAnswer {
		return EffectNone
	}
	s.quiz.Grade(fb)
	s.pendingAnswer = ""
	s.state = StateShowingFeedback
	return EffectNone
}

// Advance moves past the feedback to the next question, or to completion
// once all questions are graded.
func (s *Session) Advance() Effect {
	if s.state != StateShowingFeedback {
		return EffectNone
	}
	s.quiz.Advance()
	return s.requestQuestion()
}

// ToggleSummary shows or hides the one-paragraph summary. Toggling on
// clears the key points and fetches; toggling off is local.
func (s *Session) ToggleSummary() Effect {
	if s.state != StateStudying {
		return EffectNone
	}
	if s.summary != "" {
		s.summary = ""
		return EffectNone
	}
	s.keyPoints = ""
	s.state = StateGeneratingSummary
	return EffectFetchSummary
}

// ToggleKeyPoints shows or hides the key-point list, mirroring
// ToggleSummary.
func (s *Session) ToggleKeyPoints() Effect {
	if s.state != StateStudying {
		return EffectNone
	}
	if s.keyPoints != "" {
		s.keyPoints = ""
		return EffectNone
	}
	s.summary = ""
	s.state = StateGeneratingKeyPoints
	return EffectFetchKeyPoints
}

// SummaryReady completes summary generation.
func (s *Session) SummaryReady(text string) Effect {
	if s.state != StateGeneratingSummary {
		return EffectNone
	}
	s.summary = text
	s.state = StateStudying
	return EffectNone
}

// KeyPointsReady completes key-point generation.
func (s *Session) KeyPointsReady(text string) Effect {
	if s.state != StateGeneratingKeyPoints {
		return EffectNone
	}
	s.keyPoints = text
	s.state = StateStudying
	return EffectNone
}

// ShowHistory opens the topic history. Valid when nothing is in flight.
func (s *Session) ShowHistory() Effect {
	if s.state != StateInitial && s.state != StateStudying {
		return EffectNone
	}
	s.state = StateShowingHistory
	return EffectNone
}

// SelectHistory loads a stored guide for re-reading without a content
// call, discarding any transient state from the previous topic.
func (s *Session) SelectHistory(g *studyguide.Guide) Effect {
	if s.state != StateShowingHistory || g == nil {
		return EffectNone
	}
	s.clearTransient()
	s.topic = g.Topic
	s.guide = g
	s.state = StateStudying
	return EffectNone
}

// Reset returns to the initial state from anywhere, clearing everything.
// This is also the only recovery path from the error state.
func (s *Session) Reset() Effect {
	s.clearTransient()
	s.topic = ""
	s.guide = nil
	s.state = StateInitial
	return EffectNone
}

func (s *Session) clearTransient() {
	s.summary = ""
	s.keyPoints = ""
	s.quiz = nil
	s.pendingAnswer = ""
	s.errMsg = ""
}
