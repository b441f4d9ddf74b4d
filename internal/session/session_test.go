package session

import (
	"fmt"
	"testing"

	"github.com/pranavj/mentis/internal/quiz"
	"github.com/pranavj/mentis/internal/studyguide"
)

func testGuide(topic string) *studyguide.Guide {
	return &studyguide.Guide{
		Topic:   topic,
		Content: "guide for " + topic,
		Sources: []studyguide.Source{{URI: "https://a", Title: "A"}},
	}
}

// studying fast-forwards a fresh session to the studying state.
func studying(t *testing.T, topic string) *Session {
	t.Helper()
	s := New()
	if eff := s.SubmitTopic(topic); eff != EffectFetchGuide {
		t.Fatalf("SubmitTopic effect = %v", eff)
	}
	s.GuideReady(testGuide(topic))
	if s.State() != StateStudying {
		t.Fatalf("state = %v, want studying", s.State())
	}
	return s
}

func TestSubmitTopic(t *testing.T) {
	s := New()

	if eff := s.SubmitTopic("   "); eff != EffectNone {
		t.Fatal("blank topic accepted")
	}
	if s.State() != StateInitial {
		t.Fatalf("state = %v after blank topic", s.State())
	}

	if eff := s.SubmitTopic(" Photosynthesis "); eff != EffectFetchGuide {
		t.Fatal("topic not accepted")
	}
	if s.State() != StateGeneratingGuide {
		t.Fatalf("state = %v", s.State())
	}
	if s.Topic() != "Photosynthesis" {
		t.Fatalf("topic = %q, want trimmed", s.Topic())
	}

	// No re-entrant submission while generating.
	if eff := s.SubmitTopic("Mitosis"); eff != EffectNone {
		t.Fatal("re-entrant SubmitTopic accepted")
	}
	if s.Topic() != "Photosynthesis" {
		t.Fatalf("topic overwritten: %q", s.Topic())
	}
}

func TestGuideFailure(t *testing.T) {
	s := New()
	s.SubmitTopic("topic")
	s.Fail("service unavailable")

	if s.State() != StateError {
		t.Fatalf("state = %v", s.State())
	}
	if s.ErrMsg() != "service unavailable" {
		t.Fatalf("err = %q", s.ErrMsg())
	}

	// Recovery is only through Reset.
	if eff := s.SubmitTopic("other"); eff != EffectNone {
		t.Fatal("SubmitTopic accepted in error state")
	}
	s.Reset()
	if s.State() != StateInitial || s.ErrMsg() != "" {
		t.Fatalf("state = %v err = %q after reset", s.State(), s.ErrMsg())
	}
	if eff := s.SubmitTopic("other"); eff != EffectFetchGuide {
		t.Fatal("SubmitTopic rejected after reset")
	}
}

func TestFailOnlyWhileWorking(t *testing.T) {
	s := studying(t, "topic")
	if eff := s.Fail("late error"); eff != EffectNone {
		t.Fatal("Fail accepted outside a working state")
	}
	if s.State() != StateStudying {
		t.Fatalf("state = %v", s.State())
	}
}

func TestFullQuiz(t *testing.T) {
	s := studying(t, "topic")

	if eff := s.StartQuiz(); eff != EffectFetchQuestion {
		t.Fatalf("StartQuiz effect = %v", eff)
	}

	verdicts := []studyguide.Evaluation{
		studyguide.EvaluationCorrect,
		studyguide.EvaluationIncorrect,
		studyguide.EvaluationCorrect,
		studyguide.EvaluationIncorrect,
		studyguide.EvaluationCorrect,
	}

	for i, v := range verdicts {
		if s.State() != StateAskingQuestion {
			t.Fatalf("question %d: state = %v", i+1, s.State())
		}
		s.QuestionReady(fmt.Sprintf("Q%d", i+1))
		if s.Quiz().Number() != i+1 {
			t.Fatalf("question number = %d, want %d", s.Quiz().Number(), i+1)
		}

		if eff := s.SubmitAnswer("my answer"); eff != EffectFetchEvaluation {
			t.Fatalf("question %d: SubmitAnswer effect = %v", i+1, eff)
		}
		if s.State() != StateEvaluatingAnswer {
			t.Fatalf("state = %v", s.State())
		}
		if s.PendingAnswer() != "my answer" {
			t.Fatalf("pending answer = %q", s.PendingAnswer())
		}

		s.FeedbackReady(&studyguide.Feedback{Evaluation: v})
		if s.State() != StateShowingFeedback {
			t.Fatalf("state = %v", s.State())
		}

		last := i == len(verdicts)-1
		eff := s.Advance()
		if last {
			if eff != EffectNone || s.State() != StateQuizComplete {
				t.Fatalf("after final advance: effect = %v state = %v", eff, s.State())
			}
		} else if eff != EffectFetchQuestion {
			t.Fatalf("question %d: Advance effect = %v", i+1, eff)
		}
	}

	if s.Quiz().Score() != 3 {
		t.Fatalf("score = %d, want 3", s.Quiz().Score())
	}
	if len(s.Quiz().Asked()) != quiz.SessionLength {
		t.Fatalf("asked = %d", len(s.Quiz().Asked()))
	}
}

func TestSubmitAnswerValidation(t *testing.T) {
	s := studying(t, "topic")
	s.StartQuiz()

	// No question on screen yet.
	if eff := s.SubmitAnswer("answer"); eff != EffectNone {
		t.Fatal("answer accepted before question arrived")
	}

	s.QuestionReady("Q1")
	if eff := s.SubmitAnswer("   "); eff != EffectNone {
		t.Fatal("blank answer accepted")
	}
	if s.State() != StateAskingQuestion {
		t.Fatalf("state = %v", s.State())
	}
}

func TestQuizFailureDiscardsProgress(t *testing.T) {
	s := studying(t, "topic")
	s.StartQuiz()
	s.QuestionReady("Q1")
	s.SubmitAnswer("a")
	s.FeedbackReady(&studyguide.Feedback{Evaluation: studyguide.EvaluationCorrect})
	s.Advance()

	// Question 2 fails in flight.
	s.Fail("boom")

	if s.State() != StateError {
		t.Fatalf("state = %v", s.State())
	}
	if s.Quiz() != nil {
		t.Fatal("quiz progress kept after failure")
	}
}

func TestRestartQuizClearsScore(t *testing.T) {
	s := studying(t, "topic")
	s.StartQuiz()
	for i := 0; i < quiz.SessionLength; i++ {
		s.QuestionReady(fmt.Sprintf("Q%d", i+1))
		s.SubmitAnswer("a")
		s.FeedbackReady(&studyguide.Feedback{Evaluation: studyguide.EvaluationCorrect})
		s.Advance()
	}
	if s.State() != StateQuizComplete || s.Quiz().Score() != quiz.SessionLength {
		t.Fatalf("state = %v score = %d", s.State(), s.Quiz().Score())
	}

	// Retaking from the completion screen starts a clean session.
	if eff := s.StartQuiz(); eff != EffectFetchQuestion {
		t.Fatal("StartQuiz rejected from quiz-complete")
	}
	if s.Quiz().Score() != 0 || len(s.Quiz().Asked()) != 0 {
		t.Fatalf("stale quiz data: score = %d asked = %d", s.Quiz().Score(), len(s.Quiz().Asked()))
	}
}

func TestToggleSummaryAndKeyPoints(t *testing.T) {
	s := studying(t, "topic")

	if eff := s.ToggleSummary(); eff != EffectFetchSummary {
		t.Fatalf("ToggleSummary effect = %v", eff)
	}
	if s.State() != StateGeneratingSummary {
		t.Fatalf("state = %v", s.State())
	}
	s.SummaryReady("the summary")
	if s.State() != StateStudying || s.Summary() != "the summary" {
		t.Fatalf("state = %v summary = %q", s.State(), s.Summary())
	}

	// Switching to key points clears the summary.
	if eff := s.ToggleKeyPoints(); eff != EffectFetchKeyPoints {
		t.Fatalf("ToggleKeyPoints effect = %v", eff)
	}
	s.KeyPointsReady("- point")
	if s.Summary() != "" {
		t.Fatal("summary survived key-points toggle")
	}
	if s.KeyPoints() != "- point" {
		t.Fatalf("keyPoints = %q", s.KeyPoints())
	}

	// Toggling off is local: no effect, no state change.
	if eff := s.ToggleKeyPoints(); eff != EffectNone {
		t.Fatal("toggle-off produced an effect")
	}
	if s.State() != StateStudying || s.KeyPoints() != "" {
		t.Fatalf("state = %v keyPoints = %q", s.State(), s.KeyPoints())
	}
}

func TestHistoryFlow(t *testing.T) {
	s := New()

	if eff := s.ShowHistory(); eff != EffectNone {
		t.Fatalf("ShowHistory effect = %v", eff)
	}
	if s.State() != StateShowingHistory {
		t.Fatalf("state = %v", s.State())
	}

	s.SelectHistory(testGuide("Stored Topic"))
	if s.State() != StateStudying {
		t.Fatalf("state = %v", s.State())
	}
	if s.Topic() != "Stored Topic" || s.Guide() == nil {
		t.Fatalf("topic = %q guide = %v", s.Topic(), s.Guide())
	}
}

func TestSelectHistoryDiscardsTransientState(t *testing.T) {
	s := studying(t, "old topic")
	s.ToggleSummary()
	s.SummaryReady("old summary")
	s.StartQuiz()
	s.QuestionReady("Q1")
	s.Fail("abort")
	s.Reset()

	s.ShowHistory()
	s.SelectHistory(testGuide("new topic"))

	if s.Summary() != "" || s.Quiz() != nil || s.ErrMsg() != "" {
		t.Fatalf("transient state survived: summary=%q quiz=%v err=%q",
			s.Summary(), s.Quiz(), s.ErrMsg())
	}
	if s.Topic() != "new topic" {
		t.Fatalf("topic = %q", s.Topic())
	}
}

func TestResetFromAnywhere(t *testing.T) {
	build := map[string]func() *Session{
		"studying": func() *Session { return studying(t, "t") },
		"generating": func() *Session {
			s := New()
			s.SubmitTopic("t")
			return s
		},
		"quiz": func() *Session {
			s := studying(t, "t")
			s.StartQuiz()
			s.QuestionReady("Q1")
			return s
		},
		"error": func() *Session {
			s := New()
			s.SubmitTopic("t")
			s.Fail("x")
			return s
		},
		"history": func() *Session {
			s := New()
			s.ShowHistory()
			return s
		},
	}

	for name, mk := range build {
		t.Run(name, func(t *testing.T) {
			s := mk()
			s.Reset()
			if s.State() != StateInitial {
				t.Fatalf("state = %v", s.State())
			}
			if s.Topic() != "" || s.Guide() != nil || s.Quiz() != nil ||
				s.Summary() != "" || s.KeyPoints() != "" || s.ErrMsg() != "" {
				t.Fatal("reset left data behind")
			}
		})
	}
}

func TestIgnoredTriggers(t *testing.T) {
	s := studying(t, "topic")

	// Completion callbacks for calls that were never started.
	if eff := s.QuestionReady("Q"); eff != EffectNone {
		t.Fatal("QuestionReady accepted while studying")
	}
	if eff := s.FeedbackReady(&studyguide.Feedback{}); eff != EffectNone {
		t.Fatal("FeedbackReady accepted while studying")
	}
	if eff := s.SummaryReady("x"); eff != EffectNone {
		t.Fatal("SummaryReady accepted while studying")
	}
	if eff := s.Advance(); eff != EffectNone {
		t.Fatal("Advance accepted while studying")
	}
	if s.State() != StateStudying {
		t.Fatalf("state = %v", s.State())
	}
}

func TestNoOverlappingCalls(t *testing.T) {
	s := New()
	s.SubmitTopic("topic")

	// Every call-starting trigger is rejected while a call is in flight.
	if s.StartQuiz() != EffectNone || s.ToggleSummary() != EffectNone ||
		s.ToggleKeyPoints() != EffectNone || s.ShowHistory() != EffectNone {
		t.Fatal("trigger accepted while generating guide")
	}
}
