package quiz

import (
	"github.com/google/uuid"

	"github.com/pranavj/mentis/internal/studyguide"
)

// SessionLength is the number of questions in one quiz.
const SessionLength = 5

// Quiz tracks one quiz session over a study guide: the questions asked so
// far, the one currently on screen, the latest feedback, and the running
// score. It holds no model access; callers fetch questions and evaluations
// and feed them in.
type Quiz struct {
	id    string
	topic string

	asked    []string
	current  string
	feedback *studyguide.Feedback
	score    int
}

// New starts a quiz for topic with no questions asked yet.
func New(topic string) *Quiz {
	return &Quiz{
		id:    uuid.NewString(),
		topic: topic,
	}
}

// ID is the session identifier, used when persisting the result.
func (q *Quiz) ID() string { return q.id }

// Topic is the study guide topic this quiz covers.
func (q *Quiz) Topic() string { return q.topic }

// Asked returns the questions posed so far, oldest first, including the
// current one.
func (q *Quiz) Asked() []string { return q.asked }

// Current is the question awaiting an answer, or "" between questions.
func (q *Quiz) Current() string { return q.current }

// Feedback is the evaluation of the last answered question, or nil before
// the first answer and after Advance.
func (q *Quiz) Feedback() *studyguide.Feedback { return q.feedback }

// Score is the count of answers graded exactly Correct.
func (q *Quiz) Score() int { return q.score }

// Number is the 1-based index of the current or upcoming question.
func (q *Quiz) Number() int {
	if q.current != "" || q.feedback != nil {
		return len(q.asked)
	}
	return len(q.asked) + 1
}

// Pose records a new question as current. It reports false when the quiz
// already has its full complement of questions.
func (q *Quiz) Pose(question string) bool {
	if len(q.asked) >= SessionLength {
		return false
	}
	q.asked = append(q.asked, question)
	q.current = question
	q.feedback = nil
	return true
}

// Grade records the evaluation of the current question's answer. Only an
// exact Correct verdict scores; partial and unknown categories do not.
func (q *Quiz) Grade(fb *studyguide.Feedback) {
	q.feedback = fb
	q.current = ""
	if fb != nil && fb.Evaluation == studyguide.EvaluationCorrect {
		q.score++
	}
}

// Advance clears the feedback, making room for the next question. It
// reports false when the quiz is done.
func (q *Quiz) Advance() bool {
	q.feedback = nil
	return !q.Done()
}

// Done reports whether all questions have been asked and graded.
func (q *Quiz) Done() bool {
	return len(q.asked) >= SessionLength && q.current == ""
}
