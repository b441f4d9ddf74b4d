package study

import (
	"github.com/pranavj/mentis/internal/studyguide"
)

// guideMsg is sent when guide generation finishes.
type guideMsg struct {
	Guide *studyguide.Guide
	Err   error
}

// questionMsg is sent when a quiz question has been generated.
type questionMsg struct {
	Question string
	Err      error
}

// feedbackMsg is sent when answer evaluation finishes.
type feedbackMsg struct {
	Feedback *studyguide.Feedback
	Err      error
}

type auxKind int

const (
	auxSummary auxKind = iota
	auxKeyPoints
)

// auxMsg is sent when summary or key-point generation finishes.
type auxMsg struct {
	Kind auxKind
	Text string
	Err  error
}

// resultSavedMsg is sent after the quiz result write completes.
type resultSavedMsg struct {
	Err error
}
