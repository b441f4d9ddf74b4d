package studyguide

// Config holds generation settings for all content operations.
type Config struct {
	GuideMaxTokens    int
	AuxMaxTokens      int // summary and key points
	QuestionMaxTokens int
	EvalMaxTokens     int

	Temperature float64

	// MaxAskedInPrompt caps how many prior questions go into the
	// deduplication list. A quiz is 5 questions, so the cap never binds
	// in practice; it guards prompt growth if the session length changes.
	MaxAskedInPrompt int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		GuideMaxTokens:    4096,
		AuxMaxTokens:      1024,
		QuestionMaxTokens: 256,
		EvalMaxTokens:     512,
		Temperature:       0.4,
		MaxAskedInPrompt:  10,
	}
}
