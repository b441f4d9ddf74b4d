package studyguide

// Source is one web citation attached to a generated guide.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Guide is a generated study guide: markdown text plus its citations.
type Guide struct {
	Topic   string
	Content string
	Sources []Source
}

// Evaluation is the model's verdict on a quiz answer. The three expected
// values are below; anything else is kept as-is and treated as an unknown,
// unscored category.
type Evaluation string

const (
	EvaluationCorrect   Evaluation = "Correct"
	EvaluationIncorrect Evaluation = "Incorrect"
	EvaluationPartial   Evaluation = "Partially Correct"
)

// Known reports whether e is one of the expected categories.
func (e Evaluation) Known() bool {
	switch e {
	case EvaluationCorrect, EvaluationIncorrect, EvaluationPartial:
		return true
	}
	return false
}

// Feedback is the structured result of evaluating one answer.
type Feedback struct {
	Evaluation  Evaluation
	Explanation string
}
