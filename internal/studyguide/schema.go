package studyguide

import "github.com/pranavj/mentis/internal/llm"

// QuestionSchema shapes quiz question generation output.
var QuestionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "A single open-ended quiz question about a study guide",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question text shown to the learner, one or two sentences",
			},
		},
		"required":             []any{"question"},
		"additionalProperties": false,
	},
}

// EvaluationSchema shapes answer evaluation output. The evaluation field is
// deliberately an unconstrained string: the expected categories are described
// in prose so an off-script verdict still parses and can be handled as an
// unknown category instead of failing the whole call.
var EvaluationSchema = &llm.Schema{
	Name:        "answer-evaluation",
	Description: "A graded verdict on a learner's quiz answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"evaluation": map[string]any{
				"type":        "string",
				"description": `The verdict: "Correct", "Incorrect", or "Partially Correct"`,
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Two or three sentences telling the learner what was right or wrong",
			},
		},
		"required":             []any{"evaluation", "explanation"},
		"additionalProperties": false,
	},
}
