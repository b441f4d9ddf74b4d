package studyguide

import (
	"fmt"
	"strings"
)

const guideSystemPrompt = `You are an expert tutor writing study guides for motivated self-learners.

Rules:
- Write a comprehensive but focused study guide on the given topic.
- Use markdown: a title, short sections with headers, bullet points for facts.
- Ground the guide in current, reliable web sources when search is available.
- Aim for material a learner can absorb in 10-15 minutes.
- Explain terms on first use. Do not assume prior expertise.
- Do not include a bibliography section; citations are reported separately.`

const questionSystemPrompt = `You are a quiz master testing a learner on a study guide.

Rules:
- Write exactly one open-ended question answerable from the guide alone.
- The question must require understanding, not verbatim recall of a single sentence.
- Do not repeat or trivially rephrase any question from the "already asked" list.
- Keep the question to one or two sentences. No preamble, no answer.`

const evaluateSystemPrompt = `You are grading a learner's answer to a quiz question about a study guide.

Rules:
- Judge only against the study guide and well-established facts.
- "Correct" means the substance is right; wording need not match the guide.
- "Partially Correct" means the answer has the right idea but misses or muddles a key element.
- "Incorrect" means the substance is wrong or absent.
- The explanation must say what was right or wrong in two or three sentences, addressed to the learner.`

const summarySystemPrompt = `You are condensing a study guide for a learner who has already read it.

Write a single flowing summary paragraph, under 120 words, capturing the guide's core narrative. Plain text, no headers.`

const keyPointsSystemPrompt = `You are condensing a study guide for a learner who has already read it.

Extract the essential facts as a markdown bullet list, at most 8 bullets, each a single self-contained sentence.`

func buildGuideMessage(topic string) string {
	return fmt.Sprintf("Topic: %s", topic)
}

func buildQuestionMessage(guide string, asked []string, maxAsked int) string {
	var b strings.Builder

	b.WriteString("Study guide:\n")
	b.WriteString(guide)
	b.WriteString("\n\nAlready asked in this quiz:\n")
	b.WriteString(formatAsked(asked, maxAsked))

	return b.String()
}

func buildEvaluateMessage(guide, question, answer string) string {
	var b strings.Builder

	b.WriteString("Study guide:\n")
	b.WriteString(guide)
	fmt.Fprintf(&b, "\n\nQuestion: %s\n", question)
	fmt.Fprintf(&b, "Learner's answer: %s", answer)

	return b.String()
}

// formatAsked renders the asked-question list for the prompt, keeping the
// most recent max entries. Returns "None" for an empty list.
func formatAsked(asked []string, max int) string {
	if len(asked) == 0 {
		return "None"
	}

	if max > 0 && len(asked) > max {
		asked = asked[len(asked)-max:]
	}

	var b strings.Builder
	for i, q := range asked {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
