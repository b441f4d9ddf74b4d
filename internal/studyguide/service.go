package studyguide

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/pranavj/mentis/internal/llm"
)

// ProviderFunc builds the model provider on demand.
type ProviderFunc func(ctx context.Context) (llm.Provider, error)

// Service is the app's content boundary: guide generation, quiz questions,
// answer evaluation, and the two condensation operations. The provider is
// constructed lazily on the first call, so a missing API key surfaces as a
// call failure rather than a startup failure.
type Service struct {
	cfg Config

	newProvider ProviderFunc

	once     sync.Once
	provider llm.Provider
	initErr  error
}

// NewService creates a Service whose provider comes from newProvider at
// first use.
func NewService(newProvider ProviderFunc, cfg Config) *Service {
	return &Service{newProvider: newProvider, cfg: cfg}
}

// NewServiceWithProvider creates a Service bound to an existing provider.
// Used by tests.
func NewServiceWithProvider(p llm.Provider, cfg Config) *Service {
	s := &Service{cfg: cfg}
	s.once.Do(func() { s.provider = p })
	return s
}

func (s *Service) client(ctx context.Context) (llm.Provider, error) {
	s.once.Do(func() {
		s.provider, s.initErr = s.newProvider(ctx)
	})
	if s.initErr != nil {
		return nil, fmt.Errorf("model provider: %w", s.initErr)
	}
	return s.provider, nil
}

// GenerateGuide produces a study guide for topic, with web grounding when
// the provider supports it. Citations are filtered and deduplicated.
func (s *Service) GenerateGuide(ctx context.Context, topic string) (*Guide, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("topic is empty")
	}

	p, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, "guide")
	resp, err := p.Generate(ctx, llm.Request{
		System:      guideSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildGuideMessage(topic)}},
		WebSearch:   true,
		MaxTokens:   s.cfg.GuideMaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate guide: %w", err)
	}

	return &Guide{
		Topic:   topic,
		Content: string(resp.Content),
		Sources: CollectSources(resp.Grounding),
	}, nil
}

// GenerateQuestion produces one quiz question about the guide, instructing
// the model to avoid the already-asked list. Uniqueness is the model's job,
// not enforced locally.
func (s *Service) GenerateQuestion(ctx context.Context, guide string, asked []string) (string, error) {
	p, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	ctx = llm.WithPurpose(ctx, "question")
	resp, err := p.Generate(ctx, llm.Request{
		System:      questionSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildQuestionMessage(guide, asked, s.cfg.MaxAskedInPrompt)}},
		Schema:      QuestionSchema,
		MaxTokens:   s.cfg.QuestionMaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("generate question: %w", err)
	}

	var out struct {
		Question string `json:"question"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse question response: %w", err)
	}
	if strings.TrimSpace(out.Question) == "" {
		return "", fmt.Errorf("model returned an empty question")
	}
	return out.Question, nil
}

// EvaluateAnswer grades the learner's answer against the guide.
func (s *Service) EvaluateAnswer(ctx context.Context, guide, question, answer string) (*Feedback, error) {
	p, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, "evaluate")
	resp, err := p.Generate(ctx, llm.Request{
		System:      evaluateSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildEvaluateMessage(guide, question, answer)}},
		Schema:      EvaluationSchema,
		MaxTokens:   s.cfg.EvalMaxTokens,
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("evaluate answer: %w", err)
	}

	var out struct {
		Evaluation  string `json:"evaluation"`
		Explanation string `json:"explanation"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse evaluation response: %w", err)
	}

	return &Feedback{
		Evaluation:  Evaluation(strings.TrimSpace(out.Evaluation)),
		Explanation: out.Explanation,
	}, nil
}

// Summarize condenses the guide into one paragraph.
func (s *Service) Summarize(ctx context.Context, guide string) (string, error) {
	return s.condense(ctx, "summary", summarySystemPrompt, guide)
}

// KeyPoints extracts the guide's essential facts as a bullet list.
func (s *Service) KeyPoints(ctx context.Context, guide string) (string, error) {
	return s.condense(ctx, "key-points", keyPointsSystemPrompt, guide)
}

func (s *Service) condense(ctx context.Context, purpose, system, guide string) (string, error) {
	p, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	ctx = llm.WithPurpose(ctx, purpose)
	resp, err := p.Generate(ctx, llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: guide}},
		MaxTokens:   s.cfg.AuxMaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", purpose, err)
	}

	return string(resp.Content), nil
}
