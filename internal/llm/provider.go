package llm

import (
	"context"
	"encoding/json"
)

// Provider is the single abstraction the rest of the app uses to talk to a
// generative model. Implementations exist per vendor; decorators add retry
// and event logging around them.
type Provider interface {
	// Generate sends one request and waits for the full response.
	// When req.Schema is set the provider uses its native structured-output
	// mechanism and the returned Content is schema-validated JSON. When no
	// schema is set, Content holds the raw text output.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the model this provider is configured for.
	ModelID() string
}

// Request describes a single generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Every call in mentis is single-turn,
	// so this holds exactly one user message in practice.
	Messages []Message

	// Schema, when non-nil, requests structured JSON output conforming to
	// the definition. Mutually exclusive with WebSearch on providers that
	// cannot combine tools with response schemas.
	Schema *Schema

	// WebSearch asks the provider to ground the response in live web
	// results and report its citations in Response.Grounding. Providers
	// without a search tool ignore this and return no grounding.
	WebSearch bool

	MaxTokens int

	// Temperature in [0,1]. Zero value means deterministic.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the response must conform to.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "quiz-question". Used as the
	// schema name for OpenAI and as the cache key for validation.
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema as a map.
	Definition map[string]any
}

// GroundingSource is one web citation attached to a grounded response.
type GroundingSource struct {
	URI   string
	Title string
}

// Response is the model's output.
type Response struct {
	// Content is validated JSON when the request carried a schema,
	// raw text otherwise.
	Content json.RawMessage

	// Grounding lists the web sources the provider consulted, in the
	// order it reported them. Empty unless the request set WebSearch and
	// the provider supports it. May contain duplicates and entries with
	// missing fields; callers are expected to filter.
	Grounding []GroundingSource

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token counts for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
