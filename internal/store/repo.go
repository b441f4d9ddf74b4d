package store

import (
	"context"
	"time"
)

// QueryOpts bounds list queries.
type QueryOpts struct {
	Limit int // max results, 0 = unlimited
}

// GuideRecord is one persisted study guide. Sources is the JSON-encoded
// source list as stored; decoding lives in the history package.
type GuideRecord struct {
	ID        int
	Topic     string
	Content   string
	Sources   string
	CreatedAt time.Time
}

// GuideRepo stores generated study guides keyed by case-insensitive topic.
type GuideRepo interface {
	// Insert adds a guide unless one already exists for the topic
	// (case-insensitive). Returns true when a row was written.
	Insert(ctx context.Context, topic, content, sources string) (bool, error)

	// List returns guides newest-first.
	List(ctx context.Context, opts QueryOpts) ([]GuideRecord, error)

	// GetByTopic returns the guide for a topic (case-insensitive),
	// or nil when absent.
	GetByTopic(ctx context.Context, topic string) (*GuideRecord, error)

	// DeleteAll removes every stored guide.
	DeleteAll(ctx context.Context) error
}

// QuizResultRecord is one completed quiz.
type QuizResultRecord struct {
	ID         string
	Topic      string
	Score      int
	Total      int
	FinishedAt time.Time
}

// TopicStats aggregates quiz results for one topic.
type TopicStats struct {
	Topic     string
	Attempts  int
	BestScore int
	AvgScore  float64
	Total     int
}

// QuizResultRepo stores completed quiz sessions.
type QuizResultRepo interface {
	// Record persists one finished quiz.
	Record(ctx context.Context, r QuizResultRecord) error

	// List returns results newest-first.
	List(ctx context.Context, opts QueryOpts) ([]QuizResultRecord, error)

	// StatsByTopic aggregates attempts and scores per topic.
	StatsByTopic(ctx context.Context) ([]TopicStats, error)
}

// LLMEventData is the payload for one recorded model request.
type LLMEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored event with identity and timestamp.
type LLMEventRecord struct {
	ID        int
	Timestamp time.Time
	LLMEventData
}

// LLMUsage aggregates token usage for one purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMEventRepo records and queries model request events.
type LLMEventRepo interface {
	Append(ctx context.Context, data LLMEventData) error
	Query(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)
	Get(ctx context.Context, id int) (*LLMEventRecord, error)
	UsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	UsageByModel(ctx context.Context) ([]LLMUsage, error)
}
