package history

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pranavj/mentis/internal/store"
	"github.com/pranavj/mentis/internal/studyguide"
)

// Entry is one past topic with its stored guide.
type Entry struct {
	Guide     *studyguide.Guide
	CreatedAt time.Time
}

// Store keeps the topic history: every successfully generated guide, one
// per case-insensitive topic, newest first. History is a convenience, so
// reads degrade rather than fail: a corrupt source list decodes to no
// sources instead of erroring.
type Store struct {
	repo store.GuideRepo
}

// New creates a history store over repo. A nil repo yields an in-memory
// history that lasts for the process only.
func New(repo store.GuideRepo) *Store {
	if repo == nil {
		repo = newMemRepo()
	}
	return &Store{repo: repo}
}

// Add records a guide. It is idempotent per case-insensitive topic: when
// an entry for the topic already exists, the existing content is kept and
// Add reports false.
func (s *Store) Add(ctx context.Context, g *studyguide.Guide) (bool, error) {
	sources, err := encodeSources(g.Sources)
	if err != nil {
		return false, err
	}
	return s.repo.Insert(ctx, g.Topic, g.Content, sources)
}

// List returns entries newest-first. limit 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	records, err := s.repo.List(ctx, store.QueryOpts{Limit: limit})
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, Entry{
			Guide:     recordToGuide(r),
			CreatedAt: r.CreatedAt,
		})
	}
	return entries, nil
}

// Topics returns the newest limit topic names, for the recent-topics hint.
func (s *Store) Topics(ctx context.Context, limit int) ([]string, error) {
	entries, err := s.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	topics := make([]string, len(entries))
	for i, e := range entries {
		topics[i] = e.Guide.Topic
	}
	return topics, nil
}

// Select returns the stored guide for topic (case-insensitive), or nil
// when the topic was never studied.
func (s *Store) Select(ctx context.Context, topic string) (*studyguide.Guide, error) {
	r, err := s.repo.GetByTopic(ctx, topic)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	return recordToGuide(*r), nil
}

// Clear deletes the whole history.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

func recordToGuide(r store.GuideRecord) *studyguide.Guide {
	return &studyguide.Guide{
		Topic:   r.Topic,
		Content: r.Content,
		Sources: decodeSources(r.Sources),
	}
}

func encodeSources(sources []studyguide.Source) (string, error) {
	if sources == nil {
		sources = []studyguide.Source{}
	}
	b, err := json.Marshal(sources)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeSources tolerates corrupt stored data: anything that does not
// parse is treated as no sources.
func decodeSources(raw string) []studyguide.Source {
	var sources []studyguide.Source
	if err := json.Unmarshal([]byte(raw), &sources); err != nil {
		return nil
	}
	return sources
}
