package history

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pranavj/mentis/internal/store"
)

// memRepo is a process-local GuideRepo used when no database is available.
type memRepo struct {
	mu      sync.Mutex
	nextID  int
	records []store.GuideRecord
}

func newMemRepo() *memRepo {
	return &memRepo{nextID: 1}
}

func (m *memRepo) Insert(_ context.Context, topic, content, sources string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(topic))
	for _, r := range m.records {
		if strings.ToLower(r.Topic) == key {
			return false, nil
		}
	}
	m.records = append(m.records, store.GuideRecord{
		ID:        m.nextID,
		Topic:     strings.TrimSpace(topic),
		Content:   content,
		Sources:   sources,
		CreatedAt: time.Now(),
	})
	m.nextID++
	return true, nil
}

func (m *memRepo) List(_ context.Context, opts store.QueryOpts) ([]store.GuideRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]store.GuideRecord, 0, len(m.records))
	for i := len(m.records) - 1; i >= 0; i-- {
		out = append(out, m.records[i])
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}
	return out, nil
}

func (m *memRepo) GetByTopic(_ context.Context, topic string) (*store.GuideRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(topic))
	for _, r := range m.records {
		if strings.ToLower(r.Topic) == key {
			rec := r
			return &rec, nil
		}
	}
	return nil, nil
}

func (m *memRepo) DeleteAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
	return nil
}
