package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGuideRepo_InsertAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	guides := s.Guides()

	inserted, err := guides.Insert(ctx, "Photosynthesis", "# Guide", `[{"uri":"https://a","title":"A"}]`)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if !inserted {
		t.Fatal("expected first insert to write a row")
	}

	g, err := guides.GetByTopic(ctx, "photosynthesis")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if g == nil {
		t.Fatal("expected guide for case-insensitive lookup")
	}
	if g.Topic != "Photosynthesis" || g.Content != "# Guide" {
		t.Fatalf("unexpected record: %+v", g)
	}
}

func TestGuideRepo_InsertIdempotentPerTopic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	guides := s.Guides()

	if _, err := guides.Insert(ctx, "Rome", "first", "[]"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	inserted, err := guides.Insert(ctx, "ROME", "second", "[]")
	if err != nil {
		t.Fatalf("insert duplicate: %v", err)
	}
	if inserted {
		t.Fatal("expected duplicate topic to be ignored")
	}

	g, err := guides.GetByTopic(ctx, "rome")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if g.Content != "first" {
		t.Fatalf("content = %q, want the first submission retained", g.Content)
	}

	list, err := guides.List(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list length = %d, want 1", len(list))
	}
}

func TestGuideRepo_ListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	guides := s.Guides()

	for _, topic := range []string{"one", "two", "three"} {
		if _, err := guides.Insert(ctx, topic, "g", "[]"); err != nil {
			t.Fatalf("insert %s: %v", topic, err)
		}
	}

	list, err := guides.List(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("list length = %d, want 3", len(list))
	}
	if list[0].Topic != "three" || list[2].Topic != "one" {
		t.Fatalf("order = %s..%s, want newest first", list[0].Topic, list[2].Topic)
	}
}

func TestGuideRepo_DeleteAll(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	guides := s.Guides()

	if _, err := guides.Insert(ctx, "gone", "g", "[]"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := guides.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	list, err := guides.List(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("list length = %d, want 0", len(list))
	}
}

func TestGuideRepo_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if _, err := s.Guides().Insert(ctx, "Tides", "# Tides", "[]"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer s.Close()

	g, err := s.Guides().GetByTopic(ctx, "tides")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if g == nil || g.Content != "# Tides" {
		t.Fatalf("guide after reopen = %+v, want persisted content", g)
	}
}

func TestQuizResultRepo_RecordAndStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	results := s.QuizResults()

	records := []QuizResultRecord{
		{ID: "a", Topic: "Rome", Score: 3, Total: 5},
		{ID: "b", Topic: "Rome", Score: 5, Total: 5},
		{ID: "c", Topic: "Tides", Score: 2, Total: 5},
	}
	for _, rec := range records {
		if err := results.Record(ctx, rec); err != nil {
			t.Fatalf("record %s: %v", rec.ID, err)
		}
	}

	list, err := results.List(ctx, QueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("list length = %d, want 3", len(list))
	}

	stats, err := results.StatsByTopic(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("stats length = %d, want 2", len(stats))
	}
	if stats[0].Topic != "Rome" || stats[0].Attempts != 2 || stats[0].BestScore != 5 {
		t.Fatalf("unexpected top stats: %+v", stats[0])
	}
}

func TestLLMEventRepo_AppendQueryUsage(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	events := s.LLMEvents()

	err := events.Append(ctx, LLMEventData{
		Provider: "mock", Model: "mock", Purpose: "guide",
		InputTokens: 100, OutputTokens: 50, LatencyMs: 20, Success: true,
		RequestBody: "[user]\nhi", ResponseBody: "text",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	err = events.Append(ctx, LLMEventData{
		Provider: "mock", Model: "mock", Purpose: "question",
		Success: false, ErrorMessage: "boom",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	list, err := events.Query(ctx, QueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("query length = %d, want 2", len(list))
	}
	if list[0].Purpose != "question" {
		t.Fatalf("first = %q, want newest first", list[0].Purpose)
	}

	got, err := events.Get(ctx, list[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ResponseBody != "text" {
		t.Fatalf("unexpected event: %+v", got)
	}

	usage, err := events.UsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("usage length = %d, want 2", len(usage))
	}

	if missing, err := events.Get(ctx, 9999); err != nil || missing != nil {
		t.Fatalf("expected nil for missing id, got %+v err %v", missing, err)
	}
}
