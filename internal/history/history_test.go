package history

import (
	"context"
	"testing"

	"github.com/pranavj/mentis/internal/studyguide"
)

func guide(topic, content string, sources ...studyguide.Source) *studyguide.Guide {
	return &studyguide.Guide{Topic: topic, Content: content, Sources: sources}
}

func TestAddIdempotentCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	h := New(nil)

	added, err := h.Add(ctx, guide("Photosynthesis", "first version"))
	if err != nil || !added {
		t.Fatalf("Add = %v, %v", added, err)
	}

	added, err = h.Add(ctx, guide("PHOTOSYNTHESIS", "second version"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added {
		t.Fatal("duplicate topic added")
	}

	g, err := h.Select(ctx, "photosynthesis")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if g == nil || g.Content != "first version" {
		t.Fatalf("Select = %+v, want the first content", g)
	}
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	h := New(nil)

	for _, topic := range []string{"alpha", "beta", "gamma"} {
		if _, err := h.Add(ctx, guide(topic, "g")); err != nil {
			t.Fatalf("Add(%s): %v", topic, err)
		}
	}

	entries, err := h.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"gamma", "beta", "alpha"}
	if len(entries) != len(want) {
		t.Fatalf("len = %d", len(entries))
	}
	for i, topic := range want {
		if entries[i].Guide.Topic != topic {
			t.Fatalf("entries[%d] = %q, want %q", i, entries[i].Guide.Topic, topic)
		}
	}

	topics, err := h.Topics(ctx, 2)
	if err != nil {
		t.Fatalf("Topics: %v", err)
	}
	if len(topics) != 2 || topics[0] != "gamma" || topics[1] != "beta" {
		t.Fatalf("Topics = %v", topics)
	}
}

func TestSourcesRoundTrip(t *testing.T) {
	ctx := context.Background()
	h := New(nil)

	src := []studyguide.Source{
		{URI: "https://a", Title: "A"},
		{URI: "https://b", Title: "B"},
	}
	if _, err := h.Add(ctx, guide("topic", "g", src...)); err != nil {
		t.Fatalf("Add: %v", err)
	}

	g, err := h.Select(ctx, "topic")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(g.Sources) != 2 || g.Sources[0] != src[0] || g.Sources[1] != src[1] {
		t.Fatalf("Sources = %+v", g.Sources)
	}
}

func TestSelectMissingTopic(t *testing.T) {
	h := New(nil)
	g, err := h.Select(context.Background(), "never studied")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if g != nil {
		t.Fatalf("Select = %+v, want nil", g)
	}
}

func TestCorruptSourcesDecodeEmpty(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	if _, err := repo.Insert(ctx, "topic", "content", "{not json"); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	h := New(repo)
	g, err := h.Select(ctx, "topic")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if g.Content != "content" {
		t.Fatalf("Content = %q", g.Content)
	}
	if len(g.Sources) != 0 {
		t.Fatalf("Sources = %+v, want empty for corrupt data", g.Sources)
	}

	entries, err := h.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("corrupt sources dropped the whole entry: %d", len(entries))
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	h := New(nil)
	h.Add(ctx, guide("topic", "g"))

	if err := h.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, err := h.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries = %d after Clear", len(entries))
	}
}
