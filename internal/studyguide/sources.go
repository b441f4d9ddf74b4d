package studyguide

import "github.com/pranavj/mentis/internal/llm"

// CollectSources converts provider grounding into the guide's source list:
// entries missing a URI or title are dropped, then duplicates are removed by
// URI with the first occurrence winning, preserving first-seen order.
func CollectSources(grounding []llm.GroundingSource) []Source {
	candidates := make([]Source, 0, len(grounding))
	for _, g := range grounding {
		candidates = append(candidates, Source{URI: g.URI, Title: g.Title})
	}
	return DedupSources(candidates)
}

// DedupSources filters incomplete entries and deduplicates by URI,
// first occurrence wins.
func DedupSources(candidates []Source) []Source {
	seen := make(map[string]bool, len(candidates))
	var out []Source
	for _, s := range candidates {
		if s.URI == "" || s.Title == "" {
			continue
		}
		if seen[s.URI] {
			continue
		}
		seen[s.URI] = true
		out = append(out, s)
	}
	return out
}
