package suggest

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	domsuggest "github.com/swm-sink/la-factoria-content-factory-sub002/internal/domain/suggest"
)

// querySuggestions aggregates recent successful searches whose text
// starts with the partial query. Frequency adds up to 0.3 and the
// requesting user's own history adds 0.2.
func (s *Service) querySuggestions(ctx context.Context, partial, userID string) []domsuggest.Suggestion {
	if s.events == nil {
		return nil
	}
	now := s.now().UTC()
	events, err := s.events.SearchEvents(ctx, now.Add(-s.cfg.QueryWindow), now, s.cfg.MaxEventSample)
	if err != nil {
		s.logger.Warn("query suggestion source failed", zap.Error(err))
		return nil
	}

	type agg struct {
		count      int
		sumResults int
		isOwn      bool
	}
	byQuery := make(map[string]*agg)
	for _, ev := range events {
		text := strings.ToLower(strings.TrimSpace(ev.Query))
		if text == "" || !ev.Succeeded() {
			continue
		}
		a := byQuery[text]
		if a == nil {
			a = &agg{}
			byQuery[text] = a
		}
		a.count++
		a.sumResults += ev.ResultCount
		if userID != "" && ev.UserID == userID {
			a.isOwn = true
		}
	}

	var out []domsuggest.Suggestion
	for text, a := range byQuery {
		if !strings.HasPrefix(text, partial) {
			continue
		}
		score := matchScore(partial, text) + min(float64(a.count)/100.0, 0.3)
		if a.isOwn {
			score += 0.2
		}
		out = append(out, domsuggest.Suggestion{
			Text:  text,
			Score: clampScore(score),
			Type:  domsuggest.TypeQuery,
			Metadata: map[string]any{
				"search_count": a.count,
				"avg_results":  float64(a.sumResults) / float64(a.count),
			},
		})
	}
	return out
}

// contentSuggestions proposes indexed document titles containing the
// partial query. Prefix matches get a 0.2 bonus over plain substring
// matches.
func (s *Service) contentSuggestions(ctx context.Context, partial string) []domsuggest.Suggestion {
	if s.docs == nil {
		return nil
	}
	docs, err := s.docs.Find(ctx, nil)
	if err != nil {
		s.logger.Warn("content suggestion source failed", zap.Error(err))
		return nil
	}
	if len(docs) > s.cfg.MaxDocSample {
		docs = docs[:s.cfg.MaxDocSample]
	}

	var out []domsuggest.Suggestion
	for i := range docs {
		title := docs[i].Title()
		lower := strings.ToLower(title)
		if !strings.Contains(lower, partial) {
			continue
		}
		score := matchScore(partial, title)
		if strings.HasPrefix(lower, partial) {
			score += 0.2
		}
		out = append(out, domsuggest.Suggestion{
			Text:     title,
			Score:    clampScore(score),
			Type:     domsuggest.TypeContent,
			Metadata: map[string]any{"content_id": docs[i].ID()},
		})
	}
	return out
}

// tagSuggestions proposes tag and category values containing the
// partial query, boosted by corpus frequency up to 0.2.
func (s *Service) tagSuggestions(ctx context.Context, partial string) []domsuggest.Suggestion {
	if s.docs == nil {
		return nil
	}
	docs, err := s.docs.Find(ctx, nil)
	if err != nil {
		s.logger.Warn("tag suggestion source failed", zap.Error(err))
		return nil
	}
	if len(docs) > s.cfg.MaxDocSample {
		docs = docs[:s.cfg.MaxDocSample]
	}

	freq := make(map[string]int)
	for i := range docs {
		for _, t := range docs[i].Tags() {
			freq[strings.ToLower(t)]++
		}
		for _, c := range docs[i].Categories() {
			freq[strings.ToLower(c)]++
		}
	}

	var out []domsuggest.Suggestion
	for value, n := range freq {
		if !strings.Contains(value, partial) {
			continue
		}
		out = append(out, domsuggest.Suggestion{
			Text:     value,
			Score:    clampScore(matchScore(partial, value) + min(float64(n)/50.0, 0.2)),
			Type:     domsuggest.TypeTag,
			Metadata: map[string]any{"frequency": n},
		})
	}
	return out
}

// maxCorrectionsPerWord bounds fuzzy candidates per query word.
const maxCorrectionsPerWord = 3

// correctionThreshold is the minimum similarity for a fuzzy candidate.
const correctionThreshold = 0.8

// corrections proposes the partial query with one word replaced by a
// close vocabulary word. The vocabulary comes from words of recent
// successful queries.
func (s *Service) corrections(ctx context.Context, partial string) []domsuggest.Suggestion {
	if s.events == nil {
		return nil
	}
	now := s.now().UTC()
	events, err := s.events.SearchEvents(ctx, now.Add(-s.cfg.VocabWindow), now, s.cfg.MaxEventSample)
	if err != nil {
		s.logger.Warn("correction source failed", zap.Error(err))
		return nil
	}

	vocab := make(map[string]struct{})
	for _, ev := range events {
		if !ev.Succeeded() {
			continue
		}
		for _, w := range strings.Fields(strings.ToLower(ev.Query)) {
			vocab[w] = struct{}{}
		}
	}
	if len(vocab) == 0 {
		return nil
	}

	words := strings.Fields(partial)
	var out []domsuggest.Suggestion
	for wi, word := range words {
		type scored struct {
			word  string
			ratio float64
		}
		var nearby []scored
		for vw := range vocab {
			if vw == word {
				continue
			}
			if ratio := similarityRatio(word, vw); ratio > correctionThreshold {
				nearby = append(nearby, scored{word: vw, ratio: ratio})
			}
		}
		sort.Slice(nearby, func(i, j int) bool { return nearby[i].ratio > nearby[j].ratio })
		if len(nearby) > maxCorrectionsPerWord {
			nearby = nearby[:maxCorrectionsPerWord]
		}
		for _, c := range nearby {
			corrected := make([]string, len(words))
			copy(corrected, words)
			corrected[wi] = c.word
			out = append(out, domsuggest.Suggestion{
				Text:     strings.Join(corrected, " "),
				Score:    clampScore(c.ratio * 0.8),
				Type:     domsuggest.TypeCorrection,
				Metadata: map[string]any{"original": word, "corrected": c.word},
			})
		}
	}
	return out
}
