package knowledge

import "strings"

// Match runs the keyword-scored linear scan over the knowledge base and
// returns the best scoring item. This is a fallback lookup, not a retrieval
// system; knowledge bases stay small enough (tens to low hundreds of items)
// that a full scan per call is fine.
//
// Scoring: 2 points per keyword found in the query, 3 extra points when the
// query contains the item's question verbatim (or the other way around).
// Returns nil when nothing scores above zero.
func (s *Store) Match(query string) (*Item, int) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, 0
	}

	var best *Item
	bestScore := 0

	for i := range s.items {
		item := &s.items[i]
		score := 0
		for _, kw := range item.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" && strings.Contains(q, kw) {
				score += 2
			}
		}
		question := strings.ToLower(item.Question)
		if strings.Contains(q, question) || strings.Contains(question, q) {
			score += 3
		}
		if score > bestScore {
			best = item
			bestScore = score
		}
	}

	return best, bestScore
}
