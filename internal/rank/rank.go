// Package rank orders history entries by relevance to a query.
package rank

import (
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"

	"github.com/robottwo/hui/internal/history"
)

// Rank returns the entries of the corpus matching the query, best match
// first. An empty query is the identity: the full corpus in its original
// order. A non-empty query keeps only entries whose characters contain the
// query as a subsequence, ordered by descending fuzzy score; the underlying
// sort is stable, so ties fall back to corpus order.
func Rank(corpus history.Corpus, query string) []string {
	if query == "" {
		return corpus
	}

	matches := fuzzy.Find(query, corpus)
	return lo.Map(matches, func(m fuzzy.Match, _ int) string {
		return m.Str
	})
}
