// fuzzy.go adapts the fuzzywuzzy string-similarity library behind the
// Scorer interface so the description post-filter can be substituted in
// tests and the scoring failure path stays reachable.

package catalog

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Scorer measures how well a query matches a piece of text.
type Scorer interface {
	// PartialRatio returns a substring-style similarity score between
	// 0 and 100. Callers lowercase both inputs beforehand.
	PartialRatio(a, b string) (int, error)
}

// fuzzScorer is the default Scorer, backed by go-fuzzywuzzy.
type fuzzScorer struct{}

func (fuzzScorer) PartialRatio(a, b string) (int, error) {
	return fuzzy.PartialRatio(a, b), nil
}
