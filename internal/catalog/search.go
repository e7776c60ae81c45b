// search.go implements ranked full-text search.
//
// The user's free text never reaches the SQL itself: it is tokenised here
// and the resulting match expression travels to the store as a bound
// parameter, as do all category values.

package catalog

import (
	"context"
	"strings"
	"unicode"

	"github.com/mkvarda/agora/internal/store"
)

// Search runs a ranked full-text query over the latest revision of every
// listing. Results carry a relevance rank (higher is more relevant);
// listings the expression does not match stay in the result set at rank
// zero, so relevance orders candidates rather than excluding them.
func (s *Service) Search(ctx context.Context, p SearchParams) ([]store.RankedAgent, error) {
	page, size, err := pageBounds(p.Page, p.PageSize, s.pageSize)
	if err != nil {
		return nil, err
	}
	key, dir, err := parseSearchSort(p.SortBy, p.SortOrder)
	if err != nil {
		return nil, err
	}
	length := p.DescriptionThreshold
	if length < 0 {
		return nil, invalidParameter("description threshold must be positive, got %d", length)
	}
	if length == 0 {
		length = s.threshold
	}

	match, err := matchExpression(p.Query)
	if err != nil {
		return nil, err
	}

	results, err := s.store.Search(ctx, store.SearchQuery{
		Match:             match,
		Categories:        p.Categories,
		Sort:              key,
		Order:             dir,
		DescriptionLength: length,
		Limit:             size,
		Offset:            (page - 1) * size,
	})
	if err != nil {
		return nil, translate(err)
	}
	return results, nil
}

// matchExpression turns free text into a full-text match expression: each
// lexeme becomes a quoted prefix term and the terms are ANDed, so every
// word of the query must match somewhere in the row. Lexemes are bare
// letter/digit runs, which keeps the quoted terms free of expression
// syntax.
func matchExpression(query string) (string, error) {
	lexemes := tokenize(query)
	if len(lexemes) == 0 {
		return "", invalidParameter("search query has no searchable terms")
	}
	terms := make([]string, len(lexemes))
	for i, lex := range lexemes {
		terms[i] = `"` + lex + `"*`
	}
	return strings.Join(terms, " AND "), nil
}

// tokenize lowercases text and splits it into letter/digit runs.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
