package ferrodex

import "strings"

// Query evaluates a boolean query against the index and returns its matches
// ranked by TF-IDF score, descending (ties broken by path).
//
// tokens must already be tokenized: every element is one of "(", ")", "OR",
// "AND", "ANDNOT", or a bare word (see internal/queryprep for the
// collaborator that turns a raw query string into this form).
//
// A zero-length tokens returns ErrEmptyQuery. A query that parses but matches
// nothing returns no results and a nil error - that is not an error. The
// slice is nil when no query word is in the index at all, and empty but
// non-nil when some word is indexed but the operators leave no document. A
// query that violates
// the grammar returns a *SyntaxError.
func (idx *Index) Query(tokens []string) ([]QueryResult, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyQuery
	}

	leftmost, status, terms, err := scanQuery(tokens, idx.PostingsFor)
	if err != nil {
		return nil, err
	}
	if status == StatusSkip {
		return nil, nil
	}

	final := evaluate(leftmost)

	resultSet := final.prod.set
	if resultSet == nil {
		resultSet = NewSet[string](strings.Compare)
	}

	queryWords := make([]*IndexedWord, 0, len(terms))
	for _, t := range terms {
		if w := idx.wordFor(t); w != nil {
			queryWords = append(queryWords, w)
		}
	}

	return score(idx.DocumentCount(), resultSet, queryWords), nil
}
