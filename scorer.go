package ferrodex

import (
	"math"
	"sort"
)

// ═══════════════════════════════════════════════════════════════════════════════
// TF-IDF SCORER
// ═══════════════════════════════════════════════════════════════════════════════
// score(d) = Σ over query words q present in d: tf(q,d) * log(N / |postings(q)|)
//
// Terms whose postings list spans the entire corpus contribute log(1)=0;
// terms absent from d contribute nothing. Results are sorted by descending
// score, ties broken by ascending path for determinism.
// ═══════════════════════════════════════════════════════════════════════════════

// QueryResult is one scored match: a document path and its TF-IDF score.
type QueryResult struct {
	Path  string
	Score float64
}

func score(totalDocs int, result *Set[string], queryWords []*IndexedWord) []QueryResult {
	n := float64(totalDocs)
	results := make([]QueryResult, 0, result.Len())

	for path := range result.All() {
		var s float64
		for _, w := range queryWords {
			tf := w.TermFrequency(path)
			if tf == 0 {
				continue
			}
			df := float64(w.DocumentFrequency())
			if df == 0 {
				continue
			}
			s += float64(tf) * math.Log(n/df)
		}
		results = append(results, QueryResult{Path: path, Score: s})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Path < results[j].Path
	})
	return results
}
