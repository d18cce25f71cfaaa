// Package ferrodex implements an in-memory inverted index and a boolean
// query processor over it.
//
// ═══════════════════════════════════════════════════════════════════════════════
// WHAT IS AN INVERTED INDEX?
// ═══════════════════════════════════════════════════════════════════════════════
// An inverted index is like the index at the back of a book, but for search
// engines: instead of page numbers it maps each word to the set of document
// paths that contain it.
//
// Example: Given these documents:
//   d1: ["cat", "dog", "cat"]
//   d2: ["cat", "fish"]
//   d3: ["dog"]
//
// The inverted index looks like:
//   "cat"  → postings {d1, d2}, tf: {d1: 2, d2: 1}
//   "dog"  → postings {d1, d3}, tf: {d1: 1, d3: 1}
//   "fish" → postings {d2},     tf: {d2: 1}
//
// This lets a query like "cat AND dog" find d1 with one map lookup per term
// plus a linear set intersection, instead of scanning every document.
// ═══════════════════════════════════════════════════════════════════════════════
package ferrodex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring"
)

var (
	// ErrDuplicatePath is returned by AddDocument when path has already been
	// indexed; paths must be unique within a single Index.
	ErrDuplicatePath = errors.New("ferrodex: path already indexed")
	// ErrEmptyQuery is returned by Query when given zero tokens. This is
	// distinguished from a query that parsed successfully but matched
	// nothing, which returns an empty result slice and a nil error.
	ErrEmptyQuery = errors.New("ferrodex: empty query")
)

// maxTermFrequency is the saturation ceiling for IndexedWord.tf counters.
const maxTermFrequency = ^uint32(0)

// IndexedWord is the canonical record of one indexed term: its interned
// string, the ordered set of documents that contain it (its postings list),
// and how many times it occurs in each of those documents.
type IndexedWord struct {
	Term     string
	postings *Set[string]      // path → borrowed by query nodes, never mutated after build
	tf       map[string]uint32 // path → term frequency within that document
	docIDs   *roaring.Bitmap   // same membership as postings, keyed by interned doc ID
}

// DocumentFrequency returns the number of documents containing the word,
// read off the word's roaring bitmap. It always equals Postings().Len().
func (w *IndexedWord) DocumentFrequency() int {
	return int(w.docIDs.GetCardinality())
}

// Postings returns the word's postings set (the set of document paths that
// contain it). Callers must not mutate the returned set.
func (w *IndexedWord) Postings() *Set[string] {
	return w.postings
}

// TermFrequency returns how many times the word occurs in the document at
// path, or zero if it does not occur there.
func (w *IndexedWord) TermFrequency(path string) uint32 {
	return w.tf[path]
}

// IndexedDocument is the record of one indexed document: its path and the
// back-reference set of terms it contains.
type IndexedDocument struct {
	Path  string
	terms map[string]*IndexedWord
}

// Terms returns the set of distinct terms the document contains.
func (d *IndexedDocument) Terms() []string {
	out := make([]string, 0, len(d.terms))
	for term := range d.terms {
		out = append(out, term)
	}
	return out
}

// Index owns the full set of indexed words and documents. It is built once,
// by a sequence of AddDocument calls from a single writer, and is then safe
// for concurrent read-only use by any number of queries: nothing in Index
// mutates after a build finishes. Callers that interleave building and
// querying across goroutines must provide their own synchronization (see
// internal/httpserver for the expected reader/writer-lock wrapper).
type Index struct {
	words    map[string]*IndexedWord
	docs     map[string]*IndexedDocument
	docCount int

	docIDs map[string]uint32 // path → interned integer ID, for the roaring bitmaps above
}

// NewIndex returns an empty index ready for AddDocument calls.
func NewIndex() *Index {
	return &Index{
		words:  make(map[string]*IndexedWord),
		docs:   make(map[string]*IndexedDocument),
		docIDs: make(map[string]uint32),
	}
}

// AddDocument indexes tokens under path. path must be unique within this
// Index. Every call increments DocumentCount by one, including documents
// that tokenize to zero tokens: DocumentCount reflects how many paths were
// walked, not how many yielded terms.
func (idx *Index) AddDocument(path string, tokens []string) error {
	if _, exists := idx.docs[path]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePath, path)
	}

	doc := &IndexedDocument{Path: path, terms: make(map[string]*IndexedWord)}
	idx.docs[path] = doc

	docID := uint32(len(idx.docIDs))
	idx.docIDs[path] = docID

	for _, token := range tokens {
		word, exists := idx.words[token]
		if !exists {
			word = &IndexedWord{
				Term:     token,
				postings: NewSet[string](strings.Compare),
				tf:       make(map[string]uint32),
				docIDs:   roaring.NewBitmap(),
			}
			idx.words[token] = word
		}

		if _, added := word.postings.TryAdd(path); added {
			word.tf[path] = 1
			word.docIDs.Add(docID)
		} else if word.tf[path] < maxTermFrequency {
			word.tf[path]++
		}
		doc.terms[token] = word
	}

	idx.docCount++
	return nil
}

// PostingsFor returns the borrowed postings set for term, or (nil, false) if
// the term has never been indexed. Callers must not mutate the returned set.
func (idx *Index) PostingsFor(term string) (*Set[string], bool) {
	word, ok := idx.words[term]
	if !ok {
		return nil, false
	}
	return word.postings, true
}

// wordFor returns the IndexedWord for term, or nil if absent. Used internally
// by the scanner (for deduplication) and the scorer (for IDF).
func (idx *Index) wordFor(term string) *IndexedWord {
	return idx.words[term]
}

// TermFrequency returns how many times term occurs in the document at path.
func (idx *Index) TermFrequency(term, path string) uint32 {
	word, ok := idx.words[term]
	if !ok {
		return 0
	}
	return word.TermFrequency(path)
}

// DocumentCount returns the total number of documents ever added.
func (idx *Index) DocumentCount() int {
	return idx.docCount
}
