package ferrodex

import (
	"errors"
	"testing"
)

func TestIndex_AddDocument_BuildsPostingsAndTF(t *testing.T) {
	idx := NewIndex()
	mustAdd(t, idx, "/d1", []string{"cat", "dog", "cat"})
	mustAdd(t, idx, "/d2", []string{"cat", "fish"})
	mustAdd(t, idx, "/d3", []string{"dog"})

	if got := idx.DocumentCount(); got != 3 {
		t.Fatalf("DocumentCount() = %d, want 3", got)
	}

	cat, ok := idx.PostingsFor("cat")
	if !ok {
		t.Fatal(`PostingsFor("cat") not found`)
	}
	if got := collect(cat); !slicesEqual(got, []string{"/d1", "/d2"}) {
		t.Fatalf(`postings("cat") = %v, want [/d1 /d2]`, got)
	}
	if tf := idx.TermFrequency("cat", "/d1"); tf != 2 {
		t.Fatalf(`tf("cat","/d1") = %d, want 2`, tf)
	}
	if tf := idx.TermFrequency("cat", "/d2"); tf != 1 {
		t.Fatalf(`tf("cat","/d2") = %d, want 1`, tf)
	}

	dog, ok := idx.PostingsFor("dog")
	if !ok {
		t.Fatal(`PostingsFor("dog") not found`)
	}
	if got := collect(dog); !slicesEqual(got, []string{"/d1", "/d3"}) {
		t.Fatalf(`postings("dog") = %v, want [/d1 /d3]`, got)
	}

	fish, ok := idx.PostingsFor("fish")
	if !ok {
		t.Fatal(`PostingsFor("fish") not found`)
	}
	if got := collect(fish); !slicesEqual(got, []string{"/d2"}) {
		t.Fatalf(`postings("fish") = %v, want [/d2]`, got)
	}
}

func TestIndex_PostingsFor_UnknownTerm(t *testing.T) {
	idx := NewIndex()
	mustAdd(t, idx, "/d1", []string{"cat"})

	if _, ok := idx.PostingsFor("unicorn"); ok {
		t.Fatal("expected PostingsFor to report absent for an unindexed term")
	}
}

func TestIndex_AddDocument_DuplicatePath(t *testing.T) {
	idx := NewIndex()
	mustAdd(t, idx, "/d1", []string{"cat"})

	err := idx.AddDocument("/d1", []string{"dog"})
	if !errors.Is(err, ErrDuplicatePath) {
		t.Fatalf("AddDocument on duplicate path: err = %v, want ErrDuplicatePath", err)
	}
}

func TestIndex_AddDocument_EmptyTokenListStillCounts(t *testing.T) {
	idx := NewIndex()
	mustAdd(t, idx, "/empty", nil)
	mustAdd(t, idx, "/d1", []string{"cat"})

	if got := idx.DocumentCount(); got != 2 {
		t.Fatalf("DocumentCount() = %d, want 2 (empty-token documents still count)", got)
	}
}

func TestIndex_TermFrequency_Saturates(t *testing.T) {
	idx := NewIndex()
	tokens := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		tokens = append(tokens, "cat")
	}
	mustAdd(t, idx, "/d1", tokens)

	if tf := idx.TermFrequency("cat", "/d1"); tf != 10 {
		t.Fatalf(`tf("cat","/d1") = %d, want 10`, tf)
	}

	// Directly probe the saturation ceiling without building ~4 billion tokens.
	w := idx.wordFor("cat")
	w.tf["/d1"] = maxTermFrequency
	idx.indexTokenForTest("cat", "/d1")
	if w.tf["/d1"] != maxTermFrequency {
		t.Fatalf("tf saturated at %d, want it to stay at %d", w.tf["/d1"], maxTermFrequency)
	}
}

func TestIndex_DocumentFrequency_MatchesPostingsCardinality(t *testing.T) {
	idx := buildSampleIndex(t)

	w := idx.wordFor("cat")
	if df := w.DocumentFrequency(); df != 2 {
		t.Fatalf("DocumentFrequency(cat) = %d, want 2", df)
	}
	if df := w.postings.Len(); df != w.DocumentFrequency() {
		t.Fatalf("postings.Len()=%d and DocumentFrequency()=%d disagree", df, w.DocumentFrequency())
	}
}

func TestIndex_DocumentCount_MatchesDistinctPaths(t *testing.T) {
	idx := NewIndex()
	mustAdd(t, idx, "/a", []string{"x"})
	mustAdd(t, idx, "/b", []string{"y"})
	mustAdd(t, idx, "/c", nil)

	if got := idx.DocumentCount(); got != 3 {
		t.Fatalf("DocumentCount() = %d, want 3", got)
	}
}

func mustAdd(t *testing.T, idx *Index, path string, tokens []string) {
	t.Helper()
	if err := idx.AddDocument(path, tokens); err != nil {
		t.Fatalf("AddDocument(%q): %v", path, err)
	}
}

// indexTokenForTest repeats AddDocument's saturating increment for one more
// occurrence of term in path, as AddDocument would apply it on the 2^32'th
// occurrence of a term in one document.
func (idx *Index) indexTokenForTest(term, path string) {
	w := idx.words[term]
	if w.tf[path] < maxTermFrequency {
		w.tf[path]++
	}
}
