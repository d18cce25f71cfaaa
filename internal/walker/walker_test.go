package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vvalberg/ferrodex/internal/analyzer"
)

type fakeIndex struct {
	docs map[string][]string
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: make(map[string][]string)}
}

func (f *fakeIndex) AddDocument(path string, tokens []string) error {
	f.docs[path] = tokens
	return nil
}

func TestWalker_IndexesRegularFiles(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "a.txt"), "The quick fox")
	mustWrite(t, filepath.Join(dir, "sub", "b.txt"), "runs fast")

	a := analyzer.New(analyzer.Options{MinLength: 2, RemoveStopwords: false, Stem: false})
	w := New(dir, a, zerolog.Nop())

	idx := newFakeIndex()
	n, err := w.Index(idx)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if n != 2 {
		t.Fatalf("indexed %d files, want 2", n)
	}
	if _, ok := idx.docs["/a.txt"]; !ok {
		t.Fatalf("missing /a.txt, got %v", idx.docs)
	}
	if _, ok := idx.docs["/sub/b.txt"]; !ok {
		t.Fatalf("missing /sub/b.txt, got %v", idx.docs)
	}
}

func TestWalker_SkipsUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "a.txt"), "cat dog")

	bad := filepath.Join(dir, "noperm.txt")
	mustWrite(t, bad, "secret")
	if err := os.Chmod(bad, 0); err != nil {
		t.Skipf("cannot chmod in this environment: %v", err)
	}
	t.Cleanup(func() { os.Chmod(bad, 0o644) })

	a := analyzer.New(analyzer.Options{MinLength: 2, RemoveStopwords: false, Stem: false})
	w := New(dir, a, zerolog.Nop())

	idx := newFakeIndex()
	n, err := w.Index(idx)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if n != 1 {
		t.Fatalf("indexed %d files, want 1 (unreadable file skipped)", n)
	}
}

func mustWrite(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}
