// Package walker streams a directory tree into an index, pairing each
// regular file with its analyzed token list.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vvalberg/ferrodex/internal/analyzer"
)

// Indexer is the subset of *ferrodex.Index the walker depends on, so callers
// can substitute a fake in tests without pulling in the whole core package.
type Indexer interface {
	AddDocument(path string, tokens []string) error
}

// Walker indexes every regular file under a root directory.
type Walker struct {
	root     string
	analyzer *analyzer.Analyzer
	log      zerolog.Logger
}

// New builds a Walker rooted at root, tokenizing file contents with a.
func New(root string, a *analyzer.Analyzer, log zerolog.Logger) *Walker {
	return &Walker{root: root, analyzer: a, log: log.With().Str("component", "walker").Logger()}
}

// Index walks w.root depth-first and adds every regular file to idx. Paths
// recorded in the index are relative to w.root and carry a leading slash, so
// a file at "<root>/docs/a.txt" is indexed as "/docs/a.txt".
//
// A file that cannot be read is logged and skipped rather than aborting the
// whole walk; a directory that cannot be opened does abort, since it likely
// means the root itself is wrong.
func (w *Walker) Index(idx Indexer) (int, error) {
	count := 0
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return fmt.Errorf("walker: relativizing %s: %w", path, err)
		}
		docPath := "/" + filepath.ToSlash(rel)

		contents, err := os.ReadFile(path)
		if err != nil {
			w.log.Warn().Err(err).Str("path", docPath).Msg("skipping unreadable file")
			return nil
		}

		tokens := w.analyzer.Tokens(normalizeToText(contents))
		if err := idx.AddDocument(docPath, tokens); err != nil {
			return fmt.Errorf("walker: indexing %s: %w", docPath, err)
		}
		count++
		return nil
	})
	return count, err
}

func normalizeToText(b []byte) string {
	return strings.ToValidUTF8(string(b), "")
}
