package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vvalberg/ferrodex"
	"github.com/vvalberg/ferrodex/internal/analyzer"
	"github.com/vvalberg/ferrodex/internal/config"
	"github.com/vvalberg/ferrodex/internal/walker"
)

// buildIndex walks cfg.Root once and returns a fully built index, ready for
// querying. The index is never mutated again after this returns: there is no
// incremental-update path, per the core's build-once model.
func buildIndex(cfg config.IndexConfig, log zerolog.Logger) (*ferrodex.Index, error) {
	a := analyzer.New(analyzer.Options{
		MinLength:       cfg.MinTokenLength,
		RemoveStopwords: cfg.RemoveStopwords,
		Stem:            cfg.Stem,
	})

	w := walker.New(cfg.Root, a, log)
	idx := ferrodex.NewIndex()

	start := time.Now()
	n, err := w.Index(idx)
	if err != nil {
		return nil, fmt.Errorf("building index over %s: %w", cfg.Root, err)
	}

	log.Info().
		Int("documents", n).
		Str("root", cfg.Root).
		Dur("elapsed", time.Since(start)).
		Msg("index built")

	return idx, nil
}
