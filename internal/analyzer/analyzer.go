// Package analyzer turns raw document text into the lowercase alphanumeric
// token stream the core index expects.
//
// PIPELINE:
//
//	1. Split on anything that is not a Unicode letter or digit.
//	2. Lowercase each token.
//	3. Drop stopwords (optional).
//	4. Drop tokens shorter than MinLength.
//	5. Stem with Snowball/Porter2 (optional).
//
// None of this lives in the core index: stemming and stopword removal are
// explicitly out of scope there, so any document source wanting them runs
// through an Analyzer first and hands the core plain tokens.
package analyzer

import (
	"strings"
	"unicode"

	snowballeng "github.com/kljensen/snowball/english"
)

// Options controls which stages of the pipeline run.
type Options struct {
	MinLength       int  // tokens shorter than this are dropped; 0 disables the filter
	RemoveStopwords bool
	Stem            bool
}

// Default mirrors the pipeline most callers want: short tokens, stopwords,
// and inflection all stripped before the word reaches the index.
func Default() Options {
	return Options{MinLength: 2, RemoveStopwords: true, Stem: true}
}

// Analyzer runs a configured pipeline over document or query text.
type Analyzer struct {
	opts Options
}

// New builds an Analyzer from opts.
func New(opts Options) *Analyzer {
	return &Analyzer{opts: opts}
}

// Tokens runs the full pipeline over text, in source order.
func (a *Analyzer) Tokens(text string) []string {
	toks := splitWords(text)
	toks = lower(toks)

	if a.opts.RemoveStopwords {
		toks = dropStopwords(toks)
	}
	if a.opts.MinLength > 0 {
		toks = dropShort(toks, a.opts.MinLength)
	}
	if a.opts.Stem {
		toks = stem(toks)
	}
	return toks
}

func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func lower(toks []string) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = strings.ToLower(t)
	}
	return out
}

func dropShort(toks []string, min int) []string {
	out := toks[:0]
	for _, t := range toks {
		if len(t) >= min {
			out = append(out, t)
		}
	}
	return out
}

func stem(toks []string) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = snowballeng.Stem(t, false)
	}
	return out
}

func dropStopwords(toks []string) []string {
	out := toks[:0]
	for _, t := range toks {
		if _, stop := stopwords[t]; !stop {
			out = append(out, t)
		}
	}
	return out
}

// stopwords is the standard short English function-word list: articles,
// prepositions, conjunctions, pronouns and auxiliary verbs that occur too
// often to carry search signal.
var stopwords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "after": {}, "again": {}, "against": {},
	"all": {}, "am": {}, "an": {}, "and": {}, "any": {}, "are": {}, "as": {},
	"at": {}, "be": {}, "because": {}, "been": {}, "before": {}, "being": {},
	"below": {}, "between": {}, "both": {}, "but": {}, "by": {}, "can": {},
	"did": {}, "do": {}, "does": {}, "doing": {}, "down": {}, "during": {},
	"each": {}, "few": {}, "for": {}, "from": {}, "further": {}, "had": {},
	"has": {}, "have": {}, "having": {}, "he": {}, "her": {}, "here": {},
	"hers": {}, "herself": {}, "him": {}, "himself": {}, "his": {}, "how": {},
	"i": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {},
	"itself": {}, "me": {}, "more": {}, "most": {}, "my": {}, "myself": {},
	"no": {}, "nor": {}, "not": {}, "of": {}, "off": {}, "on": {}, "once": {},
	"only": {}, "or": {}, "other": {}, "our": {}, "ours": {}, "ourselves": {},
	"out": {}, "over": {}, "own": {}, "same": {}, "she": {}, "should": {},
	"so": {}, "some": {}, "such": {}, "than": {}, "that": {}, "the": {},
	"their": {}, "theirs": {}, "them": {}, "themselves": {}, "then": {},
	"there": {}, "these": {}, "they": {}, "this": {}, "those": {}, "through": {},
	"to": {}, "too": {}, "under": {}, "until": {}, "up": {}, "very": {},
	"was": {}, "we": {}, "were": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "while": {}, "who": {}, "whom": {}, "why": {}, "will": {},
	"with": {}, "would": {}, "you": {}, "your": {}, "yours": {}, "yourself": {},
	"yourselves": {},
}
