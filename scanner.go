package ferrodex

import "fmt"

// ═══════════════════════════════════════════════════════════════════════════════
// QUERY SCANNER
// ═══════════════════════════════════════════════════════════════════════════════
// Turns an already-tokenized query (words, "(", ")", "OR", "AND", "ANDNOT") into
// a validated doubly-linked chain of queryNodes in a single left-to-right pass.
//
// Grammar recognized (reserved tokens are case-sensitive and exactly these five):
//
//	query   ::= andterm | andterm "ANDNOT" query
//	andterm ::= orterm  | orterm  "AND"    andterm
//	orterm  ::= term    | term    "OR"     orterm
//	term    ::= "(" query ")" | <word>
//
// Mixed AND/OR/ANDNOT chains without parentheses are accepted (not rejected)
// and are evaluated strictly left-to-right by the evaluator — see evaluator.go.
// ═══════════════════════════════════════════════════════════════════════════════

type nodeKind int

const (
	kindTerm nodeKind = iota
	kindOpOr
	kindOpAnd
	kindOpAndNot
	kindLParen
	kindRParen
)

func isOperatorKind(k nodeKind) bool {
	return k == kindOpOr || k == kindOpAnd || k == kindOpAndNot
}

func isOperator(n *queryNode) bool {
	return n != nil && isOperatorKind(n.kind)
}

// postings is the sum type a queryNode carries while being evaluated: either
// borrowed directly from an IndexedWord (owned=false, never freed) or the
// result of a set operation (owned=true). In a language without a garbage
// collector this flag is what decides who frees the set; here it exists
// purely as a documented invariant, since there is nothing to free.
type postings struct {
	set   *Set[string]
	owned bool
}

// queryNode is one node of the scanned chain: a term, an operator, or one
// half of a matched parenthesis pair.
type queryNode struct {
	kind    nodeKind
	left    *queryNode
	right   *queryNode
	sibling *queryNode // matching L_PAREN <-> R_PAREN partner
	prod    *postings // non-nil once a TERM (or reduced operator) is evaluated
	token   string    // original token text, for error messages
}

// ParserStatus reports whether a successfully scanned query has any chance
// of matching a document.
type ParserStatus int

const (
	// StatusSkip means no word in the query matched anything in the index;
	// the caller may short-circuit straight to an empty result.
	StatusSkip ParserStatus = iota
	// StatusReady means at least one word matched the index.
	StatusReady
)

// TermLookup resolves a single query word to its borrowed postings set.
type TermLookup func(term string) (*Set[string], bool)

// SyntaxError is returned by scanQuery (and surfaced through Index.Query) when
// the token list violates the query grammar.
type SyntaxError struct {
	TokenIndex int
	Token      string
	Reason     string
}

func (e *SyntaxError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("ferrodex: syntax error after token %d: %s", e.TokenIndex, e.Reason)
	}
	return fmt.Sprintf("ferrodex: syntax error around token %d (%q): %s", e.TokenIndex, e.Token, e.Reason)
}

func syntaxErr(index int, token, reason string) error {
	return &SyntaxError{TokenIndex: index, Token: token, Reason: reason}
}

// scanQuery validates tokens and builds the doubly-linked node chain described
// above. It also returns the distinct list of words looked up during the scan
// (in first-seen order), for the scorer to consume. scanQuery assumes tokens
// is non-empty; callers distinguish the zero-token case as ErrEmptyQuery
// before calling in.
func scanQuery(tokens []string, lookup TermLookup) (leftmost *queryNode, status ParserStatus, terms []string, err error) {
	var prev, prevNonParen *queryNode
	var parenStack []*queryNode
	cache := make(map[string]*postings)
	status = StatusSkip

	for i, tok := range tokens {
		node := &queryNode{token: tok}

		switch tok {
		case "(":
			node.kind = kindLParen
			parenStack = append(parenStack, node)

		case ")":
			node.kind = kindRParen
			if len(parenStack) == 0 {
				return nil, status, nil, syntaxErr(i, tok, "unexpected closing parenthesis")
			}
			matching := parenStack[len(parenStack)-1]
			parenStack = parenStack[:len(parenStack)-1]
			node.sibling = matching

			if prev == matching || isOperator(prevNonParen) {
				return nil, status, nil, syntaxErr(i, tok, "empty parentheses")
			}

			if matching.right == prev {
				// (w): exactly one node between the parens - flatten it out,
				// leaving that node directly in the chain.
				if matching.left == nil {
					leftmost = prev
				} else {
					matching.left.right = prev
				}
				prev.left = matching.left
				continue
			}
			matching.sibling = node

		case "OR":
			node.kind = kindOpOr
		case "AND":
			node.kind = kindOpAnd
		case "ANDNOT":
			node.kind = kindOpAndNot

		default:
			node.kind = kindTerm
			if prevNonParen != nil && prevNonParen.kind == kindTerm {
				return nil, status, nil, syntaxErr(i, tok, "adjacent words")
			}

			p, seen := cache[tok]
			if !seen {
				set, found := lookup(tok)
				if found {
					p = &postings{set: set}
				} else {
					p = &postings{}
				}
				cache[tok] = p
				terms = append(terms, tok)
			}
			node.prod = p
			if p.set != nil {
				status = StatusReady
			}
		}

		if isOperatorKind(node.kind) {
			if prevNonParen == nil || isOperator(prevNonParen) || (prev != nil && prev.kind == kindLParen) {
				return nil, status, nil, syntaxErr(i, tok, "operator needs adjacent terms")
			}
		}
		if node.kind != kindLParen && node.kind != kindRParen {
			prevNonParen = node
		}

		if leftmost == nil {
			leftmost = node
		} else {
			prev.right = node
			node.left = prev
		}
		prev = node
	}

	if isOperator(prevNonParen) {
		return nil, status, nil, syntaxErr(len(tokens), "", "trailing operator")
	}
	if len(parenStack) > 0 {
		return nil, status, nil, syntaxErr(len(tokens), "", "unmatched open parenthesis")
	}

	return leftmost, status, terms, nil
}
