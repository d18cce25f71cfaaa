package ferrodex

// ═══════════════════════════════════════════════════════════════════════════════
// QUERY EVALUATOR
// ═══════════════════════════════════════════════════════════════════════════════
// Reduces a validated node chain (see scanner.go) to a single TERM node whose
// postings are the query's answer.
//
// The recursion pattern, for a current node n:
//
//   - While n is a TERM or L_PAREN and has a right neighbor, walk forward.
//     This skips already-terminal prefixes in one pass instead of recursing
//     through every already-reduced node, which is what keeps stack depth
//     bounded for long flat chains and for deep ( ( ( ... ) ) ) nesting.
//   - R_PAREN: the intervening nodes have, by induction, already collapsed to
//     a single TERM (whatever was between the parens reduced first, since the
//     forward walk only stops at an operator or R_PAREN). Splice out the
//     matching L_PAREN and this R_PAREN, keeping that TERM, and continue.
//   - OP_OR / OP_AND / OP_ANDNOT: if the right operand is not yet a TERM, it
//     is an un-reduced subquery; recurse into it first. Otherwise combine the
//     two operand sets (below), turn this node into the TERM holding the
//     result, splice out its left and right neighbors, and continue from it.
//   - TERM with no right neighbor: if a left neighbor exists, step left
//     (the final answer may still require an operator further left); else
//     this is the fully reduced result.
//
// Because the scanner's preprocessor collaborator inserts OR between adjacent
// bare words, unparenthesized AND/OR/ANDNOT chains are evaluated strictly in
// the order written, left to right - there is no precedence climbing. This is
// intentional (see SPEC_FULL.md's Open Question resolutions): callers that
// want AND to bind tighter than OR must parenthesize.
// ═══════════════════════════════════════════════════════════════════════════════

// evaluate reduces node (and everything reachable from it) to the single
// final TERM node holding the query's answer.
func evaluate(node *queryNode) *queryNode {
	for (node.kind == kindTerm || node.kind == kindLParen) && node.right != nil {
		node = node.right
	}

	switch {
	case node.kind == kindRParen:
		return evaluate(spliceNodes(node.sibling, node))

	case isOperatorKind(node.kind):
		if node.right.kind != kindTerm {
			return evaluate(node.right)
		}
		a, c := node.left, node.right
		node.prod = combine(node.kind, a.prod, c.prod)
		node.kind = kindTerm
		return evaluate(spliceNodes(a, c))

	default: // kindTerm with no right neighbor
		if node.left != nil {
			return evaluate(node.left)
		}
		return node
	}
}

// spliceNodes removes a and z from the chain, reconnecting a.left directly to
// a.right (=b, the node that sat between a and z) and b to z.right. There
// must be exactly one node, b, directly between a and z. Returns b.
func spliceNodes(a, z *queryNode) *queryNode {
	b := a.right

	b.left = a.left
	if a.left != nil {
		a.left.right = b
	}

	b.right = z.right
	if z.right != nil {
		z.right.left = b
	}

	return b
}

// combine applies the operator's set-algebra semantics to two (possibly
// empty) operand postings, per the table in spec.md §4.5.
func combine(kind nodeKind, a, c *postings) *postings {
	switch kind {
	case kindOpOr:
		switch {
		case a == c:
			return a
		case a.set == nil:
			return c
		case c.set == nil:
			return a
		default:
			return ownedPostings(Union(a.set, c.set))
		}

	case kindOpAnd:
		switch {
		case a.set == nil || c.set == nil:
			return &postings{}
		case a == c:
			return a
		default:
			return ownedPostings(Intersection(a.set, c.set))
		}

	case kindOpAndNot:
		switch {
		case a.set == nil:
			return &postings{}
		case c.set == nil:
			return a
		case a == c:
			return &postings{}
		default:
			return ownedPostings(Difference(a.set, c.set))
		}
	}

	panic("ferrodex: combine called on a non-operator node")
}

// ownedPostings wraps a freshly computed set operation result, collapsing an
// empty result to the canonical absent-term postings value.
func ownedPostings(s *Set[string]) *postings {
	if s.Len() == 0 {
		return &postings{}
	}
	return &postings{set: s, owned: true}
}
