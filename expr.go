package main

import "fmt"

// An expression is an immutable tree of tokens: a leaf value, a
// variable or argument reference, an operator applied to its fixed
// operand count, or a function call with one child per argument.
// Trees are materialized from the top span of the token stack when a
// command consumes an expression; evaluation never mutates them, only
// produces a value. Deferring tree building to consumption time is
// what lets a declaration's body call the name being declared, and
// what makes every call late-bound.
type expr struct {
	tok  token
	args []*expr
}

// arityResolver reports the call arity in effect for a name while
// clipping and building; ok is false when no function is declared
// under the name, making a bare identifier a plain leaf reference.
type arityResolver func(name string) (arity int, ok bool)

// clipIndex locates the top expression's span: stack[i:] is one
// complete expression. It walks top-down counting subexpressions
// still owed; operators owe their operand count and a known function
// name owes its declared arity. An exhausted stack with outstanding
// debt is a stack underflow.
func clipIndex(stack []token, resolve arityResolver) (int, error) {
	need := 1
	i := len(stack)
	for need > 0 && i > 0 {
		i--
		switch tok := stack[i]; tok.kind {
		case tokNumber, tokArg:
			need--
		case tokIdent:
			if arity, ok := resolve(tok.name); ok {
				need += arity
			}
			need--
		default:
			n := tok.kind.operandCount()
			if n == 0 {
				panic(fmt.Sprintf("corrupted stack: %v", tok))
			}
			need += n - 1
		}
	}
	if need > 0 {
		return 0, errUnderflow
	}
	return i, nil
}

// buildTree folds one clipped span into an expression tree. Each
// token becomes a node, consuming previously built nodes as children
// per its arity. Command tokens cannot appear here under normal
// operation; they surface only when a caller feeds one through the
// token-level API, and are rejected as invalid in a function body.
func buildTree(span []token, resolve arityResolver) (*expr, error) {
	var nodes []*expr
	pop := func(n int) ([]*expr, bool) {
		if len(nodes) < n {
			return nil, false
		}
		args := make([]*expr, n)
		copy(args, nodes[len(nodes)-n:])
		nodes = nodes[:len(nodes)-n]
		return args, true
	}

	for _, tok := range span {
		switch {
		case tok.kind.isCommand():
			return nil, invalidInBodyError{tok}

		case tok.kind == tokNumber || tok.kind == tokArg:
			nodes = append(nodes, &expr{tok: tok})

		case tok.kind == tokIdent:
			arity, ok := resolve(tok.name)
			if !ok || arity == 0 {
				nodes = append(nodes, &expr{tok: tok})
				continue
			}
			args, ok := pop(arity)
			if !ok {
				return nil, errUnderflow
			}
			nodes = append(nodes, &expr{tok: tok, args: args})

		default:
			n := tok.kind.operandCount()
			if n == 0 {
				panic(fmt.Sprintf("corrupted stack: %v", tok))
			}
			args, ok := pop(n)
			if !ok {
				return nil, errUnderflow
			}
			nodes = append(nodes, &expr{tok: tok, args: args})
		}
	}

	if len(nodes) != 1 {
		return nil, errUnderflow
	}
	return nodes[0], nil
}

// splitSpans segments the whole stack into complete expression spans,
// top first; rest holds any incomplete leftover below them.
func splitSpans(stack []token, resolve arityResolver) (spans [][]token, rest []token) {
	for len(stack) > 0 {
		i, err := clipIndex(stack, resolve)
		if err != nil {
			return spans, stack
		}
		spans = append(spans, stack[i:])
		stack = stack[:i]
	}
	return spans, nil
}

func spanString(span []token) string {
	var out []byte
	for i, tok := range span {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, tok.String()...)
	}
	return string(out)
}
