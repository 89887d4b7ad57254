package main

import (
	"fmt"

	"github.com/rpnlang/rpnc/internal/rat"
)

// eval reduces an expression tree to a single value, depth first.
//
// Two rules here are semantic, not optimizations: `?` evaluates its
// predicate and then exactly one branch (an untaken branch may call
// undeclared functions or recurse without bound), and iterative-mode
// calls run as a loop that never re-enters the evaluator for the call
// chain itself.
//
// Branches, recursive bodies and iterative exits are all taken in
// tail position by rebinding e and frame and looping, so only
// argument and operand evaluation consumes native stack. The explicit
// depth counter bounds recursive-mode call chains; crossing the
// ceiling is the interpreter's one fatal failure.
func (c *Calc) eval(e *expr, frame []rat.Rat, depth int) (rat.Rat, error) {
	for {
		switch tok := e.tok; tok.kind {
		case tokNumber:
			return tok.num, nil

		case tokArg:
			if tok.arg >= len(frame) {
				return rat.Rat{}, argRangeError{tok.arg, len(frame)}
			}
			return frame[tok.arg], nil

		case tokIf:
			cond, err := c.eval(e.args[2], frame, depth)
			if err != nil {
				return rat.Rat{}, err
			}
			if cond.IsZero() {
				e = e.args[1]
			} else {
				e = e.args[0]
			}

		case tokIdent:
			if len(e.args) == 0 {
				if v, ok := c.table.variable(tok.name); ok {
					return v, nil
				}
			}
			def, ok := c.table.function(tok.name, len(e.args))
			if !ok {
				return rat.Rat{}, unknownFunctionError{tok.name, len(e.args)}
			}

			next := make([]rat.Rat, len(e.args))
			for i, arg := range e.args {
				v, err := c.eval(arg, frame, depth)
				if err != nil {
					return rat.Rat{}, err
				}
				next[i] = v
			}

			switch def.mode {
			case funcRecursive:
				if depth++; depth > c.depthLimit {
					return rat.Rat{}, depthError(c.depthLimit)
				}
				if c.logfn != nil {
					c.logf("call %v %v depth=%v", def.key(), next, depth)
				}
				e, frame = def.body, next

			case funcIterative:
				cur, err := c.iterate(def, next, depth)
				if err != nil {
					return rat.Rat{}, err
				}
				e, frame = def.final, cur
			}

		case tokPowMod:
			base, exp, mod, err := c.evalThree(e, frame, depth)
			if err != nil {
				return rat.Rat{}, err
			}
			return base.PowMod(exp, mod)

		default:
			a, err := c.eval(e.args[0], frame, depth)
			if err != nil {
				return rat.Rat{}, err
			}
			b, err := c.eval(e.args[1], frame, depth)
			if err != nil {
				return rat.Rat{}, err
			}
			switch tok.kind {
			case tokAdd:
				return a.Add(b), nil
			case tokSub:
				return a.Sub(b), nil
			case tokMul:
				return a.Mul(b), nil
			case tokQuo:
				return a.Div(b)
			case tokPosSub:
				return a.PosSub(b), nil
			case tokIntDiv:
				return a.IntDiv(b)
			case tokPow:
				return a.Pow(b), nil
			}
			panic(fmt.Sprintf("corrupted expression: %v", tok))
		}
	}
}

// iterate runs an iterative-mode call: while the predicate holds zero
// under the current argument tuple, recompute every step expression
// under that tuple to form the next one. The loop consumes no
// evaluator depth no matter how many rounds it runs; only expressions
// nested inside the predicate or steps can recurse.
func (c *Calc) iterate(def *funcDef, args []rat.Rat, depth int) ([]rat.Rat, error) {
	cur := args
	for round := 0; ; round++ {
		stop, err := c.eval(def.cond, cur, depth)
		if err != nil {
			return nil, err
		}
		if !stop.IsZero() {
			if c.logfn != nil {
				c.logf("iter %v %v rounds=%v", def.key(), cur, round)
			}
			return cur, nil
		}
		stepped := make([]rat.Rat, len(cur))
		for i, init := range def.inits {
			v, err := c.eval(init, cur, depth)
			if err != nil {
				return nil, err
			}
			stepped[i] = v
		}
		cur = stepped
	}
}

func (c *Calc) evalThree(e *expr, frame []rat.Rat, depth int) (a, b, d rat.Rat, err error) {
	if a, err = c.eval(e.args[0], frame, depth); err != nil {
		return
	}
	if b, err = c.eval(e.args[1], frame, depth); err != nil {
		return
	}
	d, err = c.eval(e.args[2], frame, depth)
	return
}
