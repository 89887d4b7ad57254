package main

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/rpnlang/rpnc/internal/rat"
)

// Calc is one interpreter instance: the token stack, the symbol
// table, and the IO plumbing around them. The command processor is
// the sole serialization point: commands execute one at a time on the
// caller's goroutine, and only commands mutate the table, so an
// evaluation pass, however parallel, never observes a write.
type Calc struct {
	ioCore

	stack []token
	table *symtab

	depthLimit int
	workers    int
}

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }

// halt abandons the run: output is flushed as a courtesy and the
// original condition is carried out through the API boundary's panic
// recovery.
func (c *Calc) halt(err error) {
	if c.logfn != nil {
		c.logf("halt error: %v", err)
		c.dump()
	}
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		c.flush()
	}()
	panic(haltError{err})
}

func (c *Calc) run(ctx context.Context) error {
	sc := bufio.NewScanner(c.in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		// commands suspend only at line boundaries; this is the
		// cooperative cancellation point
		if err := ctx.Err(); err != nil {
			return err
		}
		c.interpret(sc.Text())
	}
	if err := sc.Err(); err != nil && err != io.EOF {
		return err
	}
	return c.flush()
}

// interpret lexes one line and feeds each token through the command
// processor, flushing output at the end of the line.
func (c *Calc) interpret(line string) {
	if c.logfn != nil {
		defer c.withLogPrefix("\t")()
		c.logf("interpret %q", line)
	}
	lx := newLexer(line)
	for {
		tok, err := lx.next()
		if err == io.EOF {
			break
		}
		c.analyze(tok)
	}
	if err := c.flush(); err != nil {
		c.halt(err)
	}
}

// analyze is the per-token entry point: value tokens push, command
// tokens execute immediately.
func (c *Calc) analyze(tok token) {
	switch tok.kind {
	case tokBad:
		c.report(fmt.Errorf("dropped token: %w", tok.err))

	case tokEval:
		if v, ok := c.compute(); ok {
			c.emit("> %v\n", v)
		}

	case tokPeek:
		if v, ok := c.compute(); ok {
			c.emit("< %v\n", v)
			c.stack = append(c.stack, numberToken(v))
		}

	case tokDup:
		if v, ok := c.compute(); ok {
			c.stack = append(c.stack, numberToken(v), numberToken(v))
		}

	case tokFormat:
		if v, ok := c.compute(); ok {
			if !v.IsInt() {
				// a fraction has no full byte rendering; fall back to
				// the numeric form
				c.emit("> %v\n", v)
				return
			}
			if _, err := c.out.Write(append(v.Bytes(), '\n')); err != nil {
				c.halt(err)
			}
		}

	case tokShow:
		spans, rest := splitSpans(c.stack, c.table.resolver(nil))
		for _, span := range spans {
			c.emit(": %v\n", spanString(span))
		}
		if len(rest) > 0 {
			c.emit(": %v\n", spanString(rest))
		}

	case tokFlushAll:
		c.flushAll()

	case tokDrop:
		if i, err := clipIndex(c.stack, c.table.resolver(nil)); err == nil {
			c.stack = c.stack[:i]
		} else {
			// an incomplete top expression owns everything below it
			c.stack = c.stack[:0]
		}

	case tokClear:
		c.stack = c.stack[:0]

	case tokAssign:
		if v, ok := c.compute(); ok {
			c.table.bindVar(tok.name, v)
			c.logf("assign %v = %v", tok.name, v)
		}

	case tokDefine:
		c.declare(tok)

	case tokDefineIter:
		c.declareIterative(tok)

	default:
		c.stack = append(c.stack, tok)
		c.logf("push %v", tok)
	}
}

// compute clips, builds and evaluates the top expression. The span is
// consumed only on success: a failed command leaves the stack exactly
// as it found it.
func (c *Calc) compute() (rat.Rat, bool) {
	resolve := c.table.resolver(nil)
	i, err := clipIndex(c.stack, resolve)
	if err != nil {
		c.report(err)
		return rat.Rat{}, false
	}
	tree, err := buildTree(c.stack[i:], resolve)
	if err != nil {
		c.report(err)
		return rat.Rat{}, false
	}
	v, err := c.eval(tree, nil, 0)
	if err != nil {
		if fatalError(err) {
			c.halt(err)
		}
		c.report(err)
		return rat.Rat{}, false
	}
	c.stack = c.stack[:i]
	return v, true
}

// declare binds the top expression as a recursive-mode body for
// (name, arity). The declared name resolves at its own declared arity
// inside the body, before the definition is installed, which is what
// makes self and mutual recursion expressible.
func (c *Calc) declare(tok token) {
	resolve := c.table.resolver(map[string]int{tok.name: tok.arity})
	i, err := clipIndex(c.stack, resolve)
	if err != nil {
		c.report(fmt.Errorf("declaring %v: %w", tok, err))
		return
	}
	body, err := buildTree(c.stack[i:], resolve)
	if err != nil {
		c.report(fmt.Errorf("declaring %v: %w", tok, err))
		return
	}
	c.stack = c.stack[:i]
	def := &funcDef{name: tok.name, arity: tok.arity, mode: funcRecursive, body: body}
	c.table.bindFunc(def)
	c.logf("declare %v", def.key())
}

// declareIterative binds an iterative-mode definition from the top
// arity+2 expressions: predicate on top, then the terminal mapping,
// then one step expression per argument, innermost last. Nothing is
// consumed or bound unless every span builds.
func (c *Calc) declareIterative(tok token) {
	resolve := c.table.resolver(map[string]int{tok.name: tok.arity})

	rest := c.stack
	spans := make([][]token, 0, tok.arity+2)
	for n := 0; n < tok.arity+2; n++ {
		i, err := clipIndex(rest, resolve)
		if err != nil {
			c.report(fmt.Errorf("declaring %v: %w", tok, err))
			return
		}
		spans = append(spans, rest[i:])
		rest = rest[:i]
	}

	trees := make([]*expr, len(spans))
	for i, span := range spans {
		tree, err := buildTree(span, resolve)
		if err != nil {
			c.report(fmt.Errorf("declaring %v: %w", tok, err))
			return
		}
		trees[i] = tree
	}

	def := &funcDef{name: tok.name, arity: tok.arity, mode: funcIterative}
	def.cond, def.final = trees[0], trees[1]
	def.inits = make([]*expr, tok.arity)
	for i := 0; i < tok.arity; i++ {
		// spans were clipped top down; the deepest is the first
		// argument's step
		def.inits[i] = trees[tok.arity+1-i]
	}

	c.stack = rest
	c.table.bindFunc(def)
	c.logf("declare %v", def.key())
}

func (c *Calc) emit(format string, args ...interface{}) {
	if err := c.emitf(format, args...); err != nil {
		c.halt(err)
	}
}

func (c *Calc) report(err error) {
	c.logf("error: %v", err)
	if werr := c.reportf("%v\n", err); werr != nil {
		c.halt(werr)
	}
}
