package main

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rpnlang/rpnc/internal/panicerr"
	"github.com/rpnlang/rpnc/internal/rat"
)

// flushAll evaluates every complete expression on the stack at once.
// Spans are clipped and built serially, evaluated concurrently, and
// their results emitted in stack order, topmost first, so concurrent
// evaluation never reorders output. The table is read-only for the
// duration, which is what makes the fan-out safe.
func (c *Calc) flushAll() {
	resolve := c.table.resolver(nil)
	spans, rest := splitSpans(c.stack, resolve)
	if len(spans) == 0 {
		if len(rest) > 0 {
			c.report(fmt.Errorf("%v: %v", errUnderflow, spanString(rest)))
		}
		return
	}

	trees := make([]*expr, len(spans))
	for i, span := range spans {
		tree, err := buildTree(span, resolve)
		if err != nil {
			c.report(err)
			return
		}
		trees[i] = tree
	}

	vals := make([]rat.Rat, len(trees))
	errs := make([]error, len(trees))

	var group errgroup.Group
	group.SetLimit(c.workers)
	for i, tree := range trees {
		i, tree := i, tree
		group.Go(func() error {
			errs[i] = panicerr.Call("eval", func() error {
				var err error
				vals[i], err = c.eval(tree, nil, 0)
				return err
			})
			return nil
		})
	}
	group.Wait()

	// every complete span has been consumed; only the incomplete
	// remainder survives
	c.stack = rest

	for i := range trees {
		if err := errs[i]; err != nil {
			if fatalError(err) || panicerr.IsPanic(err) {
				c.halt(err)
			}
			c.report(err)
			continue
		}
		c.emit("> %v\n", vals[i])
	}
	if len(rest) > 0 {
		c.report(fmt.Errorf("%v: %v", errUnderflow, spanString(rest)))
	}
}
