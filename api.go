package main

import (
	"context"
	"errors"
	"io"

	"github.com/rpnlang/rpnc/internal/panicerr"
)

// New builds a calculator with an empty stack and table. Options
// apply over defaults: discarded output, no input, a recursion depth
// limit of 4096 and one evaluation worker per CPU.
func New(opts ...Option) *Calc {
	c := &Calc{table: newSymtab()}
	c.applyOptions(opts...)
	return c
}

// Run consumes input line by line until EOF or cancellation. It
// returns only unrecoverable conditions: recoverable errors are
// reported to the error output and the run continues.
func (c *Calc) Run(ctx context.Context) error {
	err := panicerr.Recover("calc", func() error {
		return c.run(ctx)
	})
	return demoteHalt(err)
}

// Interpret runs a single line of source, as the REPL does.
func (c *Calc) Interpret(line string) error {
	err := panicerr.Recover("calc", func() error {
		c.interpret(line)
		return nil
	})
	return demoteHalt(err)
}

// Size reports how many tokens are pending on the stack.
func (c *Calc) Size() int { return len(c.stack) }

func demoteHalt(err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var halt haltError
	if errors.As(err, &halt) {
		err = halt.error
	}
	return err
}

func WithInput(r io.Reader) Option       { return withInput(r) }
func WithOutput(w io.Writer) Option      { return withOutput(w) }
func WithErrorOutput(w io.Writer) Option { return withErrorOutput(w) }
func WithTee(w io.Writer) Option         { return withTee(w) }
func WithDepthLimit(limit int) Option    { return withDepthLimit(limit) }
func WithWorkers(n int) Option           { return withWorkers(n) }

func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }
