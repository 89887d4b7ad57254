package main

import (
	"bytes"
	"io"
	"runtime"
)

type Option interface{ apply(c *Calc) }

var defaults = []Option{
	withInput(bytes.NewReader(nil)),
	withOutput(io.Discard),
	withErrorOutput(io.Discard),
	withDepthLimit(defaultDepthLimit),
	withWorkers(0),
}

const defaultDepthLimit = 4096

func (c *Calc) applyOptions(opts ...Option) {
	for _, opt := range defaults {
		if opt != nil {
			opt.apply(c)
		}
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(c)
		}
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(c *Calc) {
	c.logfn = logfn
}

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type errorOutputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type depthLimitOption int
type workersOption int

func withInput(r io.Reader) inputOption             { return inputOption{r} }
func withOutput(w io.Writer) outputOption           { return outputOption{w} }
func withErrorOutput(w io.Writer) errorOutputOption { return errorOutputOption{w} }
func withTee(w io.Writer) teeOption                 { return teeOption{w} }
func withDepthLimit(limit int) depthLimitOption     { return depthLimitOption(limit) }
func withWorkers(n int) workersOption               { return workersOption(n) }

func (i inputOption) apply(c *Calc) {
	c.in = i.Reader
}

func (o outputOption) apply(c *Calc) {
	if c.out != nil {
		c.out.Flush()
	}
	c.out = newWriteFlusher(o.Writer)
}

func (o errorOutputOption) apply(c *Calc) {
	if c.errs != nil {
		c.errs.Flush()
	}
	c.errs = newWriteFlusher(o.Writer)
}

func (o teeOption) apply(c *Calc) {
	c.out = multiWriteFlusher(c.out, newWriteFlusher(o.Writer))
}

func (lim depthLimitOption) apply(c *Calc) {
	if lim > 0 {
		c.depthLimit = int(lim)
	}
}

func (n workersOption) apply(c *Calc) {
	if n > 0 {
		c.workers = int(n)
	} else {
		c.workers = runtime.GOMAXPROCS(0)
	}
}
