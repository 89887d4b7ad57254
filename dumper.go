package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// calcDumper renders interpreter state for halt diagnostics and
// tests: the pending stack segmented into spans, then every table
// binding in name order.
type calcDumper struct {
	calc *Calc
	out  io.Writer
}

func (c *Calc) dump() {
	calcDumper{calc: c, out: logWriter{c.logf}}.dump()
}

func (dump calcDumper) dump() {
	fmt.Fprintf(dump.out, "# Calc Dump\n")
	dump.dumpStack()
	dump.dumpTable()
}

func (dump calcDumper) dumpStack() {
	spans, rest := splitSpans(dump.calc.stack, dump.calc.table.resolver(nil))
	for i, span := range spans {
		fmt.Fprintf(dump.out, "  stack[%v]: %v\n", i, spanString(span))
	}
	if len(rest) > 0 {
		fmt.Fprintf(dump.out, "  stack rest: %v\n", spanString(rest))
	}
}

func (dump calcDumper) dumpTable() {
	st := dump.calc.table
	for _, name := range st.names() {
		st.mu.RLock()
		b := st.defs[name]
		st.mu.RUnlock()
		if b.isVar {
			fmt.Fprintf(dump.out, "  var %v = %v\n", name, b.value)
			continue
		}
		arities := make([]int, 0, len(b.funcs))
		for arity := range b.funcs {
			arities = append(arities, arity)
		}
		sort.Ints(arities)
		for _, arity := range arities {
			def := b.funcs[arity]
			if def.mode == funcRecursive {
				fmt.Fprintf(dump.out, "  func %v: %v\n", def.key(), def.body)
				continue
			}
			steps := make([]string, len(def.inits))
			for i, init := range def.inits {
				steps[i] = init.String()
			}
			fmt.Fprintf(dump.out, "  func %v: steps=[%v] final=%v cond=%v\n",
				def.key(), strings.Join(steps, ", "), def.final, def.cond)
		}
	}
}

// String renders the tree back in stack order, children before the
// node that consumes them.
func (e *expr) String() string {
	var sb strings.Builder
	e.render(&sb)
	return sb.String()
}

func (e *expr) render(sb *strings.Builder) {
	for _, arg := range e.args {
		arg.render(sb)
		sb.WriteByte(' ')
	}
	sb.WriteString(e.tok.String())
}

// logWriter adapts a logf function to io.Writer for the dumper.
type logWriter struct {
	logf func(mess string, args ...interface{})
}

func (lw logWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		lw.logf("%s", line)
	}
	return len(p), nil
}
