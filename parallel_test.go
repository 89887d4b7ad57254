package main

import (
	"fmt"
	"strings"
	"testing"
)

func TestCalc_flushAll(t *testing.T) {
	calcTestCases{
		calcTest("results in stack order").
			withLine(`1 2 + 10 20 *`, `>`).
			expectOutput("> 200\n> 3\n").expectNoErrors().expectSize(0),

		calcTest("empty stack is a no-op").
			withLine(`>`).
			expectOutput("").expectNoErrors().expectSize(0),

		calcTest("incomplete remainder survives").
			withLine(`+ 1 2 +`, `>`).
			expectOutput("> 3\n").
			expectErrorContains("incomplete expression").
			expectSize(1),

		calcTest("function calls evaluate concurrently").
			withStdLib().
			withOptions(WithWorkers(4)).
			withLine(`20 nfib 21 nfib 22 nfib`, `>`).
			expectOutput("> 17711\n> 10946\n> 6765\n").expectNoErrors(),
	}.run(t)
}

// Ordering must hold however the evaluations interleave, so run a
// batch wide enough to keep every worker busy.
func TestCalc_flushAllOrdering(t *testing.T) {
	var line, want strings.Builder
	const n = 64
	for i := 0; i < n; i++ {
		fmt.Fprintf(&line, "%v 1 + ", i)
	}
	for i := n - 1; i >= 0; i-- {
		fmt.Fprintf(&want, "> %v\n", i+1)
	}
	calcTest("ordered").
		withOptions(WithWorkers(8)).
		withLine(line.String(), `>`).
		expectOutput(want.String()).
		expectNoErrors().
		expectSize(0).
		run(t)
}
