package main

import (
	"bufio"
	"strings"

	_ "embed"
)

//go:embed std_lib.rpnl
var stdLib string

// loadStdLib feeds the embedded definitions through the interpreter.
// It returns the first unrecoverable error; malformed definitions
// would surface on the error stream like any other input.
func (c *Calc) loadStdLib() error {
	sc := bufio.NewScanner(strings.NewReader(stdLib))
	for sc.Scan() {
		if err := c.Interpret(sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}
