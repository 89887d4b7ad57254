package main

import (
	"errors"
	"fmt"

	"github.com/rpnlang/rpnc/internal/rat"
)

// The recoverable failure classes abort only the command that raised
// them; the stack and table are left as they were before it. Exceeding
// the recursion depth ceiling is the one fatal class: it aborts the
// whole run (see Calc.halt).

var errUnderflow = errors.New("incomplete expression")

type unknownFunctionError struct {
	name  string
	arity int
}

func (uf unknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function %v/%v", uf.name, uf.arity)
}

type argRangeError struct {
	index int
	size  int
}

func (ar argRangeError) Error() string {
	if ar.size == 0 {
		return fmt.Sprintf("argument $%v outside any function body", ar.index)
	}
	return fmt.Sprintf("argument $%v out of range for arity %v", ar.index, ar.size)
}

type invalidInBodyError struct {
	tok token
}

func (ib invalidInBodyError) Error() string {
	return fmt.Sprintf("command %v not allowed in a function body", ib.tok)
}

type depthError int

func (limit depthError) Error() string {
	return fmt.Sprintf("recursion depth limit %v exhausted", int(limit))
}

// fatalError reports err as unrecoverable: the evaluation pass that
// raised it cannot continue and neither can the command stream.
func fatalError(err error) bool {
	var de depthError
	return errors.As(err, &de)
}

// recoverableError classifies everything the command processor merely
// reports: lexing, arity, lookup and arithmetic failures.
func recoverableError(err error) bool {
	if err == nil || fatalError(err) {
		return false
	}
	var (
		uf unknownFunctionError
		ar argRangeError
		ib invalidInBodyError
		pe rat.ParseError
	)
	return errors.Is(err, errUnderflow) ||
		errors.Is(err, rat.ErrDivisionByZero) ||
		errors.Is(err, rat.ErrModulusZero) ||
		errors.As(err, &uf) || errors.As(err, &ar) ||
		errors.As(err, &ib) || errors.As(err, &pe)
}
