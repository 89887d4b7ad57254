package main

import (
	"sort"
	"strconv"
	"sync"

	"github.com/rpnlang/rpnc/internal/rat"
)

type funcMode uint8

const (
	funcRecursive funcMode = iota // body re-enters the evaluator
	funcIterative                 // runs as an explicit loop
)

// funcDef is one immutable function definition, stored under its
// (name, arity) key. Recursive mode keeps a single body; iterative
// mode keeps the per-argument step expressions, the terminal mapping
// and the stop predicate.
type funcDef struct {
	name  string
	arity int
	mode  funcMode

	body *expr // funcRecursive

	inits []*expr // funcIterative: next value for each argument
	final *expr   // funcIterative: mapping applied on exit
	cond  *expr   // funcIterative: non-zero selects final
}

// binding is what one name resolves to: either a variable value or a
// set of function definitions keyed by arity. Binding a variable
// replaces any functions under the name and vice versa.
type binding struct {
	isVar bool
	value rat.Rat

	funcs map[int]*funcDef
	last  int // most recently declared arity, resolves call shape
}

// symtab is the process-wide symbol table. It is the only shared
// mutable state in the interpreter: commands are its single writer,
// evaluation passes are read-only, so any number of evaluations may
// run in parallel between two commands.
type symtab struct {
	mu   sync.RWMutex
	defs map[string]*binding
}

func newSymtab() *symtab {
	return &symtab{defs: make(map[string]*binding)}
}

func (st *symtab) variable(name string) (rat.Rat, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if b, ok := st.defs[name]; ok && b.isVar {
		return b.value, true
	}
	return rat.Rat{}, false
}

func (st *symtab) function(name string, arity int) (*funcDef, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if b, ok := st.defs[name]; ok && !b.isVar {
		def, ok := b.funcs[arity]
		return def, ok
	}
	return nil, false
}

// callArity resolves the call shape for a name at expression-build
// time: the arity of its most recent declaration. When one name holds
// several arities they remain distinct entries; only the shape a bare
// call site consumes follows the latest declaration.
func (st *symtab) callArity(name string) (int, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if b, ok := st.defs[name]; ok && !b.isVar {
		return b.last, true
	}
	return 0, false
}

func (st *symtab) bindVar(name string, v rat.Rat) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.defs[name] = &binding{isVar: true, value: v}
}

// bindFunc installs def under (def.name, def.arity), atomically
// replacing any previous definition of that exact key. Callers that
// already hold the name resolve the new body on their next
// invocation.
func (st *symtab) bindFunc(def *funcDef) {
	st.mu.Lock()
	defer st.mu.Unlock()
	b, ok := st.defs[def.name]
	if !ok || b.isVar {
		b = &binding{funcs: make(map[int]*funcDef)}
		st.defs[def.name] = b
	}
	b.funcs[def.arity] = def
	b.last = def.arity
}

// resolver returns the arity view expression building uses. overlay
// maps a name being declared to its declared arity, so a body can
// call the declaration itself before it is installed.
func (st *symtab) resolver(overlay map[string]int) arityResolver {
	return func(name string) (int, bool) {
		if overlay != nil {
			if arity, ok := overlay[name]; ok {
				return arity, true
			}
		}
		return st.callArity(name)
	}
}

// names lists all bound names in sorted order, for dumps.
func (st *symtab) names() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]string, 0, len(st.defs))
	for name := range st.defs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (def *funcDef) key() string {
	sep := "|"
	if def.mode == funcIterative {
		sep = "@"
	}
	return def.name + sep + strconv.Itoa(def.arity)
}
