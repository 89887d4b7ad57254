package main

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) []token {
	t.Helper()
	var toks []token
	lx := newLexer(src)
	for {
		tok, err := lx.next()
		if err == io.EOF {
			return toks
		}
		require.NoError(t, err)
		toks = append(toks, tok)
	}
}

func lexStrings(t *testing.T, src string) string {
	t.Helper()
	toks := lexAll(t, src)
	parts := make([]string, len(toks))
	for i, tok := range toks {
		parts[i] = tok.String()
	}
	return strings.Join(parts, " ")
}

func Test_lexer(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		out  string
	}{
		{"operators", `1 2 + 3 - 4 * 5 / 6 ~ 7 \ 8 ^`, `1 2 + 3 - 4 * 5 / 6 ~ 7 \ 8 ^`},
		{"ternaries", `1 2 3 ? 4 5 6 _`, `1 2 3 ? 4 5 6 _`},
		{"signed numbers", `-3 +4 - +`, `-3 4 - +`},
		{"fractions", `1/3 22/7`, `1/3 22/7`},
		{"arguments", `$0 $12`, `$0 $12`},
		{"identifiers", `x fib_aux two-words`, `x fib_aux two-words`},
		{"declarations", `f|2 g@3`, `f|2 g@3`},
		{"assign versus eval", `=x =`, `=x =`},
		{"commands", `= # : > < ! % &`, `= # : > < ! % &`},
		{"comment consumes rest", `1 2 ; + = anything`, `1 2`},
		{"empty", `   `, ``},
		{"string literal", `"AB"`, `16961`},
		{"string escapes", `"\x41"`, `65`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.out, lexStrings(t, tc.in))
		})
	}
}

func Test_lexer_badTokens(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
	}{
		{"trailing slash", `5/`},
		{"zero denominator", `1/0`},
		{"malformed argument", `$x`},
		{"unterminated string", `"oops`},
		{"bad escape", `"\q"`},
		{"unrecognized rune", `@`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			toks := lexAll(t, tc.in)
			require.NotEmpty(t, toks)
			bad := toks[0]
			assert.Equal(t, tokBad, bad.kind, "expected a bad token, got %v", bad)
			assert.Error(t, bad.err)
		})
	}
}

func Test_lexer_declarationNeedsArity(t *testing.T) {
	// a bare '|' or '@' after a name does not promote it
	toks := lexAll(t, `f| g@ 2`)
	require.Len(t, toks, 5)
	assert.Equal(t, tokIdent, toks[0].kind)
	assert.Equal(t, tokBad, toks[1].kind)
	assert.Equal(t, tokIdent, toks[2].kind)
	assert.Equal(t, tokBad, toks[3].kind)
	assert.Equal(t, tokNumber, toks[4].kind)
}
