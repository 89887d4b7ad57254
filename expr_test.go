package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapResolver(arities map[string]int) arityResolver {
	return func(name string) (int, bool) {
		arity, ok := arities[name]
		return arity, ok
	}
}

func lexSpan(t *testing.T, src string) []token {
	t.Helper()
	return lexAll(t, src)
}

func Test_clipIndex(t *testing.T) {
	for _, tc := range []struct {
		name    string
		stack   string
		arities map[string]int
		want    int
		wantErr error
	}{
		{name: "single value", stack: `7`, want: 0},
		{name: "top value only", stack: `1 2 3`, want: 2},
		{name: "binary operator", stack: `9 1 2 +`, want: 1},
		{name: "nested operators", stack: `1 2 + 3 *`, want: 0},
		{name: "ternary", stack: `9 1 2 3 ?`, want: 1},
		{name: "call consumes arity", stack: `9 1 2 f`, arities: map[string]int{"f": 2}, want: 1},
		{name: "unknown name is a leaf", stack: `1 2 f`, want: 2},
		{name: "underflow", stack: `1 +`, wantErr: errUnderflow},
		{name: "empty underflow", stack: ``, wantErr: errUnderflow},
	} {
		t.Run(tc.name, func(t *testing.T) {
			i, err := clipIndex(lexSpan(t, tc.stack), mapResolver(tc.arities))
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, i)
		})
	}
}

func Test_buildTree(t *testing.T) {
	resolve := mapResolver(map[string]int{"f": 2})

	t.Run("round trips through String", func(t *testing.T) {
		for _, src := range []string{
			`7`,
			`1 2 +`,
			`1 2 + 3 *`,
			`1 2 3 ?`,
			`1 2 f`,
			`$0 $1 f 3 +`,
		} {
			tree, err := buildTree(lexSpan(t, src), resolve)
			require.NoError(t, err, "building %q", src)
			assert.Equal(t, src, tree.String())
		}
	})

	t.Run("call children in argument order", func(t *testing.T) {
		tree, err := buildTree(lexSpan(t, `1 2 f`), resolve)
		require.NoError(t, err)
		require.Len(t, tree.args, 2)
		assert.Equal(t, "1", tree.args[0].String())
		assert.Equal(t, "2", tree.args[1].String())
	})

	t.Run("command rejected", func(t *testing.T) {
		_, err := buildTree([]token{{kind: tokNumber}, {kind: tokEval}}, resolve)
		var ib invalidInBodyError
		assert.ErrorAs(t, err, &ib)
	})

	t.Run("underflow", func(t *testing.T) {
		_, err := buildTree(lexSpan(t, `1 +`), resolve)
		assert.ErrorIs(t, err, errUnderflow)
	})

	t.Run("leftover nodes underflow", func(t *testing.T) {
		_, err := buildTree(lexSpan(t, `1 2`), resolve)
		assert.ErrorIs(t, err, errUnderflow)
	})
}

func Test_splitSpans(t *testing.T) {
	resolve := mapResolver(nil)

	spans, rest := splitSpans(lexSpan(t, `1 2 + 10 20 *`), resolve)
	require.Len(t, spans, 2)
	assert.Equal(t, "10 20 *", spanString(spans[0]))
	assert.Equal(t, "1 2 +", spanString(spans[1]))
	assert.Empty(t, rest)

	spans, rest = splitSpans(lexSpan(t, `+ 1 2 +`), resolve)
	require.Len(t, spans, 1)
	assert.Equal(t, "1 2 +", spanString(spans[0]))
	assert.Equal(t, "+", spanString(rest))
}
