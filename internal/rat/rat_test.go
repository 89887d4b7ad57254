package rat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, s string) Rat {
	t.Helper()
	v, err := Parse(s)
	require.NoError(t, err, "parse %q", s)
	return v
}

// Every operation must leave its result in lowest terms with a
// positive denominator.
func Test_reduction_invariant(t *testing.T) {
	for _, tc := range []struct {
		name string
		got  Rat
		want string
	}{
		{"add", parse(t, "1/6").Add(parse(t, "1/3")), "1/2"},
		{"sub", parse(t, "1/2").Sub(parse(t, "1/3")), "1/6"},
		{"sub negative", parse(t, "1/3").Sub(parse(t, "1/2")), "-1/6"},
		{"mul", parse(t, "2/3").Mul(parse(t, "3/4")), "1/2"},
		{"mul to int", parse(t, "2/3").Mul(parse(t, "3/2")), "1"},
		{"zero", parse(t, "1/2").Sub(parse(t, "1/2")), "0"},
		{"pow", parse(t, "2/3").Pow(Int(3)), "8/27"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.got.String())
			den := tc.got.Denom()
			assert.Equal(t, 1, den.Sign(), "denominator must stay positive")
			if num := tc.got.Num(); num.Sign() != 0 {
				assert.Equal(t, "1", num.GCD(nil, nil, num.Abs(num), den).String(),
					"gcd(|num|, den) must be 1")
			} else {
				assert.Equal(t, "1", den.String(), "zero is canonically 0/1")
			}
		})
	}
}

func Test_div(t *testing.T) {
	q, err := parse(t, "7/2").Div(parse(t, "7/4"))
	require.NoError(t, err)
	assert.Equal(t, "2", q.String())

	_, err = Int(1).Div(Rat{})
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func Test_posSub(t *testing.T) {
	assert.Equal(t, "1", Int(3).PosSub(Int(2)).String())
	assert.Equal(t, "0", Int(2).PosSub(Int(3)).String())
	assert.Equal(t, "0", Int(2).PosSub(Int(2)).String())
	assert.Equal(t, "1/6", parse(t, "1/2").PosSub(parse(t, "1/3")).String())
	assert.Equal(t, "0", parse(t, "1/3").PosSub(parse(t, "1/2")).String())
}

func Test_floor_intDiv(t *testing.T) {
	assert.Equal(t, "3", parse(t, "7/2").Floor().String())
	assert.Equal(t, "-4", parse(t, "-7/2").Floor().String())
	assert.Equal(t, "5", Int(5).Floor().String())

	q, err := Int(5).IntDiv(Int(2))
	require.NoError(t, err)
	assert.Equal(t, "2", q.String())
	assert.True(t, q.IsInt())

	q, err = Int(-7).IntDiv(Int(2))
	require.NoError(t, err)
	assert.Equal(t, "-4", q.String())

	_, err = Int(5).IntDiv(Rat{})
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func Test_pow_coercion(t *testing.T) {
	assert.Equal(t, "1024", Int(2).Pow(Int(10)).String())
	assert.Equal(t, "8", Int(2).Pow(Int(-3)).String(), "negative exponent truncates via floor(abs)")
	assert.Equal(t, "1", Int(2).Pow(parse(t, "1/2")).String(), "fractional exponent truncates to 0")
	assert.Equal(t, "4", Int(-2).Pow(Int(2)).String())
}

func Test_powMod(t *testing.T) {
	got, err := Int(2).PowMod(Int(10), Int(100))
	require.NoError(t, err)
	assert.Equal(t, "24", got.String())

	got, err = Int(3).PowMod(parse(t, "7/2"), Int(-10))
	require.NoError(t, err)
	assert.Equal(t, "7", got.String(), "3^floor(7/2) mod abs(-10)")

	got, err = Int(-2).PowMod(Int(3), Int(5))
	require.NoError(t, err)
	assert.True(t, got.Sign() >= 0, "result is canonicalized non-negative")

	_, err = Int(2).PowMod(Int(3), parse(t, "1/2"))
	assert.ErrorIs(t, err, ErrModulusZero, "modulus 1/2 coerces to zero")
}

func Test_parse(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
		bad  bool
	}{
		{in: "0", want: "0"},
		{in: "42", want: "42"},
		{in: "-17", want: "-17"},
		{in: "+9", want: "9"},
		{in: "6/4", want: "3/2"},
		{in: "-6/4", want: "-3/2"},
		{in: "3/", bad: true},
		{in: "/3", bad: true},
		{in: "1/0", bad: true},
		{in: "", bad: true},
		{in: "-", bad: true},
		{in: "1.5", bad: true},
	} {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if tc.bad {
				var pe ParseError
				assert.ErrorAs(t, err, &pe)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func Test_bytes_roundtrip(t *testing.T) {
	for _, s := range []string{"A", "AB", "hello world", "\x00x", ""} {
		got := FromBytes([]byte(s)).Bytes()
		want := []byte(s)
		// a leading NUL is a high-order zero digit and cannot survive
		// the integer encoding
		for len(want) > 0 && want[len(want)-1] == 0 {
			want = want[:len(want)-1]
		}
		assert.Equal(t, string(want), string(got), "round trip %q", s)
	}

	assert.Equal(t, "16961", FromBytes([]byte("AB")).String(),
		"0x41 + 0x42*256")
	assert.Empty(t, Rat{}.Bytes())
}

func Test_zero_value(t *testing.T) {
	var z Rat
	assert.True(t, z.IsZero())
	assert.True(t, z.IsInt())
	assert.Equal(t, "0", z.String())
	assert.Equal(t, "3", z.Add(Int(3)).String())
	assert.Equal(t, "1", z.Denom().String())
}
