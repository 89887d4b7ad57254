package rat

import (
	"fmt"
	"math/big"
	"strings"
)

// ParseError reports a literal that does not form a valid rational.
type ParseError string

func (pe ParseError) Error() string {
	return fmt.Sprintf("malformed rational literal %q", string(pe))
}

// Parse reads a literal of the form [-+]?digits[/digits]. A bare
// trailing slash, an empty part, or a zero denominator all fail with a
// ParseError.
func Parse(s string) (Rat, error) {
	numPart, denPart, slashed := strings.Cut(s, "/")
	num, ok := parseInt(numPart, true)
	if !ok {
		return Rat{}, ParseError(s)
	}
	if !slashed {
		return FromBigInt(num), nil
	}
	den, ok := parseInt(denPart, false)
	if !ok || den.Sign() == 0 {
		return Rat{}, ParseError(s)
	}
	return wrap(new(big.Rat).SetFrac(num, den)), nil
}

func parseInt(s string, signed bool) (*big.Int, bool) {
	digits := s
	if signed && len(digits) > 0 && (digits[0] == '-' || digits[0] == '+') {
		digits = digits[1:]
	}
	if len(digits) == 0 {
		return nil, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return nil, false
		}
	}
	n, ok := new(big.Int).SetString(s, 10)
	return n, ok
}

// Bytes renders the absolute numerator in base 256, one byte per
// digit, least-significant first. This is the value-as-string
// convention: "AB" encodes as 0x41 + 0x42*256. Zero renders empty.
func (a Rat) Bytes() []byte {
	n := a.rat().Num()
	be := n.Bytes() // big-endian, no sign
	le := make([]byte, len(be))
	for i, b := range be {
		le[len(be)-1-i] = b
	}
	return le
}

// FromBytes builds the integer rational encoded by b under the same
// little-endian base-256 convention Bytes uses.
func FromBytes(b []byte) Rat {
	be := make([]byte, len(b))
	for i, c := range b {
		be[len(b)-1-i] = c
	}
	return FromBigInt(new(big.Int).SetBytes(be))
}
