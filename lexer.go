package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rpnlang/rpnc/internal/rat"
)

type tokenKind uint8

const (
	tokNone tokenKind = iota

	// pushable value tokens
	tokNumber // literal or quoted string
	tokIdent  // variable or function name
	tokArg    // $N positional argument reference

	// binary operators
	tokAdd    // +
	tokSub    // -
	tokMul    // *
	tokQuo    // /
	tokPosSub // ~   max(a-b, 0)
	tokIntDiv // \   floor(a/b)
	tokPow    // ^

	// ternary operators
	tokPowMod // _   base exp mod
	tokIf     // ?   left right cond

	// commands; these execute immediately and never enter the stack
	tokAssign     // =name
	tokDefine     // name|arity
	tokDefineIter // name@arity
	tokEval       // =
	tokPeek       // #
	tokShow       // :
	tokFlushAll   // >
	tokDup        // <
	tokDrop       // !
	tokClear      // %
	tokFormat     // &

	tokBad
)

var tokenSymbols = map[tokenKind]string{
	tokAdd:      "+",
	tokSub:      "-",
	tokMul:      "*",
	tokQuo:      "/",
	tokPosSub:   "~",
	tokIntDiv:   "\\",
	tokPow:      "^",
	tokPowMod:   "_",
	tokIf:       "?",
	tokEval:     "=",
	tokPeek:     "#",
	tokShow:     ":",
	tokFlushAll: ">",
	tokDup:      "<",
	tokDrop:     "!",
	tokClear:    "%",
	tokFormat:   "&",
}

// operandCount is the fixed number of expressions an operator consumes
// from the stack; zero for anything that is not an operator.
func (k tokenKind) operandCount() int {
	switch {
	case k >= tokAdd && k <= tokPow:
		return 2
	case k == tokPowMod || k == tokIf:
		return 3
	}
	return 0
}

func (k tokenKind) isCommand() bool { return k >= tokAssign && k <= tokFormat }

type token struct {
	kind  tokenKind
	num   rat.Rat // tokNumber
	name  string  // tokIdent, tokAssign, tokDefine, tokDefineIter
	arg   int     // tokArg
	arity int     // tokDefine, tokDefineIter
	text  string  // tokBad: raw source text
	err   error   // tokBad: what went wrong
}

func (tok token) String() string {
	switch tok.kind {
	case tokNumber:
		return tok.num.String()
	case tokIdent:
		return tok.name
	case tokArg:
		return "$" + strconv.Itoa(tok.arg)
	case tokAssign:
		return "=" + tok.name
	case tokDefine:
		return tok.name + "|" + strconv.Itoa(tok.arity)
	case tokDefineIter:
		return tok.name + "@" + strconv.Itoa(tok.arity)
	case tokBad:
		return fmt.Sprintf("%q", tok.text)
	}
	if sym, ok := tokenSymbols[tok.kind]; ok {
		return sym
	}
	return "<none>"
}

func numberToken(v rat.Rat) token  { return token{kind: tokNumber, num: v} }
func identToken(name string) token { return token{kind: tokIdent, name: name} }
func badToken(text string, err error) token {
	return token{kind: tokBad, text: text, err: err}
}

// lexer scans one line of source text left to right, one pass, no
// backtracking. A ';' discards the rest of the line.
type lexer struct {
	src string
	pos int
}

func newLexer(src string) *lexer { return &lexer{src: src} }

func (lx *lexer) next() (token, error) {
	lx.skipSpace()
	if lx.pos >= len(lx.src) {
		return token{}, io.EOF
	}

	c := lx.src[lx.pos]
	switch {
	case c == ';':
		lx.pos = len(lx.src)
		return token{}, io.EOF

	case isDigit(c):
		return lx.scanNumber(), nil

	case c == '+' || c == '-':
		if isDigit(lx.peek(1)) {
			return lx.scanNumber(), nil
		}
		lx.pos++
		if c == '+' {
			return token{kind: tokAdd}, nil
		}
		return token{kind: tokSub}, nil

	case c == '"':
		return lx.scanString(), nil

	case c == '$':
		return lx.scanArg(), nil

	case c == '=':
		if isLetter(lx.peek(1)) {
			lx.pos++
			name := lx.scanName()
			return token{kind: tokAssign, name: name}, nil
		}
		lx.pos++
		return token{kind: tokEval}, nil

	case isLetter(c):
		return lx.scanIdent(), nil
	}

	for kind, sym := range tokenSymbols {
		if sym[0] == c {
			lx.pos++
			return token{kind: kind}, nil
		}
	}

	text := lx.scanWord()
	return badToken(text, fmt.Errorf("unrecognized token %q", text)), nil
}

func (lx *lexer) peek(ahead int) byte {
	if i := lx.pos + ahead; i < len(lx.src) {
		return lx.src[i]
	}
	return 0
}

func (lx *lexer) skipSpace() {
	for lx.pos < len(lx.src) && isSpace(lx.src[lx.pos]) {
		lx.pos++
	}
}

// scanWord consumes up to the next whitespace, for error reporting.
func (lx *lexer) scanWord() string {
	start := lx.pos
	for lx.pos < len(lx.src) && !isSpace(lx.src[lx.pos]) {
		lx.pos++
	}
	return lx.src[start:lx.pos]
}

// A numeric literal is an optional sign, a decimal integer, and an
// optional '/' followed by a denominator. A bare trailing '/' is
// malformed rather than two tokens.
func (lx *lexer) scanNumber() token {
	start := lx.pos
	if c := lx.src[lx.pos]; c == '+' || c == '-' {
		lx.pos++
	}
	lx.scanDigits()
	if lx.pos < len(lx.src) && lx.src[lx.pos] == '/' {
		lx.pos++
		lx.scanDigits()
	}
	text := lx.src[start:lx.pos]
	v, err := rat.Parse(text)
	if err != nil {
		return badToken(text, err)
	}
	return numberToken(v)
}

func (lx *lexer) scanDigits() { // may consume nothing
	for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
		lx.pos++
	}
}

// scanName consumes an identifier: a letter, then letters and digits,
// with '-' or '_' allowed as interior separators before another
// letter or digit.
func (lx *lexer) scanName() string {
	start := lx.pos
	lx.pos++
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		if isLetter(c) || isDigit(c) {
			lx.pos++
			continue
		}
		if (c == '-' || c == '_') && (isLetter(lx.peek(1)) || isDigit(lx.peek(1))) {
			lx.pos += 2
			continue
		}
		break
	}
	return lx.src[start:lx.pos]
}

// scanIdent reads an identifier, promoting it to a declaration token
// when immediately followed by |arity or @arity.
func (lx *lexer) scanIdent() token {
	name := lx.scanName()
	if lx.pos >= len(lx.src) {
		return identToken(name)
	}
	sep := lx.src[lx.pos]
	if (sep != '|' && sep != '@') || !isDigit(lx.peek(1)) {
		return identToken(name)
	}
	lx.pos++
	start := lx.pos
	lx.scanDigits()
	arity, err := strconv.Atoi(lx.src[start:lx.pos])
	if err != nil {
		text := name + string(sep) + lx.src[start:lx.pos]
		return badToken(text, fmt.Errorf("bad arity in %q", text))
	}
	kind := tokDefine
	if sep == '@' {
		kind = tokDefineIter
	}
	return token{kind: kind, name: name, arity: arity}
}

func (lx *lexer) scanArg() token {
	lx.pos++ // consume '$'
	start := lx.pos
	lx.scanDigits()
	if lx.pos == start {
		text := "$" + lx.scanWord()
		return badToken(text, fmt.Errorf("malformed argument reference %q", text))
	}
	index, err := strconv.Atoi(lx.src[start:lx.pos])
	if err != nil {
		text := "$" + lx.src[start:lx.pos]
		return badToken(text, fmt.Errorf("bad argument index in %q", text))
	}
	return token{kind: tokArg, arg: index}
}

// scanString reads a quoted literal and encodes its bytes as a
// base-256 little-endian integer. Escapes: \n \r \t \\ \" and \xx for
// two hex digits.
func (lx *lexer) scanString() token {
	start := lx.pos
	lx.pos++ // consume '"'
	var buf []byte
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch c {
		case '"':
			lx.pos++
			return numberToken(rat.FromBytes(buf))
		case '\\':
			b, ok := lx.scanEscape()
			if !ok {
				text := lx.src[start:lx.pos]
				return badToken(text, fmt.Errorf("bad escape in string %s", text))
			}
			buf = append(buf, b)
		default:
			buf = append(buf, c)
			lx.pos++
		}
	}
	text := lx.src[start:]
	return badToken(text, fmt.Errorf("unterminated string %s", text))
}

func (lx *lexer) scanEscape() (byte, bool) {
	lx.pos++ // consume '\'
	if lx.pos >= len(lx.src) {
		return 0, false
	}
	c := lx.src[lx.pos]
	lx.pos++
	switch c {
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case '\\':
		return '\\', true
	case '"':
		return '"', true
	}
	hi, ok := hexVal(c)
	if !ok || lx.pos >= len(lx.src) {
		return 0, false
	}
	lo, ok := hexVal(lx.src[lx.pos])
	if !ok {
		return 0, false
	}
	lx.pos++
	return hi<<4 | lo, true
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
