package rpnsolve

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokNone tokenKind = iota
	// tokEOF indicates the end of the input.
	tokEOF
	// tokNum is a number literal, without sign.
	tokNum
	// tokOp is an operator from the table.
	tokOp
	// tokOpen is an open bracket, e.g. (.
	tokOpen
	// tokClose is a close bracket, e.g. ).
	tokClose
)

func (k tokenKind) String() string {
	switch k {
	case tokNone:
		return "None"
	case tokEOF:
		return "EOF"
	case tokNum:
		return "Num"
	case tokOp:
		return "Op"
	case tokOpen:
		return "Open"
	case tokClose:
		return "Close"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// OpenBrackets and CloseBrackets contain the runes which group expressions.
// The parser checks that a bracket in byte position k in OpenBrackets is
// matched with the bracket in byte position k in CloseBrackets.
const (
	OpenBrackets  = "([{"
	CloseBrackets = ")]}"
)

// signs are the operator texts that may prefix a number literal.
const signs = "+-"

type lexer struct {
	src   string
	off   int
	rune  int
	table *Table
	p     lexToken
}

func lex(src string, table *Table) *lexer {
	return &lexer{
		src:   src,
		rune:  1,
		table: table,
	}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokNone {
		panic("rpnsolve: double push")
	}
	l.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *lexer) must() lexToken {
	tok := l.p
	if tok.kind == tokNone {
		panic("rpnsolve: no pushed token")
	}
	l.p = lexToken{}
	return tok
}

// peekRune returns the next rune without consuming it, or utf8.RuneError and
// 0 at the end of input.
func (l *lexer) peekRune() (rune, int) {
	if l.off >= len(l.src) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(l.src[l.off:])
}

// advance consumes n bytes holding k runes.
func (l *lexer) advance(n, k int) {
	l.off += n
	l.rune += k
}

// adjacent reports whether the next rune starts a number, i.e. a sign just
// scanned is part of a literal rather than an operator.
func (l *lexer) adjacent() bool {
	r, _ := l.peekRune()
	return '0' <= r && r <= '9' || r == '.'
}

// next scans the next token from the input. At the end of input, the result is
// an EOF token.
func (l *lexer) next() (lexToken, error) {
	if l.p.kind != tokNone {
		tok := l.p
		l.p = lexToken{}
		return tok, nil
	}
	for {
		r, sz := l.peekRune()
		tok := lexToken{pos: l.rune}
		switch {
		case sz == 0:
			tok.kind = tokEOF
			return tok, nil
		case unicode.IsSpace(r):
			l.advance(sz, 1)
			continue
		case '0' <= r && r <= '9', r == '.':
			text, err := l.scanNum()
			if err != nil {
				return tok, err
			}
			tok.text = text
			tok.kind = tokNum
			return tok, nil
		case r == '_', unicode.IsLetter(r):
			text := l.scanWord()
			if _, ok := l.table.Lookup(text); !ok {
				return tok, &OperatorError{Col: tok.pos, Operator: text}
			}
			tok.text = text
			tok.kind = tokOp
			return tok, nil
		case strings.ContainsRune(OpenBrackets, r):
			l.advance(sz, 1)
			tok.text = string(r)
			tok.kind = tokOpen
			return tok, nil
		case strings.ContainsRune(CloseBrackets, r):
			l.advance(sz, 1)
			tok.text = string(r)
			tok.kind = tokClose
			return tok, nil
		default:
			sym := l.scanSymbol()
			if sym == "" {
				if strings.ContainsRune(signs, r) {
					// A sign that is not an operator of the table can still
					// prefix a literal.
					l.advance(sz, 1)
					tok.text = string(r)
					tok.kind = tokOp
					return tok, nil
				}
				l.advance(sz, 1)
				return tok, l.error(string(r), "")
			}
			tok.text = sym
			tok.kind = tokOp
			return tok, nil
		}
	}
}

// scanSymbol consumes the longest punctuation operator in the table that
// starts at the current position.
func (l *lexer) scanSymbol() string {
	rest := l.src[l.off:]
	best := ""
	for _, op := range l.table.ops {
		if len(op.Symbol) > len(best) && strings.HasPrefix(rest, op.Symbol) {
			best = op.Symbol
		}
	}
	l.advance(len(best), utf8.RuneCountInString(best))
	return best
}

func (l *lexer) scanWord() string {
	start := l.off
	for {
		r, sz := l.peekRune()
		if sz == 0 || r != '_' && !unicode.IsLetter(r) {
			return l.src[start:l.off]
		}
		l.advance(sz, 1)
	}
}

func (l *lexer) scanNum() (string, error) {
	start := l.off
	var dig, dot, e, le, ed bool
	for {
		r, sz := l.peekRune()
		if sz == 0 {
			break
		}
		if r == '+' || r == '-' {
			// + or - anywhere other than immediately following an exponent
			// marker means a new token, as it is an operator.
			if !le {
				break
			}
			le = false
			l.advance(sz, 1)
			continue
		}
		if r != '.' && r != 'e' && r != 'E' && (r < '0' || r > '9') {
			if unicode.IsLetter(r) || r == '_' {
				// 2x is not a number, nor an implicit multiplication.
				l.advance(sz, 1)
				return "", l.error(l.src[start:l.off], "number")
			}
			break
		}
		l.advance(sz, 1)
		switch r {
		case '.':
			if dot || e {
				return "", l.error(l.src[start:l.off], "number")
			}
			dot = true
			le = false
		case 'e', 'E':
			if !dig || e {
				return "", l.error(l.src[start:l.off], "number")
			}
			e = true
			le = true
		default:
			if e {
				ed = true
			} else {
				dig = true
			}
			le = false
		}
	}
	if (!dig && !ed) || (e && !ed) {
		return "", l.error(l.src[start:l.off], "number")
	}
	return l.src[start:l.off], nil
}

func (l *lexer) error(text, kind string) error {
	return &LexError{
		Text: text,
		Kind: kind,
		Col:  l.rune,
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number"
	// or the empty string (if a token kind hadn't been decided).
	Kind string
	// Col is the total number of runes scanned by the lexer up to and
	// including this error.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
