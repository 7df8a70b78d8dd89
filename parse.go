package rpnsolve

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Expr = num | Binary | '(' Expr ')' | '[' Expr ']' | '{' Expr '}'
// num = [ '+' | '-' ] literal
// Binary = Expr op Expr, for each op in the table
//
// All operators group from the left; precedence comes from the table.

// ParseInfix parses infix text using the operators of table and returns the
// equivalent postfix sequence. It accepts everything Render produces, along
// with redundant brackets and arbitrary spacing. Every error from invalid
// input implements InputError.
func ParseInfix(table *Table, src string) (Sequence, error) {
	p := parser{scan: lex(src, table), table: table}
	if err := p.term(exprprec); err != nil {
		return nil, err
	}
	if p.empty {
		tok := p.scan.must()
		return nil, &EmptyExpressionError{Col: tok.pos, End: closing(tok)}
	}
	switch tok := p.scan.must(); tok.kind {
	case tokEOF:
	default:
		return nil, itShouldNotHaveEndedThisWay(tok, -1)
	}
	return p.out, nil
}

// parser emits postfix tokens while it climbs precedences.
type parser struct {
	scan  *lexer
	table *Table
	out   Sequence
	// empty is set when the last call to term found no expression.
	empty bool
}

// term parses a single term, emitting its postfix tokens. If there is no
// error, then term pushes the last token it scans, including EOF. If the input
// is an empty subexpression, term sets p.empty; callers must create an error
// in contexts where empty subexpressions are illegal.
func (p *parser) term(until operator) error {
	if err := p.lhs(); err != nil {
		return err
	}
	if p.empty {
		return nil
	}
	for {
		tok, err := p.scan.next()
		if err != nil {
			return err
		}
		switch tok.kind {
		case tokOp:
			prec, ok := p.binop(tok.text)
			if !ok {
				return &OperatorError{Col: tok.pos, Operator: tok.text}
			}
			if !prec.moreBinding(until) {
				p.scan.push(tok)
				return nil
			}
			if err := p.term(prec); err != nil {
				return err
			}
			if p.empty {
				end := p.scan.must()
				return &EmptyExpressionError{Col: end.pos, End: closing(end)}
			}
			p.out = append(p.out, OpToken(tok.text))
		case tokNum, tokOpen:
			// Juxtaposition is never produced by Render, so it is not a
			// multiplication here.
			return &OperatorError{Col: tok.pos, Operator: tok.text, Missing: true}
		case tokClose, tokEOF:
			// End of expression.
			p.scan.push(tok)
			return nil
		default:
			panic("rpnsolve: unknown token: " + tok.String())
		}
	}
}

// lhs parses the first component of a term: a number, possibly signed, or a
// bracketed subexpression.
func (p *parser) lhs() error {
	p.empty = false
	tok, err := p.scan.next()
	if err != nil {
		return err
	}
	switch tok.kind {
	case tokNum:
		return p.num(tok, "")
	case tokOp:
		if len(tok.text) == 1 && strings.Contains(signs, tok.text) && p.scan.adjacent() {
			num, err := p.scan.next()
			if err != nil {
				return err
			}
			return p.num(num, tok.text)
		}
		return &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
	case tokOpen:
		match := rightbracket(tok.text)
		if err := p.term(exprprec); err != nil {
			return err
		}
		if p.empty {
			end := p.scan.must()
			if end.kind == tokEOF {
				return &BracketError{Col: end.pos, Left: tok.text}
			}
			return &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		end := p.scan.must()
		if end.kind != tokClose || end.text != closebrackets[match] {
			return itShouldNotHaveEndedThisWay(end, match)
		}
	case tokClose, tokEOF:
		p.scan.push(tok)
		p.empty = true
	default:
		panic("rpnsolve: unknown token: " + tok.String())
	}
	return nil
}

// num emits a number literal with an optional sign.
func (p *parser) num(tok lexToken, sign string) error {
	v, err := strconv.ParseFloat(sign+tok.text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		// The lexer only produces valid literals.
		panic("rpnsolve: invalid number: " + tok.text + " (" + err.Error() + ")")
	}
	if math.IsInf(v, 0) {
		return &LexError{Text: sign + tok.text, Kind: "number", Col: tok.pos}
	}
	p.out = append(p.out, NumToken(v))
	return nil
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int
	// right indicates right-associativity.
	right bool
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets the precedence of a binary operator. A sign that is not in the
// table is not a binary operator.
func (p *parser) binop(text string) (operator, bool) {
	op, ok := p.table.Lookup(text)
	if !ok {
		return operator{}, false
	}
	return operator{prec: op.Prec}, true
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{prec: math.MinInt, right: true}

var (
	openbrackets  = byteidcs(OpenBrackets)
	closebrackets = byteidcs(CloseBrackets)
)

func byteidcs(s string) []string {
	v := make([]string, len(s))
	for i, r := range s {
		v[i] = string(r)
	}
	return v
}

// rightbracket gets the closing bracket index for an opening bracket.
func rightbracket(left string) int {
	k := strings.Index(OpenBrackets, left)
	if k < 0 || len(left) != 1 {
		panic("rpnsolve: invalid bracket " + strconv.Quote(left))
	}
	return k
}

// leftbracket gets the opening bracket matching right. If right is no bracket,
// then the result is the empty string.
func leftbracket(right int) string {
	if right == -1 {
		return ""
	}
	return openbrackets[right]
}

// closing returns the text of a token that ends a subexpression, or the empty
// string for EOF.
func closing(tok lexToken) string {
	if tok.kind == tokEOF {
		return ""
	}
	return tok.text
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. match is the bracket index that the
// expression should have matched, or -1 if none.
func itShouldNotHaveEndedThisWay(tok lexToken, match int) error {
	switch tok.kind {
	case tokEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: leftbracket(match), Right: ""}
	case tokClose:
		// A bracket could be the wrong bracket for the opening brace or any
		// bracket at the end of an input.
		return &BracketError{Col: tok.pos, Left: leftbracket(match), Right: tok.text}
	default:
		panic("rpnsolve: it really should not have ended this way: " + tok.String())
	}
}
