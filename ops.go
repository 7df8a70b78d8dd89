package rpnsolve

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a binary operation on reals. It returns the result of combining x
// (the left operand) with y (the right operand). If the operation is
// undefined for its operands, Func returns an error that is or wraps a
// *DomainError.
type Func func(x, y float64) (float64, error)

// Operator describes one binary operator usable in expressions.
type Operator struct {
	// Symbol is the text of the operator. It is the key of the operator in
	// a Table and is written between operands when rendering.
	Symbol string
	// Func computes the operator.
	Func Func
	// Prec is the precedence of the operator. Higher is more binding.
	Prec int
	// Assoc indicates that regrouping a right operand of equal precedence
	// never changes the value, as for addition and multiplication. This must
	// hold for every operator of that precedence as the right operand, e.g.
	// a * (b / c) = a * b / c.
	Assoc bool
}

// Table is an immutable, ordered set of operators. The order of a Table is
// the order in which a Solver enumerates operator choices.
type Table struct {
	ops []Operator
	idx map[string]int
}

// NewTable creates a table from a list of operators. The result is an error of
// type *TableError if any operator is unusable.
func NewTable(ops ...Operator) (*Table, error) {
	if len(ops) == 0 {
		return nil, &TableError{Reason: "no operators"}
	}
	t := Table{
		ops: make([]Operator, len(ops)),
		idx: make(map[string]int, len(ops)),
	}
	copy(t.ops, ops)
	for i, op := range t.ops {
		if err := checkSymbol(op.Symbol); err != "" {
			return nil, &TableError{Symbol: op.Symbol, Reason: err}
		}
		if op.Prec == math.MinInt {
			return nil, &TableError{Symbol: op.Symbol, Reason: "precedence out of range"}
		}
		if op.Func == nil {
			return nil, &TableError{Symbol: op.Symbol, Reason: "nil function"}
		}
		if _, ok := t.idx[op.Symbol]; ok {
			return nil, &TableError{Symbol: op.Symbol, Reason: "duplicate symbol"}
		}
		t.idx[op.Symbol] = i
	}
	return &t, nil
}

// checkSymbol returns a non-empty reason if s cannot be an operator symbol.
// A symbol is either a word of letters or a run of punctuation that does not
// include anything the infix lexer treats specially.
func checkSymbol(s string) string {
	if s == "" {
		return "empty symbol"
	}
	word := true
	for _, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
			// fine for words
		default:
			word = false
		}
	}
	if word {
		return ""
	}
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			return "symbol contains whitespace"
		case unicode.IsDigit(r), r == '.':
			return "symbol contains number characters"
		case strings.ContainsRune(OpenBrackets+CloseBrackets, r):
			return "symbol contains brackets"
		case r == '_', unicode.IsLetter(r):
			return "symbol mixes letters and punctuation"
		}
	}
	return ""
}

// Len returns the number of operators in the table.
func (t *Table) Len() int {
	return len(t.ops)
}

// Symbols returns the operator symbols in table order.
func (t *Table) Symbols() []string {
	r := make([]string, len(t.ops))
	for i, op := range t.ops {
		r[i] = op.Symbol
	}
	return r
}

// Lookup returns the operator with the given symbol.
func (t *Table) Lookup(sym string) (Operator, bool) {
	i, ok := t.idx[sym]
	if !ok {
		return Operator{}, false
	}
	return t.ops[i], true
}

// must returns the operator for sym or panics. Sequences that name operators
// missing from the table are programming errors.
func (t *Table) must(sym string) Operator {
	i, ok := t.idx[sym]
	if !ok {
		panic("rpnsolve: operator " + strconv.Quote(sym) + " not in table")
	}
	return t.ops[i]
}

// Basic returns the table of the four arithmetic operators + - * /.
func Basic() *Table {
	t, err := NewTable(Add, Sub, Mul, Div)
	if err != nil {
		panic(err)
	}
	return t
}

// Catalogue returns every operator known to the package, basic arithmetic
// first. Only Basic is used unless a caller asks for more.
func Catalogue() []Operator {
	return []Operator{Add, Sub, Mul, Div, Mod, Pow, Log}
}

// Select creates a table from the catalogue operators with the given symbols,
// in the order given.
func Select(symbols ...string) (*Table, error) {
	cat := Catalogue()
	ops := make([]Operator, 0, len(symbols))
outer:
	for _, s := range symbols {
		for _, op := range cat {
			if op.Symbol == s {
				ops = append(ops, op)
				continue outer
			}
		}
		return nil, &TableError{Symbol: s, Reason: "unknown operator"}
	}
	return NewTable(ops...)
}

var (
	// Add is addition.
	Add = Operator{Symbol: "+", Func: add, Prec: 1, Assoc: true}
	// Sub is subtraction.
	Sub = Operator{Symbol: "-", Func: sub, Prec: 1, Assoc: false}
	// Mul is multiplication.
	Mul = Operator{Symbol: "*", Func: mul, Prec: 2, Assoc: true}
	// Div is division. Division by zero is outside its domain.
	Div = Operator{Symbol: "/", Func: div, Prec: 2, Assoc: false}
	// Mod is the floored remainder, with the sign of the divisor. It binds
	// more tightly than multiplication so that "a * b % c" never needs to
	// mean "a * (b % c)" and "(a * b) % c" at once.
	Mod = Operator{Symbol: "%", Func: mod, Prec: 3, Assoc: false}
	// Pow is exponentiation. It is marked non-associative, so a right operand
	// of equal precedence is always bracketed.
	Pow = Operator{Symbol: "^", Func: pow, Prec: 5, Assoc: false}
	// Log is the logarithm of its left operand in the base of its right.
	Log = Operator{Symbol: "log", Func: logb, Prec: 4, Assoc: false}
)

func add(x, y float64) (float64, error) { return x + y, nil }
func sub(x, y float64) (float64, error) { return x - y, nil }
func mul(x, y float64) (float64, error) { return x * y, nil }

func div(x, y float64) (float64, error) {
	if y == 0 {
		return 0, &DomainError{X: x, Y: y, Op: "/"}
	}
	return x / y, nil
}

func mod(x, y float64) (float64, error) {
	if y == 0 {
		return 0, &DomainError{X: x, Y: y, Op: "%"}
	}
	r := math.Mod(x, y)
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return r, nil
}

// Limits on the operands of pow. Searches try every combination, so this
// keeps absurd magnitudes out of the results.
const (
	powMaxBase = 1e3
	powMaxExp  = 1e2
)

func pow(x, y float64) (r float64, err error) {
	if math.Abs(y) > powMaxExp || math.Abs(x) > powMaxBase {
		return 0, &DomainError{X: x, Y: y, Op: "^"}
	}
	switch {
	case x == 0 && y < 0:
		return 0, &DomainError{X: x, Y: y, Op: "^"}
	case x == 0 && y == 0:
		return 1, nil
	case x == 0:
		return 0, nil
	}
	defer recoverNaN(&err, x, y, "^")
	neg := false
	if x < 0 {
		// Negative bases only have real powers for integer exponents.
		if y != math.Trunc(y) {
			return 0, &DomainError{X: x, Y: y, Op: "^"}
		}
		neg = math.Mod(y, 2) != 0
		x = -x
	}
	var b, e, z big.Float
	b.SetPrec(prec).SetFloat64(x)
	e.SetPrec(prec).SetFloat64(y)
	z.SetPrec(prec)
	// Pow returns a new value rather than writing z for some exponents.
	r, _ = bigfloat.Pow(&z, &b, &e).Float64()
	if neg {
		r = -r
	}
	return r, nil
}

func logb(x, y float64) (r float64, err error) {
	if x <= 0 || y <= 1 {
		return 0, &DomainError{X: x, Y: y, Op: "log"}
	}
	defer recoverNaN(&err, x, y, "log")
	var a, b big.Float
	a.SetPrec(prec).SetFloat64(x)
	b.SetPrec(prec).SetFloat64(y)
	la := bigfloat.Log(new(big.Float).SetPrec(prec), &a)
	lb := bigfloat.Log(new(big.Float).SetPrec(prec), &b)
	r, _ = la.Quo(la, lb).Float64()
	return r, nil
}

// prec is the precision used by operators that compute with big.Float.
const prec = 64

// recoverNaN converts a big.ErrNaN panic into a DomainError. Other panics
// propagate.
func recoverNaN(err *error, x, y float64, op string) {
	r := recover()
	if r == nil {
		return
	}
	e, ok := r.(error)
	if !ok || !errors.As(e, &big.ErrNaN{}) {
		panic(r)
	}
	*err = &DomainError{X: x, Y: y, Op: op}
}

// ErrDomain is the error that every DomainError unwraps to.
var ErrDomain = errors.New("rpnsolve: operand outside domain")

// DomainError is an error returned when an operator is applied to operands
// outside its domain. DomainError unwraps to ErrDomain.
type DomainError struct {
	// X and Y are the left and right operands.
	X, Y float64
	// Op is the operator symbol.
	Op string
}

func (err *DomainError) Error() string {
	return FormatNumber(err.X) + " " + err.Op + " " + FormatNumber(err.Y) + " outside domain"
}

func (err *DomainError) Unwrap() error {
	return ErrDomain
}

// TableError is an error describing an unusable operator table.
type TableError struct {
	// Symbol is the offending operator symbol, if any.
	Symbol string
	// Reason describes the problem.
	Reason string
}

func (err *TableError) Error() string {
	if err.Symbol == "" {
		return "rpnsolve: invalid operator table: " + err.Reason
	}
	return "rpnsolve: invalid operator " + strconv.Quote(err.Symbol) + ": " + err.Reason
}
