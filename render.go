package rpnsolve

import (
	"math"
	"strings"
)

// fragment is a partly rendered subexpression.
type fragment struct {
	text string
	// op is the operator at the top of the fragment, or nil for an operand.
	op *Operator
	// neg is set for a negative operand.
	neg bool
}

// Render converts a postfix sequence to infix text with only the brackets
// needed to preserve its order of evaluation. Operands are written with
// FormatNumber and operators are separated from their operands by spaces. The
// result is false if seq is empty.
//
// A left operand is bracketed when its operator binds less tightly than its
// parent's. A right operand is bracketed also when the precedences are equal
// and the parent is not associative, because infix text groups equal
// precedences from the left: "a - (b - c)" needs its brackets, while
// "a - b - c" means "(a - b) - c".
//
// A negative left operand of an operator that binds more tightly than
// multiplication is bracketed, as in "(-2) ^ 2", since most readers take
// "-2 ^ 2" to mean "-(2 ^ 2)".
//
// Render panics if seq is malformed or names an operator missing from table.
func Render(table *Table, seq Sequence) (string, bool) {
	if len(seq) == 0 {
		return "", false
	}
	stack := make([]fragment, 0, len(seq)/2+1)
	for _, t := range seq {
		switch t.Kind {
		case TokenNum:
			stack = append(stack, fragment{text: FormatNumber(t.Num), neg: math.Signbit(t.Num)})
		case TokenOp:
			if len(stack) < 2 {
				panic("rpnsolve: operator " + t.Op + " without two operands in " + seq.String())
			}
			op := table.must(t.Op)
			r := stack[len(stack)-1]
			l := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			var b strings.Builder
			b.Grow(len(l.text) + len(r.text) + len(op.Symbol) + 6)
			writeOperand(&b, l, l.op != nil && l.op.Prec < op.Prec || l.neg && op.Prec > Mul.Prec)
			b.WriteByte(' ')
			b.WriteString(op.Symbol)
			b.WriteByte(' ')
			writeOperand(&b, r, r.op != nil && (r.op.Prec < op.Prec || r.op.Prec == op.Prec && !op.Assoc))
			stack = append(stack, fragment{text: b.String(), op: &op})
		default:
			panic("rpnsolve: invalid token kind " + t.Kind.String())
		}
	}
	if len(stack) != 1 {
		panic("rpnsolve: inconsistent render stack (bad sequence?): " + seq.String())
	}
	return stack[0].text, true
}

func writeOperand(b *strings.Builder, f fragment, paren bool) {
	if paren {
		b.WriteByte('(')
		b.WriteString(f.text)
		b.WriteByte(')')
		return
	}
	b.WriteString(f.text)
}
