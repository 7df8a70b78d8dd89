package rpnsolve

import (
	"strconv"
	"strings"
)

// TokenKind distinguishes operands from operators in a Sequence.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenNum is an operand.
	TokenNum
	// TokenOp is a binary operator.
	TokenOp
)

func (k TokenKind) String() string {
	switch k {
	case TokenNum:
		return "Num"
	case TokenOp:
		return "Op"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is one element of a postfix sequence.
type Token struct {
	Kind TokenKind
	// Num is the operand value if Kind is TokenNum.
	Num float64
	// Op is the operator symbol if Kind is TokenOp.
	Op string
}

// NumToken returns an operand token.
func NumToken(v float64) Token {
	return Token{Kind: TokenNum, Num: v}
}

// OpToken returns an operator token.
func OpToken(sym string) Token {
	return Token{Kind: TokenOp, Op: sym}
}

func (t Token) String() string {
	switch t.Kind {
	case TokenNum:
		return FormatNumber(t.Num)
	case TokenOp:
		return t.Op
	default:
		panic("rpnsolve: invalid token kind " + t.Kind.String())
	}
}

// Sequence is an expression in postfix order.
type Sequence []Token

// String formats the sequence as space-separated tokens.
func (s Sequence) String() string {
	var b strings.Builder
	for i, t := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	return b.String()
}

// Assemble fills a shape with operands and operators in order, appending the
// result to dst[:0]. The lengths of nums and ops must match the number of
// operand and operator slots in shape; otherwise Assemble panics.
func Assemble(dst Sequence, shape Shape, nums []float64, ops []string) Sequence {
	dst = dst[:0]
	i, j := 0, 0
	for _, k := range shape {
		switch k {
		case SlotNum:
			if i >= len(nums) {
				panic("rpnsolve: too few operands for shape " + shape.String())
			}
			dst = append(dst, Token{Kind: TokenNum, Num: nums[i]})
			i++
		case SlotOp:
			if j >= len(ops) {
				panic("rpnsolve: too few operators for shape " + shape.String())
			}
			dst = append(dst, Token{Kind: TokenOp, Op: ops[j]})
			j++
		default:
			panic("rpnsolve: invalid slot in shape " + shape.String())
		}
	}
	if i != len(nums) || j != len(ops) {
		panic("rpnsolve: " + strconv.Itoa(len(nums)) + " operands and " +
			strconv.Itoa(len(ops)) + " operators for shape " + shape.String())
	}
	return dst
}

// FormatNumber returns the shortest decimal text that reads back as v.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
