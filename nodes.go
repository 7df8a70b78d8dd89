package rpnsolve

import (
	"strings"
)

// node is a node in the expression tree of a postfix sequence.
type node struct {
	kind TokenKind

	num float64
	op  string

	left  *node
	right *node
}

// tree builds the expression tree of a sequence. The result is nil if seq is
// empty. Panics if seq is malformed.
func tree(seq Sequence) *node {
	if len(seq) == 0 {
		return nil
	}
	nodes := make([]node, len(seq))
	stack := make([]*node, 0, len(seq)/2+1)
	for i, t := range seq {
		n := &nodes[i]
		n.kind = t.Kind
		switch t.Kind {
		case TokenNum:
			n.num = t.Num
		case TokenOp:
			if len(stack) < 2 {
				panic("rpnsolve: operator " + t.Op + " without two operands in " + seq.String())
			}
			n.op = t.Op
			n.right = stack[len(stack)-1]
			n.left = stack[len(stack)-2]
			stack = stack[:len(stack)-2]
		default:
			panic("rpnsolve: invalid token kind " + t.Kind.String())
		}
		stack = append(stack, n)
	}
	if len(stack) != 1 {
		panic("rpnsolve: inconsistent tree stack (bad sequence?): " + seq.String())
	}
	return stack[0]
}

// Grouped formats a sequence in infix with every operand grouped, alternating
// round and square brackets by depth. It shows exactly how a sequence
// evaluates, where Render shows only what is needed to read it. The result is
// empty if seq is empty.
func Grouped(seq Sequence) string {
	n := tree(seq)
	if n == nil {
		return ""
	}
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case TokenNum:
		b.WriteString(FormatNumber(n.num))
	case TokenOp:
		n.left.fmt(b, !square)
		b.WriteByte(' ')
		b.WriteString(n.op)
		b.WriteByte(' ')
		n.right.fmt(b, !square)
	default:
		panic("rpnsolve: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// Equal reports whether two sequences are the same expression.
func (s Sequence) Equal(t Sequence) bool {
	if len(s) != len(t) {
		return false
	}
	for i := range s {
		if s[i] != t[i] {
			return false
		}
	}
	return true
}
