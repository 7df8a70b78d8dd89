package rpnsolve

import (
	"math"
	"strconv"
)

// Context evaluates postfix sequences against an operator table, reusing its
// operand stack between evaluations. It is not safe to use a Context
// concurrently.
type Context struct {
	table *Table
	stack []float64
}

// NewContext creates an evaluation context for a table.
func NewContext(table *Table) *Context {
	return &Context{table: table}
}

// Eval evaluates a postfix sequence. If any operator is applied outside its
// domain, evaluation stops and the result is that operator's error, normally
// a *DomainError. Results that are not finite are also domain errors.
//
// Eval panics if seq is not a well-formed postfix sequence or names an
// operator missing from the table.
func (ctx *Context) Eval(seq Sequence) (float64, error) {
	ctx.stack = ctx.stack[:0]
	for _, t := range seq {
		switch t.Kind {
		case TokenNum:
			ctx.push(t.Num)
		case TokenOp:
			op := ctx.table.must(t.Op)
			if len(ctx.stack) < 2 {
				panic("rpnsolve: operator " + strconv.Quote(t.Op) + " without two operands in " + seq.String())
			}
			r := ctx.pop()
			l := ctx.pop()
			v, err := op.Func(l, r)
			if err != nil {
				return 0, err
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, &DomainError{X: l, Y: r, Op: t.Op}
			}
			ctx.push(v)
		default:
			panic("rpnsolve: invalid token kind " + t.Kind.String())
		}
	}
	switch len(ctx.stack) {
	case 0:
		panic("rpnsolve: Eval on empty sequence")
	case 1:
		return ctx.stack[0], nil
	default:
		panic("rpnsolve: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items (bad sequence?)")
	}
}

// push pushes a value onto the stack.
func (ctx *Context) push(v float64) {
	ctx.stack = append(ctx.stack, v)
}

// pop removes the top from the stack and returns it.
func (ctx *Context) pop() float64 {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// Eval is a shortcut to evaluate a sequence with a fresh context.
func Eval(table *Table, seq Sequence) (float64, error) {
	return NewContext(table).Eval(seq)
}
