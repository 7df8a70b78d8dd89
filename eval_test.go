package rpnsolve_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/rpnsolve"
)

// seq builds a postfix sequence from numbers and operator strings.
func seq(toks ...interface{}) rpnsolve.Sequence {
	s := make(rpnsolve.Sequence, 0, len(toks))
	for _, t := range toks {
		switch t := t.(type) {
		case int:
			s = append(s, rpnsolve.NumToken(float64(t)))
		case float64:
			s = append(s, rpnsolve.NumToken(t))
		case string:
			s = append(s, rpnsolve.OpToken(t))
		default:
			panic("bad token")
		}
	}
	return s
}

func TestAssemble(t *testing.T) {
	shape := rpnsolve.Shapes(3)[1] // n n o n o
	got := rpnsolve.Assemble(nil, shape, []float64{1, 2, 3}, []string{"-", "*"})
	assert.Equal(t, seq(1, 2, "-", 3, "*"), got)
	assert.Equal(t, "1 2 - 3 *", got.String())

	// Reuses the destination.
	buf := make(rpnsolve.Sequence, 0, 5)
	got = rpnsolve.Assemble(buf, shape, []float64{4, 5, 6}, []string{"+", "/"})
	assert.Equal(t, seq(4, 5, "+", 6, "/"), got)
	assert.Same(t, &buf[:1][0], &got[0])
}

func TestAssemblePanics(t *testing.T) {
	shape := rpnsolve.Shapes(3)[0]
	cases := []struct {
		name string
		nums []float64
		ops  []string
	}{
		{"few-nums", []float64{1, 2}, []string{"+", "+"}},
		{"many-nums", []float64{1, 2, 3, 4}, []string{"+", "+"}},
		{"few-ops", []float64{1, 2, 3}, []string{"+"}},
		{"many-ops", []float64{1, 2, 3}, []string{"+", "+", "+"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Panics(t, func() { rpnsolve.Assemble(nil, shape, c.nums, c.ops) })
		})
	}
}

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		seq  rpnsolve.Sequence
		r    float64
	}{
		{"num", seq(7), 7},
		{"add", seq(4, 5, "+", 6, "+"), 4 + 5 + 6},
		{"sub-left", seq(4, 5, "-", 6, "-"), 4 - 5 - 6},
		{"sub-right", seq(4, 5, 6, "-", "-"), 4 - (5 - 6)},
		{"div-order", seq(1, 4, "/"), 0.25},
		{"div-right", seq(8, 4, 2, "/", "/"), 4},
		{"mixed", seq(4, 8, "*", 12, 2, "-", "-"), 22},
		{"nested-right", seq(2, 4, "*", 8, 12, "+", "+"), 8 + 20},
	}
	ctx := rpnsolve.NewContext(rpnsolve.Basic())
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := ctx.Eval(c.seq)
			require.NoError(t, err)
			assert.Equal(t, c.r, r)
		})
	}
}

func TestEvalDomain(t *testing.T) {
	cases := []struct {
		name string
		seq  rpnsolve.Sequence
	}{
		{"direct", seq(1, 0, "/")},
		{"first", seq(1, 0, "/", 2, "+")},
		{"last", seq(2, 3, "+", 4, 4, "-", "/")},
		{"nested", seq(5, 2, 2, "-", "/", 1, "*")},
		{"zero-zero", seq(0, 0, "/")},
	}
	table := rpnsolve.Basic()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := rpnsolve.Eval(table, c.seq)
			require.Error(t, err)
			assert.Zero(t, r)
			assert.ErrorIs(t, err, rpnsolve.ErrDomain)
			var d *rpnsolve.DomainError
			require.True(t, errors.As(err, &d), "%#v is not *rpnsolve.DomainError", err)
			assert.Equal(t, "/", d.Op)
			assert.Zero(t, d.Y)
			assert.Contains(t, err.Error(), "domain")
		})
	}
}

func TestEvalNonFinite(t *testing.T) {
	r, err := rpnsolve.Eval(rpnsolve.Basic(), seq(1e308, 1e308, "*"))
	assert.ErrorIs(t, err, rpnsolve.ErrDomain)
	assert.Zero(t, r)
}

func TestEvalReuse(t *testing.T) {
	// A domain error part way through must not leave operands behind.
	ctx := rpnsolve.NewContext(rpnsolve.Basic())
	_, err := ctx.Eval(seq(1, 2, 0, "/", "+"))
	require.Error(t, err)
	r, err := ctx.Eval(seq(3))
	require.NoError(t, err)
	assert.Equal(t, 3.0, r)
}

func TestEvalPanics(t *testing.T) {
	table := rpnsolve.Basic()
	cases := []struct {
		name string
		seq  rpnsolve.Sequence
	}{
		{"empty", nil},
		{"leftover", seq(1, 2)},
		{"underflow", seq(1, "+")},
		{"unknown-op", seq(1, 2, "^")},
		{"bad-kind", rpnsolve.Sequence{{}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Panics(t, func() { rpnsolve.Eval(table, c.seq) })
		})
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{2, "2"},
		{-3, "-3"},
		{2.5, "2.5"},
		{0.1, "0.1"},
		{1e21, "1e+21"},
		{math.Copysign(0, -1), "-0"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, rpnsolve.FormatNumber(c.v))
	}
}
