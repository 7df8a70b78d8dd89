package rpnsolve

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat/combin"
)

// DefaultTolerance is the tolerance used when a Query does not set one.
const DefaultTolerance = 1e-9

var (
	// ErrNoNumbers is returned when a query has no numbers to combine.
	ErrNoNumbers = errors.New("rpnsolve: no numbers")
	// ErrNumber is returned when a query contains a number that is not
	// finite.
	ErrNumber = errors.New("rpnsolve: numbers must be finite")
	// ErrTarget is returned when a query's target is not finite.
	ErrTarget = errors.New("rpnsolve: target must be finite")
	// ErrTolerance is returned when a query's tolerance is negative or NaN.
	ErrTolerance = errors.New("rpnsolve: tolerance must not be negative")
)

// Query describes one search.
type Query struct {
	// Target is the value that expressions must reach.
	Target float64
	// Numbers are the operands that every expression uses exactly once each.
	// Equal numbers are still distinct operands.
	Numbers []float64
	// Tolerance is the largest difference from Target that counts as
	// reaching it, exclusive. Zero means DefaultTolerance.
	Tolerance float64
}

// check validates q and returns the tolerance to use.
func (q Query) check() (float64, error) {
	if len(q.Numbers) == 0 {
		return 0, ErrNoNumbers
	}
	for _, v := range q.Numbers {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, ErrNumber
		}
	}
	if math.IsNaN(q.Target) || math.IsInf(q.Target, 0) {
		return 0, ErrTarget
	}
	tol := q.Tolerance
	switch {
	case math.IsNaN(tol), tol < 0:
		return 0, ErrTolerance
	case tol == 0:
		tol = DefaultTolerance
	}
	return tol, nil
}

// Result is the outcome of a search.
type Result struct {
	// Attempts is the number of expressions evaluated.
	Attempts int
	// Expressions are the rendered expressions that reached the target, in
	// order of operator choice, then permutation of numbers, then shape.
	Expressions []string
}

// Solver searches for expressions over an operator table. A Solver is safe
// for concurrent use; it caches the shapes for each count of numbers it sees.
type Solver struct {
	table    *Table
	shapes   ShapeCache
	strategy Strategy
	unique   bool
	log      *slog.Logger
}

// Option is an option used when creating a Solver.
type Option interface {
	solverOption(*Solver)
}

type (
	strategyopt struct{ s Strategy }
	uniqueopt   struct{}
	loggeropt   struct{ l *slog.Logger }
)

func (o strategyopt) solverOption(s *Solver) { s.strategy = o.s }
func (uniqueopt) solverOption(s *Solver)     { s.unique = true }
func (o loggeropt) solverOption(s *Solver)   { s.log = o.l }

// WithStrategy sets how the solver runs its work. The default is Sequential.
// The results of a search do not depend on the strategy.
func WithStrategy(st Strategy) Option {
	return strategyopt{st}
}

// WithUnique makes the solver drop expressions whose text repeats an earlier
// result, as happens when numbers repeat. Attempts still counts every
// expression evaluated.
func WithUnique() Option {
	return uniqueopt{}
}

// WithLogger sets a logger that receives a debug record for each search.
func WithLogger(l *slog.Logger) Option {
	return loggeropt{l}
}

// NewSolver creates a solver over an operator table.
func NewSolver(table *Table, opts ...Option) *Solver {
	s := Solver{table: table, strategy: Sequential()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.solverOption(&s)
	}
	return &s
}

// Table returns the solver's operator table.
func (s *Solver) Table() *Table {
	return s.table
}

// Search finds every expression that combines all of q.Numbers with the
// solver's operators to reach q.Target. Operator applications outside their
// domains only exclude the expressions that contain them. A search that finds
// nothing is not an error. If ctx is canceled, Search stops and returns the
// context's error.
func (s *Solver) Search(ctx context.Context, q Query) (Result, error) {
	tol, err := q.check()
	if err != nil {
		return Result{}, err
	}
	start := time.Now()
	n := len(q.Numbers)
	shapes := s.shapes.Get(n)
	tuples := Tuples(s.table.Symbols(), n-1)
	perms := orderings(n)
	parts := make([]Result, len(tuples))
	work := func(ctx context.Context, i int) error {
		r, err := s.tuple(ctx, q.Target, tol, q.Numbers, tuples[i], shapes, perms)
		parts[i] = r
		return err
	}
	if err := s.strategy.Run(ctx, len(tuples), work); err != nil {
		return Result{}, err
	}
	var r Result
	var seen map[string]bool
	if s.unique {
		seen = make(map[string]bool)
	}
	for _, p := range parts {
		r.Attempts += p.Attempts
		for _, e := range p.Expressions {
			if seen != nil {
				if seen[e] {
					continue
				}
				seen[e] = true
			}
			r.Expressions = append(r.Expressions, e)
		}
	}
	if s.log != nil {
		s.log.LogAttrs(ctx, slog.LevelDebug, "search complete",
			slog.Float64("target", q.Target),
			slog.Int("numbers", n),
			slog.Int("tuples", len(tuples)),
			slog.Int("attempts", r.Attempts),
			slog.Int("found", len(r.Expressions)),
			slog.String("strategy", s.strategy.String()),
			slog.Duration("elapsed", time.Since(start)),
		)
	}
	return r, nil
}

// SearchTuple runs the part of a search that uses one choice of operators.
// ops must have one symbol from the table for each operator slot, i.e. one
// fewer than the count of numbers; otherwise SearchTuple panics. The results
// of SearchTuple for each of Tuples, concatenated in order, are the results
// of Search without WithUnique.
func (s *Solver) SearchTuple(ctx context.Context, q Query, ops []string) (Result, error) {
	tol, err := q.check()
	if err != nil {
		return Result{}, err
	}
	for _, sym := range ops {
		s.table.must(sym)
	}
	n := len(q.Numbers)
	return s.tuple(ctx, q.Target, tol, q.Numbers, ops, s.shapes.Get(n), orderings(n))
}

// tuple tries every ordering of nums in every shape with one choice of
// operators.
func (s *Solver) tuple(ctx context.Context, target, tol float64, nums []float64, ops []string, shapes []Shape, perms [][]int) (Result, error) {
	var r Result
	ev := NewContext(s.table)
	seq := make(Sequence, 0, 2*len(nums)-1)
	cur := make([]float64, len(nums))
	for _, perm := range perms {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		for i, k := range perm {
			cur[i] = nums[k]
		}
		for _, shape := range shapes {
			r.Attempts++
			seq = Assemble(seq, shape, cur, ops)
			v, err := ev.Eval(seq)
			if err != nil {
				continue
			}
			if math.Abs(v-target) < tol {
				text, _ := Render(s.table, seq)
				r.Expressions = append(r.Expressions, text)
			}
		}
	}
	return r, nil
}

// Attempts returns the number of expressions a search over a table of k
// operators with n numbers evaluates: k^(n-1) * n! * Catalan(n-1).
func Attempts(k, n int) int {
	if n < 1 {
		return 0
	}
	r := Catalan(n - 1)
	for i := 2; i <= n; i++ {
		r *= i
	}
	for i := 1; i < n; i++ {
		r *= k
	}
	return r
}

// Tuples returns every sequence of n symbols drawn from syms with repetition,
// with the last position varying fastest.
func Tuples(syms []string, n int) [][]string {
	switch {
	case n < 0:
		panic("rpnsolve: negative tuple length")
	case n == 0:
		return [][]string{{}}
	case len(syms) == 0:
		return [][]string{}
	}
	lens := make([]int, n)
	for i := range lens {
		lens[i] = len(syms)
	}
	idx := combin.Cartesian(lens)
	r := make([][]string, len(idx))
	for i, row := range idx {
		t := make([]string, n)
		for j, k := range row {
			t[j] = syms[k]
		}
		r[i] = t
	}
	return r
}

// orderings returns every permutation of the positions [0, n) in
// lexicographic order, so the first is the identity. Equal numbers in
// different positions still give distinct orderings.
func orderings(n int) [][]int {
	p := combin.Permutations(n, n)
	slices.SortFunc(p, func(a, b []int) int { return slices.Compare(a, b) })
	return p
}
