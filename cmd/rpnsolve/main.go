package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/zephyrtronium/rpnsolve"
)

func main() {
	log.SetFlags(0)
	var (
		inname, ops          string
		target, tol          float64
		workers              int
		unique, verify, echo bool
		interactive, verbose bool
		haveTarget           bool
	)
	flag.StringVar(&inname, "in", "", `file of queries, one "target: numbers..." per line`)
	flag.Func("target", "target value", func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		target, haveTarget = v, true
		return nil
	})
	flag.Float64Var(&tol, "tol", rpnsolve.DefaultTolerance, "tolerance for reaching the target")
	flag.StringVar(&ops, "ops", "+ - * /", "space-separated operators to use; available: "+catalogue())
	flag.IntVar(&workers, "j", 0, "number of worker goroutines (0 for sequential, negative for one per CPU)")
	flag.BoolVar(&unique, "unique", false, "drop repeated expressions")
	flag.BoolVar(&verify, "verify", false, "parse each expression back and print its value")
	flag.BoolVar(&echo, "echo", false, "print each expression with full grouping")
	flag.BoolVar(&interactive, "i", false, "read queries interactively")
	flag.BoolVar(&verbose, "v", false, "log search diagnostics")
	flag.Parse()

	table, err := rpnsolve.Select(strings.Fields(ops)...)
	if err != nil {
		log.Fatal(err)
	}
	var opts []rpnsolve.Option
	switch {
	case workers > 0:
		opts = append(opts, rpnsolve.WithStrategy(rpnsolve.Parallel(workers)))
	case workers < 0:
		opts = append(opts, rpnsolve.WithStrategy(rpnsolve.Parallel(0)))
	}
	if unique {
		opts = append(opts, rpnsolve.WithUnique())
	}
	if verbose {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, rpnsolve.WithLogger(slog.New(h)))
	}
	r := runner{
		solver: rpnsolve.NewSolver(table, opts...),
		out:    os.Stdout,
		verify: verify,
		echo:   echo,
		tol:    tol,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if interactive {
		if err := r.repl(ctx); err != nil {
			log.Fatal(err)
		}
		return
	}

	var queries []rpnsolve.Query
	if inname != "" {
		abs, err := filepath.Abs(inname)
		if err != nil {
			log.Fatal(err)
		}
		queries, err = readQueries(osfs.New(filepath.Dir(abs)), filepath.Base(abs))
		if err != nil {
			log.Fatal(err)
		}
	}
	if flag.NArg() > 0 {
		if !haveTarget {
			log.Fatal("-target is required with numbers")
		}
		nums, err := parseNumbers(flag.Args())
		if err != nil {
			log.Fatal(err)
		}
		queries = append(queries, rpnsolve.Query{Target: target, Numbers: nums})
	}
	if len(queries) == 0 {
		log.Fatal("no queries; give -target and numbers, -in, or -i")
	}
	for _, q := range queries {
		if len(queries) > 1 {
			fmt.Fprintln(r.out, formatQuery(q))
		}
		if err := r.run(ctx, q); err != nil {
			log.Fatal(err)
		}
	}
}

// runner runs queries and writes their results.
type runner struct {
	solver *rpnsolve.Solver
	out    io.Writer
	verify bool
	echo   bool
	tol    float64
}

func (r *runner) run(ctx context.Context, q rpnsolve.Query) error {
	if q.Tolerance == 0 {
		q.Tolerance = r.tol
	}
	res, err := r.solver.Search(ctx, q)
	if err != nil {
		return err
	}
	table := r.solver.Table()
	for _, e := range res.Expressions {
		line := e
		if r.echo || r.verify {
			seq, err := rpnsolve.ParseInfix(table, e)
			if err != nil {
				return fmt.Errorf("reading back %q: %w", e, err)
			}
			if r.echo {
				line += "\t" + rpnsolve.Grouped(seq)
			}
			if r.verify {
				v, err := rpnsolve.Eval(table, seq)
				if err != nil {
					return fmt.Errorf("evaluating %q: %w", e, err)
				}
				line += "\t= " + rpnsolve.FormatNumber(v)
			}
		}
		fmt.Fprintln(r.out, line)
	}
	log.Printf("Attempted %d expressions, found %d", res.Attempts, len(res.Expressions))
	return nil
}

func catalogue() string {
	var s []string
	for _, op := range rpnsolve.Catalogue() {
		s = append(s, op.Symbol)
	}
	return strings.Join(s, " ")
}
