package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/zephyrtronium/rpnsolve"
)

// parseQuery parses a query line of the form "target: n1 n2 ...".
func parseQuery(line string) (rpnsolve.Query, error) {
	t, ns, ok := strings.Cut(line, ":")
	if !ok {
		return rpnsolve.Query{}, fmt.Errorf(`query must be "target: numbers...", not %q`, line)
	}
	target, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
	if err != nil {
		return rpnsolve.Query{}, fmt.Errorf("bad target in %q: %w", line, err)
	}
	nums, err := parseNumbers(strings.Fields(ns))
	if err != nil {
		return rpnsolve.Query{}, fmt.Errorf("bad numbers in %q: %w", line, err)
	}
	if len(nums) == 0 {
		return rpnsolve.Query{}, fmt.Errorf("no numbers in %q", line)
	}
	return rpnsolve.Query{Target: target, Numbers: nums}, nil
}

func parseNumbers(args []string) ([]float64, error) {
	nums := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, err
		}
		nums = append(nums, v)
	}
	return nums, nil
}

// readQueries reads a file of queries, one per line. Blank lines and lines
// starting with # are ignored.
func readQueries(fs billy.Filesystem, name string) ([]rpnsolve.Query, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var qs []rpnsolve.Query
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		q, err := parseQuery(s)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, line, err)
		}
		qs = append(qs, q)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return qs, nil
}

func formatQuery(q rpnsolve.Query) string {
	var b strings.Builder
	b.WriteString(rpnsolve.FormatNumber(q.Target))
	b.WriteByte(':')
	for _, v := range q.Numbers {
		b.WriteByte(' ')
		b.WriteString(rpnsolve.FormatNumber(v))
	}
	return b.String()
}
