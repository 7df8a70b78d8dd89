package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
)

const prompt = "rpnsolve> "

// repl reads queries from the terminal until EOF or :quit.
func (r *runner) repl(ctx context.Context) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	fmt.Fprintln(r.out, `Enter queries as "target: numbers...", or :quit to exit.`)
	for {
		line, err := ln.Prompt(prompt)
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, liner.ErrPromptAborted):
			fmt.Fprintln(r.out)
			return nil
		case err != nil:
			return err
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case ":quit", ":q":
			return nil
		}
		ln.AppendHistory(line)
		q, err := parseQuery(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if err := r.run(ctx, q); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
