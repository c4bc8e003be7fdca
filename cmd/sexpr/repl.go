package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/peterh/liner"

	sexpr "github.com/nukata/little-sexpr-in-go"
)

// accumulator collects lines until their parentheses balance.
// Parentheses inside string literals are not counted.
type accumulator struct {
	buf      strings.Builder
	depth    int
	inString bool
	escaped  bool
}

func (a *accumulator) reset() {
	a.buf.Reset()
	a.depth = 0
	a.inString = false
	a.escaped = false
}

// pending reports whether some lines are waiting for more input.
func (a *accumulator) pending() bool {
	return strings.TrimSpace(a.buf.String()) != ""
}

// Add appends a line.  Once the parentheses balance it returns the
// collected text and true.  Blank input is skipped.
func (a *accumulator) Add(line string) (string, bool, error) {
	for _, ch := range line {
		switch {
		case a.escaped:
			a.escaped = false
		case a.inString:
			switch ch {
			case '\\':
				a.escaped = true
			case '"':
				a.inString = false
			}
		case ch == '"':
			a.inString = true
		case ch == '(':
			a.depth++
		case ch == ')':
			a.depth--
		}
	}
	a.buf.WriteString(line)
	a.buf.WriteByte('\n')
	if a.depth < 0 {
		n := -a.depth
		a.reset()
		return "", false, fmt.Errorf("%d extra closing parentheses", n)
	}
	if a.depth > 0 || a.inString {
		return "", false, nil
	}
	text := a.buf.String()
	a.reset()
	if strings.TrimSpace(text) == "" {
		return "", false, nil
	}
	return text, true, nil
}

//----------------------------------------------------------------------

// Prompter shows a prompt and reads one line.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

// REPL reads expressions, evaluates them and prints the results.
type REPL struct {
	Eval   *sexpr.Evaluator
	Out    io.Writer
	Err    io.Writer
	Prompt string // %d receives the parenthesis balance
	Dump   bool
}

func (r *REPL) prompt(depth int) string {
	if strings.Contains(r.Prompt, "%d") {
		return fmt.Sprintf(r.Prompt, depth)
	}
	return r.Prompt
}

func (r *REPL) eval(text string) (sexpr.Value, error) {
	exp, err := sexpr.Parse(text)
	if err != nil {
		return nil, err
	}
	if r.Dump {
		spew.Fdump(r.Out, exp)
	}
	return r.Eval.Evaluate(exp)
}

// EvalText evaluates text and prints the result or the error.
// It reports whether the evaluation succeeded.
func (r *REPL) EvalText(text string) bool {
	v, err := r.eval(text)
	if err != nil {
		fmt.Fprintln(r.Err, err)
		return false
	}
	fmt.Fprintln(r.Out, sexpr.Stringify(v, true))
	return true
}

// Run repeats read-eval-print until end of input.
func (r *REPL) Run(in Prompter) error {
	var acc accumulator
	for {
		line, err := in.Prompt(r.prompt(acc.depth))
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				acc.reset()
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		text, ok, err := acc.Add(line)
		if err != nil {
			fmt.Fprintln(r.Err, err)
			continue
		}
		if ok {
			r.EvalText(text)
		}
	}
}

// Load evaluates the expressions of a file in order without printing
// their results.  It stops at the first error.
func (r *REPL) Load(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()
	return r.load(name, file)
}

func (r *REPL) load(name string, src io.Reader) error {
	lines := bufio.NewScanner(src)
	var acc accumulator
	for n := 1; lines.Scan(); n++ {
		text, ok, err := acc.Add(lines.Text())
		if err != nil {
			return fmt.Errorf("%s:%d: %w", name, n, err)
		}
		if !ok {
			continue
		}
		if _, err := r.eval(text); err != nil {
			return fmt.Errorf("%s:%d: %w", name, n, err)
		}
	}
	if err := lines.Err(); err != nil {
		return err
	}
	if acc.pending() {
		return fmt.Errorf("%s: unexpected end of file", name)
	}
	return nil
}
