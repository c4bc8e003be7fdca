package main

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// console is the terminal shared by the REPL and the read keyword.
// With line editing it reads through liner, otherwise through a scanner.
type console struct {
	w     io.Writer
	line  *liner.State
	lines *bufio.Scanner
	tail  string // text written since the last newline
}

// isTerminal reports whether the standard input is a terminal.
func isTerminal() bool {
	_, err := liner.TerminalMode()
	return err == nil
}

func newConsole(in io.Reader, out io.Writer, edit bool) *console {
	c := &console{w: out}
	if edit {
		c.line = liner.NewLiner()
		c.line.SetCtrlCAborts(true)
	} else {
		c.lines = bufio.NewScanner(in)
	}
	return c
}

// Close restores the terminal.
func (c *console) Close() error {
	if c.line != nil {
		return c.line.Close()
	}
	return nil
}

func (c *console) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	s := string(p[:n])
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		c.tail = s[i+1:]
	} else {
		c.tail += s
	}
	return n, err
}

// Prompt shows prompt and reads a line for the REPL.
func (c *console) Prompt(prompt string) (string, error) {
	if c.line != nil {
		c.tail = ""
		s, err := c.line.Prompt(prompt)
		if err == nil && strings.TrimSpace(s) != "" {
			c.line.AppendHistory(s)
		}
		return s, err
	}
	if _, err := io.WriteString(c, prompt); err != nil {
		return "", err
	}
	return c.scan()
}

// ReadLine reads a line for the read keyword.  liner redraws its prompt
// over the current line, so the text printed just before is passed as
// the prompt.
func (c *console) ReadLine() (string, error) {
	if c.line != nil {
		prompt := c.tail
		c.tail = ""
		s, err := c.line.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", io.EOF
		}
		return s, err
	}
	return c.scan()
}

func (c *console) scan() (string, error) {
	c.tail = ""
	if !c.lines.Scan() {
		if err := c.lines.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.lines.Text(), nil
}
