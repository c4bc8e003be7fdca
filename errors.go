package sexpr

import "fmt"

// SyntaxError is returned by Parse.  Line and Column are 1-based; they are
// zero when the error has no position.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return "syntax error: " + e.Msg
	}
	return fmt.Sprintf("syntax error at line %d, column %d: %s",
		e.Line, e.Column, e.Msg)
}

// RuntimeError is returned by Evaluate.
type RuntimeError struct {
	Msg string
}

func (e *RuntimeError) Error() string {
	return "runtime error: " + e.Msg
}

func runtimeErrorf(k Keyword, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{k.String() + ": " + fmt.Sprintf(format, args...)}
}
