// Package sexpr is a little S-expression reader and evaluator.
// Its evaluator keeps its own stack of frames, so nesting is limited by
// memory only.
package sexpr

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Value is one of Integer, Float, Boolean, Text, Symbol, Keyword and List.
type Value interface {
	String() string
	value()
}

// Integer represents a 64-bit signed integer.
type Integer int64

// Float represents a 64-bit floating point number.
type Float float64

// Boolean represents true or false.
type Boolean bool

// Text represents a string literal.
type Text string

// Symbol represents an identifier.  It is never bound to anything.
type Symbol string

// List represents a list of values in source order.
type List []Value

func (Integer) value() {}
func (Float) value()   {}
func (Boolean) value() {}
func (Text) value()    {}
func (Symbol) value()  {}
func (Keyword) value() {}
func (List) value()    {}

func (x Integer) String() string { return Stringify(x, true) }
func (x Float) String() string   { return Stringify(x, true) }
func (x Boolean) String() string { return Stringify(x, true) }
func (x Text) String() string    { return Stringify(x, true) }
func (x Symbol) String() string  { return Stringify(x, true) }
func (x List) String() string    { return Stringify(x, true) }

// Copy returns a shallow copy of the list.
func (x List) Copy() List {
	dst := make(List, len(x))
	copy(dst, x)
	return dst
}

//----------------------------------------------------------------------

// Keyword represents a built-in operator.
type Keyword int

// Keywords
const (
	Add Keyword = iota
	Subtract
	Multiply
	Divide
	Modulo
	Concat
	Gt
	Ge
	Lt
	Le
	Eq
	Neq
	Quote
	TypeOf
	Cons
	Car
	Cdr
	Cond
	Print
	Read
	Eval
)

// KeywordStr maps each keyword to its spelling.
var KeywordStr = [...]string{
	"+", "-", "*", "/", "mod", "++",
	">", ">=", "<", "<=", "=", "!=",
	"quote", "typeof", "cons", "car", "cdr", "cond", "print", "read", "eval",
}

func (k Keyword) String() string {
	if k < 0 || int(k) >= len(KeywordStr) {
		return "keyword(" + strconv.Itoa(int(k)) + ")"
	}
	return KeywordStr[k]
}

// literals maps the spelling of every keyword and boolean to its value.
var literals = func() map[string]Value {
	m := map[string]Value{
		"true":  Boolean(true),
		"false": Boolean(false),
	}
	for i, s := range KeywordStr {
		m[s] = Keyword(i)
	}
	return m
}()

// LookupKeyword returns the keyword or boolean spelled as token.
func LookupKeyword(token string) (Value, bool) {
	v, ok := literals[token]
	return v, ok
}

//----------------------------------------------------------------------

// TypeName returns the name of the variant of v.
func TypeName(v Value) string {
	switch v.(type) {
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case Boolean:
		return "Boolean"
	case Text:
		return "Text"
	case Symbol:
		return "Symbol"
	case Keyword:
		return "Keyword"
	case List:
		return "List"
	}
	panic("unknown value type")
}

// Equal reports whether a and b are the same variant with equal contents.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Integer:
		y, ok := b.(Integer)
		return ok && x == y
	case Float:
		y, ok := b.(Float)
		return ok && x == y
	case Boolean:
		y, ok := b.(Boolean)
		return ok && x == y
	case Text:
		y, ok := b.(Text)
		return ok && x == y
	case Symbol:
		y, ok := b.(Symbol)
		return ok && x == y
	case Keyword:
		y, ok := b.(Keyword)
		return ok && x == y
	case List:
		y, ok := b.(List)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	}
	return false
}

//----------------------------------------------------------------------

var escapes = map[rune]string{
	0:    `\0`,
	'\a': `\a`,
	'\b': `\b`,
	'\f': `\f`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
	'\v': `\v`,
	'"':  `\"`,
	'\\': `\\`,
}

func quoteText(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i, ch := range s {
		if e, ok := escapes[ch]; ok {
			sb.WriteString(e)
		} else if ch == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(s[i:])
			sb.WriteString(s[i : i+size])
		} else {
			sb.WriteRune(ch)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") { // Inf and NaN stay as they are.
		s += ".0"
	}
	return s
}

// Stringify returns the string representation of a value.
// Texts will be quoted and escaped if quote is true; texts inside lists
// are always quoted.
func Stringify(v Value, quote bool) string {
	switch x := v.(type) {
	case Integer:
		return strconv.FormatInt(int64(x), 10)
	case Float:
		return formatFloat(float64(x))
	case Boolean:
		if x {
			return "true"
		}
		return "false"
	case Text:
		if quote {
			return quoteText(string(x))
		}
		return string(x)
	case Symbol:
		return string(x)
	case Keyword:
		return x.String()
	case List:
		ss := make([]string, len(x))
		for i, e := range x {
			ss[i] = Stringify(e, true)
		}
		return "(" + strings.Join(ss, " ") + ")"
	case nil:
		return "<nil>"
	}
	panic("unknown value type")
}
