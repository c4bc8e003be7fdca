package sexpr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var unescapes = map[rune]rune{
	'0':  0,
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'"':  '"',
	'\\': '\\',
}

// listFrame is a list being built by the parser.
// A quoted frame was opened by ' and closes itself after one value.
type listFrame struct {
	elems  List
	quoted bool
	line   int
	col    int
}

type parser struct {
	src    string // scanned by byte offset; columns count runes
	pos    int
	line   int
	col    int
	frames []*listFrame
}

// Parse reads a value from text.  If text holds more than one top-level
// value, they are returned together as a List.
func Parse(text string) (Value, error) {
	p := &parser{src: text, line: 1, col: 1}
	p.frames = []*listFrame{{elems: List{}}}
	return p.parse()
}

func (p *parser) errorf(line, col int, format string, args ...interface{}) error {
	return &SyntaxError{line, col, fmt.Sprintf(format, args...)}
}

// next moves past the current rune.  An invalid byte counts as one rune.
func (p *parser) next() {
	_, size := utf8.DecodeRuneInString(p.src[p.pos:])
	if p.src[p.pos] == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	p.pos += size
}

func (p *parser) push(quoted bool) {
	f := &listFrame{elems: List{}, quoted: quoted, line: p.line, col: p.col}
	if quoted {
		f.elems = append(f.elems, Quote)
	}
	p.frames = append(p.frames, f)
}

// add appends v to the innermost list, closing quote frames as they fill.
func (p *parser) add(v Value) {
	for {
		top := p.frames[len(p.frames)-1]
		top.elems = append(top.elems, v)
		if !top.quoted {
			return
		}
		p.frames = p.frames[:len(p.frames)-1]
		v = top.elems
	}
}

func isDelimiter(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '(', ')', '"', '\'':
		return true
	}
	return false
}

func (p *parser) parse() (Value, error) {
	for p.pos < len(p.src) {
		switch ch := p.src[p.pos]; ch {
		case ' ', '\t', '\n', '\r':
			p.next()
		case '(':
			p.push(false)
			p.next()
		case '\'':
			p.push(true)
			p.next()
		case ')':
			if len(p.frames) == 1 {
				return nil, p.errorf(p.line, p.col, "unexpected )")
			}
			top := p.frames[len(p.frames)-1]
			if top.quoted {
				return nil, p.errorf(p.line, p.col, "missing value after '")
			}
			p.frames = p.frames[:len(p.frames)-1]
			p.next()
			p.add(top.elems)
		case '"':
			s, err := p.readText()
			if err != nil {
				return nil, err
			}
			p.add(s)
		default:
			v, err := p.readToken()
			if err != nil {
				return nil, err
			}
			p.add(v)
		}
	}
	if n := len(p.frames); n > 1 {
		top := p.frames[n-1]
		if top.quoted {
			return nil, p.errorf(top.line, top.col, "missing value after '")
		}
		return nil, p.errorf(top.line, top.col, "unclosed (")
	}
	root := p.frames[0].elems
	switch len(root) {
	case 0:
		return nil, &SyntaxError{Msg: "empty input"}
	case 1:
		return root[0], nil
	}
	return root, nil
}

// readText reads a string literal; p.pos is at the opening quote.
func (p *parser) readText() (Value, error) {
	line, col := p.line, p.col
	p.next()
	var sb strings.Builder
	for {
		if p.pos >= len(p.src) {
			return nil, p.errorf(line, col, "unterminated string")
		}
		ch, size := utf8.DecodeRuneInString(p.src[p.pos:])
		switch ch {
		case '"':
			p.next()
			return Text(sb.String()), nil
		case '\\':
			eline, ecol := p.line, p.col
			p.next()
			if p.pos >= len(p.src) {
				return nil, p.errorf(line, col, "unterminated string")
			}
			e, _ := utf8.DecodeRuneInString(p.src[p.pos:])
			r, ok := unescapes[e]
			if !ok {
				return nil, p.errorf(eline, ecol, "invalid escape sequence \\%c", e)
			}
			sb.WriteRune(r)
		default:
			sb.WriteString(p.src[p.pos : p.pos+size]) // invalid UTF-8 is kept as is
		}
		p.next()
	}
}

// readToken reads a number, keyword, boolean or symbol.
func (p *parser) readToken() (Value, error) {
	line, col := p.line, p.col
	start := p.pos
	for p.pos < len(p.src) && !isDelimiter(p.src[p.pos]) {
		p.next()
	}
	token := p.src[start:p.pos]
	n, ok, err := tryToReadNumber(token)
	if err != nil {
		return nil, p.errorf(line, col, "%s: %v", token, err)
	}
	if ok {
		return n, nil
	}
	if v, ok := LookupKeyword(token); ok {
		return v, nil
	}
	return Symbol(token), nil
}

// tryToReadNumber recognizes -?[0-9]*(\.[0-9]*)? with at least one digit.
// It returns ok == false if s does not look like a number at all.
func tryToReadNumber(s string) (v Value, ok bool, err error) {
	digits, dots := 0, 0
	for _, ch := range strings.TrimPrefix(s, "-") {
		switch {
		case ch == '.':
			dots++
			if dots > 1 {
				return nil, false, nil
			}
		case '0' <= ch && ch <= '9':
			digits++
		default:
			return nil, false, nil
		}
	}
	if digits == 0 {
		return nil, false, nil
	}
	if dots == 1 {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, true, fmt.Errorf("float literal out of range")
		}
		return Float(f), true, nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, true, fmt.Errorf("integer literal out of range")
	}
	return Integer(i), true, nil
}
