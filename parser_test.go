package sexpr

import (
	"errors"
	"strings"
	"testing"
)

func testParse(t *testing.T, input string, expected Value) {
	t.Helper()
	v, err := Parse(input)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	if !Equal(v, expected) {
		t.Fatalf("parse %q: expected %s, got %s", input, expected, v)
	}
}

func testParseError(t *testing.T, input string, line, col int) {
	t.Helper()
	_, err := Parse(input)
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("parse %q: expected a syntax error, got %v", input, err)
	}
	if se.Line != line || se.Column != col {
		t.Fatalf("parse %q: expected error at %d:%d, got %d:%d (%v)",
			input, line, col, se.Line, se.Column, err)
	}
}

func TestParseAtoms(t *testing.T) {
	for _, tc := range []struct {
		input string
		val   Value
	}{
		{"42", Integer(42)},
		{"-7", Integer(-7)},
		{"007", Integer(7)},
		{"3.14", Float(3.14)},
		{"-0.5", Float(-0.5)},
		{"1.", Float(1)},
		{".5", Float(0.5)},
		{"true", Boolean(true)},
		{"false", Boolean(false)},
		{"foo", Symbol("foo")},
		{"-x", Symbol("-x")},
		{"1.2.3", Symbol("1.2.3")},
		{"12a", Symbol("12a")},
		{".", Symbol(".")},
		{"True", Symbol("True")},
		{"-", Subtract},
		{"++", Concat},
		{"!=", Neq},
		{"cons", Cons},
		{"  eval\n", Eval},
	} {
		testParse(t, tc.input, tc.val)
	}
}

func TestParseKeywordSpellings(t *testing.T) {
	for i, s := range KeywordStr {
		testParse(t, s, Keyword(i))
	}
}

func TestParseLists(t *testing.T) {
	testParse(t, "()", List{})
	testParse(t, "(1 2 3)", List{Integer(1), Integer(2), Integer(3)})
	testParse(t, "(3 2 1 +)", List{Integer(3), Integer(2), Integer(1), Add})
	testParse(t, "(1\t(2 (3))\r\n())",
		List{Integer(1), List{Integer(2), List{Integer(3)}}, List{}})
	testParse(t, `(abc"x"def)`, List{Symbol("abc"), Text("x"), Symbol("def")})
}

func TestParseSeveralTopLevelValues(t *testing.T) {
	testParse(t, "1 2", List{Integer(1), Integer(2)})
	testParse(t, "(1) x", List{List{Integer(1)}, Symbol("x")})
}

func TestParseQuoteAbbreviation(t *testing.T) {
	a, err := Parse("'x")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse("(quote x)")
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(a, b) {
		t.Fatalf("'x gave %s, (quote x) gave %s", a, b)
	}
	testParse(t, "'(a b)", List{Quote, List{Symbol("a"), Symbol("b")}})
	testParse(t, "''x", List{Quote, List{Quote, Symbol("x")}})
	testParse(t, "(a 'b c)", List{Symbol("a"), List{Quote, Symbol("b")}, Symbol("c")})
	testParse(t, `'"s"`, List{Quote, Text("s")})
	testParse(t, "('(1) 2)", List{List{Quote, List{Integer(1)}}, Integer(2)})
}

func TestParseStrings(t *testing.T) {
	testParse(t, `"hello world"`, Text("hello world"))
	testParse(t, `""`, Text(""))
	testParse(t, `"(not a list)"`, Text("(not a list)"))
	testParse(t, `"\0\a\b\f\n\r\t\v\"\\"`, Text("\x00\a\b\f\n\r\t\v\"\\"))
	testParse(t, "\"two\nlines\"", Text("two\nlines"))
	testParse(t, `"日本"`, Text("日本"))
}

func TestParseKeepsInvalidUTF8(t *testing.T) {
	testParse(t, "\"a\xffb\"", Text("a\xffb"))
	if s := Stringify(Text("a\xffb"), true); s != "\"a\xffb\"" {
		t.Fatalf("unexpected %q", s)
	}
	// columns count an invalid byte as one rune
	testParseError(t, "\"\xff\xfe\\q\"", 1, 4)
	testParseError(t, "(\"日\" \xff))", 1, 8)
}

func TestParseErrors(t *testing.T) {
	testParseError(t, ")", 1, 1)
	testParseError(t, "(1 2))", 1, 6)
	testParseError(t, "(1\n  2", 1, 1)
	testParseError(t, "(1 (2)", 1, 1)
	testParseError(t, `"abc`, 1, 1)
	testParseError(t, `"a\qb"`, 1, 3)
	testParseError(t, "(\n  \"\\q\")", 2, 4)
	testParseError(t, "99999999999999999999", 1, 1)
	testParseError(t, "1"+strings.Repeat("0", 400)+".0", 1, 1)
	testParseError(t, "(1 -"+strings.Repeat("9", 400)+".5)", 1, 4)
	testParseError(t, "(')", 1, 3)
	testParseError(t, "(1 ')", 1, 5)
	testParseError(t, "'", 1, 1)
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t\r\n"} {
		_, err := Parse(input)
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Fatalf("parse %q: expected a syntax error, got %v", input, err)
		}
		if se.Msg != "empty input" {
			t.Fatalf("parse %q: unexpected message %q", input, se.Msg)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, input := range []string{
		"42",
		"-3.25",
		"3.0",
		`"a\nb\t\"c\"\\"`,
		"(1 2.5 -3 true false)",
		"(+ - * / mod ++ > >= < <= = != quote typeof cons car cdr cond print read eval)",
		`(() (()) ("x" (1 (2.0))))`,
		"'(1 '2)",
		"1" + strings.Repeat("0", 300) + ".5",
		"\"\xc0\x80\"",
	} {
		v, err := Parse(input)
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		text := Stringify(v, true)
		w, err := Parse(text)
		if err != nil {
			t.Fatalf("reparse %q (from %q): %v", text, input, err)
		}
		if !Equal(v, w) {
			t.Fatalf("round trip of %q: %s != %s", input, v, w)
		}
	}
}

func TestParseDeepNesting(t *testing.T) {
	const depth = 100000
	src := make([]byte, 0, 2*depth+1)
	for i := 0; i < depth; i++ {
		src = append(src, '(')
	}
	src = append(src, '1')
	for i := 0; i < depth; i++ {
		src = append(src, ')')
	}
	v, err := Parse(string(src))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < depth; i++ {
		x, ok := v.(List)
		if !ok || len(x) != 1 {
			t.Fatalf("depth %d: unexpected %T", i, v)
		}
		v = x[0]
	}
	if !Equal(v, Integer(1)) {
		t.Fatalf("innermost value: %s", v)
	}
}
