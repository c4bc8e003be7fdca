package main

import (
	"bytes"
	"strings"
	"testing"

	sexpr "github.com/nukata/little-sexpr-in-go"
)

func TestAccumulator(t *testing.T) {
	var acc accumulator
	for _, tc := range []struct {
		line     string
		complete bool
		text     string
	}{
		{"(3 2", false, ""},
		{"  1 +)", true, "(3 2\n  1 +)\n"},
		{"", false, ""},
		{`(")(" print`, false, ""},
		{`"\")" ++)`, true, "(\")(\" print\n\"\\\")\" ++)\n"},
		{"42", true, "42\n"},
		{`("open`, false, ""},
		{`close")`, true, "(\"open\nclose\")\n"},
	} {
		text, ok, err := acc.Add(tc.line)
		if err != nil {
			t.Fatalf("%q: %v", tc.line, err)
		}
		if ok != tc.complete || text != tc.text {
			t.Fatalf("%q: got (%q, %v), expected (%q, %v)", tc.line, text, ok, tc.text, tc.complete)
		}
	}
	if acc.pending() {
		t.Fatal("accumulator should be empty")
	}
}

func TestAccumulatorExtraParen(t *testing.T) {
	var acc accumulator
	if _, _, err := acc.Add("(1))"); err == nil {
		t.Fatal("expected an error")
	}
	text, ok, err := acc.Add("(1)")
	if err != nil || !ok || text != "(1)\n" {
		t.Fatalf("accumulator not reset: %q %v %v", text, ok, err)
	}
}

func newTestREPL(input string) (*REPL, *console, *bytes.Buffer, *bytes.Buffer) {
	var out, errs bytes.Buffer
	con := newConsole(strings.NewReader(input), &out, false)
	r := &REPL{
		Eval: sexpr.NewEvaluator(con, con),
		Out:  con,
		Err:  &errs,
	}
	return r, con, &out, &errs
}

func TestREPLRun(t *testing.T) {
	r, con, out, errs := newTestREPL("(3 2 1\n+)\n(0 5 /)\n)\n(\"hi\" print)\n")
	if err := r.Run(con); err != nil {
		t.Fatal(err)
	}
	if s := out.String(); s != "6\nhi()\n" {
		t.Fatalf("unexpected output %q", s)
	}
	for _, msg := range []string{"division by zero", "1 extra closing parentheses"} {
		if !strings.Contains(errs.String(), msg) {
			t.Fatalf("missing %q in %q", msg, errs.String())
		}
	}
}

func TestREPLPrompt(t *testing.T) {
	r, con, out, _ := newTestREPL("(1\n2 +)\n")
	r.Prompt = "[%d]>> "
	if err := r.Run(con); err != nil {
		t.Fatal(err)
	}
	if s := out.String(); s != "[0]>> [1]>> 3\n[0]>> " {
		t.Fatalf("unexpected output %q", s)
	}
}

func TestREPLRead(t *testing.T) {
	r, con, out, errs := newTestREPL("(\"name? \" read)\n(1 2 +)\n")
	if err := r.Run(con); err != nil {
		t.Fatal(err)
	}
	if s := out.String(); s != "name? (1 2 +)\n" {
		t.Fatalf("unexpected output %q (errors %q)", s, errs.String())
	}
}

func TestREPLDump(t *testing.T) {
	r, con, out, _ := newTestREPL("(1 2 +)\n")
	r.Dump = true
	if err := r.Run(con); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "sexpr.List") {
		t.Fatalf("no dump in %q", out.String())
	}
	if !strings.HasSuffix(out.String(), "\n3\n") {
		t.Fatalf("no result in %q", out.String())
	}
}

func TestREPLLoad(t *testing.T) {
	r, _, out, _ := newTestREPL("")
	src := "(\"a\" print)\n(1\n 2 +)\n(\"b\" print)\n"
	if err := r.load("test.sx", strings.NewReader(src)); err != nil {
		t.Fatal(err)
	}
	if out.String() != "ab" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestREPLLoadErrors(t *testing.T) {
	for _, tc := range []struct {
		src string
		msg string
	}{
		{"(1 2 +)\n\n(() car)\n", "test.sx:3: runtime error: car: empty list"},
		{"(1\n", "test.sx: unexpected end of file"},
		{"(1))\n", "test.sx:1: 1 extra closing parentheses"},
		{"(\"\\q\")\n", "test.sx:1: syntax error at line 1, column 3: invalid escape sequence \\q"},
	} {
		r, _, _, _ := newTestREPL("")
		err := r.load("test.sx", strings.NewReader(tc.src))
		if err == nil || err.Error() != tc.msg {
			t.Fatalf("%q: expected %q, got %v", tc.src, tc.msg, err)
		}
	}
}

func TestConsoleTail(t *testing.T) {
	var out bytes.Buffer
	con := newConsole(strings.NewReader("x\n"), &out, false)
	con.Write([]byte("one\ntwo"))
	con.Write([]byte(" three"))
	if con.tail != "two three" {
		t.Fatalf("unexpected tail %q", con.tail)
	}
	line, err := con.ReadLine()
	if err != nil || line != "x" {
		t.Fatalf("ReadLine: %q %v", line, err)
	}
	if con.tail != "" {
		t.Fatalf("tail not cleared: %q", con.tail)
	}
}
