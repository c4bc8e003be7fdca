package sexpr

import (
	"io"
	"strings"
)

// frame operators: where a frame resumes when a value comes back to it
const (
	headOp = iota // the operator (last element) is being evaluated
	argOp         // the operands are being evaluated
)

var opStr = [...]string{"Head", "Arg"}

// frame represents a non-empty list being reduced.
type frame struct {
	Op    int
	Form  List    // the list as written
	Args  List    // a copy of Form; evaluated elements replace the originals
	Index int     // the element being evaluated
	Key   Keyword // the operator, if it evaluated to a keyword
	IsKey bool
}

// continuation represents the pending frames of an evaluation as a stack.
type continuation []*frame

// Push appends a frame to the tail of the continuation.
func (k *continuation) Push(f *frame) {
	*k = append(*k, f)
}

// Pop pops a frame from the tail of the continuation.
func (k *continuation) Pop() *frame {
	n := len(*k) - 1
	f := (*k)[n]
	(*k)[n] = nil
	*k = (*k)[:n]
	return f
}

// Top returns the frame at the tail of the continuation.
func (k continuation) Top() *frame {
	return k[len(k)-1]
}

func (k continuation) String() string {
	ss := make([]string, 0, len(k))
	for _, f := range k {
		ss = append(ss, "<"+opStr[f.Op]+":"+Stringify(f.Form, true)+">")
	}
	return "#<" + strings.Join(ss, "\n\t") + ">"
}

// takesList reports whether k expects a list as its operand.
func takesList(k Keyword) bool {
	return k == Cons || k == Car || k == Cdr
}

// isListLiteral reports whether v is a non-empty list which does not end
// with a keyword, such as (2 3).  Such lists are data for cons, car and
// cdr rather than forms to evaluate.
func isListLiteral(v Value) bool {
	x, ok := v.(List)
	if !ok || len(x) == 0 {
		return false
	}
	_, isKey := x[len(x)-1].(Keyword)
	return !isKey
}

//----------------------------------------------------------------------

// Evaluator evaluates values.  Out receives the output of print and read;
// In supplies the lines read by read.
type Evaluator struct {
	Out io.Writer
	In  LineReader
}

// NewEvaluator returns an evaluator.  A nil out discards output and a nil
// in has no lines.
func NewEvaluator(out io.Writer, in LineReader) *Evaluator {
	if out == nil {
		out = io.Discard
	}
	if in == nil {
		in = noInput{}
	}
	return &Evaluator{Out: out, In: in}
}

// EvalString parses text and evaluates the result.
func (ev *Evaluator) EvalString(text string) (Value, error) {
	exp, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return ev.Evaluate(exp)
}

// Evaluate evaluates an expression.
// The operator of a list is its last element.  It is evaluated first and,
// unless it is quote or cond, the other elements are evaluated from right
// to left before the operator is applied.  A list whose operator is not a
// keyword yields its first element.
func (ev *Evaluator) Evaluate(exp Value) (Value, error) {
	k := make(continuation, 0, 100)
	for {
	Loop1:
		for {
			switch x := exp.(type) {
			case List:
				if len(x) == 0 {
					break Loop1
				}
				n := len(x) - 1
				k.Push(&frame{Op: headOp, Form: x, Args: x.Copy(), Index: n})
				exp = x[n]
			case nil:
				return nil, &RuntimeError{"no value to evaluate"}
			default: // Integer, Float, Boolean, Text, Symbol, Keyword
				break Loop1
			}
		}
	Loop2:
		for {
			if len(k) == 0 {
				return exp, nil
			}
			f := k.Top()
			f.Args[f.Index] = exp
			switch f.Op {
			case headOp: // exp = operator
				f.Key, f.IsKey = exp.(Keyword)
				if f.IsKey {
					switch f.Key {
					case Quote:
						k.Pop()
						if f.Index == 0 {
							return nil, runtimeErrorf(Quote, "missing an argument")
						}
						exp = f.Form[f.Index-1]
						continue Loop2
					case Cond:
						k.Pop()
						exp = List{}
						continue Loop2
					}
				}
				f.Op = argOp
			case argOp: // exp = operand
			default:
				panic("bad " + k.String())
			}
			if f.Index > 0 {
				f.Index--
				exp = f.Args[f.Index]
				if f.IsKey && takesList(f.Key) && isListLiteral(exp) {
					continue Loop2 // taken as written
				}
				break Loop2
			}
			k.Pop()
			if !f.IsKey {
				exp = f.Args[0]
				continue Loop2
			}
			if f.Key == Eval {
				n := len(f.Args) - 1
				if n == 0 {
					return nil, runtimeErrorf(Eval, "missing an argument")
				}
				exp = f.Args[n-1] // evaluate it again in place of the frame
				break Loop2
			}
			v, err := ev.applyKeyword(f.Key, f.Args)
			if err != nil {
				return nil, err
			}
			exp = v
		} // end Loop2
	}
}
