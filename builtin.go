package sexpr

import (
	"errors"
	"io"
	"strings"
)

// operands returns the evaluated operands of a form whose operator is at
// the end of args, in the order they were evaluated: from the one next to
// the operator back to the first element.
func operands(args List) List {
	n := len(args) - 1
	result := make(List, n)
	for i := 0; i < n; i++ {
		result[i] = args[n-1-i]
	}
	return result
}

// applyKeyword applies a strict keyword to the evaluated elements of a form.
// The keyword itself is the last element of args.
func (ev *Evaluator) applyKeyword(k Keyword, args List) (Value, error) {
	n := len(args) - 1 // number of operands
	switch k {
	case Add, Subtract, Multiply, Divide, Modulo:
		return arith(k, operands(args))
	case Gt, Ge, Lt, Le, Eq, Neq:
		return relate(k, operands(args))
	case Concat:
		var sb strings.Builder
		for _, x := range operands(args) {
			sb.WriteString(Stringify(x, false))
		}
		return Text(sb.String()), nil
	case TypeOf:
		if n == 0 {
			return nil, runtimeErrorf(k, "missing an argument")
		}
		return Text(TypeName(args[n-1])), nil
	case Cons:
		if n == 0 {
			return nil, runtimeErrorf(k, "missing an argument")
		}
		if tail, ok := args[n-1].(List); ok {
			result := make(List, 0, n-1+len(tail))
			result = append(result, args[:n-1]...)
			return append(result, tail...), nil
		}
		return args[:n].Copy(), nil
	case Car, Cdr:
		if n == 0 {
			return nil, runtimeErrorf(k, "missing an argument")
		}
		x, ok := args[n-1].(List)
		if !ok {
			return nil, runtimeErrorf(k, "%s is not a list", Stringify(args[n-1], true))
		}
		if k == Car {
			if len(x) == 0 {
				return nil, runtimeErrorf(k, "empty list")
			}
			return x[len(x)-1], nil
		}
		if len(x) == 0 {
			return List{}, nil
		}
		return x[:len(x)-1].Copy(), nil
	case Print:
		if err := ev.display(k, operands(args)); err != nil {
			return nil, err
		}
		return List{}, nil
	case Read:
		if err := ev.display(k, operands(args)); err != nil {
			return nil, err
		}
		line, err := ev.In.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, runtimeErrorf(k, "end of input")
			}
			return nil, runtimeErrorf(k, "%v", err)
		}
		return Parse(line)
	}
	panic("not a strict keyword: " + k.String())
}

// display writes each value to the output, texts without quotes.
func (ev *Evaluator) display(k Keyword, values List) error {
	for _, x := range values {
		if _, err := io.WriteString(ev.Out, Stringify(x, false)); err != nil {
			return runtimeErrorf(k, "%v", err)
		}
	}
	return nil
}
