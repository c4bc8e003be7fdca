package sexpr

import (
	"math"
	"strings"

	"github.com/nukata/goarith"
)

// asNumber converts an Integer or a Float to goarith's number.
// It returns nil for other values.
func asNumber(v Value) goarith.Number {
	switch x := v.(type) {
	case Integer:
		return goarith.AsNumber(int64(x))
	case Float:
		return goarith.AsNumber(float64(x))
	}
	return nil
}

func toFloat(v Value) float64 {
	switch x := v.(type) {
	case Integer:
		return float64(x)
	case Float:
		return float64(x)
	}
	panic("not a number: " + Stringify(v, true))
}

// fromExact converts an exact result of goarith back into an Integer.
// goarith widens to *BigInt only when the result does not fit in 64 bits.
func fromExact(k Keyword, n goarith.Number) (Value, error) {
	switch x := n.(type) {
	case goarith.Int32:
		return Integer(x), nil
	case goarith.Int64:
		return Integer(x), nil
	}
	return nil, runtimeErrorf(k, "integer overflow")
}

// arith2 applies the arithmetic keyword k to a and b.
func arith2(k Keyword, a, b Value) (Value, error) {
	_, af := a.(Float)
	_, bf := b.(Float)
	if af || bf {
		x, y := toFloat(a), toFloat(b)
		switch k {
		case Add:
			return Float(x + y), nil
		case Subtract:
			return Float(x - y), nil
		case Multiply:
			return Float(x * y), nil
		case Divide:
			if y == 0 {
				return nil, runtimeErrorf(k, "division by zero")
			}
			return Float(x / y), nil
		case Modulo:
			if y == 0 {
				return nil, runtimeErrorf(k, "division by zero")
			}
			return Float(math.Mod(x, y)), nil
		}
	} else {
		x, y := a.(Integer), b.(Integer)
		switch k {
		case Add:
			return fromExact(k, asNumber(x).Add(asNumber(y)))
		case Subtract:
			return fromExact(k, asNumber(x).Sub(asNumber(y)))
		case Multiply:
			return fromExact(k, asNumber(x).Mul(asNumber(y)))
		case Divide, Modulo:
			if y == 0 {
				return nil, runtimeErrorf(k, "division by zero")
			}
			if x == math.MinInt64 && y == -1 {
				if k == Modulo {
					return Integer(0), nil
				}
				return nil, runtimeErrorf(k, "integer overflow")
			}
			if k == Divide {
				return x / y, nil
			}
			return x % y, nil
		}
	}
	panic("not an arithmetic keyword: " + k.String())
}

// arith folds the operands with k from left to right.
func arith(k Keyword, operands List) (Value, error) {
	for _, x := range operands {
		if asNumber(x) == nil {
			return nil, runtimeErrorf(k, "%s is not a number", Stringify(x, true))
		}
	}
	switch len(operands) {
	case 0:
		switch k {
		case Add:
			return Integer(0), nil
		case Multiply:
			return Integer(1), nil
		}
		return nil, runtimeErrorf(k, "missing an argument")
	case 1:
		if k == Subtract {
			return arith2(k, Integer(0), operands[0])
		}
	}
	acc := operands[0]
	for _, x := range operands[1:] {
		var err error
		if acc, err = arith2(k, acc, x); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

//----------------------------------------------------------------------

// compare returns -1, 0 or 1 as a is less than, equal to or greater than b.
// Numbers compare with numbers and texts with texts.
func compare(k Keyword, a, b Value) (int, error) {
	if x := asNumber(a); x != nil {
		if y := asNumber(b); y != nil {
			return x.Cmp(y), nil
		}
	}
	if x, ok := a.(Text); ok {
		if y, ok := b.(Text); ok {
			return strings.Compare(string(x), string(y)), nil
		}
	}
	return 0, runtimeErrorf(k, "cannot compare %s with %s", TypeName(a), TypeName(b))
}

// equivalent is Equal except that numbers compare by value across
// Integer and Float, within lists too.
func equivalent(a, b Value) bool {
	if x := asNumber(a); x != nil {
		if y := asNumber(b); y != nil {
			return x.Cmp(y) == 0
		}
	}
	if x, ok := a.(List); ok {
		y, ok := b.(List)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !equivalent(x[i], y[i]) {
				return false
			}
		}
		return true
	}
	return Equal(a, b)
}

// relate tests k on every adjacent pair of operands.
func relate(k Keyword, operands List) (Value, error) {
	for i := 1; i < len(operands); i++ {
		a, b := operands[i-1], operands[i]
		var holds bool
		switch k {
		case Eq:
			holds = equivalent(a, b)
		case Neq:
			holds = !equivalent(a, b)
		default:
			c, err := compare(k, a, b)
			if err != nil {
				return nil, err
			}
			switch k {
			case Gt:
				holds = c > 0
			case Ge:
				holds = c >= 0
			case Lt:
				holds = c < 0
			case Le:
				holds = c <= 0
			}
		}
		if !holds {
			return Boolean(false), nil
		}
	}
	return Boolean(true), nil
}
