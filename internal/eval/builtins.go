package eval

import (
	"fmt"
	"io"

	"github.com/cwbudde/sigil/internal/effect"
)

// BuiltinFn is one entry of the dotted builtin table (spec.md §4.7
// "Builtin table"). out is the host print sink; builtins that don't
// print ignore it.
type BuiltinFn func(out io.Writer, args []Value) (Value, error)

func intArg(args []Value, i int) int64     { return args[i].(IntValue).Value }
func floatArg(args []Value, i int) float64 { return args[i].(FloatValue).Value }

func orderOf(a, b float64) OrderingValue {
	switch {
	case a > b:
		return OrderingValue{Tag: Left}
	case a == b:
		return OrderingValue{Tag: Flat}
	default:
		return OrderingValue{Tag: Right}
	}
}

func printLine(out io.Writer, v Value) (Value, error) {
	fmt.Fprintln(out, v.String())
	return Unit, nil
}

// builtins is the fixed dotted-id table, mirroring
// original_source/ginger/builtin.py's BUILTINS dict exactly (same
// ids, same semantics) and internal/symbols/builtins.go's
// KnownBuiltinIDs (same set, different package to avoid an eval<->
// symbols import cycle).
var builtins = map[string]BuiltinFn{
	"core.int.add": func(_ io.Writer, a []Value) (Value, error) {
		return IntValue{Value: intArg(a, 0) + intArg(a, 1)}, nil
	},
	"core.float.add": func(_ io.Writer, a []Value) (Value, error) {
		return FloatValue{Value: floatArg(a, 0) + floatArg(a, 1)}, nil
	},

	"core.int.sub": func(_ io.Writer, a []Value) (Value, error) {
		return IntValue{Value: intArg(a, 0) - intArg(a, 1)}, nil
	},
	"core.float.sub": func(_ io.Writer, a []Value) (Value, error) {
		return FloatValue{Value: floatArg(a, 0) - floatArg(a, 1)}, nil
	},

	"core.int.mul": func(_ io.Writer, a []Value) (Value, error) {
		return IntValue{Value: intArg(a, 0) * intArg(a, 1)}, nil
	},
	"core.float.mul": func(_ io.Writer, a []Value) (Value, error) {
		return FloatValue{Value: floatArg(a, 0) * floatArg(a, 1)}, nil
	},

	"core.float.div": func(_ io.Writer, a []Value) (Value, error) {
		divisor := floatArg(a, 1)
		if divisor == 0 {
			return nil, &RaisedFailure{Fid: effect.DivideByZero}
		}
		return FloatValue{Value: floatArg(a, 0) / divisor}, nil
	},

	"core.int.neg": func(_ io.Writer, a []Value) (Value, error) {
		return IntValue{Value: -intArg(a, 0)}, nil
	},
	"core.float.neg": func(_ io.Writer, a []Value) (Value, error) {
		return FloatValue{Value: -floatArg(a, 0)}, nil
	},

	"core.int.toFloat": func(_ io.Writer, a []Value) (Value, error) {
		return FloatValue{Value: float64(intArg(a, 0))}, nil
	},

	"core.int.print":      func(out io.Writer, a []Value) (Value, error) { return printLine(out, a[0]) },
	"core.float.print":    func(out io.Writer, a []Value) (Value, error) { return printLine(out, a[0]) },
	"core.string.print":   func(out io.Writer, a []Value) (Value, error) { return printLine(out, a[0]) },
	"core.ordering.print": func(out io.Writer, a []Value) (Value, error) { return printLine(out, a[0]) },

	"core.int.cmp": func(_ io.Writer, a []Value) (Value, error) {
		return orderOf(float64(intArg(a, 0)), float64(intArg(a, 1))), nil
	},
	"core.float.cmp": func(_ io.Writer, a []Value) (Value, error) {
		return orderOf(floatArg(a, 0), floatArg(a, 1)), nil
	},
}

// hasBuiltin reports whether id names a registered builtin.
func hasBuiltin(id string) bool {
	_, ok := builtins[id]
	return ok
}

// callBuiltin invokes id with args, writing any print output to out.
func callBuiltin(out io.Writer, id string, args []Value) (Value, error) {
	fn, ok := builtins[id]
	if !ok {
		return nil, fmt.Errorf("unknown builtin %q", id)
	}
	return fn(out, args)
}
