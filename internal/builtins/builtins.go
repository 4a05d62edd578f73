// Package builtins registers Scam's host-implemented functions into an
// environment Dict, grounded on the teacher's RegisterXFunctions convention
// (internal/stdlib/*.go) but targeting the value model's own Builtin tag
// instead of a bytecode-VM native-function table.
package builtins

import (
	"fmt"
	"strings"

	"scam/internal/value"
)

// Register binds name to fn in env as a Builtin, flagged constant when fn
// is pure (the evaluator may constant-fold a constant builtin call whose
// arguments are themselves constant).
func Register(c *value.Collector, env value.Value, name string, fn value.BuiltinFunc, constant bool) {
	value.Bind(c, env, value.NewSym(c, name), value.NewBuiltin(c, fn, constant))
}

// RegisterAll installs every builtin group into env. Called once on the
// global environment at interpreter startup.
func RegisterAll(c *value.Collector, env value.Value) {
	registerArith(c, env)
	registerCompare(c, env)
	registerSeq(c, env)
	registerStr(c, env)
	registerDict(c, env)
	registerTypePredicates(c, env)
	registerIO(c, env)
}

// arg fetches the i-th already-evaluated argument from an SExpr/List.
func arg(c *value.Collector, args value.Value, i int) value.Value {
	return value.SeqGet(c, args, i)
}

func nargs(args value.Value) int { return value.SeqLen(args) }

func checkArity(c *value.Collector, name string, args value.Value, want int) value.Value {
	if nargs(args) != want {
		return value.ErrArity(c, name, nargs(args), want)
	}
	return value.Value{}
}

func checkMinArity(c *value.Collector, name string, args value.Value, want int) value.Value {
	if nargs(args) < want {
		return value.ErrMinArity(c, name, nargs(args), want)
	}
	return value.Value{}
}

func isErr(v value.Value) bool { return !v.Nil() && v.Tag() == value.TagErr }
