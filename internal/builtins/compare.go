package builtins

import "scam/internal/value"

func registerCompare(c *value.Collector, env value.Value) {
	Register(c, env, "=", cmpEq, true)
	Register(c, env, "<", cmpOrder("<", func(a, b value.Value) bool { return value.Gt(b, a) }), true)
	Register(c, env, ">", cmpOrder(">", value.Gt), true)
	Register(c, env, "<=", cmpOrder("<=", func(a, b value.Value) bool { return !value.Gt(a, b) }), true)
	Register(c, env, ">=", cmpOrder(">=", func(a, b value.Value) bool { return !value.Gt(b, a) }), true)
	Register(c, env, "not", builtinNot, true)
}

func cmpEq(c *value.Collector, args value.Value) value.Value {
	if e := checkMinArity(c, "=", args, 1); isErr(e) {
		return e
	}
	n := nargs(args)
	for i := 1; i < n; i++ {
		if !value.Eq(arg(c, args, i-1), arg(c, args, i)) {
			return value.NewBool(c, false)
		}
	}
	return value.NewBool(c, true)
}

func cmpOrder(name string, pairwise func(a, b value.Value) bool) value.BuiltinFunc {
	return func(c *value.Collector, args value.Value) value.Value {
		if e := checkMinArity(c, name, args, 1); isErr(e) {
			return e
		}
		n := nargs(args)
		for i := 0; i < n; i++ {
			if !value.Typecheck(arg(c, args, i), value.TypeCmp) {
				return value.ErrType(c, name, i, arg(c, args, i).Tag(), value.TypeCmp.Name())
			}
		}
		for i := 1; i < n; i++ {
			if !pairwise(arg(c, args, i-1), arg(c, args, i)) {
				return value.NewBool(c, false)
			}
		}
		return value.NewBool(c, true)
	}
}

func builtinNot(c *value.Collector, args value.Value) value.Value {
	if e := checkArity(c, "not", args, 1); isErr(e) {
		return e
	}
	v := arg(c, args, 0)
	truthy := true
	switch v.Tag() {
	case value.TagBool:
		truthy = value.AsBool(v)
	case value.TagNull:
		truthy = false
	}
	return value.NewBool(c, !truthy)
}
