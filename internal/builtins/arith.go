package builtins

import "scam/internal/value"

func registerArith(c *value.Collector, env value.Value) {
	Register(c, env, "+", arithFold("+", 0, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b }), true)
	Register(c, env, "*", arithFold("*", 1, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b }), true)
	Register(c, env, "-", arithSub, true)
	Register(c, env, "/", arithDiv, true)
	Register(c, env, "%", arithMod, true)
}

func numAsDec(c *value.Collector, v value.Value) (float64, bool) {
	if !value.Typecheck(v, value.TypeNum) {
		return 0, false
	}
	return value.AsDec(v), true
}

// arithFold implements a left-associative variadic fold over +/*, staying
// in Int arithmetic as long as every argument is an Int and promoting to
// Dec the moment any argument is a Dec, matching eq/gt's cross-type
// promotion rule in spec.md §4.6.
func arithFold(name string, identity int64, intOp func(a, b int64) int64, decOp func(a, b float64) float64) value.BuiltinFunc {
	return func(c *value.Collector, args value.Value) value.Value {
		n := nargs(args)
		if n == 0 {
			return value.NewInt(c, identity)
		}
		first := arg(c, args, 0)
		if !value.Typecheck(first, value.TypeNum) {
			return value.ErrType(c, name, 0, first.Tag(), value.TypeNum.Name())
		}
		allInt := first.Tag() == value.TagInt
		iacc := value.AsInt(first)
		dacc := value.AsDec(first)
		for i := 1; i < n; i++ {
			v := arg(c, args, i)
			if !value.Typecheck(v, value.TypeNum) {
				return value.ErrType(c, name, i, v.Tag(), value.TypeNum.Name())
			}
			if v.Tag() != value.TagInt {
				allInt = false
			}
			dacc = decOp(dacc, value.AsDec(v))
			if allInt {
				iacc = intOp(iacc, value.AsInt(v))
			}
		}
		if allInt {
			return value.NewInt(c, iacc)
		}
		return value.NewDec(c, dacc)
	}
}

func arithSub(c *value.Collector, args value.Value) value.Value {
	if e := checkMinArity(c, "-", args, 1); isErr(e) {
		return e
	}
	n := nargs(args)
	first := arg(c, args, 0)
	if !value.Typecheck(first, value.TypeNum) {
		return value.ErrType(c, "-", 0, first.Tag(), value.TypeNum.Name())
	}
	if n == 1 {
		if first.Tag() == value.TagInt {
			return value.NewInt(c, -value.AsInt(first))
		}
		return value.NewDec(c, -value.AsDec(first))
	}
	allInt := first.Tag() == value.TagInt
	iacc := value.AsInt(first)
	dacc := value.AsDec(first)
	for i := 1; i < n; i++ {
		v := arg(c, args, i)
		if !value.Typecheck(v, value.TypeNum) {
			return value.ErrType(c, "-", i, v.Tag(), value.TypeNum.Name())
		}
		if v.Tag() != value.TagInt {
			allInt = false
		}
		dacc -= value.AsDec(v)
		if allInt {
			iacc -= value.AsInt(v)
		}
	}
	if allInt {
		return value.NewInt(c, iacc)
	}
	return value.NewDec(c, dacc)
}

func arithDiv(c *value.Collector, args value.Value) value.Value {
	if e := checkArity(c, "/", args, 2); isErr(e) {
		return e
	}
	a, okA := numAsDec(c, arg(c, args, 0))
	b, okB := numAsDec(c, arg(c, args, 1))
	if !okA {
		return value.ErrType(c, "/", 0, arg(c, args, 0).Tag(), value.TypeNum.Name())
	}
	if !okB {
		return value.ErrType(c, "/", 1, arg(c, args, 1).Tag(), value.TypeNum.Name())
	}
	if b == 0 {
		return value.NewErr(c, "division by zero")
	}
	if arg(c, args, 0).Tag() == value.TagInt && arg(c, args, 1).Tag() == value.TagInt {
		ai, bi := value.AsInt(arg(c, args, 0)), value.AsInt(arg(c, args, 1))
		if ai%bi == 0 {
			return value.NewInt(c, ai/bi)
		}
	}
	return value.NewDec(c, a/b)
}

func arithMod(c *value.Collector, args value.Value) value.Value {
	if e := checkArity(c, "%", args, 2); isErr(e) {
		return e
	}
	a, b := arg(c, args, 0), arg(c, args, 1)
	if a.Tag() != value.TagInt {
		return value.ErrType(c, "%", 0, a.Tag(), value.TypeInt.Name())
	}
	if b.Tag() != value.TagInt {
		return value.ErrType(c, "%", 1, b.Tag(), value.TypeInt.Name())
	}
	bi := value.AsInt(b)
	if bi == 0 {
		return value.NewErr(c, "division by zero")
	}
	return value.NewInt(c, value.AsInt(a)%bi)
}
