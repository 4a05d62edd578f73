package builtins

import "scam/internal/value"

func registerTypePredicates(c *value.Collector, env value.Value) {
	Register(c, env, "int?", tagPredicate(value.TagInt), true)
	Register(c, env, "dec?", tagPredicate(value.TagDec), true)
	Register(c, env, "bool?", tagPredicate(value.TagBool), true)
	Register(c, env, "str?", tagPredicate(value.TagStr), true)
	Register(c, env, "sym?", tagPredicate(value.TagSym), true)
	Register(c, env, "list?", tagPredicate(value.TagList), true)
	Register(c, env, "dict?", tagPredicate(value.TagDict), true)
	Register(c, env, "err?", tagPredicate(value.TagErr), true)
	Register(c, env, "null?", tagPredicate(value.TagNull), true)
	Register(c, env, "function?", typePredicate(value.TypeFunction), true)
	Register(c, env, "num?", typePredicate(value.TypeNum), true)
	Register(c, env, "type-of", builtinTypeOf, true)
}

func tagPredicate(tag value.Tag) value.BuiltinFunc {
	return func(c *value.Collector, args value.Value) value.Value {
		if e := checkArity(c, tag.String()+"?", args, 1); isErr(e) {
			return e
		}
		return value.NewBool(c, arg(c, args, 0).Tag() == tag)
	}
}

func typePredicate(t value.Type) value.BuiltinFunc {
	return func(c *value.Collector, args value.Value) value.Value {
		if e := checkArity(c, "type-predicate", args, 1); isErr(e) {
			return e
		}
		return value.NewBool(c, value.Typecheck(arg(c, args, 0), t))
	}
}

func builtinTypeOf(c *value.Collector, args value.Value) value.Value {
	if e := checkArity(c, "type-of", args, 1); isErr(e) {
		return e
	}
	return value.NewSym(c, arg(c, args, 0).Tag().String())
}
