package builtins

import "scam/internal/value"

func registerDict(c *value.Collector, env value.Value) {
	Register(c, env, "dict", builtinDict, false)
	Register(c, env, "dict-bind", builtinDictBind, false)
	Register(c, env, "dict-lookup", builtinDictLookup, false)
	Register(c, env, "dict-keys", builtinDictKeys, false)
	Register(c, env, "dict-vals", builtinDictVals, false)
}

func requireDictArg(c *value.Collector, name string, args value.Value, i int) (value.Value, value.Value) {
	v := arg(c, args, i)
	if v.Tag() != value.TagDict {
		return value.Value{}, value.ErrType(c, name, i, v.Tag(), value.TypeDict.Name())
	}
	return v, value.Value{}
}

// builtinDict builds a Dict from an even number of alternating key/value
// arguments: (dict "a" 1 "b" 2).
func builtinDict(c *value.Collector, args value.Value) value.Value {
	n := nargs(args)
	if n%2 != 0 {
		return value.NewErr(c, "'dict' requires an even number of key/value arguments")
	}
	d := value.NewDict(c)
	for i := 0; i < n; i += 2 {
		value.Bind(c, d, c.Copy(arg(c, args, i)), c.Copy(arg(c, args, i+1)))
	}
	return d
}

func builtinDictBind(c *value.Collector, args value.Value) value.Value {
	if e := checkArity(c, "dict-bind", args, 3); isErr(e) {
		return e
	}
	d, e := requireDictArg(c, "dict-bind", args, 0)
	if isErr(e) {
		return e
	}
	value.Bind(c, d, c.Copy(arg(c, args, 1)), c.Copy(arg(c, args, 2)))
	return value.NewNull(c)
}

func builtinDictLookup(c *value.Collector, args value.Value) value.Value {
	if e := checkArity(c, "dict-lookup", args, 2); isErr(e) {
		return e
	}
	d, e := requireDictArg(c, "dict-lookup", args, 0)
	if isErr(e) {
		return e
	}
	return c.Copy(value.Lookup(c, d, arg(c, args, 1)))
}

func builtinDictKeys(c *value.Collector, args value.Value) value.Value {
	if e := checkArity(c, "dict-keys", args, 1); isErr(e) {
		return e
	}
	d, e := requireDictArg(c, "dict-keys", args, 0)
	if isErr(e) {
		return e
	}
	return c.Copy(value.Keys(d))
}

func builtinDictVals(c *value.Collector, args value.Value) value.Value {
	if e := checkArity(c, "dict-vals", args, 1); isErr(e) {
		return e
	}
	d, e := requireDictArg(c, "dict-vals", args, 0)
	if isErr(e) {
		return e
	}
	return c.Copy(value.Vals(d))
}
