package builtins

import "scam/internal/value"

func registerStr(c *value.Collector, env value.Value) {
	Register(c, env, "str-concat", builtinStrConcat, false)
	Register(c, env, "str-len", builtinStrLen, false)
	Register(c, env, "str-upper", strMapBuiltin("str-upper", toUpper), false)
	Register(c, env, "str-lower", strMapBuiltin("str-lower", toLower), false)
	Register(c, env, "substr", builtinSubstr, false)
	Register(c, env, "str-get", builtinStrGet, false)
}

func requireStrArg(c *value.Collector, name string, args value.Value, i int) (value.Value, value.Value) {
	v := arg(c, args, i)
	if v.Tag() != value.TagStr && v.Tag() != value.TagSym && v.Tag() != value.TagErr {
		return value.Value{}, value.ErrType(c, name, i, v.Tag(), value.TypeStr.Name())
	}
	return v, value.Value{}
}

// builtinStrConcat is a pure, non-destructive concatenation: it builds a
// fresh Str rather than using the core's StrConcat, which moves b's bytes
// into a and empties b — a container primitive, not the user-facing op.
func builtinStrConcat(c *value.Collector, args value.Value) value.Value {
	if e := checkMinArity(c, "str-concat", args, 1); isErr(e) {
		return e
	}
	var sb []byte
	for i := 0; i < nargs(args); i++ {
		s, e := requireStrArg(c, "str-concat", args, i)
		if isErr(e) {
			return e
		}
		sb = append(sb, []byte(value.AsStr(s))...)
	}
	return value.NewStr(c, string(sb))
}

func builtinStrLen(c *value.Collector, args value.Value) value.Value {
	if e := checkArity(c, "str-len", args, 1); isErr(e) {
		return e
	}
	s, e := requireStrArg(c, "str-len", args, 0)
	if isErr(e) {
		return e
	}
	return value.NewInt(c, int64(value.StrLen(s)))
}

func strMapBuiltin(name string, f func(byte) byte) value.BuiltinFunc {
	return func(c *value.Collector, args value.Value) value.Value {
		if e := checkArity(c, name, args, 1); isErr(e) {
			return e
		}
		s, e := requireStrArg(c, name, args, 0)
		if isErr(e) {
			return e
		}
		cp := c.Copy(s)
		value.StrMap(cp, f)
		return cp
	}
}

func toUpper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 32
	}
	return b
}

func toLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 32
	}
	return b
}

func builtinSubstr(c *value.Collector, args value.Value) value.Value {
	if e := checkArity(c, "substr", args, 3); isErr(e) {
		return e
	}
	s, e := requireStrArg(c, "substr", args, 0)
	if isErr(e) {
		return e
	}
	startV, endV := arg(c, args, 1), arg(c, args, 2)
	if startV.Tag() != value.TagInt {
		return value.ErrType(c, "substr", 1, startV.Tag(), value.TypeInt.Name())
	}
	if endV.Tag() != value.TagInt {
		return value.ErrType(c, "substr", 2, endV.Tag(), value.TypeInt.Name())
	}
	return value.StrSubstr(c, s, int(value.AsInt(startV)), int(value.AsInt(endV)))
}

func builtinStrGet(c *value.Collector, args value.Value) value.Value {
	if e := checkArity(c, "str-get", args, 2); isErr(e) {
		return e
	}
	s, e := requireStrArg(c, "str-get", args, 0)
	if isErr(e) {
		return e
	}
	idxV := arg(c, args, 1)
	if idxV.Tag() != value.TagInt {
		return value.ErrType(c, "str-get", 1, idxV.Tag(), value.TypeInt.Name())
	}
	b := value.StrGet(s, int(value.AsInt(idxV)))
	if b == value.EOFByte {
		return value.ErrRange(c)
	}
	return value.NewInt(c, int64(b))
}
