package builtins

import "scam/internal/value"

func registerSeq(c *value.Collector, env value.Value) {
	Register(c, env, "head", builtinHead, false)
	Register(c, env, "tail", builtinTail, false)
	Register(c, env, "cons", builtinCons, false)
	Register(c, env, "list", builtinList, false)
	Register(c, env, "len", builtinLen, false)
	Register(c, env, "nth", builtinNth, false)
	Register(c, env, "append", builtinAppend, false)
	Register(c, env, "reverse", builtinReverse, false)
	Register(c, env, "empty?", builtinEmpty, false)
}

// seqTypes restricts these ops to the container kinds backed by the
// sequence container (spec.md §4.2): List and SExpr, not Str, which has its
// own byte-oriented container API.
const seqTypes = value.TypeList | value.TypeSExpr

func requireSeqArg(c *value.Collector, name string, args value.Value, i int) (value.Value, value.Value) {
	v := arg(c, args, i)
	if !value.Typecheck(v, seqTypes) {
		return value.Value{}, value.ErrType(c, name, i, v.Tag(), "Seq")
	}
	return v, value.Value{}
}

func builtinHead(c *value.Collector, args value.Value) value.Value {
	if e := checkArity(c, "head", args, 1); isErr(e) {
		return e
	}
	seq, e := requireSeqArg(c, "head", args, 0)
	if isErr(e) {
		return e
	}
	if value.SeqLen(seq) == 0 {
		return value.ErrRange(c)
	}
	return c.Copy(value.SeqGet(c, seq, 0))
}

func builtinTail(c *value.Collector, args value.Value) value.Value {
	if e := checkArity(c, "tail", args, 1); isErr(e) {
		return e
	}
	seq, e := requireSeqArg(c, "tail", args, 0)
	if isErr(e) {
		return e
	}
	if value.SeqLen(seq) == 0 {
		return value.ErrRange(c)
	}
	return value.Subseq(c, seq, 1, value.SeqLen(seq))
}

func builtinCons(c *value.Collector, args value.Value) value.Value {
	if e := checkArity(c, "cons", args, 2); isErr(e) {
		return e
	}
	head := arg(c, args, 0)
	seq, e := requireSeqArg(c, "cons", args, 1)
	if isErr(e) {
		return e
	}
	result := value.NewList(c)
	value.Append(c, result, c.Copy(head))
	for i := 0; i < value.SeqLen(seq); i++ {
		value.Append(c, result, c.Copy(value.SeqGet(c, seq, i)))
	}
	return result
}

func builtinList(c *value.Collector, args value.Value) value.Value {
	result := value.NewList(c)
	for i := 0; i < nargs(args); i++ {
		value.Append(c, result, c.Copy(arg(c, args, i)))
	}
	return result
}

func builtinLen(c *value.Collector, args value.Value) value.Value {
	if e := checkArity(c, "len", args, 1); isErr(e) {
		return e
	}
	v := arg(c, args, 0)
	switch {
	case v.Tag() == value.TagStr:
		return value.NewInt(c, int64(value.StrLen(v)))
	case value.Typecheck(v, seqTypes):
		return value.NewInt(c, int64(value.SeqLen(v)))
	case v.Tag() == value.TagDict:
		return value.NewInt(c, int64(value.DictLen(v)))
	default:
		return value.ErrType(c, "len", 0, v.Tag(), value.TypeContainer.Name())
	}
}

func builtinNth(c *value.Collector, args value.Value) value.Value {
	if e := checkArity(c, "nth", args, 2); isErr(e) {
		return e
	}
	seq, e := requireSeqArg(c, "nth", args, 0)
	if isErr(e) {
		return e
	}
	idxVal := arg(c, args, 1)
	if idxVal.Tag() != value.TagInt {
		return value.ErrType(c, "nth", 1, idxVal.Tag(), value.TypeInt.Name())
	}
	idx := int(value.AsInt(idxVal))
	if idx < 0 || idx >= value.SeqLen(seq) {
		return value.ErrRange(c)
	}
	return c.Copy(value.SeqGet(c, seq, idx))
}

// builtinAppend concatenates every argument sequence into a fresh List,
// copying elements rather than mutating any argument in place (unlike the
// core's destructive Concat, which is an internal container primitive, not
// a user-facing builtin).
func builtinAppend(c *value.Collector, args value.Value) value.Value {
	result := value.NewList(c)
	for i := 0; i < nargs(args); i++ {
		seq, e := requireSeqArg(c, "append", args, i)
		if isErr(e) {
			return e
		}
		for j := 0; j < value.SeqLen(seq); j++ {
			value.Append(c, result, c.Copy(value.SeqGet(c, seq, j)))
		}
	}
	return result
}

func builtinReverse(c *value.Collector, args value.Value) value.Value {
	if e := checkArity(c, "reverse", args, 1); isErr(e) {
		return e
	}
	seq, e := requireSeqArg(c, "reverse", args, 0)
	if isErr(e) {
		return e
	}
	result := value.NewList(c)
	for i := value.SeqLen(seq) - 1; i >= 0; i-- {
		value.Append(c, result, c.Copy(value.SeqGet(c, seq, i)))
	}
	return result
}

func builtinEmpty(c *value.Collector, args value.Value) value.Value {
	if e := checkArity(c, "empty?", args, 1); isErr(e) {
		return e
	}
	v := arg(c, args, 0)
	switch {
	case v.Tag() == value.TagStr:
		return value.NewBool(c, value.StrLen(v) == 0)
	case value.Typecheck(v, seqTypes):
		return value.NewBool(c, value.SeqLen(v) == 0)
	case v.Tag() == value.TagDict:
		return value.NewBool(c, value.DictLen(v) == 0)
	default:
		return value.ErrType(c, "empty?", 0, v.Tag(), value.TypeContainer.Name())
	}
}
