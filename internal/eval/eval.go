// Package eval tree-walks parsed Scam forms against a lexical environment,
// the external collaborator spec.md §6 describes: it consumes SExpr, Sym,
// and atom values and emits a value of any tag, including Err, propagating
// sub-expression errors unmodified rather than raising them out-of-band.
package eval

import "scam/internal/value"

// special form symbols recognized before argument evaluation.
const (
	symDefine = "define"
	symLambda = "lambda"
	symIf     = "if"
	symBegin  = "begin"
	symQuote  = "quote"
	symSet    = "set!"
	symAnd    = "and"
	symOr     = "or"
)

// Eval evaluates form in env, an environment Dict per spec.md §4.4. Atoms
// other than Sym evaluate to themselves; a Sym looks itself up through the
// enclosing chain; an SExpr is either a recognized special form or a
// function application.
func Eval(c *value.Collector, env, form value.Value) value.Value {
	switch form.Tag() {
	case value.TagSym:
		return value.Lookup(c, env, form)
	case value.TagSExpr:
		return evalSExpr(c, env, form)
	default:
		return form
	}
}

func evalSExpr(c *value.Collector, env, form value.Value) value.Value {
	n := value.SeqLen(form)
	if n == 0 {
		// An empty '()' evaluates to itself; there is no operator to apply.
		return c.Copy(form)
	}
	head := value.SeqGet(c, form, 0)
	if head.Tag() == value.TagSym {
		switch value.AsStr(head) {
		case symDefine:
			return evalDefine(c, env, form)
		case symLambda:
			return evalLambda(c, env, form)
		case symIf:
			return evalIf(c, env, form)
		case symBegin:
			return evalBegin(c, env, form)
		case symQuote:
			return evalQuote(c, form)
		case symSet:
			return evalSet(c, env, form)
		case symAnd:
			return evalAnd(c, env, form)
		case symOr:
			return evalOr(c, env, form)
		}
	}
	return evalApply(c, env, form)
}

// evalDefine: (define sym expr) binds sym in env to expr's value and
// returns Null; (define (name params...) body...) is sugar for binding a
// lambda.
func evalDefine(c *value.Collector, env, form value.Value) value.Value {
	if value.SeqLen(form) < 3 {
		return value.ErrMinArity(c, symDefine, value.SeqLen(form)-1, 2)
	}
	target := value.SeqGet(c, form, 1)
	if target.Tag() == value.TagSym {
		val := Eval(c, env, value.SeqGet(c, form, 2))
		if val.Tag() == value.TagErr {
			return val
		}
		value.Bind(c, env, c.Copy(target), c.Copy(val))
		return value.NewNull(c)
	}
	if target.Tag() != value.TagSExpr && target.Tag() != value.TagList {
		return value.ErrType(c, symDefine, 1, target.Tag(), value.TypeSym.Name())
	}
	if value.SeqLen(target) == 0 || value.SeqGet(c, target, 0).Tag() != value.TagSym {
		return value.ErrType(c, symDefine, 1, target.Tag(), value.TypeSym.Name())
	}
	name := value.SeqGet(c, target, 0)
	params := value.NewList(c)
	for i := 1; i < value.SeqLen(target); i++ {
		value.Append(c, params, c.Copy(value.SeqGet(c, target, i)))
	}
	body := bodyOf(c, form, 2)
	lambda := newLambdaCapturing(c, params, body, env)
	value.Bind(c, env, c.Copy(name), lambda)
	return value.NewNull(c)
}

// newLambdaCapturing builds a Lambda that captures env itself (not a copy,
// so later mutations of env via the enclosing chain are visible to the
// closure). NewLambda unsets env's root flag as part of taking ownership;
// since env is also still the live active scope the caller keeps
// evaluating in, its root status is restored immediately afterward.
func newLambdaCapturing(c *value.Collector, params, body, env value.Value) value.Value {
	lambda := value.NewLambda(c, params, body, env)
	c.SetRoot(env)
	return lambda
}

// evalLambda: (lambda [params...] body...).
func evalLambda(c *value.Collector, env, form value.Value) value.Value {
	if value.SeqLen(form) < 3 {
		return value.ErrMinArity(c, symLambda, value.SeqLen(form)-1, 2)
	}
	paramSrc := value.SeqGet(c, form, 1)
	if paramSrc.Tag() != value.TagList && paramSrc.Tag() != value.TagSExpr {
		return value.ErrType(c, symLambda, 1, paramSrc.Tag(), value.TypeList.Name())
	}
	params := value.NewList(c)
	for i := 0; i < value.SeqLen(paramSrc); i++ {
		value.Append(c, params, c.Copy(value.SeqGet(c, paramSrc, i)))
	}
	body := bodyOf(c, form, 2)
	return newLambdaCapturing(c, params, body, env)
}

// bodyOf packs form's children from index start onward into a 'begin'
// SExpr, so a multi-expression lambda/define body has a single expression
// to store.
func bodyOf(c *value.Collector, form value.Value, start int) value.Value {
	n := value.SeqLen(form)
	if n-start == 1 {
		return c.Copy(value.SeqGet(c, form, start))
	}
	body := value.NewSExpr(c)
	value.Append(c, body, value.NewSym(c, symBegin))
	for i := start; i < n; i++ {
		value.Append(c, body, c.Copy(value.SeqGet(c, form, i)))
	}
	return body
}

func evalIf(c *value.Collector, env, form value.Value) value.Value {
	n := value.SeqLen(form)
	if n != 3 && n != 4 {
		return value.ErrArity(c, symIf, n-1, 3)
	}
	cond := Eval(c, env, value.SeqGet(c, form, 1))
	if cond.Tag() == value.TagErr {
		return cond
	}
	if truthy(cond) {
		return Eval(c, env, value.SeqGet(c, form, 2))
	}
	if n == 4 {
		return Eval(c, env, value.SeqGet(c, form, 3))
	}
	return value.NewNull(c)
}

// truthy: every value is true except Bool(false) and Null.
func truthy(v value.Value) bool {
	switch v.Tag() {
	case value.TagBool:
		return value.AsBool(v)
	case value.TagNull:
		return false
	default:
		return true
	}
}

func evalBegin(c *value.Collector, env, form value.Value) value.Value {
	n := value.SeqLen(form)
	result := value.NewNull(c)
	for i := 1; i < n; i++ {
		result = Eval(c, env, value.SeqGet(c, form, i))
		if result.Tag() == value.TagErr {
			return result
		}
	}
	return result
}

func evalQuote(c *value.Collector, form value.Value) value.Value {
	if value.SeqLen(form) != 2 {
		return value.ErrArity(c, symQuote, value.SeqLen(form)-1, 1)
	}
	return c.Copy(value.SeqGet(c, form, 1))
}

func evalSet(c *value.Collector, env, form value.Value) value.Value {
	if value.SeqLen(form) != 3 {
		return value.ErrArity(c, symSet, value.SeqLen(form)-1, 2)
	}
	sym := value.SeqGet(c, form, 1)
	if sym.Tag() != value.TagSym {
		return value.ErrType(c, symSet, 1, sym.Tag(), value.TypeSym.Name())
	}
	val := Eval(c, env, value.SeqGet(c, form, 2))
	if val.Tag() == value.TagErr {
		return val
	}
	existing := value.Lookup(c, env, sym)
	if existing.Tag() == value.TagErr {
		return existing
	}
	value.Bind(c, env, c.Copy(sym), c.Copy(val))
	return value.NewNull(c)
}

func evalAnd(c *value.Collector, env, form value.Value) value.Value {
	n := value.SeqLen(form)
	result := value.NewBool(c, true)
	for i := 1; i < n; i++ {
		result = Eval(c, env, value.SeqGet(c, form, i))
		if result.Tag() == value.TagErr || !truthy(result) {
			return result
		}
	}
	return result
}

func evalOr(c *value.Collector, env, form value.Value) value.Value {
	n := value.SeqLen(form)
	result := value.NewBool(c, false)
	for i := 1; i < n; i++ {
		result = Eval(c, env, value.SeqGet(c, form, i))
		if result.Tag() == value.TagErr || truthy(result) {
			return result
		}
	}
	return result
}

// evalApply evaluates the operator and every operand, then applies.
func evalApply(c *value.Collector, env, form value.Value) value.Value {
	n := value.SeqLen(form)
	fn := Eval(c, env, value.SeqGet(c, form, 0))
	if fn.Tag() == value.TagErr {
		return fn
	}
	args := value.NewSExpr(c)
	for i := 1; i < n; i++ {
		a := Eval(c, env, value.SeqGet(c, form, i))
		if a.Tag() == value.TagErr {
			c.UnsetRoot(args)
			return a
		}
		value.Append(c, args, a)
	}
	result := Apply(c, fn, args)
	c.SetRoot(result)
	c.UnsetRoot(args)
	return result
}

// Apply invokes fn (Lambda or Builtin) with already-evaluated args.
func Apply(c *value.Collector, fn, args value.Value) value.Value {
	switch fn.Tag() {
	case value.TagBuiltin:
		return value.BuiltinFn(fn)(c, args)
	case value.TagLambda:
		return applyLambda(c, fn, args)
	default:
		return value.ErrType(c, "apply", 0, fn.Tag(), value.TypeFunction.Name())
	}
}

func applyLambda(c *value.Collector, fn, args value.Value) value.Value {
	// LambdaParams/Body/Env each return a fresh copy (spec.md §6), isolating
	// the call from the lambda template. Each copy is only borrowed here:
	// once its contents are consumed it is unrooted so the collector can
	// reclaim it instead of leaking one copy per call.
	params := value.LambdaParams(c, fn)
	np := value.SeqLen(params)
	na := value.SeqLen(args)
	if np != na {
		c.UnsetRoot(params)
		return value.ErrArity(c, "lambda", na, np)
	}
	callEnv := value.NewDictEnclosing(c, value.LambdaEnv(c, fn))
	for i := 0; i < np; i++ {
		p := value.SeqGet(c, params, i)
		a := value.SeqGet(c, args, i)
		value.Bind(c, callEnv, c.Copy(p), c.Copy(a))
	}
	c.UnsetRoot(params)
	body := value.LambdaBody(c, fn)
	result := Eval(c, callEnv, body)
	c.UnsetRoot(body)
	// result may be a borrowed reference into callEnv (e.g. a parameter
	// returned unchanged); re-root it before releasing the call frame so a
	// collection on the way back up the call stack can't reclaim it, while
	// still letting callEnv itself (and anything else in the frame) become
	// unreachable once nothing outside the call references it. A returned
	// closure capturing callEnv stays alive through that reference instead.
	c.SetRoot(result)
	c.UnsetRoot(callEnv)
	return result
}
