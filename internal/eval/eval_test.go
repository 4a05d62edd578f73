package eval

import (
	"testing"

	"scam/internal/builtins"
	"scam/internal/value"
)

func newTestEnv(t *testing.T) (*value.Collector, value.Value) {
	t.Helper()
	c := value.NewCollector(1024)
	env := value.NewDict(c)
	c.SetRoot(env)
	builtins.RegisterAll(c, env)
	return c, env
}

func sym(c *value.Collector, s string) value.Value { return value.NewSym(c, s) }

func sexpr(c *value.Collector, vals ...value.Value) value.Value {
	return value.SExprFromVals(c, vals...)
}

func TestEvalSelfEvaluatingAtoms(t *testing.T) {
	c, env := newTestEnv(t)
	got := Eval(c, env, value.NewInt(c, 42))
	if value.AsInt(got) != 42 {
		t.Fatalf("Eval(42) = %v, want 42", value.Sprint(got))
	}
}

func TestEvalUnboundSymbolIsErr(t *testing.T) {
	c, env := newTestEnv(t)
	got := Eval(c, env, sym(c, "nope"))
	if got.Tag() != value.TagErr {
		t.Fatalf("Eval(nope) = %v, want Err", value.Sprint(got))
	}
}

func TestEvalDefineAndLookup(t *testing.T) {
	c, env := newTestEnv(t)
	form := sexpr(c, sym(c, "define"), sym(c, "x"), value.NewInt(c, 10))
	Eval(c, env, form)
	got := Eval(c, env, sym(c, "x"))
	if value.AsInt(got) != 10 {
		t.Fatalf("x = %v, want 10", value.Sprint(got))
	}
}

func TestEvalDefineFunctionSugar(t *testing.T) {
	c, env := newTestEnv(t)
	// (define (add a b) (+ a b))
	target := sexpr(c, sym(c, "add"), sym(c, "a"), sym(c, "b"))
	body := sexpr(c, sym(c, "+"), sym(c, "a"), sym(c, "b"))
	form := sexpr(c, sym(c, "define"), target, body)
	Eval(c, env, form)

	call := sexpr(c, sym(c, "add"), value.NewInt(c, 3), value.NewInt(c, 4))
	got := Eval(c, env, call)
	if value.AsInt(got) != 7 {
		t.Fatalf("(add 3 4) = %v, want 7", value.Sprint(got))
	}
}

func TestEvalIf(t *testing.T) {
	c, env := newTestEnv(t)
	form := sexpr(c, sym(c, "if"), value.NewBool(c, true), value.NewInt(c, 1), value.NewInt(c, 2))
	got := Eval(c, env, form)
	if value.AsInt(got) != 1 {
		t.Fatalf("(if true 1 2) = %v, want 1", value.Sprint(got))
	}

	form2 := sexpr(c, sym(c, "if"), value.NewBool(c, false), value.NewInt(c, 1), value.NewInt(c, 2))
	got2 := Eval(c, env, form2)
	if value.AsInt(got2) != 2 {
		t.Fatalf("(if false 1 2) = %v, want 2", value.Sprint(got2))
	}
}

func TestEvalIfNoElseReturnsNull(t *testing.T) {
	c, env := newTestEnv(t)
	form := sexpr(c, sym(c, "if"), value.NewBool(c, false), value.NewInt(c, 1))
	got := Eval(c, env, form)
	if got.Tag() != value.TagNull {
		t.Fatalf("(if false 1) = %v, want Null", value.Sprint(got))
	}
}

func TestEvalBeginReturnsLast(t *testing.T) {
	c, env := newTestEnv(t)
	form := sexpr(c, sym(c, "begin"), value.NewInt(c, 1), value.NewInt(c, 2), value.NewInt(c, 3))
	got := Eval(c, env, form)
	if value.AsInt(got) != 3 {
		t.Fatalf("(begin 1 2 3) = %v, want 3", value.Sprint(got))
	}
}

func TestEvalQuoteDoesNotEvaluate(t *testing.T) {
	c, env := newTestEnv(t)
	inner := sexpr(c, sym(c, "nope"), value.NewInt(c, 1))
	form := sexpr(c, sym(c, "quote"), inner)
	got := Eval(c, env, form)
	if got.Tag() != value.TagSExpr {
		t.Fatalf("(quote (nope 1)) = %v, want an unevaluated SExpr", value.Sprint(got))
	}
}

func TestEvalSetMutatesExistingBinding(t *testing.T) {
	c, env := newTestEnv(t)
	Eval(c, env, sexpr(c, sym(c, "define"), sym(c, "x"), value.NewInt(c, 1)))
	Eval(c, env, sexpr(c, sym(c, "set!"), sym(c, "x"), value.NewInt(c, 2)))
	got := Eval(c, env, sym(c, "x"))
	if value.AsInt(got) != 2 {
		t.Fatalf("x after set! = %v, want 2", value.Sprint(got))
	}
}

func TestEvalSetUnboundIsErr(t *testing.T) {
	c, env := newTestEnv(t)
	got := Eval(c, env, sexpr(c, sym(c, "set!"), sym(c, "nope"), value.NewInt(c, 2)))
	if got.Tag() != value.TagErr {
		t.Fatalf("(set! nope 2) = %v, want Err", value.Sprint(got))
	}
}

func TestEvalAndShortCircuits(t *testing.T) {
	c, env := newTestEnv(t)
	got := Eval(c, env, sexpr(c, sym(c, "and"), value.NewBool(c, false), sym(c, "boom")))
	if got.Tag() != value.TagBool || value.AsBool(got) {
		t.Fatalf("(and false boom) = %v, want false without evaluating boom", value.Sprint(got))
	}
}

func TestEvalOrShortCircuits(t *testing.T) {
	c, env := newTestEnv(t)
	got := Eval(c, env, sexpr(c, sym(c, "or"), value.NewBool(c, true), sym(c, "boom")))
	if !value.AsBool(got) {
		t.Fatalf("(or true boom) = %v, want true without evaluating boom", value.Sprint(got))
	}
}

func TestEvalLambdaAndApply(t *testing.T) {
	c, env := newTestEnv(t)
	params := value.NewList(c)
	value.Append(c, params, sym(c, "x"))
	lambdaForm := sexpr(c, sym(c, "lambda"), params, sexpr(c, sym(c, "+"), sym(c, "x"), value.NewInt(c, 1)))
	fn := Eval(c, env, lambdaForm)
	if fn.Tag() != value.TagLambda {
		t.Fatalf("lambda literal evaluated to %v, want Lambda", value.Sprint(fn))
	}

	args := value.NewSExpr(c)
	value.Append(c, args, value.NewInt(c, 41))
	got := Apply(c, fn, args)
	if value.AsInt(got) != 42 {
		t.Fatalf("((lambda (x) (+ x 1)) 41) = %v, want 42", value.Sprint(got))
	}
}

func TestClosureCapturesDefiningEnvByReference(t *testing.T) {
	c, env := newTestEnv(t)
	// (define x 1)
	Eval(c, env, sexpr(c, sym(c, "define"), sym(c, "x"), value.NewInt(c, 1)))
	// (define get-x (lambda () x))
	Eval(c, env, sexpr(c, sym(c, "define"), sym(c, "get-x"),
		sexpr(c, sym(c, "lambda"), value.NewList(c), sym(c, "x"))))
	// (set! x 2) — mutates the shared defining environment.
	Eval(c, env, sexpr(c, sym(c, "set!"), sym(c, "x"), value.NewInt(c, 2)))

	fn := Eval(c, env, sym(c, "get-x"))
	got := Apply(c, fn, value.NewSExpr(c))
	if value.AsInt(got) != 2 {
		t.Fatalf("get-x after set! = %v, want 2 (closures see later mutations of their captured env)", value.Sprint(got))
	}
}

func TestLambdaCallFrameDoesNotPersistAcrossCalls(t *testing.T) {
	c, env := newTestEnv(t)
	// (define counter (lambda (n) (begin (set! n (+ n 1)) n)))
	params := value.NewList(c)
	value.Append(c, params, sym(c, "n"))
	body := sexpr(c, sym(c, "begin"),
		sexpr(c, sym(c, "set!"), sym(c, "n"), sexpr(c, sym(c, "+"), sym(c, "n"), value.NewInt(c, 1))),
		sym(c, "n"))
	Eval(c, env, sexpr(c, sym(c, "define"), sym(c, "counter"),
		sexpr(c, sym(c, "lambda"), params, body)))

	fn := Eval(c, env, sym(c, "counter"))
	first := Apply(c, fn, sexpr(c, value.NewInt(c, 5)))
	if value.AsInt(first) != 6 {
		t.Fatalf("first call = %v, want 6", value.Sprint(first))
	}
	// A fresh call frame each time: calling again with the same literal
	// argument must not observe the first call's mutation of its parameter.
	second := Apply(c, fn, sexpr(c, value.NewInt(c, 5)))
	if value.AsInt(second) != 6 {
		t.Fatalf("second call = %v, want 6 again (no cross-call state)", value.Sprint(second))
	}
}

// TestDictBindMutatesTheBoundVariable is spec.md §8's end-to-end scenario
// #3 run through the evaluator: (define d (dict)) (dict-bind d "a" 1)
// (dict-bind d "a" 2) d must yield a dict holding {"a":2}, not an empty
// dict — dict-bind has to mutate the very container env binds to the
// symbol "d", not a copy handed back by a prior lookup.
func TestDictBindMutatesTheBoundVariable(t *testing.T) {
	c, env := newTestEnv(t)

	defineD := sexpr(c, sym(c, "define"), sym(c, "d"), sexpr(c, sym(c, "dict")))
	if r := Eval(c, env, defineD); r.Tag() == value.TagErr {
		t.Fatalf("(define d (dict)) = %s", value.Sprint(r))
	}

	bind1 := sexpr(c, sym(c, "dict-bind"), sym(c, "d"), value.NewStr(c, "a"), value.NewInt(c, 1))
	if r := Eval(c, env, bind1); r.Tag() == value.TagErr {
		t.Fatalf("(dict-bind d \"a\" 1) = %s", value.Sprint(r))
	}

	bind2 := sexpr(c, sym(c, "dict-bind"), sym(c, "d"), value.NewStr(c, "a"), value.NewInt(c, 2))
	if r := Eval(c, env, bind2); r.Tag() == value.TagErr {
		t.Fatalf("(dict-bind d \"a\" 2) = %s", value.Sprint(r))
	}

	got := Eval(c, env, sym(c, "d"))
	if got.Tag() != value.TagDict {
		t.Fatalf("d = %s, want a Dict", value.Sprint(got))
	}
	if value.DictLen(got) != 1 {
		t.Fatalf("len(d) = %d, want 1", value.DictLen(got))
	}
	if value.Sprint(got) != `{"a":2}` {
		t.Fatalf("d = %s, want {\"a\":2}", value.Sprint(got))
	}
}

func TestEvalPropagatesErrFromSubexpression(t *testing.T) {
	c, env := newTestEnv(t)
	form := sexpr(c, sym(c, "+"), sym(c, "undefined-var"), value.NewInt(c, 1))
	got := Eval(c, env, form)
	if got.Tag() != value.TagErr {
		t.Fatalf("(+ undefined-var 1) = %v, want Err", value.Sprint(got))
	}
}

func TestApplyNonFunctionIsTypeErr(t *testing.T) {
	c, env := newTestEnv(t)
	_ = env
	got := Apply(c, value.NewInt(c, 1), value.NewSExpr(c))
	if got.Tag() != value.TagErr {
		t.Fatalf("Apply(1, ()) = %v, want Err", value.Sprint(got))
	}
}

func TestEvalLambdaArityMismatch(t *testing.T) {
	c, env := newTestEnv(t)
	params := value.NewList(c)
	value.Append(c, params, sym(c, "x"))
	value.Append(c, params, sym(c, "y"))
	fn := Eval(c, env, sexpr(c, sym(c, "lambda"), params, sym(c, "x")))
	got := Apply(c, fn, sexpr(c, value.NewInt(c, 1)))
	if got.Tag() != value.TagErr {
		t.Fatalf("calling a 2-arg lambda with 1 arg = %v, want Err", value.Sprint(got))
	}
}
