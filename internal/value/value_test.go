package value

import "testing"

func newTestCollector(t *testing.T) *Collector {
	t.Helper()
	c := NewCollector(64)
	t.Cleanup(c.Teardown)
	return c
}

func TestScalarConstructors(t *testing.T) {
	c := newTestCollector(t)

	i := NewInt(c, 42)
	if AsInt(i) != 42 {
		t.Fatalf("AsInt = %d, want 42", AsInt(i))
	}
	if !i.IsRoot() {
		t.Fatal("freshly constructed Int should be a root")
	}

	d := NewDec(c, 3.5)
	if AsDec(d) != 3.5 {
		t.Fatalf("AsDec = %f, want 3.5", AsDec(d))
	}

	// as_dec on an Int coerces; as_int is undefined on Dec and not tested here.
	if AsDec(i) != 42.0 {
		t.Fatalf("AsDec(Int) = %f, want 42.0", AsDec(i))
	}

	b := NewBool(c, true)
	if !AsBool(b) {
		t.Fatal("AsBool(true) = false")
	}
}

func TestNullNeverPrintedAndNeverRoot(t *testing.T) {
	c := newTestCollector(t)
	n := NewNull(c)
	if n.IsRoot() {
		t.Fatal("Null must never be reported as a root (scamnull clears is_root)")
	}
	if got := Sprint(n); got != "" {
		t.Fatalf("Sprint(Null) = %q, want empty", got)
	}
}

func TestCopyIsEqualAndDistinctRoot(t *testing.T) {
	c := newTestCollector(t)
	orig := NewStr(c, "hello")
	cp := c.Copy(orig)

	if !Eq(orig, cp) {
		t.Fatal("copy must be structurally equal to the original")
	}
	if !cp.IsRoot() {
		t.Fatal("copy must be a fresh root")
	}
	if cp.handle() == orig.handle() {
		t.Fatal("copy must be a distinct object")
	}
}

func TestCopyPreservesPrintedForm(t *testing.T) {
	c := newTestCollector(t)
	orig := NewList(c)
	Append(c, orig, NewInt(c, 1))
	Append(c, orig, NewDec(c, 2.0))
	Append(c, orig, NewInt(c, 3))

	cp := c.Copy(orig)
	if Sprint(cp) != Sprint(orig) {
		t.Fatalf("print(copy(v)) = %q, want %q", Sprint(cp), Sprint(orig))
	}
}

func TestTypecheckAndNarrowest(t *testing.T) {
	c := newTestCollector(t)
	i := NewInt(c, 1)
	d := NewDec(c, 1.0)
	s := NewStr(c, "x")

	if !Typecheck(i, TypeNum) || !Typecheck(d, TypeNum) {
		t.Fatal("Int and Dec must typecheck as Num")
	}
	if Typecheck(s, TypeNum) {
		t.Fatal("Str must not typecheck as Num")
	}
	if !Typecheck(s, TypeAny) || !Typecheck(i, TypeAny) {
		t.Fatal("everything typechecks as Any")
	}

	if Narrowest(i, d) != TypeNum {
		t.Fatalf("narrowest(Int, Dec) = %v, want Num", Narrowest(i, d))
	}
	if Narrowest(i, i) != TypeInt {
		t.Fatalf("narrowest(Int, Int) = %v, want Int", Narrowest(i, i))
	}
	if Narrowest(i, s) != TypeAny {
		t.Fatalf("narrowest(Int, Str) = %v, want Any", Narrowest(i, s))
	}
}

func TestNarrowestCommutativeAndAssociative(t *testing.T) {
	c := newTestCollector(t)
	vals := []Value{NewInt(c, 1), NewDec(c, 1), NewStr(c, "a"), NewList(c), NewBool(c, true)}
	for _, a := range vals {
		for _, b := range vals {
			if Narrowest(a, b) != Narrowest(b, a) {
				t.Fatalf("narrowest not commutative for %s/%s", a.Tag(), b.Tag())
			}
			for _, d := range vals {
				left := narrowestOfSets(Narrowest(a, b), bitOf(d.Tag()))
				right := narrowestOfSets(bitOf(a.Tag()), Narrowest(b, d))
				if left != right {
					t.Fatalf("narrowest not associative for %s/%s/%s", a.Tag(), b.Tag(), d.Tag())
				}
			}
		}
	}
}

func TestErrMessageTruncation(t *testing.T) {
	c := newTestCollector(t)
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}
	e := NewErr(c, "%s", string(long))
	if StrLen(e) != maxErrorBytes {
		t.Fatalf("Err message length = %d, want %d", StrLen(e), maxErrorBytes)
	}
}

func TestErrHelpers(t *testing.T) {
	c := newTestCollector(t)
	if got := Sprint(ErrArity(c, "foo", 1, 2)); got != "Error: 'foo' got 1 arg(s), expected 2" {
		t.Fatalf("ErrArity = %q", got)
	}
	if got := Sprint(ErrUnbound(c, "x")); got != "Error: unbound variable 'x'" {
		t.Fatalf("ErrUnbound = %q", got)
	}
	if got := Sprint(ErrRange(c)); got != "Error: attempted sequence access out of range" {
		t.Fatalf("ErrRange = %q", got)
	}
}
