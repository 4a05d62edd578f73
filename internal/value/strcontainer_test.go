package value

import "testing"

func TestStrConcat(t *testing.T) {
	c := newTestCollector(t)
	a := NewStr(c, "foo")
	b := NewStr(c, "bar")

	StrConcat(a, b)

	if AsStr(a) != "foobar" {
		t.Fatalf("AsStr(a) = %q, want foobar", AsStr(a))
	}
	if StrLen(b) != 0 {
		t.Fatalf("b should be empty after concat, len=%d", StrLen(b))
	}
}

func TestStrGetSetPop(t *testing.T) {
	c := newTestCollector(t)
	s := NewStr(c, "abc")

	if StrGet(s, 1) != 'b' {
		t.Fatalf("get(1) = %c, want b", StrGet(s, 1))
	}
	if StrGet(s, 99) != EOFByte {
		t.Fatal("out-of-range get should yield EOFByte")
	}

	StrSet(s, 0, 'z')
	if AsStr(s) != "zbc" {
		t.Fatalf("after set: %q", AsStr(s))
	}

	popped := StrPop(s, 0)
	if popped != 'z' || AsStr(s) != "bc" {
		t.Fatalf("pop(0) = %c, remainder %q", popped, AsStr(s))
	}
}

func TestStrSubstrOutOfRange(t *testing.T) {
	c := newTestCollector(t)
	s := NewStr(c, "abc")
	got := StrSubstr(c, s, 1, 10)
	if got.Tag() != TagErr {
		t.Fatal("out-of-range substr must yield Err")
	}
	ok := StrSubstr(c, s, 1, 3)
	if AsStr(ok) != "bc" {
		t.Fatalf("substr(1,3) = %q", AsStr(ok))
	}
}

func TestStrMap(t *testing.T) {
	c := newTestCollector(t)
	s := NewStr(c, "abc")
	StrMap(s, func(b byte) byte { return b - 32 })
	if AsStr(s) != "ABC" {
		t.Fatalf("after map: %q", AsStr(s))
	}
}

func TestStrTruncateAndRemove(t *testing.T) {
	c := newTestCollector(t)
	s := NewStr(c, "abcdef")
	StrRemove(s, 1, 3)
	if AsStr(s) != "adef" {
		t.Fatalf("after remove(1,3): %q", AsStr(s))
	}
	StrTruncate(s, 2)
	if AsStr(s) != "ad" {
		t.Fatalf("after truncate(2): %q", AsStr(s))
	}
}
