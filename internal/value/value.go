package value

import (
	"fmt"
	"os"
)

// maxErrorBytes matches the original C implementation's MAX_ERROR_SIZE: an
// Err message is truncated at this many bytes, silently.
const maxErrorBytes = 100

// NewInt constructs a fresh root Int value.
func NewInt(c *Collector, n int64) Value {
	v := c.New(TagInt)
	v.obj().i = n
	return v
}

// NewDec constructs a fresh root Dec value.
func NewDec(c *Collector, d float64) Value {
	v := c.New(TagDec)
	v.obj().d = d
	return v
}

// NewBool constructs a fresh root Bool value.
func NewBool(c *Collector, b bool) Value {
	v := c.New(TagBool)
	if b {
		v.obj().i = 1
	}
	return v
}

// NewNull returns the collector's singleton Null value. Null is never
// stored as a dict key (Bind ignores Null keys) and is a no-op for the
// newline-terminating printer.
func NewNull(c *Collector) Value { return c.valueOf(c.nullHandle) }

// AsInt returns the payload of an Int value. Calling it on any other tag
// is a programmer error, per the core's contract (callers are expected to
// typecheck first).
func AsInt(v Value) int64 {
	if v.Tag() != TagInt {
		panic("value: AsInt on non-Int value")
	}
	return v.obj().i
}

// AsBool returns the payload of a Bool value.
func AsBool(v Value) bool {
	if v.Tag() != TagBool {
		panic("value: AsBool on non-Bool value")
	}
	return v.obj().i != 0
}

// AsDec returns v as a float64. Numeric coercion is one-way: calling this
// on an Int converts it to double; calling AsInt on a Dec is not defined.
func AsDec(v Value) float64 {
	switch v.Tag() {
	case TagDec:
		return v.obj().d
	case TagInt:
		return float64(v.obj().i)
	default:
		panic("value: AsDec on non-numeric value")
	}
}

// --- Str / Sym / Err construction -----------------------------------

func newStrLike(c *Collector, tag Tag, s []byte) Value {
	v := c.New(tag)
	o := v.obj()
	o.str = makeStrBuf(s)
	return v
}

func makeStrBuf(s []byte) strBuf {
	if len(s) == 0 {
		return strBuf{}
	}
	buf := make([]byte, len(s)+1) // NUL-terminated when nonempty, per §3
	copy(buf, s)
	return strBuf{buf: buf, count: len(s)}
}

// NewStr constructs a Str value, copying the provided bytes.
func NewStr(c *Collector, s string) Value { return newStrLike(c, TagStr, []byte(s)) }

// NewStrNoCopy constructs a Str value that takes ownership of buf; the
// caller must not retain or mutate buf afterward. The NUL terminator is
// appended in place when buf has spare capacity; otherwise append
// reallocates once to make room for it.
func NewStrNoCopy(c *Collector, buf []byte) Value {
	v := c.New(TagStr)
	if n := len(buf); n > 0 {
		v.obj().str = strBuf{buf: append(buf, 0), count: n}
	}
	return v
}

// NewStrFromChar constructs a single-byte Str, matching scamstr_from_char.
func NewStrFromChar(c *Collector, b byte) Value { return newStrLike(c, TagStr, []byte{b}) }

// NewSym constructs a Sym value.
func NewSym(c *Collector, s string) Value { return newStrLike(c, TagSym, []byte(s)) }

// NewErr constructs an Err value with a printf-style message, truncated at
// maxErrorBytes.
func NewErr(c *Collector, format string, args ...interface{}) Value {
	msg := fmt.Sprintf(format, args...)
	b := []byte(msg)
	if len(b) > maxErrorBytes {
		b = b[:maxErrorBytes]
	}
	return newStrLike(c, TagErr, b)
}

// ErrArity constructs the standardized arity-mismatch error.
func ErrArity(c *Collector, name string, got, expected int) Value {
	return NewErr(c, "'%s' got %d arg(s), expected %d", name, got, expected)
}

// ErrMinArity constructs the standardized minimum-arity error.
func ErrMinArity(c *Collector, name string, got, expected int) Value {
	return NewErr(c, "'%s' got %d arg(s), expected at least %d", name, got, expected)
}

// ErrType constructs the standardized type-mismatch error.
func ErrType(c *Collector, name string, pos int, got Tag, expected string) Value {
	return NewErr(c, "'%s' got unexpected type %s for argument %d, expected %s", name, got, pos, expected)
}

// ErrEOF constructs the standardized end-of-file error.
func ErrEOF(c *Collector) Value { return NewErr(c, "reached EOF while reading from a port") }

// ErrRange constructs the standardized out-of-range access error.
func ErrRange(c *Collector) Value { return NewErr(c, "attempted sequence access out of range") }

// ErrUnbound constructs the standardized unbound-variable error. name is
// included verbatim when the lookup key was a string/symbol.
func ErrUnbound(c *Collector, name string) Value {
	if name == "" {
		return NewErr(c, "unbound variable")
	}
	return NewErr(c, "unbound variable '%s'", name)
}

// AsStr returns the logical bytes of a Str/Sym/Err value as a string.
func AsStr(v Value) string {
	switch v.Tag() {
	case TagStr, TagSym, TagErr:
		o := v.obj()
		return string(o.str.buf[:o.str.count])
	default:
		panic("value: AsStr on non-string value")
	}
}

// --- Lambda / Builtin / Port -----------------------------------------

// NewLambda constructs a Lambda from a parameter List, a body SExpr and a
// captured Dict environment. Ownership of all three transfers to the
// lambda; they lose root status.
func NewLambda(c *Collector, params, body, env Value) Value {
	pending := c.newPending()
	c.UnsetRoot(params)
	c.UnsetRoot(body)
	c.UnsetRoot(env)
	o := pending.obj()
	o.lamParams, o.lamBody, o.lamEnv = params.h, body.h, env.h
	c.finishPending(pending, TagLambda)
	return pending
}

// LambdaParams returns a fresh copy of the lambda's parameter list,
// isolating the caller from accidental mutation of the template.
func LambdaParams(c *Collector, v Value) Value { return c.Copy(c.valueOf(v.obj().lamParams)) }

// LambdaBody returns a fresh copy of the lambda's body.
func LambdaBody(c *Collector, v Value) Value { return c.Copy(c.valueOf(v.obj().lamBody)) }

// LambdaEnv returns a fresh copy of the lambda's captured environment.
func LambdaEnv(c *Collector, v Value) Value { return c.Copy(c.valueOf(v.obj().lamEnv)) }

// NewBuiltin constructs a host-implemented function value. constFlag
// signals the evaluator that fn is pure and may be constant-folded.
func NewBuiltin(c *Collector, fn BuiltinFunc, constFlag bool) Value {
	v := c.New(TagBuiltin)
	o := v.obj()
	o.fn, o.constFlag = fn, constFlag
	return v
}

// BuiltinFn returns the callable behind a Builtin value.
func BuiltinFn(v Value) BuiltinFunc { return v.obj().fn }

// BuiltinIsConst reports whether a Builtin was registered as pure.
func BuiltinIsConst(v Value) bool { return v.obj().constFlag }

// NewPort wraps an open *os.File. A nil file constructs an already-closed
// port.
func NewPort(c *Collector, f *os.File) Value {
	v := c.New(TagPort)
	o := v.obj()
	o.file = f
	o.portOpen = f != nil
	return v
}

// PortFile returns the underlying file handle, or nil if closed.
func PortFile(v Value) *os.File {
	o := v.obj()
	if !o.portOpen {
		return nil
	}
	return o.file
}

// PortIsOpen reports the port's open/closed status.
func PortIsOpen(v Value) bool { return v.obj().portOpen }

// PortClose closes the underlying file and marks the port closed. Safe to
// call more than once.
func PortClose(v Value) {
	o := v.obj()
	if o.portOpen && o.file != nil {
		o.file.Close()
	}
	o.portOpen = false
}
