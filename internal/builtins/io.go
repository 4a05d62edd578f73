package builtins

import (
	"fmt"
	"os"

	"scam/internal/value"
)

func registerIO(c *value.Collector, env value.Value) {
	Register(c, env, "print", builtinPrint, false)
	Register(c, env, "display", builtinDisplay, false)
	Register(c, env, "open-port", builtinOpenPort, false)
	Register(c, env, "close-port", builtinClosePort, false)
	Register(c, env, "read-line", builtinReadLine, false)
}

// builtinPrint renders every argument with the canonical newline-terminating
// printer and returns Null, matching value.Print's contract.
func builtinPrint(c *value.Collector, args value.Value) value.Value {
	for i := 0; i < nargs(args); i++ {
		value.Print(arg(c, args, i))
	}
	return value.NewNull(c)
}

// builtinDisplay writes without the trailing newline, useful for prompts.
func builtinDisplay(c *value.Collector, args value.Value) value.Value {
	for i := 0; i < nargs(args); i++ {
		fmt.Print(value.Sprint(arg(c, args, i)))
	}
	return value.NewNull(c)
}

func builtinOpenPort(c *value.Collector, args value.Value) value.Value {
	if e := checkArity(c, "open-port", args, 1); isErr(e) {
		return e
	}
	path, e := requireStrArg(c, "open-port", args, 0)
	if isErr(e) {
		return e
	}
	f, err := os.Open(value.AsStr(path))
	if err != nil {
		return value.NewErr(c, "could not open '%s': %v", value.AsStr(path), err)
	}
	return value.NewPort(c, f)
}

func builtinClosePort(c *value.Collector, args value.Value) value.Value {
	if e := checkArity(c, "close-port", args, 1); isErr(e) {
		return e
	}
	p := arg(c, args, 0)
	if p.Tag() != value.TagPort {
		return value.ErrType(c, "close-port", 0, p.Tag(), value.TypePort.Name())
	}
	value.PortClose(p)
	return value.NewNull(c)
}

func builtinReadLine(c *value.Collector, args value.Value) value.Value {
	if e := checkArity(c, "read-line", args, 1); isErr(e) {
		return e
	}
	p := arg(c, args, 0)
	if p.Tag() != value.TagPort {
		return value.ErrType(c, "read-line", 0, p.Tag(), value.TypePort.Name())
	}
	return value.ReadLine(c, p)
}
