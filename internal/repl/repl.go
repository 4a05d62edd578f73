// Package repl is a line-oriented read-eval-print loop, grounded on the
// teacher's internal/repl/repl.go (bufio.Scanner over stdin, ">>> " prompt,
// an "exit" sentinel) but driving internal/eval.Eval directly against a
// Dict environment instead of recompiling a chunk for a bytecode VM.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"scam/internal/builtins"
	"scam/internal/eval"
	"scam/internal/lexer"
	"scam/internal/parser"
	"scam/internal/value"
)

const (
	prompt    = ">>> "
	exitWord  = "exit"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// Options configures a Start call.
type Options struct {
	In      io.Reader
	Out     io.Writer
	NoColor bool
}

// NewEnv builds a fresh global environment with every builtin registered,
// the same starting point `scam run` (cmd/scam/main.go) uses for a script.
func NewEnv(c *value.Collector) value.Value {
	env := value.NewDict(c)
	c.SetRoot(env)
	builtins.RegisterAll(c, env)
	return env
}

// Start runs the loop until stdin closes or the user types "exit". Each
// line is read, lexed, parsed as a single form, evaluated against env, and
// its result printed unless it is Null.
func Start(c *value.Collector, env value.Value, opts Options) {
	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	color := !opts.NoColor && isTTY(out)

	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, "Scam REPL | type 'exit' to quit")
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == exitWord {
			break
		}
		if line == "" {
			continue
		}
		evalLine(c, env, line, out, color)
	}
}

func evalLine(c *value.Collector, env value.Value, line string, out io.Writer, color bool) {
	lx := lexer.New(line)
	p := parser.New(c, lx.Tokens(), "<repl>", line)
	form, _, err := p.ParseOne()
	if err != nil {
		fmt.Fprintf(out, "%s\n", err)
		return
	}
	if form.Nil() {
		return
	}
	result := eval.Eval(c, env, form)
	c.SetRoot(result)
	if result.Tag() == value.TagErr && color {
		fmt.Fprintf(out, "%s%s%s\n", ansiRed, value.Sprint(result), ansiReset)
		return
	}
	if result.Tag() != value.TagNull {
		fmt.Fprintln(out, value.Sprint(result))
	}
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
