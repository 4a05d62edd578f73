// cmd/scam/main.go
package main

import (
	"fmt"
	"log"
	"os"

	"scam/internal/eval"
	"scam/internal/formatter"
	"scam/internal/lexer"
	"scam/internal/parser"
	"scam/internal/repl"
	"scam/internal/telemetry"
	"scam/internal/value"
)

const version = "0.1.0"

// commandAliases mirrors the teacher's cmd/sentra/main.go alias table: a
// single-letter shorthand for each subcommand.
var commandAliases = map[string]string{
	"r": "run",
	"i": "repl",
	"f": "fmt",
	"s": "serve",
}

func main() { os.Exit(run(os.Args[1:])) }

// run holds every bit of main's logic behind an exit code instead of a
// direct os.Exit, so cmd/scam's testscript golden tests (main_test.go) can
// invoke it in-process via testscript.RunMain.
func run(args []string) int {
	if len(args) == 0 {
		showUsage()
		return 0
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}
	rest := args[1:]

	switch cmd {
	case "--help", "-h", "help":
		if len(rest) > 0 {
			showCommandHelp(rest[0])
		} else {
			showUsage()
		}
	case "--version", "-v", "version":
		fmt.Printf("scam %s\n", version)
	case "run":
		if err := runCommand(rest); err != nil {
			fmt.Fprintf(os.Stderr, "scam run: %v\n", err)
			return 1
		}
	case "repl":
		replCommand(rest)
	case "fmt":
		if err := fmtCommand(rest); err != nil {
			fmt.Fprintf(os.Stderr, "scam fmt: %v\n", err)
			return 1
		}
	case "serve":
		if err := serveCommand(rest); err != nil {
			fmt.Fprintf(os.Stderr, "scam serve: %v\n", err)
			return 1
		}
	default:
		fmt.Fprintf(os.Stderr, "scam: unknown command %q\n\n", cmd)
		showUsage()
		return 1
	}
	return 0
}

// parseFlags does the teacher's hand-rolled os.Args switch rather than
// introducing a flag-parsing library: small, fixed flag sets per command.
func parseFlags(args []string, bools map[string]*bool, strs map[string]*string) []string {
	var positional []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if p, ok := bools[a]; ok {
			*p = true
			continue
		}
		if p, ok := strs[a]; ok && i+1 < len(args) {
			*p = args[i+1]
			i++
			continue
		}
		positional = append(positional, a)
	}
	return positional
}

func runCommand(args []string) error {
	var verbose bool
	positional := parseFlags(args, map[string]*bool{"-v": &verbose, "--verbose": &verbose}, nil)
	if len(positional) != 1 {
		return fmt.Errorf("usage: scam run <file> [-v]")
	}
	src, err := os.ReadFile(positional[0])
	if err != nil {
		return fmt.Errorf("%s: %w", positional[0], err)
	}

	c := value.NewCollector(0)
	defer c.Teardown()
	if verbose {
		rec, err := telemetry.Open("", "", true)
		if err == nil {
			c.SetObserver(rec)
			defer rec.Close()
		}
	}

	env := repl.NewEnv(c)
	lx := lexer.New(string(src))
	p := parser.New(c, lx.Tokens(), positional[0], string(src))
	forms, err := p.Parse()
	if err != nil {
		return err
	}
	for _, form := range forms {
		result := eval.Eval(c, env, form)
		c.SetRoot(result)
		if result.Tag() == value.TagErr {
			return fmt.Errorf("%s", value.Sprint(result))
		}
	}
	return nil
}

func replCommand(args []string) {
	var noColor bool
	parseFlags(args, map[string]*bool{"--no-color": &noColor}, nil)

	c := value.NewCollector(0)
	defer c.Teardown()
	env := repl.NewEnv(c)
	repl.Start(c, env, repl.Options{NoColor: noColor})
}

func fmtCommand(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: scam fmt <file>")
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	c := value.NewCollector(0)
	defer c.Teardown()
	lx := lexer.New(string(src))
	p := parser.New(c, lx.Tokens(), args[0], string(src))
	forms, err := p.Parse()
	if err != nil {
		return err
	}
	fmt.Print(formatter.Format(c, forms))
	return nil
}

func serveCommand(args []string) error {
	addr := ":4242"
	dsn := os.Getenv("SCAM_TELEMETRY_DSN")
	driver := os.Getenv("SCAM_TELEMETRY_DRIVER")
	var verbose bool
	parseFlags(args,
		map[string]*bool{"-v": &verbose, "--verbose": &verbose},
		map[string]*string{"--addr": &addr, "--telemetry-dsn": &dsn, "--telemetry-driver": &driver},
	)

	var newRecord func() value.Observer
	if dsn != "" {
		newRecord = func() value.Observer {
			rec, err := telemetry.Open(driver, dsn, verbose)
			if err != nil {
				log.Printf("scam serve: telemetry disabled: %v", err)
				rec, _ = telemetry.Open("", "", verbose)
			}
			return rec
		}
	}
	return repl.Serve(repl.ServerOptions{Addr: addr, Verbose: verbose, NewRecord: newRecord})
}

func showUsage() {
	fmt.Println(`scam - a small Lisp-family interpreter

Usage:
  scam run <file> [-v]         run a script
  scam repl [--no-color]       start an interactive REPL
  scam fmt <file>              print a canonically formatted script
  scam serve [--addr :4242]    serve a remote REPL over websockets
  scam version                 print the version
  scam help [command]          show this message, or help for one command

Aliases: r=run i=repl f=fmt s=serve`)
}

func showCommandHelp(cmd string) {
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}
	switch cmd {
	case "run":
		fmt.Println("scam run <file> [-v|--verbose]\n  Evaluate every top-level form in file in order.")
	case "repl":
		fmt.Println("scam repl [--no-color]\n  Start an interactive read-eval-print loop.")
	case "fmt":
		fmt.Println("scam fmt <file>\n  Print file reformatted into canonical style.")
	case "serve":
		fmt.Println("scam serve [--addr :4242] [--telemetry-dsn DSN] [--telemetry-driver NAME] [-v]\n  Serve one REPL environment per websocket connection.")
	default:
		fmt.Printf("scam: no help for %q\n", cmd)
	}
}
