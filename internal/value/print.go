package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Sprint renders v's canonical text form. It never appends a trailing
// newline; callers that want the REPL/println behavior should use Print.
func Sprint(v Value) string {
	c := v.c
	switch v.Tag() {
	case TagInt:
		return strconv.FormatInt(AsInt(v), 10)
	case TagDec:
		return fmt.Sprintf("%f", AsDec(v))
	case TagBool:
		if AsBool(v) {
			return "true"
		}
		return "false"
	case TagList:
		return bracket(c, v, "[", "]")
	case TagSExpr:
		return bracket(c, v, "(", ")")
	case TagStr:
		return "\"" + AsStr(v) + "\""
	case TagSym:
		return AsStr(v)
	case TagErr:
		return "Error: " + AsStr(v)
	case TagDict:
		return printDict(v)
	case TagLambda:
		return "<Scam function>"
	case TagBuiltin:
		return "<Scam builtin>"
	case TagPort:
		return "<Scam port>"
	case TagNull:
		return ""
	default:
		return ""
	}
}

func bracket(c *Collector, v Value, open, close string) string {
	n := SeqLen(v)
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = Sprint(SeqGet(c, v, i))
	}
	return open + strings.Join(parts, " ") + close
}

func printDict(v Value) string {
	c := v.c
	n := DictLen(v)
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		k := KeyAt(c, v, i)
		val := ValAt(c, v, i)
		parts[i] = Sprint(k) + ":" + Sprint(val)
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Print is the newline-terminating printer: a no-op for Null and for
// absent (zero) values.
func Print(v Value) {
	if v.Nil() || v.Tag() == TagNull {
		return
	}
	fmt.Println(Sprint(v))
}

// DebugString renders a value the way scamval_print_debug does in the
// original: tag name alongside the canonical text, useful when tracing
// the evaluator rather than showing a user a result.
func DebugString(v Value) string {
	if v.Nil() {
		return "<absent>"
	}
	return fmt.Sprintf("%s(%s)", v.Tag(), Sprint(v))
}
