// Package formatter renders parsed Scam forms back into canonical source
// text, grounded on the teacher's internal/formatter/formatter.go: a
// Formatter struct accumulating into a strings.Builder with an indent
// counter, walking an AST node-kind switch and inserting blank lines
// between top-level definitions. Scam's parser produces value.Value trees
// rather than a separate Stmt/Expr AST, so the switch here is on SExpr head
// symbols instead of Go struct types, but the shape — indent tracking,
// one formatForm per node kind, a blank-line heuristic between top-level
// defines — is the same.
package formatter

import (
	"strings"

	"scam/internal/value"
)

const maxInlineWidth = 60

// Formatter accumulates formatted source text. Zero value is unusable; use
// New.
type Formatter struct {
	c         *value.Collector
	indent    int
	indentStr string
	output    strings.Builder
}

// New builds a Formatter using a 2-space indent, matching the general
// compactness of Scam's parenthesized syntax (narrower than the teacher's
// 4-space default, since Lisp-family nesting runs deeper per line).
func New(c *value.Collector) *Formatter {
	return &Formatter{c: c, indentStr: "  "}
}

// Format renders every top-level form in order, inserting a blank line
// before and after every top-level `define` form (between two forms
// whenever either one is a define), the way the teacher's formatter
// separates function definitions.
func Format(c *value.Collector, forms []value.Value) string {
	f := New(c)
	for i, form := range forms {
		f.writeIndent()
		f.formatForm(form)
		f.output.WriteString("\n")
		if i < len(forms)-1 && f.needsBlankLine(form, forms[i+1]) {
			f.output.WriteString("\n")
		}
	}
	return f.output.String()
}

func (f *Formatter) needsBlankLine(curr, next value.Value) bool {
	return f.headSymbol(curr) == "define" || f.headSymbol(next) == "define"
}

func (f *Formatter) headSymbol(v value.Value) string {
	if v.Tag() != value.TagSExpr || value.SeqLen(v) == 0 {
		return ""
	}
	head := value.SeqGet(f.c, v, 0)
	if head.Tag() != value.TagSym {
		return ""
	}
	return value.AsStr(head)
}

func (f *Formatter) writeIndent() {
	f.output.WriteString(strings.Repeat(f.indentStr, f.indent))
}

// formatForm writes v's canonical text. Atoms render with value.Sprint
// unchanged (that already is the canonical atom form); SExpr/List/Dict
// break onto multiple indented lines only when the inline rendering would
// exceed maxInlineWidth, keeping small forms compact.
func (f *Formatter) formatForm(v value.Value) {
	switch v.Tag() {
	case value.TagSExpr:
		f.formatSeq(v, "(", ")")
	case value.TagList:
		f.formatSeq(v, "[", "]")
	case value.TagDict:
		f.formatDict(v)
	default:
		f.output.WriteString(value.Sprint(v))
	}
}

func (f *Formatter) formatSeq(v value.Value, open, close string) {
	inline := value.Sprint(v)
	if len(inline) <= maxInlineWidth || !strings.ContainsRune(inline, ' ') {
		f.output.WriteString(inline)
		return
	}
	n := value.SeqLen(v)
	f.output.WriteString(open)
	f.output.WriteString("\n")
	f.indent++
	for i := 0; i < n; i++ {
		f.writeIndent()
		f.formatForm(value.SeqGet(f.c, v, i))
		f.output.WriteString("\n")
	}
	f.indent--
	f.writeIndent()
	f.output.WriteString(close)
}

func (f *Formatter) formatDict(v value.Value) {
	inline := value.Sprint(v)
	if len(inline) <= maxInlineWidth {
		f.output.WriteString(inline)
		return
	}
	n := value.DictLen(v)
	f.output.WriteString("{\n")
	f.indent++
	for i := 0; i < n; i++ {
		f.writeIndent()
		f.formatForm(value.KeyAt(f.c, v, i))
		f.output.WriteString(": ")
		f.formatForm(value.ValAt(f.c, v, i))
		f.output.WriteString("\n")
	}
	f.indent--
	f.writeIndent()
	f.output.WriteString("}")
}
