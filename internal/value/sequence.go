package value

import "golang.org/x/exp/slices"

const (
	seqInitialCap = 5
	seqGrowFactor = 2
)

// NewList constructs an empty List.
func NewList(c *Collector) Value { return c.New(TagList) }

// NewSExpr constructs an empty SExpr.
func NewSExpr(c *Collector) Value { return c.New(TagSExpr) }

// SExprFromVals assembles an SExpr from pre-constructed children,
// transferring root status from each child to the new parent — the
// parser's main tool for building expression nodes.
func SExprFromVals(c *Collector, vals ...Value) Value {
	v := c.New(TagSExpr)
	o := v.obj()
	o.elems = make([]Handle, len(vals))
	for i, cv := range vals {
		c.UnsetRoot(cv)
		o.elems[i] = cv.h
	}
	o.cap = len(vals)
	return v
}

func requireSeq(v Value) *object {
	o := v.obj()
	if o.tag != TagList && o.tag != TagSExpr {
		panic("value: sequence operation on non-sequence value")
	}
	return o
}

// SeqLen returns the number of elements in a List or SExpr.
func SeqLen(v Value) int { return len(requireSeq(v).elems) }

// SeqGet borrows the i'th element without transferring ownership. An
// out-of-range borrow is a programmer error.
func SeqGet(c *Collector, v Value, i int) Value {
	o := requireSeq(v)
	return c.valueOf(o.elems[i])
}

// seqGrow matches the original's scamseq_grow: capacity is zero initially,
// the first growth becomes max(seqInitialCap, required), and subsequent
// growths double, still bounded below by required. It actually reallocates
// the backing array to the new capacity (copying the live elements across)
// rather than only updating the bookkeeping field, so o.cap governs a real
// allocation instead of being cosmetic next to slices.Insert/Delete's own
// growth decisions.
func seqGrow(o *object, minNew int) {
	if o.cap >= minNew {
		return
	}
	newCap := o.cap
	if newCap == 0 {
		newCap = seqInitialCap
	}
	for newCap < minNew {
		newCap *= seqGrowFactor
	}
	grown := make([]Handle, len(o.elems), newCap)
	copy(grown, o.elems)
	o.elems = grown
	o.cap = newCap
}

// seqResize reallocates the backing array to exactly newCap (never below
// the current length), used by Concat so the final append sequence never
// over-allocates.
func seqResize(o *object, newCap int) {
	if newCap < len(o.elems) {
		newCap = len(o.elems)
	}
	grown := make([]Handle, len(o.elems), newCap)
	copy(grown, o.elems)
	o.elems = grown
	o.cap = newCap
}

// Insert inserts v at index i, taking ownership (clearing its root flag).
// seqGrow pre-allocates the backing array to o.cap before the shift, so
// slices.Insert's own growth path is never exercised — o.cap is the one
// true capacity governing this container's allocations.
func Insert(c *Collector, seq Value, i int, v Value) {
	o := requireSeq(seq)
	c.UnsetRoot(v)
	seqGrow(o, len(o.elems)+1)
	o.elems = slices.Insert(o.elems, i, v.h)
}

// Append inserts v at the end of seq.
func Append(c *Collector, seq Value, v Value) { Insert(c, seq, SeqLen(seq), v) }

// Prepend inserts v at the front of seq.
func Prepend(c *Collector, seq Value, v Value) { Insert(c, seq, 0, v) }

// Pop removes and returns the i'th element, shifting subsequent elements
// down. The returned value becomes a root. An out-of-range pop yields an
// Err instead of panicking, matching the core's "fallible operations
// return a usable value" contract.
func Pop(c *Collector, seq Value, i int) Value {
	o := requireSeq(seq)
	if i < 0 || i >= len(o.elems) {
		return ErrRange(c)
	}
	h := o.elems[i]
	o.elems = slices.Delete(o.elems, i, i+1)
	ret := c.valueOf(h)
	c.SetRoot(ret)
	return ret
}

// Delete removes the i'th element and drops it (pop + no-op on the
// result, leaving it for the next collection).
func Delete(c *Collector, seq Value, i int) {
	v := Pop(c, seq, i)
	c.UnsetRoot(v)
}

// Concat moves every element of b into a in order, leaving b empty; b
// itself is not freed. Resizes a to its final length before transferring,
// per §4.2.
func Concat(c *Collector, a, b Value) {
	bo := requireSeq(b)
	if len(bo.elems) == 0 {
		return
	}
	ao := requireSeq(a)
	seqResize(ao, len(ao.elems)+len(bo.elems))
	for SeqLen(b) > 0 {
		Append(c, a, Pop(c, b, 0))
	}
}

// Subseq returns a new sequence of the same tag containing deep copies of
// the elements in [start, end). Out-of-range yields Err.
func Subseq(c *Collector, seq Value, start, end int) Value {
	o := requireSeq(seq)
	n := len(o.elems)
	if start < 0 || end > n || start > end {
		return ErrRange(c)
	}
	ret := c.New(seq.Tag())
	for i := start; i < end; i++ {
		Append(c, ret, c.Copy(SeqGet(c, seq, i)))
	}
	return ret
}

// SeqNarrowestType reduces the element tags of a non-empty sequence
// pairwise under Narrowest; an empty sequence yields TypeAny.
func SeqNarrowestType(v Value) Type {
	o := requireSeq(v)
	if len(o.elems) == 0 {
		return TypeAny
	}
	c := v.c
	acc := bitOf(c.valueOf(o.elems[0]).Tag())
	for _, h := range o.elems[1:] {
		acc = narrowestOfSets(acc, bitOf(c.valueOf(h).Tag()))
	}
	return acc
}
