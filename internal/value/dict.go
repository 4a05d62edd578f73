package value

// NewDict constructs an empty Dict with no enclosing scope. The same
// representation serves both a user dictionary and a lexical environment
// — the parser/evaluator only ever see a nested chain of Dicts.
func NewDict(c *Collector) Value { return NewDictEnclosing(c, Value{}) }

// NewDictEnclosing constructs an empty Dict whose enclosing scope is
// enclosing (the zero Value for none — the global environment).
func NewDictEnclosing(c *Collector, enclosing Value) Value {
	pending := c.newPending()
	keys := NewList(c)
	vals := NewList(c)
	c.UnsetRoot(keys)
	c.UnsetRoot(vals)
	if !enclosing.Nil() {
		c.UnsetRoot(enclosing)
	}
	o := pending.obj()
	o.dKeys, o.dVals = keys.h, vals.h
	if !enclosing.Nil() {
		o.dEnclosing = enclosing.h
	}
	c.finishPending(pending, TagDict)
	return pending
}

func requireDict(v Value) *object {
	o := v.obj()
	if o.tag != TagDict {
		panic("value: dict operation on non-dict value")
	}
	return o
}

func dictKeysList(v Value) Value { return v.c.valueOf(requireDict(v).dKeys) }
func dictValsList(v Value) Value { return v.c.valueOf(requireDict(v).dVals) }

// DictLen returns the number of bindings in d's local scope (not counting
// its enclosing chain).
func DictLen(v Value) int { return SeqLen(dictKeysList(v)) }

// DictEnclosing returns d's parent scope, or the zero Value if d is the
// global environment.
func DictEnclosing(v Value) Value {
	h := requireDict(v).dEnclosing
	if h == 0 {
		return Value{}
	}
	return v.c.valueOf(h)
}

// unbindableKey reports whether k's tag may never be used as a dict key:
// Port, Lambda, Builtin and Null bindings are silently ignored.
func unbindableKey(k Value) bool {
	switch k.Tag() {
	case TagPort, TagLambda, TagBuiltin, TagNull:
		return true
	default:
		return false
	}
}

// Bind inserts or updates a key/value pair. If k's type is unbindable the
// call is silently ignored. Otherwise a linear scan by structural
// equality looks for an existing key — the first equal key wins — and
// replaces its value (the old value loses root status); on a miss both k
// and v are appended. Ownership of both transfers to the dict.
func Bind(c *Collector, d, k, v Value) {
	if unbindableKey(k) {
		return
	}
	keys := dictKeysList(d)
	vals := dictValsList(d)
	n := SeqLen(keys)
	for i := 0; i < n; i++ {
		if Eq(SeqGet(c, keys, i), k) {
			old := SeqGet(c, vals, i)
			c.UnsetRoot(old)
			replaceAt(c, vals, i, v)
			return
		}
	}
	Append(c, keys, k)
	Append(c, vals, v)
}

// replaceAt installs v at index i of seq without shifting, clearing v's
// root flag. It mirrors scamseq_replace: obliterate the old slot (already
// unrooted by the caller) and install the new value.
func replaceAt(c *Collector, seq Value, i int, v Value) {
	c.UnsetRoot(v)
	o := requireSeq(seq)
	o.elems[i] = v.h
}

// Lookup scans d's local entries; on a miss it recurses into the
// enclosing dict; on a terminal miss it returns an Err whose message
// includes the key name when the key is a string-like value. The match
// is returned borrowed, exactly as scamdict_lookup does — callers that
// need an isolated copy (dict-lookup, Apply's argument binding, ...)
// copy explicitly; mutating the returned value in place (as dict-bind
// does when a symbol resolves to a container) must reach the binding
// itself.
func Lookup(c *Collector, d, k Value) Value {
	keys := dictKeysList(d)
	vals := dictValsList(d)
	n := SeqLen(keys)
	for i := 0; i < n; i++ {
		if Eq(SeqGet(c, keys, i), k) {
			return SeqGet(c, vals, i)
		}
	}
	if enc := DictEnclosing(d); !enc.Nil() {
		return Lookup(c, enc, k)
	}
	name := ""
	switch k.Tag() {
	case TagStr, TagSym, TagErr:
		name = AsStr(k)
	}
	return ErrUnbound(c, name)
}

// Keys returns a borrowed reference to d's local key list.
func Keys(v Value) Value { return dictKeysList(v) }

// Vals returns a borrowed reference to d's local value list.
func Vals(v Value) Value { return dictValsList(v) }

// KeyAt borrows the i'th local key.
func KeyAt(c *Collector, d Value, i int) Value { return SeqGet(c, dictKeysList(d), i) }

// ValAt borrows the i'th local value.
func ValAt(c *Collector, d Value, i int) Value { return SeqGet(c, dictValsList(d), i) }
