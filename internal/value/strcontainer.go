package value

// EOFByte is returned by StrGet/StrPop when the index is out of range,
// standing in for the original C API's use of a negative sentinel.
const EOFByte = -1

func requireStr(v Value) *object {
	o := v.obj()
	switch o.tag {
	case TagStr, TagSym, TagErr:
		return o
	default:
		panic("value: string operation on non-string value")
	}
}

// StrLen returns the logical length in bytes.
func StrLen(v Value) int { return requireStr(v).count }

// StrGet returns the i'th byte, or EOFByte if i is out of range.
func StrGet(v Value, i int) int {
	o := requireStr(v)
	if i < 0 || i >= o.count {
		return EOFByte
	}
	return int(o.str.buf[i])
}

// StrSet overwrites the i'th byte. Out-of-range is a silent no-op — the
// same laxity the original scamseq_set/scamstr_set exhibit.
func StrSet(v Value, i int, b byte) {
	o := requireStr(v)
	if i < 0 || i >= o.count {
		return
	}
	o.str.buf[i] = b
}

// StrPop removes and returns the i'th byte, or EOFByte if out of range.
func StrPop(v Value, i int) int {
	o := requireStr(v)
	if i < 0 || i >= o.count {
		return EOFByte
	}
	b := o.str.buf[i]
	copy(o.str.buf[i:o.count-1], o.str.buf[i+1:o.count])
	o.count--
	if o.count > 0 {
		o.str.buf[o.count] = 0
	}
	return int(b)
}

// StrRemove deletes the bytes in [start, end). Out of range is a no-op.
func StrRemove(v Value, start, end int) {
	o := requireStr(v)
	if start < 0 || end > o.count || start > end {
		return
	}
	n := end - start
	copy(o.str.buf[start:o.count-n], o.str.buf[end:o.count])
	o.count -= n
	if o.count > 0 {
		o.str.buf[o.count] = 0
	}
}

// StrTruncate shortens the string to i bytes. Out of range is a no-op.
func StrTruncate(v Value, i int) {
	o := requireStr(v)
	if i < 0 || i > o.count {
		return
	}
	o.count = i
	if o.count > 0 {
		o.str.buf[o.count] = 0
	}
}

// StrSubstr returns a newly-allocated Str holding [start, end). Out of
// range yields Err.
func StrSubstr(c *Collector, v Value, start, end int) Value {
	o := requireStr(v)
	if start < 0 || end > o.count || start > end {
		return ErrRange(c)
	}
	return NewStr(c, string(o.str.buf[start:end]))
}

// StrConcat moves b's bytes into a, leaving b empty. b is not freed.
func StrConcat(a, b Value) {
	ao := requireStr(a)
	bo := requireStr(b)
	if bo.count == 0 {
		return
	}
	combined := ao.count + bo.count
	buf := make([]byte, combined+1)
	copy(buf, ao.str.buf[:ao.count])
	copy(buf[ao.count:], bo.str.buf[:bo.count])
	ao.str = strBuf{buf: buf, count: combined}
	bo.str = strBuf{}
}

// StrMap applies f to every byte of v in place.
func StrMap(v Value, f func(byte) byte) {
	o := requireStr(v)
	for i := 0; i < o.count; i++ {
		o.str.buf[i] = f(o.str.buf[i])
	}
}
