package object

import (
	"strconv"

	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

// Array is the Array exotic object of ECMA-262 §15.4.5: a Base object
// whose "length" property is kept in sync with its own integer-indexed
// properties per the [[Put]] override in §15.4.5.1.
type Array struct {
	*Base
}

// NewArray creates an Array with the given prototype and initial length.
func NewArray(proto values.Object, length uint32) *Array {
	a := &Array{Base: New("Array", proto)}
	a.Base.defineOwn(strs.New("length"), values.Number(float64(length)), values.DontEnum)
	return a
}

func (a *Array) length() uint32 {
	v, _ := a.Base.Get(strs.New("length"))
	n, _ := values.ToUint32(v)
	return n
}

func (a *Array) setLength(n uint32) {
	if p, _ := a.Base.findOwn(strs.New("length")); p != nil {
		p.value = values.Number(float64(n))
		return
	}
	a.Base.defineOwn(strs.New("length"), values.Number(float64(n)), values.DontEnum)
}

// arrayIndex parses name as a valid array index per §15.4 ("ToString(ToUint32(n))
// equals n and n != 2^32-1"), returning (index, true) or (_, false).
func arrayIndex(name *strs.String) (uint32, bool) {
	s := name.MustUTF8()
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	if strconv.FormatUint(n, 10) != s {
		return 0, false
	}
	if n == 4294967295 {
		return 0, false
	}
	return uint32(n), true
}

// Put implements the Array [[Put]] override: writing index i extends
// length to i+1 when needed; writing "length" directly truncates
// (deletes indices >= the new length), per ECMA-262 §15.4.5.1.
func (a *Array) Put(name *strs.String, v values.Value, attr values.PropAttr) error {
	if idx, ok := arrayIndex(name); ok {
		if err := a.Base.Put(name, v, attr); err != nil {
			return err
		}
		if idx >= a.length() {
			a.setLength(idx + 1)
		}
		return nil
	}
	if name.MustUTF8() == "length" {
		newLen, err := values.ToUint32(v)
		if err != nil {
			return err
		}
		oldLen := a.length()
		if newLen < oldLen {
			for i := newLen; i < oldLen; i++ {
				_, _ = a.Base.Delete(strs.New(strconv.FormatUint(uint64(i), 10)))
			}
		}
		a.setLength(newLen)
		return nil
	}
	return a.Base.Put(name, v, attr)
}
