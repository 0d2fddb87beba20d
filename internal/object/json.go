package object

import (
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/es3vm/es3vm/internal/strs"
	"github.com/es3vm/es3vm/internal/values"
)

// Factory supplies the object/array constructors ExportJSON/ImportJSON
// need without importing internal/eval (which depends on this
// package, not the other way around).
type Factory struct {
	NewObject func() values.Object
	NewArray  func(length uint32) values.Object
}

// ExportJSON converts an interpreter Value into a host-side JSON
// document via github.com/tidwall/sjson, independent of and prior to
// any in-language JSON global (spec.md §4.2, out of scope for §1/§4.2
// built-ins; this is the host embedding bridge of SPEC_FULL.md's domain
// stack).
func ExportJSON(v values.Value) (string, error) {
	switch v.Kind() {
	case values.KindUndefined, values.KindNull:
		return "null", nil
	case values.KindBoolean:
		if v.Bool() {
			return "true", nil
		}
		return "false", nil
	case values.KindNumber:
		return strconv.FormatFloat(v.Num(), 'g', -1, 64), nil
	case values.KindString:
		return strconv.Quote(v.Str().MustUTF8()), nil
	case values.KindObject:
		return exportObject(v.Obj())
	default:
		return "null", nil
	}
}

// exportObject assembles a JSON object or array document with
// github.com/tidwall/sjson, growing it one property/element at a time
// via SetRaw so each value's own serialization (including nested
// objects) is reused unchanged.
func exportObject(obj values.Object) (string, error) {
	if arr, ok := obj.(*Array); ok {
		doc := "[]"
		n := arr.length()
		for i := uint32(0); i < n; i++ {
			elem, err := arr.Get(strs.New(itoa(i)))
			if err != nil {
				return "", err
			}
			elemJSON, err := ExportJSON(elem)
			if err != nil {
				return "", err
			}
			doc, err = sjson.SetRaw(doc, itoa(i), elemJSON)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	}
	doc := "{}"
	for _, name := range obj.PropertyNames() {
		v, err := obj.Get(name)
		if err != nil {
			return "", err
		}
		valJSON, err := ExportJSON(v)
		if err != nil {
			return "", err
		}
		doc, err = sjson.SetRaw(doc, jsonKey(name.MustUTF8()), valJSON)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

func jsonKey(s string) string {
	// sjson treats "." and "*" specially in paths; an object property
	// containing either must be escaped to round-trip correctly.
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '.' || s[i] == '*' || s[i] == '?' || s[i] == '\\' {
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

func itoa(n uint32) string {
	if n == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// ImportJSON parses a host JSON document via github.com/tidwall/gjson
// into an interpreter Value, using factory to build Array/plain Object
// instances.
func ImportJSON(doc string, factory Factory) (values.Value, error) {
	result := gjson.Parse(doc)
	return importResult(result, factory)
}

func importResult(r gjson.Result, factory Factory) (values.Value, error) {
	switch r.Type {
	case gjson.Null:
		return values.Null, nil
	case gjson.False:
		return values.False, nil
	case gjson.True:
		return values.True, nil
	case gjson.Number:
		return values.Number(r.Num), nil
	case gjson.String:
		return values.StringFromGo(r.Str), nil
	case gjson.JSON:
		if r.IsArray() {
			elems := r.Array()
			arr := factory.NewArray(uint32(len(elems)))
			for i, elem := range elems {
				ev, err := importResult(elem, factory)
				if err != nil {
					return values.Undefined, err
				}
				if err := arr.Put(strs.New(itoa(uint32(i))), ev, 0); err != nil {
					return values.Undefined, err
				}
			}
			return values.FromObject(arr), nil
		}
		obj := factory.NewObject()
		var putErr error
		r.ForEach(func(key, value gjson.Result) bool {
			ev, err := importResult(value, factory)
			if err != nil {
				putErr = err
				return false
			}
			if err := obj.Put(strs.New(key.String()), ev, 0); err != nil {
				putErr = err
				return false
			}
			return true
		})
		if putErr != nil {
			return values.Undefined, putErr
		}
		return values.FromObject(obj), nil
	default:
		return values.Undefined, nil
	}
}
