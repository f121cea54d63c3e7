// Package jsondoc holds the JSON value model used for prompt documents:
// classification, path addressing, immutable updates and the codec.
package jsondoc

import (
	"encoding/json"
	"fmt"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind is the semantic type of a JSON value.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindNull    Kind = "null"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
)

// IsContainer reports whether values of this kind have children.
func (k Kind) IsContainer() bool {
	return k == KindArray || k == KindObject
}

// Object is a JSON mapping that remembers key insertion order.
type Object = orderedmap.OrderedMap[string, any]

// NewObject returns an empty object.
func NewObject() *Object {
	return orderedmap.New[string, any]()
}

// ObjectFrom builds an object from alternating key/value arguments.
// It panics on an odd argument count or a non-string key; it is meant for
// literals in code and tests.
func ObjectFrom(kv ...any) *Object {
	if len(kv)%2 != 0 {
		panic("jsondoc.ObjectFrom: odd number of arguments")
	}
	o := NewObject()
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("jsondoc.ObjectFrom: key %v is not a string", kv[i]))
		}
		o.Set(k, Normalize(kv[i+1]))
	}
	return o
}

// Keys returns the keys of o in insertion order.
func Keys(o *Object) []string {
	if o == nil {
		return nil
	}
	keys := make([]string, 0, o.Len())
	for pair := o.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// shallowCopy copies the entries of o into a new object, keeping order.
// Values are shared.
func shallowCopy(o *Object) *Object {
	out := NewObject()
	if o == nil {
		return out
	}
	for pair := o.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
	}
	return out
}

// Classify returns the Kind of v. It never fails: unknown Go types are
// reported as strings.
func Classify(v any) Kind {
	if v == nil {
		return KindNull
	}
	switch v.(type) {
	case *Object, map[string]any:
		return KindObject
	case []any:
		return KindArray
	case string:
		return KindString
	case bool:
		return KindBoolean
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return KindNumber
	}
	return KindString
}

// Normalize converts plain Go values into the canonical representation:
// *Object for mappings, []any for sequences, float64 for numbers. Maps are
// walked in sorted key order since Go maps carry no order of their own.
func Normalize(v any) any {
	switch t := v.(type) {
	case nil, string, bool, float64:
		return v
	case *Object:
		return t
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		o := NewObject()
		for _, k := range keys {
			o.Set(k, Normalize(t[k]))
		}
		return o
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Normalize(item)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = item
		}
		return out
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	}
	if f, ok := toFloat(v); ok {
		return f
	}
	return fmt.Sprintf("%v", v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// Len returns the number of entries of an object or array, and 0 for
// anything else.
func Len(v any) int {
	switch t := v.(type) {
	case *Object:
		if t == nil {
			return 0
		}
		return t.Len()
	case map[string]any:
		return len(t)
	case []any:
		return len(t)
	}
	return 0
}

// Equal reports deep semantic equality. Object key order is ignored and
// numbers compare by value.
func Equal(a, b any) bool {
	a, b = Normalize(a), Normalize(b)
	ka, kb := Classify(a), Classify(b)
	if ka != kb {
		return false
	}
	switch ka {
	case KindNull:
		return true
	case KindObject:
		oa, ob := a.(*Object), b.(*Object)
		if oa.Len() != ob.Len() {
			return false
		}
		for pair := oa.Oldest(); pair != nil; pair = pair.Next() {
			other, ok := ob.Get(pair.Key)
			if !ok || !Equal(pair.Value, other) {
				return false
			}
		}
		return true
	case KindArray:
		aa, ab := a.([]any), b.([]any)
		if len(aa) != len(ab) {
			return false
		}
		for i := range aa {
			if !Equal(aa[i], ab[i]) {
				return false
			}
		}
		return true
	}
	return a == b
}
