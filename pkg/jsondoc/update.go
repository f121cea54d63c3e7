package jsondoc

// Get returns the value at p. Objects are indexed by key and arrays by a
// base-10 index. The boolean is false when the path does not resolve, which
// is distinct from resolving to a JSON null.
func Get(root any, p Path) (any, bool) {
	current := root
	for _, segment := range p {
		switch node := current.(type) {
		case *Object:
			if node == nil {
				return nil, false
			}
			v, ok := node.Get(segment)
			if !ok {
				return nil, false
			}
			current = v
		case map[string]any:
			v, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = v
		case []any:
			i, ok := parseIndex(segment, len(node))
			if !ok {
				return nil, false
			}
			current = node[i]
		default:
			return nil, false
		}
	}
	return current, true
}

// Set returns a copy of root with value written at p.
//
// An empty path replaces the root with value. Missing intermediate
// containers, and intermediates that are not objects (arrays, primitives,
// null), are replaced with empty objects before descending. Only the objects
// along p are copied; every other subtree is shared with root, which is
// never modified.
func Set(root any, p Path, value any) any {
	if len(p) == 0 {
		return value
	}
	obj, _ := asObject(root)
	return setIn(obj, p, value)
}

// asObject returns v as an *Object. A plain map[string]any is converted with
// Normalize so it is treated the same way Get and Classify treat it.
func asObject(v any) (*Object, bool) {
	switch t := v.(type) {
	case *Object:
		return t, t != nil
	case map[string]any:
		return Normalize(t).(*Object), true
	}
	return nil, false
}

func setIn(obj *Object, p Path, value any) *Object {
	out := shallowCopy(obj)
	head := p[0]
	if len(p) == 1 {
		out.Set(head, value)
		return out
	}

	child, _ := out.Get(head)
	sub, ok := asObject(child)
	if !ok {
		sub = NewObject()
	}
	out.Set(head, setIn(sub, p[1:], value))
	return out
}

// Delete returns root without the entry at p. Deleting the root, a missing
// key, or through anything other than objects leaves root unchanged, and the
// very same root value is returned in that case.
func Delete(root any, p Path) any {
	if len(p) == 0 {
		return root
	}
	obj, ok := asObject(root)
	if !ok {
		return root
	}
	if out, changed := deleteIn(obj, p); changed {
		return out
	}
	return root
}

func deleteIn(obj *Object, p Path) (*Object, bool) {
	head := p[0]
	child, present := obj.Get(head)
	if !present {
		return obj, false
	}

	if len(p) == 1 {
		out := shallowCopy(obj)
		out.Delete(head)
		return out, true
	}

	sub, ok := asObject(child)
	if !ok {
		return obj, false
	}
	newSub, changed := deleteIn(sub, p[1:])
	if !changed {
		return obj, false
	}
	out := shallowCopy(obj)
	out.Set(head, newSub)
	return out, true
}

// Append adds item to the end of the array at p. The array is located by
// walking objects only: a path that crosses an array, or that does not end
// at an array, leaves root unchanged and reports false.
func Append(root any, p Path, item any) (any, bool) {
	current := root
	for _, segment := range p {
		obj, ok := asObject(current)
		if !ok {
			return root, false
		}
		v, ok := obj.Get(segment)
		if !ok {
			return root, false
		}
		current = v
	}

	arr, ok := current.([]any)
	if !ok {
		return root, false
	}
	next := make([]any, len(arr), len(arr)+1)
	copy(next, arr)
	next = append(next, item)
	return Set(root, p, next), true
}
