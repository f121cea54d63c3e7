package jsontree

import (
	"encoding/json"
	"sort"
)

// Expansion is the set of expanded PathKeys, plus an "all" flag that marks
// every node as expanded regardless of membership. The zero value has
// nothing expanded. Expansion values are immutable: every modifier returns
// a new value.
type Expansion struct {
	all  bool
	keys map[string]struct{}
}

// NewExpansion returns an expansion containing keys.
func NewExpansion(keys ...string) Expansion {
	e := Expansion{keys: make(map[string]struct{}, len(keys))}
	for _, k := range keys {
		e.keys[k] = struct{}{}
	}
	return e
}

// AllExpanded returns an expansion that expands every node, including nodes
// added to a document later.
func AllExpanded() Expansion {
	return Expansion{all: true}
}

// All reports whether the expand-all flag is set.
func (e Expansion) All() bool {
	return e.all
}

// Has reports membership of key, ignoring the expand-all flag.
func (e Expansion) Has(key string) bool {
	_, ok := e.keys[key]
	return ok
}

// IsExpanded reports whether the node at key should render expanded.
func (e Expansion) IsExpanded(key string) bool {
	return e.all || e.Has(key)
}

// Toggle flips the membership of key. The expand-all flag is kept as is.
func (e Expansion) Toggle(key string) Expansion {
	next := Expansion{all: e.all, keys: make(map[string]struct{}, len(e.keys)+1)}
	for k := range e.keys {
		next.keys[k] = struct{}{}
	}
	if _, ok := next.keys[key]; ok {
		delete(next.keys, key)
	} else {
		next.keys[key] = struct{}{}
	}
	return next
}

// Len returns the number of member keys.
func (e Expansion) Len() int {
	return len(e.keys)
}

// Keys returns the member keys in sorted order.
func (e Expansion) Keys() []string {
	keys := make([]string, 0, len(e.keys))
	for k := range e.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether both expansions hold the same flag and members.
func (e Expansion) Equal(other Expansion) bool {
	if e.all != other.all || len(e.keys) != len(other.keys) {
		return false
	}
	for k := range e.keys {
		if !other.Has(k) {
			return false
		}
	}
	return true
}

type expansionJSON struct {
	All  bool     `json:"all,omitempty"`
	Keys []string `json:"keys"`
}

// MarshalJSON implements json.Marshaler.
func (e Expansion) MarshalJSON() ([]byte, error) {
	return json.Marshal(expansionJSON{All: e.all, Keys: e.Keys()})
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Expansion) UnmarshalJSON(data []byte) error {
	var raw expansionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = NewExpansion(raw.Keys...)
	e.all = raw.All
	return nil
}
