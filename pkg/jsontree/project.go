// Package jsontree projects JSON documents into trees of presentation nodes.
package jsontree

import (
	"fmt"
	"strings"

	"github.com/grovetools/prompts/pkg/jsondoc"
)

// Node is the presentation of one value at one path.
type Node struct {
	// ID is derived from the path, so it is stable across projections of
	// the same document.
	ID       string
	Key      string
	Value    any
	Kind     jsondoc.Kind
	Path     jsondoc.Path
	Children []*Node // non-nil exactly for objects and arrays
	Expanded bool
}

// PathKey returns the node's PathKey.
func (n *Node) PathKey() string {
	return n.Path.Key()
}

// Depth is the nesting level; top-level nodes are at depth 0.
func (n *Node) Depth() int {
	return len(n.Path) - 1
}

// IsContainer reports whether the node has a children list.
func (n *Node) IsContainer() bool {
	return n.Kind.IsContainer()
}

func nodeID(p jsondoc.Path) string {
	return "node:" + p.Key()
}

// Project builds one node per top-level key of doc, in insertion order,
// each carrying its full subtree.
func Project(doc *jsondoc.Object, exp Expansion) []*Node {
	if doc == nil {
		return nil
	}
	nodes := make([]*Node, 0, doc.Len())
	for pair := doc.Oldest(); pair != nil; pair = pair.Next() {
		nodes = append(nodes, ProjectValue(pair.Key, pair.Value, jsondoc.Path{pair.Key}, exp))
	}
	return nodes
}

// ProjectValue builds the node for v located at p.
func ProjectValue(key string, v any, p jsondoc.Path, exp Expansion) *Node {
	kind := jsondoc.Classify(v)
	n := &Node{
		ID:       nodeID(p),
		Key:      key,
		Value:    v,
		Kind:     kind,
		Path:     p,
		Expanded: exp.IsExpanded(p.Key()),
	}

	switch t := v.(type) {
	case *jsondoc.Object:
		n.Children = make([]*Node, 0, jsondoc.Len(t))
		if t != nil {
			for pair := t.Oldest(); pair != nil; pair = pair.Next() {
				n.Children = append(n.Children, ProjectValue(pair.Key, pair.Value, p.Child(pair.Key), exp))
			}
		}
	case map[string]any:
		// Plain maps carry no order; normalize to get a stable one.
		return ProjectValue(key, jsondoc.Normalize(t), p, exp)
	case []any:
		n.Children = make([]*Node, 0, len(t))
		for i, item := range t {
			n.Children = append(n.Children, ProjectValue(fmt.Sprint(i), item, p.ChildIndex(i), exp))
		}
	}
	return n
}

// Walk visits nodes depth-first in pre-order. Returning false from fn skips
// the node's children.
func Walk(nodes []*Node, fn func(n *Node) bool) {
	for _, n := range nodes {
		if fn(n) {
			Walk(n.Children, fn)
		}
	}
}

// CollectExpandablePaths returns the PathKey of every object and array in
// doc, in pre-order.
func CollectExpandablePaths(doc *jsondoc.Object) []string {
	var keys []string
	Walk(Project(doc, Expansion{}), func(n *Node) bool {
		if n.IsContainer() {
			keys = append(keys, n.PathKey())
		}
		return true
	})
	return keys
}

// CountNodes returns the number of nodes in the projection of doc, leaves
// included.
func CountNodes(doc *jsondoc.Object) int {
	count := 0
	Walk(Project(doc, Expansion{}), func(*Node) bool {
		count++
		return true
	})
	return count
}

// Row is one visible line of a rendered tree.
type Row struct {
	Node   *Node
	Depth  int
	IsLast bool // last child of its parent
}

// Flatten lists the visible rows: every top-level node, and the children
// of expanded nodes.
func Flatten(nodes []*Node) []Row {
	var rows []Row
	var visit func(list []*Node, depth int)
	visit = func(list []*Node, depth int) {
		for i, n := range list {
			rows = append(rows, Row{Node: n, Depth: depth, IsLast: i == len(list)-1})
			if n.Expanded && len(n.Children) > 0 {
				visit(n.Children, depth+1)
			}
		}
	}
	visit(nodes, 0)
	return rows
}

// Search returns the indices of rows whose key or leaf value contains
// query, ignoring case.
func Search(rows []Row, query string) []int {
	query = strings.ToLower(query)
	if query == "" {
		return nil
	}
	var matches []int
	for i, row := range rows {
		n := row.Node
		if strings.Contains(strings.ToLower(n.Key), query) {
			matches = append(matches, i)
			continue
		}
		if n.IsContainer() {
			continue
		}
		if strings.Contains(strings.ToLower(jsondoc.FormatForDisplay(n.Value)), query) {
			matches = append(matches, i)
		}
	}
	return matches
}

// Find returns the node at p, if the projection contains it.
func Find(nodes []*Node, p jsondoc.Path) (*Node, bool) {
	var found *Node
	Walk(nodes, func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.Path.Equal(p) {
			found = n
			return false
		}
		return p.HasPrefix(n.Path)
	})
	return found, found != nil
}
