package jsontree

import (
	"testing"

	"github.com/grovetools/prompts/pkg/jsondoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoc() *jsondoc.Object {
	return jsondoc.ObjectFrom(
		"b", 1,
		"a", 2,
		"meta", jsondoc.ObjectFrom(
			"tags", []any{"x", "y"},
			"empty", jsondoc.NewObject(),
		),
		"n", nil,
	)
}

func TestProjectOrderFidelity(t *testing.T) {
	doc := jsondoc.ObjectFrom("b", 1, "a", 2)
	nodes := Project(doc, Expansion{})

	require.Len(t, nodes, 2)
	assert.Equal(t, "b", nodes[0].Key)
	assert.Equal(t, "a", nodes[1].Key)
}

func TestProjectNodeFields(t *testing.T) {
	nodes := Project(testDoc(), NewExpansion("meta"))
	require.Len(t, nodes, 4)

	meta := nodes[2]
	assert.Equal(t, "meta", meta.Key)
	assert.Equal(t, jsondoc.KindObject, meta.Kind)
	assert.Equal(t, jsondoc.Path{"meta"}, meta.Path)
	assert.True(t, meta.Expanded)
	require.Len(t, meta.Children, 2)

	tags := meta.Children[0]
	assert.Equal(t, jsondoc.KindArray, tags.Kind)
	assert.False(t, tags.Expanded)
	require.Len(t, tags.Children, 2)
	assert.Equal(t, "1", tags.Children[1].Key)
	assert.Equal(t, jsondoc.Path{"meta", "tags", "1"}, tags.Children[1].Path)
	assert.Equal(t, "y", tags.Children[1].Value)
	assert.Equal(t, "meta.tags.1", tags.Children[1].PathKey())
	assert.Equal(t, 2, tags.Children[1].Depth())

	empty := meta.Children[1]
	assert.NotNil(t, empty.Children, "containers always carry a children list")
	assert.Len(t, empty.Children, 0)

	leaf := nodes[0]
	assert.Nil(t, leaf.Children)
	assert.Equal(t, jsondoc.KindNumber, leaf.Kind)

	null := nodes[3]
	assert.Equal(t, jsondoc.KindNull, null.Kind)
	assert.Nil(t, null.Children)
}

func TestProjectIsDeterministic(t *testing.T) {
	doc := testDoc()
	exp := NewExpansion("meta", "meta.tags")

	first := Project(doc, exp)
	second := Project(doc, exp)
	assert.Equal(t, first, second)

	// Identity is derived from the path.
	assert.Equal(t, "node:meta.tags", first[2].Children[0].ID)
}

func TestProjectExpandAllSentinel(t *testing.T) {
	doc := testDoc()
	exp := AllExpanded()

	check := func(nodes []*Node) {
		Walk(nodes, func(n *Node) bool {
			if n.IsContainer() {
				assert.True(t, n.Expanded, n.PathKey())
			}
			return true
		})
	}
	check(Project(doc, exp))

	// Nodes added after expand-all are expanded too.
	grown := jsondoc.Set(doc, jsondoc.Path{"later", "deeper"}, []any{1}).(*jsondoc.Object)
	check(Project(grown, exp))
	later, ok := Find(Project(grown, exp), jsondoc.Path{"later", "deeper"})
	require.True(t, ok)
	assert.True(t, later.Expanded)
}

func TestProjectNilDoc(t *testing.T) {
	assert.Nil(t, Project(nil, Expansion{}))
}

func TestCollectExpandablePaths(t *testing.T) {
	assert.Equal(t, []string{"meta", "meta.tags", "meta.empty"}, CollectExpandablePaths(testDoc()))
	assert.Empty(t, CollectExpandablePaths(jsondoc.NewObject()))
}

func TestCountNodes(t *testing.T) {
	// b, a, meta, tags, x, y, empty, n
	assert.Equal(t, 8, CountNodes(testDoc()))
	assert.Equal(t, 0, CountNodes(jsondoc.NewObject()))
}

func TestFlatten(t *testing.T) {
	t.Run("collapsed", func(t *testing.T) {
		rows := Flatten(Project(testDoc(), Expansion{}))
		keys := rowKeys(rows)
		assert.Equal(t, []string{"b", "a", "meta", "n"}, keys)
		assert.True(t, rows[3].IsLast)
	})

	t.Run("partially expanded", func(t *testing.T) {
		rows := Flatten(Project(testDoc(), NewExpansion("meta")))
		assert.Equal(t, []string{"b", "a", "meta", "tags", "empty", "n"}, rowKeys(rows))
		assert.Equal(t, 1, rows[3].Depth)
	})

	t.Run("child expanded under collapsed parent stays hidden", func(t *testing.T) {
		rows := Flatten(Project(testDoc(), NewExpansion("meta.tags")))
		assert.Equal(t, []string{"b", "a", "meta", "n"}, rowKeys(rows))
	})

	t.Run("all", func(t *testing.T) {
		rows := Flatten(Project(testDoc(), AllExpanded()))
		assert.Equal(t, []string{"b", "a", "meta", "tags", "0", "1", "empty", "n"}, rowKeys(rows))
		assert.Equal(t, 2, rows[4].Depth)
	})
}

func TestSearch(t *testing.T) {
	rows := Flatten(Project(testDoc(), AllExpanded()))

	assert.Equal(t, []int{3}, Search(rows, "TAG"))
	assert.Equal(t, []int{5}, Search(rows, `"y"`))
	assert.Nil(t, Search(rows, ""))
	assert.Empty(t, Search(rows, "zzz"))
}

func TestFind(t *testing.T) {
	nodes := Project(testDoc(), Expansion{})

	n, ok := Find(nodes, jsondoc.Path{"meta", "tags", "0"})
	require.True(t, ok)
	assert.Equal(t, "x", n.Value)

	_, ok = Find(nodes, jsondoc.Path{"meta", "nope"})
	assert.False(t, ok)
}

func rowKeys(rows []Row) []string {
	keys := make([]string, len(rows))
	for i, r := range rows {
		keys[i] = r.Node.Key
	}
	return keys
}
