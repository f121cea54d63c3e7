package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/grovetools/prompts/pkg/jsondoc"
	"github.com/grovetools/prompts/pkg/jsontree"
	"github.com/grovetools/prompts/tui/theme"
	"github.com/spf13/cobra"
)

func NewShowCmd() *cobra.Command {
	var (
		expandAll bool
		expand    []string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a document as a tree",
		Long: `Print the current document as a tree using the saved expansion state.
Collapsed containers show a summary such as {3 keys} or [2 items].`,
		Example: `  prompts show
  prompts show --expand-all
  prompts show --expand messages --expand messages.0
  prompts show --doc summarizer --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			doc, err := s.resolve(docRef(cmd))
			if err != nil {
				return err
			}
			if s.jsonOutput {
				return s.printJSON(doc.Content)
			}

			exp := s.store.State().Expansion
			if expandAll || s.cfg.Editor.DefaultExpandAll {
				exp = jsontree.AllExpanded()
			}
			for _, key := range expand {
				key = parsePath(key).Key()
				if !exp.IsExpanded(key) {
					exp = exp.Toggle(key)
				}
			}

			nodes := jsontree.Project(doc.Content, exp)
			t := theme.DefaultTheme
			fmt.Fprintln(s.out, t.Title.Render(doc.Name)+" "+t.Muted.Render(doc.ID))
			if len(nodes) == 0 {
				fmt.Fprintln(s.out, t.Summary.Render("{}"))
				return nil
			}
			fmt.Fprintln(s.out, renderTree(t, nodes))
			return nil
		},
	}

	documentFlag(cmd)
	cmd.Flags().BoolVar(&expandAll, "expand-all", false, "Expand every container")
	cmd.Flags().StringArrayVar(&expand, "expand", nil, "Expand the container at this path (repeatable)")
	return cmd
}

// renderTree draws projected nodes with lipgloss/tree, descending only into
// expanded containers.
func renderTree(t *theme.Theme, nodes []*jsontree.Node) string {
	root := tree.New().
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(lipgloss.NewStyle().Foreground(t.Colors.Border).PaddingRight(1))
	addNodes(t, root, nodes, false)
	return root.String()
}

func addNodes(t *theme.Theme, parent *tree.Tree, nodes []*jsontree.Node, inArray bool) {
	for _, n := range nodes {
		label := nodeLabel(t, n, inArray)
		if !n.IsContainer() || !n.Expanded || len(n.Children) == 0 {
			parent.Child(label)
			continue
		}
		sub := tree.Root(label)
		addNodes(t, sub, n.Children, n.Kind == jsondoc.KindArray)
		parent.Child(sub)
	}
}

func nodeLabel(t *theme.Theme, n *jsontree.Node, inArray bool) string {
	key := n.Key
	if inArray {
		key = "[" + key + "]"
	}
	if n.IsContainer() {
		if n.Expanded && len(n.Children) > 0 {
			return t.Key.Render(key)
		}
		return t.Key.Render(key) + ": " + t.Summary.Render(jsondoc.FormatForDisplay(n.Value))
	}
	return t.Key.Render(key) + ": " + t.ValueStyle(n.Kind).Render(jsondoc.FormatForDisplay(n.Value))
}
