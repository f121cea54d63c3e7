package cmd

import (
	"fmt"

	"github.com/grovetools/prompts/errors"
	"github.com/grovetools/prompts/pkg/jsondoc"
	"github.com/grovetools/prompts/pkg/prompts"
	"github.com/spf13/cobra"
)

const valueHelp = `Values are read as JSON when they parse as JSON and as plain strings
otherwise, so 42, true, null, [1,2] and {"a":1} keep their types while
hello world is stored as a string. Quote a string that looks like JSON:
'"42"'.`

func NewGetCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "get [path]",
		Short: "Print the value at a path",
		Long:  "Print the value at a dotted path of the current document. Without a path the whole content is printed.",
		Example: `  prompts get messages.0.content
  prompts get temperature --doc summarizer`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			doc, err := s.resolve(docRef(cmd))
			if err != nil {
				return err
			}

			p := jsondoc.Path{}
			if len(args) == 1 {
				p = parsePath(args[0])
			}
			v, ok := doc.Get(p)
			if !ok {
				return errors.InvalidInput(fmt.Sprintf("no value at %s", p))
			}
			if str, isString := v.(string); isString && raw {
				fmt.Fprintln(s.out, str)
				return nil
			}
			return s.printJSON(v)
		},
	}

	documentFlag(cmd)
	cmd.Flags().BoolVarP(&raw, "raw", "r", false, "Print strings without JSON quoting")
	return cmd
}

// mutate runs fn against the targeted document and saves when it reports a
// change. unchanged is returned as an input error otherwise.
func mutate(cmd *cobra.Command, unchanged string, fn func(s *session) bool) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	var applied bool
	err = s.withDocument(docRef(cmd), func(prompts.Document) error {
		applied = fn(s)
		return nil
	})
	if err != nil {
		return err
	}
	if !applied {
		return errors.InvalidInput(unchanged)
	}
	return s.save()
}

func NewSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Set the value at a path",
		Long: "Set the value at a dotted path, creating missing objects along the way.\n" +
			"Intermediate arrays and scalars are replaced by objects.\n\n" + valueHelp,
		Example: `  prompts set temperature 0.2
  prompts set messages.0.role user
  prompts set . '{"model":"small"}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := parsePath(args[0])
			value := jsondoc.ParseLiteral(args[1])
			if p.IsRoot() && jsondoc.Classify(value) != jsondoc.KindObject {
				return errors.InvalidContent(string(jsondoc.Classify(value)))
			}
			return mutate(cmd, fmt.Sprintf("cannot set %s", p), func(s *session) bool {
				return s.store.UpdateValue(p, value)
			})
		},
	}
	documentFlag(cmd)
	return cmd
}

func NewRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <path>",
		Short: "Remove the key at a path",
		Long:  "Remove an object key. Paths that pass through arrays and array items themselves cannot be removed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := parsePath(args[0])
			return mutate(cmd, fmt.Sprintf("nothing to remove at %s", p), func(s *session) bool {
				return s.store.DeleteValue(p)
			})
		},
	}
	documentFlag(cmd)
	return cmd
}

func NewAppendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "append <path> <value>",
		Short:   "Append a value to the array at a path",
		Long:    "Append to an existing array reached through objects only.\n\n" + valueHelp,
		Example: `  prompts append messages '{"role":"user","content":"hi"}'`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := parsePath(args[0])
			value := jsondoc.ParseLiteral(args[1])
			return mutate(cmd, fmt.Sprintf("no array at %s", p), func(s *session) bool {
				return s.store.AddArrayItem(p, value)
			})
		},
	}
	documentFlag(cmd)
	return cmd
}

func NewAddKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add-key <path> <key> <value>",
		Short:   "Add a key to the object at a path",
		Long:    "Add or overwrite key inside the object at path. Use . for the document root.\n\n" + valueHelp,
		Example: `  prompts add-key . stop '["\n\n"]'`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := parsePath(args[0])
			value := jsondoc.ParseLiteral(args[2])
			return mutate(cmd, fmt.Sprintf("cannot add %q at %s", args[1], p), func(s *session) bool {
				return s.store.AddObjectKey(p, args[1], value)
			})
		},
	}
	documentFlag(cmd)
	return cmd
}
