package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/grovetools/prompts/errors"
	"github.com/grovetools/prompts/pkg/jsondoc"
	"github.com/grovetools/prompts/pkg/prompts"
	"github.com/grovetools/prompts/tui/components/table"
	"github.com/spf13/cobra"
)

// documentSummary is the --json form of a document listing.
type documentSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Keys        int       `json:"keys"`
	Current     bool      `json:"current"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func summarize(d prompts.Document, currentID string) documentSummary {
	return documentSummary{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Keys:        jsondoc.Len(d.Content),
		Current:     d.ID == currentID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func NewNewCmd() *cobra.Command {
	var (
		description string
		content     string
		file        string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a document and make it current",
		Example: `  # Empty document
  prompts new greeting
  # With inline content
  prompts new summarizer --content '{"model":"small","messages":[]}'
  # From a YAML file
  prompts new review --file review.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}

			body := jsondoc.NewObject()
			switch {
			case content != "" && file != "":
				return errors.InvalidInput("--content and --file are mutually exclusive")
			case content != "":
				if body, err = jsondoc.ParseObject([]byte(content)); err != nil {
					return err
				}
			case file != "":
				if body, err = readDocumentFile(file, format); err != nil {
					return err
				}
			}

			candidate := prompts.Document{ID: "pending", Name: args[0], Description: description}
			if err := prompts.ValidateDocument(candidate); err != nil {
				return err
			}

			id := s.store.CreateDocument(args[0], body)
			if description != "" {
				s.store.UpdateDocument(id, prompts.DocumentPatch{Description: &description})
			}
			if err := s.save(); err != nil {
				return err
			}

			doc, _ := s.store.State().Document(id)
			if s.jsonOutput {
				return s.printPlainJSON(summarize(doc, id))
			}
			s.pretty.Success(fmt.Sprintf("Created %s", doc.Name))
			s.pretty.Field("id", doc.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Document description")
	cmd.Flags().StringVar(&content, "content", "", "Initial content as a JSON object")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read initial content from a JSON or YAML file")
	cmd.Flags().StringVar(&format, "format", "", "Format of --file: json, yaml (default: from extension)")
	return cmd
}

func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List documents",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			state := s.store.State()

			if s.jsonOutput {
				summaries := make([]documentSummary, 0, len(state.Documents))
				for _, d := range state.Documents {
					summaries = append(summaries, summarize(d, state.CurrentDocumentID))
				}
				return s.printPlainJSON(summaries)
			}

			if len(state.Documents) == 0 {
				s.pretty.InfoPretty("No documents. Create one with 'prompts new <name>'.")
				return nil
			}

			rows := make([][]string, 0, len(state.Documents))
			for _, d := range state.Documents {
				marker := ""
				if d.ID == state.CurrentDocumentID {
					marker = "*"
				}
				rows = append(rows, []string{
					marker,
					d.ID,
					d.Name,
					strconv.Itoa(jsondoc.Len(d.Content)),
					d.UpdatedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(s.out, table.Render(nil, []string{"", "ID", "NAME", "KEYS", "UPDATED"}, rows))
			return nil
		},
	}
}

func NewUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <document>",
		Short: "Make a document current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			doc, err := s.resolve(args[0])
			if err != nil {
				return err
			}
			if s.store.SetCurrentDocument(doc.ID) {
				if err := s.save(); err != nil {
					return err
				}
			}
			s.pretty.Success(fmt.Sprintf("Now editing %s", doc.Name))
			return nil
		},
	}
}

func NewDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <document>",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			doc, err := s.resolve(args[0])
			if err != nil {
				return err
			}
			s.store.DeleteDocument(doc.ID)
			if err := s.save(); err != nil {
				return err
			}
			s.pretty.Success(fmt.Sprintf("Deleted %s", doc.Name))
			return nil
		},
	}
}

func NewRenameCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "rename <document> <name>",
		Short: "Rename a document or change its description",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			doc, err := s.resolve(args[0])
			if err != nil {
				return err
			}

			name := args[1]
			patch := prompts.DocumentPatch{Name: &name}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			candidate := doc
			candidate.Name = name
			if patch.Description != nil {
				candidate.Description = description
			}
			if err := prompts.ValidateDocument(candidate); err != nil {
				return err
			}

			s.store.UpdateDocument(doc.ID, patch)
			if err := s.save(); err != nil {
				return err
			}
			s.pretty.Success(fmt.Sprintf("Renamed %s to %s", doc.Name, name))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "New description")
	return cmd
}

func readDocumentFile(path, format string) (*jsondoc.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to read file").WithDetail("path", path)
	}
	f := prompts.FormatForPath(path)
	if format != "" {
		if f, err = prompts.ParseFormat(format); err != nil {
			return nil, err
		}
	}
	return prompts.Import(data, f)
}
