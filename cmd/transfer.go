package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grovetools/prompts/errors"
	"github.com/grovetools/prompts/pkg/prompts"
	"github.com/grovetools/prompts/util/sanitize"
	"github.com/spf13/cobra"
)

func NewExportCmd() *cobra.Command {
	var (
		format string
		output string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a document's content as JSON, YAML or Markdown",
		Example: `  prompts export > greeting.json
  prompts export --format yaml -o greeting.yaml
  prompts export --doc summarizer
  prompts export --all --format md -o prompts/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}

			f := prompts.FormatJSON
			switch {
			case format != "":
				if f, err = prompts.ParseFormat(format); err != nil {
					return err
				}
			case output != "" && !all:
				f = prompts.FormatForPath(output)
			}

			if all {
				if output == "" {
					return errors.InvalidInput("--all requires --output <dir>")
				}
				return exportAll(s, f, output)
			}

			doc, err := s.resolve(docRef(cmd))
			if err != nil {
				return err
			}

			data, err := prompts.Export(doc, f)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = s.out.Write(s.highlighter.Highlight(string(f), data))
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to write export").WithDetail("path", output)
			}
			s.logger.WithField("path", output).Debug("Exported document")
			s.pretty.Success(fmt.Sprintf("Exported %s", doc.Name))
			s.pretty.Path("file", output)
			return nil
		},
	}

	documentFlag(cmd)
	cmd.Flags().StringVar(&format, "format", "", "Output format: json, yaml, markdown (default: from --output, else json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout (a directory with --all)")
	cmd.Flags().BoolVar(&all, "all", false, "Export every document into the --output directory")
	return cmd
}

var formatExtensions = map[prompts.Format]string{
	prompts.FormatJSON:     ".json",
	prompts.FormatYAML:     ".yaml",
	prompts.FormatMarkdown: ".md",
}

// exportAll writes one file per document into dir, named after the
// document.
func exportAll(s *session, f prompts.Format, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create export directory").WithDetail("path", dir)
	}

	taken := map[string]bool{}
	docs := s.store.State().Documents
	for _, doc := range docs {
		data, err := prompts.Export(doc, f)
		if err != nil {
			return err
		}
		stem := sanitize.Filename(doc.Name)
		if stem == "" {
			stem = doc.ID
		}
		path := filepath.Join(dir, sanitize.UniqueFilename(stem, formatExtensions[f], taken))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "failed to write export").WithDetail("path", path)
		}
		s.logger.WithField("path", path).Debug("Exported document")
	}

	s.pretty.Success(fmt.Sprintf("Exported %d documents", len(docs)))
	s.pretty.Path("directory", dir)
	return nil
}

func NewImportCmd() *cobra.Command {
	var (
		name    string
		format  string
		replace string
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Create a document from a JSON, YAML or Markdown file",
		Long: `Create a document from a file whose top level is an object. With --replace
the content of an existing document is replaced instead.`,
		Example: `  prompts import greeting.json
  prompts import review.yaml --name code-review
  prompts import greeting.json --replace greeting`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			content, err := readDocumentFile(args[0], format)
			if err != nil {
				return err
			}

			if replace != "" {
				doc, err := s.resolve(replace)
				if err != nil {
					return err
				}
				if s.store.UpdateDocument(doc.ID, prompts.DocumentPatch{Content: content}) {
					if err := s.save(); err != nil {
						return err
					}
				}
				s.pretty.Success(fmt.Sprintf("Replaced content of %s", doc.Name))
				return nil
			}

			if name == "" {
				base := filepath.Base(args[0])
				name = sanitize.DocumentName(strings.TrimSuffix(base, filepath.Ext(base)))
			}
			if err := prompts.ValidateDocument(prompts.Document{ID: "pending", Name: name}); err != nil {
				return err
			}

			id := s.store.CreateDocument(name, content)
			if err := s.save(); err != nil {
				return err
			}
			if s.jsonOutput {
				doc, _ := s.store.State().Document(id)
				return s.printPlainJSON(summarize(doc, id))
			}
			s.pretty.Success(fmt.Sprintf("Imported %s", name))
			s.pretty.Field("id", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Document name (default: file name without extension)")
	cmd.Flags().StringVar(&format, "format", "", "Input format: json, yaml, markdown (default: from extension)")
	cmd.Flags().StringVar(&replace, "replace", "", "Replace the content of this document instead of creating one")
	return cmd
}
