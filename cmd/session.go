// Package cmd implements the prompts subcommands.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/grovetools/prompts/cli"
	"github.com/grovetools/prompts/config"
	"github.com/grovetools/prompts/errors"
	"github.com/grovetools/prompts/logging"
	"github.com/grovetools/prompts/pkg/jsondoc"
	"github.com/grovetools/prompts/pkg/profiling"
	"github.com/grovetools/prompts/pkg/prompts"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// session is the per-invocation context shared by the document commands:
// the resolved config, the snapshot path and a store seeded from it.
type session struct {
	cfg         *config.Config
	path        string
	store       *prompts.Store
	logger      *logrus.Entry
	out         io.Writer
	jsonOutput  bool
	highlighter *cli.Highlighter
	pretty      *logging.PrettyLogger
}

func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := cli.GetLogger(cmd)

	path := cli.SnapshotPath(cmd, cfg)

	span := profiling.Start("load snapshot")
	snap, err := prompts.LoadSnapshot(path)
	span.Stop()
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"path":      path,
		"documents": len(snap.Documents),
	}).Debug("Loaded snapshot")

	out := cmd.OutOrStdout()
	return &session{
		cfg:         cfg,
		path:        path,
		store:       prompts.New(prompts.WithState(snap.State()), prompts.WithLogger(logger)),
		logger:      logger,
		out:         out,
		jsonOutput:  cli.GetOptions(cmd).JSONOutput,
		highlighter: cli.NewHighlighter(out, cfg.Editor.Highlight, cfg.Editor.Theme),
		pretty:      logging.NewPrettyLogger().WithWriter(out),
	}, nil
}

func (s *session) save() error {
	defer profiling.Start("save snapshot").Stop()
	if err := prompts.SaveSnapshot(s.path, s.store.State()); err != nil {
		return err
	}
	s.logger.WithField("path", s.path).Debug("Saved snapshot")
	return nil
}

// resolve finds a document by id, then by exact name. An empty ref means
// the current document.
func (s *session) resolve(ref string) (prompts.Document, error) {
	state := s.store.State()
	if ref == "" {
		doc, ok := state.Current()
		if !ok {
			return prompts.Document{}, errors.NoCurrentDocument()
		}
		return doc, nil
	}
	if doc, ok := state.Document(ref); ok {
		return doc, nil
	}

	var matches []prompts.Document
	for _, d := range state.Documents {
		if d.Name == ref {
			matches = append(matches, d)
		}
	}
	switch len(matches) {
	case 0:
		return prompts.Document{}, errors.DocumentNotFound(ref)
	case 1:
		return matches[0], nil
	default:
		return prompts.Document{}, errors.InvalidInput(
			fmt.Sprintf("%d documents are named %q, use an id", len(matches), ref))
	}
}

// withDocument makes the document named by ref current while fn runs and
// restores the previous current document afterwards.
func (s *session) withDocument(ref string, fn func(doc prompts.Document) error) error {
	doc, err := s.resolve(ref)
	if err != nil {
		return err
	}
	prev := s.store.State().CurrentDocumentID
	s.store.SetCurrentDocument(doc.ID)
	defer func() {
		if prev != doc.ID {
			s.store.SetCurrentDocument(prev)
		}
	}()
	return fn(doc)
}

// printJSON writes v as indented JSON, highlighted when enabled.
func (s *session) printJSON(v any) error {
	data, err := jsondoc.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = s.out.Write(append(s.highlighter.Highlight("json", data), '\n'))
	return err
}

// printPlainJSON writes v with encoding/json, for values that are not
// document content.
func (s *session) printPlainJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = s.out.Write(append(s.highlighter.Highlight("json", data), '\n'))
	return err
}

// parsePath reads a dotted PathKey. "" and "." name the document root.
func parsePath(arg string) jsondoc.Path {
	arg = strings.TrimSpace(arg)
	if arg == "" || arg == "." {
		return jsondoc.Path{}
	}
	return jsondoc.KeyToPath(arg)
}

func documentFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("doc", "d", "", "Document id or name (default: current document)")
}

func docRef(cmd *cobra.Command) string {
	ref, _ := cmd.Flags().GetString("doc")
	return ref
}
