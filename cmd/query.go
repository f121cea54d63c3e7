package cmd

import (
	"github.com/grovetools/prompts/pkg/prompts"
	"github.com/spf13/cobra"
)

func NewQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <expression>",
		Short: "Evaluate a JSONata expression against a document",
		Long:  "Evaluate a JSONata expression against a document's content. Expressions that match nothing print nothing.",
		Example: `  prompts query 'messages[role="user"].content'
  prompts query '$count(messages)' --doc summarizer`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			doc, err := s.resolve(docRef(cmd))
			if err != nil {
				return err
			}

			result, err := prompts.Query(doc, args[0])
			if err != nil {
				return err
			}
			if result == nil {
				s.logger.WithField("expression", args[0]).Debug("Query matched nothing")
				return nil
			}
			return s.printJSON(result)
		},
	}
	documentFlag(cmd)
	return cmd
}
