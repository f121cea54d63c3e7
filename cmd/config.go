package cmd

import (
	"github.com/grovetools/prompts/cli"
	"github.com/grovetools/prompts/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect prompts configuration",
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigSchemaCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with defaults applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			if cli.GetOptions(cmd).JSONOutput {
				s := &session{out: cmd.OutOrStdout(), highlighter: cli.NewHighlighter(cmd.OutOrStdout(), cfg.Editor.Highlight, cfg.Editor.Theme)}
				return s.printPlainJSON(cfg)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			h := cli.NewHighlighter(cmd.OutOrStdout(), cfg.Editor.Highlight, cfg.Editor.Theme)
			_, err = cmd.OutOrStdout().Write(h.Highlight("yaml", data))
			return err
		},
	}
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for prompts.yml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.GenerateSchema()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}
}
