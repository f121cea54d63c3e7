package cmd

import (
	"github.com/grovetools/prompts/cli"
	"github.com/grovetools/prompts/pkg/profiling"
	"github.com/grovetools/prompts/starship"
	"github.com/spf13/cobra"
)

// NewRootCmd assembles the prompts command tree.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand(
		"prompts",
		"Create, inspect and edit JSON prompt documents",
	)
	root.Long = `prompts keeps a collection of named JSON documents in a local snapshot file.
Values are addressed by dotted paths such as messages.0.content and edited
in place, from the command line or in an interactive tree editor.`
	root.PersistentFlags().String("store", "", "Path to the snapshot file (overrides storage.path)")
	profiling.NewCobraProfiler().Attach(root)

	root.AddCommand(
		NewNewCmd(),
		NewListCmd(),
		NewShowCmd(),
		NewGetCmd(),
		NewSetCmd(),
		NewRmCmd(),
		NewAppendCmd(),
		NewAddKeyCmd(),
		NewUseCmd(),
		NewDeleteCmd(),
		NewRenameCmd(),
		NewExportCmd(),
		NewImportCmd(),
		NewQueryCmd(),
		NewEditCmd(),
		NewConfigCmd(),
		starship.NewStarshipCmd("prompts"),
		cli.NewVersionCommand(),
	)
	return root
}
