// Package starship integrates the current prompt document into the Starship
// shell prompt.
package starship

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/grovetools/prompts/cli"
	"github.com/grovetools/prompts/logging"
	"github.com/grovetools/prompts/pkg/prompts"
	"github.com/spf13/cobra"
)

const moduleHeader = "[custom.prompts]"

// NewStarshipCmd creates the starship command and its subcommands.
// binaryName is written into starship.toml as the status command.
func NewStarshipCmd(binaryName string) *cobra.Command {
	starshipCmd := &cobra.Command{
		Use:   "starship",
		Short: "Manage Starship prompt integration",
		Long:  `Show the current prompt document in the Starship shell prompt.`,
	}

	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Add the prompts module to your starship.toml",
		Long: `Appends a custom module to your starship.toml that shows the current prompt
document, and adds it to the prompt format when possible.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("could not get home directory: %w", err)
			}
			configPath := filepath.Join(home, ".config", "starship.toml")
			if env := os.Getenv("STARSHIP_CONFIG"); env != "" {
				configPath = env
			}
			return install(cmd.OutOrStdout(), configPath, binaryName)
		},
	}

	statusCmd := &cobra.Command{
		Use:    "status",
		Short:  "Print status for Starship prompt (for internal use)",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printStatus(cmd)
			return nil
		},
	}

	starshipCmd.AddCommand(installCmd, statusCmd)
	return starshipCmd
}

// install adds or refreshes the module in the starship config at configPath.
func install(out io.Writer, configPath, binaryName string) error {
	pretty := logging.NewPrettyLogger().WithWriter(out)

	contentBytes, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("starship config not found at %s. Please ensure starship is installed and configured", configPath)
		}
		return fmt.Errorf("could not read starship config: %w", err)
	}
	content := string(contentBytes)

	statusCommand := fmt.Sprintf(`command = "%s starship status"`, binaryName)
	moduleBody := fmt.Sprintf(`%s
description = "Shows the current prompt document"
%s
when = true
format = " $output "
`, moduleHeader, statusCommand)

	if start := strings.Index(content, moduleHeader); start != -1 {
		if !strings.Contains(content, statusCommand) {
			pretty.WarnPretty(moduleHeader + " already exists with a different command; leaving it unchanged.")
		} else {
			end := len(content)
			if next := strings.Index(content[start+1:], "\n["); next != -1 {
				end = start + 1 + next
			}
			content = content[:start] + moduleBody + content[end:]
			pretty.Success("Updated existing prompts starship module.")
		}
	} else {
		content += fmt.Sprintf("\n# Added by '%s starship install'\n%s", binaryName, moduleBody)
		pretty.Success("Added " + moduleHeader + " module to starship config.")
	}

	switch {
	case strings.Contains(content, "${custom.prompts}") || strings.Contains(content, "$custom.prompts"):
		pretty.Success("Module already in starship format.")
	case strings.Contains(content, "$git_metrics\\"):
		content = strings.Replace(content, "$git_metrics\\", "$git_metrics\\\n${custom.prompts}\\", 1)
		pretty.Success("Added module to starship format.")
	default:
		pretty.WarnPretty("Could not add '${custom.prompts}' to your starship format automatically.")
		pretty.Path("Add it to the 'format' string in", configPath)
	}

	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write updated starship config: %w", err)
	}
	pretty.Path("Updated", configPath)
	return nil
}

// printStatus writes the joined provider output. It runs on every prompt
// render, so failures print nothing.
func printStatus(cmd *cobra.Command) {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return
	}
	snap, err := prompts.LoadSnapshot(cli.SnapshotPath(cmd, cfg))
	if err != nil {
		return
	}
	if status := Status(snap.State()); status != "" {
		fmt.Fprint(cmd.OutOrStdout(), status)
	}
}

// Status joins the non-empty output of every provider.
func Status(s prompts.State) string {
	var outputs []string
	for _, provider := range providers {
		output, err := provider(s)
		if err != nil || output == "" {
			continue
		}
		outputs = append(outputs, output)
	}
	return strings.Join(outputs, " | ")
}
