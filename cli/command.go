// Package cli holds the cobra plumbing shared by the prompts commands.
package cli

import (
	"github.com/grovetools/prompts/config"
	"github.com/grovetools/prompts/logging"
	"github.com/grovetools/prompts/pkg/prompts"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommandOptions holds the persistent flags every command accepts.
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
	JSONOutput bool
}

// NewStandardCommand creates a command carrying the standard persistent flags.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to prompts.yml config file")

	SetStyledHelp(cmd)
	return cmd
}

// GetLogger returns the CLI logger adjusted for --verbose and --json.
func GetLogger(cmd *cobra.Command) *logrus.Entry {
	entry := logging.NewLogger("prompts-cli")

	opts := GetOptions(cmd)
	if opts.Verbose {
		entry.Logger.SetLevel(logrus.DebugLevel)
	}
	if opts.JSONOutput {
		entry.Logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return entry
}

// GetOptions extracts the standard flags from cmd.
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
	}
}

// LoadConfig loads the configuration named by --config, or discovers one
// from the working directory. A missing config yields defaults.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path := GetOptions(cmd).ConfigFile; path != "" {
		return config.Load(path)
	}
	return config.LoadDefault()
}

// SnapshotPath resolves the snapshot file: the --store flag, then
// storage.path from cfg, then the default location.
func SnapshotPath(cmd *cobra.Command, cfg *config.Config) string {
	if override, _ := cmd.Flags().GetString("store"); override != "" {
		return override
	}
	if path := cfg.SnapshotPath(); path != "" {
		return path
	}
	return prompts.DefaultSnapshotPath()
}
