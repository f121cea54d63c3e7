package logging

//go:generate sh -c "cd .. && go run ./tools/logging-schema-generator/"

// Config is the "logging" extension of prompts.yml. Every field is optional;
// the zero value logs at info level in the default format.
type Config struct {
	// PROMPTS_LOG_LEVEL overrides Level.
	Level string `yaml:"level,omitempty" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,description=Minimum level written"`

	// PROMPTS_LOG_CALLER=true has the same effect.
	ReportCaller bool `yaml:"report_caller,omitempty" jsonschema:"description=Include file and line of the log call"`

	File   FileSinkConfig `yaml:"file,omitempty"`
	Format FormatConfig   `yaml:"format,omitempty"`
}

// FileSinkConfig appends log lines to a file in addition to stderr.
type FileSinkConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`
	// Defaults to prompts.log under the grove state directory. ~ and
	// environment variables are expanded.
	Path string `yaml:"path,omitempty" jsonschema:"description=Log file path (default: state dir logs/prompts.log)"`
}

// FormatConfig selects how entries are rendered.
type FormatConfig struct {
	Preset             string `yaml:"preset,omitempty" jsonschema:"enum=default,enum=simple,enum=json,description=default is rich text and simple drops timestamp and component"`
	DisableTimestamp   bool   `yaml:"disable_timestamp,omitempty"`
	DisableComponent   bool   `yaml:"disable_component,omitempty"`
	StructuredToStderr string `yaml:"structured_to_stderr,omitempty" jsonschema:"enum=auto,enum=always,enum=never,description=auto writes to stderr only at debug level or when stderr is not a terminal"`
}
