package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/prompts/errors"
	"github.com/grovetools/prompts/pkg/paths"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// configNames are searched in order in every directory.
var configNames = []string{
	"prompts.yml",
	"prompts.yaml",
	".prompts.yml",
	"prompts.toml",
}

// knownKeys are the top-level keys decoded into Config fields; everything
// else in a TOML file lands in Extensions.
var knownKeys = map[string]bool{
	"version": true,
	"storage": true,
	"editor":  true,
}

// Load reads and parses a prompts configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	if isTOML(path) {
		return LoadFromTOMLBytes(data)
	}
	return LoadFromBytes(data)
}

// LoadDefault finds and loads the configuration for the current directory.
// PROMPTS_CONFIG, when set, names the file to load directly.
func LoadDefault() (*Config, error) {
	if explicit := os.Getenv("PROMPTS_CONFIG"); explicit != "" {
		return Load(explicit)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}
	return LoadFrom(cwd)
}

// LoadFrom loads configuration with hierarchical merging starting from the given directory
func LoadFrom(startDir string) (*Config, error) {
	return LoadFromWithLogger(startDir, logrus.New())
}

// LoadFromWithLogger loads configuration with hierarchical merging:
// 1. Global config (~/.config/grove/prompts.yml) - base layer
// 2. Project config (prompts.yml found upward from startDir) - overrides global
// Either layer may be missing; with neither present the defaults are used.
func LoadFromWithLogger(startDir string, logger *logrus.Logger) (*Config, error) {
	var finalConfig *Config

	globalPath := getXDGConfigPath()
	if globalPath != "" {
		if _, err := os.Stat(globalPath); err == nil {
			logger.WithField("path", globalPath).Debug("Loading global configuration")
			globalConfig, err := readRaw(globalPath)
			if err != nil {
				logger.WithError(err).Warn("Failed to parse global configuration, continuing without it")
			} else {
				finalConfig = globalConfig
			}
		}
	}

	projectPath, err := findProjectConfig(startDir)
	if err == nil && projectPath != globalPath {
		logger.WithField("path", projectPath).Debug("Loading project configuration")
		projectConfig, err := readRaw(projectPath)
		if err != nil {
			return nil, err
		}
		if finalConfig == nil {
			finalConfig = projectConfig
		} else {
			logger.Debug("Merging project configuration over global configuration")
			finalConfig = mergeConfigs(finalConfig, projectConfig)
		}
	}

	if finalConfig == nil {
		finalConfig = &Config{}
	}

	finalConfig.SetDefaults()
	if err := finalConfig.Validate(); err != nil {
		return nil, err
	}

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		configData, err := yaml.Marshal(finalConfig)
		if err == nil {
			logger.Debugf("Merged configuration:\n%s", string(configData))
		}
	}

	return finalConfig, nil
}

// LoadFromBytes parses YAML configuration, then validates it and applies
// defaults.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg, raw, err := decodeYAML(data)
	if err != nil {
		return nil, err
	}
	return finish(cfg, raw)
}

// LoadFromTOMLBytes is LoadFromBytes for prompts.toml files.
func LoadFromTOMLBytes(data []byte) (*Config, error) {
	cfg, raw, err := decodeTOML(data)
	if err != nil {
		return nil, err
	}
	return finish(cfg, raw)
}

// finish validates the raw document against the schema, so unknown keys in
// core sections are caught before decoding drops them.
func finish(cfg *Config, raw map[string]interface{}) (*Config, error) {
	validator, err := NewSchemaValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to create validator")
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}
	if err := validator.Validate(raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigValidation, "schema validation failed")
	}

	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readRaw decodes a file without defaults or validation, for merging.
func readRaw(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}
	var cfg *Config
	if isTOML(path) {
		cfg, _, err = decodeTOML(data)
	} else {
		cfg, _, err = decodeYAML(data)
	}
	if err != nil {
		if pe, ok := err.(*errors.PromptsError); ok {
			return nil, pe.WithDetail("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

func decodeYAML(data []byte) (*Config, map[string]interface{}, error) {
	expanded := []byte(expandEnvVars(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(expanded, &cfg); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
	}
	var raw map[string]interface{}
	if err := yaml.Unmarshal(expanded, &raw); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
	}
	return &cfg, raw, nil
}

func decodeTOML(data []byte) (*Config, map[string]interface{}, error) {
	expanded := []byte(expandEnvVars(string(data)))

	var cfg Config
	if err := toml.Unmarshal(expanded, &cfg); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal(expanded, &raw); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
	}
	for key, value := range raw {
		if knownKeys[key] {
			continue
		}
		if cfg.Extensions == nil {
			cfg.Extensions = make(map[string]interface{})
		}
		cfg.Extensions[key] = value
	}
	return &cfg, raw, nil
}

// FindConfigFile searches for prompts configuration files with the following precedence:
// 1. Current directory up to filesystem root
// 2. XDG config directory (~/.config/grove/prompts.yml)
func FindConfigFile(startDir string) (string, error) {
	if path, err := findProjectConfig(startDir); err == nil {
		return path, nil
	}

	if xdgConfigPath := getXDGConfigPath(); xdgConfigPath != "" {
		if info, err := os.Stat(xdgConfigPath); err == nil && !info.IsDir() {
			return xdgConfigPath, nil
		}
	}

	return "", errors.ConfigNotFound(startDir).WithDetail("searchPath", startDir)
}

func findProjectConfig(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", errors.ConfigNotFound(startDir)
}

// expandEnvVars replaces ${VAR} with environment variable values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// Handle default values: ${VAR:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}

// getXDGConfigPath returns the global configuration path
func getXDGConfigPath() string {
	return paths.ConfigFile()
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
