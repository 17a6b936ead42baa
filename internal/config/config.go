// Package config provides configuration management for Pagewright using
// Viper for flexible loading from files, environment variables, and
// command-line flags.
//
// Configuration comes from .pagewright.yml, environment variables with the
// PAGEWRIGHT_ prefix, and flags bound by the CLI. Validation rejects values
// that would make compilation or serving misbehave before any work starts.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pagewright/pagewright/internal/types"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Output   OutputConfig   `yaml:"output"`
	Grid     GridConfig     `yaml:"grid"`
	Code     CodeConfig     `yaml:"code"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

type DatabaseConfig struct {
	// Path is the SQLite file holding event logs and artifacts
	Path string `yaml:"path"`
}

type OutputConfig struct {
	// Dir receives generated files on preview/publish; relative to the
	// working directory
	Dir string `yaml:"dir"`
}

type GridConfig struct {
	Enabled bool    `yaml:"enabled"`
	Unit    float64 `yaml:"unit"`
	Visible bool    `yaml:"visible"`
}

type CodeConfig struct {
	StyleMode         string `yaml:"style_mode"`
	PrettyPrint       bool   `yaml:"pretty_print"`
	MinifyStylesheet  bool   `yaml:"minify_stylesheet"`
	DeduplicateStyles bool   `yaml:"deduplicate_styles"`
	UseVariables      bool   `yaml:"use_variables"`
	SemanticTags      bool   `yaml:"semantic_tags"`
	AriaLabels        bool   `yaml:"aria_labels"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SetDefaults registers every default with viper; called by the CLI before
// config files and environment variables are read.
func SetDefaults() {
	viper.SetDefault("database.path", ".pagewright/pagewright.db")
	viper.SetDefault("output.dir", "dist")
	viper.SetDefault("grid.enabled", true)
	viper.SetDefault("grid.unit", 8)
	viper.SetDefault("grid.visible", true)
	viper.SetDefault("code.style_mode", string(types.StyleModeExternal))
	viper.SetDefault("code.pretty_print", true)
	viper.SetDefault("code.minify_stylesheet", false)
	viper.SetDefault("code.deduplicate_styles", true)
	viper.SetDefault("code.use_variables", true)
	viper.SetDefault("code.semantic_tags", true)
	viper.SetDefault("code.aria_labels", true)
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}

// envKeyReplacer maps nested config keys onto environment variable names,
// so server.port binds to PAGEWRIGHT_SERVER_PORT.
func envKeyReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_")
}

// BindEnvironment wires the PAGEWRIGHT_ environment prefix into viper.
func BindEnvironment() {
	viper.SetEnvPrefix("PAGEWRIGHT")
	viper.SetEnvKeyReplacer(envKeyReplacer())
	viper.AutomaticEnv()
}

// Load builds a Config from viper's current state and validates it.
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{Path: viper.GetString("database.path")},
		Output:   OutputConfig{Dir: viper.GetString("output.dir")},
		Grid: GridConfig{
			Enabled: viper.GetBool("grid.enabled"),
			Unit:    viper.GetFloat64("grid.unit"),
			Visible: viper.GetBool("grid.visible"),
		},
		Code: CodeConfig{
			StyleMode:         viper.GetString("code.style_mode"),
			PrettyPrint:       viper.GetBool("code.pretty_print"),
			MinifyStylesheet:  viper.GetBool("code.minify_stylesheet"),
			DeduplicateStyles: viper.GetBool("code.deduplicate_styles"),
			UseVariables:      viper.GetBool("code.use_variables"),
			SemanticTags:      viper.GetBool("code.semantic_tags"),
			AriaLabels:        viper.GetBool("code.aria_labels"),
		},
		Server: ServerConfig{
			Host: viper.GetString("server.host"),
			Port: viper.GetInt("server.port"),
		},
		Log: LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// GridOptions converts the grid section to the compiler's grid config.
func (c *Config) GridOptions() types.GridConfig {
	return types.GridConfig{
		Enabled: c.Grid.Enabled,
		Unit:    c.Grid.Unit,
		Visible: c.Grid.Visible,
	}
}

// CodeOptions converts the code section to generation options.
func (c *Config) CodeOptions() types.CodeOptions {
	return types.CodeOptions{
		StyleMode:         types.StyleMode(c.Code.StyleMode),
		PrettyPrint:       c.Code.PrettyPrint,
		MinifyStylesheet:  c.Code.MinifyStylesheet,
		DeduplicateStyles: c.Code.DeduplicateStyles,
		UseVariables:      c.Code.UseVariables,
		SemanticTags:      c.Code.SemanticTags,
		AriaLabels:        c.Code.AriaLabels,
	}
}

// validateConfig validates configuration values for security and correctness.
func validateConfig(config *Config) error {
	if err := validateGridConfig(&config.Grid); err != nil {
		return fmt.Errorf("grid config: %w", err)
	}
	if err := validateCodeConfig(&config.Code); err != nil {
		return fmt.Errorf("code config: %w", err)
	}
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := validatePath(config.Database.Path); err != nil {
		return fmt.Errorf("database config: %w", err)
	}
	if err := validatePath(config.Output.Dir); err != nil {
		return fmt.Errorf("output config: %w", err)
	}
	return nil
}

func validateGridConfig(config *GridConfig) error {
	if config.Enabled && config.Unit <= 0 {
		return fmt.Errorf("unit %g must be positive when the grid is enabled", config.Unit)
	}
	return nil
}

func validateCodeConfig(config *CodeConfig) error {
	if !types.StyleMode(config.StyleMode).Valid() {
		return fmt.Errorf("style_mode %q is not one of embedded, external, inline", config.StyleMode)
	}
	return nil
}

func validateServerConfig(config *ServerConfig) error {
	// allow 0 for system-assigned ports in testing
	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("port %d is not in valid range 0-65535", config.Port)
	}
	if config.Host != "" {
		dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\"}
		for _, char := range dangerousChars {
			if strings.Contains(config.Host, char) {
				return fmt.Errorf("host contains dangerous character: %s", char)
			}
		}
	}
	return nil
}

// validatePath validates a file path for security.
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}
	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path contains traversal: %s", path)
	}
	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}
	return nil
}
