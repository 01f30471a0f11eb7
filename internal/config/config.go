// Package config provides configuration management for triageq.
//
// Configuration is loaded from multiple sources with the following precedence
// (highest to lowest):
//  1. CLI flags (set via SetOverride)
//  2. Project config: ./triageq.yaml or ./.triageq/config/triageq.yaml
//  3. Global config: ~/.config/triageq/config.yaml
//  4. Built-in defaults
//
// The package uses Viper for configuration merging.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the triageq.yaml configuration file.
type Config struct {
	// Version is the configuration schema version (currently "1")
	Version string `yaml:"version" mapstructure:"version" validate:"required,eq=1"`

	// IntakeDir is the directory scanned for patient intake files,
	// relative to the working directory.
	IntakeDir string `yaml:"intake_dir,omitempty" mapstructure:"intake_dir"`

	// CriticalSymptoms overrides the built-in critical symptom list used
	// by the scorer. Leave empty to keep the defaults.
	CriticalSymptoms []string `yaml:"critical_symptoms,omitempty" mapstructure:"critical_symptoms"`

	// Classifier contains settings for the rule-based risk classifier
	Classifier ClassifierConfig `yaml:"classifier" mapstructure:"classifier"`

	// Queue contains queue display and wait-estimate settings
	Queue QueueConfig `yaml:"queue" mapstructure:"queue"`
}

// ClassifierConfig contains settings for the risk classifier collaborator.
type ClassifierConfig struct {
	// Threshold is the minimum keyword score for a risk tier to match
	Threshold float64 `yaml:"threshold" mapstructure:"threshold" validate:"gte=0,lte=1"`

	// Fallback is the risk level assigned when no tier matches
	Fallback string `yaml:"fallback" mapstructure:"fallback" validate:"omitempty,oneof=IMMEDIATE HIGH MEDIUM LOW"`
}

// QueueConfig contains queue presentation settings.
type QueueConfig struct {
	// WaitMinutes is the estimated service time per patient ahead in the
	// queue, used for wait-time estimates.
	WaitMinutes int `yaml:"wait_minutes" mapstructure:"wait_minutes" validate:"gte=1,lte=240"`

	// DisplayLimit caps how many patients list views show by default
	DisplayLimit int `yaml:"display_limit" mapstructure:"display_limit" validate:"gte=1,lte=500"`
}

// ValidationError represents a configuration validation error with field details.
type ValidationError struct {
	Field   string
	Tag     string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Message)
	}
	return strings.Join(msgs, "; ")
}

// Loader handles configuration loading from multiple sources.
type Loader struct {
	v         *viper.Viper
	validator *validator.Validate
	overrides map[string]interface{}
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")

	return &Loader{
		v:         v,
		validator: validator.New(),
		overrides: make(map[string]interface{}),
	}
}

// SetOverride sets a CLI override value that takes highest precedence.
// Use dot notation for nested keys (e.g., "queue.wait_minutes").
func (l *Loader) SetOverride(key string, value interface{}) {
	l.overrides[key] = value
}

// Load reads configuration from all sources and returns the merged result.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()
	l.setDefaults()

	// Load global config (~/.config/triageq/config.yaml)
	globalPath := l.globalConfigPath()
	if globalPath != "" && fileExists(globalPath) {
		if err := l.loadConfigFile(globalPath); err != nil {
			return nil, fmt.Errorf("failed to load global config %s: %w", globalPath, err)
		}
	}

	// Load project config (./triageq.yaml or ./.triageq/config/triageq.yaml)
	projectPath := l.findProjectConfig()
	if projectPath != "" {
		if err := l.loadConfigFile(projectPath); err != nil {
			return nil, fmt.Errorf("failed to load project config %s: %w", projectPath, err)
		}
	}

	// Apply CLI overrides (highest precedence)
	for key, value := range l.overrides {
		l.v.Set(key, value)
	}

	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := l.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path.
func (l *Loader) LoadFromPath(path string) (*Config, error) {
	l.setDefaults()

	if err := l.loadConfigFile(path); err != nil {
		return nil, err
	}

	for key, value := range l.overrides {
		l.v.Set(key, value)
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := l.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration against the schema.
func (l *Loader) Validate(cfg *Config) error {
	var errs ValidationErrors

	err := l.validator.Struct(cfg)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, e := range validationErrs {
				errs = append(errs, ValidationError{
					Field:   e.Namespace(),
					Tag:     e.Tag(),
					Value:   e.Value(),
					Message: formatValidationError(e),
				})
			}
		} else {
			return fmt.Errorf("validation error: %w", err)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("version", defaults.Version)
	l.v.SetDefault("intake_dir", defaults.IntakeDir)
	l.v.SetDefault("classifier.threshold", defaults.Classifier.Threshold)
	l.v.SetDefault("classifier.fallback", defaults.Classifier.Fallback)
	l.v.SetDefault("queue.wait_minutes", defaults.Queue.WaitMinutes)
	l.v.SetDefault("queue.display_limit", defaults.Queue.DisplayLimit)
}

func (l *Loader) loadConfigFile(path string) error {
	l.v.SetConfigFile(path)
	return l.v.MergeInConfig()
}

func (l *Loader) globalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "triageq", "config.yaml")
}

func (l *Loader) findProjectConfig() string {
	if fileExists("triageq.yaml") {
		return "triageq.yaml"
	}

	altPath := filepath.Join(".triageq", "config", "triageq.yaml")
	if fileExists(altPath) {
		return altPath
	}

	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func formatValidationError(e validator.FieldError) string {
	field := e.Namespace()
	field = strings.TrimPrefix(field, "Config.")

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("'%s' is required", field)
	case "eq":
		return fmt.Sprintf("'%s' must be '%s' (got '%v')", field, e.Param(), e.Value())
	case "oneof":
		return fmt.Sprintf("'%s' must be one of [%s] (got '%v')", field, e.Param(), e.Value())
	case "gte":
		return fmt.Sprintf("'%s' must be at least %s (got '%v')", field, e.Param(), e.Value())
	case "lte":
		return fmt.Sprintf("'%s' must be at most %s (got '%v')", field, e.Param(), e.Value())
	default:
		return fmt.Sprintf("'%s' failed validation '%s'", field, e.Tag())
	}
}

// DefaultConfig returns a new Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:   "1",
		IntakeDir: "intake",
		Classifier: ClassifierConfig{
			Threshold: 0,
			Fallback:  "LOW",
		},
		Queue: QueueConfig{
			WaitMinutes:  15,
			DisplayLimit: 50,
		},
	}
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	return Write(DefaultConfig(), path)
}

// Write writes the configuration to the specified path.
func Write(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0600)
}

// Load is a convenience function that creates a Loader and loads the config.
func Load() (*Config, error) {
	return NewLoader().Load()
}

// Exists checks if a configuration file exists at the given path.
func Exists(path string) bool {
	return fileExists(path)
}

// FindProjectConfig returns the path to the project configuration file,
// or an empty string if no project config is found.
func FindProjectConfig() string {
	return NewLoader().findProjectConfig()
}
