// Package config loads and validates the watchdeck process manifest.
// The manifest is a TOML file declaring an ordered list of processes to
// supervise; it is read once at startup and never reloaded.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/watchdeck/watchdeck/internal/classify"
)

// Config is the complete watchdeck configuration.
type Config struct {
	// Processes is the ordered list of supervised processes. Order is
	// significant: it fixes sidebar order, stable indices, and which
	// errored process autofocus prefers.
	Processes []ProcessSpec `mapstructure:"processes"`
}

// ProcessSpec declares one supervised process. Specs are immutable
// after loading.
type ProcessSpec struct {
	// Name identifies the process in the sidebar and as an `after`
	// target. When empty, the joined command is used for display.
	Name string `mapstructure:"name"`

	// Command is the argv to run, command first.
	Command []string `mapstructure:"command"`

	// WorkingDirectory is resolved against the supervisor's working
	// directory when relative. Empty means the supervisor's cwd.
	WorkingDirectory string `mapstructure:"working_directory"`

	// Type selects a built-in status detector (e.g. "tsc-watch") and
	// overrides ErrorRegex/SuccessRegex when set.
	Type string `mapstructure:"type"`

	// After names the upstream process this one waits for. The process
	// is (re)started whenever the upstream reaches a successful status.
	After string `mapstructure:"after"`

	// Autostart controls whether the process starts with the
	// supervisor. Defaults to true unless After is set.
	Autostart *bool `mapstructure:"autostart"`

	// ErrorRegex marks a line as an error. With a capture group, the
	// captured value is read as an error count and zero counts as
	// success.
	ErrorRegex string `mapstructure:"error_regex"`

	// SuccessRegex marks a line as a success. Checked only when
	// ErrorRegex did not match.
	SuccessRegex string `mapstructure:"success_regex"`
}

// DisplayName returns the configured name, falling back to the joined
// command line.
func (s ProcessSpec) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return strings.Join(s.Command, " ")
}

// AutostartEnabled reports whether the process starts with the
// supervisor.
func (s ProcessSpec) AutostartEnabled() bool {
	if s.Autostart != nil {
		return *s.Autostart
	}
	return s.After == ""
}

// Rule builds the line classification rule for this process. The
// built-in type wins over configured regexes: a type is a complete
// preset.
func (s ProcessSpec) Rule() (*classify.Rule, error) {
	if s.Type != "" {
		rule, ok := classify.Builtin(s.Type)
		if !ok {
			return nil, fmt.Errorf("unknown process type %q (known types: %s)",
				s.Type, strings.Join(classify.BuiltinNames(), ", "))
		}
		return rule, nil
	}
	return classify.NewRule(s.ErrorRegex, s.SuccessRegex)
}

// Dir resolves the working directory against base when relative.
func (s ProcessSpec) Dir(base string) string {
	if s.WorkingDirectory == "" {
		return base
	}
	if filepath.IsAbs(s.WorkingDirectory) {
		return s.WorkingDirectory
	}
	return filepath.Join(base, s.WorkingDirectory)
}

// Load reads and validates the manifest at path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}
