package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/tellydone/tellydone/internal/notify"
	"github.com/tellydone/tellydone/internal/watch"
)

// EnvPrefix is the prefix of environment variables that override config keys.
// A double underscore separates nesting levels: TELLYDONE_WATCH__INTERVAL sets
// watch.interval.
const EnvPrefix = "TELLYDONE_"

// Configuration represents the tellydone configuration
type Configuration struct {
	AppriseURL []string     `koanf:"apprise_url" yaml:"apprise_url"`
	Watch      WatchConfig  `koanf:"watch" yaml:"watch"`
	Notify     NotifyConfig `koanf:"notify" yaml:"notify"`

	// Source is the file the configuration was read from, empty for defaults.
	Source string `koanf:"-" yaml:"-"`
}

// WatchConfig holds the settings of the watch command.
type WatchConfig struct {
	Continuous             bool `koanf:"continuous" yaml:"continuous"`
	Interval               int  `koanf:"interval" yaml:"interval" validate:"gt=0"`
	IncludeFullProcessName bool `koanf:"include_full_process_name" yaml:"include_full_process_name"`
}

// NotifyConfig holds delivery settings shared by every endpoint.
type NotifyConfig struct {
	Timeout    int `koanf:"timeout" yaml:"timeout" validate:"min=1,max=3600"`
	RetryMax   int `koanf:"retry_max" yaml:"retry_max" validate:"min=0,max=5"`
	RatePerSec int `koanf:"rate_per_sec" yaml:"rate_per_sec" validate:"min=0"`
}

// Load builds the configuration from defaults, one config file and the
// environment. Priority: Environment variables > Config file > Defaults
//
// When explicit is set it is the only file considered, and a missing or
// malformed file is an error. Otherwise the candidates in paths are tried in
// order; a candidate that cannot be parsed is skipped with a warning.
func Load(paths Paths, explicit string, log zerolog.Logger) (*Configuration, error) {
	k := koanf.New(".")

	// Apply defaults first
	for key, value := range GetDefaults() {
		_ = k.Set(key, value)
	}

	source := ""
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, &ValidationError{FilePath: explicit, Message: "cannot read config file: " + errMessage(err)}
		}
		if err := loadFile(k, explicit); err != nil {
			return nil, err
		}
		source = explicit
	} else {
		for _, path := range paths.Candidates {
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := loadFile(k, path); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("skipping config file")
				continue
			}
			source = path
			break
		}
	}

	// Override with environment variables (highest priority)
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, &ValidationError{FilePath: displayPath(source), Message: err.Error()}
	}
	cfg.Source = source

	if err := ValidateConfigValues(&cfg, displayPath(source)); err != nil {
		return nil, err
	}

	log.Debug().Str("source", displayPath(source)).Int("endpoints", len(cfg.AppriseURL)).Msg("configuration loaded")
	return &cfg, nil
}

// loadFile merges one YAML file into k. Syntax errors are reported with their
// line and column.
func loadFile(k *koanf.Koanf, path string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return err
	}
	if err := k.Load(file.Provider(path), Parser()); err != nil {
		return &ValidationError{FilePath: path, Message: err.Error()}
	}
	// apprise_url may be written as a single string
	if s, ok := k.Get("apprise_url").(string); ok {
		_ = k.Set("apprise_url", SplitAddresses(s))
	}
	return nil
}

// envTransform maps TELLYDONE_WATCH__INTERVAL to watch.interval and splits
// TELLYDONE_APPRISE_URL into a list.
func envTransform(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	if key == "apprise_url" {
		return key, SplitAddresses(value)
	}
	return key, value
}

// SplitAddresses splits a list of endpoint addresses separated by whitespace
// or commas.
func SplitAddresses(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

// WatchSettings converts the watch section into a watch.Config.
func (c *Configuration) WatchSettings() watch.Config {
	return watch.Config{
		Continuous:   c.Watch.Continuous,
		Interval:     time.Duration(c.Watch.Interval) * time.Second,
		IncludeLabel: c.Watch.IncludeFullProcessName,
	}
}

// NotifyOptions converts the notify section into dispatcher options.
func (c *Configuration) NotifyOptions() notify.Options {
	return notify.Options{
		Timeout:    time.Duration(c.Notify.Timeout) * time.Second,
		RetryMax:   c.Notify.RetryMax,
		RatePerSec: c.Notify.RatePerSec,
	}
}

// Default returns the configuration used when no file or environment is set.
func Default() *Configuration {
	return &Configuration{
		AppriseURL: []string{},
		Watch: WatchConfig{
			Interval:               1800,
			IncludeFullProcessName: true,
		},
		Notify: NotifyConfig{Timeout: 10},
	}
}

// Marshal encodes the configuration as YAML.
func (c *Configuration) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes cfg to path as YAML, creating the parent directory.
// The file is readable only by its owner since endpoint addresses carry
// credentials.
func WriteFile(path string, cfg *Configuration) error {
	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func displayPath(source string) string {
	if source == "" {
		return "<defaults>"
	}
	return source
}

func errMessage(err error) string {
	if os.IsNotExist(err) {
		return "file does not exist"
	}
	if os.IsPermission(err) {
		return "permission denied"
	}
	return err.Error()
}
