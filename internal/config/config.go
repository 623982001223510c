// Package config provides configuration management for paiqm.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Default configuration values.
const (
	DefaultConfigDir  = ".config/paiqm"
	DefaultConfigFile = "config.yaml"
	DefaultDataDir    = ".paiqm"

	// DefaultManifestTimeout bounds a single manifest request.
	DefaultManifestTimeout = 20 * time.Second
)

// EnvPrefix prefixes every environment variable read by the loader.
const EnvPrefix = "PAIQM"

// Sentinel errors for configuration operations.
var (
	ErrInvalidKey     = errors.New("invalid configuration key")
	ErrInvalidTimeout = errors.New("invalid manifest timeout")
	ErrNoEditor       = errors.New("$EDITOR environment variable not set")
)

// validKeys is built once from Config struct reflection.
var validKeys = buildValidKeys()

// validate is the shared validator instance.
var validate = validator.New()

// Config represents the full paiqm configuration.
type Config struct {
	Storage  StorageConfig  `mapstructure:"storage" yaml:"storage" validate:"required"`
	Registry RegistryConfig `mapstructure:"registry" yaml:"registry"`
	Python   PythonConfig   `mapstructure:"python" yaml:"python"`
	Manifest ManifestConfig `mapstructure:"manifest" yaml:"manifest"`
}

// StorageConfig holds storage locations.
type StorageConfig struct {
	Root string `mapstructure:"root" yaml:"root" validate:"required"`
	Logs string `mapstructure:"logs" yaml:"logs" validate:"required"`
}

// RegistryConfig locates registry.json. An empty path uses the default
// search (next to the executable, then the working directory).
type RegistryConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// PythonConfig selects the host interpreter used to create environments.
// An empty interpreter searches PATH for python3, then python.
type PythonConfig struct {
	Interpreter string `mapstructure:"interpreter" yaml:"interpreter"`
}

// ManifestConfig controls manifest retrieval.
type ManifestConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"gt=0"`
	// Token is sent as a bearer token to hosts without a stored credential.
	Token string `mapstructure:"token" yaml:"token,omitempty"`
}

// Validate checks the configuration for errors using struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Loader provides configuration loading and saving.
type Loader struct {
	v       *viper.Viper
	path    string
	homeDir string
}

// NewLoader creates a new configuration loader.
func NewLoader() (*Loader, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home directory: %w", err)
	}

	configPath := filepath.Join(home, DefaultConfigDir, DefaultConfigFile)

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	//nolint:errcheck // BindEnv only fails with zero arguments
	v.BindEnv("storage.root", "PAIQM_ROOT")
	//nolint:errcheck // BindEnv only fails with zero arguments
	v.BindEnv("registry.path", "PAIQM_REGISTRY")
	//nolint:errcheck // BindEnv only fails with zero arguments
	v.BindEnv("python.interpreter", "PAIQM_PYTHON")
	//nolint:errcheck // BindEnv only fails with zero arguments
	v.BindEnv("manifest.token", "PAIQM_MANIFEST_TOKEN")

	l := &Loader{
		v:       v,
		path:    configPath,
		homeDir: home,
	}
	l.setDefaults()

	return l, nil
}

// setDefaults sets all default configuration values using Viper.
func (l *Loader) setDefaults() {
	l.v.SetDefault("storage.root", "~/.paiqm/games")
	l.v.SetDefault("storage.logs", "~/.paiqm/logs")
	l.v.SetDefault("registry.path", "")
	l.v.SetDefault("python.interpreter", "")
	l.v.SetDefault("manifest.timeout", DefaultManifestTimeout.String())
	l.v.SetDefault("manifest.token", "")
}

// Load reads the configuration file, creating defaults if it doesn't exist.
func (l *Loader) Load() (*Config, error) {
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		if err := l.createDefault(); err != nil {
			return nil, fmt.Errorf("create default config: %w", err)
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = true
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	var err error
	if cfg.Storage.Root, err = absPath(l.expandPath(cfg.Storage.Root)); err != nil {
		return nil, fmt.Errorf("resolve storage.root: %w", err)
	}
	if cfg.Storage.Logs, err = absPath(l.expandPath(cfg.Storage.Logs)); err != nil {
		return nil, fmt.Errorf("resolve storage.logs: %w", err)
	}
	cfg.Registry.Path = l.expandPath(cfg.Registry.Path)

	return &cfg, nil
}

// Path returns the configuration file path.
func (l *Loader) Path() string {
	return l.path
}

// Get returns a configuration value by dot-notation key.
func (l *Loader) Get(key string) (any, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	return l.v.Get(key), nil
}

// Set sets a configuration value by dot-notation key and writes the file.
func (l *Loader) Set(key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	if key == "manifest.timeout" {
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: %q (use a positive duration such as 20s)", ErrInvalidTimeout, value)
		}
	}

	l.v.Set(key, value)
	return l.v.WriteConfig()
}

// createDefault writes the default configuration file using Viper.
func (l *Loader) createDefault() error {
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	return l.v.SafeWriteConfigAs(l.path)
}

// absPath makes a non-empty path absolute against the working directory.
// Child processes run with their own working directory, so storage paths
// must not stay relative.
func absPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	return filepath.Abs(path)
}

// expandPath replaces ~ with the home directory.
func (l *Loader) expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(l.homeDir, path[2:])
	}
	if path == "~" {
		return l.homeDir
	}
	return path
}

// ValidateKey checks if a key is a valid configuration key.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	if validKeys[key] {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidKey, key)
}

// Keys returns every valid configuration key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(validKeys))
	for k := range validKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// buildValidKeys builds the set of valid keys from Config struct using reflection.
func buildValidKeys() map[string]bool {
	keys := make(map[string]bool)
	addKeysFromType(reflect.TypeOf(Config{}), "", keys)
	return keys
}

// addKeysFromType recursively adds keys from a struct type.
func addKeysFromType(t reflect.Type, prefix string, keys map[string]bool) {
	for i := range t.NumField() {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		keys[key] = true

		if field.Type.Kind() == reflect.Struct {
			addKeysFromType(field.Type, key, keys)
		}
	}
}
