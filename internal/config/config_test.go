package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load_CreatesDefaultIfMissing(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	loader, err := NewLoader()
	require.NoError(t, err)

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpHome, ".paiqm", "games"), cfg.Storage.Root)
	assert.Equal(t, filepath.Join(tmpHome, ".paiqm", "logs"), cfg.Storage.Logs)
	assert.Empty(t, cfg.Registry.Path)
	assert.Empty(t, cfg.Python.Interpreter)
	assert.Equal(t, DefaultManifestTimeout, cfg.Manifest.Timeout)
	assert.NoError(t, cfg.Validate())

	_, err = os.Stat(loader.Path())
	assert.NoError(t, err)
}

func TestLoader_Load_ReadsExistingConfig(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	configDir := filepath.Join(tmpHome, ".config", "paiqm")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	configContent := `
storage:
  root: ~/games
  logs: /var/log/paiqm
registry:
  path: ~/registry.json
python:
  interpreter: /usr/bin/python3.12
manifest:
  timeout: 5s
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644))

	loader, err := NewLoader()
	require.NoError(t, err)

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpHome, "games"), cfg.Storage.Root)
	assert.Equal(t, "/var/log/paiqm", cfg.Storage.Logs)
	assert.Equal(t, filepath.Join(tmpHome, "registry.json"), cfg.Registry.Path)
	assert.Equal(t, "/usr/bin/python3.12", cfg.Python.Interpreter)
	assert.Equal(t, 5*time.Second, cfg.Manifest.Timeout)
}

func TestLoader_Load_EnvVarOverride(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)
	t.Setenv("PAIQM_REGISTRY", "/srv/registry.json")
	t.Setenv("PAIQM_PYTHON", "python3.11")
	t.Setenv("PAIQM_ROOT", "/srv/games")
	t.Setenv("PAIQM_MANIFEST_TOKEN", "s3cret")
	t.Setenv("PAIQM_MANIFEST_TIMEOUT", "1m")

	loader, err := NewLoader()
	require.NoError(t, err)

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/registry.json", cfg.Registry.Path)
	assert.Equal(t, "python3.11", cfg.Python.Interpreter)
	assert.Equal(t, "/srv/games", cfg.Storage.Root)
	assert.Equal(t, "s3cret", cfg.Manifest.Token)
	assert.Equal(t, time.Minute, cfg.Manifest.Timeout)
}

func TestLoader_Load_RelativeStoragePathsBecomeAbsolute(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("PAIQM_ROOT", "games")
	t.Setenv("PAIQM_STORAGE_LOGS", filepath.Join("state", "logs"))

	wd, err := os.Getwd()
	require.NoError(t, err)

	loader, err := NewLoader()
	require.NoError(t, err)

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(wd, "games"), cfg.Storage.Root)
	assert.Equal(t, filepath.Join(wd, "state", "logs"), cfg.Storage.Logs)
	assert.True(t, filepath.IsAbs(cfg.Storage.Root))
}

func TestLoader_Path(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	loader, err := NewLoader()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpHome, ".config", "paiqm", "config.yaml"), loader.Path())
}

func TestLoader_Get(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	loader, err := NewLoader()
	require.NoError(t, err)
	_, err = loader.Load()
	require.NoError(t, err)

	t.Run("valid key returns value", func(t *testing.T) {
		val, err := loader.Get("storage.root")
		require.NoError(t, err)
		assert.Equal(t, "~/.paiqm/games", val)
	})

	t.Run("invalid key returns error", func(t *testing.T) {
		_, err := loader.Get("invalid.key")
		assert.ErrorIs(t, err, ErrInvalidKey)
	})
}

func TestLoader_Set(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	loader, err := NewLoader()
	require.NoError(t, err)
	_, err = loader.Load()
	require.NoError(t, err)

	t.Run("sets and persists a valid key", func(t *testing.T) {
		require.NoError(t, loader.Set("python.interpreter", "/opt/python/bin/python3"))

		val, err := loader.Get("python.interpreter")
		require.NoError(t, err)
		assert.Equal(t, "/opt/python/bin/python3", val)

		reloaded, err := NewLoader()
		require.NoError(t, err)
		cfg, err := reloaded.Load()
		require.NoError(t, err)
		assert.Equal(t, "/opt/python/bin/python3", cfg.Python.Interpreter)
	})

	t.Run("accepts a duration timeout", func(t *testing.T) {
		assert.NoError(t, loader.Set("manifest.timeout", "45s"))
	})

	t.Run("rejects a bad timeout", func(t *testing.T) {
		assert.ErrorIs(t, loader.Set("manifest.timeout", "soon"), ErrInvalidTimeout)
		assert.ErrorIs(t, loader.Set("manifest.timeout", "-1s"), ErrInvalidTimeout)
	})

	t.Run("rejects invalid key", func(t *testing.T) {
		assert.ErrorIs(t, loader.Set("invalid.key", "value"), ErrInvalidKey)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Storage:  StorageConfig{Root: "/tmp/games", Logs: "/tmp/logs"},
			Manifest: ManifestConfig{Timeout: time.Second},
		}
	}

	t.Run("valid config", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing root", func(t *testing.T) {
		cfg := valid()
		cfg.Storage.Root = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Root")
	})

	t.Run("zero timeout", func(t *testing.T) {
		cfg := valid()
		cfg.Manifest.Timeout = 0
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Timeout")
	})
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{"storage.root is valid", "storage.root", nil},
		{"storage.logs is valid", "storage.logs", nil},
		{"registry.path is valid", "registry.path", nil},
		{"python.interpreter is valid", "python.interpreter", nil},
		{"manifest.timeout is valid", "manifest.timeout", nil},
		{"manifest.token is valid", "manifest.token", nil},
		{"section is valid", "storage", nil},
		{"unknown.key returns error", "unknown.key", ErrInvalidKey},
		{"empty key returns error", "", ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, "registry.path")
	assert.IsNonDecreasing(t, keys)
}

func TestLoader_expandPath(t *testing.T) {
	loader := &Loader{homeDir: "/home/test"}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"expands ~/ prefix", "~/foo", "/home/test/foo"},
		{"expands ~ alone", "~", "/home/test"},
		{"preserves absolute path", "/absolute/path", "/absolute/path"},
		{"preserves relative path", "relative/path", "relative/path"},
		{"preserves empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, loader.expandPath(tt.input))
		})
	}
}
