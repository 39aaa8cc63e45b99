package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 4, cfg.Walker.Depth)
	assert.Equal(t, 100, cfg.Walker.WalksPerGraph)
	assert.Equal(t, 4, cfg.Walker.Iterations)
	assert.Equal(t, int64(1), cfg.Walker.Seed)
	assert.Equal(t, "./data", cfg.Storage.DataDir)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("overrides_from_environment", func(t *testing.T) {
		t.Setenv("SLEIPNIR_WALKER_DEPTH", "2")
		t.Setenv("SLEIPNIR_WALKER_WALKS_PER_GRAPH", "50")
		t.Setenv("SLEIPNIR_WALKER_SEED", "1234")
		t.Setenv("SLEIPNIR_STORAGE_IN_MEMORY", "true")
		t.Setenv("SLEIPNIR_OUTPUT_CORPUS_PATH", "/tmp/out.txt")

		cfg := LoadFromEnv()
		assert.Equal(t, 2, cfg.Walker.Depth)
		assert.Equal(t, 50, cfg.Walker.WalksPerGraph)
		assert.Equal(t, int64(1234), cfg.Walker.Seed)
		assert.True(t, cfg.Storage.InMemory)
		assert.Equal(t, "/tmp/out.txt", cfg.Output.CorpusPath)

		// Untouched values keep their defaults.
		assert.Equal(t, 4, cfg.Walker.Iterations)
	})

	t.Run("malformed_values_fall_back_to_defaults", func(t *testing.T) {
		t.Setenv("SLEIPNIR_WALKER_DEPTH", "not-a-number")

		cfg := LoadFromEnv()
		assert.Equal(t, 4, cfg.Walker.Depth)
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("layers_yaml_over_defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sleipnir.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
walker:
  depth: 3
  iterations: 2
storage:
  data_dir: /var/lib/sleipnir
`), 0o644))

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Walker.Depth)
		assert.Equal(t, 2, cfg.Walker.Iterations)
		assert.Equal(t, "/var/lib/sleipnir", cfg.Storage.DataDir)
		// Defaults survive where the file is silent.
		assert.Equal(t, 100, cfg.Walker.WalksPerGraph)
	})

	t.Run("missing_file_errors", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed_yaml_errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("walker: ["), 0o644))

		_, err := LoadFile(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative_depth", func(c *Config) { c.Walker.Depth = -1 }},
		{"zero_walk_cap", func(c *Config) { c.Walker.WalksPerGraph = 0 }},
		{"negative_iterations", func(c *Config) { c.Walker.Iterations = -1 }},
		{"missing_data_dir", func(c *Config) { c.Storage.DataDir = "" }},
		{"missing_corpus_path", func(c *Config) { c.Output.CorpusPath = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	t.Run("in_memory_needs_no_data_dir", func(t *testing.T) {
		cfg := Default()
		cfg.Storage.DataDir = ""
		cfg.Storage.InMemory = true
		assert.NoError(t, cfg.Validate())
	})
}
