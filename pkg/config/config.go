// Package config handles Sleipnir configuration.
//
// Configuration can be loaded from:
//   - Environment variables (recommended for Docker/K8s)
//   - YAML configuration file
//   - Programmatic defaults
//
// Environment Variables:
//
//	SLEIPNIR_WALKER_DEPTH            - Expansion steps per walk (default: 4)
//	SLEIPNIR_WALKER_WALKS_PER_GRAPH  - Walk cap per root (default: 100)
//	SLEIPNIR_WALKER_ITERATIONS       - WL relabeling rounds (default: 4)
//	SLEIPNIR_WALKER_SEED             - Sampling seed (default: 1)
//	SLEIPNIR_STORAGE_DATA_DIR        - Triple store directory (default: ./data)
//	SLEIPNIR_STORAGE_IN_MEMORY       - Skip disk persistence (default: false)
//	SLEIPNIR_OUTPUT_CORPUS_PATH      - Walk corpus output file (default: ./walks.txt)
//
// Example Usage:
//
//	cfg := config.LoadFromEnv()
//	if err := cfg.Validate(); err != nil {
//		log.Fatalf("Invalid config: %v", err)
//	}
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all Sleipnir configuration.
type Config struct {
	// Walker settings control walk sampling and relabeling.
	Walker WalkerConfig `yaml:"walker"`

	// Storage settings for the triple store.
	Storage StorageConfig `yaml:"storage"`

	// Output settings for the walk corpus.
	Output OutputConfig `yaml:"output"`
}

// WalkerConfig holds walk extraction settings.
type WalkerConfig struct {
	// Depth is the number of expansion steps per walk; a walk spans at
	// most 2*Depth+1 vertices.
	Depth int `yaml:"depth"`
	// WalksPerGraph caps the number of walks kept per root instance.
	WalksPerGraph int `yaml:"walks_per_graph"`
	// Iterations is the number of Weisfeiler-Lehman relabeling rounds.
	Iterations int `yaml:"iterations"`
	// Seed drives walk sampling; a fixed seed reproduces identical output.
	Seed int64 `yaml:"seed"`
}

// StorageConfig holds triple store settings.
type StorageConfig struct {
	// DataDir is the BadgerDB directory.
	DataDir string `yaml:"data_dir"`
	// InMemory skips disk persistence entirely.
	InMemory bool `yaml:"in_memory"`
}

// OutputConfig holds corpus output settings.
type OutputConfig struct {
	// CorpusPath is where the extracted walk corpus is written.
	CorpusPath string `yaml:"corpus_path"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Walker: WalkerConfig{
			Depth:         4,
			WalksPerGraph: 100,
			Iterations:    4,
			Seed:          1,
		},
		Storage: StorageConfig{
			DataDir: "./data",
		},
		Output: OutputConfig{
			CorpusPath: "./walks.txt",
		},
	}
}

// LoadFromEnv builds a Config from environment variables, falling back to
// defaults for anything unset.
func LoadFromEnv() *Config {
	cfg := Default()

	cfg.Walker.Depth = getEnvInt("SLEIPNIR_WALKER_DEPTH", cfg.Walker.Depth)
	cfg.Walker.WalksPerGraph = getEnvInt("SLEIPNIR_WALKER_WALKS_PER_GRAPH", cfg.Walker.WalksPerGraph)
	cfg.Walker.Iterations = getEnvInt("SLEIPNIR_WALKER_ITERATIONS", cfg.Walker.Iterations)
	cfg.Walker.Seed = getEnvInt64("SLEIPNIR_WALKER_SEED", cfg.Walker.Seed)
	cfg.Storage.DataDir = getEnvString("SLEIPNIR_STORAGE_DATA_DIR", cfg.Storage.DataDir)
	cfg.Storage.InMemory = getEnvBool("SLEIPNIR_STORAGE_IN_MEMORY", cfg.Storage.InMemory)
	cfg.Output.CorpusPath = getEnvString("SLEIPNIR_OUTPUT_CORPUS_PATH", cfg.Output.CorpusPath)

	return cfg
}

// LoadFile reads a YAML config file layered over the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.Walker.Depth < 0 {
		return fmt.Errorf("walker depth must be >= 0, got %d", c.Walker.Depth)
	}
	if c.Walker.WalksPerGraph <= 0 {
		return fmt.Errorf("walks per graph must be > 0, got %d", c.Walker.WalksPerGraph)
	}
	if c.Walker.Iterations < 0 {
		return fmt.Errorf("walker iterations must be >= 0, got %d", c.Walker.Iterations)
	}
	if !c.Storage.InMemory && c.Storage.DataDir == "" {
		return fmt.Errorf("storage data dir required unless in-memory")
	}
	if c.Output.CorpusPath == "" {
		return fmt.Errorf("output corpus path required")
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
