package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the knowledge base engine.
type Config struct {
	Documents DocumentsConfig `yaml:"documents"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DocumentsConfig describes where documents come from.
type DocumentsConfig struct {
	Dir             string   `yaml:"dir"`
	Includes        []string `yaml:"includes"`
	Excludes        []string `yaml:"excludes"`
	CacheEnabled    bool     `yaml:"cache_enabled"`
	FallbackSamples bool     `yaml:"fallback_samples"`
}

// ChunkingConfig controls how document text is segmented.
type ChunkingConfig struct {
	ChunkSize        int  `yaml:"chunk_size"`
	OverlapSize      int  `yaml:"overlap_size"`
	SplitOnSentences bool `yaml:"split_on_sentences"`
}

// RetrievalConfig holds the retrieval and ranking knobs. The partial match
// weight, position bonus curve and score ceiling are empirical tuning
// constants; the defaults reproduce the established ranking behavior.
type RetrievalConfig struct {
	MinChunkLength     int     `yaml:"min_chunk_length"`
	TopK               int     `yaml:"top_k"`
	RelevanceThreshold float64 `yaml:"relevance_threshold"`
	K1                 float64 `yaml:"k1"`
	B                  float64 `yaml:"b"`
	PartialMatchWeight float64 `yaml:"partial_match_weight"`
	PositionBonusMax   float64 `yaml:"position_bonus_max"`
	PositionBonusMin   float64 `yaml:"position_bonus_min"`
	ScoreCeiling       float64 `yaml:"score_ceiling"`
}

// ServerConfig holds the MCP server settings.
type ServerConfig struct {
	Transport string `yaml:"transport"` // "stdio" or "sse"
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Documents: DocumentsConfig{
			Dir:             "documents",
			Includes:        []string{"**/*.txt", "**/*.md"},
			Excludes:        []string{"**/.*/**"},
			CacheEnabled:    true,
			FallbackSamples: true,
		},
		Chunking: ChunkingConfig{
			ChunkSize:        1000,
			OverlapSize:      200,
			SplitOnSentences: true,
		},
		Retrieval: RetrievalConfig{
			MinChunkLength:     50,
			TopK:               5,
			RelevanceThreshold: 0.15,
			K1:                 1.5,
			B:                  0.75,
			PartialMatchWeight: 0.5,
			PositionBonusMax:   2.0,
			PositionBonusMin:   0.2,
			ScoreCeiling:       10.0,
		},
		Server: ServerConfig{
			Transport: "stdio",
			Host:      "127.0.0.1",
			Port:      8391,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file, applying it over the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromDir loads configuration from a directory, looking for kbrag.yaml
// and then .kbrag/config.yaml.
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "kbrag.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".kbrag", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CachePath returns the extracted-text cache location for a root directory.
func CachePath(dir string) string {
	return filepath.Join(dir, ".kbrag", "textcache.db")
}

// EnsureStateDir ensures the .kbrag directory exists under dir.
func EnsureStateDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".kbrag"), 0755)
}
