// Package config holds the pipeline settings, read from a YAML file over
// built-in defaults. Values a file leaves out keep their defaults; values
// outside their valid range are repaired back to them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Data     DataConfig     `yaml:"data"`
	Split    SplitConfig    `yaml:"split"`
	Features FeaturesConfig `yaml:"features"`
	Model    ModelConfig    `yaml:"model"`
}

type DataConfig struct {
	LabelColumn     string   `yaml:"label_column"`
	Sentinel        string   `yaml:"sentinel"`         // invalid-value marker in text columns
	MetadataColumns int      `yaml:"metadata_columns"` // leading identifier columns to strip, 0 disables
	MissingValues   []string `yaml:"missing_values"`
}

type SplitConfig struct {
	TrainFraction float64 `yaml:"train_fraction"`
	Seed          uint64  `yaml:"seed"` // 0 means unset and falls back to the default
}

type FeaturesConfig struct {
	CorrelationThreshold float64 `yaml:"correlation_threshold"`
}

type ModelConfig struct {
	Kind            string  `yaml:"kind"` // forest or tree
	Trees           int     `yaml:"trees"`
	FeaturesPerTree int     `yaml:"features_per_tree"` // 0 picks sqrt of the feature count
	Prune           float64 `yaml:"prune"`
	Folds           int     `yaml:"folds"` // cross-validation folds, below 2 skips the estimate
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			LabelColumn:     "classe",
			Sentinel:        "#DIV/0!",
			MetadataColumns: 7,
			MissingValues:   []string{"NA", "NaN"},
		},
		Split: SplitConfig{
			TrainFraction: 0.75,
			Seed:          44111342,
		},
		Features: FeaturesConfig{
			CorrelationThreshold: 0.8,
		},
		Model: ModelConfig{
			Kind:            "forest",
			Trees:           100,
			FeaturesPerTree: 0,
			Prune:           0.6,
			Folds:           5,
		},
	}
}

// Load reads configPath over the defaults. An empty path searches the
// working directory for harpipe.yaml and quietly falls back to defaults
// when nothing is found.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		for _, p := range []string{"configs/harpipe.yaml", "harpipe.yaml"} {
			data, err := os.ReadFile(p)
			if err != nil {
				continue
			}
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", p, err)
			}
			break
		}
		applyDefaults(cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Data.LabelColumn == "" {
		cfg.Data.LabelColumn = "classe"
	}
	if cfg.Data.Sentinel == "" {
		cfg.Data.Sentinel = "#DIV/0!"
	}
	if cfg.Data.MetadataColumns < 0 {
		cfg.Data.MetadataColumns = 7
	}
	if len(cfg.Data.MissingValues) == 0 {
		cfg.Data.MissingValues = []string{"NA", "NaN"}
	}
	if cfg.Split.TrainFraction <= 0 || cfg.Split.TrainFraction >= 1 {
		cfg.Split.TrainFraction = 0.75
	}
	if cfg.Split.Seed == 0 {
		cfg.Split.Seed = 44111342
	}
	if cfg.Features.CorrelationThreshold <= 0 || cfg.Features.CorrelationThreshold > 1 {
		cfg.Features.CorrelationThreshold = 0.8
	}
	if cfg.Model.Kind == "" {
		cfg.Model.Kind = "forest"
	}
	if cfg.Model.Trees <= 0 {
		cfg.Model.Trees = 100
	}
	if cfg.Model.FeaturesPerTree < 0 {
		cfg.Model.FeaturesPerTree = 0
	}
	if cfg.Model.Prune <= 0 || cfg.Model.Prune >= 1 {
		cfg.Model.Prune = 0.6
	}
	if cfg.Model.Folds < 0 {
		cfg.Model.Folds = 0
	}
}
