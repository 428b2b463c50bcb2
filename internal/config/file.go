package config

// Optional YAML config file support. The file supplies defaults for the
// common conversion options; any flag the user passed explicitly on the
// command line keeps its CLI value.

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML schema. Pointer fields distinguish "absent"
// from zero values.
type fileConfig struct {
	Speed      *string `yaml:"speed"`
	Profile    *string `yaml:"profile"`
	Normalize  *bool   `yaml:"normalize"`
	OutputDir  *string `yaml:"output_dir"`
	Overwrite  *bool   `yaml:"overwrite"`
	LogFile    *string `yaml:"log"`
	FFmpegPath *string `yaml:"ffmpeg"`
}

// mergeFile loads path and applies its values to cfg, skipping any option
// the user already set via CLI flag (setFlags holds the names seen by
// flag.Visit, including short aliases).
func mergeFile(cfg *Config, path string, setFlags map[string]bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}

	isSet := func(names ...string) bool {
		for _, n := range names {
			if setFlags[n] {
				return true
			}
		}
		return false
	}

	if fc.Speed != nil && !isSet("speed", "s") {
		v, err := ParseSpeed(*fc.Speed)
		if err != nil {
			return fmt.Errorf("config file %s: %w", path, err)
		}
		cfg.Speed = v
	}
	if fc.Profile != nil && !isSet("profile") {
		pv := profileValue{&cfg.Profile}
		if err := pv.Set(*fc.Profile); err != nil {
			return fmt.Errorf("config file %s: %w", path, err)
		}
	}
	if fc.Normalize != nil && !isSet("normalize", "n") {
		cfg.NormalizeAudio = *fc.Normalize
	}
	if fc.OutputDir != nil && !isSet("out", "o") {
		cfg.OutputDir = *fc.OutputDir
	}
	if fc.Overwrite != nil && !isSet("no-overwrite") {
		cfg.Overwrite = *fc.Overwrite
	}
	if fc.LogFile != nil && !isSet("log", "l") {
		cfg.LogFile = *fc.LogFile
	}
	if fc.FFmpegPath != nil {
		cfg.FFmpegPath = *fc.FFmpegPath
	}
	return nil
}
