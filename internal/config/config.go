// Package config holds the scan catalog: which caches to probe, their
// emit thresholds, and the cleanup command suggested for each. A default
// catalog is embedded; a user file can override parts of it.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/minsu-kang/reclaim/internal/types"
)

//go:embed config.yaml
var embeddedConfig []byte

// Settings are the tunables shared by the file-oriented analyzers.
type Settings struct {
	OldFileDays          int   `yaml:"old_file_days"`
	OldDownloadsMinMB    int64 `yaml:"old_downloads_min_mb"`
	InstallerMinMB       int64 `yaml:"installer_min_mb"`
	LargeFileMinMB       int64 `yaml:"large_file_min_mb"`
	ProjectArtifactMinMB int64 `yaml:"project_artifact_min_mb"`
	ProjectScanDepth     int   `yaml:"project_scan_depth"`
}

// CacheEntry describes one package-manager cache: where it lives, when it
// is worth reporting, and how the user would clear it themselves.
type CacheEntry struct {
	ID             string       `yaml:"id"`
	Name           string       `yaml:"name"`
	Paths          []string     `yaml:"paths"`
	ThresholdMB    int64        `yaml:"threshold_mb"`
	Action         types.Action `yaml:"action"`
	CleanupCommand string       `yaml:"cleanup_command"`
}

// ToolingSubdir is one well-known cache/index/log folder within a product
// directory, with its own threshold and recommended action.
type ToolingSubdir struct {
	Name        string       `yaml:"name"`
	ThresholdMB int64        `yaml:"threshold_mb"`
	Action      types.Action `yaml:"action"`
}

// ToolingFamily groups the cache locations of one IDE/editor product line.
type ToolingFamily struct {
	Family  string          `yaml:"family"`
	Roots   []string        `yaml:"roots"`
	Subdirs []ToolingSubdir `yaml:"subdirs"`
}

type Config struct {
	Settings         Settings        `yaml:"settings"`
	DependencyCaches []CacheEntry    `yaml:"dependency_caches"`
	ToolingCaches    []ToolingFamily `yaml:"tooling_caches"`
}

// UserConfig is the shape of the optional override file.
type UserConfig struct {
	Settings              *Settings    `yaml:"settings,omitempty"`
	Disabled              []string     `yaml:"disabled,omitempty"`
	ExtraDependencyCaches []CacheEntry `yaml:"extra_dependency_caches,omitempty"`
}

// LoadEmbedded parses the built-in catalog.
func LoadEmbedded() (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(embeddedConfig, &cfg); err != nil {
		return nil, fmt.Errorf("parse embedded config: %w", err)
	}
	return &cfg, nil
}

// LoadUser reads an override file. A missing file is not an error.
func LoadUser(path string) (*UserConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var user UserConfig
	if err := yaml.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &user, nil
}

// Merge applies user overrides: replaced settings, disabled catalog
// entries removed, extra caches appended. Unknown disabled IDs are
// ignored. ID conflicts in extras favor the user's entry.
func Merge(cfg *Config, user *UserConfig) *Config {
	if user == nil {
		return cfg
	}

	if user.Settings != nil {
		cfg.Settings = *user.Settings
	}

	if len(user.Disabled) > 0 {
		disabled := make(map[string]struct{}, len(user.Disabled))
		for _, id := range user.Disabled {
			disabled[id] = struct{}{}
		}
		kept := cfg.DependencyCaches[:0]
		for _, entry := range cfg.DependencyCaches {
			if _, off := disabled[entry.ID]; !off {
				kept = append(kept, entry)
			}
		}
		cfg.DependencyCaches = kept
	}

	for _, extra := range user.ExtraDependencyCaches {
		replaced := false
		for i, existing := range cfg.DependencyCaches {
			if existing.ID == extra.ID {
				cfg.DependencyCaches[i] = extra
				replaced = true
				break
			}
		}
		if !replaced {
			cfg.DependencyCaches = append(cfg.DependencyCaches, extra)
		}
	}

	return cfg
}
