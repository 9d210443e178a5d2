package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minsu-kang/reclaim/internal/types"
)

func TestLoadEmbedded_ReturnsNonNil(t *testing.T) {
	cfg, err := LoadEmbedded()

	require.NoError(t, err)
	require.NotNil(t, cfg)
}

func TestLoadEmbedded_HasDependencyCaches(t *testing.T) {
	cfg, err := LoadEmbedded()

	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(cfg.DependencyCaches), 10)
}

func TestLoadEmbedded_KnownCachesExist(t *testing.T) {
	cfg, _ := LoadEmbedded()

	ids := make(map[string]bool)
	for _, entry := range cfg.DependencyCaches {
		ids[entry.ID] = true
	}

	for _, want := range []string{"npm", "pip", "gomod", "cargo", "maven", "nuget"} {
		assert.True(t, ids[want], "missing cache entry: %s", want)
	}
}

func TestLoadEmbedded_CachesHaveRequiredFields(t *testing.T) {
	cfg, _ := LoadEmbedded()

	for _, entry := range cfg.DependencyCaches {
		assert.NotEmpty(t, entry.ID)
		assert.NotEmpty(t, entry.Name)
		assert.NotEmpty(t, entry.Paths)
		assert.Positive(t, entry.ThresholdMB)
		assert.NotEmpty(t, entry.CleanupCommand)
	}
}

func TestLoadEmbedded_ActionsAreValid(t *testing.T) {
	cfg, _ := LoadEmbedded()

	valid := map[types.Action]bool{
		types.ActionClean:   true,
		types.ActionArchive: true,
		types.ActionReview:  true,
	}
	for _, entry := range cfg.DependencyCaches {
		assert.True(t, valid[entry.Action], "cache %s has invalid action %q", entry.ID, entry.Action)
	}
	for _, family := range cfg.ToolingCaches {
		for _, sub := range family.Subdirs {
			assert.True(t, valid[sub.Action], "tooling %s/%s has invalid action", family.Family, sub.Name)
		}
	}
}

func TestLoadEmbedded_Settings(t *testing.T) {
	cfg, _ := LoadEmbedded()

	assert.Equal(t, 180, cfg.Settings.OldFileDays)
	assert.Equal(t, int64(500), cfg.Settings.LargeFileMinMB)
	assert.Equal(t, 5, cfg.Settings.ProjectScanDepth)
}

func TestLoadUser_MissingFile_ReturnsNil(t *testing.T) {
	user, err := LoadUser(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestLoadUser_InvalidYAML_ReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("settings: [not a map"), 0o644))

	_, err := LoadUser(path)

	assert.Error(t, err)
}

func TestMerge_NilUser_Unchanged(t *testing.T) {
	cfg, _ := LoadEmbedded()
	before := len(cfg.DependencyCaches)

	merged := Merge(cfg, nil)

	assert.Equal(t, before, len(merged.DependencyCaches))
}

func TestMerge_DisabledEntries_Removed(t *testing.T) {
	cfg, _ := LoadEmbedded()

	merged := Merge(cfg, &UserConfig{Disabled: []string{"npm", "no-such-id"}})

	for _, entry := range merged.DependencyCaches {
		assert.NotEqual(t, "npm", entry.ID)
	}
}

func TestMerge_ExtraCache_Appended(t *testing.T) {
	cfg, _ := LoadEmbedded()
	before := len(cfg.DependencyCaches)

	merged := Merge(cfg, &UserConfig{
		ExtraDependencyCaches: []CacheEntry{
			{ID: "custom", Name: "Custom cache", Paths: []string{"/opt/cache"}, ThresholdMB: 10},
		},
	})

	assert.Len(t, merged.DependencyCaches, before+1)
}

func TestMerge_ExtraCacheWithExistingID_Replaces(t *testing.T) {
	cfg, _ := LoadEmbedded()
	before := len(cfg.DependencyCaches)

	merged := Merge(cfg, &UserConfig{
		ExtraDependencyCaches: []CacheEntry{
			{ID: "npm", Name: "My npm", Paths: []string{"/custom/npm"}, ThresholdMB: 1},
		},
	})

	assert.Len(t, merged.DependencyCaches, before)
	for _, entry := range merged.DependencyCaches {
		if entry.ID == "npm" {
			assert.Equal(t, "My npm", entry.Name)
		}
	}
}

func TestMerge_SettingsOverride(t *testing.T) {
	cfg, _ := LoadEmbedded()

	merged := Merge(cfg, &UserConfig{
		Settings: &Settings{OldFileDays: 90, LargeFileMinMB: 1000},
	})

	assert.Equal(t, 90, merged.Settings.OldFileDays)
	assert.Equal(t, int64(1000), merged.Settings.LargeFileMinMB)
}
