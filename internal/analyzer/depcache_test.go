package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minsu-kang/reclaim/internal/config"
	"github.com/minsu-kang/reclaim/internal/types"
)

func writeFileOfSize(t *testing.T, path string, size int64) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestDependencyCacheAnalyzer_ExactlyAtThreshold_NoInsight(t *testing.T) {
	dir := t.TempDir()
	writeFileOfSize(t, filepath.Join(dir, "blob"), 1024*1024)

	a := NewDependencyCacheAnalyzer([]config.CacheEntry{
		{ID: "npm", Name: "npm cache", Paths: []string{dir}, ThresholdMB: 1},
	})

	insights, err := a.Analyze(context.Background())

	require.NoError(t, err)
	assert.Empty(t, insights)
}

func TestDependencyCacheAnalyzer_OneByteOverThreshold_EmitsInsight(t *testing.T) {
	dir := t.TempDir()
	writeFileOfSize(t, filepath.Join(dir, "blob"), 1024*1024+1)

	a := NewDependencyCacheAnalyzer([]config.CacheEntry{
		{ID: "npm", Name: "npm cache", Paths: []string{dir}, ThresholdMB: 1, CleanupCommand: "npm cache clean --force"},
	})

	insights, err := a.Analyze(context.Background())

	require.NoError(t, err)
	require.Len(t, insights, 1)
	assert.Equal(t, types.TypeDependencyCache, insights[0].Type)
	assert.Equal(t, dir, insights[0].Path)
	assert.Equal(t, int64(1024*1024+1), insights[0].SizeInBytes)
	assert.Equal(t, types.ActionClean, insights[0].Action)
	assert.Equal(t, "npm cache clean --force", insights[0].CleanupCommand)
}

func TestDependencyCacheAnalyzer_MissingDir_NoInsight(t *testing.T) {
	a := NewDependencyCacheAnalyzer([]config.CacheEntry{
		{ID: "pip", Name: "pip cache", Paths: []string{filepath.Join(t.TempDir(), "missing")}, ThresholdMB: 1},
	})

	insights, err := a.Analyze(context.Background())

	require.NoError(t, err)
	assert.Empty(t, insights)
}

func TestDependencyCacheAnalyzer_FirstExistingPathWins(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	existing := t.TempDir()
	writeFileOfSize(t, filepath.Join(existing, "blob"), 2*1024*1024)

	a := NewDependencyCacheAnalyzer([]config.CacheEntry{
		{ID: "yarn", Name: "Yarn cache", Paths: []string{missing, existing}, ThresholdMB: 1},
	})

	insights, err := a.Analyze(context.Background())

	require.NoError(t, err)
	require.Len(t, insights, 1)
	assert.Equal(t, existing, insights[0].Path)
}

func TestDependencyCacheAnalyzer_ExplicitAction_Respected(t *testing.T) {
	dir := t.TempDir()
	writeFileOfSize(t, filepath.Join(dir, "blob"), 2*1024*1024)

	a := NewDependencyCacheAnalyzer([]config.CacheEntry{
		{ID: "maven", Name: "Maven repository", Paths: []string{dir}, ThresholdMB: 1, Action: types.ActionReview},
	})

	insights, err := a.Analyze(context.Background())

	require.NoError(t, err)
	require.Len(t, insights, 1)
	assert.Equal(t, types.ActionReview, insights[0].Action)
}

func TestDependencyCacheAnalyzer_DescriptionIncludesFormattedSize(t *testing.T) {
	dir := t.TempDir()
	writeFileOfSize(t, filepath.Join(dir, "blob"), 2*1024*1024)

	a := NewDependencyCacheAnalyzer([]config.CacheEntry{
		{ID: "go", Name: "Go module cache", Paths: []string{dir}, ThresholdMB: 1},
	})

	insights, err := a.Analyze(context.Background())

	require.NoError(t, err)
	require.Len(t, insights, 1)
	assert.Equal(t, "Go module cache (2.00 MB)", insights[0].Description)
}

func TestDependencyCacheAnalyzer_CancelledContext_Propagates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := NewDependencyCacheAnalyzer([]config.CacheEntry{
		{ID: "npm", Name: "npm cache", Paths: []string{t.TempDir()}, ThresholdMB: 1},
	})

	_, err := a.Analyze(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDependencyCacheAnalyzer_IsAvailable(t *testing.T) {
	assert.False(t, NewDependencyCacheAnalyzer(nil).IsAvailable())
	assert.True(t, NewDependencyCacheAnalyzer([]config.CacheEntry{{ID: "npm"}}).IsAvailable())
}
