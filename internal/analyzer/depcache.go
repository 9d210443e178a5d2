package analyzer

import (
	"context"

	"github.com/minsu-kang/reclaim/internal/config"
	"github.com/minsu-kang/reclaim/internal/logger"
	"github.com/minsu-kang/reclaim/internal/types"
	"github.com/minsu-kang/reclaim/internal/utils"
)

// DependencyCacheAnalyzer sizes the well-known package-manager caches
// from the catalog. Presence is purely directory existence; the
// ecosystem's own tool does not need to be installed for its leftover
// cache to take up space.
type DependencyCacheAnalyzer struct {
	entries []config.CacheEntry
}

func NewDependencyCacheAnalyzer(entries []config.CacheEntry) *DependencyCacheAnalyzer {
	return &DependencyCacheAnalyzer{entries: entries}
}

func (a *DependencyCacheAnalyzer) Name() string { return "Dependency caches" }

func (a *DependencyCacheAnalyzer) IsAvailable() bool { return len(a.entries) > 0 }

func (a *DependencyCacheAnalyzer) Analyze(ctx context.Context) ([]types.Insight, error) {
	insights := make([]types.Insight, 0)

	for _, entry := range a.entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dir := firstExistingPath(entry.Paths)
		if dir == "" {
			continue
		}

		size, err := utils.DirSize(ctx, dir)
		if err != nil {
			return nil, err
		}

		threshold := entry.ThresholdMB * 1024 * 1024
		if size <= threshold {
			logger.Debug("cache below threshold", "cache", entry.ID, "size", size)
			continue
		}

		action := entry.Action
		if action == "" {
			action = types.ActionClean
		}

		insights = append(insights, types.Insight{
			Type:           types.TypeDependencyCache,
			Description:    entry.Name + " (" + utils.FormatSize(size) + ")",
			Path:           dir,
			SizeInBytes:    size,
			Action:         action,
			CleanupCommand: entry.CleanupCommand,
		})
	}

	return insights, nil
}

func firstExistingPath(paths []string) string {
	for _, p := range paths {
		expanded := utils.ExpandPath(p)
		if utils.PathExists(expanded) {
			return expanded
		}
	}
	return ""
}
