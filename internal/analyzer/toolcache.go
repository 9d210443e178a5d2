package analyzer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/minsu-kang/reclaim/internal/config"
	"github.com/minsu-kang/reclaim/internal/types"
	"github.com/minsu-kang/reclaim/internal/utils"
)

// ToolingCacheAnalyzer sizes the cache/index/log folders of IDE and
// editor installations. Each family lists its install roots; within a
// root the well-known subfolders are checked both directly and one
// level down, which covers per-product-version layouts like
// JetBrains/IntelliJIdea2024.1/caches.
type ToolingCacheAnalyzer struct {
	families []config.ToolingFamily
}

func NewToolingCacheAnalyzer(families []config.ToolingFamily) *ToolingCacheAnalyzer {
	return &ToolingCacheAnalyzer{families: families}
}

func (a *ToolingCacheAnalyzer) Name() string { return "Tooling caches" }

func (a *ToolingCacheAnalyzer) IsAvailable() bool { return len(a.families) > 0 }

func (a *ToolingCacheAnalyzer) Analyze(ctx context.Context) ([]types.Insight, error) {
	insights := make([]types.Insight, 0)

	for _, family := range a.families {
		for _, root := range family.Roots {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			dir := utils.ExpandPath(root)
			if !utils.PathExists(dir) {
				continue
			}

			found, err := a.scanRoot(ctx, dir, family)
			if err != nil {
				return nil, err
			}
			insights = append(insights, found...)
		}
	}

	return insights, nil
}

func (a *ToolingCacheAnalyzer) scanRoot(ctx context.Context, root string, family config.ToolingFamily) ([]types.Insight, error) {
	var insights []types.Insight

	// Subfolders directly under the root (VS Code keeps Cache/ here).
	found, err := a.checkSubdirs(ctx, root, family.Family, family.Subdirs)
	if err != nil {
		return nil, err
	}
	insights = append(insights, found...)

	// Per-product-version directories one level down.
	entries, err := os.ReadDir(root)
	if err != nil {
		return insights, nil
	}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !e.IsDir() {
			continue
		}
		label := family.Family + " " + e.Name()
		found, err := a.checkSubdirs(ctx, filepath.Join(root, e.Name()), label, family.Subdirs)
		if err != nil {
			return nil, err
		}
		insights = append(insights, found...)
	}

	return insights, nil
}

func (a *ToolingCacheAnalyzer) checkSubdirs(ctx context.Context, productDir, label string, subdirs []config.ToolingSubdir) ([]types.Insight, error) {
	var insights []types.Insight

	for _, sub := range subdirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dir := filepath.Join(productDir, sub.Name)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}

		size, err := utils.DirSize(ctx, dir)
		if err != nil {
			return nil, err
		}
		if size <= sub.ThresholdMB*1024*1024 {
			continue
		}

		action := sub.Action
		if action == "" {
			action = types.ActionReview
		}

		insights = append(insights, types.Insight{
			Type:        types.TypeToolingCache,
			Description: label + " " + sub.Name + " (" + utils.FormatSize(size) + ")",
			Path:        dir,
			SizeInBytes: size,
			Action:      action,
		})
	}

	return insights, nil
}
