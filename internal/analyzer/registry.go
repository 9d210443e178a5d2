package analyzer

import (
	"github.com/minsu-kang/reclaim/internal/config"
)

// NewDefaultRegistry wires up the standard analyzer set in the order
// their findings should appear in the aggregate result.
func NewDefaultRegistry(cfg *config.Config) *Registry {
	r := NewRegistry()
	r.Register(NewDockerAnalyzer())
	r.Register(NewWSLAnalyzer())
	r.Register(NewDependencyCacheAnalyzer(cfg.DependencyCaches))
	r.Register(NewProjectArtifactAnalyzer(cfg.Settings.ProjectArtifactMinMB, cfg.Settings.ProjectScanDepth))
	r.Register(NewToolingCacheAnalyzer(cfg.ToolingCaches))
	r.Register(NewStaticFileAnalyzer(cfg.Settings))
	return r
}
