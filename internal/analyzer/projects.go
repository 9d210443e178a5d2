package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/minsu-kang/reclaim/internal/logger"
	"github.com/minsu-kang/reclaim/internal/types"
	"github.com/minsu-kang/reclaim/internal/utils"
)

// artifactPattern pairs a build-artifact directory name with the project
// marker files that must sit next to it. Both must be present: the
// marker check keeps tool installations (~/.nvm/**/node_modules) from
// being mistaken for project artifacts.
type artifactPattern struct {
	DirName string
	Markers []string // glob patterns resolved against the parent dir
}

var defaultArtifactPatterns = []artifactPattern{
	{"node_modules", []string{"package.json"}},
	{"target", []string{"Cargo.toml", "pom.xml"}},
	{".venv", []string{"pyproject.toml", "requirements.txt", "setup.py", "Pipfile"}},
	{"venv", []string{"pyproject.toml", "requirements.txt", "setup.py"}},
	{"bin", []string{"*.csproj", "*.sln"}},
	{"obj", []string{"*.csproj", "*.sln"}},
	{"build", []string{"CMakeLists.txt", "build.gradle", "build.gradle.kts"}},
	{".gradle", []string{"build.gradle", "build.gradle.kts", "settings.gradle"}},
	{"dist", []string{"package.json", "pyproject.toml", "setup.py"}},
}

// workspaceDirNames are the conventional developer roots probed under
// the user's home. Only existing ones are scanned.
var workspaceDirNames = []string{
	"source", "src", "projects", "dev", "code", "repos", "workspace", "git",
	filepath.Join("Documents", "GitHub"),
	filepath.Join("Documents", "Projects"),
}

// ProjectArtifactAnalyzer walks developer workspaces looking for build
// artifacts (node_modules, target, bin/obj, ...) that belong to a real
// project and are big enough to matter.
type ProjectArtifactAnalyzer struct {
	roots    []string
	patterns []artifactPattern
	minBytes int64
	maxDepth int
}

func NewProjectArtifactAnalyzer(minMB int64, maxDepth int) *ProjectArtifactAnalyzer {
	a := &ProjectArtifactAnalyzer{
		patterns: defaultArtifactPatterns,
		minBytes: minMB * 1024 * 1024,
		maxDepth: maxDepth,
	}
	if a.maxDepth <= 0 {
		a.maxDepth = 5
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return a
	}
	for _, name := range workspaceDirNames {
		dir := filepath.Join(home, name)
		if utils.PathExists(dir) {
			a.roots = append(a.roots, dir)
		}
	}
	return a
}

func (a *ProjectArtifactAnalyzer) Name() string { return "Project artifacts" }

func (a *ProjectArtifactAnalyzer) IsAvailable() bool { return len(a.roots) > 0 }

func (a *ProjectArtifactAnalyzer) Analyze(ctx context.Context) ([]types.Insight, error) {
	insights := make([]types.Insight, 0)

	for _, root := range a.roots {
		found, err := a.scanDir(ctx, root, 0)
		if err != nil {
			return nil, err
		}
		insights = append(insights, found...)
	}

	return insights, nil
}

// scanDir recursively searches for artifact directories up to maxDepth.
// A match stops the descent into the matched directory but siblings keep
// being scanned. Unreadable directories are skipped.
func (a *ProjectArtifactAnalyzer) scanDir(ctx context.Context, dir string, depth int) ([]types.Insight, error) {
	if depth > a.maxDepth {
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Debug("skipping unreadable dir", "dir", dir, "error", err)
		return nil, nil
	}

	var insights []types.Insight
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, ".") && !a.isPatternDir(name) {
			continue
		}

		child := filepath.Join(dir, name)
		if a.matchesPattern(name, dir) {
			in, err := a.buildInsight(ctx, child)
			if err != nil {
				return nil, err
			}
			if in != nil {
				insights = append(insights, *in)
			}
			continue // never descend into the artifact itself
		}

		sub, err := a.scanDir(ctx, child, depth+1)
		if err != nil {
			return nil, err
		}
		insights = append(insights, sub...)
	}

	return insights, nil
}

func (a *ProjectArtifactAnalyzer) buildInsight(ctx context.Context, dir string) (*types.Insight, error) {
	stats, err := utils.WalkSize(ctx, dir)
	if err != nil {
		return nil, err
	}
	if stats.SizeBytes <= a.minBytes {
		return nil, nil
	}

	return &types.Insight{
		Type:           types.TypeProjectArtifacts,
		Description:    filepath.Base(filepath.Dir(dir)) + "/" + filepath.Base(dir) + " (" + utils.FormatSize(stats.SizeBytes) + ")",
		Path:           dir,
		SizeInBytes:    stats.SizeBytes,
		Action:         types.ActionClean,
		CleanupCommand: "rm -rf \"" + dir + "\"",
	}, nil
}

func (a *ProjectArtifactAnalyzer) matchesPattern(name, parentDir string) bool {
	for _, p := range a.patterns {
		if p.DirName != name {
			continue
		}
		if hasMarker(parentDir, p.Markers) {
			return true
		}
	}
	return false
}

func (a *ProjectArtifactAnalyzer) isPatternDir(name string) bool {
	for _, p := range a.patterns {
		if p.DirName == name {
			return true
		}
	}
	return false
}

func hasMarker(parentDir string, markers []string) bool {
	for _, m := range markers {
		if strings.ContainsAny(m, "*?[") {
			matches, err := filepath.Glob(filepath.Join(parentDir, m))
			if err == nil && len(matches) > 0 {
				return true
			}
			continue
		}
		if _, err := os.Stat(filepath.Join(parentDir, m)); err == nil {
			return true
		}
	}
	return false
}
