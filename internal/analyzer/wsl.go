package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/minsu-kang/reclaim/internal/logger"
	"github.com/minsu-kang/reclaim/internal/types"
	"github.com/minsu-kang/reclaim/internal/utils"
)

// distroPatterns match the store-package folder names WSL distributions
// install under. Patterns overlap on purpose (a generic *Linux* plus
// vendor-specific ones); findings are deduplicated by file path.
var distroPatterns = []string{
	"CanonicalGroupLimited.Ubuntu*",
	"TheDebianProject.DebianGNULinux*",
	"KaliLinux.*",
	"*SUSE*",
	"*OracleLinux*",
	"*Pengwin*",
	"*AlpineWSL*",
	"*Linux*",
}

// WSLAnalyzer finds the virtual-disk files backing WSL distributions and
// Docker Desktop's WSL data. Removing a vhdx destroys the distribution's
// filesystem, so every finding is marked for review, never for cleanup.
type WSLAnalyzer struct {
	packagesDir   string // store package roots, one folder per app
	dockerDataDir string // Docker Desktop's WSL disk location
}

func NewWSLAnalyzer() *WSLAnalyzer {
	a := &WSLAnalyzer{}
	if runtime.GOOS != "windows" {
		return a
	}
	localAppData := os.Getenv("LOCALAPPDATA")
	if localAppData == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return a
		}
		localAppData = filepath.Join(home, "AppData", "Local")
	}
	a.packagesDir = filepath.Join(localAppData, "Packages")
	a.dockerDataDir = filepath.Join(localAppData, "Docker", "wsl")
	return a
}

func (a *WSLAnalyzer) Name() string { return "WSL" }

func (a *WSLAnalyzer) IsAvailable() bool {
	return a.packagesDir != "" && utils.PathExists(a.packagesDir)
}

func (a *WSLAnalyzer) Analyze(ctx context.Context) ([]types.Insight, error) {
	insights := make([]types.Insight, 0)
	seen := make(map[string]struct{})

	entries, err := os.ReadDir(a.packagesDir)
	if err != nil {
		// Packages dir disappeared or became unreadable; nothing to report.
		logger.Warn("cannot read packages dir", "dir", a.packagesDir, "error", err)
		return insights, nil
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !e.IsDir() || !matchesDistroPattern(e.Name()) {
			continue
		}

		stateDir := filepath.Join(a.packagesDir, e.Name(), "LocalState")
		found, err := a.collectDisks(ctx, stateDir, e.Name(), seen)
		if err != nil {
			return nil, err
		}
		insights = append(insights, found...)
	}

	if a.dockerDataDir != "" {
		found, err := a.collectDisks(ctx, filepath.Join(a.dockerDataDir, "data"), "Docker Desktop", seen)
		if err != nil {
			return nil, err
		}
		insights = append(insights, found...)
	}

	return insights, nil
}

// collectDisks emits one insight per virtual-disk file directly inside
// dir. Already-seen paths are skipped so overlapping name patterns can't
// report the same disk twice.
func (a *WSLAnalyzer) collectDisks(ctx context.Context, dir, owner string, seen map[string]struct{}) ([]types.Insight, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil
	}

	var insights []types.Insight
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || !isVirtualDisk(e.Name()) {
			continue
		}

		path := filepath.Join(dir, e.Name())
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}

		info, err := e.Info()
		if err != nil {
			continue
		}

		insights = append(insights, types.Insight{
			Type:           types.TypeWSLDistro,
			Description:    owner + " virtual disk (" + utils.FormatSize(info.Size()) + ")",
			Path:           path,
			SizeInBytes:    info.Size(),
			Action:         types.ActionReview,
			CleanupCommand: "wsl --list --verbose",
		})
	}
	return insights, nil
}

func matchesDistroPattern(name string) bool {
	for _, pattern := range distroPatterns {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

func isVirtualDisk(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".vhdx" || ext == ".vhd"
}
