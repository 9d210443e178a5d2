package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minsu-kang/reclaim/internal/config"
	"github.com/minsu-kang/reclaim/internal/types"
	"github.com/minsu-kang/reclaim/internal/utils"
)

const (
	mediaScanDepth     = 3
	diskImageScanDepth = 4
)

// installerExts flag downloaded installers that are rarely needed after
// the install finished.
var installerExts = map[string]struct{}{
	".exe": {}, ".msi": {}, ".msix": {}, ".appx": {}, ".dmg": {}, ".pkg": {},
}

// archivableExts are media/archive formats that can move to external
// storage without losing anything.
var archivableExts = map[string]struct{}{
	".mp4": {}, ".mkv": {}, ".avi": {}, ".mov": {}, ".wmv": {},
	".mp3": {}, ".wav": {}, ".flac": {},
	".zip": {}, ".rar": {}, ".7z": {}, ".tar": {}, ".gz": {},
}

var diskImageExts = map[string]struct{}{
	".iso": {}, ".img": {}, ".vhd": {}, ".vhdx": {}, ".vmdk": {}, ".qcow2": {},
}

// StaticFileAnalyzer finds cold data in user directories: stale
// downloads, oversized single files in media/document folders, and disk
// images anywhere under home.
type StaticFileAnalyzer struct {
	downloadsDir string
	mediaDirs    []string
	homeDir      string
	settings     config.Settings
	now          func() time.Time
}

func NewStaticFileAnalyzer(settings config.Settings) *StaticFileAnalyzer {
	a := &StaticFileAnalyzer{settings: settings, now: time.Now}
	if a.settings.OldFileDays <= 0 {
		a.settings.OldFileDays = 180
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return a
	}
	a.homeDir = home
	a.downloadsDir = filepath.Join(home, "Downloads")

	for _, name := range []string{"Videos", "Movies", "Music", "Pictures", "Documents", "Desktop"} {
		dir := filepath.Join(home, name)
		if utils.PathExists(dir) {
			a.mediaDirs = append(a.mediaDirs, dir)
		}
	}
	return a
}

func (a *StaticFileAnalyzer) Name() string { return "Static files" }

func (a *StaticFileAnalyzer) IsAvailable() bool { return a.homeDir != "" }

func (a *StaticFileAnalyzer) Analyze(ctx context.Context) ([]types.Insight, error) {
	insights := make([]types.Insight, 0)

	found, err := a.scanDownloads(ctx)
	if err != nil {
		return nil, err
	}
	insights = append(insights, found...)

	for _, dir := range a.mediaDirs {
		found, err := a.scanLargeFiles(ctx, dir)
		if err != nil {
			return nil, err
		}
		insights = append(insights, found...)
	}

	found, err = a.scanDiskImages(ctx)
	if err != nil {
		return nil, err
	}
	insights = append(insights, found...)

	return insights, nil
}

// scanDownloads looks at the downloads folder non-recursively and
// aggregates two signals: files untouched past the age threshold, and
// large installer binaries.
func (a *StaticFileAnalyzer) scanDownloads(ctx context.Context) ([]types.Insight, error) {
	entries, err := os.ReadDir(a.downloadsDir)
	if err != nil {
		return nil, nil
	}

	cutoff := a.now().AddDate(0, 0, -a.settings.OldFileDays)
	installerMin := a.settings.InstallerMinMB * 1024 * 1024

	var (
		oldSize        int64
		oldCount       int
		installerSize  int64
		installerCount int
	)

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			oldSize += info.Size()
			oldCount++
		}

		ext := strings.ToLower(filepath.Ext(e.Name()))
		if _, isInstaller := installerExts[ext]; isInstaller && info.Size() > installerMin {
			installerSize += info.Size()
			installerCount++
		}
	}

	var insights []types.Insight
	if oldCount > 0 && oldSize > a.settings.OldDownloadsMinMB*1024*1024 {
		insights = append(insights, types.Insight{
			Type: types.TypeOldFiles,
			Description: fmt.Sprintf("%d downloads untouched for %d+ days (%s)",
				oldCount, a.settings.OldFileDays, utils.FormatSize(oldSize)),
			Path:        a.downloadsDir,
			SizeInBytes: oldSize,
			Action:      types.ActionArchive,
		})
	}
	if installerCount > 0 {
		insights = append(insights, types.Insight{
			Type: types.TypeLargeFiles,
			Description: fmt.Sprintf("%d large installers in Downloads (%s)",
				installerCount, utils.FormatSize(installerSize)),
			Path:        a.downloadsDir,
			SizeInBytes: installerSize,
			Action:      types.ActionReview,
		})
	}
	return insights, nil
}

// scanLargeFiles emits one insight per oversized file under a media or
// document directory, bounded to a shallow depth.
func (a *StaticFileAnalyzer) scanLargeFiles(ctx context.Context, dir string) ([]types.Insight, error) {
	minBytes := a.settings.LargeFileMinMB * 1024 * 1024
	var insights []types.Insight

	err := walkBounded(ctx, dir, mediaScanDepth, func(path string, info os.FileInfo) {
		if info.Size() <= minBytes {
			return
		}
		action := types.ActionReview
		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := archivableExts[ext]; ok {
			action = types.ActionArchive
		}
		insights = append(insights, types.Insight{
			Type:        types.TypeLargeFiles,
			Description: filepath.Base(path) + " (" + utils.FormatSize(info.Size()) + ")",
			Path:        path,
			SizeInBytes: info.Size(),
			Action:      action,
		})
	})
	return insights, err
}

// scanDiskImages finds iso/vhd/vmdk style files anywhere under home.
func (a *StaticFileAnalyzer) scanDiskImages(ctx context.Context) ([]types.Insight, error) {
	var insights []types.Insight

	err := walkBounded(ctx, a.homeDir, diskImageScanDepth, func(path string, info os.FileInfo) {
		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := diskImageExts[ext]; !ok {
			return
		}
		insights = append(insights, types.Insight{
			Type:        types.TypeLargeFiles,
			Description: "Disk image " + filepath.Base(path) + " (" + utils.FormatSize(info.Size()) + ")",
			Path:        path,
			SizeInBytes: info.Size(),
			Action:      types.ActionArchive,
		})
	})
	return insights, err
}

// walkBounded is a depth-limited file walk that prunes hidden and
// system-marker directories and swallows per-entry errors. fn only sees
// regular files.
func walkBounded(ctx context.Context, dir string, maxDepth int, fn func(path string, info os.FileInfo)) error {
	if maxDepth < 0 {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := e.Name()
		path := filepath.Join(dir, name)

		if e.IsDir() {
			if isHiddenDir(name) {
				continue
			}
			if err := walkBounded(ctx, path, maxDepth-1, fn); err != nil {
				return err
			}
			continue
		}

		info, err := e.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		fn(path, info)
	}

	return nil
}

func isHiddenDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "$") || strings.HasPrefix(name, "~")
}
