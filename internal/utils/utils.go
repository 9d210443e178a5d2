package utils

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var osUserHomeDir = os.UserHomeDir

// ExpandPath replaces a leading "~/" with the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := osUserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// FormatSize renders a byte count with a base-1024 unit suffix.
func FormatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)

	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.2f TB", float64(bytes)/TB)
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

func PathExists(path string) bool {
	_, err := os.Stat(ExpandPath(path))
	return err == nil
}

func CommandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

// DirStats holds the totals accumulated by WalkSize.
type DirStats struct {
	SizeBytes   int64
	FileCount   int64
	FolderCount int64
}

// WalkSize recursively sums file sizes and counts under path. Entries
// that cannot be read (permissions, dangling links, overlong paths)
// contribute nothing instead of failing the walk. The only error ever
// returned is the context's, checked once per directory entry.
func WalkSize(ctx context.Context, path string) (DirStats, error) {
	var stats DirStats

	entries, err := os.ReadDir(path)
	if err != nil {
		return stats, nil
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		child := filepath.Join(path, e.Name())
		if e.IsDir() {
			stats.FolderCount++
			sub, err := WalkSize(ctx, child)
			if err != nil {
				return stats, err
			}
			stats.SizeBytes += sub.SizeBytes
			stats.FileCount += sub.FileCount
			stats.FolderCount += sub.FolderCount
			continue
		}

		info, err := e.Info()
		if err != nil {
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		stats.SizeBytes += info.Size()
		stats.FileCount++
	}

	return stats, nil
}

// DirSize is WalkSize reduced to the byte total.
func DirSize(ctx context.Context, path string) (int64, error) {
	stats, err := WalkSize(ctx, path)
	return stats.SizeBytes, err
}
