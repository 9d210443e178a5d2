package types

import (
	"sort"
	"strings"
)

// InsightType categorizes what kind of reclaimable space a finding describes.
type InsightType string

const (
	TypeDockerImages     InsightType = "docker-images"
	TypeDockerContainers InsightType = "docker-containers"
	TypeDockerVolumes    InsightType = "docker-volumes"
	TypeWSLDistro        InsightType = "wsl-distro"
	TypeProjectArtifacts InsightType = "project-artifacts"
	TypeDependencyCache  InsightType = "dependency-cache"
	TypeToolingCache     InsightType = "tooling-cache"
	TypeTempFiles        InsightType = "temp-files"
	TypeOldFiles         InsightType = "old-files"
	TypeLargeFiles       InsightType = "large-files"
)

// Action is the recommended disposition for a finding.
type Action string

const (
	// ActionClean marks regenerable data that is safe to delete.
	ActionClean Action = "clean"
	// ActionArchive marks cold data worth moving to external storage, not deleting.
	ActionArchive Action = "archive"
	// ActionReview marks findings where deletion is destructive or costly
	// to undo, so the user has to decide.
	ActionReview Action = "review"
)

// Insight is a single immutable finding about reclaimable or archivable
// disk space. Insights are created fresh on every scan and never mutated.
type Insight struct {
	Type        InsightType `json:"type"`
	Description string      `json:"description"`
	// Path is a filesystem path, or a synthetic marker like "docker images"
	// for findings that are not backed by a single path.
	Path        string `json:"path"`
	SizeInBytes int64  `json:"size_in_bytes"`
	Action      Action `json:"action"`
	// CleanupCommand is a suggested shell command. It is never executed
	// by this program.
	CleanupCommand string `json:"cleanup_command,omitempty"`
}

// AnalysisProgress is emitted once before each analyzer starts and once
// after the last one completes.
type AnalysisProgress struct {
	CurrentAnalyzer string
	Completed       int
	Total           int
}

// PercentComplete returns progress as 0-100.
func (p AnalysisProgress) PercentComplete() int {
	if p.Total == 0 {
		return 0
	}
	return p.Completed * 100 / p.Total
}

// AnalysisResult is the aggregate output of one scan.
type AnalysisResult struct {
	// AllInsights preserves analyzer execution order, then discovery
	// order within each analyzer.
	AllInsights []Insight            `json:"insights"`
	ByAnalyzer  map[string][]Insight `json:"by_analyzer"`
	// Errors holds "<analyzer>: <message>" strings for analyzers that
	// failed. A failed analyzer never blocks the others.
	Errors []string `json:"errors,omitempty"`
}

// TotalReclaimableBytes sums the sizes of all findings.
func (r *AnalysisResult) TotalReclaimableBytes() int64 {
	var total int64
	for _, in := range r.AllInsights {
		total += in.SizeInBytes
	}
	return total
}

// TotalInsightCount returns the number of findings.
func (r *AnalysisResult) TotalInsightCount() int {
	return len(r.AllInsights)
}

// LocationKey derives the grouping key for a path. Rooted paths collapse
// to the volume root plus the first segment below it (`C:\Users\a\f` and
// `/home/a/f` become `C:\Users` and `/home`); anything else — synthetic
// markers like "docker images" — passes through verbatim.
func LocationKey(path string) string {
	if len(path) >= 3 && isDriveLetter(path[0]) && path[1] == ':' && (path[2] == '\\' || path[2] == '/') {
		rest := path[3:]
		if idx := strings.IndexAny(rest, `\/`); idx >= 0 {
			rest = rest[:idx]
		}
		if rest == "" {
			return path[:3]
		}
		return path[:3] + rest
	}
	if strings.HasPrefix(path, "/") {
		rest := strings.TrimPrefix(path, "/")
		if idx := strings.IndexByte(rest, '/'); idx >= 0 {
			rest = rest[:idx]
		}
		if rest == "" {
			return "/"
		}
		return "/" + rest
	}
	return path
}

func isDriveLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// GroupByLocation maps insights to their location key, each group sorted
// by size descending. The map itself is a derived view, never persisted.
func GroupByLocation(insights []Insight) map[string][]Insight {
	groups := make(map[string][]Insight)
	for _, in := range insights {
		key := LocationKey(in.Path)
		groups[key] = append(groups[key], in)
	}
	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].SizeInBytes > group[j].SizeInBytes
		})
	}
	return groups
}
