package analyzer

import (
	"context"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/minsu-kang/reclaim/internal/logger"
	"github.com/minsu-kang/reclaim/internal/types"
	"github.com/minsu-kang/reclaim/internal/utils"
)

// execCommand is swapped out in tests.
var execCommand = exec.CommandContext

const dockerProbeTimeout = 5 * time.Second

// DockerAnalyzer reports space reclaimable through the docker CLI. The
// CLI's tabular output is scraped with text patterns; an output format
// this version doesn't recognize simply yields no findings.
type DockerAnalyzer struct{}

func NewDockerAnalyzer() *DockerAnalyzer {
	return &DockerAnalyzer{}
}

func (a *DockerAnalyzer) Name() string { return "Docker" }

// IsAvailable requires the docker binary on PATH and a daemon that
// answers `docker version` within a bounded wait, so an unresponsive
// daemon can't hang the whole scan.
func (a *DockerAnalyzer) IsAvailable() bool {
	if !utils.CommandExists("docker") {
		logger.Debug("docker command not found")
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), dockerProbeTimeout)
	defer cancel()
	if err := execCommand(ctx, "docker", "version").Run(); err != nil {
		logger.Warn("docker daemon not responding", "error", err)
		return false
	}
	return true
}

func (a *DockerAnalyzer) Analyze(ctx context.Context) ([]types.Insight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	insights := make([]types.Insight, 0, 4)

	out, err := execCommand(ctx, "docker", "system", "df").Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// Daemon went away between the probe and the scan. Not fatal.
		logger.Warn("docker system df failed", "error", err)
		return insights, nil
	}

	insights = append(insights, parseSystemDf(string(out))...)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if count := a.danglingImageCount(ctx); count > 0 {
		insights = append(insights, types.Insight{
			Type:           types.TypeDockerImages,
			Description:    "Dangling images: " + strconv.Itoa(count) + " untagged, unreferenced",
			Path:           "docker dangling images",
			SizeInBytes:    0, // count-only signal; sizes are already in the df totals
			Action:         types.ActionClean,
			CleanupCommand: "docker image prune -f",
		})
	}

	return insights, nil
}

// dfSection ties one `docker system df` row to the insight it produces.
type dfSection struct {
	rowPrefix      string
	insightType    types.InsightType
	label          string
	path           string
	action         types.Action
	cleanupCommand string
}

var dfSections = []dfSection{
	{"Images", types.TypeDockerImages, "Docker images", "docker images", types.ActionClean, "docker image prune -a"},
	{"Containers", types.TypeDockerContainers, "Docker containers", "docker containers", types.ActionClean, "docker container prune"},
	{"Local Volumes", types.TypeDockerVolumes, "Docker volumes", "docker volumes", types.ActionReview, "docker volume prune"},
}

// dfRowPattern matches the tail of a df row: TOTAL ACTIVE SIZE RECLAIMABLE,
// where RECLAIMABLE is "7.2GB" optionally followed by "(73%)".
var dfRowPattern = regexp.MustCompile(`^\s+(\d+)\s+(\d+)\s+(\S+)\s+(\S+)(?:\s+\((\d+)%\))?`)

// parseSystemDf extracts at most one insight per recognized section of
// `docker system df` output. Rows that don't match are skipped silently;
// the format varies across docker versions and absence of a match is
// not an error.
func parseSystemDf(output string) []types.Insight {
	insights := make([]types.Insight, 0, len(dfSections))

	for _, line := range strings.Split(output, "\n") {
		for _, section := range dfSections {
			rest, ok := strings.CutPrefix(line, section.rowPrefix)
			if !ok {
				continue
			}
			m := dfRowPattern.FindStringSubmatch(rest)
			if m == nil {
				continue
			}

			reclaimable := parseSize(m[4])
			if reclaimable <= 0 {
				continue
			}

			desc := section.label + ": " + utils.FormatSize(reclaimable) + " reclaimable"
			if section.insightType == types.TypeDockerImages && m[5] != "" {
				desc += " (" + m[5] + "% of images)"
			}

			insights = append(insights, types.Insight{
				Type:           section.insightType,
				Description:    desc,
				Path:           section.path,
				SizeInBytes:    reclaimable,
				Action:         section.action,
				CleanupCommand: section.cleanupCommand,
			})
			break
		}
	}

	return insights
}

func (a *DockerAnalyzer) danglingImageCount(ctx context.Context) int {
	out, err := execCommand(ctx, "docker", "images", "-f", "dangling=true", "-q").Output()
	if err != nil {
		logger.Debug("dangling image query failed", "error", err)
		return 0
	}
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return 0
	}
	return len(strings.Split(trimmed, "\n"))
}

// parseSize converts docker's human sizes ("7.2GB", "53.2kB", "0B") to
// bytes using base-1024 units. A trailing "(NN%)" annotation is dropped.
// Unparsable input yields 0.
func parseSize(s string) int64 {
	if idx := strings.Index(s, "("); idx != -1 {
		s = s[:idx]
	}

	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == "0B" {
		return 0
	}

	var multiplier int64 = 1
	switch {
	case strings.HasSuffix(s, "KB"):
		multiplier = 1024
		s = strings.TrimSuffix(s, "KB")
	case strings.HasSuffix(s, "MB"):
		multiplier = 1024 * 1024
		s = strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "GB"):
		multiplier = 1024 * 1024 * 1024
		s = strings.TrimSuffix(s, "GB")
	case strings.HasSuffix(s, "TB"):
		multiplier = 1024 * 1024 * 1024 * 1024
		s = strings.TrimSuffix(s, "TB")
	case strings.HasSuffix(s, "K"):
		multiplier = 1024
		s = strings.TrimSuffix(s, "K")
	case strings.HasSuffix(s, "M"):
		multiplier = 1024 * 1024
		s = strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "G"):
		multiplier = 1024 * 1024 * 1024
		s = strings.TrimSuffix(s, "G")
	case strings.HasSuffix(s, "T"):
		multiplier = 1024 * 1024 * 1024 * 1024
		s = strings.TrimSuffix(s, "T")
	case strings.HasSuffix(s, "B"):
		s = strings.TrimSuffix(s, "B")
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return int64(value * float64(multiplier))
}
