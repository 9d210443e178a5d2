package cli

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minsu-kang/reclaim/internal/types"
)

func TestFormatReport_NilResult(t *testing.T) {
	out := FormatReport(nil)

	assert.Equal(t, "No results available.\n", out)
}

func TestFormatReport_EmptyResult(t *testing.T) {
	out := FormatReport(&types.AnalysisResult{})

	assert.Contains(t, out, "Findings: 0")
	assert.Contains(t, out, "0 B")
	assert.Contains(t, out, "disk looks tidy")
}

func TestFormatReport_ListsInsightsGroupedByLocation(t *testing.T) {
	result := &types.AnalysisResult{
		AllInsights: []types.Insight{
			{
				Type:        types.TypeDependencyCache,
				Description: "npm cache (2.00 GB)",
				Path:        `C:\Users\dev\AppData\Local\npm-cache`,
				SizeInBytes: 2 << 30,
				Action:      types.ActionClean,
			},
			{
				Type:        types.TypeLargeFiles,
				Description: "Disk image ubuntu.iso (4.00 GB)",
				Path:        `D:\vms\ubuntu.iso`,
				SizeInBytes: 4 << 30,
				Action:      types.ActionArchive,
			},
		},
	}

	out := FormatReport(result)

	assert.Contains(t, out, "Findings: 2")
	assert.Contains(t, out, "6.00 GB")
	assert.Contains(t, out, "npm cache (2.00 GB)")
	assert.Contains(t, out, "Disk image ubuntu.iso (4.00 GB)")
	assert.Contains(t, out, `C:\Users`)
	assert.Contains(t, out, `D:\vms`)
}

func TestFormatReport_LargestGroupFirst(t *testing.T) {
	result := &types.AnalysisResult{
		AllInsights: []types.Insight{
			{Description: "small", Path: "/home/dev/small", SizeInBytes: 100, Action: types.ActionReview},
			{Description: "big", Path: "/var/lib/big", SizeInBytes: 9000, Action: types.ActionReview},
		},
	}

	out := FormatReport(result)

	varIdx := strings.Index(out, "/var")
	homeIdx := strings.Index(out, "/home")
	require.NotEqual(t, -1, varIdx)
	require.NotEqual(t, -1, homeIdx)
	assert.Less(t, varIdx, homeIdx)
}

func TestFormatReport_CleanupCommandShown(t *testing.T) {
	result := &types.AnalysisResult{
		AllInsights: []types.Insight{
			{
				Description:    "npm cache (1.00 GB)",
				Path:           "/home/dev/.npm",
				SizeInBytes:    1 << 30,
				Action:         types.ActionClean,
				CleanupCommand: "npm cache clean --force",
			},
		},
	}

	out := FormatReport(result)

	assert.Contains(t, out, "$ npm cache clean --force")
}

func TestFormatReport_DegradedAnalyzersListed(t *testing.T) {
	result := &types.AnalysisResult{
		Errors: []string{"Docker: daemon not responding"},
	}

	out := FormatReport(result)

	assert.Contains(t, out, "Degraded analyzers")
	assert.Contains(t, out, "Docker: daemon not responding")
}

func TestFormatReport_ActionLabelsUppercase(t *testing.T) {
	result := &types.AnalysisResult{
		AllInsights: []types.Insight{
			{Description: "a", Path: "/x/a", SizeInBytes: 1, Action: types.ActionClean},
			{Description: "b", Path: "/x/b", SizeInBytes: 1, Action: types.ActionArchive},
			{Description: "c", Path: "/x/c", SizeInBytes: 1, Action: types.ActionReview},
		},
	}

	out := FormatReport(result)

	assert.Contains(t, out, "CLEAN")
	assert.Contains(t, out, "ARCHIVE")
	assert.Contains(t, out, "REVIEW")
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", truncateText("short", 20))
	assert.Equal(t, "exact", truncateText("exact", 5))
	assert.Equal(t, "lo...", truncateText("longer than max", 5))
	assert.Equal(t, "untouched", truncateText("untouched", 3))
}

func TestTruncateText_MultibyteStaysValidUTF8(t *testing.T) {
	got := truncateText("동영상 아카이브 백업본.mkv", 8)

	assert.Equal(t, "동영상 아...", got)
	assert.True(t, utf8.ValidString(got))
}

func TestGroupSize(t *testing.T) {
	insights := []types.Insight{
		{SizeInBytes: 100},
		{SizeInBytes: 250},
	}

	assert.Equal(t, int64(350), groupSize(insights))
}
