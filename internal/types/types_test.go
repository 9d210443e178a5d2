package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationKey_WindowsPath_VolumePlusFirstSegment(t *testing.T) {
	assert.Equal(t, `C:\Users`, LocationKey(`C:\Users\alice\file.txt`))
	assert.Equal(t, `C:\Windows`, LocationKey(`C:\Windows\file.txt`))
	assert.Equal(t, `D:\Data`, LocationKey(`D:\Data`))
}

func TestLocationKey_WindowsDriveRoot_ReturnsRoot(t *testing.T) {
	assert.Equal(t, `C:\`, LocationKey(`C:\`))
}

func TestLocationKey_UnixPath_RootPlusFirstSegment(t *testing.T) {
	assert.Equal(t, "/home", LocationKey("/home/alice/file.txt"))
	assert.Equal(t, "/var", LocationKey("/var"))
	assert.Equal(t, "/", LocationKey("/"))
}

func TestLocationKey_SyntheticMarker_PassesThroughVerbatim(t *testing.T) {
	assert.Equal(t, "docker images", LocationKey("docker images"))
	assert.Equal(t, "", LocationKey(""))
}

func TestGroupByLocation_GroupsByKeyAndSortsBySizeDescending(t *testing.T) {
	insights := []Insight{
		{Path: `C:\Users\a\file`, SizeInBytes: 100},
		{Path: `C:\Users\b\file`, SizeInBytes: 300},
		{Path: `C:\Windows\file`, SizeInBytes: 50},
	}

	groups := GroupByLocation(insights)

	require.Len(t, groups, 2)
	users := groups[`C:\Users`]
	require.Len(t, users, 2)
	assert.Equal(t, int64(300), users[0].SizeInBytes)
	assert.Equal(t, int64(100), users[1].SizeInBytes)
	require.Len(t, groups[`C:\Windows`], 1)
}

func TestGroupByLocation_NonPathKey_GroupsUnderLiteralString(t *testing.T) {
	insights := []Insight{
		{Path: "docker images", SizeInBytes: 10},
		{Path: "docker images", SizeInBytes: 20},
	}

	groups := GroupByLocation(insights)

	require.Len(t, groups, 1)
	group := groups["docker images"]
	require.Len(t, group, 2)
	assert.Equal(t, int64(20), group[0].SizeInBytes)
}

func TestAnalysisProgress_PercentComplete(t *testing.T) {
	assert.Equal(t, 0, AnalysisProgress{Total: 0}.PercentComplete())
	assert.Equal(t, 50, AnalysisProgress{Completed: 3, Total: 6}.PercentComplete())
	assert.Equal(t, 100, AnalysisProgress{Completed: 6, Total: 6}.PercentComplete())
}

func TestAnalysisResult_Totals(t *testing.T) {
	result := &AnalysisResult{
		AllInsights: []Insight{
			{SizeInBytes: 100},
			{SizeInBytes: 200},
			{SizeInBytes: 0},
		},
	}

	assert.Equal(t, int64(300), result.TotalReclaimableBytes())
	assert.Equal(t, 3, result.TotalInsightCount())
}
