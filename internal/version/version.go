// Package version holds build-time version metadata.
package version

import "fmt"

// Populated via ldflags:
//
//	go build -ldflags "-X github.com/minsu-kang/reclaim/internal/version.Version=1.0.0"
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("reclaim %s (%s) built %s", Version, Commit, Date)
}
