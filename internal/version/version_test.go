package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromBuildInfo(t *testing.T) {
	Version, Commit, Date = "dev", "unknown", "unknown"
	t.Cleanup(func() { Version, Commit, Date = "dev", "unknown", "unknown" })

	fromBuildInfo(&debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2024-03-16T12:00:00Z"},
		},
	})

	assert.Equal(t, "v1.2.0", Version)
	assert.Equal(t, "0123456", Commit)
	assert.Equal(t, "2024-03-16T12:00:00Z", Date)
}

func TestFromBuildInfo_KeepsLinkerValues(t *testing.T) {
	Version, Commit, Date = "v9.9.9", "feedbee", "yesterday"
	t.Cleanup(func() { Version, Commit, Date = "dev", "unknown", "unknown" })

	fromBuildInfo(&debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}},
	})

	assert.Equal(t, "v9.9.9", Version)
	assert.Equal(t, "feedbee", Commit)
	assert.Equal(t, "yesterday", Date)
}
