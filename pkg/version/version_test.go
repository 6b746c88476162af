package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_String_Short_Full(t *testing.T) {
	// Preserve original values
	origV, origB, origC := Version, BuildTime, Commit
	defer func() { Version, BuildTime, Commit = origV, origB, origC }()

	// Set deterministic values
	Version = "1.2.3"
	BuildTime = "2025-12-22T00:00:00Z"
	Commit = "deadbeef"

	info := Get()
	require.Equal(t, "1.2.3", info.Version)
	require.Equal(t, "2025-12-22T00:00:00Z", info.BuildTime)
	require.Equal(t, "deadbeef", info.Commit)

	// Runtime fields should be non-empty
	require.NotEmpty(t, info.GoVersion)
	require.NotEmpty(t, info.OS)
	require.NotEmpty(t, info.Arch)

	assert.Equal(t, "1.2.3", Short())
	assert.Contains(t, Full(), "motionscan 1.2.3")
	assert.Contains(t, info.String(), "motionscan 1.2.3 (commit: deadbeef, built: 2025-12-22T00:00:00Z")
}

func TestFillFromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2025-01-02T03:04:05Z"},
		},
	}

	t.Run("fills unset values", func(t *testing.T) {
		info := Info{Version: "dev", Commit: "unknown", BuildTime: "unknown"}
		fillFromBuildInfo(&info, bi)

		assert.Equal(t, "v0.4.0", info.Version)
		assert.Equal(t, "0123456789ab", info.Commit)
		assert.Equal(t, "2025-01-02T03:04:05Z", info.BuildTime)
	})

	t.Run("ldflags win", func(t *testing.T) {
		info := Info{Version: "1.0.0", Commit: "cafe", BuildTime: "today"}
		fillFromBuildInfo(&info, bi)

		assert.Equal(t, "1.0.0", info.Version)
		assert.Equal(t, "cafe", info.Commit)
		assert.Equal(t, "today", info.BuildTime)
	})

	t.Run("devel module version ignored", func(t *testing.T) {
		info := Info{Version: "dev", Commit: "unknown", BuildTime: "unknown"}
		fillFromBuildInfo(&info, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
		assert.Equal(t, "dev", info.Version)
	})
}
