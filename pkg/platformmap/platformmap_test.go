package platformmap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/igloo-vfx/multishot-core/pkg/config"
)

func testConfig() *config.ProjectConfig {
	return &config.ProjectConfig{
		PlatformMapping: map[config.Platform]map[string]string{
			config.Windows: {"projRoot": "V:/"},
			config.Linux:   {"projRoot": "/mnt/igloo_swa_v/"},
		},
	}
}

func TestMap_WindowsToLinux(t *testing.T) {
	mapper := NewFromConfig(testConfig())
	got := mapper.Map("V:/SWA/all/scene/Ep04", config.Linux)
	require.Equal(t, "/mnt/igloo_swa_v/SWA/all/scene/Ep04", got)
}

func TestMap_LinuxToWindows(t *testing.T) {
	mapper := NewFromConfig(testConfig())
	got := mapper.Map("/mnt/igloo_swa_v/SWA/all/scene/Ep04", config.Windows)
	require.Equal(t, "V:/SWA/all/scene/Ep04", got)
}

func TestMap_BackslashesNormalized(t *testing.T) {
	mapper := NewFromConfig(testConfig())
	got := mapper.Map(`V:\SWA\all\scene\Ep04`, config.Linux)
	require.Equal(t, "/mnt/igloo_swa_v/SWA/all/scene/Ep04", got)
}

func TestMap_SameSourceAndTargetIsNoop(t *testing.T) {
	mapper := NewFromConfig(testConfig())
	got := mapper.Map("V:/SWA/all/scene/Ep04", config.Windows)
	require.Equal(t, "V:/SWA/all/scene/Ep04", got)
}

func TestMap_UnknownRootReturnsNormalizedUnchanged(t *testing.T) {
	mapper := NewFromConfig(testConfig())
	got := mapper.Map("/other/unmounted/path", config.Windows)
	require.Equal(t, "/other/unmounted/path", got)
}

func TestMap_RoundTripIsSelfInverse(t *testing.T) {
	mapper := NewFromConfig(testConfig())
	original := "V:/SWA/all/scene/Ep04/sq0070/SH0170"
	toLinux := mapper.Map(original, config.Linux)
	backToWindows := mapper.Map(toLinux, config.Windows)
	require.Equal(t, original, backToWindows)
}

func TestBuildRootTable_MergesRootsAndPlatformMapping(t *testing.T) {
	cfg := &config.ProjectConfig{
		Roots: map[string]config.RootValue{
			"assetRoot": {Windows: "W:/", Linux: "/mnt/assets/"},
		},
		PlatformMapping: map[config.Platform]map[string]string{
			config.Windows: {"projRoot": "V:/"},
		},
	}
	table := BuildRootTable(cfg)
	require.Equal(t, "W:/", table[config.Windows]["assetRoot"])
	require.Equal(t, "/mnt/assets/", table[config.Linux]["assetRoot"])
	require.Equal(t, "V:/", table[config.Windows]["projRoot"])
}
