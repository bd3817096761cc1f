package sidecar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/igloo-vfx/multishot-core/pkg/config"
)

func writeSidecar(t *testing.T, root, shotID, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(BuildPath(shotID, root, nil), []byte(content), 0o644))
}

func TestLoad_NestedFrameRangeShape(t *testing.T) {
	root := t.TempDir()
	writeSidecar(t, root, "Ep04_sq0070_SH0180", `{"frame_range": {"start": 1001, "end": 1030}, "fps": 24}`)

	meta, err := Load("Ep04_sq0070_SH0180", root, nil)
	require.NoError(t, err)
	require.True(t, meta.HasFrameRange)
	require.Equal(t, 1001, meta.FrameStart)
	require.Equal(t, 1030, meta.FrameEnd)
	require.True(t, meta.HasFPS)
	require.Equal(t, 24.0, meta.FPS)
}

func TestLoad_RangeStringShape(t *testing.T) {
	root := t.TempDir()
	writeSidecar(t, root, "Ep04_sq0070_SH0180", `{"frame_range": "1001-1096"}`)

	meta, err := Load("Ep04_sq0070_SH0180", root, nil)
	require.NoError(t, err)
	require.Equal(t, 1001, meta.FrameStart)
	require.Equal(t, 1096, meta.FrameEnd)
}

func TestLoad_SeparateRootFieldsShape(t *testing.T) {
	root := t.TempDir()
	writeSidecar(t, root, "Ep04_sq0070_SH0180", `{"frame_start": 1001, "frame_end": 1030}`)

	meta, err := Load("Ep04_sq0070_SH0180", root, nil)
	require.NoError(t, err)
	require.Equal(t, 1001, meta.FrameStart)
	require.Equal(t, 1030, meta.FrameEnd)
}

func TestLoad_MissingSidecarIsNotError(t *testing.T) {
	root := t.TempDir()
	meta, err := Load("Ep04_sq0070_SH0180", root, nil)
	require.NoError(t, err)
	require.Nil(t, meta)
}

func TestLoad_UnrecognisedShapeFails(t *testing.T) {
	root := t.TempDir()
	writeSidecar(t, root, "Ep04_sq0070_SH0180", `{"unrelated": true}`)

	_, err := Load("Ep04_sq0070_SH0180", root, nil)
	require.Error(t, err)
}

func TestLoad_ConfigurableFieldNames(t *testing.T) {
	root := t.TempDir()
	cfg := &config.ShotMetadataConfig{
		FrameRangeField:      "shot_info",
		FrameRangeStartField: "start_frame",
		FrameRangeEndField:   "end_frame",
		FPSField:             "frame_rate",
	}
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(BuildPath("Ep04_sq0070_SH0180", root, cfg), []byte(
		`{"shot_info": {"start_frame": 1001, "end_frame": 1030}, "frame_rate": 30}`), 0o644))

	meta, err := Load("Ep04_sq0070_SH0180", root, cfg)
	require.NoError(t, err)
	require.Equal(t, 1001, meta.FrameStart)
	require.Equal(t, 30.0, meta.FPS)
}

func TestBuildPath_DefaultPattern(t *testing.T) {
	path := BuildPath("Ep04_sq0070_SH0180", filepath.FromSlash("/shots/SH0180"), nil)
	require.Equal(t, filepath.Join("/shots/SH0180", ".Ep04_sq0070_SH0180.json"), path)
}
