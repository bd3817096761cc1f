package path

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrimExt(t *testing.T) {
	path := TrimExt("/mydir/myoutput.bmp")
	require.Equal(t, path, "/mydir/myoutput")
}

func TestNormalizeBackslashes(t *testing.T) {
	require.Equal(t, "V:/SWA/all/scene", Normalize(`V:\SWA\all\scene`))
}

func TestNormalizeIdempotent(t *testing.T) {
	once := Normalize(`V:\SWA/all\scene`)
	require.Equal(t, once, Normalize(once))
}

func TestHasPrefixFold(t *testing.T) {
	require.True(t, HasPrefixFold(`V:\SWA\all`, "v:/swa"))
	require.False(t, HasPrefixFold("V:/SWA/all", "/mnt"))
}

func TestReplacePrefix(t *testing.T) {
	got := ReplacePrefix("V:/SWA/all/scene/Ep04", "V:/", "/mnt/igloo_swa_v/")
	require.Equal(t, "/mnt/igloo_swa_v/SWA/all/scene/Ep04", got)
}

func TestReplacePrefixNoMatch(t *testing.T) {
	got := ReplacePrefix("V:/SWA/all/scene/Ep04", "/mnt/igloo_swa_v/", "V:/")
	require.Equal(t, "V:/SWA/all/scene/Ep04", got)
}

func TestJoinPreservesPosixRoot(t *testing.T) {
	require.Equal(t, "/mnt/igloo_swa_v/SWA/all/scene", Join("/mnt/igloo_swa_v/", "SWA", "all/scene"))
}

func TestJoinWindowsDrive(t *testing.T) {
	require.Equal(t, "V:/SWA/all/scene", Join("V:/", "SWA", "all/scene"))
}
