package backend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStub_CreateRecordAndAttrs(t *testing.T) {
	s := NewStub()
	id, err := s.CreateRecord("transform", "CatStompie_001")
	require.NoError(t, err)
	require.True(t, s.NodeExists(id))

	require.NoError(t, s.SetAttr(id, "namespace", "CHAR_CatStompie_001"))
	v, err := s.GetAttr(id, "namespace")
	require.NoError(t, err)
	require.Equal(t, "CHAR_CatStompie_001", v)

	_, err = s.GetAttr(id, "missing")
	require.Error(t, err)
}

func TestStub_ConnectIsBidirectional(t *testing.T) {
	s := NewStub()
	a, _ := s.CreateRecord("transform", "A")
	b, _ := s.CreateRecord("transform", "B")
	require.NoError(t, s.Connect(a, "out", b, "in"))

	outs, err := s.ListConnections(a, "out")
	require.NoError(t, err)
	require.Equal(t, []string{b}, outs)

	ins, err := s.ListConnections(b, "in")
	require.NoError(t, err)
	require.Equal(t, []string{a}, ins)
}

func TestStub_ApplyFilePathAndFindReferenceByNamespace(t *testing.T) {
	s := NewStub()
	ref, _ := s.CreateRecord("reference", "CatStompie")
	require.NoError(t, s.SetAttr(ref, "namespace", "CHAR_CatStompie_001"))
	require.NoError(t, s.ApplyFilePath(ref, "/publish/v003/cat.abc"))

	v, err := s.GetAttr(ref, "resolvedPath")
	require.NoError(t, err)
	require.Equal(t, "/publish/v003/cat.abc", v)

	found, ok := s.FindReferenceByNamespace("CHAR_CatStompie_001")
	require.True(t, ok)
	require.Equal(t, ref, found)

	_, ok = s.FindReferenceByNamespace("NOPE")
	require.False(t, ok)
}

func TestStub_LinkBidirectionalByDefault(t *testing.T) {
	s := NewStub()
	byName, err := s.Link("asset-1", "ref-1")
	require.NoError(t, err)
	require.False(t, byName)

	hostRef, ok := s.LinkedHostRef("asset-1")
	require.True(t, ok)
	require.Equal(t, "ref-1", hostRef)
	require.Equal(t, []string{"asset-1"}, s.LinkedAssets("ref-1"))
}

func TestStub_LinkFallsBackToStringKeyedWhenLocked(t *testing.T) {
	s := NewStub()
	s.LockReference("ref-locked")

	byName, err := s.Link("asset-1", "ref-locked")
	require.NoError(t, err)
	require.True(t, byName)

	hostRef, ok := s.LinkedHostRef("asset-1")
	require.True(t, ok)
	require.Equal(t, "ref-locked", hostRef)
}

func TestStub_LinkSupportsCrossShotSharing(t *testing.T) {
	s := NewStub()
	_, err := s.Link("asset-1", "ref-1")
	require.NoError(t, err)
	_, err = s.Link("asset-2", "ref-1")
	require.NoError(t, err)

	require.ElementsMatch(t, []string{"asset-1", "asset-2"}, s.LinkedAssets("ref-1"))
}

func TestStub_Unlink(t *testing.T) {
	s := NewStub()
	_, _ = s.Link("asset-1", "ref-1")
	s.Unlink("asset-1")

	_, ok := s.LinkedHostRef("asset-1")
	require.False(t, ok)
	require.Empty(t, s.LinkedAssets("ref-1"))
}

func TestStub_DisplayGroupLifecycle(t *testing.T) {
	s := NewStub()
	require.NoError(t, s.DisplayGroupEnsure("CTX_Ep04_sq0070_SH0170"))
	require.NoError(t, s.DisplayGroupAssign("CTX_Ep04_sq0070_SH0170", "node#1"))
	require.NoError(t, s.DisplayGroupSetVisible("CTX_Ep04_sq0070_SH0170", true))

	visible, err := s.DisplayGroupIsVisible("CTX_Ep04_sq0070_SH0170")
	require.NoError(t, err)
	require.True(t, visible)

	members, err := s.DisplayGroupMembers("CTX_Ep04_sq0070_SH0170")
	require.NoError(t, err)
	require.Equal(t, []string{"node#1"}, members)
}

func TestStub_DisplayGroupListPrefixed(t *testing.T) {
	s := NewStub()
	require.NoError(t, s.DisplayGroupEnsure("CTX_Ep04_sq0070_SH0170"))
	require.NoError(t, s.DisplayGroupEnsure("CTX_Ep04_sq0070_SH0180"))
	require.NoError(t, s.DisplayGroupEnsure("OTHER_group"))

	names, err := s.DisplayGroupListPrefixed("CTX_")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"CTX_Ep04_sq0070_SH0170", "CTX_Ep04_sq0070_SH0180"}, names)
}

func TestStub_DisplayGroupSetVisibleUnknownGroupFails(t *testing.T) {
	s := NewStub()
	err := s.DisplayGroupSetVisible("nope", true)
	require.Error(t, err)
}
