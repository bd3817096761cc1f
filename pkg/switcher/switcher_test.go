package switcher

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/igloo-vfx/multishot-core/pkg/backend"
	"github.com/igloo-vfx/multishot-core/pkg/scenegraph"
)

func newShot(t *testing.T, mgr *scenegraph.Manager, ep, seq, shot string) *scenegraph.Shot {
	t.Helper()
	s, err := scenegraph.CreateShot(mgr, ep, seq, shot)
	require.NoError(t, err)
	return s
}

func TestSwitchTo_ScenarioFromSpec(t *testing.T) {
	mgr := scenegraph.NewManager()
	newShot(t, mgr, "Ep04", "sq0070", "SH0170")
	newShot(t, mgr, "Ep04", "sq0070", "SH0180")

	b := backend.NewStub()
	sw := New(b)

	ok, err := sw.SwitchTo(mgr, "Ep04_sq0070_SH0170", true)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = sw.SwitchTo(mgr, "Ep04_sq0070_SH0180", true)
	require.NoError(t, err)
	require.True(t, ok)

	active, ok := sw.Active(mgr)
	require.True(t, ok)
	require.Equal(t, "Ep04_sq0070_SH0180", active)

	visible170, err := b.DisplayGroupIsVisible("CTX_Ep04_sq0070_SH0170")
	require.NoError(t, err)
	require.False(t, visible170)

	visible180, err := b.DisplayGroupIsVisible("CTX_Ep04_sq0070_SH0180")
	require.NoError(t, err)
	require.True(t, visible180)

	require.Equal(t, []string{"Ep04_sq0070_SH0170", "Ep04_sq0070_SH0180"}, sw.History())
}

func TestSwitchTo_UnknownShotFails(t *testing.T) {
	mgr := scenegraph.NewManager()
	sw := New(backend.NewStub())
	_, err := sw.SwitchTo(mgr, "nope", true)
	require.Error(t, err)
}

func TestIsolate_IsSwitchToWithHideOthers(t *testing.T) {
	mgr := scenegraph.NewManager()
	newShot(t, mgr, "Ep04", "sq0070", "SH0170")
	newShot(t, mgr, "Ep04", "sq0070", "SH0180")
	b := backend.NewStub()
	sw := New(b)

	_, err := sw.SwitchTo(mgr, "Ep04_sq0070_SH0170", true)
	require.NoError(t, err)
	_, err = sw.Isolate(mgr, "Ep04_sq0070_SH0180")
	require.NoError(t, err)

	visible, err := b.DisplayGroupIsVisible("CTX_Ep04_sq0070_SH0170")
	require.NoError(t, err)
	require.False(t, visible)
}

func TestShowAllHideAll(t *testing.T) {
	mgr := scenegraph.NewManager()
	newShot(t, mgr, "Ep04", "sq0070", "SH0170")
	newShot(t, mgr, "Ep04", "sq0070", "SH0180")
	b := backend.NewStub()
	sw := New(b)
	_, _ = sw.SwitchTo(mgr, "Ep04_sq0070_SH0170", true)
	_, _ = sw.SwitchTo(mgr, "Ep04_sq0070_SH0180", true)

	require.NoError(t, sw.ShowAll())
	v170, _ := b.DisplayGroupIsVisible("CTX_Ep04_sq0070_SH0170")
	require.True(t, v170)

	require.NoError(t, sw.HideAll())
	v180, _ := b.DisplayGroupIsVisible("CTX_Ep04_sq0070_SH0180")
	require.False(t, v180)
}

func TestPreviousNext_NavigateHistory(t *testing.T) {
	mgr := scenegraph.NewManager()
	newShot(t, mgr, "Ep04", "sq0070", "SH0170")
	newShot(t, mgr, "Ep04", "sq0070", "SH0180")
	newShot(t, mgr, "Ep04", "sq0070", "SH0190")
	b := backend.NewStub()
	sw := New(b)

	_, _ = sw.SwitchTo(mgr, "Ep04_sq0070_SH0170", true)
	_, _ = sw.SwitchTo(mgr, "Ep04_sq0070_SH0180", true)
	_, _ = sw.SwitchTo(mgr, "Ep04_sq0070_SH0190", true)

	ok, err := sw.Previous(mgr)
	require.NoError(t, err)
	require.True(t, ok)
	active, _ := sw.Active(mgr)
	require.Equal(t, "Ep04_sq0070_SH0180", active)

	ok, err = sw.Next(mgr)
	require.NoError(t, err)
	require.True(t, ok)
	active, _ = sw.Active(mgr)
	require.Equal(t, "Ep04_sq0070_SH0190", active)
}

func TestPreviousNext_NoOpWithInsufficientHistory(t *testing.T) {
	mgr := scenegraph.NewManager()
	newShot(t, mgr, "Ep04", "sq0070", "SH0170")
	b := backend.NewStub()
	sw := New(b)
	_, _ = sw.SwitchTo(mgr, "Ep04_sq0070_SH0170", true)

	ok, err := sw.Previous(mgr)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHistory_BoundedFIFOAndRerank(t *testing.T) {
	mgr := scenegraph.NewManager()
	b := backend.NewStub()
	sw := New(b)

	for i := 0; i < 25; i++ {
		ep, seq, shotName := "Ep04", "sq0070", fmt.Sprintf("SH%04d", i)
		newShot(t, mgr, ep, seq, shotName)
		_, err := sw.SwitchTo(mgr, shotID(ep, seq, shotName), true)
		require.NoError(t, err)
	}
	require.Len(t, sw.History(), historyLimit)

	first := shotID("Ep04", "sq0070", "SH0005")
	_, err := sw.SwitchTo(mgr, first, true)
	require.NoError(t, err)
	history := sw.History()
	require.Equal(t, first, history[len(history)-1])
}

func shotID(ep, seq, shot string) string {
	return ep + "_" + seq + "_" + shot
}
