// Package scenegraph implements the in-memory Manager/Shot/Asset model:
// uniqueness invariants, ownership/cascade-delete, and synchronous observer
// callbacks. It knows nothing about any host DCC; that edge is pkg/backend.
package scenegraph

import (
	"github.com/igloo-vfx/multishot-core/pkg/corerrors"
)

// Manager is the scene-graph root: one per Pipeline value, never a
// process-global singleton.
type Manager struct {
	ConfigPath   string
	ProjectRoot  string
	ActiveShotID string
	shots        map[string]*Shot
	shotOrder    []string
	observers    []Observer
	silent       bool
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{shots: map[string]*Shot{}}
}

// GetOrCreate lazily initialises *slot on first use and returns it,
// without any process-global state: the Pipeline value that owns the
// Manager holds the slot.
func GetOrCreate(slot **Manager) *Manager {
	if *slot == nil {
		*slot = NewManager()
	}
	return *slot
}

func (m *Manager) SetConfigPath(path string)  { m.ConfigPath = path }
func (m *Manager) SetProjectRoot(root string) { m.ProjectRoot = root }

// SetActiveShotID sets the Manager's bookkeeping field directly. The switcher
// is responsible for the full switch_to effects (§4.9); this setter does not
// touch is_active flags or display groups.
func (m *Manager) SetActiveShotID(shotID string) error {
	if shotID != "" {
		if _, ok := m.shots[shotID]; !ok {
			return &corerrors.StaleHandleError{ID: shotID}
		}
	}
	m.ActiveShotID = shotID
	return nil
}

// Shots returns every non-deleted Shot, in creation order.
func (m *Manager) Shots() []*Shot {
	out := make([]*Shot, 0, len(m.shotOrder))
	for _, id := range m.shotOrder {
		if s, ok := m.shots[id]; ok && !s.deleted {
			out = append(out, s)
		}
	}
	return out
}

// ShotByID looks up a Shot by its (ep,seq,shot) key (see shotID).
func (m *Manager) ShotByID(id string) (*Shot, bool) {
	s, ok := m.shots[id]
	if !ok || s.deleted {
		return nil, false
	}
	return s, true
}

// Observe registers an observer, called synchronously on every future event
// in registration order.
func (m *Manager) Observe(obs Observer) {
	m.observers = append(m.observers, obs)
}

// SetSilent toggles event emission. Used to avoid feedback loops during bulk
// updates.
func (m *Manager) SetSilent(silent bool) { m.silent = silent }

// EmitShotSwitched fires the shot_switched event. It exists so pkg/switcher,
// which owns the switch_to effects sequence, can emit through the Manager's
// observer list without the Manager needing to know about switching itself.
func (m *Manager) EmitShotSwitched(shotID string) {
	m.emit(Event{Type: ShotSwitched, ShotID: shotID})
}

// DeleteShot removes a Shot and cascades to its Assets. It is not an error
// to delete an unknown or already-deleted id.
func (m *Manager) DeleteShot(shotID string) {
	s, ok := m.shots[shotID]
	if !ok {
		return
	}
	s.deleted = true
	for _, a := range s.assets {
		a.deleted = true
	}
	delete(m.shots, shotID)
	if m.ActiveShotID == shotID {
		m.ActiveShotID = ""
	}
}
