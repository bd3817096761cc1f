// Package switcher implements the Shot Switcher & Visibility Policy
// (spec.md §4.9): active-shot selection, display-group membership, and a
// bounded switch history.
package switcher

import (
	"github.com/igloo-vfx/multishot-core/pkg/backend"
	"github.com/igloo-vfx/multishot-core/pkg/corerrors"
	"github.com/igloo-vfx/multishot-core/pkg/scenegraph"
)

// historyLimit is the bounded FIFO size spec.md §4.9 specifies.
const historyLimit = 20

// Switcher moves "active" from one shot to another against a single
// Manager, and maintains the switch history backing previous()/next().
type Switcher struct {
	backend backend.Backend
	history []string
}

// New builds a Switcher over the given Backend, used to mirror display
// group visibility into the host.
func New(b backend.Backend) *Switcher {
	return &Switcher{backend: b}
}

// SwitchTo implements spec.md §4.9's switch_to. manager_id in the spec
// becomes the concrete *scenegraph.Manager here: this core has exactly one
// Manager per Pipeline value, so there is no separate manager registry to
// look an id up in. Only this user-initiated entry point (and Isolate,
// which is defined in terms of it) pushes/re-ranks history; Previous/Next
// navigate the existing history in place via activate.
func (s *Switcher) SwitchTo(mgr *scenegraph.Manager, shotID string, hideOthers bool) (bool, error) {
	ok, err := s.activate(mgr, shotID, hideOthers)
	if err != nil || !ok {
		return ok, err
	}
	s.pushHistory(shotID)
	return true, nil
}

// activate runs switch_to's active-flag and display-group effects and emits
// shot_switched, without touching history. SwitchTo calls this then pushes
// history; step (Previous/Next) calls this directly so navigating through
// history never re-ranks it.
func (s *Switcher) activate(mgr *scenegraph.Manager, shotID string, hideOthers bool) (bool, error) {
	shot, ok := mgr.ShotByID(shotID)
	if !ok {
		return false, &corerrors.StaleHandleError{ID: shotID}
	}

	for _, other := range mgr.Shots() {
		if err := other.SetActive(false); err != nil {
			return false, err
		}
	}
	if err := shot.SetActive(true); err != nil {
		return false, err
	}
	if err := mgr.SetActiveShotID(shotID); err != nil {
		return false, err
	}

	groupName := shot.DisplayGroupName()
	if err := s.backend.DisplayGroupEnsure(groupName); err != nil {
		return false, err
	}
	if err := s.backend.DisplayGroupSetVisible(groupName, true); err != nil {
		return false, err
	}

	if hideOthers {
		prefixed, err := s.backend.DisplayGroupListPrefixed(scenegraph.DisplayGroupPrefix)
		if err != nil {
			return false, err
		}
		for _, name := range prefixed {
			if name == groupName {
				continue
			}
			if err := s.backend.DisplayGroupSetVisible(name, false); err != nil {
				return false, err
			}
		}
	}

	mgr.EmitShotSwitched(shotID)
	return true, nil
}

// Active returns the Manager's current active shot id, or false if none.
func (s *Switcher) Active(mgr *scenegraph.Manager) (string, bool) {
	if mgr.ActiveShotID == "" {
		return "", false
	}
	return mgr.ActiveShotID, true
}

// Isolate is switch_to with hide_others always true (spec.md §4.9).
func (s *Switcher) Isolate(mgr *scenegraph.Manager, shotID string) (bool, error) {
	return s.SwitchTo(mgr, shotID, true)
}

// ShowAll makes every CTX-prefixed display group visible.
func (s *Switcher) ShowAll() error {
	return s.setAllVisible(true)
}

// HideAll hides every CTX-prefixed display group.
func (s *Switcher) HideAll() error {
	return s.setAllVisible(false)
}

func (s *Switcher) setAllVisible(visible bool) error {
	names, err := s.backend.DisplayGroupListPrefixed(scenegraph.DisplayGroupPrefix)
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := s.backend.DisplayGroupSetVisible(name, visible); err != nil {
			return err
		}
	}
	return nil
}

// History returns a snapshot of the switch history, oldest first.
func (s *Switcher) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// pushHistory appends shotID to the FIFO, bounded at historyLimit; an
// existing entry is re-ranked to the end instead of duplicated.
func (s *Switcher) pushHistory(shotID string) {
	for i, id := range s.history {
		if id == shotID {
			s.history = append(s.history[:i], s.history[i+1:]...)
			break
		}
	}
	s.history = append(s.history, shotID)
	if len(s.history) > historyLimit {
		s.history = s.history[len(s.history)-historyLimit:]
	}
}

// Previous moves to the history entry immediately before the current active
// shot's linear position, switching to it. It is a no-op (returns false) if
// history has fewer than 2 entries or the active shot isn't present in it.
func (s *Switcher) Previous(mgr *scenegraph.Manager) (bool, error) {
	return s.step(mgr, -1)
}

// Next moves to the history entry immediately after the current active
// shot's linear position. Same no-op conditions as Previous.
func (s *Switcher) Next(mgr *scenegraph.Manager) (bool, error) {
	return s.step(mgr, 1)
}

func (s *Switcher) step(mgr *scenegraph.Manager, direction int) (bool, error) {
	if len(s.history) < 2 {
		return false, nil
	}
	current, ok := s.Active(mgr)
	if !ok {
		return false, nil
	}
	idx := -1
	for i, id := range s.history {
		if id == current {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}
	target := idx + direction
	if target < 0 || target >= len(s.history) {
		return false, nil
	}
	return s.activate(mgr, s.history[target], true)
}
