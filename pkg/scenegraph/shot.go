package scenegraph

import (
	"fmt"

	"github.com/igloo-vfx/multishot-core/pkg/corerrors"
)

// DisplayGroupPrefix is the default display-group naming convention:
// "CTX_{ep}_{seq}_{shot}". The switcher uses this same prefix to find every
// shot-scoped display group when hiding others.
const DisplayGroupPrefix = "CTX_"

// Shot is identified by the (ep, seq, shot) triple.
type Shot struct {
	mgr  *Manager
	id   string
	ep   string
	seq  string
	shot string

	displayGroupName string
	isActive         bool

	frameStart, frameEnd int
	fps                  float64
	handles              int
	frameOffset          int

	assets     map[string]*Asset
	assetOrder []string
	deleted    bool
}

// shotID is the stable map key / handle id for a Shot's identity triple.
func shotID(ep, seq, shot string) string {
	return ep + "_" + seq + "_" + shot
}

// CreateShot creates a new Shot under mgr. It fails with
// *corerrors.DuplicateShotError if (ep,seq,shot) already exists.
func CreateShot(mgr *Manager, ep, seq, shot string) (*Shot, error) {
	id := shotID(ep, seq, shot)
	if _, exists := mgr.shots[id]; exists {
		return nil, &corerrors.DuplicateShotError{Ep: ep, Seq: seq, Shot: shot}
	}

	s := &Shot{
		mgr:              mgr,
		id:               id,
		ep:               ep,
		seq:              seq,
		shot:             shot,
		displayGroupName: fmt.Sprintf("%s%s_%s_%s", DisplayGroupPrefix, ep, seq, shot),
		assets:           map[string]*Asset{},
	}
	mgr.shots[id] = s
	mgr.shotOrder = append(mgr.shotOrder, id)

	mgr.emit(Event{Type: ShotCreated, ShotID: id})
	return s, nil
}

func (s *Shot) ID() string               { return s.id }
func (s *Shot) Ep() string               { return s.ep }
func (s *Shot) Seq() string              { return s.seq }
func (s *Shot) Shot() string             { return s.shot }
func (s *Shot) DisplayGroupName() string { return s.displayGroupName }
func (s *Shot) IsActive() bool           { return s.isActive }
func (s *Shot) FrameRange() (int, int)   { return s.frameStart, s.frameEnd }
func (s *Shot) FPS() float64             { return s.fps }
func (s *Shot) Handles() int             { return s.handles }
func (s *Shot) FrameOffset() int         { return s.frameOffset }

func (s *Shot) checkAlive() error {
	if s.deleted {
		return &corerrors.StaleHandleError{ID: s.id}
	}
	return nil
}

// SetActive directly sets the is_active flag. Callers that want the full
// switch_to effects (display groups, history, events) use pkg/switcher
// instead; this is the low-level mutator it's built on.
func (s *Shot) SetActive(active bool) error {
	if err := s.checkAlive(); err != nil {
		return err
	}
	s.isActive = active
	return nil
}

func (s *Shot) SetFrameRange(start, end int) error {
	if err := s.checkAlive(); err != nil {
		return err
	}
	s.frameStart, s.frameEnd = start, end
	return nil
}

func (s *Shot) SetFPS(fps float64) error {
	if err := s.checkAlive(); err != nil {
		return err
	}
	s.fps = fps
	return nil
}

func (s *Shot) SetHandles(handles int) error {
	if err := s.checkAlive(); err != nil {
		return err
	}
	s.handles = handles
	return nil
}

func (s *Shot) SetFrameOffset(offset int) error {
	if err := s.checkAlive(); err != nil {
		return err
	}
	s.frameOffset = offset
	return nil
}

// Assets returns every non-deleted Asset owned by this Shot, in creation
// order.
func (s *Shot) Assets() []*Asset {
	out := make([]*Asset, 0, len(s.assetOrder))
	for _, key := range s.assetOrder {
		if a, ok := s.assets[key]; ok && !a.deleted {
			out = append(out, a)
		}
	}
	return out
}
