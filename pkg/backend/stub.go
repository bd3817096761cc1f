package backend

import (
	"sort"
	"strconv"
	"strings"
	"sync"
)

type node struct {
	kind, name string
	attrs      map[string]AttrValue
}

type connectionKey struct{ id, attr string }

type displayGroup struct {
	visible bool
	members map[string]bool
}

// Stub is an in-memory Backend used by tests and by any caller with no live
// host DCC to link against.
type Stub struct {
	mu     sync.Mutex
	nextID int

	nodes       map[string]*node
	connections map[connectionKey][]string

	assetToHost       map[string]string
	assetToHostByName map[string]bool
	hostToAssets       map[string]map[string]bool
	lockedHosts        map[string]bool

	displayGroups map[string]*displayGroup
}

// NewStub returns an empty Stub.
func NewStub() *Stub {
	return &Stub{
		nodes:             map[string]*node{},
		connections:       map[connectionKey][]string{},
		assetToHost:       map[string]string{},
		assetToHostByName: map[string]bool{},
		hostToAssets:      map[string]map[string]bool{},
		lockedHosts:       map[string]bool{},
		displayGroups:     map[string]*displayGroup{},
	}
}

// LockReference marks a host reference as unable to accept a live
// bidirectional association, forcing future Link calls targeting it onto
// the string-keyed fallback path. Not part of the Backend interface: it
// exists so tests can exercise both linkage paths against one stub.
func (s *Stub) LockReference(hostRefID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lockedHosts[hostRefID] = true
}

func (s *Stub) NodeExists(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.nodes[id]
	return ok
}

func (s *Stub) CreateRecord(kind, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := kind + "#" + strconv.Itoa(s.nextID)
	s.nodes[id] = &node{kind: kind, name: name, attrs: map[string]AttrValue{}}
	return id, nil
}

func (s *Stub) SetAttr(id, name string, value AttrValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[id]
	if !ok {
		return &ErrNodeNotFound{ID: id}
	}
	n.attrs[name] = value
	return nil
}

func (s *Stub) GetAttr(id, name string) (AttrValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[id]
	if !ok {
		return nil, &ErrNodeNotFound{ID: id}
	}
	v, ok := n.attrs[name]
	if !ok {
		return nil, &ErrAttrNotSet{ID: id, Name: name}
	}
	return v, nil
}

func (s *Stub) Connect(srcID, srcAttr, dstID, dstAttr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.nodes[srcID]; !ok {
		return &ErrNodeNotFound{ID: srcID}
	}
	if _, ok := s.nodes[dstID]; !ok {
		return &ErrNodeNotFound{ID: dstID}
	}
	s.connections[connectionKey{srcID, srcAttr}] = append(s.connections[connectionKey{srcID, srcAttr}], dstID)
	s.connections[connectionKey{dstID, dstAttr}] = append(s.connections[connectionKey{dstID, dstAttr}], srcID)
	return nil
}

func (s *Stub) ListConnections(id, attr string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.nodes[id]; !ok {
		return nil, &ErrNodeNotFound{ID: id}
	}
	out := s.connections[connectionKey{id, attr}]
	result := make([]string, len(out))
	copy(result, out)
	return result, nil
}

// ApplyFilePath sets the resolvedPath attribute on hostRefID. A real
// per-host backend picks between dso/fileName/reference-reload mechanisms
// based on the reference's kind; the stub has exactly one mechanism since
// tests don't care which attribute name was used, only that the resolved
// path reached the reference.
func (s *Stub) ApplyFilePath(hostRefID, path string) error {
	return s.SetAttr(hostRefID, "resolvedPath", path)
}

func (s *Stub) FindReferenceByNamespace(namespace string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, n := range s.nodes {
		if ns, ok := n.attrs["namespace"]; ok {
			if nsStr, ok := ns.(string); ok && nsStr == namespace {
				return id, true
			}
		}
	}
	return "", false
}

func (s *Stub) Link(assetID, hostRefID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byName := s.lockedHosts[hostRefID]

	s.assetToHost[assetID] = hostRefID
	s.assetToHostByName[assetID] = byName
	if s.hostToAssets[hostRefID] == nil {
		s.hostToAssets[hostRefID] = map[string]bool{}
	}
	s.hostToAssets[hostRefID][assetID] = true

	return byName, nil
}

func (s *Stub) LinkedHostRef(assetID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.assetToHost[assetID]
	return id, ok
}

func (s *Stub) LinkedAssets(hostRefID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.hostToAssets[hostRefID]
	out := make([]string, 0, len(set))
	for assetID := range set {
		out = append(out, assetID)
	}
	sort.Strings(out)
	return out
}

func (s *Stub) Unlink(assetID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hostRefID, ok := s.assetToHost[assetID]
	if !ok {
		return
	}
	delete(s.assetToHost, assetID)
	delete(s.assetToHostByName, assetID)
	if members, ok := s.hostToAssets[hostRefID]; ok {
		delete(members, assetID)
	}
}

func (s *Stub) DisplayGroupEnsure(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.displayGroups[name]; !ok {
		s.displayGroups[name] = &displayGroup{members: map[string]bool{}}
	}
	return nil
}

func (s *Stub) DisplayGroupSetVisible(name string, visible bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.displayGroups[name]
	if !ok {
		return &ErrDisplayGroupNotFound{Name: name}
	}
	g.visible = visible
	return nil
}

// DisplayGroupIsVisible is a test/inspection helper, not part of the
// Backend interface.
func (s *Stub) DisplayGroupIsVisible(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.displayGroups[name]
	if !ok {
		return false, &ErrDisplayGroupNotFound{Name: name}
	}
	return g.visible, nil
}

func (s *Stub) DisplayGroupAssign(name, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.displayGroups[name]
	if !ok {
		return &ErrDisplayGroupNotFound{Name: name}
	}
	g.members[memberID] = true
	return nil
}

func (s *Stub) DisplayGroupMembers(name string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.displayGroups[name]
	if !ok {
		return nil, &ErrDisplayGroupNotFound{Name: name}
	}
	out := make([]string, 0, len(g.members))
	for id := range g.members {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (s *Stub) DisplayGroupListPrefixed(prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for name := range s.displayGroups {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out, nil
}

var _ Backend = (*Stub)(nil)
