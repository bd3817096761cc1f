// Package backend declares the Scene Backend capability set: the edge the
// core calls to mirror scene-graph records into a host DCC and to link
// Asset records with host reference nodes. The core never implements this;
// Stub (stub.go) is the in-memory fake used by tests and by any package
// that needs a backend but has no live host.
package backend

import "fmt"

// AttrValue is the value carried by a host attribute slot: string, integer,
// bool, or enum (represented as string).
type AttrValue any

// Backend is the capability set a host implements once per DCC; the core
// depends only on this interface.
type Backend interface {
	NodeExists(id string) bool
	CreateRecord(kind, name string) (id string, err error)
	SetAttr(id, name string, value AttrValue) error
	GetAttr(id, name string) (AttrValue, error)

	Connect(srcID, srcAttr, dstID, dstAttr string) error
	ListConnections(id, attr string) ([]string, error)

	// ApplyFilePath updates whichever attribute the host uses for a
	// proxy/standin/reference; the implementation picks the mechanism based
	// on the reference's own kind.
	ApplyFilePath(hostRefID, path string) error

	FindReferenceByNamespace(namespace string) (id string, ok bool)

	// Link records a bidirectional association between a core Asset and a
	// host reference. byName reports whether the string-keyed fallback was
	// used because hostRefID could not accept a live association.
	Link(assetID, hostRefID string) (byName bool, err error)
	LinkedHostRef(assetID string) (hostRefID string, ok bool)
	LinkedAssets(hostRefID string) []string
	Unlink(assetID string)

	DisplayGroupEnsure(name string) error
	DisplayGroupSetVisible(name string, visible bool) error
	DisplayGroupAssign(name string, memberID string) error
	DisplayGroupMembers(name string) ([]string, error)
	DisplayGroupListPrefixed(prefix string) ([]string, error)
}

// ErrNodeNotFound is returned by operations targeting an id that CreateRecord
// never produced.
type ErrNodeNotFound struct {
	ID string
}

func (e *ErrNodeNotFound) Error() string { return fmt.Sprintf("backend: node %q not found", e.ID) }

// ErrAttrNotSet is returned by GetAttr when name was never set on id.
type ErrAttrNotSet struct {
	ID, Name string
}

func (e *ErrAttrNotSet) Error() string {
	return fmt.Sprintf("backend: attribute %q not set on node %q", e.Name, e.ID)
}

// ErrDisplayGroupNotFound is returned by operations targeting a display
// group that was never ensure()d.
type ErrDisplayGroupNotFound struct {
	Name string
}

func (e *ErrDisplayGroupNotFound) Error() string {
	return fmt.Sprintf("backend: display group %q not found", e.Name)
}
