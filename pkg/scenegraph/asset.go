package scenegraph

import (
	"github.com/igloo-vfx/multishot-core/pkg/corerrors"
)

// Asset is identified by (asset_type, asset_name, variant) within a Shot,
// further disambiguated by department.
type Asset struct {
	shot *Shot

	assetType string
	assetName string
	variant   string

	department       string
	namespace        string
	templateName     string
	template         string
	extension        string
	resolvedFilePath string
	version          string

	hostRefID     string
	hostRefLinked bool
	hostRefByName bool

	deleted bool
}

// assetKey is the (asset_type, asset_name, variant, department) uniqueness
// key within one Shot.
func assetKey(assetType, assetName, variant, department string) string {
	return assetType + "_" + assetName + "_" + variant + "_" + department
}

// defaultNamespace returns "TYPE_name_variant", except for cameras
// (asset_type == "CAM"), whose namespace is the asset_name verbatim.
func defaultNamespace(assetType, assetName, variant string) string {
	if assetType == "CAM" {
		return assetName
	}
	return assetType + "_" + assetName + "_" + variant
}

// CreateAsset creates a new Asset under shot. It fails with
// *corerrors.DuplicateAssetError if (asset_type, asset_name, variant,
// department) already exists under shot.
func CreateAsset(shot *Shot, assetType, assetName, variant, department string) (*Asset, error) {
	if err := shot.checkAlive(); err != nil {
		return nil, err
	}
	key := assetKey(assetType, assetName, variant, department)
	if _, exists := shot.assets[key]; exists {
		return nil, &corerrors.DuplicateAssetError{
			AssetType: assetType, AssetName: assetName, Variant: variant, Department: department,
		}
	}

	a := &Asset{
		shot:       shot,
		assetType:  assetType,
		assetName:  assetName,
		variant:    variant,
		department: department,
		namespace:  defaultNamespace(assetType, assetName, variant),
	}
	shot.assets[key] = a
	shot.assetOrder = append(shot.assetOrder, key)
	return a, nil
}

func (a *Asset) AssetType() string        { return a.assetType }
func (a *Asset) AssetName() string        { return a.assetName }
func (a *Asset) Variant() string          { return a.variant }
func (a *Asset) Department() string       { return a.department }
func (a *Asset) Namespace() string        { return a.namespace }
func (a *Asset) TemplateName() string     { return a.templateName }
func (a *Asset) Template() string         { return a.template }
func (a *Asset) Extension() string        { return a.extension }
func (a *Asset) ResolvedFilePath() string { return a.resolvedFilePath }
func (a *Asset) Version() string          { return a.version }

func (a *Asset) checkAlive() error {
	if a.deleted {
		return &corerrors.StaleHandleError{ID: assetKey(a.assetType, a.assetName, a.variant, a.department)}
	}
	return nil
}

func (a *Asset) SetTemplate(templateName, rawTemplate string) error {
	if err := a.checkAlive(); err != nil {
		return err
	}
	a.templateName, a.template = templateName, rawTemplate
	return nil
}

func (a *Asset) SetFilePath(path string) error {
	if err := a.checkAlive(); err != nil {
		return err
	}
	a.resolvedFilePath = path
	return nil
}

// SetVersion updates the cached version and, unless silent is set on the
// owning Manager, emits a VersionUpdated event.
func (a *Asset) SetVersion(version string) error {
	if err := a.checkAlive(); err != nil {
		return err
	}
	a.version = version
	a.shot.mgr.emit(Event{Type: VersionUpdated, ShotID: a.shot.id, AssetKey: a.Key(), Version: version})
	return nil
}

func (a *Asset) SetDepartment(department string) error {
	if err := a.checkAlive(); err != nil {
		return err
	}
	a.department = department
	return nil
}

func (a *Asset) SetExtension(extension string) error {
	if err := a.checkAlive(); err != nil {
		return err
	}
	a.extension = extension
	return nil
}

func (a *Asset) SetNamespace(namespace string) error {
	if err := a.checkAlive(); err != nil {
		return err
	}
	a.namespace = namespace
	return nil
}

// Key returns this Asset's (asset_type, asset_name, variant, department)
// uniqueness key.
func (a *Asset) Key() string {
	return assetKey(a.assetType, a.assetName, a.variant, a.department)
}

// LinkHost records an association with an external host reference. byName
// indicates the fallback, string-keyed path was used because the backend
// could not offer a live bidirectional association.
func (a *Asset) LinkHost(hostRefID string, byName bool) error {
	if err := a.checkAlive(); err != nil {
		return err
	}
	a.hostRefID = hostRefID
	a.hostRefLinked = true
	a.hostRefByName = byName
	return nil
}

// HostLink returns the linked host reference id, whether it is linked at
// all, and whether the link is the string-keyed fallback.
func (a *Asset) HostLink() (id string, linked bool, byName bool) {
	return a.hostRefID, a.hostRefLinked, a.hostRefByName
}

// UnlinkHost clears any host reference association.
func (a *Asset) UnlinkHost() error {
	if err := a.checkAlive(); err != nil {
		return err
	}
	a.hostRefID = ""
	a.hostRefLinked = false
	a.hostRefByName = false
	return nil
}
