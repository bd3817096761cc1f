// Package config is the typed, validated in-memory representation of a
// project configuration, plus its JSON loader, schema and semantic
// validator, and version migration stub.
package config

// Platform is one of the two OS conventions the core knows how to mirror
// paths between. CurrentPlatform maps darwin to "linux" and any OS it does
// not recognise to "windows".
type Platform string

const (
	Windows Platform = "windows"
	Linux   Platform = "linux"
)

// SupportedSchemaVersions is the declared set of schema_version values this
// build accepts: the pattern, template and config modules agree on "1.0" and
// "1.1", so that is what ships here.
var SupportedSchemaVersions = []string{"1.0", "1.1"}

// RootValue holds the one, two, or three ways a root's path may have been
// declared: a platform-agnostic flat string, or platform-keyed values. For
// returns the value applicable to a given platform, normalizing the two
// accepted `roots` shapes into one internal representation.
type RootValue struct {
	Flat    string
	Windows string
	Linux   string
}

// For returns the root path applicable to platform, and whether one was
// declared at all.
func (rv RootValue) For(platform Platform) (string, bool) {
	if rv.Flat != "" {
		return rv.Flat, true
	}
	switch platform {
	case Windows:
		if rv.Windows != "" {
			return rv.Windows, true
		}
	case Linux:
		if rv.Linux != "" {
			return rv.Linux, true
		}
	}
	return "", false
}

// ShotMetadataConfig describes the sidecar-file conventions for per-shot JSON
// ingest. Field names are configurable so the core can ingest sidecars
// written by differently-configured older pipelines; zero values fall back
// to the documented defaults (see pkg/sidecar).
type ShotMetadataConfig struct {
	FilenamePattern      string `json:"filename_pattern"`
	FrameRangeField      string `json:"frame_range_field"`
	FrameRangeStartField string `json:"frame_range_start_field"`
	FrameRangeEndField   string `json:"frame_range_end_field"`
	FrameStartField      string `json:"frame_start_field"`
	FrameEndField        string `json:"frame_end_field"`
	FPSField             string `json:"fps_field"`
}

// RenderSettings selects a per-department output template and whether the
// resolver should propagate the active shot's frame range into the resolve
// context as $startFrame/$endFrame.
type RenderSettings struct {
	TemplateByDepartment map[string]string `json:"template_by_department"`
	FramePadding         int               `json:"frame_padding"`
	PropagateFrameRange  bool              `json:"propagate_frame_range"`
}

// ProjectConfig is the immutable, validated in-memory project configuration.
// Construct it only through Load (which validates, then calls build); do not build
// one by hand in non-test code.
type ProjectConfig struct {
	SchemaVersion string

	ProjectName string
	ProjectCode string

	Roots       map[string]RootValue
	StaticPaths map[string]string
	Templates   map[string]string
	Patterns    map[string]string
	Tokens      map[string][]string

	// PlatformMapping feeds the platform mapper's cross-OS root table,
	// keyed by platform, then root name, to an absolute prefix for that
	// platform.
	PlatformMapping map[Platform]map[string]string

	ShotMetadata   *ShotMetadataConfig
	RenderSettings *RenderSettings
}

// Root returns the configured value for rootName on the given platform,
// falling back to CurrentPlatform() when platform is empty. It abstracts
// over both accepted `roots` shapes.
func (c *ProjectConfig) Root(rootName string, platform Platform) (string, bool) {
	if platform == "" {
		platform = CurrentPlatform()
	}
	rv, ok := c.Roots[rootName]
	if !ok {
		return "", false
	}
	return rv.For(platform)
}

// StaticPath returns the relative path fragment registered under name.
func (c *ProjectConfig) StaticPath(name string) (string, bool) {
	v, ok := c.StaticPaths[name]
	return v, ok
}

// Template returns the raw template string registered under name.
func (c *ProjectConfig) Template(name string) (string, bool) {
	v, ok := c.Templates[name]
	return v, ok
}

// TemplateNames returns every registered template name, used to populate
// corerrors.TemplateNotFoundError.Available.
func (c *ProjectConfig) TemplateNames() []string {
	names := make([]string, 0, len(c.Templates))
	for name := range c.Templates {
		names = append(names, name)
	}
	return names
}
