// Package platformmap rewrites root-prefixed paths between OS mount
// conventions.
package platformmap

import (
	"github.com/igloo-vfx/multishot-core/pkg/config"
	corepath "github.com/igloo-vfx/multishot-core/pkg/path"
)

// RootTable is a per-platform root-name -> absolute-prefix map, built from a
// ProjectConfig's `roots` and `platform_mapping` sections. Both sections can
// contribute platform-keyed root prefixes; platform_mapping wins on
// conflict since it exists specifically to describe cross-OS translation.
type RootTable map[config.Platform]map[string]string

// BuildRootTable merges cfg.Roots (the platform-keyed entries only — a flat
// root has nothing to map, by construction) with cfg.PlatformMapping.
func BuildRootTable(cfg *config.ProjectConfig) RootTable {
	table := RootTable{
		config.Windows: {},
		config.Linux:   {},
	}

	for name, rv := range cfg.Roots {
		if rv.Windows != "" {
			table[config.Windows][name] = rv.Windows
		}
		if rv.Linux != "" {
			table[config.Linux][name] = rv.Linux
		}
	}

	for plat, roots := range cfg.PlatformMapping {
		for name, prefix := range roots {
			table[plat][name] = prefix
		}
	}

	return table
}

// Mapper translates paths between the platforms declared in a RootTable.
type Mapper struct {
	table RootTable
}

// New builds a Mapper from an already-built RootTable. Use
// NewFromConfig to build the table and the Mapper in one call.
func New(table RootTable) *Mapper {
	return &Mapper{table: table}
}

// NewFromConfig is a convenience constructor combining BuildRootTable and New.
func NewFromConfig(cfg *config.ProjectConfig) *Mapper {
	return New(BuildRootTable(cfg))
}

// CurrentPlatform reports the running OS's platform convention.
func CurrentPlatform() config.Platform {
	return config.CurrentPlatform()
}

// RootFor returns the absolute prefix registered for rootName under
// platform, and whether one was found.
func (m *Mapper) RootFor(rootName string, platform config.Platform) (string, bool) {
	roots, ok := m.table[platform]
	if !ok {
		return "", false
	}
	v, ok := roots[rootName]
	return v, ok
}

// Map rewrites path for targetPlatform: normalise separators, detect the
// source platform by longest-prefix match
// across all declared roots, and if source != target, swap that root's
// prefix for the equivalent root's target-platform prefix. A path whose
// prefix matches no declared root, or whose source already equals target,
// is returned normalised and otherwise unchanged — mapping is idempotent
// when source == target, and a no-op is never an error.
func (m *Mapper) Map(path string, targetPlatform config.Platform) string {
	normalized := corepath.Normalize(path)

	sourcePlatform, rootName, prefix, ok := m.detectSource(normalized)
	if !ok {
		return normalized
	}
	if sourcePlatform == targetPlatform {
		return normalized
	}

	targetPrefix, ok := m.RootFor(rootName, targetPlatform)
	if !ok {
		return normalized
	}
	return corepath.ReplacePrefix(normalized, prefix, targetPrefix)
}

// detectSource finds the platform and root whose prefix is the longest
// match of path among every declared root on every platform.
func (m *Mapper) detectSource(normalizedPath string) (platform config.Platform, rootName string, prefix string, found bool) {
	bestLen := -1
	for plat, roots := range m.table {
		for name, p := range roots {
			if p == "" {
				continue
			}
			if corepath.HasPrefixFold(normalizedPath, p) && len(p) > bestLen {
				bestLen = len(p)
				platform = plat
				rootName = name
				prefix = p
				found = true
			}
		}
	}
	return
}
