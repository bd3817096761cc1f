package config

import (
	"github.com/hashicorp/go-version"
)

// IsSupportedVersion reports whether target is one of SupportedSchemaVersions.
// Comparison goes through hashicorp/go-version rather than a raw string
// compare, so "1.0" and "1.0.0" are treated as equal and a malformed version
// string is rejected instead of silently mismatching.
func IsSupportedVersion(target string) bool {
	targetVer, err := version.NewVersion(target)
	if err != nil {
		return false
	}
	for _, supported := range SupportedSchemaVersions {
		supportedVer, err := version.NewVersion(supported)
		if err != nil {
			continue
		}
		if targetVer.Equal(supportedVer) {
			return true
		}
	}
	return false
}

// CompareVersions returns -1, 0, or 1 per the usual comparator convention,
// comparing two schema_version strings.
func CompareVersions(a, b string) (int, error) {
	av, err := version.NewVersion(a)
	if err != nil {
		return 0, err
	}
	bv, err := version.NewVersion(b)
	if err != nil {
		return 0, err
	}
	return av.Compare(bv), nil
}
