package config

import (
	"encoding/json"

	"github.com/igloo-vfx/multishot-core/pkg/corerrors"
)

// Migrate copies doc with its schema_version field rewritten to
// targetVersion; a doc whose schema_version already equals targetVersion by
// dotted-version comparison keeps its original spelling. It fails with MigrationUnsupportedError for any target not
// in SupportedSchemaVersions; no field-level transformation between schema
// versions is implemented (there is currently only one schema shape).
func Migrate(doc RawDoc, targetVersion string) (RawDoc, error) {
	if !IsSupportedVersion(targetVersion) {
		return nil, &corerrors.MigrationUnsupportedError{TargetVersion: targetVersion}
	}

	// Deep-copy via JSON round-trip so the caller's doc is untouched.
	raw, err := json.Marshal(map[string]interface{}(doc))
	if err != nil {
		return nil, err
	}
	var copied RawDoc
	if err := json.Unmarshal(raw, &copied); err != nil {
		return nil, err
	}

	// CompareVersions treats "1.0" and "1.0.0" as equal, so a doc already at
	// targetVersion (by dotted-version equality, not just string equality)
	// is left alone rather than having its schema_version field rewritten.
	if current, ok := asString(copied["schema_version"]); ok {
		if cmp, err := CompareVersions(current, targetVersion); err == nil && cmp == 0 {
			return copied, nil
		}
	}

	copied["schema_version"] = targetVersion
	return copied, nil
}
