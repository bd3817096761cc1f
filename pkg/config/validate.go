package config

import (
	"fmt"
	"regexp"

	"github.com/igloo-vfx/multishot-core/pkg/corerrors"
)

// Validate runs both validation layers: a structural schema check (required
// keys present, section types correct), then the semantic invariants
// (non-empty roots, non-empty template
// strings, every pattern compiles, enumerated token values are strings).
// It never stops at the first problem; every failure found is appended to
// the returned ValidationResult, along with deprecation warnings for
// non-canonical section key casing. doc must already be valid JSON (see
// Load, which parses the file before calling Validate).
func Validate(doc RawDoc) *corerrors.ValidationResult {
	result := validateStructure(doc)
	validateSemantics(doc, result)
	return result
}

func validateSemantics(doc RawDoc, result *corerrors.ValidationResult) {
	if v, ok := doc["schema_version"]; ok {
		if s, ok := asString(v); ok {
			if !IsSupportedVersion(s) {
				result.AddError(fmt.Errorf("schema_version %q is not one of the supported versions %v", s, SupportedSchemaVersions))
			}
		} else {
			result.AddError(fmt.Errorf("schema_version must be a string"))
		}
	}

	validateRoots(doc, result)
	validateStringSection(doc, result, "static_paths", "staticPaths", false)
	validateTemplates(doc, result)
	validatePatterns(doc, result)
	validateTokens(doc, result)
	validateShotMetadataCasing(doc, result)
}

func validateRoots(doc RawDoc, result *corerrors.ValidationResult) {
	v, ok := doc["roots"]
	if !ok {
		return
	}
	m, ok := asStringMap(v)
	if !ok {
		result.AddError(fmt.Errorf("roots must be a mapping"))
		return
	}
	for name, entry := range m {
		switch val := entry.(type) {
		case string:
			if val == "" {
				result.AddError(fmt.Errorf("root %q is empty", name))
			}
		case map[string]interface{}:
			// platform-keyed shape {windows: {...}, linux: {...}} OR a
			// direct {root_name: path} nested under one of those keys is
			// handled by buildRoots; here we only check non-emptiness of
			// whichever leaf strings are present.
			if len(val) == 0 {
				result.AddError(fmt.Errorf("root %q has no platform entries", name))
			}
			for leaf, lv := range val {
				if s, ok := lv.(string); ok && s == "" {
					result.AddError(fmt.Errorf("root %s.%s is empty", name, leaf))
				}
			}
		default:
			result.AddError(fmt.Errorf("root %q has an unrecognized shape", name))
		}
	}
}

func validateStringSection(doc RawDoc, result *corerrors.ValidationResult, canonicalKey, altKey string, requireNonEmptyValues bool) {
	v, key, ok := firstOf(doc, canonicalKey, altKey)
	if !ok {
		return
	}
	if key == altKey {
		result.AddWarning(&corerrors.DeprecationWarning{
			Field:       altKey,
			Replacement: canonicalKey,
			Message:     "use snake_case section names",
		})
	}
	m, ok := asStringMap(v)
	if !ok {
		result.AddError(fmt.Errorf("%s must be a mapping", canonicalKey))
		return
	}
	_, bad := flattenStrings(m)
	for _, k := range bad {
		result.AddError(fmt.Errorf("%s.%s must be a string", canonicalKey, k))
	}
	if requireNonEmptyValues {
		for k, sv := range m {
			if s, ok := sv.(string); ok && s == "" {
				result.AddError(fmt.Errorf("%s.%s must not be empty", canonicalKey, k))
			}
		}
	}
}

func validateTemplates(doc RawDoc, result *corerrors.ValidationResult) {
	v, ok := doc["templates"]
	if !ok {
		result.AddError(fmt.Errorf("templates section is required"))
		return
	}
	m, ok := asStringMap(v)
	if !ok {
		result.AddError(fmt.Errorf("templates must be a mapping"))
		return
	}
	for name, val := range m {
		s, ok := val.(string)
		if !ok {
			result.AddError(fmt.Errorf("template %q must be a string", name))
			continue
		}
		if s == "" {
			result.AddError(fmt.Errorf("template %q must not be empty", name))
		}
	}
}

func validatePatterns(doc RawDoc, result *corerrors.ValidationResult) {
	v, ok := doc["patterns"]
	if !ok {
		return
	}
	m, ok := asStringMap(v)
	if !ok {
		result.AddError(fmt.Errorf("patterns must be a mapping"))
		return
	}
	for name, val := range m {
		src, ok := val.(string)
		if !ok || src == "" {
			result.AddError(&corerrors.PatternCompileError{Name: name, Source: fmt.Sprintf("%v", val), Reason: "pattern source must be a non-empty string"})
			continue
		}
		if _, err := regexp.Compile(src); err != nil {
			result.AddError(&corerrors.PatternCompileError{Name: name, Source: src, Reason: err.Error()})
		}
	}
}

func validateTokens(doc RawDoc, result *corerrors.ValidationResult) {
	v, ok := doc["tokens"]
	if !ok {
		return
	}
	m, ok := asStringMap(v)
	if !ok {
		result.AddError(fmt.Errorf("tokens must be a mapping"))
		return
	}
	for name, def := range m {
		values, ok := def.([]interface{})
		if !ok {
			result.AddError(fmt.Errorf("tokens.%s must be a list of allowed values", name))
			continue
		}
		for _, val := range values {
			if _, ok := val.(string); !ok {
				result.AddError(fmt.Errorf("tokens.%s has a non-string allowed value", name))
			}
		}
	}
}

func validateShotMetadataCasing(doc RawDoc, result *corerrors.ValidationResult) {
	if _, key, ok := firstOf(doc, "shot_metadata", "shotMetadata"); ok && key == "shotMetadata" {
		result.AddWarning(&corerrors.DeprecationWarning{
			Field:       "shotMetadata",
			Replacement: "shot_metadata",
			Message:     "use snake_case section names",
		})
	}
}
