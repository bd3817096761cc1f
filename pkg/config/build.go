package config

// build constructs a best-effort ProjectConfig from a raw document. It is
// deliberately permissive: sections that fail semantic validation are still
// parsed where possible (Validate already recorded the error) so a caller
// inspecting ValidationResult.HasErrors() == true can still introspect what
// did parse.
func build(doc RawDoc) *ProjectConfig {
	cfg := &ProjectConfig{
		Roots:           map[string]RootValue{},
		StaticPaths:     map[string]string{},
		Templates:       map[string]string{},
		Patterns:        map[string]string{},
		Tokens:          map[string][]string{},
		PlatformMapping: map[Platform]map[string]string{},
	}

	if v, ok := doc["schema_version"]; ok {
		if s, ok := asString(v); ok {
			cfg.SchemaVersion = s
		}
	}

	if v, ok := doc["project"]; ok {
		if m, ok := asStringMap(v); ok {
			if s, ok := asString(m["name"]); ok {
				cfg.ProjectName = s
			}
			if s, ok := asString(m["code"]); ok {
				cfg.ProjectCode = s
			}
		}
	}

	cfg.Roots = buildRoots(doc)

	if v, _, ok := firstOf(doc, "static_paths", "staticPaths"); ok {
		if m, ok := asStringMap(v); ok {
			cfg.StaticPaths, _ = flattenStrings(m)
		}
	}

	if v, ok := doc["templates"]; ok {
		if m, ok := asStringMap(v); ok {
			cfg.Templates, _ = flattenStrings(m)
		}
	}

	if v, ok := doc["patterns"]; ok {
		if m, ok := asStringMap(v); ok {
			cfg.Patterns, _ = flattenStrings(m)
		}
	}

	if v, ok := doc["tokens"]; ok {
		if m, ok := asStringMap(v); ok {
			cfg.Tokens = buildTokens(m)
		}
	}

	if v, ok := doc["platform_mapping"]; ok {
		if m, ok := asStringMap(v); ok {
			cfg.PlatformMapping = buildPlatformMapping(m)
		}
	}

	if v, _, ok := firstOf(doc, "shot_metadata", "shotMetadata"); ok {
		if m, ok := asStringMap(v); ok {
			cfg.ShotMetadata = buildShotMetadata(m)
		}
	}

	if v, ok := doc["render_settings"]; ok {
		if m, ok := asStringMap(v); ok {
			cfg.RenderSettings = buildRenderSettings(m)
		}
	}

	return cfg
}

// buildRoots normalizes both accepted `roots` shapes (flat, and
// platform-keyed) into the internal RootValue representation.
func buildRoots(doc RawDoc) map[string]RootValue {
	out := map[string]RootValue{}
	v, ok := doc["roots"]
	if !ok {
		return out
	}
	m, ok := asStringMap(v)
	if !ok {
		return out
	}

	// Platform-keyed shape: {"windows": {name: path}, "linux": {name: path}}.
	if isPlatformKeyed(m) {
		for _, plat := range []Platform{Windows, Linux} {
			entries, ok := asStringMap(m[string(plat)])
			if !ok {
				continue
			}
			for name, pv := range entries {
				s, ok := asString(pv)
				if !ok {
					continue
				}
				rv := out[name]
				if plat == Windows {
					rv.Windows = s
				} else {
					rv.Linux = s
				}
				out[name] = rv
			}
		}
		return out
	}

	// Flat shape: {name: path}.
	for name, rawVal := range m {
		if s, ok := asString(rawVal); ok {
			out[name] = RootValue{Flat: s}
		}
	}
	return out
}

func isPlatformKeyed(m map[string]interface{}) bool {
	_, hasWindows := m[string(Windows)]
	_, hasLinux := m[string(Linux)]
	return hasWindows || hasLinux
}

func buildTokens(m map[string]interface{}) map[string][]string {
	out := map[string][]string{}
	for name, def := range m {
		values, ok := def.([]interface{})
		if !ok {
			continue
		}
		strs := make([]string, 0, len(values))
		for _, val := range values {
			if s, ok := val.(string); ok {
				strs = append(strs, s)
			}
		}
		out[name] = strs
	}
	return out
}

func buildPlatformMapping(m map[string]interface{}) map[Platform]map[string]string {
	out := map[Platform]map[string]string{}
	for _, plat := range []Platform{Windows, Linux} {
		entries, ok := asStringMap(m[string(plat)])
		if !ok {
			continue
		}
		roots, _ := flattenStrings(entries)
		out[plat] = roots
	}
	return out
}

func buildShotMetadata(m map[string]interface{}) *ShotMetadataConfig {
	get := func(key, fallback string) string {
		if s, ok := asString(m[key]); ok && s != "" {
			return s
		}
		return fallback
	}
	return &ShotMetadataConfig{
		FilenamePattern:      get("filename_pattern", ".{shot_id}.json"),
		FrameRangeField:      get("frame_range_field", "frame_range"),
		FrameRangeStartField: get("frame_range_start_field", "start"),
		FrameRangeEndField:   get("frame_range_end_field", "end"),
		FrameStartField:      get("frame_start_field", "frame_start"),
		FrameEndField:        get("frame_end_field", "frame_end"),
		FPSField:             get("fps_field", "fps"),
	}
}

func buildRenderSettings(m map[string]interface{}) *RenderSettings {
	rs := &RenderSettings{
		TemplateByDepartment: map[string]string{},
	}
	if v, ok := m["template_by_department"]; ok {
		if tm, ok := asStringMap(v); ok {
			rs.TemplateByDepartment, _ = flattenStrings(tm)
		}
	}
	if v, ok := m["frame_padding"].(float64); ok {
		rs.FramePadding = int(v)
	}
	if v, ok := m["propagate_frame_range"].(bool); ok {
		rs.PropagateFrameRange = v
	}
	return rs
}
