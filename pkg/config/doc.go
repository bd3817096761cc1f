package config

// RawDoc is the generic decoded form of a config JSON document, before it is
// validated and built into a typed ProjectConfig.
type RawDoc map[string]interface{}

// firstOf returns the first section present among the given key spellings,
// along with which key matched. Used to accept both snake_case and
// camelCase section names (static_paths vs staticPaths, shot_metadata vs
// shotMetadata). snake_case is canonical; any other matching key is
// reported by the caller as a deprecation warning.
func firstOf(doc RawDoc, keys ...string) (interface{}, string, bool) {
	for _, k := range keys {
		if v, ok := doc[k]; ok {
			return v, k, true
		}
	}
	return nil, "", false
}

func asStringMap(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}

func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// flattenStrings converts a map[string]interface{} to map[string]string,
// dropping (and reporting, via the returned bad-keys slice) any non-string
// values.
func flattenStrings(m map[string]interface{}) (map[string]string, []string) {
	out := make(map[string]string, len(m))
	var bad []string
	for k, v := range m {
		if s, ok := v.(string); ok {
			out[k] = s
		} else {
			bad = append(bad, k)
		}
	}
	return out, bad
}
