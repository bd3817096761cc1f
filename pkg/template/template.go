// Package template implements the $name token grammar (spec.md §4.4):
// extraction, expansion with override, required-token validation, and the
// values() introspection helper.
package template

import (
	"fmt"
	"regexp"
)

// tokenPattern matches a $-prefixed identifier. "_" is a literal separator
// and is never consumed into the identifier, so "$ep_seq" extracts token
// "ep" followed by the literal "_seq".
var tokenPattern = regexp.MustCompile(`\$([A-Za-z][A-Za-z0-9]*)`)

// Extract returns every token name referenced in template, unique, in
// first-seen order.
func Extract(tmpl string) []string {
	matches := tokenPattern.FindAllStringSubmatch(tmpl, -1)
	seen := map[string]bool{}
	var names []string
	for _, m := range matches {
		name := m[1]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Expand substitutes every token found in template with its value from
// context, in a single pass: the output is never re-scanned for secondary
// expansion, so a context value that itself contains "$something" is
// inserted literally. versionOverride, when non-empty, is used in place of
// context["ver"] for the "ver" token specifically (spec.md §4.4, §4.5).
// Tokens with no entry in context (and no override) are left in the output
// unchanged — Expand is deliberately tolerant; spec.md §9 assigns the
// strictness to the resolver, which follows up with Extract on the result.
func Expand(tmpl string, context map[string]string, versionOverride string) string {
	return tokenPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := tokenPattern.FindStringSubmatch(match)[1]
		if name == "ver" && versionOverride != "" {
			return versionOverride
		}
		if v, ok := context[name]; ok {
			return v
		}
		return match
	})
}

// Validate reports whether template is non-empty and contains every token
// named in required. On failure it returns a descriptive error; it does not
// check that context actually supplies those tokens (the resolver does that
// after Expand, by extracting any leftover tokens).
func Validate(tmpl string, required []string) (bool, error) {
	if tmpl == "" {
		return false, fmt.Errorf("template must not be empty")
	}
	present := map[string]bool{}
	for _, name := range Extract(tmpl) {
		present[name] = true
	}
	for _, name := range required {
		if !present[name] {
			return false, fmt.Errorf("template is missing required token $%s", name)
		}
	}
	return true, nil
}

// Values returns every token referenced in template mapped to its value in
// context, or nil when the token is absent from context.
func Values(tmpl string, context map[string]string) map[string]*string {
	out := map[string]*string{}
	for _, name := range Extract(tmpl) {
		if v, ok := context[name]; ok {
			val := v
			out[name] = &val
		} else {
			out[name] = nil
		}
	}
	return out
}
