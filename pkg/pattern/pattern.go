// Package pattern is the named, pre-compiled regular expression layer:
// filename, namespace, version and shot-context patterns, with structured
// capture groups, overridable per project.
package pattern

import (
	"regexp"

	"github.com/igloo-vfx/multishot-core/pkg/corerrors"
)

// SupportedExtensions is the set of published asset file extensions
// recognised by the filename pattern and the publish scanner.
var SupportedExtensions = []string{"abc", "ma", "mb", "vdb", "ass", "rs"}

func isSupportedExtension(ext string) bool {
	for _, e := range SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

const (
	NameFullFilename = "full_filename"
	NameNamespace    = "namespace"
	NameVersion      = "version"
	NameShotContext  = "shot_context"
)

var defaultSources = map[string]string{
	NameFullFilename: `^(?P<ep>[^_]+)_(?P<seq>[^_]+)_(?P<shot>[^_]+)__(?P<asset_type>[A-Z]+)_(?P<asset_name>.+)_(?P<variant>\d+)\.(?P<ext>abc|ma|mb|vdb|ass|rs)$`,
	NameNamespace:    `^(?P<asset_type>[A-Z]+)_(?P<asset_name>.+)_(?P<variant>\d+)$`,
	NameVersion:      `v(?P<version>\d+)`,
	NameShotContext:  `^(?P<ep>[^_]+)_(?P<seq>[^_]+)_(?P<shot>[^_]+)$`,
}

// compiledPattern is one named, pre-compiled regex plus its named-capture
// layout.
type compiledPattern struct {
	name     string
	source   string
	compiled *regexp.Regexp
	groups   []string // named capture groups, in declaration order
}

// Engine is the pattern lookup table for one Pipeline. User-supplied
// patterns (from ProjectConfig.Patterns) override the defaults by name;
// patterns not overridden keep shipping with their default source.
type Engine struct {
	patterns map[string]*compiledPattern
}

// New builds an Engine from a project's pattern overrides. Construction
// fails if any override is empty or fails to compile.
func New(overrides map[string]string) (*Engine, error) {
	e := &Engine{patterns: map[string]*compiledPattern{}}

	for name, src := range defaultSources {
		if err := e.set(name, src); err != nil {
			// Default patterns are known-good; a compile failure here is a
			// programming error in this package, not a user-facing one.
			panic(err)
		}
	}

	for name, src := range overrides {
		if src == "" {
			return nil, &corerrors.PatternCompileError{Name: name, Source: src, Reason: "pattern source must not be empty"}
		}
		if err := e.set(name, src); err != nil {
			return nil, err
		}
	}

	return e, nil
}

func (e *Engine) set(name, source string) error {
	compiled, err := regexp.Compile(source)
	if err != nil {
		return &corerrors.PatternCompileError{Name: name, Source: source, Reason: err.Error()}
	}
	e.patterns[name] = &compiledPattern{
		name:     name,
		source:   source,
		compiled: compiled,
		groups:   compiled.SubexpNames(),
	}
	return nil
}

// Get returns the raw regex source registered under name.
func (e *Engine) Get(name string) (string, bool) {
	p, ok := e.patterns[name]
	if !ok {
		return "", false
	}
	return p.source, true
}

// Compiled returns the compiled regex registered under name.
func (e *Engine) Compiled(name string) (*regexp.Regexp, bool) {
	p, ok := e.patterns[name]
	if !ok {
		return nil, false
	}
	return p.compiled, true
}

// Test reports whether s matches the named pattern, and the list of
// submatches (including the full match at index 0) when it does.
func (e *Engine) Test(name, s string) (matched bool, groups []string) {
	p, ok := e.patterns[name]
	if !ok {
		return false, nil
	}
	m := p.compiled.FindStringSubmatch(s)
	if m == nil {
		return false, nil
	}
	return true, m
}

// namedGroups runs the named pattern against s and returns a name->value map
// built from FindStringSubmatch + SubexpNames, skipping the unnamed index-0
// full match.
func (e *Engine) namedGroups(name, s string) (map[string]string, bool) {
	p, ok := e.patterns[name]
	if !ok {
		return nil, false
	}
	m := p.compiled.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	out := map[string]string{}
	for i, group := range p.groups {
		if i == 0 || group == "" {
			continue
		}
		out[group] = m[i]
	}
	return out, true
}
