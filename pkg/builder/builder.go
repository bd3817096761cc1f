// Package builder implements the Filename/Namespace Builder: a high-level
// façade for callers that have either a published filename or a namespace
// and need a concrete resolved path.
package builder

import (
	"strings"

	"github.com/igloo-vfx/multishot-core/pkg/corerrors"
	"github.com/igloo-vfx/multishot-core/pkg/pattern"
	"github.com/igloo-vfx/multishot-core/pkg/resolver"
	"github.com/igloo-vfx/multishot-core/pkg/scan"
)

// Format is the result of DetectInputFormat.
type Format int

const (
	FormatUnknown Format = iota
	FormatFilename
	FormatNamespace
)

// Builder resolves a filename or namespace, plus an optional shot context,
// into a concrete path, consulting the version cache when version=="latest".
type Builder struct {
	engine   *pattern.Engine
	resolver *resolver.Resolver
	cache    *scan.Cache

	// PublishTemplateName is the resolver template used to look up a shot's
	// publish directory when resolving "latest".
	PublishTemplateName string
}

// New builds a Builder. cache may be nil if "latest" resolution is never
// needed (callers always pass a literal version).
func New(engine *pattern.Engine, res *resolver.Resolver, cache *scan.Cache) *Builder {
	return &Builder{engine: engine, resolver: res, cache: cache, PublishTemplateName: "publishDir"}
}

// DetectInputFormat classifies s as a published filename, a namespace, or
// neither.
func (b *Builder) DetectInputFormat(s string) Format {
	if strings.Contains(s, ".") {
		if _, ok := b.engine.ParseFilename(s); ok {
			return FormatFilename
		}
	}
	if _, ok := b.engine.ParseNamespace(s); ok {
		return FormatNamespace
	}
	return FormatUnknown
}

// ContextFromFilename parses a published filename into a resolve context.
func (b *Builder) ContextFromFilename(s string) (map[string]string, bool) {
	parts, ok := b.engine.ParseFilename(s)
	if !ok {
		return nil, false
	}
	return map[string]string{
		"ep": parts.Ep, "seq": parts.Seq, "shot": parts.Shot,
		"assetType": parts.AssetType, "assetName": parts.AssetName,
		"variant": parts.Variant, "ext": parts.Extension,
	}, true
}

// ContextFromNamespace parses a namespace and merges it with shotContext,
// since a bare namespace carries no shot identity of its own.
func (b *Builder) ContextFromNamespace(s string, shotContext map[string]string) (map[string]string, bool) {
	parts, ok := b.engine.ParseNamespace(s)
	if !ok {
		return nil, false
	}
	ctx := map[string]string{
		"assetType": parts.AssetType, "assetName": parts.AssetName, "variant": parts.Variant,
	}
	for k, v := range shotContext {
		ctx[k] = v
	}
	return ctx, true
}

// Build detects the input format, builds the merged context, resolves
// "latest" against the version cache when requested, and calls the
// resolver.
func (b *Builder) Build(input string, shotContext map[string]string, version, templateName string) (string, error) {
	var ctx map[string]string
	switch b.DetectInputFormat(input) {
	case FormatFilename:
		parsed, ok := b.ContextFromFilename(input)
		if !ok {
			return "", &corerrors.UnrecognizedInputError{Input: input}
		}
		ctx = parsed
	case FormatNamespace:
		parsed, ok := b.ContextFromNamespace(input, shotContext)
		if !ok {
			return "", &corerrors.UnrecognizedInputError{Input: input}
		}
		ctx = parsed
	default:
		return "", &corerrors.UnrecognizedInputError{Input: input}
	}

	opts := resolver.Options{}
	if version == "latest" && b.cache != nil {
		publishPath, err := b.resolver.Resolve(b.PublishTemplateName, ctx, resolver.Options{})
		if err == nil {
			key := scan.AssetKey(scan.AssetRecord{
				AssetType: ctx["assetType"], AssetName: ctx["assetName"], Variant: ctx["variant"],
			})
			if latest, ok := b.cache.Latest(publishPath, key); ok {
				opts.Version = latest
			}
		}
	} else if version != "" && version != "latest" {
		opts.Version = version
	}

	return b.resolver.Resolve(templateName, ctx, opts)
}
