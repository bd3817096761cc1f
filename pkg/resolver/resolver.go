// Package resolver combines templates, context, platform mapping, and
// version into absolute paths.
package resolver

import (
	"fmt"
	"sort"

	"github.com/igloo-vfx/multishot-core/pkg/config"
	"github.com/igloo-vfx/multishot-core/pkg/corerrors"
	corepath "github.com/igloo-vfx/multishot-core/pkg/path"
	"github.com/igloo-vfx/multishot-core/pkg/platformmap"
	"github.com/igloo-vfx/multishot-core/pkg/template"
	"github.com/igloo-vfx/multishot-core/pkg/util/files"
)

// FrameRange is the subset of a Shot's frame range the resolver needs to
// propagate $startFrame/$endFrame into the context, per
// ProjectConfig.RenderSettings.PropagateFrameRange.
type FrameRange struct {
	Start, End int
}

// Fallback is called whenever Resolve hits a typed error; a non-nil path
// and ok == true is returned as if resolution had succeeded.
type Fallback func(templateName string, context map[string]string, err error) (path string, ok bool)

// Options configures one Resolve call.
type Options struct {
	Version        string
	ValidateExists bool
	Fallback       Fallback
	FrameRange     *FrameRange
}

// Resolver is constructed once per ProjectConfig and platform, then used for
// every resolve/resolve_batch call against that project.
type Resolver struct {
	cfg      *config.ProjectConfig
	mapper   *platformmap.Mapper
	platform config.Platform
}

// New builds a Resolver targeting the given platform. Pass "" for platform
// to resolve for the running OS (config.CurrentPlatform()).
func New(cfg *config.ProjectConfig, platform config.Platform) *Resolver {
	if platform == "" {
		platform = config.CurrentPlatform()
	}
	return &Resolver{
		cfg:      cfg,
		mapper:   platformmap.NewFromConfig(cfg),
		platform: platform,
	}
}

// baseContext builds the base resolve context: platform-mapped root
// values for every known root, all static_paths, and project.
func (r *Resolver) baseContext() map[string]string {
	ctx := map[string]string{}

	for name := range r.cfg.Roots {
		if v, ok := r.cfg.Root(name, r.platform); ok {
			ctx[name] = corepath.Normalize(v)
		}
	}
	for name, v := range r.cfg.StaticPaths {
		ctx[name] = v
	}
	if r.cfg.ProjectCode != "" {
		ctx["project"] = r.cfg.ProjectCode
	}

	return ctx
}

// Resolve expands templateName against context, unioned on top of the base
// context layers.
func (r *Resolver) Resolve(templateName string, context map[string]string, opts Options) (string, error) {
	path, err := r.resolve(templateName, context, opts)
	if err != nil && opts.Fallback != nil {
		if fallbackPath, ok := opts.Fallback(templateName, context, err); ok {
			return fallbackPath, nil
		}
	}
	return path, err
}

func (r *Resolver) resolve(templateName string, context map[string]string, opts Options) (string, error) {
	tmpl, ok := r.cfg.Template(templateName)
	if !ok {
		return "", &corerrors.TemplateNotFoundError{
			TemplateName: templateName,
			Available:    sortedKeys(r.cfg.TemplateNames()),
		}
	}

	full := r.baseContext()
	for k, v := range context {
		full[k] = v
	}
	if opts.Version != "" {
		full["ver"] = opts.Version
	}
	if opts.FrameRange != nil && r.cfg.RenderSettings != nil && r.cfg.RenderSettings.PropagateFrameRange {
		padding := r.cfg.RenderSettings.FramePadding
		full["startFrame"] = padFrame(opts.FrameRange.Start, padding)
		full["endFrame"] = padFrame(opts.FrameRange.End, padding)
	}

	expanded := template.Expand(tmpl, full, opts.Version)
	if unexpanded := template.Extract(expanded); len(unexpanded) > 0 {
		return "", &corerrors.TokenExpansionError{
			Template:    templateName,
			Unexpanded:  unexpanded,
			ContextKeys: sortedKeys(mapKeys(full)),
		}
	}

	normalized := corepath.Normalize(expanded)

	if opts.ValidateExists {
		ok, err := files.Exists(normalized)
		if err != nil {
			return "", &corerrors.PathValidationError{Path: normalized, Reason: err.Error()}
		}
		if !ok {
			return "", &corerrors.PathValidationError{Path: normalized, Reason: "path does not exist"}
		}
	}

	return normalized, nil
}

func padFrame(n, padding int) string {
	if padding <= 0 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%0*d", padding, n)
}

func mapKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func sortedKeys(keys []string) []string {
	out := make([]string, len(keys))
	copy(out, keys)
	sort.Strings(out)
	return out
}
