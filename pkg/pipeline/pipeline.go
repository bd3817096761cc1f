// Package pipeline wires the config, pattern, template, resolver, scan,
// scenegraph, backend, switcher, builder and sidecar packages into the
// single value a host constructs and passes around. There is no assumption
// of a single global mutable runtime: state is owned by an explicit
// Pipeline value that the host constructs and passes.
package pipeline

import (
	"github.com/igloo-vfx/multishot-core/pkg/backend"
	"github.com/igloo-vfx/multishot-core/pkg/builder"
	"github.com/igloo-vfx/multishot-core/pkg/config"
	"github.com/igloo-vfx/multishot-core/pkg/eventsink"
	"github.com/igloo-vfx/multishot-core/pkg/pattern"
	"github.com/igloo-vfx/multishot-core/pkg/resolver"
	"github.com/igloo-vfx/multishot-core/pkg/scan"
	"github.com/igloo-vfx/multishot-core/pkg/scenegraph"
	"github.com/igloo-vfx/multishot-core/pkg/sidecar"
	"github.com/igloo-vfx/multishot-core/pkg/switcher"
)

// Pipeline is the single owner of every piece of mutable state the core
// touches: the scene graph Manager, the version cache, and the silent-mode
// flag. Construct one per scene/session; it performs no background work of
// its own.
type Pipeline struct {
	Config   *config.ProjectConfig
	Platform config.Platform
	Sink     eventsink.Sink

	Patterns *pattern.Engine
	Resolver *resolver.Resolver
	Scanner  *scan.Scanner
	Cache    *scan.Cache
	Manager  *scenegraph.Manager
	Backend  backend.Backend
	Switcher *switcher.Switcher
	Builder  *builder.Builder

	silent bool
}

// New builds a Pipeline from a validated ProjectConfig and a host-supplied
// Backend. platform may be "" to target the running OS. sink may be nil to
// use eventsink.Noop{}.
func New(cfg *config.ProjectConfig, platform config.Platform, be backend.Backend, sink eventsink.Sink) (*Pipeline, error) {
	if sink == nil {
		sink = eventsink.Noop{}
	}

	engine, err := pattern.New(cfg.Patterns)
	if err != nil {
		return nil, err
	}

	res := resolver.New(cfg, platform)
	scanner := scan.New(engine, sink)
	cache := scan.NewCache()
	mgr := scenegraph.NewManager()
	mgr.SetConfigPath(cfg.ProjectName)
	sw := switcher.New(be)
	bd := builder.New(engine, res, cache)

	return &Pipeline{
		Config:   cfg,
		Platform: platform,
		Sink:     sink,
		Patterns: engine,
		Resolver: res,
		Scanner:  scanner,
		Cache:    cache,
		Manager:  mgr,
		Backend:  be,
		Switcher: sw,
		Builder:  bd,
	}, nil
}

// SetSilent toggles event emission on the owned Manager, used to avoid
// observer feedback loops during bulk updates.
func (p *Pipeline) SetSilent(silent bool) {
	p.silent = silent
	p.Manager.SetSilent(silent)
}

// Silent reports the current silent-mode flag.
func (p *Pipeline) Silent() bool { return p.silent }

// ScanPublishPath walks publishPath and folds the result into the owned
// Cache, composing the scan and cache-build steps into one host-facing
// call. The second return value enumerates files that were found but could
// not be parsed into an asset record (spec.md §4.6 step 1).
func (p *Pipeline) ScanPublishPath(publishPath string) ([]scan.AssetRecord, []scan.SkippedFile, error) {
	records, skipped, err := p.Scanner.Scan(publishPath)
	if err != nil {
		return nil, nil, err
	}
	p.Cache.BuildCache(publishPath, records)
	return records, skipped, nil
}

// CreateShot creates a Shot under the owned Manager.
func (p *Pipeline) CreateShot(ep, seq, shot string) (*scenegraph.Shot, error) {
	return scenegraph.CreateShot(p.Manager, ep, seq, shot)
}

// ImportShotFromSidecar creates a Shot and, if a metadata sidecar is found
// at shotRoot, applies its frame range and fps to the new Shot.
func (p *Pipeline) ImportShotFromSidecar(ep, seq, shot, shotRoot string) (*scenegraph.Shot, error) {
	s, err := p.CreateShot(ep, seq, shot)
	if err != nil {
		return nil, err
	}

	shotID := ep + "_" + seq + "_" + shot
	meta, err := sidecar.Load(shotID, shotRoot, p.Config.ShotMetadata)
	if err != nil {
		return s, err
	}
	if meta == nil {
		return s, nil
	}
	if meta.HasFrameRange {
		if err := s.SetFrameRange(meta.FrameStart, meta.FrameEnd); err != nil {
			return s, err
		}
	}
	if meta.HasFPS {
		if err := s.SetFPS(meta.FPS); err != nil {
			return s, err
		}
	}
	return s, nil
}

// ActivateShot runs the full switch_to effects sequence against the owned
// Manager and Backend.
func (p *Pipeline) ActivateShot(shotID string, hideOthers bool) (bool, error) {
	return p.Switcher.SwitchTo(p.Manager, shotID, hideOthers)
}

// ResolveAssetPath resolves templateName against shotContext merged with
// asset identity fields, using asset.Version() as the version override when
// set, and caches the result on the Asset.
func (p *Pipeline) ResolveAssetPath(asset *scenegraph.Asset, shotContext map[string]string, templateName string, opts resolver.Options) (string, error) {
	ctx := map[string]string{
		"assetType": asset.AssetType(),
		"assetName": asset.AssetName(),
		"variant":   asset.Variant(),
		"dept":      asset.Department(),
	}
	for k, v := range shotContext {
		ctx[k] = v
	}
	if opts.Version == "" && asset.Version() != "" {
		opts.Version = asset.Version()
	}

	path, err := p.Resolver.Resolve(templateName, ctx, opts)
	if err != nil {
		return "", err
	}
	if err := asset.SetFilePath(path); err != nil {
		return "", err
	}
	return path, nil
}

// ApplyResolvedPath pushes an Asset's cached resolved_file_path to its
// linked host reference, if any.
func (p *Pipeline) ApplyResolvedPath(asset *scenegraph.Asset) error {
	hostRefID, linked, _ := asset.HostLink()
	if !linked {
		return nil
	}
	return p.Backend.ApplyFilePath(hostRefID, asset.ResolvedFilePath())
}
