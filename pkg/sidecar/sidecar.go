// Package sidecar ingests per-shot JSON sidecar metadata (frame range, fps)
// living alongside a shot's scene files (spec.md §6.2). It is a supplemented
// feature: spec.md documents the sidecar's on-disk shape but names no
// consuming component; this is ported from
// original_source/core/shot_metadata_loader.py (SPEC_FULL.md §4.1).
package sidecar

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/igloo-vfx/multishot-core/pkg/config"
	"github.com/igloo-vfx/multishot-core/pkg/corerrors"
)

const (
	defaultFilenamePattern = ".{shot_id}.json"
	defaultFrameRangeField = "frame_range"
	defaultStartField      = "start"
	defaultEndField        = "end"
	defaultFPSField        = "fps"
)

// ShotMetadata is the result of a successful Load.
type ShotMetadata struct {
	FrameStart, FrameEnd int
	HasFrameRange        bool
	FPS                  float64
	HasFPS               bool
}

// BuildPath builds the sidecar file path for shotID under shotRoot, using
// cfg's configured filename pattern (default ".{shot_id}.json").
func BuildPath(shotID, shotRoot string, cfg *config.ShotMetadataConfig) string {
	pattern := defaultFilenamePattern
	if cfg != nil && cfg.FilenamePattern != "" {
		pattern = cfg.FilenamePattern
	}
	filename := strings.ReplaceAll(pattern, "{shot_id}", shotID)
	return filepath.Join(shotRoot, filename)
}

// Load reads and parses the sidecar for shotID under shotRoot. A missing
// sidecar is not an error: Load returns (nil, nil), mirroring the
// scanner's missing-directory semantics. A sidecar that exists but is
// unreadable, is not valid JSON, or yields neither a recognised frame range
// nor a numeric fps returns a *corerrors.SidecarParseError. When only one of
// the two is recognised, Load succeeds and the other is reported absent via
// HasFrameRange/HasFPS; an unrecognised value for it is not an error.
func Load(shotID, shotRoot string, cfg *config.ShotMetadataConfig) (*ShotMetadata, error) {
	path := BuildPath(shotID, shotRoot, cfg)

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &corerrors.SidecarParseError{Path: path, Reason: err.Error()}
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &corerrors.SidecarParseError{Path: path, Reason: "invalid JSON: " + err.Error()}
	}

	meta := &ShotMetadata{}

	if start, end, ok := extractFrameRange(doc, cfg); ok {
		meta.FrameStart, meta.FrameEnd, meta.HasFrameRange = start, end, true
	}

	if fps, ok := extractFPS(doc, cfg); ok {
		meta.FPS, meta.HasFPS = fps, true
	}

	if !meta.HasFrameRange && !meta.HasFPS {
		return nil, &corerrors.SidecarParseError{Path: path, Reason: "no recognised frame-range or fps field"}
	}
	return meta, nil
}

func extractFrameRange(doc map[string]any, cfg *config.ShotMetadataConfig) (int, int, bool) {
	rangeField := defaultFrameRangeField
	startField, endField := defaultStartField, defaultEndField
	separateStartField, separateEndField := "frame_start", "frame_end"
	if cfg != nil {
		if cfg.FrameRangeField != "" {
			rangeField = cfg.FrameRangeField
		}
		if cfg.FrameRangeStartField != "" {
			startField = cfg.FrameRangeStartField
		}
		if cfg.FrameRangeEndField != "" {
			endField = cfg.FrameRangeEndField
		}
		if cfg.FrameStartField != "" {
			separateStartField = cfg.FrameStartField
		}
		if cfg.FrameEndField != "" {
			separateEndField = cfg.FrameEndField
		}
	}

	if raw, ok := doc[rangeField]; ok {
		switch v := raw.(type) {
		case map[string]any:
			start, startOK := asInt(v[startField])
			end, endOK := asInt(v[endField])
			if startOK && endOK {
				return start, end, true
			}
		case string:
			if start, end, ok := parseRangeString(v); ok {
				return start, end, true
			}
		}
	}

	if start, startOK := asInt(doc[separateStartField]); startOK {
		if end, endOK := asInt(doc[separateEndField]); endOK {
			return start, end, true
		}
	}

	return 0, 0, false
}

func parseRangeString(s string) (int, int, bool) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

func extractFPS(doc map[string]any, cfg *config.ShotMetadataConfig) (float64, bool) {
	field := defaultFPSField
	if cfg != nil && cfg.FPSField != "" {
		field = cfg.FPSField
	}
	v, ok := doc[field]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// asInt coerces a decoded JSON number (always float64 via encoding/json) or
// numeric string into an int.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}
