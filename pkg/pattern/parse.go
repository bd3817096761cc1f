package pattern

import (
	"strconv"
	"strings"
)

// FilenameParts is the result of ParseFilename: the seven components of a
// published asset filename.
type FilenameParts struct {
	Ep, Seq, Shot        string
	AssetType, AssetName string
	Variant              string
	Extension            string
}

// cameraSuffix marks a camera publish: the asset part of the filename ends
// in "_camera".
const cameraSuffix = "_camera"

// ParseFilename parses a published asset filename into its seven named
// components. The default filename pattern matches
// "<ep>_<seq>_<shot>__<ASSET_TYPE>_<AssetName>_<variant>.<ext>"; cameras are
// detected by the asset part ending in "_camera" and handled
// as the special case the namespace builder also uses: asset_type becomes
// "CAM", asset_name is the whole asset part, and variant defaults to "001".
//
// This is implemented as an explicit split rather than a single named-group
// regex match, because Go's RE2 engine forbids two capture groups sharing a
// name and the camera/non-camera shapes need different group sets; the
// compiled "full_filename" pattern (Get/Compiled/Test) still exposes the
// non-camera shape for callers that want to match it directly.
func (e *Engine) ParseFilename(s string) (*FilenameParts, bool) {
	dot := strings.LastIndex(s, ".")
	if dot < 0 || dot == len(s)-1 {
		return nil, false
	}
	ext := s[dot+1:]
	if !isSupportedExtension(ext) {
		return nil, false
	}
	trimmed := s[:dot]

	idx := strings.Index(trimmed, "__")
	if idx < 0 {
		return nil, false
	}
	shotPart, assetPart := trimmed[:idx], trimmed[idx+2:]

	shotSegs := strings.Split(shotPart, "_")
	if len(shotSegs) != 3 {
		return nil, false
	}
	ep, seq, shot := shotSegs[0], shotSegs[1], shotSegs[2]
	for _, v := range []string{ep, seq, shot, assetPart} {
		if v == "" {
			return nil, false
		}
	}

	if strings.HasSuffix(assetPart, cameraSuffix) {
		return &FilenameParts{
			Ep: ep, Seq: seq, Shot: shot,
			AssetType: "CAM",
			AssetName: assetPart,
			Variant:   "001",
			Extension: ext,
		}, true
	}

	assetSegs := strings.Split(assetPart, "_")
	if len(assetSegs) < 3 {
		return nil, false
	}
	variant := assetSegs[len(assetSegs)-1]
	if _, err := strconv.Atoi(variant); err != nil {
		return nil, false
	}
	assetType := assetSegs[0]
	assetName := strings.Join(assetSegs[1:len(assetSegs)-1], "_")

	return &FilenameParts{
		Ep: ep, Seq: seq, Shot: shot,
		AssetType: assetType,
		AssetName: assetName,
		Variant:   variant,
		Extension: ext,
	}, true
}

// NamespaceParts is the result of ParseNamespace.
type NamespaceParts struct {
	AssetType, AssetName, Variant string
}

// ParseNamespace parses a "TYPE_name_variant" namespace, using the
// registered "namespace" pattern.
func (e *Engine) ParseNamespace(s string) (*NamespaceParts, bool) {
	groups, ok := e.namedGroups(NameNamespace, s)
	if !ok {
		return nil, false
	}
	return &NamespaceParts{
		AssetType: groups["asset_type"],
		AssetName: groups["asset_name"],
		Variant:   groups["variant"],
	}, true
}

// ParseVersion extracts the first v\d+ integer from s, using the registered
// "version" pattern. It returns false if no match is found.
func (e *Engine) ParseVersion(s string) (int, bool) {
	groups, ok := e.namedGroups(NameVersion, s)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(groups["version"])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ShotContextParts is the result of ParseShotContext.
type ShotContextParts struct {
	Ep, Seq, Shot string
}

// ParseShotContext parses an "ep_seq_shot" triple, using the registered
// "shot_context" pattern.
func (e *Engine) ParseShotContext(s string) (*ShotContextParts, bool) {
	groups, ok := e.namedGroups(NameShotContext, s)
	if !ok {
		return nil, false
	}
	return &ShotContextParts{
		Ep:   groups["ep"],
		Seq:  groups["seq"],
		Shot: groups["shot"],
	}, true
}
