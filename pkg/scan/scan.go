// Package scan implements the Publish Scanner (spec.md §4.6): a directory
// walk over a shot's publish tree that enumerates published asset files into
// AssetRecords, which the Version Cache (cache.go) then groups and sorts.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/igloo-vfx/multishot-core/pkg/eventsink"
	"github.com/igloo-vfx/multishot-core/pkg/pattern"
	"github.com/igloo-vfx/multishot-core/pkg/util/files"
)

// AssetRecord is one published asset file found by Scan (spec.md §4.6 step
// 1). Version is the enclosing "v###" directory name when the file lives in
// a version subdirectory, or the first "v\d+" match inside the filename
// otherwise; it is empty when neither is present.
type AssetRecord struct {
	Ep, Seq, Shot        string
	AssetType, AssetName string
	Variant              string
	Extension            string
	Filename             string
	FullPath             string
	Version              string
}

// AssetKey returns "TYPE_name_variant", except for cameras (AssetType ==
// "CAM") where it is just the asset name, per spec.md §4.6 step 3.
func AssetKey(r AssetRecord) string {
	if r.AssetType == "CAM" {
		return r.AssetName
	}
	return r.AssetType + "_" + r.AssetName + "_" + r.Variant
}

// SkippedFile is one regular file Scan found under a publish tree but could
// not parse into an AssetRecord. Unparseable files are not fatal (spec.md
// §4.6 step 1: "counted and logged"); Scan returns one of these per skipped
// file alongside the successfully parsed records.
type SkippedFile struct {
	Path   string
	Reason string
}

var versionDirPattern = regexp.MustCompile(`^v\d{3}$`)

// Scanner walks publish directory trees into AssetRecords. A nil Engine
// falls back to pattern.New(nil) — the default filename split parser, which
// is itself the hand-written split-on-"__" algorithm spec.md §4.6 describes,
// so "works without patterns" falls out naturally rather than needing a
// second parser implementation.
type Scanner struct {
	engine *pattern.Engine
	sink   eventsink.Sink
}

// New builds a Scanner. engine may be nil to use the default pattern set;
// sink may be nil to use eventsink.Noop{}.
func New(engine *pattern.Engine, sink eventsink.Sink) *Scanner {
	if engine == nil {
		engine, _ = pattern.New(nil)
	}
	if sink == nil {
		sink = eventsink.Noop{}
	}
	return &Scanner{engine: engine, sink: sink}
}

// Scan walks publishPath per spec.md §4.6's algorithm. A missing path or a
// path that isn't a directory yields an empty, non-error result with a
// logged warning (spec.md §4.6 "Failure semantics"). The second return
// value enumerates every regular file that was found but could not be
// parsed into an AssetRecord — spec.md §4.6 step 1 requires unparseable
// files to be "counted and logged", not silently dropped.
func (s *Scanner) Scan(publishPath string) ([]AssetRecord, []SkippedFile, error) {
	isDir, err := files.IsDir(publishPath)
	if err != nil {
		s.sink.Warn(fmt.Sprintf("scan: cannot stat publish path %q: %v", publishPath, err))
		return []AssetRecord{}, nil, nil
	}
	if !isDir {
		s.sink.Warn(fmt.Sprintf("scan: publish path %q is not a directory", publishPath))
		return []AssetRecord{}, nil, nil
	}

	entries, err := os.ReadDir(publishPath)
	if err != nil {
		s.sink.Warn(fmt.Sprintf("scan: cannot read publish path %q: %v", publishPath, err))
		return []AssetRecord{}, nil, nil
	}

	var records []AssetRecord
	var skipped []SkippedFile
	for _, entry := range entries {
		if entry.IsDir() {
			if versionDirPattern.MatchString(entry.Name()) {
				dirRecords, dirSkipped := s.scanVersionDir(publishPath, entry.Name())
				records = append(records, dirRecords...)
				skipped = append(skipped, dirSkipped...)
			}
			continue
		}
		if rec, ok := s.parseEntry(publishPath, entry.Name(), ""); ok {
			records = append(records, rec)
		} else {
			skipped = append(skipped, SkippedFile{Path: filepath.Join(publishPath, entry.Name()), Reason: "does not match a known filename pattern"})
		}
	}

	if records == nil {
		records = []AssetRecord{}
	}
	if len(skipped) > 0 {
		s.sink.Warn(fmt.Sprintf("scan: skipped %d unparseable file(s) under %q", len(skipped), publishPath))
	}
	return records, skipped, nil
}

func (s *Scanner) scanVersionDir(publishPath, versionDirName string) ([]AssetRecord, []SkippedFile) {
	dir := filepath.Join(publishPath, versionDirName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.sink.Warn(fmt.Sprintf("scan: cannot read version directory %q: %v", dir, err))
		return nil, nil
	}

	var records []AssetRecord
	var skipped []SkippedFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if rec, ok := s.parseEntry(dir, entry.Name(), versionDirName); ok {
			records = append(records, rec)
		} else {
			skipped = append(skipped, SkippedFile{Path: filepath.Join(dir, entry.Name()), Reason: "does not match a known filename pattern"})
		}
	}
	return records, skipped
}

// parseEntry parses one regular file into an AssetRecord. inheritedVersion,
// when non-empty, is the enclosing "v###" directory name (spec.md §4.6 step
// 2); otherwise the version is taken from the first "v\d+" inside the
// filename, and is left empty if none is found.
func (s *Scanner) parseEntry(dir, filename, inheritedVersion string) (AssetRecord, bool) {
	parts, ok := s.engine.ParseFilename(filename)
	if !ok {
		s.sink.Debug(fmt.Sprintf("scan: skipping unparseable file %q", filename))
		return AssetRecord{}, false
	}

	version := inheritedVersion
	if version == "" {
		if re, found := s.engine.Compiled(pattern.NameVersion); found {
			if m := re.FindStringSubmatch(filename); m != nil {
				if i := re.SubexpIndex("version"); i > 0 && m[i] != "" {
					version = "v" + m[i]
				}
			}
		}
	}

	return AssetRecord{
		Ep: parts.Ep, Seq: parts.Seq, Shot: parts.Shot,
		AssetType: parts.AssetType, AssetName: parts.AssetName,
		Variant:   parts.Variant,
		Extension: parts.Extension,
		Filename:  filename,
		FullPath:  filepath.Join(dir, filename),
		Version:   version,
	}, true
}
