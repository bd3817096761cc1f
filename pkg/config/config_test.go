package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/igloo-vfx/multishot-core/pkg/corerrors"
)

func validDoc() RawDoc {
	return RawDoc{
		"schema_version": "1.0",
		"project":        map[string]interface{}{"name": "Snow White and the Ants", "code": "SWA"},
		"roots": map[string]interface{}{
			"windows": map[string]interface{}{"projRoot": "V:/"},
			"linux":   map[string]interface{}{"projRoot": "/mnt/igloo_swa_v/"},
		},
		"static_paths": map[string]interface{}{"sceneBase": "all/scene"},
		"templates": map[string]interface{}{
			"publishDir": "$projRoot$project/$sceneBase/$ep/$seq/$shot/$dept/publish",
		},
		"patterns": map[string]interface{}{
			"version": `v(\d+)`,
		},
		"platform_mapping": map[string]interface{}{
			"windows": map[string]interface{}{"projRoot": "V:/"},
			"linux":   map[string]interface{}{"projRoot": "/mnt/igloo_swa_v/"},
		},
	}
}

func writeDoc(t *testing.T, doc RawDoc) string {
	t.Helper()
	dir := t.TempDir()
	file := filepath.Join(dir, "project.json")
	raw, err := json.Marshal(map[string]interface{}(doc))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, raw, 0o644))
	return file
}

func TestValidate_ValidDocHasNoErrors(t *testing.T) {
	result := Validate(validDoc())
	require.False(t, result.HasErrors(), "unexpected errors: %v", result.Messages())
}

func TestValidate_UnsupportedSchemaVersion(t *testing.T) {
	doc := validDoc()
	doc["schema_version"] = "9.9"
	result := Validate(doc)
	require.True(t, result.HasErrors())
}

func TestValidate_EmptyTemplateString(t *testing.T) {
	doc := validDoc()
	doc["templates"] = map[string]interface{}{"publishDir": ""}
	result := Validate(doc)
	require.True(t, result.HasErrors())
}

func TestValidate_PatternDoesNotCompile(t *testing.T) {
	doc := validDoc()
	doc["patterns"] = map[string]interface{}{"version": `v(\d+`}
	result := Validate(doc)
	require.True(t, result.HasErrors())
	var patErr *corerrors.PatternCompileError
	require.True(t, asCoreError(result, &patErr))
}

func asCoreError[T error](result *corerrors.ValidationResult, target *T) bool {
	for _, err := range result.Errors {
		if e, ok := err.(T); ok {
			*target = e
			return true
		}
	}
	return false
}

func TestValidate_CamelCaseStaticPathsWarns(t *testing.T) {
	doc := validDoc()
	delete(doc, "static_paths")
	doc["staticPaths"] = map[string]interface{}{"sceneBase": "all/scene"}
	result := Validate(doc)
	require.False(t, result.HasErrors())
	require.True(t, result.HasWarnings())
}

func TestValidate_MissingRequiredSection(t *testing.T) {
	doc := validDoc()
	delete(doc, "templates")
	result := Validate(doc)
	require.True(t, result.HasErrors())
}

func TestLoad_FileNotFound(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	var notFound *corerrors.ConfigFileNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(file, []byte("{not json"), 0o644))

	_, _, err := Load(file)
	require.Error(t, err)
	var invalid *corerrors.ConfigInvalidJSONError
	require.ErrorAs(t, err, &invalid)
}

func TestLoad_ValidFile(t *testing.T) {
	file := writeDoc(t, validDoc())
	cfg, result, err := Load(file)
	require.NoError(t, err)
	require.False(t, result.HasErrors())
	require.Equal(t, "SWA", cfg.ProjectCode)
	require.Equal(t, "all/scene", cfg.StaticPaths["sceneBase"])

	windowsRoot, ok := cfg.Root("projRoot", Windows)
	require.True(t, ok)
	require.Equal(t, "V:/", windowsRoot)

	linuxRoot, ok := cfg.Root("projRoot", Linux)
	require.True(t, ok)
	require.Equal(t, "/mnt/igloo_swa_v/", linuxRoot)
}

func TestBuildRoots_FlatShape(t *testing.T) {
	doc := validDoc()
	doc["roots"] = map[string]interface{}{"projRoot": "/data/proj"}
	cfg := build(doc)

	winVal, ok := cfg.Root("projRoot", Windows)
	require.True(t, ok)
	require.Equal(t, "/data/proj", winVal)

	linVal, ok := cfg.Root("projRoot", Linux)
	require.True(t, ok)
	require.Equal(t, "/data/proj", linVal)
}

func TestMigrate_Unsupported(t *testing.T) {
	_, err := Migrate(validDoc(), "7.0")
	require.Error(t, err)
	var unsupported *corerrors.MigrationUnsupportedError
	require.ErrorAs(t, err, &unsupported)
}

func TestMigrate_RewritesVersion(t *testing.T) {
	doc := validDoc()
	migrated, err := Migrate(doc, "1.1")
	require.NoError(t, err)
	require.Equal(t, "1.1", migrated["schema_version"])
	require.Equal(t, "1.0", doc["schema_version"], "original doc must be untouched")
}

func TestTemplateNames(t *testing.T) {
	cfg := build(validDoc())
	require.Contains(t, cfg.TemplateNames(), "publishDir")
}
