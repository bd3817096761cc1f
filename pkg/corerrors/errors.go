// Package corerrors collects the typed error kinds raised across the
// multishot-core packages (config, resolver, scene graph, ...) so callers can
// use errors.As to recover structured detail instead of parsing messages.
package corerrors

import (
	"errors"
	"fmt"
	"strings"
)

// CoreError is the marker interface implemented by every typed error in this
// package. Every kind has pointer receivers, so callers recover one with
// `var target *corerrors.SomeError; errors.As(err, &target)`.
type CoreError interface {
	error
	CoreError() // marker method
}

// ConfigFileNotFoundError: the config load target is missing.
type ConfigFileNotFoundError struct {
	Path string
}

func (e *ConfigFileNotFoundError) Error() string {
	return fmt.Sprintf("config file not found: %s", e.Path)
}
func (e *ConfigFileNotFoundError) CoreError() {}

// ConfigInvalidJSONError: the config file did not parse as JSON.
type ConfigInvalidJSONError struct {
	Path   string
	Reason string
}

func (e *ConfigInvalidJSONError) Error() string {
	return fmt.Sprintf("invalid JSON in %s: %s", e.Path, e.Reason)
}
func (e *ConfigInvalidJSONError) CoreError() {}

// MigrationUnsupportedError: migrate() was asked for an unknown target version.
type MigrationUnsupportedError struct {
	TargetVersion string
}

func (e *MigrationUnsupportedError) Error() string {
	return fmt.Sprintf("migration to schema version %q is not supported", e.TargetVersion)
}
func (e *MigrationUnsupportedError) CoreError() {}

// PatternCompileError: a user-supplied pattern failed to compile.
type PatternCompileError struct {
	Name   string
	Source string
	Reason string
}

func (e *PatternCompileError) Error() string {
	return fmt.Sprintf("pattern %q (%s) failed to compile: %s", e.Name, e.Source, e.Reason)
}
func (e *PatternCompileError) CoreError() {}

// TemplateNotFoundError: resolve() was asked for an unknown template name.
type TemplateNotFoundError struct {
	TemplateName string
	Available    []string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template %q not found, available: [%s]", e.TemplateName, strings.Join(e.Available, ", "))
}
func (e *TemplateNotFoundError) CoreError() {}

// TokenExpansionError: one or more tokens survived expansion.
type TokenExpansionError struct {
	Template    string
	Unexpanded  []string
	ContextKeys []string
}

func (e *TokenExpansionError) Error() string {
	return fmt.Sprintf("template %q left tokens unexpanded: [%s] (context keys: [%s])",
		e.Template, strings.Join(e.Unexpanded, ", "), strings.Join(e.ContextKeys, ", "))
}
func (e *TokenExpansionError) CoreError() {}

// PathValidationError: resolve(validate_exists=true) found nothing on disk.
type PathValidationError struct {
	Path   string
	Reason string
}

func (e *PathValidationError) Error() string {
	return fmt.Sprintf("path validation failed for %s: %s", e.Path, e.Reason)
}
func (e *PathValidationError) CoreError() {}

// DuplicateShotError: a Shot with this identity already exists under the Manager.
type DuplicateShotError struct {
	Ep, Seq, Shot string
}

func (e *DuplicateShotError) Error() string {
	return fmt.Sprintf("shot %s/%s/%s already exists", e.Ep, e.Seq, e.Shot)
}
func (e *DuplicateShotError) CoreError() {}

// DuplicateAssetError: an Asset with this identity already exists under the Shot.
type DuplicateAssetError struct {
	AssetType, AssetName, Variant, Department string
}

func (e *DuplicateAssetError) Error() string {
	return fmt.Sprintf("asset %s_%s_%s (department %q) already exists", e.AssetType, e.AssetName, e.Variant, e.Department)
}
func (e *DuplicateAssetError) CoreError() {}

// StaleHandleError: a mutator targeted a node that has been deleted.
type StaleHandleError struct {
	ID string
}

func (e *StaleHandleError) Error() string {
	return fmt.Sprintf("stale handle: node %q no longer exists", e.ID)
}
func (e *StaleHandleError) CoreError() {}

// BackendFailureError: the scene backend refused a mutation.
type BackendFailureError struct {
	Op     string
	Detail string
}

func (e *BackendFailureError) Error() string {
	return fmt.Sprintf("scene backend refused %s: %s", e.Op, e.Detail)
}
func (e *BackendFailureError) CoreError() {}

// UnrecognizedInputError: the Filename/Namespace Builder could not classify
// its input as either a filename or a namespace.
type UnrecognizedInputError struct {
	Input string
}

func (e *UnrecognizedInputError) Error() string {
	return fmt.Sprintf("input %q is neither a recognised filename nor namespace", e.Input)
}
func (e *UnrecognizedInputError) CoreError() {}

// SidecarParseError: a shot metadata sidecar file exists but could not be
// read or parsed, or neither its frame-range nor its fps field could be
// recognised (SPEC_FULL.md §4.1).
type SidecarParseError struct {
	Path   string
	Reason string
}

func (e *SidecarParseError) Error() string {
	return fmt.Sprintf("failed to parse shot metadata sidecar %s: %s", e.Path, e.Reason)
}
func (e *SidecarParseError) CoreError() {}

// DeprecationWarning is not an error, but travels alongside ValidationResult
// the same way: one struct per (field, notice).
type DeprecationWarning struct {
	Field       string
	Replacement string
	Message     string
}

func (w *DeprecationWarning) Error() string {
	if w.Replacement != "" {
		return fmt.Sprintf("deprecated field %q: use %q instead", w.Field, w.Replacement)
	}
	return fmt.Sprintf("deprecated field %q: %s", w.Field, w.Message)
}

// ValidationResult accumulates every error and warning found during a single
// validation pass rather than failing on the first problem.
type ValidationResult struct {
	Errors   []error
	Warnings []*DeprecationWarning
}

// NewValidationResult returns an empty result ready to accumulate into.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Errors:   []error{},
		Warnings: []*DeprecationWarning{},
	}
}

func (r *ValidationResult) AddError(err error)              { r.Errors = append(r.Errors, err) }
func (r *ValidationResult) AddWarning(w *DeprecationWarning) { r.Warnings = append(r.Warnings, w) }
func (r *ValidationResult) HasErrors() bool                  { return len(r.Errors) > 0 }
func (r *ValidationResult) HasWarnings() bool                { return len(r.Warnings) > 0 }

// Err returns a combined error if there are any validation errors, nil otherwise.
func (r *ValidationResult) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return errors.Join(r.Errors...)
}

// Messages renders every error as a string, in order. Used by callers that
// want spec.md's `(bool, [errors])` shape without importing the error types.
func (r *ValidationResult) Messages() []string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Error()
	}
	return msgs
}
