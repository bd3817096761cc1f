package config

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/igloo-vfx/multishot-core/pkg/corerrors"
)

// Load parses and validates a project config file. It fails with a typed
// error only for I/O and JSON-parse problems; semantic
// validation failures are surfaced through the returned ValidationResult
// without aborting the load, so a caller can choose to proceed with a
// best-effort ProjectConfig (e.g. a CLI that wants to print every problem at
// once) or refuse to continue when result.HasErrors() is true.
func Load(path string) (*ProjectConfig, *corerrors.ValidationResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, &corerrors.ConfigFileNotFoundError{Path: path}
		}
		return nil, nil, err
	}

	var doc RawDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, &corerrors.ConfigInvalidJSONError{Path: path, Reason: err.Error()}
	}

	result := Validate(doc)
	cfg := build(doc)
	return cfg, result, nil
}
