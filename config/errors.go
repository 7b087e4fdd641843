package config

import "fmt"

// LoadError distinguishes the two fatal-at-startup error kinds — a
// malformed config file, or a fixture-definition file a config references
// but doesn't exist — from the mixer's otherwise liveness-preserving
// runtime errors.
type LoadError struct {
	Path string
	Kind string // "parse" or "missing_fixture_def"
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func parseError(path string, err error) error {
	return &LoadError{Path: path, Kind: "parse", Err: err}
}

func missingFixtureDef(path string, err error) error {
	return &LoadError{Path: path, Kind: "missing_fixture_def", Err: err}
}
