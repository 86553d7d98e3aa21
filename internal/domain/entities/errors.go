package entities

import (
	"errors"
	"fmt"
)

// ErrConfigNotFound is returned when no configuration file exists in the default locations.
var ErrConfigNotFound = errors.New("config file not found in default locations")

// RepositoryAccessError reports that a repository could not be opened or read.
// It aborts the traversal of that repository only.
type RepositoryAccessError struct {
	Path string
	Err  error
}

func (e *RepositoryAccessError) Error() string {
	return fmt.Sprintf("cannot access repository %q: %v", e.Path, e.Err)
}

func (e *RepositoryAccessError) Unwrap() error {
	return e.Err
}

// NewRepositoryAccessError wraps err for the repository at path.
func NewRepositoryAccessError(path string, err error) *RepositoryAccessError {
	return &RepositoryAccessError{Path: path, Err: err}
}
