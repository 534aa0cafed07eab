// Package container implements the container facade: create, start,
// state, kill, and delete. It owns the state store and drives the
// sandbox; it holds no lifecycle logic of its own beyond the exact step
// sequences each operation documents.
package container

import (
	"fmt"
	"path/filepath"
	"regexp"

	"containr/ctrerrors"
)

// idPattern matches path-safe container ids: a byte string the caller
// chooses, never containing separators or traversal segments.
var idPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)

// ValidateID checks that id is non-empty and safe to embed in a runtime
// directory path.
func ValidateID(id string) error {
	if id == "" {
		return ctrerrors.ErrEmptyContainerID
	}
	if !idPattern.MatchString(id) {
		return ctrerrors.WrapWithDetail(nil, ctrerrors.Precondition, "validate",
			fmt.Sprintf("container id %q contains invalid characters", id))
	}
	if id == "." || id == ".." || filepath.Clean(id) != id {
		return ctrerrors.WrapWithDetail(nil, ctrerrors.Precondition, "validate",
			fmt.Sprintf("container id %q is not path-safe", id))
	}
	return nil
}
