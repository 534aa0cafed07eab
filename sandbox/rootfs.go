package sandbox

import (
	"os"

	"golang.org/x/sys/unix"

	"containr/ctrerrors"
)

// pivotRoot implements the minimalist recipe: chdir into the new root,
// pivot_root(".", ".") so the old root stacks on top of the new one at
// the same path, remount "/" recursively as slave propagation so no
// mount events leak back to the host, then detach-unmount "/" once more
// to peel the stacked old root off.
func pivotRoot(newRoot string) error {
	if err := unix.Chdir(newRoot); err != nil {
		return ctrerrors.Wrap(err, ctrerrors.IO, "pivot-root")
	}

	if err := unix.PivotRoot(".", "."); err != nil {
		return ctrerrors.Wrap(err, ctrerrors.IO, "pivot-root")
	}

	if err := unix.Mount("", "/", "", unix.MS_SLAVE|unix.MS_REC, ""); err != nil {
		return ctrerrors.Wrap(err, ctrerrors.IO, "pivot-root")
	}

	if err := unix.Unmount("/", unix.MNT_DETACH); err != nil {
		return ctrerrors.Wrap(err, ctrerrors.IO, "pivot-root")
	}

	return nil
}

// rootPath extracts the root filesystem path from a spec's Root field.
func rootPath(path string) (string, error) {
	if path == "" {
		return "", ctrerrors.New(ctrerrors.Spec, "pivot-root", "spec has no root.path")
	}
	if _, err := os.Stat(path); err != nil {
		return "", ctrerrors.Wrap(err, ctrerrors.IO, "pivot-root")
	}
	return path, nil
}
