// Package ocispec loads an OCI bundle's config.json. The schema itself is
// defined upstream; this package only adds the handful of lookups containr's
// other components need (the process to run, its environment, the spec
// version and annotations).
package ocispec

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	specs "github.com/opencontainers/runtime-spec/specs-go"

	"containr/ctrerrors"
)

// ConfigFileName is the name of the bundle's config file, relative to the
// bundle directory.
const ConfigFileName = "config.json"

// Load reads and parses the config.json of the bundle at bundlePath.
func Load(bundlePath string) (*specs.Spec, error) {
	path := filepath.Join(bundlePath, ConfigFileName)

	f, err := os.Open(path)
	if err != nil {
		return nil, ctrerrors.Wrap(err, ctrerrors.Spec, "load")
	}
	defer f.Close()

	var spec specs.Spec
	if err := json.NewDecoder(f).Decode(&spec); err != nil {
		return nil, ctrerrors.Wrap(err, ctrerrors.Spec, "load")
	}

	return &spec, nil
}

// Annotations returns the spec's annotations, or nil if it has none. The
// state record then stores null rather than an empty map.
func Annotations(spec *specs.Spec) map[string]string {
	if spec == nil || len(spec.Annotations) == 0 {
		return nil
	}
	return spec.Annotations
}

// Args returns the argv of the process the bundle wants run, failing if the
// spec has no process or an empty argument list.
func Args(spec *specs.Spec) ([]string, error) {
	if spec == nil || spec.Process == nil {
		return nil, ctrerrors.ErrNoProcess
	}
	if len(spec.Process.Args) == 0 {
		return nil, ctrerrors.ErrEmptyArgs
	}
	return spec.Process.Args, nil
}

// Env splits the spec's process environment (a list of "KEY=VALUE" strings)
// into a map, failing if any entry has no "=".
func Env(spec *specs.Spec) (map[string]string, error) {
	if spec == nil || spec.Process == nil {
		return nil, nil
	}
	env := make(map[string]string, len(spec.Process.Env))
	for _, entry := range spec.Process.Env {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, ctrerrors.WrapWithDetail(nil, ctrerrors.Spec, "env",
				"malformed env entry: "+entry)
		}
		env[key] = value
	}
	return env, nil
}

// Cwd returns the working directory the payload process should start in,
// defaulting to "/" when the spec does not set one.
func Cwd(spec *specs.Spec) string {
	if spec == nil || spec.Process == nil || spec.Process.Cwd == "" {
		return "/"
	}
	return spec.Process.Cwd
}

// Version returns the spec's declared OCI version, or "" if spec is nil.
func Version(spec *specs.Spec) string {
	if spec == nil {
		return ""
	}
	return spec.Version
}
