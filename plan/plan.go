// Package plan translates an OCI process spec into something that can
// actually be executed: an argv, an environment restricted to exactly
// what the spec lists, and a working directory. It holds no behavior
// beyond that translation and performs no I/O.
package plan

import (
	"fmt"
	"sort"

	specs "github.com/opencontainers/runtime-spec/specs-go"

	"containr/ocispec"
)

// Plan is the fully-resolved description of the payload process the
// sandbox will spawn.
type Plan struct {
	Path string
	Args []string
	Env  []string
	Cwd  string
}

// New translates spec's process into a Plan, failing with the same error
// kinds ocispec.Args/Env would: a missing process entry, an empty
// argument list, or a malformed env entry.
func New(spec *specs.Spec) (*Plan, error) {
	args, err := ocispec.Args(spec)
	if err != nil {
		return nil, err
	}

	envMap, err := ocispec.Env(spec)
	if err != nil {
		return nil, err
	}
	env := make([]string, 0, len(envMap))
	for k, v := range envMap {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(env)

	return &Plan{
		Path: args[0],
		Args: args[1:],
		Env:  env,
		Cwd:  ocispec.Cwd(spec),
	}, nil
}
