// Copyright 2015 Google Inc. All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package launcher

import (
	"strings"

	"github.com/golang/glog"

	"github.com/malt3/runfiles-stub/internal/placeholder"
	"github.com/malt3/runfiles-stub/internal/runfiles"
)

// Slots bundles the placeholder region a stub reads at startup. In
// production these are placeholder.ArgcSlot, placeholder.TransformFlagsSlot,
// placeholder.ExportFlagSlot and placeholder.ArgSlots — the package-level
// arrays the finalizer patched in place. Tests construct their own Slots
// from literal byte buffers instead of relying on package globals.
type Slots struct {
	Argc      []byte
	Transform []byte
	Export    []byte
	Args      [][]byte
}

// ExecSpec is the resolved execution plan: the full argv and
// envp to hand to the platform launch adapter, and the target image to
// execute (argv[0]).
type ExecSpec struct {
	Target string
	Argv   []string
	Env    []string
}

// ResolverFactory constructs the runfiles resolver lazily, the first time a
// transformed argument or the export flag needs it. A construction failure
// is fatal for a transformed argument; on the export-env path only a
// broken manifest is fatal.
type ResolverFactory func() (*runfiles.Runfiles, error)

// BuildExecSpec validates finalization, reads argc, resolves each embedded
// argument, appends runtime arguments, and assembles the child environment.
func BuildExecSpec(slots Slots, runtimeArgs []string, parentEnv []string, newResolver ResolverFactory) (*ExecSpec, error) {
	argc, ok := placeholder.DecodeArgc(slots.Argc)
	if !ok {
		return nil, &UnfinalizedTemplateError{Slot: "ARGC"}
	}
	if _, ok := placeholder.DecodeTransformFlags(slots.Transform); !ok {
		return nil, &UnfinalizedTemplateError{Slot: "TRANSFORM_FLAGS"}
	}
	export, ok := placeholder.DecodeExportFlag(slots.Export)
	if !ok {
		return nil, &UnfinalizedTemplateError{Slot: "EXPORT_FLAG"}
	}
	if argc <= 0 || argc > placeholder.NMax {
		return nil, &MalformedArgcError{Argc: argc}
	}
	mask, _ := placeholder.DecodeTransformFlags(slots.Transform)

	var resolver *runfiles.Runfiles
	var resolverErr error
	resolved := false
	getResolver := func() (*runfiles.Runfiles, error) {
		if !resolved {
			resolver, resolverErr = newResolver()
			resolved = true
		}
		return resolver, resolverErr
	}

	embedded := make([]string, argc)
	for i := 0; i < argc; i++ {
		value, ok := placeholder.DecodeArg(slots.Args[i], i)
		if !ok {
			return nil, &UnfinalizedTemplateError{Slot: placeholder.ArgSentinel(i)}
		}
		if mask&(1<<uint(i)) == 0 {
			embedded[i] = value
			continue
		}
		r, err := getResolver()
		if err != nil {
			if mpe, ok := err.(*runfiles.ManifestParseError); ok {
				return nil, &ManifestParseError{Err: mpe}
			}
			return nil, &ResolverUnavailableError{Index: i, Key: value}
		}
		resolvedPath, err := r.Rlocation(value)
		if err != nil {
			if _, ok := err.(*runfiles.UnavailableError); ok {
				return nil, &ResolverUnavailableError{Index: i, Key: value}
			}
			return nil, &ResolutionMissError{Index: i, Key: value}
		}
		embedded[i] = resolvedPath
		glog.V(2).Infof("stub: resolved argument %d: %q -> %q", i, value, resolvedPath)
	}

	total := len(embedded) + len(runtimeArgs)
	if total > placeholder.NMaxTotal {
		return nil, &LimitExceededError{Total: total, Max: placeholder.NMaxTotal}
	}

	argv := make([]string, 0, total)
	argv = append(argv, embedded...)
	argv = append(argv, runtimeArgs...)

	env := parentEnv
	if export {
		// Export flag set: synthesize RUNFILES_MANIFEST_FILE /
		// RUNFILES_DIR / JAVA_RUNFILES on top of the parent environment.
		// A resolver is only constructed here if none of the transformed
		// arguments needed one already.
		r, err := getResolver()
		if err != nil {
			// A broken manifest is fatal: don't launch against it
			// silently. Any other construction error leaves the parent
			// environment unchanged.
			if mpe, ok := err.(*runfiles.ManifestParseError); ok {
				return nil, &ManifestParseError{Err: mpe}
			}
		} else {
			env = mergeEnv(env, r.Envvars())
		}
	}

	return &ExecSpec{Target: argv[0], Argv: argv, Env: env}, nil
}

// mergeEnv overlays extra on top of base, replacing any existing entry for
// the same key rather than appending a duplicate.
func mergeEnv(base []string, extra map[string]string) []string {
	if len(extra) == 0 {
		return base
	}
	out := make([]string, 0, len(base)+len(extra))
	for _, kv := range base {
		if k, _, ok := strings.Cut(kv, "="); ok {
			if _, overridden := extra[k]; overridden {
				continue
			}
		}
		out = append(out, kv)
	}
	for k, v := range extra {
		out = append(out, k+"="+v)
	}
	return out
}

// DefaultSlots returns the in-process placeholder region: the package-level
// arrays the finalizer patches on disk and the OS loader brings up already
// patched in memory.
func DefaultSlots() Slots {
	return Slots{
		Argc:      placeholder.ArgcSlot,
		Transform: placeholder.TransformFlagsSlot,
		Export:    placeholder.ExportFlagSlot,
		Args:      placeholder.ArgSlots,
	}
}
