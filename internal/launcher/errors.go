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

// Package launcher implements the template stub's runtime: reading
// finalized placeholders, resolving embedded arguments through runfiles,
// assembling argv/envp, and handing off to the target process.
package launcher

import (
	"fmt"

	"github.com/malt3/runfiles-stub/internal/runfiles"
)

// Exit codes for the launcher. Each error kind gets a distinct non-zero
// status so a stub failure is attributable at a glance.
const (
	ExitUnfinalizedTemplate = 10
	ExitMalformedArgc       = 11
	ExitResolverUnavailable = 12
	ExitResolutionMiss      = 13
	ExitLimitExceeded       = 14
	ExitManifestParseError  = 15
	ExitLaunchFailed        = 127
)

// UnfinalizedTemplateError: stub invoked with sentinels still intact.
type UnfinalizedTemplateError struct{ Slot string }

func (e *UnfinalizedTemplateError) Error() string {
	return fmt.Sprintf("stub: not finalized (slot %s still holds its sentinel)", e.Slot)
}

// MalformedArgcError: ARGC byte outside [1, N_MAX].
type MalformedArgcError struct{ Argc int }

func (e *MalformedArgcError) Error() string {
	return fmt.Sprintf("stub: malformed embedded argument count %d", e.Argc)
}

// ResolverUnavailableError: a transformed argument needs resolution but no
// discovery mode activated.
type ResolverUnavailableError struct {
	Index int
	Key   string
}

func (e *ResolverUnavailableError) Error() string {
	return fmt.Sprintf("stub: argument %d (%q) requires runfiles resolution but no runfiles manifest or directory is available", e.Index, e.Key)
}

// ResolutionMissError: a transformed key was not found in the active
// manifest or, in directory mode, reporting is deferred to launch failure.
type ResolutionMissError struct {
	Index int
	Key   string
}

func (e *ResolutionMissError) Error() string {
	return fmt.Sprintf("stub: argument %d (%q): runfiles resolution miss", e.Index, e.Key)
}

// ManifestParseError: resolver construction failed because the active
// runfiles manifest is oversized or malformed. Distinct from
// ResolverUnavailableError, which means no discovery mode activated at
// all; this means one did, and it's broken.
type ManifestParseError struct{ Err *runfiles.ManifestParseError }

func (e *ManifestParseError) Error() string {
	return fmt.Sprintf("stub: %v", e.Err)
}

func (e *ManifestParseError) Unwrap() error { return e.Err }

// LimitExceededError: total argv length exceeds N_MAX_TOTAL.
type LimitExceededError struct {
	Total int
	Max   int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("stub: total argument count %d exceeds limit %d", e.Total, e.Max)
}

// LaunchFailedError: execve/CreateProcess failed.
type LaunchFailedError struct {
	Target string
	Err    error
}

func (e *LaunchFailedError) Error() string {
	return fmt.Sprintf("stub: failed to launch %q: %v", e.Target, e.Err)
}

func (e *LaunchFailedError) Unwrap() error { return e.Err }

// ExitCode maps an error from this package to the process exit status
// this package's error taxonomy requires.
func ExitCode(err error) int {
	switch err.(type) {
	case *UnfinalizedTemplateError:
		return ExitUnfinalizedTemplate
	case *MalformedArgcError:
		return ExitMalformedArgc
	case *ResolverUnavailableError:
		return ExitResolverUnavailable
	case *ResolutionMissError:
		return ExitResolutionMiss
	case *ManifestParseError:
		return ExitManifestParseError
	case *LimitExceededError:
		return ExitLimitExceeded
	case *LaunchFailedError:
		return ExitLaunchFailed
	default:
		return 1
	}
}
