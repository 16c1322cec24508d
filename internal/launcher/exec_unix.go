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

//go:build linux || darwin
// +build linux darwin

package launcher

import (
	"os/exec"
	"syscall"
)

// Launch replaces the current process image with spec's target via a
// single execve-family call that does not return on success. On failure
// it returns a *LaunchFailedError; the caller is still running.
func Launch(spec *ExecSpec) error {
	path, err := exec.LookPath(spec.Target)
	if err != nil {
		return &LaunchFailedError{Target: spec.Target, Err: err}
	}
	err = syscall.Exec(path, spec.Argv, spec.Env)
	// syscall.Exec only returns on failure.
	return &LaunchFailedError{Target: spec.Target, Err: err}
}
