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

//go:build windows
// +build windows

package launcher

import (
	"os"
	"os/exec"
)

// Launch starts spec.Target as a child process and waits for it, since
// Windows has no image-replacement primitive equivalent to execve. The
// child's exit code is propagated via os.Exit; Launch only returns (with
// a *LaunchFailedError) if the child could not even start.
func Launch(spec *ExecSpec) error {
	cmd := exec.Command(spec.Target, spec.Argv[1:]...)
	cmd.Env = spec.Env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return &LaunchFailedError{Target: spec.Target, Err: err}
	}

	err := cmd.Wait()
	os.Exit(exitStatus(err))
	return nil // unreachable
}

// exitStatus extracts the child's exit code.
func exitStatus(err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return 1
}
