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

// Command stub-template is the per-platform template binary. Before finalization its placeholder slots hold sentinel values and
// every invocation fails with an UnfinalizedTemplateError; after a
// finalize-stub pass it resolves its embedded arguments through runfiles
// and execs (POSIX) or spawns-and-waits (Windows) the target.
package main

import (
	"fmt"
	"os"

	"github.com/malt3/runfiles-stub/internal/launcher"
	"github.com/malt3/runfiles-stub/internal/runfiles"
)

func main() {
	spec, err := launcher.BuildExecSpec(
		launcher.DefaultSlots(),
		os.Args[1:],
		os.Environ(),
		func() (*runfiles.Runfiles, error) { return runfiles.New(os.Args[0]) },
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stub: %v\n", err)
		os.Exit(launcher.ExitCode(err))
	}

	if err := launcher.Launch(spec); err != nil {
		fmt.Fprintf(os.Stderr, "stub: %v\n", err)
		os.Exit(launcher.ExitCode(err))
	}
}
