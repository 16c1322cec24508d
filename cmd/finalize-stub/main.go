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

// Command finalize-stub patches a template stub's placeholder regions
// with concrete embedded-argument values, producing a ready-to-run stub.
// See ParseArgs in internal/finalizer/cli.go for the CLI contract.
package main

import (
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/malt3/runfiles-stub/internal/finalizer"
)

func main() {
	// finalize-stub owns its entire argument vector (the CLI
	// contract includes a literal "--" separator before positional
	// arguments), so it parses os.Args itself via its own flag.FlagSet
	// rather than the package-level flag.CommandLine glog registers
	// against; glog's -v/-logtostderr flags fall back to their defaults
	// here.
	defer glog.Flush()

	if err := finalizer.Run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(finalizer.ExitCode(err))
	}
}
