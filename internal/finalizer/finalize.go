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

package finalizer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
)

// planDump mirrors the shape of Plan for --dump-plan's JSON output; kept
// distinct from Plan so the wire shape of the debugging dump can evolve
// independently of the internal struct.
type planDump struct {
	Args      []string `json:"args"`
	Transform uint64   `json:"transform_mask"`
	Export    bool     `json:"export_runfiles_env"`
}

// Run executes the finalize-stub CLI contract end to end: parse, read
// template, patch, write output. stderr receives the plan dump, if
// requested; errors are returned to the caller rather than printed.
func Run(argv []string, stderr io.Writer) error {
	opts, err := ParseArgs(argv)
	if err != nil {
		return err
	}
	plan, err := opts.Plan()
	if err != nil {
		return err
	}

	if opts.DumpPlan {
		dump := planDump{Args: plan.Args, Transform: plan.Transform, Export: plan.Export}
		enc, err := json.Marshal(dump)
		if err != nil {
			return &IOError{Path: "<plan>", Err: err}
		}
		fmt.Fprintf(stderr, "finalize-stub: plan: %s\n", enc)
	}

	data, err := os.ReadFile(opts.Template)
	if err != nil {
		return &IOError{Path: opts.Template, Err: err}
	}
	origLen := len(data)

	if err := Patch(data, plan, opts.Template); err != nil {
		return err
	}
	if len(data) != origLen {
		// Cannot happen given Patch's fixed-size slot writes, but the
		// length-preservation invariant is load-bearing enough to assert
		// explicitly rather than trust silently.
		return &TemplateInvalidError{Template: opts.Template, Reason: "patched output length changed"}
	}

	if opts.Output == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			return &IOError{Path: "<stdout>", Err: err}
		}
		return nil
	}

	if err := writeExecutable(opts.Output, data); err != nil {
		return &IOError{Path: opts.Output, Err: err}
	}
	glog.V(1).Infof("finalize-stub: wrote %s (%d bytes)", opts.Output, len(data))
	return nil
}

func writeExecutable(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return nil
}
