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
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/malt3/runfiles-stub/internal/placeholder"
)

// transformFlag accumulates the indices named by one or more --transform
// occurrences, each a decimal index or a comma-separated list, into a
// bitmask. It implements flag.Value so --transform can repeat on the
// command line (teacher main.go's flags are all single-value; this
// generalizes the same flag.Var idiom to a repeatable flag).
type transformFlag struct {
	mask uint64
	set  bool
}

func (t *transformFlag) String() string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf("%#x", t.mask)
}

func (t *transformFlag) Set(s string) error {
	t.set = true
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return fmt.Errorf("--transform: %q is not a decimal index", tok)
		}
		if n < 0 || n >= placeholder.NMax {
			return fmt.Errorf("--transform: index %d out of range [0, %d)", n, placeholder.NMax)
		}
		t.mask |= 1 << uint(n)
	}
	return nil
}

// Options holds the parsed finalize-stub CLI contract.
type Options struct {
	Template  string
	Output    string // "" means stdout
	Export    bool
	Transform uint64
	Args      []string
	DumpPlan  bool
}

// ParseArgs parses argv (excluding the program name) per the finalize-stub
// CLI contract. It never calls os.Exit; callers translate the returned
// error to an exit code via ExitCode.
func ParseArgs(argv []string) (*Options, error) {
	fs := flag.NewFlagSet("finalize-stub", flag.ContinueOnError)
	fs.Usage = func() {}
	var tf transformFlag
	template := fs.String("template", "", "path to the template binary to finalize")
	output := fs.String("output", "", "output path (default stdout)")
	exportEnv := fs.String("export-runfiles-env", "true", "export synthesized runfiles env vars to the child (true|false)")
	dumpPlan := fs.Bool("dump-plan", false, "print the parsed plan as JSON to stderr before patching")
	fs.Var(&tf, "transform", "decimal index or comma-separated list of indices to resolve through runfiles; repeatable")

	if err := fs.Parse(argv); err != nil {
		return nil, &UsageError{Reason: err.Error()}
	}

	if *template == "" {
		return nil, &UsageError{Reason: "--template is required"}
	}
	export, err := strconv.ParseBool(*exportEnv)
	if err != nil {
		return nil, &UsageError{Reason: fmt.Sprintf("--export-runfiles-env: %v", err)}
	}

	positional := fs.Args()
	if len(positional) == 0 {
		// Pinned design decision: the reference README implies
		// at least one embedded argument is always required.
		return nil, &UsageError{Reason: "at least one positional embedded argument is required"}
	}
	if len(positional) > placeholder.NMax {
		return nil, &UsageError{Reason: fmt.Sprintf("too many embedded arguments: %d > %d", len(positional), placeholder.NMax)}
	}

	return &Options{
		Template:  *template,
		Output:    *output,
		Export:    export,
		Transform: tf.mask,
		Args:      positional,
		DumpPlan:  *dumpPlan,
	}, nil
}

// Plan builds a validated Plan from parsed Options.
func (o *Options) Plan() (*Plan, error) {
	p := &Plan{
		Args:      o.Args,
		Transform: o.Transform,
		Export:    o.Export,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
