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

import "testing"

func TestParseArgsBasic(t *testing.T) {
	opts, err := ParseArgs([]string{"--template", "t.bin", "--", "/bin/echo", "hello"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if opts.Template != "t.bin" {
		t.Errorf("Template=%q", opts.Template)
	}
	if !opts.Export {
		t.Errorf("Export default should be true")
	}
	if opts.Transform != 0 {
		t.Errorf("Transform default = %#x, want 0 (no-transform default)", opts.Transform)
	}
	if len(opts.Args) != 2 || opts.Args[0] != "/bin/echo" || opts.Args[1] != "hello" {
		t.Errorf("Args=%v", opts.Args)
	}
}

func TestParseArgsTransformCommaList(t *testing.T) {
	opts, err := ParseArgs([]string{"--template", "t", "--transform", "0,2", "--transform", "4", "--", "a", "b", "c", "d", "e"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	want := uint64(0x15)
	if opts.Transform != want {
		t.Errorf("Transform=%#x, want %#x", opts.Transform, want)
	}
}

func TestParseArgsExportFalse(t *testing.T) {
	opts, err := ParseArgs([]string{"--template", "t", "--export-runfiles-env=false", "--", "a"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if opts.Export {
		t.Errorf("Export should be false")
	}
}

func TestParseArgsMissingTemplate(t *testing.T) {
	_, err := ParseArgs([]string{"--", "a"})
	if _, ok := err.(*UsageError); !ok {
		t.Fatalf("err=%v (%T), want *UsageError", err, err)
	}
}

func TestParseArgsNoPositionals(t *testing.T) {
	_, err := ParseArgs([]string{"--template", "t"})
	if _, ok := err.(*UsageError); !ok {
		t.Fatalf("err=%v (%T), want *UsageError (zero positional args)", err, err)
	}
}

func TestParseArgsTooManyPositionals(t *testing.T) {
	args := []string{"--template", "t", "--"}
	for i := 0; i <= 10; i++ {
		args = append(args, "x")
	}
	_, err := ParseArgs(args)
	if _, ok := err.(*UsageError); !ok {
		t.Fatalf("err=%v (%T), want *UsageError (too many args)", err, err)
	}
}

func TestParseArgsTransformOutOfRange(t *testing.T) {
	_, err := ParseArgs([]string{"--template", "t", "--transform", "99", "--", "a"})
	if err == nil {
		t.Fatal("expected an error for out-of-range transform index")
	}
}

func TestOptionsPlanValidates(t *testing.T) {
	opts, err := ParseArgs([]string{"--template", "t", "--transform", "0", "--", "/bin/echo", "hello"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	plan, err := opts.Plan()
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if plan.Transform != 1 {
		t.Errorf("plan.Transform=%#x", plan.Transform)
	}
}
