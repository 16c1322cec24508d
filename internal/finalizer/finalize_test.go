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
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeTemplate(t *testing.T, dir string) string {
	t.Helper()
	p := filepath.Join(dir, "template.bin")
	if err := os.WriteFile(p, fakeTemplate(), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return p
}

func TestRunWritesFinalizedOutput(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeTemplate(t, dir)
	out := filepath.Join(dir, "stub")

	var stderr bytes.Buffer
	err := Run([]string{"--template", tmpl, "--output", out, "--transform", "0", "--", "/bin/echo", "hello"}, &stderr)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	orig, _ := os.ReadFile(tmpl)
	if len(got) != len(orig) {
		t.Errorf("output length %d != template length %d", len(got), len(orig))
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(out)
		if err != nil {
			t.Fatalf("Stat: %v", err)
		}
		if info.Mode()&0111 == 0 {
			t.Errorf("output is not executable: mode=%v", info.Mode())
		}
	}
}

func TestRunDumpPlanWritesToStderr(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeTemplate(t, dir)
	out := filepath.Join(dir, "stub")

	var stderr bytes.Buffer
	err := Run([]string{"--template", tmpl, "--output", out, "--dump-plan", "--", "/bin/echo"}, &stderr)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stderr.Len() == 0 {
		t.Errorf("--dump-plan produced no stderr output")
	}
}

func TestRunTemplateInvalid(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "bad.bin")
	if err := os.WriteFile(tmpl, []byte("not a template at all"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var stderr bytes.Buffer
	err := Run([]string{"--template", tmpl, "--", "/bin/echo"}, &stderr)
	if ExitCode(err) != ExitTemplateOrIO {
		t.Fatalf("ExitCode=%d, want %d (err=%v)", ExitCode(err), ExitTemplateOrIO, err)
	}
}

func TestRunUsageError(t *testing.T) {
	var stderr bytes.Buffer
	err := Run([]string{}, &stderr)
	if ExitCode(err) != ExitUsage {
		t.Fatalf("ExitCode=%d, want %d", ExitCode(err), ExitUsage)
	}
}
