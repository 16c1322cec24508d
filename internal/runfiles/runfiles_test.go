// Copyright 2018 The Bazel Authors. All rights reserved.
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

package runfiles

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir string, lines ...string) string {
	t.Helper()
	p := filepath.Join(dir, "MANIFEST")
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return p
}

func TestManifestModeLookup(t *testing.T) {
	dir := t.TempDir()
	mf := writeManifest(t, dir, "pkg/bin /abs/pkg/bin", "pkg/data/a.txt /abs/pkg/data/a.txt")

	r, err := newFrom("", mf, "")
	if err != nil {
		t.Fatalf("newFrom: %v", err)
	}
	if r.Mode() != ModeManifest {
		t.Fatalf("Mode()=%v, want ModeManifest", r.Mode())
	}
	got, err := r.Rlocation("pkg/bin")
	if err != nil {
		t.Fatalf("Rlocation: %v", err)
	}
	if got != "/abs/pkg/bin" {
		t.Errorf("Rlocation(pkg/bin)=%q, want /abs/pkg/bin", got)
	}
}

func TestManifestResolutionMiss(t *testing.T) {
	dir := t.TempDir()
	mf := writeManifest(t, dir, "pkg/bin /abs/pkg/bin")

	r, err := newFrom("", mf, "")
	if err != nil {
		t.Fatalf("newFrom: %v", err)
	}
	_, err = r.Rlocation("does/not/exist")
	var missErr *ResolutionMissError
	if !errors.As(err, &missErr) {
		t.Fatalf("Rlocation error = %v, want *ResolutionMissError", err)
	}
	if missErr.Key != "does/not/exist" {
		t.Errorf("missErr.Key=%q", missErr.Key)
	}
}

func TestManifestFirstKeyWins(t *testing.T) {
	dir := t.TempDir()
	mf := writeManifest(t, dir, "k /first", "k /second")

	r, err := newFrom("", mf, "")
	if err != nil {
		t.Fatalf("newFrom: %v", err)
	}
	got, err := r.Rlocation("k")
	if err != nil {
		t.Fatalf("Rlocation: %v", err)
	}
	if got != "/first" {
		t.Errorf("Rlocation(k)=%q, want /first (first-wins)", got)
	}
}

func TestManifestIgnoresBlankAndCommentLines(t *testing.T) {
	dir := t.TempDir()
	mf := writeManifest(t, dir, "", "# comment", "k /v")

	r, err := newFrom("", mf, "")
	if err != nil {
		t.Fatalf("newFrom: %v", err)
	}
	got, err := r.Rlocation("k")
	if err != nil || got != "/v" {
		t.Errorf("Rlocation(k)=(%q, %v), want (/v, nil)", got, err)
	}
}

func TestManifestMalformedLine(t *testing.T) {
	dir := t.TempDir()
	mf := writeManifest(t, dir, "no-space-here")

	_, err := newFrom("", mf, "")
	var parseErr *ManifestParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("newFrom error = %v, want *ManifestParseError", err)
	}
}

func TestDirectoryModeLookup(t *testing.T) {
	dir := t.TempDir()

	r, err := newFrom("", "", dir)
	if err != nil {
		t.Fatalf("newFrom: %v", err)
	}
	if r.Mode() != ModeDirectory {
		t.Fatalf("Mode()=%v, want ModeDirectory", r.Mode())
	}
	got, err := r.Rlocation("pkg/bin")
	if err != nil {
		t.Fatalf("Rlocation: %v", err)
	}
	want := joinDirectory(dir, "pkg/bin")
	if got != want {
		t.Errorf("Rlocation(pkg/bin)=%q, want %q", got, want)
	}
}

func TestAbsoluteBypass(t *testing.T) {
	dir := t.TempDir()
	mf := writeManifest(t, dir, "k /resolved/v")

	for _, mode := range []struct {
		name string
		mf   string
		dir  string
	}{
		{"manifest", mf, ""},
		{"directory", "", dir},
	} {
		r, err := newFrom("", mode.mf, mode.dir)
		if err != nil {
			t.Fatalf("%s: newFrom: %v", mode.name, err)
		}
		got, err := r.Rlocation("/already/absolute")
		if err != nil {
			t.Fatalf("%s: Rlocation: %v", mode.name, err)
		}
		if got != "/already/absolute" {
			t.Errorf("%s: Rlocation bypass = %q, want unchanged", mode.name, got)
		}
	}
}

func TestUninitializedResolverFailsLookups(t *testing.T) {
	r, err := newFrom("", "", "")
	if err != nil {
		t.Fatalf("newFrom: %v", err)
	}
	if r.Mode() != ModeUninitialized {
		t.Fatalf("Mode()=%v, want ModeUninitialized", r.Mode())
	}
	_, err = r.Rlocation("k")
	var unavailErr *UnavailableError
	if !errors.As(err, &unavailErr) {
		t.Fatalf("Rlocation error = %v, want *UnavailableError", err)
	}
}

func TestEnvvarsPerMode(t *testing.T) {
	dir := t.TempDir()
	mf := writeManifest(t, dir, "k /v")

	rManifest, _ := newFrom("", mf, "")
	env := rManifest.Envvars()
	if _, ok := env["RUNFILES_MANIFEST_FILE"]; !ok {
		t.Errorf("manifest mode: missing RUNFILES_MANIFEST_FILE")
	}
	if _, ok := env["RUNFILES_DIR"]; ok {
		t.Errorf("manifest mode: unexpected RUNFILES_DIR")
	}

	rDir, _ := newFrom("", "", dir)
	env = rDir.Envvars()
	if env["RUNFILES_DIR"] != dir {
		t.Errorf("directory mode: RUNFILES_DIR=%q, want %q", env["RUNFILES_DIR"], dir)
	}
	if env["JAVA_RUNFILES"] != dir {
		t.Errorf("directory mode: JAVA_RUNFILES=%q, want %q", env["JAVA_RUNFILES"], dir)
	}
}

func TestManifestSizeLimit(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "BIG")
	big := make([]byte, maxManifestBytes+1)
	for i := range big {
		big[i] = 'a'
	}
	if err := os.WriteFile(p, big, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := loadManifest(p)
	var parseErr *ManifestParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("loadManifest error = %v, want *ManifestParseError", err)
	}
}
