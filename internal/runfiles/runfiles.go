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

// Package runfiles implements the runfiles discovery and lookup protocol
// consumed by the template stub: manifest-based, directory-based or
// self-locating discovery, and Rlocation resolution of a logical key to a
// physical path.
//
// The API shape follows github.com/bazelbuild/rules_go/go/runfiles
// (error-returning constructors and lookups) rather than the older
// panic-based laszlocsomor-bazel/gorunfiles reference it is otherwise
// grounded on; see DESIGN.md.
package runfiles

import (
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/golang/glog"
)

// Mode identifies which discovery strategy produced an active Runfiles.
type Mode int

const (
	// ModeUninitialized means no manifest, directory or self-location
	// discovery succeeded; all lookups of non-absolute keys fail.
	ModeUninitialized Mode = iota
	// ModeManifest means a manifest file is active.
	ModeManifest
	// ModeDirectory means a runfiles directory is active.
	ModeDirectory
)

func (m Mode) String() string {
	switch m {
	case ModeManifest:
		return "manifest"
	case ModeDirectory:
		return "directory"
	default:
		return "uninitialized"
	}
}

// Runfiles resolves logical runfiles keys to physical paths.
type Runfiles struct {
	mode         Mode
	manifestPath string
	mf           *manifest
	dir          string
}

// New discovers runfiles using the standard Bazel discovery order: RUNFILES_MANIFEST_FILE,
// then RUNFILES_DIR, then self-location relative to argv0.
func New(argv0 string) (*Runfiles, error) {
	return newFrom(absExePath(argv0), os.Getenv("RUNFILES_MANIFEST_FILE"), os.Getenv("RUNFILES_DIR"))
}

// NewForTest mirrors the reference CreateForTest helper, preferring
// TEST_SRCDIR over RUNFILES_DIR for the directory-mode fallback.
func NewForTest(argv0 string) (*Runfiles, error) {
	dir := os.Getenv("TEST_SRCDIR")
	if dir == "" {
		dir = os.Getenv("RUNFILES_DIR")
	}
	return newFrom(absExePath(argv0), os.Getenv("RUNFILES_MANIFEST_FILE"), dir)
}

// NewForTestManifest constructs a Runfiles in manifest mode directly from
// a path, bypassing environment-variable discovery. Exposed for callers
// (such as internal/launcher's tests) that need to drive the resolver
// without setting process environment variables.
func NewForTestManifest(path string) (*Runfiles, error) {
	return newFrom("", path, "")
}

// NewForTestDirectory constructs a Runfiles in directory mode directly
// from a path, bypassing environment-variable discovery.
func NewForTestDirectory(dir string) (*Runfiles, error) {
	return newFrom("", "", dir)
}

func newFrom(argv0, envManifest, envDir string) (*Runfiles, error) {
	manifestPath, dir := discoverPaths(argv0, envManifest, envDir, isManifestFile, isDirectory)

	r := &Runfiles{}
	if manifestPath != "" {
		mf, err := loadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		r.mode = ModeManifest
		r.manifestPath = manifestPath
		r.mf = mf
		glog.V(1).Infof("runfiles: manifest mode active: %s", manifestPath)
		return r, nil
	}
	if dir != "" {
		r.mode = ModeDirectory
		r.dir = dir
		glog.V(1).Infof("runfiles: directory mode active: %s", dir)
		return r, nil
	}
	glog.V(1).Infof("runfiles: no discovery mode activated for argv0=%q", argv0)
	r.mode = ModeUninitialized
	return r, nil
}

// Mode reports which discovery strategy is active.
func (r *Runfiles) Mode() Mode { return r.mode }

// ManifestPath returns the active manifest's path, or "" if manifest mode
// is not active.
func (r *Runfiles) ManifestPath() string {
	if r.mode != ModeManifest {
		return ""
	}
	return r.manifestPath
}

// Dir returns the active runfiles directory, or "" if directory mode is
// not active.
func (r *Runfiles) Dir() string {
	if r.mode != ModeDirectory {
		return ""
	}
	return r.dir
}

// Rlocation resolves a logical forward-slash key to a physical path.
func (r *Runfiles) Rlocation(key string) (string, error) {
	if isAbsoluteKey(key) {
		return key, nil
	}
	switch r.mode {
	case ModeManifest:
		v, ok := r.mf.lookup(key)
		if !ok {
			return "", &ResolutionMissError{Key: key}
		}
		return v, nil
	case ModeDirectory:
		return joinDirectory(r.dir, key), nil
	default:
		return "", &UnavailableError{Key: key}
	}
}

// Envvars returns the environment variables this Runfiles should export to
// a child process: RUNFILES_MANIFEST_FILE only in manifest
// mode, RUNFILES_DIR and JAVA_RUNFILES only in directory mode.
func (r *Runfiles) Envvars() map[string]string {
	env := make(map[string]string)
	switch r.mode {
	case ModeManifest:
		env["RUNFILES_MANIFEST_FILE"] = r.manifestPath
	case ModeDirectory:
		env["RUNFILES_DIR"] = r.dir
		env["JAVA_RUNFILES"] = r.dir
	}
	return env
}

// isAbsoluteKey detects the bypass condition: a key that
// is already an absolute path (POSIX "/" prefix, or Windows "X:\" / "\\").
func isAbsoluteKey(key string) bool {
	if strings.HasPrefix(key, "/") {
		return true
	}
	if len(key) >= 3 && key[1] == ':' && (key[2] == '\\' || key[2] == '/') {
		return true
	}
	if strings.HasPrefix(key, `\\`) {
		return true
	}
	return false
}

// joinDirectory concatenates a runfiles directory and a forward-slash key,
// converting to the native separator on Windows.
func joinDirectory(dir, key string) string {
	if runtime.GOOS == "windows" {
		return dir + `\` + strings.ReplaceAll(key, "/", `\`)
	}
	return dir + "/" + key
}

func isManifestFile(p string) bool {
	if p == "" {
		return false
	}
	fi, err := os.Stat(p)
	return err == nil && fi.Mode().IsRegular()
}

func isDirectory(p string) bool {
	if p == "" {
		return false
	}
	fi, err := os.Stat(p)
	return err == nil && fi.IsDir()
}

// discoverPaths implements the runfiles discovery order, adapted from
// laszlocsomor-bazel/gorunfiles.discoverPaths.
func discoverPaths(argv0, mf, dir string, isManifest, isDir func(string) bool) (outManifest, outDirectory string) {
	mfValid := isManifest(mf)
	dirValid := isDir(dir)

	if !mfValid && !dirValid && argv0 != "" {
		mf = argv0 + ".runfiles_manifest"
		dir = argv0 + ".runfiles"
		mfValid = isManifest(mf)
		dirValid = isDir(dir)
	}

	if !mfValid && !dirValid {
		return "", ""
	}
	if mfValid {
		outManifest = mf
	}
	if dirValid {
		outDirectory = dir
	}
	return outManifest, outDirectory
}

// absExePath resolves argv0 to an absolute path for self-location
// discovery when argv0 is not already absolute, by joining it onto the
// current working directory. A bare name that was found through PATH is
// not searched for in PATH, so the result names a file in the working
// directory. Falls back to argv0 unchanged if resolution fails.
func absExePath(argv0 string) string {
	if path.IsAbs(argv0) || filepath.IsAbs(argv0) {
		return argv0
	}
	if abs, err := filepath.Abs(argv0); err == nil {
		return abs
	}
	return argv0
}
