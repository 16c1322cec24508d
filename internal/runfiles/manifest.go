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
	"bufio"
	"fmt"
	"os"

	"github.com/golang/glog"
)

const (
	// maxManifestBytes is the manifest size limit.
	maxManifestBytes = 64 * 1024

	// maxManifestEntries is the manifest entry count limit.
	maxManifestEntries = 1024
)

// manifest is an ordered, unique-key table parsed from a runfiles manifest
// file. keys and values are parallel slices scanned linearly rather than
// a map: a flat table is preferred over a hash table for a structure this
// small.
type manifest struct {
	keys   []string
	values []string
}

func (m *manifest) hasKey(key string) bool {
	for _, k := range m.keys {
		if k == key {
			return true
		}
	}
	return false
}

// loadManifest reads and parses the manifest file at path.
//
// A duplicate KEY is resolved first-wins: the reference
// laszlocsomor-bazel/gorunfiles implementation does a plain map assignment
// (which is last-wins), but this repository deliberately pins first-wins
// instead (see DESIGN.md) because a manifest is expected to be
// machine-generated without duplicates, and first-wins is the safer
// behavior if a manifest is ever accidentally concatenated.
func loadManifest(path string) (*manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("runfiles: open manifest %q: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("runfiles: stat manifest %q: %w", path, err)
	}
	if info.Size() > maxManifestBytes {
		return nil, &ManifestParseError{Path: path, Reason: fmt.Sprintf("manifest exceeds %d bytes", maxManifestBytes)}
	}

	m := &manifest{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxManifestBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		idx := -1
		for i := 0; i < len(line); i++ {
			if line[i] == ' ' {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, &ManifestParseError{Path: path, Reason: fmt.Sprintf("line %d has no key/value separator: %q", lineNo, line)}
		}
		key, value := line[:idx], line[idx+1:]
		if m.hasKey(key) {
			glog.V(1).Infof("runfiles: manifest %q: duplicate key %q at line %d, keeping first occurrence", path, key, lineNo)
			continue
		}
		if len(m.keys) >= maxManifestEntries {
			return nil, &ManifestParseError{Path: path, Reason: fmt.Sprintf("manifest exceeds %d entries", maxManifestEntries)}
		}
		m.keys = append(m.keys, key)
		m.values = append(m.values, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("runfiles: read manifest %q: %w", path, err)
	}
	return m, nil
}

// lookup returns the value for key, or ok=false if absent. A linear scan,
// not a map: see the manifest type doc comment.
func (m *manifest) lookup(key string) (string, bool) {
	for i, k := range m.keys {
		if k == key {
			return m.values[i], true
		}
	}
	return "", false
}
