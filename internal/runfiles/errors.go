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

import "fmt"

// ManifestParseError is returned when a manifest file violates the
// size or entry-count limits, or contains a malformed line.
type ManifestParseError struct {
	Path   string
	Reason string
}

func (e *ManifestParseError) Error() string {
	return fmt.Sprintf("runfiles: manifest %q: %s", e.Path, e.Reason)
}

// ResolutionMissError is returned by Rlocation when key is not present in
// an active manifest.
type ResolutionMissError struct {
	Key string
}

func (e *ResolutionMissError) Error() string {
	return fmt.Sprintf("runfiles: key %q not found in manifest", e.Key)
}

// UnavailableError is returned by Rlocation when no discovery mode is
// active: no manifest, no directory, no self-location.
type UnavailableError struct {
	Key string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("runfiles: no runfiles manifest or directory available to resolve %q", e.Key)
}
