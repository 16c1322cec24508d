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

// Package finalizer implements the build-host tool that patches a
// template stub's placeholder regions with concrete argument values.
package finalizer

import (
	"fmt"
	"strings"

	"github.com/malt3/runfiles-stub/internal/placeholder"
)

// Plan is the parsed, validated embedded-argument plan a finalizer
// rewrites into a template.
type Plan struct {
	Args      []string
	Transform uint64 // bitmask over [0, len(Args))
	Export    bool
}

// Validate checks Plan against the placeholder contract's invariants.
func (p *Plan) Validate() error {
	if len(p.Args) == 0 {
		return &UsageError{Reason: "at least one embedded argument is required"}
	}
	if len(p.Args) > placeholder.NMax {
		return &UsageError{Reason: fmt.Sprintf("too many embedded arguments: %d > %d", len(p.Args), placeholder.NMax)}
	}
	for i, a := range p.Args {
		if len(a) > placeholder.ArgSlotSize-1 {
			return &UsageError{Reason: fmt.Sprintf("argument %d exceeds %d bytes: %q", i, placeholder.ArgSlotSize-1, a)}
		}
		if strings.IndexByte(a, 0) >= 0 {
			return &UsageError{Reason: fmt.Sprintf("argument %d contains an interior NUL byte", i)}
		}
	}
	if p.Transform>>uint(len(p.Args)) != 0 {
		// A bit set at or beyond len(Args) cannot refer to any
		// embedded argument; reject rather than silently drop it.
		return &UsageError{Reason: "transform bitmask references an index beyond the argument count"}
	}
	return nil
}
