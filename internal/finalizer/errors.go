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

import "fmt"

// Exit codes for finalize-stub: 0 ok, 1 I/O or template error, 2 usage.
const (
	ExitOK           = 0
	ExitTemplateOrIO = 1
	ExitUsage        = 2
)

// UsageError is a malformed-CLI error (exit code 2).
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("finalize-stub: usage error: %s", e.Reason)
}

// TemplateInvalidError is returned when a template is missing a sentinel,
// has a duplicated sentinel, or has already been finalized (exit code 1).
type TemplateInvalidError struct {
	Template string
	Reason   string
}

func (e *TemplateInvalidError) Error() string {
	return fmt.Sprintf("finalize-stub: %s: not a valid template: %s", e.Template, e.Reason)
}

// IOError wraps a filesystem failure reading the template or writing the
// output (exit code 1).
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("finalize-stub: %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by this package to the process exit
// status this package's CLI contract requires.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch err.(type) {
	case *UsageError:
		return ExitUsage
	case *TemplateInvalidError, *IOError:
		return ExitTemplateOrIO
	default:
		return ExitTemplateOrIO
	}
}
