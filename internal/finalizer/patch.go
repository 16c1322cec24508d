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
	"fmt"

	"github.com/golang/glog"

	"github.com/malt3/runfiles-stub/internal/placeholder"
)

// locateSlot finds the unique offset of sentinel within data and returns
// a slice of size bytes at that offset. Fails if the sentinel appears zero
// or more than once.
func locateSlot(data []byte, sentinel string, size int, template string) ([]byte, error) {
	needle := []byte(sentinel)
	first := bytes.Index(data, needle)
	if first < 0 {
		return nil, &TemplateInvalidError{Template: template, Reason: fmt.Sprintf("sentinel %q not found", sentinel)}
	}
	if bytes.Index(data[first+1:], needle) >= 0 {
		return nil, &TemplateInvalidError{Template: template, Reason: fmt.Sprintf("sentinel %q appears more than once", sentinel)}
	}
	if first+size > len(data) {
		return nil, &TemplateInvalidError{Template: template, Reason: fmt.Sprintf("sentinel %q truncated near end of file", sentinel)}
	}
	return data[first : first+size], nil
}

// Patch rewrites template's placeholder slots in place according to plan.
// It returns an error without modifying data if any sentinel is missing or
// duplicated — the template is left untouched on failure.
//
// Patch never changes len(data): every slot write is a fixed-size in-place
// rewrite, satisfying the length-preservation invariant.
func Patch(data []byte, plan *Plan, templateName string) error {
	if err := plan.Validate(); err != nil {
		return err
	}

	argcSlot, err := locateSlot(data, placeholder.ArgcSentinel(), placeholder.SlotSize, templateName)
	if err != nil {
		return err
	}
	transformSlot, err := locateSlot(data, placeholder.TransformFlagsSentinel(), placeholder.SlotSize, templateName)
	if err != nil {
		return err
	}
	exportSlot, err := locateSlot(data, placeholder.ExportFlagSentinel(), placeholder.SlotSize, templateName)
	if err != nil {
		return err
	}

	argSlots := make([][]byte, placeholder.NMax)
	for i := 0; i < placeholder.NMax; i++ {
		slot, err := locateSlot(data, placeholder.ArgSentinel(i), placeholder.ArgSlotSize, templateName)
		if err != nil {
			return err
		}
		argSlots[i] = slot
	}

	glog.V(1).Infof("finalize-stub: %s: located all placeholder slots", templateName)

	placeholder.EncodeArgc(argcSlot, len(plan.Args))
	placeholder.EncodeTransformFlags(transformSlot, plan.Transform)
	placeholder.EncodeExportFlag(exportSlot, plan.Export)

	for i, slot := range argSlots {
		if i < len(plan.Args) {
			placeholder.EncodeArg(slot, plan.Args[i])
			glog.V(2).Infof("finalize-stub: %s: ARG%d = %q (transform=%v)", templateName, i, plan.Args[i], plan.Transform&(1<<uint(i)) != 0)
		} else {
			// Unused ARG slots are zeroed entirely, even though a
			// fresh template's sentinel is still present here: this
			// makes the finalized output a pure function of the plan
			// alone, and deliberately makes re-finalizing the output
			// fail the sentinel scan above (see DESIGN.md idempotence
			// decision).
			placeholder.ZeroArg(slot)
		}
	}
	return nil
}
