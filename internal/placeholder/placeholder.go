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

// Package placeholder defines the byte-level contract shared by the
// template stub and the finalizer: the fixed-size regions a finalizer
// patches in place and a stub reads at startup.
package placeholder

import "bytes"

const (
	// NMax is the maximum number of embedded arguments a stub can carry.
	// Pinned at the smaller of the two reference generations (see
	// DESIGN.md Open Question decisions).
	NMax = 10

	// NMaxTotal bounds embedded-plus-runtime argv length.
	NMaxTotal = 128

	// SlotSize is the size in bytes of the ARGC, TRANSFORM FLAGS and
	// EXPORT FLAG slots.
	SlotSize = 32

	// ArgSlotSize is the size in bytes of a single ARG slot.
	ArgSlotSize = 256

	// transformFlagsWidth is the number of bytes of SlotSize actually
	// used to hold the little-endian bitmask; the rest is zero padding.
	transformFlagsWidth = 16
)

// Sentinel fragments. Each sentinel must appear exactly once in an
// un-finalized template image. The full sentinel strings are deliberately
// never written as a single constant: a constant string literal is
// interned into the binary's rodata independently of the matching bytes
// slots_data.go places in the data section, so a template built with
// ArgcSentinel() == "@@RUNFILES_ARGC@@" as one literal would carry that
// string twice and fail its own "appears exactly once" scan before a
// finalizer ever touches it. Building each sentinel through a function
// parameter forces the concatenation to happen at runtime, so only the
// fixed-size array in slots_data.go ever holds the full byte sequence.
const (
	sentinelPrefix = "@@RUNFILES_"
	sentinelSuffix = "@@"
)

func sentinelFor(name string) string {
	return sentinelPrefix + name + sentinelSuffix
}

// ArgcSentinel returns the sentinel string for the ARGC slot.
func ArgcSentinel() string { return sentinelFor("ARGC") }

// TransformFlagsSentinel returns the sentinel string for the TRANSFORM
// FLAGS slot.
func TransformFlagsSentinel() string { return sentinelFor("TRANSFORM_FLAGS") }

// ExportFlagSentinel returns the sentinel string for the EXPORT FLAG slot.
func ExportFlagSentinel() string { return sentinelFor("EXPORT_ENV") }

// ArgSentinel returns the sentinel string for ARG slot i.
func ArgSentinel(i int) string {
	return sentinelFor("ARG" + itoa(i))
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [4]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[pos:])
}

// These package-level slices view the fixed-size arrays declared in
// slots_data.go — the in-process placeholder region. Each backing array is
// a composite literal of constant byte elements, so the compiler emits its
// exact, zero-padded initial contents directly into the binary's
// initialized-data section at a fixed offset, exactly like a hand-written
// ELF, Mach-O or PE object's placeholder region would. A finalizer
// operating on the compiled template file finds and replaces those bytes,
// and the running stub simply reads its own already-patched globals — no
// self-read of the executable image required. See DESIGN.md
// (internal/placeholder entry) and slots_data.go's doc comment.
var (
	// ArgcSlot holds the embedded argument count after finalization.
	ArgcSlot = argcSlotArray[:]

	// TransformFlagsSlot holds the little-endian transform bitmask.
	TransformFlagsSlot = transformFlagsSlotArray[:]

	// ExportFlagSlot holds 0 or 1.
	ExportFlagSlot = exportFlagSlotArray[:]

	// ArgSlots holds ARG0..ARG{NMax-1}.
	ArgSlots = [][]byte{
		argSlotArray0[:], argSlotArray1[:], argSlotArray2[:], argSlotArray3[:], argSlotArray4[:],
		argSlotArray5[:], argSlotArray6[:], argSlotArray7[:], argSlotArray8[:], argSlotArray9[:],
	}
)

// newSlot builds a fresh sentinel-initialized slot for this package's
// tests, which operate on independent byte buffers rather than the
// in-process globals above.
func newSlot(sentinel string, size int) []byte {
	b := make([]byte, size)
	copy(b, sentinel)
	return b
}

// IsSentinel reports whether slot still holds its un-finalized sentinel
// value (i.e. the template has not been patched).
func IsSentinel(slot []byte, sentinel string) bool {
	return bytes.HasPrefix(slot, []byte(sentinel))
}

// DecodeArgc reads the embedded argument count from a patched ARGC slot.
// Returns ok=false if the slot still holds its sentinel.
func DecodeArgc(slot []byte) (int, bool) {
	if IsSentinel(slot, ArgcSentinel()) {
		return 0, false
	}
	return int(slot[0]), true
}

// EncodeArgc writes argc into an ARGC slot, zero-padding the rest.
func EncodeArgc(slot []byte, argc int) {
	clear(slot)
	slot[0] = byte(argc)
}

// DecodeTransformFlags reads the little-endian transform bitmask from a
// patched TRANSFORM FLAGS slot.
func DecodeTransformFlags(slot []byte) (uint64, bool) {
	if IsSentinel(slot, TransformFlagsSentinel()) {
		return 0, false
	}
	var mask uint64
	for i := 0; i < transformFlagsWidth && i < 8; i++ {
		mask |= uint64(slot[i]) << (8 * uint(i))
	}
	return mask, true
}

// EncodeTransformFlags writes mask into a TRANSFORM FLAGS slot as a
// 16-byte little-endian value, zero-padded to SlotSize.
func EncodeTransformFlags(slot []byte, mask uint64) {
	clear(slot)
	for i := 0; i < transformFlagsWidth && i < 8; i++ {
		slot[i] = byte(mask >> (8 * uint(i)))
	}
}

// DecodeExportFlag reads the EXPORT FLAG slot.
func DecodeExportFlag(slot []byte) (bool, bool) {
	if IsSentinel(slot, ExportFlagSentinel()) {
		return false, false
	}
	return slot[0] != 0, true
}

// EncodeExportFlag writes the EXPORT FLAG slot.
func EncodeExportFlag(slot []byte, export bool) {
	clear(slot)
	if export {
		slot[0] = 1
	}
}

// DecodeArg reads the NUL-terminated UTF-8 value from an ARG slot.
func DecodeArg(slot []byte, i int) (string, bool) {
	if IsSentinel(slot, ArgSentinel(i)) {
		return "", false
	}
	n := bytes.IndexByte(slot, 0)
	if n < 0 {
		n = len(slot)
	}
	return string(slot[:n]), true
}

// EncodeArg writes value plus a NUL terminator into an ARG slot,
// zero-padding the remainder to ArgSlotSize.
func EncodeArg(slot []byte, value string) {
	clear(slot)
	copy(slot, value)
	// NUL terminator is implicit: clear() already zeroed the tail, and
	// value is validated elsewhere to fit in ArgSlotSize-1 bytes.
}

// ZeroArg zeros an ARG slot entirely, discarding its sentinel.
func ZeroArg(slot []byte) {
	clear(slot)
}
