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

package placeholder

// The arrays below are the actual placeholder region: fixed-size,
// composite literals of constant byte elements. Unlisted trailing
// elements are implicitly zero, which is exactly the zero-padding
// an un-finalized slot requires. Because every element is a
// manifest constant, the compiler lays out each array's exact byte
// content directly in the binary's initialized-data section rather than
// computing it at program startup — the same guarantee a hand-written
// object file's static placeholder region relies on. Do not replace these
// with a string-to-array conversion or a copy() in an init function: both
// are evaluated at runtime and would leave the slot's on-disk bytes zero
// instead of the sentinel, which a finalizer's byte scan could never find.

var argcSlotArray = [SlotSize]byte{
	'@', '@', 'R', 'U', 'N', 'F', 'I', 'L', 'E', 'S', '_', 'A', 'R', 'G', 'C', '@', '@',
}

var transformFlagsSlotArray = [SlotSize]byte{
	'@', '@', 'R', 'U', 'N', 'F', 'I', 'L', 'E', 'S', '_', 'T', 'R', 'A', 'N', 'S', 'F', 'O', 'R', 'M', '_', 'F', 'L', 'A', 'G', 'S', '@', '@',
}

var exportFlagSlotArray = [SlotSize]byte{
	'@', '@', 'R', 'U', 'N', 'F', 'I', 'L', 'E', 'S', '_', 'E', 'X', 'P', 'O', 'R', 'T', '_', 'E', 'N', 'V', '@', '@',
}

var argSlotArray0 = [ArgSlotSize]byte{
	'@', '@', 'R', 'U', 'N', 'F', 'I', 'L', 'E', 'S', '_', 'A', 'R', 'G', '0', '@', '@',
}

var argSlotArray1 = [ArgSlotSize]byte{
	'@', '@', 'R', 'U', 'N', 'F', 'I', 'L', 'E', 'S', '_', 'A', 'R', 'G', '1', '@', '@',
}

var argSlotArray2 = [ArgSlotSize]byte{
	'@', '@', 'R', 'U', 'N', 'F', 'I', 'L', 'E', 'S', '_', 'A', 'R', 'G', '2', '@', '@',
}

var argSlotArray3 = [ArgSlotSize]byte{
	'@', '@', 'R', 'U', 'N', 'F', 'I', 'L', 'E', 'S', '_', 'A', 'R', 'G', '3', '@', '@',
}

var argSlotArray4 = [ArgSlotSize]byte{
	'@', '@', 'R', 'U', 'N', 'F', 'I', 'L', 'E', 'S', '_', 'A', 'R', 'G', '4', '@', '@',
}

var argSlotArray5 = [ArgSlotSize]byte{
	'@', '@', 'R', 'U', 'N', 'F', 'I', 'L', 'E', 'S', '_', 'A', 'R', 'G', '5', '@', '@',
}

var argSlotArray6 = [ArgSlotSize]byte{
	'@', '@', 'R', 'U', 'N', 'F', 'I', 'L', 'E', 'S', '_', 'A', 'R', 'G', '6', '@', '@',
}

var argSlotArray7 = [ArgSlotSize]byte{
	'@', '@', 'R', 'U', 'N', 'F', 'I', 'L', 'E', 'S', '_', 'A', 'R', 'G', '7', '@', '@',
}

var argSlotArray8 = [ArgSlotSize]byte{
	'@', '@', 'R', 'U', 'N', 'F', 'I', 'L', 'E', 'S', '_', 'A', 'R', 'G', '8', '@', '@',
}

var argSlotArray9 = [ArgSlotSize]byte{
	'@', '@', 'R', 'U', 'N', 'F', 'I', 'L', 'E', 'S', '_', 'A', 'R', 'G', '9', '@', '@',
}
