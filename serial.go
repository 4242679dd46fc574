// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pry

import "code.hybscloud.com/atomix"

// Serial is a monotonically increasing shape identifier.
// Each successful call to Derive assigns the next serial value; it appears
// in the diagnostics for caller-contract violations so that a message can
// be tied back to the shape that produced it.
type Serial = uint32

// counter is the global monotonic counter for shape serials.
var counter atomix.Uint32

// nextSerial returns the next monotonically increasing serial.
func nextSerial() Serial {
	return counter.Add(1)
}
