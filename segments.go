package tm1637

// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Segment bits of one digit register.
//
//	 a
//	f b
//	 g
//	e c
//	 d
//
// SegDP is the decimal point. On four digit clock modules it is usually only
// wired on the second digit, where it drives the colon.
const (
	SegA  byte = 1 << 0
	SegB  byte = 1 << 1
	SegC  byte = 1 << 2
	SegD  byte = 1 << 3
	SegE  byte = 1 << 4
	SegF  byte = 1 << 5
	SegG  byte = 1 << 6
	SegDP byte = 1 << 7
)

// Patterns for an empty digit and a dash.
const (
	Blank byte = 0
	Minus byte = SegG
)

// hexDigits maps a hexadecimal digit to its segment pattern.
var hexDigits = [16]byte{
	SegA | SegB | SegC | SegD | SegE | SegF,        // 0
	SegB | SegC,                                    // 1
	SegA | SegB | SegD | SegE | SegG,               // 2
	SegA | SegB | SegC | SegD | SegG,               // 3
	SegB | SegC | SegF | SegG,                      // 4
	SegA | SegC | SegD | SegF | SegG,               // 5
	SegA | SegC | SegD | SegE | SegF | SegG,        // 6
	SegA | SegB | SegC,                             // 7
	SegA | SegB | SegC | SegD | SegE | SegF | SegG, // 8
	SegA | SegB | SegC | SegD | SegF | SegG,        // 9
	SegA | SegB | SegC | SegE | SegF | SegG,        // A
	SegC | SegD | SegE | SegF | SegG,               // b
	SegA | SegD | SegE | SegF,                      // C
	SegB | SegC | SegD | SegE | SegG,               // d
	SegA | SegD | SegE | SegF | SegG,               // E
	SegA | SegE | SegF | SegG,                      // F
}

// Digit returns the segment pattern for a hexadecimal digit 0 through 15.
// Values outside that range come back Blank.
func Digit(v int) byte {
	if v < 0 || v >= len(hexDigits) {
		return Blank
	}
	return hexDigits[v]
}
