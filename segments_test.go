package tm1637

// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

import (
	"testing"
)

func TestDigit(t *testing.T) {
	tests := []struct {
		v    int
		want byte
	}{
		{0, 0x3f},
		{1, 0x06},
		{5, 0x6d},
		{8, 0x7f},
		{0xa, 0x77},
		{0xb, 0x7c},
		{0xf, 0x71},
		{-1, Blank},
		{16, Blank},
	}
	for _, test := range tests {
		if got := Digit(test.v); got != test.want {
			t.Errorf("Digit(%#x)=%#x, want %#x", test.v, got, test.want)
		}
	}
}

func TestSegments(t *testing.T) {
	if Minus != SegG {
		t.Errorf("Minus=%#x, want the middle bar %#x", Minus, SegG)
	}
	// The decimal point belongs to the caller; no digit pattern sets it.
	for v := 0; v < 16; v++ {
		if Digit(v)&SegDP != 0 {
			t.Errorf("Digit(%#x)=%#x lights the decimal point", v, Digit(v))
		}
	}
}
