package gpiochip

// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// These tests lock the ioctl argument layouts and numbers to the values in
// /usr/include/linux/gpio.h. The kernel reads the structs directly, so a
// size or offset drift is silent memory corruption, not a failing call.

import (
	"os"
	"path"
	"strings"
	"testing"
	"unsafe"

	"periph.io/x/conn/v3/gpio"
)

func TestStructSizes(t *testing.T) {
	tests := []struct {
		name string
		size uintptr
		want uintptr
	}{
		{"gpiochip_info", unsafe.Sizeof(gpiochip_info{}), 68},
		{"gpio_v2_line_values", unsafe.Sizeof(gpio_v2_line_values{}), 16},
		{"gpio_v2_line_attribute", unsafe.Sizeof(gpio_v2_line_attribute{}), 16},
		{"gpio_v2_line_config_attribute", unsafe.Sizeof(gpio_v2_line_config_attribute{}), 24},
		{"gpio_v2_line_config", unsafe.Sizeof(gpio_v2_line_config{}), 272},
		{"gpio_v2_line_request", unsafe.Sizeof(gpio_v2_line_request{}), 592},
	}
	for _, test := range tests {
		if test.size != test.want {
			t.Errorf("sizeof(%s)=%d, kernel ABI wants %d", test.name, test.size, test.want)
		}
	}
}

func TestStructOffsets(t *testing.T) {
	var lr gpio_v2_line_request
	if offset := unsafe.Offsetof(lr.consumer); offset != 256 {
		t.Errorf("line_request.consumer offset=%d, want 256", offset)
	}
	if offset := unsafe.Offsetof(lr.config); offset != 288 {
		t.Errorf("line_request.config offset=%d, want 288", offset)
	}
	if offset := unsafe.Offsetof(lr.num_lines); offset != 560 {
		t.Errorf("line_request.num_lines offset=%d, want 560", offset)
	}
	if offset := unsafe.Offsetof(lr.fd); offset != 588 {
		t.Errorf("line_request.fd offset=%d, want 588", offset)
	}
	// The value bitmap comes first, the line-select mask second.
	var lv gpio_v2_line_values
	if offset := unsafe.Offsetof(lv.bits); offset != 0 {
		t.Errorf("line_values.bits offset=%d, want 0", offset)
	}
	if offset := unsafe.Offsetof(lv.mask); offset != 8 {
		t.Errorf("line_values.mask offset=%d, want 8", offset)
	}
}

func TestIoctlNumbers(t *testing.T) {
	tests := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"GPIO_GET_CHIPINFO_IOCTL", _IOR(0xb4, 0x01, unsafe.Sizeof(gpiochip_info{})), 0x8044b401},
		{"GPIO_V2_GET_LINE_IOCTL", _IOWR(0xb4, 0x07, unsafe.Sizeof(gpio_v2_line_request{})), 0xc250b407},
		{"GPIO_V2_LINE_SET_VALUES_IOCTL", _IOWR(0xb4, 0x0f, unsafe.Sizeof(gpio_v2_line_values{})), 0xc010b40f},
	}
	for _, test := range tests {
		if test.got != test.want {
			t.Errorf("%s=%#x, want %#x", test.name, test.got, test.want)
		}
	}
}

func TestLineRequestStruct(t *testing.T) {
	lr := lineRequestStruct("tm1637", Output, gpio.Low, []uint32{20, 21})
	if lr.offsets[0] != 20 || lr.offsets[1] != 21 {
		t.Errorf("offsets=%v, want [20 21 ...]", lr.offsets[:2])
	}
	if lr.num_lines != 2 {
		t.Errorf("num_lines=%d, want 2", lr.num_lines)
	}
	if lr.config.flags != _GPIO_V2_LINE_FLAG_OUTPUT {
		t.Errorf("config.flags=%#x, want output flag %#x", lr.config.flags, _GPIO_V2_LINE_FLAG_OUTPUT)
	}
	if lr.config.num_attrs != 1 {
		t.Errorf("num_attrs=%d, want exactly 1", lr.config.num_attrs)
	}
	attr := lr.config.attrs[0]
	if attr.attr.id != _GPIO_V2_LINE_ATTR_ID_OUTPUT_VALUES {
		t.Errorf("attr id=%d, want output values id %d", attr.attr.id, _GPIO_V2_LINE_ATTR_ID_OUTPUT_VALUES)
	}
	if attr.mask != 0x03 {
		t.Errorf("attr mask=%#x, want %#x covering both requested bit indexes", attr.mask, 0x03)
	}
	if attr.attr.value != 0 {
		t.Errorf("default low: attr value=%#x, want 0", attr.attr.value)
	}
	if got := strings.Trim(string(lr.consumer[:]), "\x00"); got != "tm1637" {
		t.Errorf("consumer=%q, want %q", got, "tm1637")
	}
	if lr.consumer[_GPIO_MAX_NAME_SIZE-1] != 0 {
		t.Error("consumer label is not NUL terminated")
	}

	lr = lineRequestStruct("tm1637", Output, gpio.High, []uint32{5})
	if lr.num_lines != 1 || lr.offsets[0] != 5 {
		t.Errorf("single line request: num_lines=%d offsets[0]=%d", lr.num_lines, lr.offsets[0])
	}
	if attr := lr.config.attrs[0]; attr.mask != 0x01 || attr.attr.value != 0x01 {
		t.Errorf("default high: mask=%#x value=%#x, want 0x1/0x1", attr.mask, attr.attr.value)
	}

	lr = lineRequestStruct("watcher", Input, gpio.Low, []uint32{3})
	if lr.config.flags != _GPIO_V2_LINE_FLAG_INPUT {
		t.Errorf("config.flags=%#x, want input flag %#x", lr.config.flags, _GPIO_V2_LINE_FLAG_INPUT)
	}
}

func TestConsumerLabel(t *testing.T) {
	label := consumerLabel("")
	expected := path.Base(os.Args[0])
	if !strings.HasPrefix(label, expected) || !strings.Contains(label, "@") {
		t.Errorf("default consumer=%q, want %q@pid", label, expected)
	}
	long := strings.Repeat("x", 2*_GPIO_MAX_NAME_SIZE)
	if label = consumerLabel(long); len(label) != _GPIO_MAX_NAME_SIZE-1 {
		t.Errorf("long consumer truncated to %d bytes, want %d", len(label), _GPIO_MAX_NAME_SIZE-1)
	}
	if label = consumerLabel("tm1637"); label != "tm1637" {
		t.Errorf("consumer=%q, want unchanged %q", label, "tm1637")
	}
}

func TestDirectionString(t *testing.T) {
	tests := []struct {
		dir  Direction
		want string
	}{
		{Input, "Input"},
		{Output, "Output"},
		{Direction(0), "NotSet"},
		{Direction(9), "Invalid"},
	}
	for _, test := range tests {
		if got := test.dir.String(); got != test.want {
			t.Errorf("Direction(%d).String()=%q, want %q", uint32(test.dir), got, test.want)
		}
	}
}
