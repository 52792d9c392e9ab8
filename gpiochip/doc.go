// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// Package gpiochip grants exclusive ownership of Linux GPIO lines using the
// v2 character-device ioctl interface.
//
// https://docs.kernel.org/userspace-api/gpio/index.html
//
// A Chip is opened from a /dev/gpiochip* path after the path has been
// verified to be a character device registered under the kernel's GPIO
// subsystem. Chip.Pins() requests one or more line offsets in a single
// kernel line-request; the pins returned from one call share the granted
// request descriptor, so closing any one of them releases all of them.
// Each Pin implements periph.io/x/conn/v3/gpio.PinOut.
//
// The package intentionally covers only what a bit-banged output bus needs:
// direction, default output values and masked per-line writes. Bias, edge
// detection, debounce and line reconfiguration are not exposed.
//
// None of the types in this package are safe for concurrent use. A Chip and
// the Pins derived from it must be confined to a single goroutine.
package gpiochip
