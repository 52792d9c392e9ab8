//go:build windows

// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gpiochip

import (
	"fmt"
	"syscall"
)

const (
	_IOCTL_FUNCTION = 0
)

func syscall_wrapper(trap, a1, a2, a3 uintptr) (r1, r2 uintptr, err syscall.Errno) { //nolint:unused
	return uintptr(0), uintptr(0), syscall.ERROR_NOT_FOUND
}

func syscall_close_wrapper(fd int) (err error) {
	return syscall.Close(syscall.Handle(fd))
}

func isGPIOChardev(path string) error {
	return fmt.Errorf("gpiochip: %s: %w", path, ErrNotGPIODevice)
}
