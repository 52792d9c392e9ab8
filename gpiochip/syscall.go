//go:build !windows

// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// This file provides wrappers around the unix syscall surface so that the
// rest of the package builds on Windows too. On Linux the wrappers are the
// real thing; elsewhere the sysfs checks simply never match.

package gpiochip

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/unix"
)

const (
	_IOCTL_FUNCTION = unix.SYS_IOCTL
)

func syscall_wrapper(trap, a1, a2, a3 uintptr) (r1, r2 uintptr, err syscall.Errno) {
	return unix.Syscall(trap, a1, a2, a3)
}

func syscall_close_wrapper(fd int) (err error) {
	return unix.Close(fd)
}

// isGPIOChardev checks that path names a character device registered under
// the kernel's GPIO subsystem. The subsystem link under /sys/dev/char is the
// discriminator: an unrelated character device would accept the open but
// misinterpret the line ioctls.
func isGPIOChardev(path string) error {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return fmt.Errorf("gpiochip: stat %s: %w", path, err)
	}
	if st.Mode&unix.S_IFMT != unix.S_IFCHR {
		return fmt.Errorf("gpiochip: %s: %w", path, ErrNotCharacterDevice)
	}
	rdev := uint64(st.Rdev)
	subsystem := fmt.Sprintf("/sys/dev/char/%d:%d/subsystem", unix.Major(rdev), unix.Minor(rdev))
	target, err := os.Readlink(subsystem)
	if err != nil || filepath.Base(target) != "gpio" {
		return fmt.Errorf("gpiochip: %s: %w", path, ErrNotGPIODevice)
	}
	return nil
}
