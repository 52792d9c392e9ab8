// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// Package tm1637 controls a TM1637 seven-segment display over two GPIO
// lines.
//
// The TM1637 speaks a proprietary two-wire serial protocol. It looks like
// I²C (open-drain style start/stop framing, one byte per nine clocks) but is
// not: there is no device address, bytes go out least significant bit first,
// and the acknowledge bit is not honored by this driver. The protocol is
// bit-banged: every clock and data transition is one masked line-values
// ioctl on a kernel line-request descriptor. No explicit inter-bit delay is
// inserted; the per-transition syscall cost alone keeps the bus well below
// the chip's maximum clock rate. Set Opts.Delay when driving the bus through
// a faster path.
//
// # Hardware Connection
//
//	Display    System
//	GND        GND
//	VCC        3.3V or 5V
//	CLK        any free GPIO line
//	DIO        any free GPIO line
//
// Modules commonly expose four of the chip's six digit positions. On those,
// the decimal-point bit of the second digit drives the colon.
//
// # Basic Usage
//
//	dev, err := tm1637.Open("/dev/gpiochip0", 20, 21, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Close()
//
//	// "12:34"
//	segments := []byte{
//		tm1637.Digit(1), tm1637.Digit(2) | tm1637.SegDP,
//		tm1637.Digit(3), tm1637.Digit(4),
//	}
//	if err := dev.Write(segments, 0); err != nil {
//		log.Fatal(err)
//	}
//
// Open requests both lines from the GPIO character device in one kernel
// line-request; use New instead to run the driver on any pair of
// periph.io/x/conn/v3/gpio.PinOut pins.
//
// A Dev is not safe for concurrent use, and two drivers must never share
// lines.
package tm1637
