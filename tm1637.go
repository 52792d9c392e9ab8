package tm1637

// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"

	"github.com/monomycelium/tm1637/gpiochip"
)

// Command bytes from the TM1637 datasheet.
const (
	cmdData    = 0x40 // data command: write registers, auto address increment
	cmdAddress = 0xc0 // address command: selects the first grid register, C0H..C5H
	cmdControl = 0x80 // display control: on/off plus pulse width
	ctlOn      = 0x08 // display-on bit inside the control nibble
)

const (
	// MaxBrightness is the highest brightness level the chip supports.
	MaxBrightness = 7
	// MaxDigits is the number of grid registers the chip drives.
	MaxDigits = 6
)

// Opts is the configuration for a TM1637 display.
type Opts struct {
	// Brightness is the initial brightness level, 0 (dimmest) to
	// MaxBrightness. The display starts switched on.
	Brightness uint8

	// Delay is an optional settle time applied after every pin transition.
	// The zero value relies on syscall latency alone for the bus timing,
	// which through a line-request descriptor comfortably exceeds the chip's
	// minimum clock period. A faster write path needs a calibrated delay
	// here.
	Delay time.Duration
}

// Dev is a handle to a TM1637 display driven over two GPIO lines.
//
// The bus has no return path, so the display never reports problems back;
// operations fail only when a pin write itself fails. Dev is not safe for
// concurrent use.
type Dev struct {
	clk gpio.PinOut
	dio gpio.PinOut
	// control is the display control nibble: the brightness level in the
	// low three bits, the on/off flag in bit 3.
	control byte
	delay   time.Duration
	cleanup func() error
}

// New creates a TM1637 driver on two already configured output pins.
//
// Both pins must be driven logic-low when handed over. Nothing is sent on
// the bus until the first operation. opts can be nil to use the defaults
// (full brightness, no delay). Close on a Dev created by New releases
// nothing; the caller keeps ownership of the pins.
func New(clk, dio gpio.PinOut, opts *Opts) (*Dev, error) {
	if clk == nil || dio == nil {
		return nil, errors.New("tm1637: both clock and data pins are required")
	}
	if opts == nil {
		opts = &Opts{Brightness: MaxBrightness}
	}
	if opts.Brightness > MaxBrightness {
		return nil, errors.New("tm1637: brightness out of range")
	}
	return &Dev{
		clk:     clk,
		dio:     dio,
		control: opts.Brightness | ctlOn,
		delay:   opts.Delay,
	}, nil
}

// Open opens the GPIO character device at chipPath, requests clkOffset and
// dioOffset as output lines defaulting to logic-low, and returns a driver on
// them.
//
// The two lines are requested together so they share one kernel
// line-request descriptor. The returned Dev owns the chip and the request;
// Close releases both. If a later step fails, everything acquired before the
// failure is released before returning.
func Open(chipPath string, clkOffset, dioOffset uint32, opts *Opts) (dev *Dev, err error) {
	chip, err := gpiochip.Open(chipPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = chip.Close()
		}
	}()
	pins, err := chip.Pins("tm1637", gpiochip.Output, gpio.Low, clkOffset, dioOffset)
	if err != nil {
		return nil, err
	}
	dev, err = New(pins[0], pins[1], opts)
	if err != nil {
		_ = pins[0].Close()
		return nil, err
	}
	dev.cleanup = func() error {
		// Closing the clock pin releases the shared request, and with it
		// the data pin.
		err := pins[0].Close()
		if cerr := chip.Close(); err == nil {
			err = cerr
		}
		return err
	}
	return dev, nil
}

// Write loads len(segments) consecutive grid registers starting at position;
// position 0 is the first digit. position+len(segments) must not exceed
// MaxDigits and segments must not be empty.
//
// Each byte lights one digit: bit 0 is segment a through bit 6 segment g,
// bit 7 the decimal point. The display control nibble is reasserted after
// the data load, as the chip can otherwise blank after an address write.
func (d *Dev) Write(segments []byte, position int) error {
	if len(segments) == 0 {
		return errors.New("tm1637: empty write")
	}
	if position < 0 || position+len(segments) > MaxDigits {
		return fmt.Errorf("tm1637: %d segments at position %d exceed the %d digit registers", len(segments), position, MaxDigits)
	}
	if err := d.sendCommand(cmdData); err != nil {
		return err
	}
	if err := d.start(); err != nil {
		return err
	}
	if err := d.writeByte(cmdAddress | byte(position)); err != nil {
		return err
	}
	for _, segment := range segments {
		if err := d.writeByte(segment); err != nil {
			return err
		}
	}
	if err := d.stop(); err != nil {
		return err
	}
	return d.sendCommand(cmdControl | d.control)
}

// SetBrightness sets the brightness level, 0 to MaxBrightness, and switches
// the display on.
func (d *Dev) SetBrightness(level uint8) error {
	if level > MaxBrightness {
		return errors.New("tm1637: brightness out of range")
	}
	d.control = level | ctlOn
	return d.sendControl()
}

// SetState switches the display on or off. The brightness level is retained
// across an off/on toggle.
func (d *Dev) SetState(on bool) error {
	d.control &^= ctlOn
	if on {
		d.control |= ctlOn
	}
	return d.sendControl()
}

// Halt turns the display off. It implements conn.Resource; SetState(true)
// switches the display back on.
func (d *Dev) Halt() error {
	return d.SetState(false)
}

// Close releases the chip and line-request acquired by Open. For a Dev
// created with New it is a no-op. Close does not blank the display; the
// chip keeps showing its registers until it loses power. Closing twice is a
// no-op.
func (d *Dev) Close() error {
	if d.cleanup == nil {
		return nil
	}
	cleanup := d.cleanup
	d.cleanup = nil
	return cleanup()
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("tm1637.Dev{%s, %s}", d.clk.Name(), d.dio.Name())
}

// sendControl applies the stored control nibble: a data command frame
// followed by a display control command frame.
func (d *Dev) sendControl() error {
	if err := d.sendCommand(cmdData); err != nil {
		return err
	}
	return d.sendCommand(cmdControl | d.control)
}

// sendCommand sends one command byte in its own start/stop frame.
func (d *Dev) sendCommand(cmd byte) error {
	if err := d.start(); err != nil {
		return err
	}
	if err := d.writeByte(cmd); err != nil {
		return err
	}
	return d.stop()
}

// start opens a frame: the data line falls while the clock is high.
func (d *Dev) start() error {
	if err := d.set(d.clk, gpio.High); err != nil {
		return err
	}
	if err := d.set(d.dio, gpio.High); err != nil {
		return err
	}
	if err := d.set(d.dio, gpio.Low); err != nil {
		return err
	}
	return d.set(d.clk, gpio.Low)
}

// stop closes a frame: the data line rises while the clock is high.
func (d *Dev) stop() error {
	if err := d.set(d.clk, gpio.Low); err != nil {
		return err
	}
	if err := d.set(d.dio, gpio.Low); err != nil {
		return err
	}
	if err := d.set(d.clk, gpio.High); err != nil {
		return err
	}
	return d.set(d.dio, gpio.High)
}

// writeByte clocks out one byte, least significant bit first, then clocks
// the acknowledge slot. The data line is never sampled during that slot, so
// the chip's acknowledge is ignored: an absent display is indistinguishable
// from a healthy one.
func (d *Dev) writeByte(b byte) error {
	for i := 0; i < 8; i++ {
		if err := d.set(d.dio, gpio.Level(b&1 == 1)); err != nil {
			return err
		}
		if err := d.set(d.clk, gpio.High); err != nil {
			return err
		}
		if err := d.set(d.clk, gpio.Low); err != nil {
			return err
		}
		b >>= 1
	}
	if err := d.set(d.clk, gpio.Low); err != nil {
		return err
	}
	if err := d.set(d.clk, gpio.High); err != nil {
		return err
	}
	return d.set(d.clk, gpio.Low)
}

// set drives one pin and applies the optional settle delay.
func (d *Dev) set(p gpio.PinOut, l gpio.Level) error {
	if err := p.Out(l); err != nil {
		return err
	}
	if d.delay != 0 {
		time.Sleep(d.delay)
	}
	return nil
}

// Ensure that Interfaces for these types are implemented fully.
var _ conn.Resource = &Dev{}
