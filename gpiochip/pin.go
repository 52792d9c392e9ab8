package gpiochip

// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// lineRequest is the kernel-granted handle backing one or more Pins. Pins
// requested together share one lineRequest; its descriptor is released
// exactly once, by whichever sibling is closed first.
type lineRequest struct {
	// The anonymous file descriptor returned by the line-request ioctl.
	fd int32
}

func (lr *lineRequest) close() error {
	if lr.fd == 0 {
		return nil
	}
	err := syscall_close_wrapper(int(lr.fd))
	lr.fd = 0
	return err
}

// setValue drives a single bit of the request. Only the masked bit is
// touched; sibling lines keep their levels.
func (lr *lineRequest) setValue(index uint32, l gpio.Level) error {
	if lr.fd == 0 {
		return ErrClosed
	}
	data := lineValues(index, l)
	return ioctl_set_gpio_v2_line_values(uintptr(lr.fd), &data)
}

// lineValues builds the bit/mask pair addressing exactly one line of a
// request.
func lineValues(index uint32, l gpio.Level) gpio_v2_line_values {
	var data gpio_v2_line_values
	data.mask = 1 << index
	if l {
		data.bits = 1 << index
	}
	return data
}

// A Pin is one line's position within a granted line-request. Pin implements
// periph.io/x/conn/v3/gpio.PinOut. Pins are obtained from Chip.Pins() or
// Chip.Pin().
type Pin struct {
	// The kernel name of the owning chip, kept for diagnostics.
	chip string
	// The line offset on the chip. Note that this has NO RELATIONSHIP to the
	// pin numbering scheme that may be in use on a board.
	offset uint32
	// The bit index of this line within the shared request bitmaps.
	index     uint32
	direction Direction
	consumer  string
	req       *lineRequest
}

// Name returns "<chip>/<offset>". Implements pin.Pin.
func (p *Pin) Name() string {
	return p.chip + "/" + strconv.FormatUint(uint64(p.offset), 10)
}

// Number returns the line offset on the chip. Implements pin.Pin.
func (p *Pin) Number() int {
	return int(p.offset)
}

// Function implements pin.Pin.
func (p *Pin) Function() string {
	if p.direction == Output {
		return "Out"
	}
	return "In"
}

// Out drives the line to the given level. Only this pin's bit of the shared
// request is addressed, so sibling pins are unaffected. The line must have
// been requested as Output; a request is never reconfigured after the grant.
func (p *Pin) Out(l gpio.Level) error {
	if p.direction != Output {
		return fmt.Errorf("gpiochip: %s: %w", p.Name(), ErrNotOutput)
	}
	if err := p.req.setValue(p.index, l); err != nil {
		return fmt.Errorf("gpiochip: %s: %w", p.Name(), err)
	}
	return nil
}

// PWM is not implemented because the kernel PWM interface is not part of
// the GPIO character device.
func (p *Pin) PWM(gpio.Duty, physic.Frequency) error {
	return errors.New("gpiochip: PWM is not supported")
}

// Halt implements conn.Resource. An output line has nothing pending to stop.
func (p *Pin) Halt() error {
	return nil
}

// Close releases the line-request backing this pin. If the request was
// granted for several pins at once, this invalidates all of them; the
// siblings must not be used or closed separately afterward. Closing an
// already closed pin is a no-op.
func (p *Pin) Close() error {
	return p.req.close()
}

// Offset returns the line offset of this pin on its chip.
func (p *Pin) Offset() uint32 {
	return p.offset
}

func (p *Pin) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name      string `json:"Name"`
		Line      int    `json:"Line"`
		Index     uint32 `json:"Index"`
		Direction string `json:"Direction"`
		Consumer  string `json:"Consumer"`
	}{
		Name:      p.Name(),
		Line:      p.Number(),
		Index:     p.index,
		Direction: p.direction.String(),
		Consumer:  p.consumer})
}

// String returns information about the pin in valid JSON format.
func (p *Pin) String() string {
	json, _ := json.MarshalIndent(p, "", "    ")
	return string(json)
}

// Ensure that Interfaces for these types are implemented fully.
var _ gpio.PinOut = &Pin{}
