package gpiochip

// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"syscall"

	"periph.io/x/conn/v3/gpio"
)

// Errors reported by chip validation and line requests. They are wrapped
// with context; test with errors.Is.
var (
	ErrNotCharacterDevice = errors.New("not a character device")
	ErrNotGPIODevice      = errors.New("not a GPIO device")
	ErrPinInUse           = errors.New("pin in use")
	ErrRequestFailed      = errors.New("line request returned no usable descriptor")
	ErrInvalidOffset      = errors.New("invalid line offset")
	ErrClosed             = errors.New("already closed")
	ErrNotOutput          = errors.New("line is not configured for output")
)

// Direction is the requested data direction of a line.
type Direction uint32

const (
	Input  Direction = 1
	Output Direction = 2
)

var directionLabels = []string{"NotSet", "Input", "Output"}

func (d Direction) String() string {
	if int(d) >= len(directionLabels) {
		return "Invalid"
	}
	return directionLabels[d]
}

// directionFlags returns the ioctl line flag for a requested direction.
func directionFlags(dir Direction) uint64 {
	var flags uint64
	if dir == Input {
		flags |= _GPIO_V2_LINE_FLAG_INPUT
	} else if dir == Output {
		flags |= _GPIO_V2_LINE_FLAG_OUTPUT
	}
	return flags
}

// consumerLabel normalizes the consumer name attached to a line request.
// An empty name defaults to program_name@pid so that utilities like gpioinfo
// can report who holds a line. The kernel limits the label to 31 bytes plus
// a terminating NUL.
func consumerLabel(consumer string) string {
	if consumer == "" {
		consumer = fmt.Sprintf("%s@%d", path.Base(os.Args[0]), os.Getpid())
	}
	if len(consumer) >= _GPIO_MAX_NAME_SIZE {
		consumer = consumer[:_GPIO_MAX_NAME_SIZE-1]
	}
	return consumer
}

// A Chip is an open GPIO character device. It grants ownership of its lines
// via Pins() and must outlive every Pin derived from it.
type Chip struct {
	// The name of the device as reported by the kernel.
	name  string
	label string
	// path to the /dev/gpiochip* node used for ioctl() calls.
	path string
	// The number of lines this device supports.
	lines uint32
	fd    uintptr
	// file anchors the descriptor. Dropping the reference would let the
	// runtime finalize the file and close the fd under us.
	file *os.File
}

// Open validates that path names a GPIO character device and opens it.
//
// Validation stats the path, requires a character device, and requires the
// device's /sys/dev/char/<major>:<minor>/subsystem link to resolve to the
// GPIO subsystem. A regular file fails with ErrNotCharacterDevice; a
// character device from another subsystem, such as a terminal, fails with
// ErrNotGPIODevice.
func Open(path string) (*Chip, error) {
	if err := isGPIOChardev(path); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("gpiochip: opening %s: %w", path, err)
	}
	chip := &Chip{path: path, file: f, fd: f.Fd()}
	var info gpiochip_info
	if err := ioctl_gpiochip_info(chip.fd, &info); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("gpiochip: reading chip info for %s: %w", path, err)
	}
	chip.name = strings.Trim(string(info.name[:]), "\x00")
	chip.label = strings.Trim(string(info.label[:]), "\x00")
	if len(chip.label) == 0 {
		chip.label = chip.name
	}
	chip.lines = info.lines
	return chip, nil
}

func (chip *Chip) Name() string {
	return chip.name
}

func (chip *Chip) Label() string {
	return chip.label
}

func (chip *Chip) Path() string {
	return chip.path
}

// LineCount returns the number of lines this chip exposes.
func (chip *Chip) LineCount() int {
	return int(chip.lines)
}

// Close releases the chip descriptor. All Pins derived from the chip must be
// closed first; the chip has to outlive every request granted from it.
// Closing twice is a no-op.
func (chip *Chip) Close() error {
	if chip.file == nil {
		return nil
	}
	err := chip.file.Close()
	chip.file = nil
	chip.fd = 0
	return err
}

// Pins requests the given line offsets in a single kernel line-request and
// returns one Pin per offset, in argument order.
//
// All requested lines are configured with the same direction and, through a
// single output-values config attribute, the same default level. The pins
// share the granted request descriptor: closing any one of them releases
// every line in the request, so siblings must not be used afterward.
//
// consumer is the diagnostic label attached to the request; empty means
// program_name@pid. An offset already owned elsewhere fails with ErrPinInUse.
// The kernel caps a single request at 64 lines.
func (chip *Chip) Pins(consumer string, dir Direction, defaultLevel gpio.Level, offsets ...uint32) ([]*Pin, error) {
	if chip.file == nil {
		return nil, fmt.Errorf("gpiochip: %s: %w", chip.path, ErrClosed)
	}
	if len(offsets) == 0 || len(offsets) > _GPIO_V2_LINES_MAX {
		return nil, fmt.Errorf("gpiochip: requested %d lines, want 1 to %d", len(offsets), _GPIO_V2_LINES_MAX)
	}
	for _, offset := range offsets {
		if offset >= chip.lines {
			return nil, fmt.Errorf("gpiochip: line %d on %s with %d lines: %w", offset, chip.name, chip.lines, ErrInvalidOffset)
		}
	}
	label := consumerLabel(consumer)
	req := lineRequestStruct(label, dir, defaultLevel, offsets)
	if err := ioctl_gpio_v2_line_request(chip.fd, req); err != nil {
		if errors.Is(err, syscall.EBUSY) {
			return nil, fmt.Errorf("gpiochip: lines %v on %s: %w", offsets, chip.name, ErrPinInUse)
		}
		return nil, fmt.Errorf("gpiochip: line request on %s: %w", chip.name, err)
	}
	if req.fd <= 0 {
		return nil, fmt.Errorf("gpiochip: line request on %s: %w", chip.name, ErrRequestFailed)
	}
	lr := &lineRequest{fd: req.fd}
	pins := make([]*Pin, len(offsets))
	for ix, offset := range offsets {
		pins[ix] = &Pin{
			chip:      chip.name,
			offset:    offset,
			index:     uint32(ix),
			direction: dir,
			consumer:  label,
			req:       lr,
		}
	}
	return pins, nil
}

// Pin requests a single line offset as its own line-request.
func (chip *Chip) Pin(consumer string, offset uint32, dir Direction, defaultLevel gpio.Level) (*Pin, error) {
	pins, err := chip.Pins(consumer, dir, defaultLevel, offset)
	if err != nil {
		return nil, err
	}
	return pins[0], nil
}

// lineRequestStruct builds the ioctl argument for one line-request. Exactly
// one config attribute is populated: the default output values, masked to
// cover every requested bit index.
func lineRequestStruct(consumer string, dir Direction, defaultLevel gpio.Level, offsets []uint32) *gpio_v2_line_request {
	var lr gpio_v2_line_request
	for ix, char := range []byte(consumer) {
		lr.consumer[ix] = char
	}
	for ix, offset := range offsets {
		lr.setLineNumber(ix, offset)
	}
	lr.num_lines = uint32(len(offsets))
	lr.config.flags = directionFlags(dir)
	var mask uint64 = (1 << len(offsets)) - 1
	var bits uint64
	if defaultLevel {
		bits = mask
	}
	lr.config.attrs[0] = gpio_v2_line_config_attribute{
		attr: gpio_v2_line_attribute{id: _GPIO_V2_LINE_ATTR_ID_OUTPUT_VALUES, value: bits},
		mask: mask,
	}
	lr.config.num_attrs = 1
	return &lr
}

func (chip *Chip) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name      string `json:"Name"`
		Path      string `json:"Path"`
		Label     string `json:"Label"`
		LineCount int    `json:"LineCount"`
	}{
		Name:      chip.Name(),
		Path:      chip.Path(),
		Label:     chip.Label(),
		LineCount: chip.LineCount()})
}

// String returns the chip information in valid JSON format.
func (chip *Chip) String() string {
	json, _ := json.MarshalIndent(chip, "", "    ")
	return string(json)
}
