// Package nes wires the CPU, bus and PPU into the console's run loop:
// fetch-execute the CPU one instruction at a time, tick the PPU in
// lockstep, service NMI at instruction boundaries, and hand a
// finished frame to the host.
package nes

import (
	"context"
	"fmt"
	"io"

	"github.com/bdwalton/nesbox/bus"
	"github.com/bdwalton/nesbox/cartridge"
	"github.com/bdwalton/nesbox/mos6502"
	"github.com/bdwalton/nesbox/trace"
	"github.com/bdwalton/nesbox/video"
)

// Console owns one loaded cartridge's CPU and bus and drives them
// together. The PPU lives inside Bus; Console never touches it
// directly except through Bus's narrow accessors.
type Console struct {
	cpu *mos6502.CPU
	bus *bus.Bus

	// FrameReady, if set, is invoked synchronously every time the PPU
	// finishes a frame, before the next CPU instruction issues. The
	// callback must return before Step is called again.
	FrameReady func(*video.Frame)

	// Trace, if set, receives one nestest-format line per instruction,
	// captured immediately before that instruction executes.
	Trace func(line string)
}

// Load builds a Console for the cartridge read from r. strict governs
// whether a write into PRG-ROM space is a fatal bus error (tests) or
// silently ignored (the CLI host); see bus.New.
func Load(r io.Reader, strict bool) (*Console, error) {
	cart, err := cartridge.Load(r)
	if err != nil {
		return nil, fmt.Errorf("nes: loading cartridge: %w", err)
	}

	b, err := bus.New(cart, strict)
	if err != nil {
		return nil, fmt.Errorf("nes: building bus: %w", err)
	}

	c := &Console{bus: b}
	c.cpu = mos6502.New(b)
	return c, nil
}

// SetPC overrides the CPU's program counter, bypassing the reset
// vector. Used to enter nestest's automated mode at $C000.
func (c *Console) SetPC(pc uint16) {
	c.cpu.SetPC(pc)
}

// SetButtons updates the live button state for joypad player (0 or 1).
func (c *Console) SetButtons(player int, mask uint8) {
	c.bus.SetButtons(player, mask)
}

// Frame returns the most recently completed picture.
func (c *Console) Frame() *video.Frame {
	return c.bus.Frame()
}

// Step runs exactly one CPU instruction (servicing a pending NMI
// first, if one is latched), ticks the PPU and OAM-DMA stall that
// instruction incurred, and reports whether a frame finished
// rendering along the way. It returns the strict-mode bus error, if
// the instruction produced one.
func (c *Console) Step() (frameReady bool, err error) {
	if c.bus.PollNMI() {
		cycles := c.cpu.NMI()
		if c.bus.Tick(cycles) {
			frameReady = true
		}
	} else {
		if c.Trace != nil {
			scanline, dot := c.bus.PPUPosition()
			c.Trace(trace.Format(c.cpu.Disassemble(), c.cpu.Snapshot(), scanline, dot))
		}
		cycles := c.cpu.Step()
		if c.bus.Tick(cycles) {
			frameReady = true
		}
	}

	if stall := c.bus.TakeDMAStall(); stall > 0 {
		if c.bus.Tick(stall) {
			frameReady = true
		}
	}

	if frameReady && c.FrameReady != nil {
		c.FrameReady(c.bus.Frame())
	}

	return frameReady, c.bus.Err()
}

// Run steps the console until ctx is canceled or a strict-mode bus
// error occurs.
func (c *Console) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if _, err := c.Step(); err != nil {
				return err
			}
		}
	}
}
