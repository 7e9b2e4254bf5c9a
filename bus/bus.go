// Package bus implements the NES CPU address space: RAM, the PPU
// register mirror, the two joypad ports, OAM DMA, and the cartridge
// mapper's PRG window. It is the mos6502.Bus the CPU talks to.
package bus

import (
	"fmt"

	"github.com/bdwalton/nesbox/cartridge"
	"github.com/bdwalton/nesbox/joypad"
	"github.com/bdwalton/nesbox/mappers"
	"github.com/bdwalton/nesbox/ppu"
	"github.com/bdwalton/nesbox/video"
)

const ramSize = 0x0800 // 2KB internal RAM, mirrored through 0x1FFF

// dmaStallCycles is the CPU stall a $4014 write incurs. Real hardware
// varies by one cycle depending on whether the write lands on an odd
// or even CPU cycle; this core always charges the even-cycle cost,
// which is exact for every cartridge that doesn't depend on cycle
// parity for its own timing tricks.
const dmaStallCycles = 513

// Bus wires the CPU's memory accesses to RAM, the PPU, the two
// joypads and the cartridge mapper.
type Bus struct {
	ram    [ramSize]uint8
	ppu    *ppu.PPU
	mapper mappers.Mapper
	pads   [2]joypad.Joypad

	strict     bool
	err        error
	pendingNMI bool
	dmaStall   int
}

// New builds a Bus for a loaded cartridge. In strict mode (used by
// tests), a write to PRG-ROM space is recorded as a fatal error the
// caller can observe via Err; in permissive mode (the CLI host) such
// writes are silently dropped, since real cartridges occasionally
// touch addresses no emulated mapper understands. Writes to the
// unmapped and APU ranges are ignored in both modes.
func New(cart *cartridge.Cartridge, strict bool) (*Bus, error) {
	m, err := mappers.Get(cart)
	if err != nil {
		return nil, err
	}

	b := &Bus{mapper: m, strict: strict}
	b.ppu = ppu.New(m)
	return b, nil
}

// Err returns the first fatal bus error recorded in strict mode, or
// nil.
func (b *Bus) Err() error {
	return b.err
}

// SetButtons updates the live button state for joypad player (0 or 1).
func (b *Bus) SetButtons(player int, mask uint8) {
	b.pads[player].SetButtons(mask)
}

// Frame returns the PPU's most recently rendered picture.
func (b *Bus) Frame() *video.Frame {
	return b.ppu.Frame()
}

// PPUPosition reports the PPU's current scanline and dot, for trace
// output.
func (b *Bus) PPUPosition() (scanline, dot int) {
	return b.ppu.ScanlineDot()
}

// Tick advances the PPU by cpuCycles*3 dots -- the PPU runs three
// times the CPU's clock -- and folds through any VBlank NMI the PPU
// latched along the way. It returns true on the tick a frame
// finishes rendering.
func (b *Bus) Tick(cpuCycles int) bool {
	ready := b.ppu.Tick(cpuCycles * 3)
	if b.ppu.TakeNMI() {
		b.pendingNMI = true
	}
	return ready
}

// PollNMI reports and clears a pending NMI, for the CPU to service at
// the next instruction boundary.
func (b *Bus) PollNMI() bool {
	v := b.pendingNMI
	b.pendingNMI = false
	return v
}

// TakeDMAStall reports and clears the CPU-cycle stall owed for an OAM
// DMA transfer triggered since the last call.
func (b *Bus) TakeDMAStall() int {
	v := b.dmaStall
	b.dmaStall = 0
	return v
}

// Read implements mos6502.Bus, decoding the full 64KB CPU address
// space. See https://www.nesdev.org/wiki/CPU_memory_map.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x1FFF:
		return b.ram[addr&0x07FF]
	case addr <= 0x3FFF:
		return b.ppu.ReadRegister(addr & 0x2007)
	case addr == 0x4016:
		return b.pads[0].Read()
	case addr == 0x4017:
		return b.pads[1].Read()
	case addr <= 0x4017:
		return 0 // APU registers: not emulated, reads as open bus 0
	case addr <= 0x401F:
		return 0
	case addr <= 0x5FFF:
		return 0 // expansion ROM / unmapped
	case addr <= 0x7FFF:
		return 0 // cartridge SRAM: absent on mapper 0
	default:
		return b.mapper.PrgRead(addr - 0x8000)
	}
}

// Write implements mos6502.Bus.
func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr <= 0x1FFF:
		b.ram[addr&0x07FF] = val
	case addr <= 0x3FFF:
		b.ppu.WriteRegister(addr&0x2007, val)
	case addr == 0x4014:
		b.oamDMA(val)
	case addr == 0x4016:
		// $4016 bit 0 strobes both controller shift registers; $4017
		// is APU frame-counter control on real hardware and does not
		// reach joypad 2 here.
		b.pads[0].Write(val)
		b.pads[1].Write(val)
	case addr <= 0x4017:
		// APU registers: not emulated, writes ignored
	case addr <= 0x401F:
	case addr <= 0x5FFF:
	case addr <= 0x7FFF:
		// cartridge SRAM: absent on mapper 0, write has no effect
	default:
		b.mapper.PrgWrite(addr-0x8000, val)
		if b.strict && b.err == nil {
			b.err = fmt.Errorf("bus: write to PRG-ROM space at %#04x in strict mode", addr)
		}
	}
}

func (b *Bus) oamDMA(page uint8) {
	base := uint16(page) << 8
	var buf [256]uint8
	for i := 0; i < 256; i++ {
		buf[i] = b.Read(base + uint16(i))
	}
	b.ppu.DMA(buf)
	b.dmaStall += dmaStallCycles
}
