package mappers

import "github.com/bdwalton/nesbox/cartridge"

func init() {
	register(0, newNROM)
}

// nrom implements mapper 0 (NROM): no bank switching. PRG is 16KB or
// 32KB; the 16KB case mirrors across both CPU banks.
type nrom struct {
	cart *cartridge.Cartridge
}

func newNROM(c *cartridge.Cartridge) Mapper {
	return &nrom{cart: c}
}

func (m *nrom) ID() uint8 { return 0 }

func (m *nrom) Name() string { return "NROM" }

func (m *nrom) Mirroring() cartridge.Mirroring { return m.cart.Mirror }

// PrgRead expects addr in 0x0000-0x7FFF, relative to the 0x8000 CPU
// base; see bus.Bus.Read for the translation.
func (m *nrom) PrgRead(addr uint16) uint8 {
	prg := m.cart.PRG
	if len(prg) == 0x4000 {
		return prg[addr%0x4000]
	}
	return prg[addr%uint16(len(prg))]
}

func (m *nrom) PrgWrite(addr uint16, val uint8) {
	// NROM PRG is ROM; the bus decides whether to treat this as
	// fatal (strict mode) or ignore it.
}

func (m *nrom) ChrRead(addr uint16) uint8 {
	return m.cart.CHR[addr%uint16(len(m.cart.CHR))]
}

func (m *nrom) ChrWrite(addr uint16, val uint8) {
	// CHR-ROM boards ignore writes; CHR-RAM boards (chr banks==0 in
	// the header) get a writable backing array from cartridge.Load.
	m.cart.CHR[addr%uint16(len(m.cart.CHR))] = val
}
