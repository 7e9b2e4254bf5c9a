package ppu

import (
	"testing"

	"github.com/bdwalton/nesbox/cartridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testChr is a minimal Chr backed by plain byte slices, standing in
// for a mappers.Mapper without pulling in the mappers package.
type testChr struct {
	chr  [0x2000]uint8
	mirr cartridge.Mirroring
}

func (c *testChr) ChrRead(addr uint16) uint8        { return c.chr[addr%uint16(len(c.chr))] }
func (c *testChr) ChrWrite(addr uint16, v uint8)    { c.chr[addr%uint16(len(c.chr))] = v }
func (c *testChr) Mirroring() cartridge.Mirroring   { return c.mirr }

func TestWriteRegPPUCTRLSetsNametableBits(t *testing.T) {
	p := New(&testChr{})
	p.WriteRegister(PPUCTRL, 0b11)
	assert.EqualValues(t, 0b11<<10, p.t.data)
}

func TestWriteRegPPUSCROLLLatchesTwoWrites(t *testing.T) {
	p := New(&testChr{})
	p.WriteRegister(PPUSCROLL, 0b11001_101) // coarseX=0b11001, fineX=0b101
	assert.EqualValues(t, 0b11001, p.t.coarseX())
	assert.EqualValues(t, 0b101, p.fineX)
	assert.True(t, p.writeLatch)

	p.WriteRegister(PPUSCROLL, 0b10101_011) // coarseY=0b10101, fineY=0b011
	assert.EqualValues(t, 0b10101, p.t.coarseY())
	assert.EqualValues(t, 0b011, p.t.fineY())
	assert.False(t, p.writeLatch)
}

func TestWriteRegPPUADDRLatchesAndCopiesToV(t *testing.T) {
	p := New(&testChr{})
	p.WriteRegister(PPUADDR, 0x3F)
	assert.True(t, p.writeLatch)
	assert.NotEqual(t, uint16(0x3F00), p.v.address())

	p.WriteRegister(PPUADDR, 0x10)
	assert.False(t, p.writeLatch)
	assert.EqualValues(t, 0x3F10, p.v.address())
}

func TestPPUDATAWriteReadPalette(t *testing.T) {
	p := New(&testChr{})
	p.v.data = 0x3F05
	p.WriteRegister(PPUDATA, 0x16)

	p.v.data = 0x3F05
	got := p.ReadRegister(PPUDATA) // palette reads are unbuffered
	assert.EqualValues(t, 0x16, got)
}

func TestPPUDATAReadNametableIsBuffered(t *testing.T) {
	p := New(&testChr{})
	p.vram[0] = 0xAB

	p.v.data = 0x2000
	first := p.ReadRegister(PPUDATA)
	assert.NotEqualValues(t, 0xAB, first) // stale buffer from power-on

	second := p.ReadRegister(PPUDATA)
	assert.EqualValues(t, 0xAB, second)
}

func TestPaletteMirrorsBackdropEntries(t *testing.T) {
	p := New(&testChr{})
	p.writePalette(0x3F00, 0x20)
	assert.EqualValues(t, 0x20, p.readPalette(0x3F10))
}

func TestNametableOffsetHorizontalMirroring(t *testing.T) {
	p := New(&testChr{mirr: cartridge.MirrorHorizontal})
	// $2000 and $2400 (logical 0, 1) share physical table 0.
	assert.EqualValues(t, p.nametableOffset(0x2000), p.nametableOffset(0x2400))
	// $2800 and $2C00 (logical 2, 3) share physical table 1, distinct from table 0.
	assert.NotEqual(t, p.nametableOffset(0x2000), p.nametableOffset(0x2800))
	assert.EqualValues(t, p.nametableOffset(0x2800), p.nametableOffset(0x2C00))
}

func TestNametableOffsetVerticalMirroring(t *testing.T) {
	p := New(&testChr{mirr: cartridge.MirrorVertical})
	assert.EqualValues(t, p.nametableOffset(0x2000), p.nametableOffset(0x2800))
	assert.NotEqual(t, p.nametableOffset(0x2000), p.nametableOffset(0x2400))
}

func TestNMILatchesAtVBlankStart(t *testing.T) {
	p := New(&testChr{})
	p.scanline, p.dot = 0, 0
	p.status = 0 // drop the power-on VBlank flag so only ticking can latch NMI
	p.WriteRegister(PPUCTRL, CtrlGenerateNMI)

	// Run through scanline 241 dot 1, where VBlank begins.
	dotsToVBlank := (241-0)*341 + 2
	p.Tick(dotsToVBlank)

	require.True(t, p.TakeNMI())
	assert.False(t, p.TakeNMI(), "TakeNMI should clear the latch")
	assert.NotZero(t, p.status&StatusVBlank)
}

func TestNMILatchesImmediatelyOnCtrlWriteDuringVBlank(t *testing.T) {
	p := New(&testChr{})
	p.status |= StatusVBlank
	p.WriteRegister(PPUCTRL, CtrlGenerateNMI)
	assert.True(t, p.TakeNMI())
}

func TestStatusReadClearsVBlankAndWriteLatch(t *testing.T) {
	p := New(&testChr{})
	p.status |= StatusVBlank
	p.writeLatch = true

	got := p.ReadRegister(PPUSTATUS)
	assert.NotZero(t, got&StatusVBlank)
	assert.Zero(t, p.status&StatusVBlank)
	assert.False(t, p.writeLatch)
}

func TestOAMDMACopiesFromOAMAddr(t *testing.T) {
	p := New(&testChr{})
	p.oamAddr = 4
	var page [256]uint8
	page[0] = 0xAA
	p.DMA(page)
	assert.EqualValues(t, 0xAA, p.oam[4])
}

func TestRenderFrameFillsBackdropWhenBackgroundDisabled(t *testing.T) {
	p := New(&testChr{})
	p.palette[0] = 0x01
	p.mask = 0 // background and sprites both off
	p.renderFrame()
	assert.Equal(t, p.frame.At(0, 0), p.frame.At(100, 100))
}
