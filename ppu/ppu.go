// Package ppu implements the 2C02 picture processing unit: its
// memory-mapped register file at $2000-$2007/$4014, nametable and
// palette RAM, OAM, and a once-per-frame rendering pass into a
// video.Frame.
package ppu

import (
	"github.com/bdwalton/nesbox/cartridge"
	"github.com/bdwalton/nesbox/video"
)

// VRAM, OAM and palette RAM sizes.
const (
	vramSize    = 2048
	oamSize     = 256
	paletteSize = 32
)

// Register addresses, as seen through the CPU's $2000-$2007 mirror
// and the $4014 OAM DMA port.
const (
	PPUCTRL   = 0x2000
	PPUMASK   = 0x2001
	PPUSTATUS = 0x2002
	OAMADDR   = 0x2003
	OAMDATA   = 0x2004
	PPUSCROLL = 0x2005
	PPUADDR   = 0x2006
	PPUDATA   = 0x2007
	OAMDMA    = 0x4014
)

// PPUCTRL ($2000) bit flags.
const (
	CtrlNametable       = 0x03
	CtrlVRAMIncrement   = 1 << 2
	CtrlSpritePattern   = 1 << 3
	CtrlBGPattern       = 1 << 4
	CtrlSpriteSize      = 1 << 5
	CtrlMasterSlave     = 1 << 6
	CtrlGenerateNMI     = 1 << 7
)

// PPUMASK ($2001) bit flags.
const (
	MaskGreyscale     = 1 << 0
	MaskShowBGLeft    = 1 << 1
	MaskShowSpriteLeft = 1 << 2
	MaskShowBG        = 1 << 3
	MaskShowSprites   = 1 << 4
	MaskEmphasizeRed  = 1 << 5
	MaskEmphasizeGreen = 1 << 6
	MaskEmphasizeBlue = 1 << 7
)

// PPUSTATUS ($2002) bit flags.
const (
	StatusSpriteOverflow = 1 << 5
	StatusSprite0Hit     = 1 << 6
	StatusVBlank         = 1 << 7
)

// Chr is the subset of a mappers.Mapper the PPU needs: pattern-table
// access and the cartridge's fixed nametable mirroring mode. Taking
// this narrow interface instead of importing package mappers keeps
// the dependency one-directional.
type Chr interface {
	ChrRead(addr uint16) uint8
	ChrWrite(addr uint16, val uint8)
	Mirroring() cartridge.Mirroring
}

// PPU is the 2C02. It owns nametable RAM, OAM and palette RAM
// directly; only pattern-table (CHR) data comes from the cartridge,
// via Chr.
type PPU struct {
	chr Chr

	vram    [vramSize]uint8
	oam     [oamSize]uint8
	palette [paletteSize]uint8

	ctrl, mask, status uint8
	oamAddr            uint8

	v, t       loopy
	fineX      uint8
	writeLatch bool
	readBuffer uint8

	scanline, dot int

	frame       video.Frame
	frameReady  bool
	nmiPending  bool
}

// New constructs a PPU wired to a cartridge mapper for CHR access.
// Real hardware powers up mid-vblank; scanline 261 (pre-render) with
// dot 0 gives the same effect without a special-cased first frame.
func New(chr Chr) *PPU {
	return &PPU{chr: chr, scanline: 261, status: StatusVBlank}
}

// Tick advances the PPU by dots PPU clock cycles (three per CPU
// cycle). It returns true on the tick a frame finishes rendering.
func (p *PPU) Tick(dots int) bool {
	ready := false
	for i := 0; i < dots; i++ {
		if p.tick() {
			ready = true
		}
	}
	return ready
}

func (p *PPU) tick() bool {
	frameReady := false

	switch {
	case p.scanline == 241 && p.dot == 1:
		p.status |= StatusVBlank
		if p.ctrl&CtrlGenerateNMI != 0 {
			p.nmiPending = true
		}
	case p.scanline == 261 && p.dot == 1:
		p.status &^= StatusVBlank | StatusSprite0Hit | StatusSpriteOverflow
	case p.scanline == 261 && p.dot == 280:
		// Approximates the real hardware's per-scanline hori(v)=hori(t)
		// and vert(v)=vert(t) reloads with a single whole-register copy
		// just before the visible frame starts; see renderFrame.
		p.v = p.t
	case p.scanline == 240 && p.dot == 0:
		p.renderFrame()
		frameReady = true
	}

	p.dot++
	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline > 261 {
			p.scanline = 0
		}
	}

	if frameReady {
		p.frameReady = true
	}
	return frameReady
}

// TakeNMI reports and clears a pending NMI request, implementing the
// one-shot mailbox the bus polls after every Tick.
func (p *PPU) TakeNMI() bool {
	v := p.nmiPending
	p.nmiPending = false
	return v
}

// Frame returns the most recently rendered picture.
func (p *PPU) Frame() *video.Frame {
	return &p.frame
}

// ScanlineDot reports the current scanline (0-261) and dot (0-340),
// for the tracer's PPU column.
func (p *PPU) ScanlineDot() (int, int) {
	return p.scanline, p.dot
}

// ReadRegister handles a CPU read of $2002/$2004/$2007 (addr already
// reduced mod 8 by the bus). Other addresses are write-only and
// return open-bus 0.
func (p *PPU) ReadRegister(addr uint16) uint8 {
	switch addr {
	case PPUSTATUS:
		v := p.status
		p.status &^= StatusVBlank
		p.writeLatch = false
		return v
	case OAMDATA:
		return p.oam[p.oamAddr]
	case PPUDATA:
		return p.readData()
	default:
		return 0
	}
}

// WriteRegister handles a CPU write to $2000-$2007.
func (p *PPU) WriteRegister(addr uint16, val uint8) {
	switch addr {
	case PPUCTRL:
		wasNMIOff := p.ctrl&CtrlGenerateNMI == 0
		p.ctrl = val
		p.t.data = (p.t.data & 0xF3FF) | (uint16(val&CtrlNametable) << 10)
		if wasNMIOff && val&CtrlGenerateNMI != 0 && p.status&StatusVBlank != 0 {
			p.nmiPending = true
		}
	case PPUMASK:
		p.mask = val
	case OAMADDR:
		p.oamAddr = val
	case OAMDATA:
		p.oam[p.oamAddr] = val
		p.oamAddr++
	case PPUSCROLL:
		if !p.writeLatch {
			p.t.setCoarseX(uint16(val >> 3))
			p.fineX = val & 0x07
		} else {
			p.t.setCoarseY(uint16(val >> 3))
			p.t.setFineY(uint16(val & 0x07))
		}
		p.writeLatch = !p.writeLatch
	case PPUADDR:
		if !p.writeLatch {
			p.t.data = (p.t.data & 0x00FF) | (uint16(val&0x3F) << 8)
		} else {
			p.t.data = (p.t.data & 0xFF00) | uint16(val)
			p.v = p.t
		}
		p.writeLatch = !p.writeLatch
	case PPUDATA:
		p.writeData(val)
	}
}

// DMA copies 256 bytes (a CPU page, supplied by the bus in response
// to a $4014 write) into OAM starting at the current OAMADDR.
func (p *PPU) DMA(page [256]uint8) {
	for i := 0; i < 256; i++ {
		p.oam[uint8(p.oamAddr)+uint8(i)] = page[i]
	}
}

func (p *PPU) vramStep() uint16 {
	if p.ctrl&CtrlVRAMIncrement != 0 {
		return 32
	}
	return 1
}

func (p *PPU) readData() uint8 {
	addr := p.v.address()
	var ret uint8
	if addr >= 0x3F00 {
		ret = p.readPalette(addr)
		p.readBuffer = p.memRead(addr - 0x1000)
	} else {
		ret = p.readBuffer
		p.readBuffer = p.memRead(addr)
	}
	p.v.data = (p.v.data + p.vramStep()) & 0x7FFF
	return ret
}

func (p *PPU) writeData(val uint8) {
	addr := p.v.address()
	if addr >= 0x3F00 {
		p.writePalette(addr, val)
	} else {
		p.memWrite(addr, val)
	}
	p.v.data = (p.v.data + p.vramStep()) & 0x7FFF
}

// memRead/memWrite service the PPU's internal 14-bit address space
// ($0000-$3FFF) used by $2007, distinct from the per-pixel nametable
// lookups renderFrame does directly against p.vram.
func (p *PPU) memRead(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return p.chr.ChrRead(addr)
	case addr < 0x3F00:
		return p.vram[p.nametableOffset(addr)]
	default:
		return p.readPalette(addr)
	}
}

func (p *PPU) memWrite(addr uint16, val uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.chr.ChrWrite(addr, val)
	case addr < 0x3F00:
		p.vram[p.nametableOffset(addr)] = val
	default:
		p.writePalette(addr, val)
	}
}

func (p *PPU) paletteIndex(addr uint16) uint16 {
	i := (addr - 0x3F00) % 0x20
	// $3F10/$3F14/$3F18/$3F1C mirror the backdrop entries at
	// $3F00/$3F04/$3F08/$3F0C.
	if i >= 0x10 && i%4 == 0 {
		i -= 0x10
	}
	return i
}

func (p *PPU) readPalette(addr uint16) uint8  { return p.palette[p.paletteIndex(addr)] }
func (p *PPU) writePalette(addr uint16, v uint8) { p.palette[p.paletteIndex(addr)] = v }

// nametableOffset maps a $2000-$3EFF CPU/PPU-bus address into one of
// the two physical 1KB nametables this PPU owns, honoring the
// cartridge's fixed mirroring.
func (p *PPU) nametableOffset(addr uint16) uint16 {
	a := (addr - 0x2000) % 0x1000
	table := a / 0x400
	offset := a % 0x400
	return uint16(p.physicalTable(int(table)))*0x400 + offset
}

// physicalTable maps a logical nametable index (0-3, top-left,
// top-right, bottom-left, bottom-right) to one of the two physical
// 1KB tables backing vram, per the cartridge's mirroring. Four-screen
// carts need four independent tables; this core only ships NROM
// boards (always horizontal or vertical), so four-screen falls back
// to vertical mirroring.
func (p *PPU) physicalTable(logical int) int {
	switch p.chr.Mirroring() {
	case cartridge.MirrorHorizontal:
		return logical / 2
	default:
		return logical % 2
	}
}

// renderFrame draws one full picture into p.frame from the current
// nametable/palette/OAM state and scroll registers. Real hardware
// composites a scanline at a time as it fetches; this core instead
// renders the whole frame at once when the visible scanlines end
// (scanline 240, dot 0), which is indistinguishable for any cartridge
// that only changes scroll or banking during vblank.
func (p *PPU) renderFrame() {
	if p.mask&MaskShowBG != 0 {
		p.renderBackground()
	} else {
		backdrop := video.SystemPalette[p.palette[0]&0x3F]
		for y := 0; y < video.Height; y++ {
			for x := 0; x < video.Width; x++ {
				p.frame.SetPixel(x, y, backdrop)
			}
		}
	}
	if p.mask&MaskShowSprites != 0 {
		p.renderSprites()
	}
}

func (p *PPU) renderBackground() {
	bgTable := uint16(0)
	if p.ctrl&CtrlBGPattern != 0 {
		bgTable = 0x1000
	}

	baseNT := int(p.v.nametableX() | p.v.nametableY()<<1)
	scrollX := int(p.v.coarseX())*8 + int(p.fineX)
	scrollY := int(p.v.coarseY())*8 + int(p.v.fineY())

	for py := 0; py < video.Height; py++ {
		for px := 0; px < video.Width; px++ {
			absX := (baseNT%2)*256 + scrollX + px
			absY := (baseNT/2)*240 + scrollY + py
			absX %= 512
			absY %= 480

			logicalNT := (absY/240)*2 + absX/256
			tileX, tileY := (absX%256)/8, (absY%240)/8
			fx, fy := (absX % 256 % 8), (absY % 240 % 8)

			table := uint16(p.physicalTable(logicalNT)) * 0x400
			tileIdx := p.vram[table+uint16(tileY)*32+uint16(tileX)]
			attrByte := p.vram[table+0x3C0+uint16(tileY/4)*8+uint16(tileX/4)]
			shift := uint((tileX%4)/2*2 + (tileY%4)/2*4)
			paletteHi := (attrByte >> shift) & 0x03

			lo := p.chr.ChrRead(bgTable + uint16(tileIdx)*16 + uint16(fy))
			hi := p.chr.ChrRead(bgTable + uint16(tileIdx)*16 + uint16(fy) + 8)
			bit := uint(7 - fx)
			val := ((hi>>bit)&1)<<1 | (lo>>bit)&1

			var idx uint8
			if val == 0 {
				idx = p.palette[0]
			} else {
				idx = p.palette[paletteHi*4+val]
			}
			p.frame.SetPixel(px, py, video.SystemPalette[idx&0x3F])
		}
	}
}

func (p *PPU) renderSprites() {
	tall := p.ctrl&CtrlSpriteSize != 0
	spriteTable := uint16(0)
	if p.ctrl&CtrlSpritePattern != 0 {
		spriteTable = 0x1000
	}

	// Sprite 0 is drawn last so it wins ties against every other
	// sprite, matching hardware priority (lowest OAM index on top).
	for i := 63; i >= 0; i-- {
		b := i * 4
		s := OAMFromBytes(p.oam[b : b+4])
		y := int(s.y) + 1
		if y >= 0xF0 {
			continue
		}

		height := 8
		if tall {
			height = 16
		}

		table := spriteTable
		tile := uint16(s.tileId)
		if tall {
			table = uint16(s.tileId&1) * 0x1000
			tile = uint16(s.tileId &^ 1)
		}

		for row := 0; row < height; row++ {
			sy := y + row
			if sy < 0 || sy >= video.Height {
				continue
			}
			r := row
			if s.flipV {
				r = height - 1 - row
			}
			t := tile
			if tall {
				t += uint16(r / 8)
			}
			line := uint16(r % 8)

			lo := p.chr.ChrRead(table + t*16 + line)
			hi := p.chr.ChrRead(table + t*16 + line + 8)

			for col := 0; col < 8; col++ {
				c := col
				if !s.flipH {
					c = 7 - col
				}
				val := ((hi>>uint(c))&1)<<1 | (lo>>uint(c))&1
				if val == 0 {
					continue
				}

				sx := int(s.x) + col
				if sx < 0 || sx >= video.Width {
					continue
				}

				if i == 0 && p.spritePaintedOverBG(sx, sy) {
					p.status |= StatusSprite0Hit
				}

				if s.renderP == BACK && p.backgroundOpaque(sx, sy) {
					continue
				}

				idx := p.palette[0x10+uint(s.palette)*4+uint(val)]
				p.frame.SetPixel(sx, sy, video.SystemPalette[idx&0x3F])
			}
		}
	}
}

// backgroundOpaque and spritePaintedOverBG re-derive whether the
// background pixel already drawn at (x, y) was non-transparent.
// Re-deriving from palette RAM, rather than tracking a parallel
// opacity buffer, keeps renderBackground's hot loop simple; sprite
// rendering is the only caller that needs it.
func (p *PPU) backgroundOpaque(x, y int) bool {
	return p.frame.At(x, y) != video.SystemPalette[p.palette[0]&0x3F]
}

func (p *PPU) spritePaintedOverBG(x, y int) bool {
	return p.mask&MaskShowBG != 0 && p.backgroundOpaque(x, y)
}
