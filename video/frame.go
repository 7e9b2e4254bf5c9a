// Package video holds the pixel buffer the PPU renders into and the
// fixed NES master palette used to resolve palette-RAM indices to RGB.
package video

// Width and Height are the visible NES picture dimensions in pixels.
const (
	Width  = 256
	Height = 240
)

// Frame is an RGB pixel buffer sized for one NES picture. The host
// (cmd/nesbox) owns presentation; the PPU only ever writes into it via
// SetPixel.
type Frame struct {
	Pix [Width * Height * 3]uint8
}

// SetPixel writes the RGB triple at (x, y). Out-of-range coordinates
// are ignored rather than panicking, since a mis-scrolled sprite
// fetch should degrade a picture, not crash the console.
func (f *Frame) SetPixel(x, y int, rgb [3]uint8) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	i := (y*Width + x) * 3
	f.Pix[i], f.Pix[i+1], f.Pix[i+2] = rgb[0], rgb[1], rgb[2]
}

// At returns the RGB triple at (x, y).
func (f *Frame) At(x, y int) [3]uint8 {
	i := (y*Width + x) * 3
	return [3]uint8{f.Pix[i], f.Pix[i+1], f.Pix[i+2]}
}

// SystemPalette is the NES PPU's fixed 64-entry RGB palette. Palette
// RAM stores indices into this table, never raw color values.
var SystemPalette = [64][3]uint8{
	{0x80, 0x80, 0x80}, {0x00, 0x3D, 0xA6}, {0x00, 0x12, 0xB0}, {0x44, 0x00, 0x96}, {0xA1, 0x00, 0x5E},
	{0xC7, 0x00, 0x28}, {0xBA, 0x06, 0x00}, {0x8C, 0x17, 0x00}, {0x5C, 0x2F, 0x00}, {0x10, 0x45, 0x00},
	{0x05, 0x4A, 0x00}, {0x00, 0x47, 0x2E}, {0x00, 0x41, 0x66}, {0x00, 0x00, 0x00}, {0x05, 0x05, 0x05}, {0x05, 0x05, 0x05},
	{0xC7, 0xC7, 0xC7}, {0x00, 0x77, 0xFF}, {0x21, 0x55, 0xFF}, {0x82, 0x37, 0xFA}, {0xEB, 0x2F, 0xB5},
	{0xFF, 0x29, 0x50}, {0xFF, 0x22, 0x00}, {0xD6, 0x32, 0x00}, {0xC4, 0x62, 0x00}, {0x35, 0x80, 0x00},
	{0x05, 0x8F, 0x00}, {0x00, 0x8A, 0x55}, {0x00, 0x99, 0xCC}, {0x21, 0x21, 0x21}, {0x09, 0x09, 0x09}, {0x09, 0x09, 0x09},
	{0xFF, 0xFF, 0xFF}, {0x0F, 0xD7, 0xFF}, {0x69, 0xA2, 0xFF}, {0xD4, 0x80, 0xFF}, {0xFF, 0x45, 0xF3},
	{0xFF, 0x61, 0x8B}, {0xFF, 0x88, 0x33}, {0xFF, 0x9C, 0x12}, {0xFA, 0xBC, 0x20}, {0x9F, 0xE3, 0x0E},
	{0x2B, 0xF0, 0x35}, {0x0C, 0xF0, 0xA4}, {0x05, 0xFB, 0xFF}, {0x5E, 0x5E, 0x5E}, {0x0D, 0x0D, 0x0D}, {0x0D, 0x0D, 0x0D},
	{0xFF, 0xFF, 0xFF}, {0xA6, 0xFC, 0xFF}, {0xB3, 0xEC, 0xFF}, {0xDA, 0xAB, 0xEB}, {0xFF, 0xA8, 0xF9},
	{0xFF, 0xAB, 0xB3}, {0xFF, 0xD2, 0xB0}, {0xFF, 0xEF, 0xA6}, {0xFF, 0xF7, 0x9C}, {0xD7, 0xE8, 0x95},
	{0xA6, 0xED, 0xAF}, {0xA2, 0xF2, 0xDA}, {0x99, 0xFF, 0xFC}, {0xDD, 0xDD, 0xDD}, {0x11, 0x11, 0x11}, {0x11, 0x11, 0x11},
}
