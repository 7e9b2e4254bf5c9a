// Package mappers implements and registers the cartridge address
// decoders ("mappers") referenced numerically by the iNES format.
package mappers

import (
	"errors"
	"fmt"

	"github.com/bdwalton/nesbox/cartridge"
)

// ErrUnsupportedMapper is returned by Get when a cartridge names a
// mapper number this core has no implementation for.
var ErrUnsupportedMapper = errors.New("mappers: unsupported mapper")

// Mapper decodes CPU and PPU accesses into cartridge PRG/CHR space.
// Implementations are not required to bank-switch; NROM (mapper 0),
// the only mapper this core ships, does not.
type Mapper interface {
	ID() uint8
	Name() string
	Mirroring() cartridge.Mirroring
	PrgRead(addr uint16) uint8
	PrgWrite(addr uint16, val uint8)
	ChrRead(addr uint16) uint8
	ChrWrite(addr uint16, val uint8)
}

type factory func(*cartridge.Cartridge) Mapper

var registry = map[uint8]factory{}

func register(id uint8, f factory) {
	if _, ok := registry[id]; ok {
		panic(fmt.Sprintf("mappers: id %d already registered", id))
	}
	registry[id] = f
}

// Get constructs the Mapper for a loaded cartridge's mapper number.
func Get(c *cartridge.Cartridge) (Mapper, error) {
	f, ok := registry[c.MapperNum]
	if !ok {
		return nil, fmt.Errorf("%w: mapper %d", ErrUnsupportedMapper, c.MapperNum)
	}
	return f(c), nil
}
