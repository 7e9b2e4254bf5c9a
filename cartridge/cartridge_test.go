package cartridge

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(flags6, flags7, prgBanks, chrBanks byte) []byte {
	h := make([]byte, 16)
	copy(h, []byte(magic))
	h[4] = prgBanks
	h[5] = chrBanks
	h[6] = flags6
	h[7] = flags7
	return h
}

func TestLoadNROM(t *testing.T) {
	buf := bytes.NewBuffer(header(0x01, 0x00, 2, 1))
	buf.Write(make([]byte, prgBlockSize*2))
	buf.Write(make([]byte, chrBlockSize))

	c, err := Load(buf)
	require.NoError(t, err)
	assert.Len(t, c.PRG, prgBlockSize*2)
	assert.Len(t, c.CHR, chrBlockSize)
	assert.Equal(t, MirrorVertical, c.Mirror)
	assert.EqualValues(t, 0, c.MapperNum)
}

func TestLoadBadMagic(t *testing.T) {
	buf := bytes.NewBuffer(append([]byte("BAD!"), make([]byte, 12)...))
	_, err := Load(buf)
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestLoadRejectsNES2(t *testing.T) {
	buf := bytes.NewBuffer(header(0x00, 0x08, 1, 1))
	buf.Write(make([]byte, prgBlockSize))
	buf.Write(make([]byte, chrBlockSize))

	_, err := Load(buf)
	assert.ErrorIs(t, err, ErrNES20Unsupported)
}

func TestLoadTruncated(t *testing.T) {
	buf := bytes.NewBuffer(header(0x00, 0x00, 2, 1))
	// Only provide one PRG bank instead of the two the header promises.
	buf.Write(make([]byte, prgBlockSize))

	_, err := Load(buf)
	assert.True(t, errors.Is(err, ErrTruncated))
}

func TestLoadCHRRAMWhenZeroBanks(t *testing.T) {
	buf := bytes.NewBuffer(header(0x00, 0x00, 1, 0))
	buf.Write(make([]byte, prgBlockSize))

	c, err := Load(buf)
	require.NoError(t, err)
	assert.Len(t, c.CHR, chrBlockSize)
}

func TestMirroringFourScreenOverridesBit0(t *testing.T) {
	buf := bytes.NewBuffer(header(flag6FourScr|flag6Mirroring, 0x00, 1, 1))
	buf.Write(make([]byte, prgBlockSize))
	buf.Write(make([]byte, chrBlockSize))

	c, err := Load(buf)
	require.NoError(t, err)
	assert.Equal(t, MirrorFourScreen, c.Mirror)
}

func TestMapperNumAssemblesFromBothFlags(t *testing.T) {
	buf := bytes.NewBuffer(header(0xF0, 0xD0, 1, 1))
	buf.Write(make([]byte, prgBlockSize))
	buf.Write(make([]byte, chrBlockSize))

	c, err := Load(buf)
	require.NoError(t, err)
	assert.EqualValues(t, 0xDF, c.MapperNum)
}
