package nes

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// romWithReset builds a minimal iNES image (mapper 0, one 16KB PRG
// bank, one 8KB CHR bank) with program loaded at $8000 and the reset
// vector pointed at it.
func romWithReset(program []uint8) []byte {
	var buf bytes.Buffer
	buf.WriteString("NES\x1a")
	buf.WriteByte(1) // 1 PRG bank
	buf.WriteByte(1) // 1 CHR bank
	buf.WriteByte(0) // flags6: horizontal mirroring, mapper low nibble 0
	buf.WriteByte(0) // flags7
	buf.Write(make([]byte, 8))

	prg := make([]byte, 16384)
	copy(prg, program)
	prg[0x3FFC] = 0x00 // reset vector low -> $8000
	prg[0x3FFD] = 0x80
	buf.Write(prg)
	buf.Write(make([]byte, 8192))

	return buf.Bytes()
}

func TestConsoleRunsInstructionsAndAdvancesCycles(t *testing.T) {
	program := []uint8{
		0xA9, 0x10, // LDA #$10
		0x8D, 0x00, 0x00, // STA $0000
		0xEA, // NOP
	}
	c, err := Load(bytes.NewReader(romWithReset(program)), true)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := c.Step()
		require.NoError(t, err)
	}
	assert.EqualValues(t, 2+4+2, c.cpu.Snapshot().Cycle)
}

func TestConsoleTraceEmitsOneLinePerInstruction(t *testing.T) {
	program := []uint8{0xEA, 0xEA, 0xEA}
	c, err := Load(bytes.NewReader(romWithReset(program)), true)
	require.NoError(t, err)

	var lines []string
	c.Trace = func(line string) { lines = append(lines, line) }

	for i := 0; i < 3; i++ {
		_, err := c.Step()
		require.NoError(t, err)
	}

	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "8000"))
	assert.Contains(t, lines[0], "NOP")
	assert.True(t, strings.HasPrefix(lines[1], "8001"))
}

func TestConsoleStrictModeSurfacesPRGWriteError(t *testing.T) {
	program := []uint8{
		0xA9, 0x01, // LDA #$01
		0x8D, 0x00, 0x80, // STA $8000 (PRG-ROM space)
	}
	c, err := Load(bytes.NewReader(romWithReset(program)), true)
	require.NoError(t, err)

	_, err = c.Step() // LDA
	require.NoError(t, err)
	_, err = c.Step() // STA into ROM
	assert.Error(t, err)
}

func TestConsoleReachesVBlankAndSignalsFrameReady(t *testing.T) {
	// One NOP, then zero-filled PRG: BRK jumps through the zeroed IRQ
	// vector to $0000, where zeroed RAM is BRK again, so the CPU keeps
	// running indefinitely.
	program := []uint8{0xEA}
	c, err := Load(bytes.NewReader(romWithReset(program)), true)
	require.NoError(t, err)

	sawFrame := false
	for i := 0; i < 400000 && !sawFrame; i++ {
		ready, err := c.Step()
		require.NoError(t, err)
		if ready {
			sawFrame = true
		}
	}
	assert.True(t, sawFrame, "expected a frame-ready signal within one full PPU frame's worth of instructions")
}
