package mos6502

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassembleDoesNotAdvancePC(t *testing.T) {
	c, m := newCPU()
	c.PC = 0x8000
	m.data[0x8000] = 0x4C // JMP abs
	m.data[0x8001] = 0x34
	m.data[0x8002] = 0x12

	d := c.Disassemble()
	assert.EqualValues(t, 0x8000, c.PC)
	assert.Equal(t, "JMP", d.Mnemonic)
	assert.Equal(t, "$1234", d.Operand)
	assert.Equal(t, []uint8{0x4C, 0x34, 0x12}, d.Bytes)
}

func TestDisassembleImmediate(t *testing.T) {
	c, m := newCPU()
	c.PC = 0x8000
	m.data[0x8000] = 0xA9
	m.data[0x8001] = 0x7F

	d := c.Disassemble()
	assert.Equal(t, "LDA", d.Mnemonic)
	assert.Equal(t, "#$7F", d.Operand)
}

func TestDisassembleRelativeShowsTargetAddress(t *testing.T) {
	c, m := newCPU()
	c.PC = 0x80FE
	m.data[0x80FE] = 0xF0 // BEQ
	m.data[0x80FF] = 0x02

	d := c.Disassemble()
	assert.Equal(t, "BEQ", d.Mnemonic)
	assert.Equal(t, "$8102", d.Operand)
}

func TestDisassembleImplicitHasNoOperand(t *testing.T) {
	c, m := newCPU()
	c.PC = 0x8000
	m.data[0x8000] = 0xEA // NOP

	d := c.Disassemble()
	assert.Equal(t, "NOP", d.Mnemonic)
	assert.Equal(t, "", d.Operand)
}
