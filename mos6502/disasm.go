package mos6502

import "fmt"

// Disassembly is the decoded form of the instruction at the CPU's
// current PC, captured without advancing any state. It exists for the
// tracer; Step never calls it.
type Disassembly struct {
	PC       uint16
	Bytes    []uint8
	Mnemonic string
	Operand  string
}

// Disassemble decodes the instruction at PC for trace output. Unlike
// Step, it never writes to the bus or mutates the CPU; it only reads
// the bytes the real fetch would read.
func (c *CPU) Disassemble() Disassembly {
	op := c.read(c.PC)
	in := opTable[op]
	n := int(in.bytes)
	if n == 0 {
		n = 1
	}

	raw := make([]uint8, n)
	raw[0] = op
	for i := 1; i < n; i++ {
		raw[i] = c.read(c.PC + uint16(i))
	}

	return Disassembly{
		PC:       c.PC,
		Bytes:    raw,
		Mnemonic: in.name,
		Operand:  operandString(in.mode, raw, c.PC),
	}
}

// operandString renders the operand of the instruction bytes in raw,
// located at pc, in the canonical form the
// tracer expects: no resolved effective address, since that would
// require the live bus state the pure disassembler doesn't read.
func operandString(mode uint8, raw []uint8, pc uint16) string {
	switch mode {
	case modeImplicit:
		return ""
	case modeAccumulator:
		return "A"
	case modeImmediate:
		return fmt.Sprintf("#$%02X", raw[1])
	case modeZeroPage:
		return fmt.Sprintf("$%02X", raw[1])
	case modeZeroPageX:
		return fmt.Sprintf("$%02X,X", raw[1])
	case modeZeroPageY:
		return fmt.Sprintf("$%02X,Y", raw[1])
	case modeRelative:
		target := pc + uint16(len(raw)) + uint16(int8(raw[1]))
		return fmt.Sprintf("$%04X", target)
	case modeAbsolute:
		return fmt.Sprintf("$%04X", uint16(raw[1])|uint16(raw[2])<<8)
	case modeAbsoluteX:
		return fmt.Sprintf("$%04X,X", uint16(raw[1])|uint16(raw[2])<<8)
	case modeAbsoluteY:
		return fmt.Sprintf("$%04X,Y", uint16(raw[1])|uint16(raw[2])<<8)
	case modeIndirect:
		return fmt.Sprintf("($%04X)", uint16(raw[1])|uint16(raw[2])<<8)
	case modeIndirectX:
		return fmt.Sprintf("($%02X,X)", raw[1])
	case modeIndirectY:
		return fmt.Sprintf("($%02X),Y", raw[1])
	default:
		return ""
	}
}
