package mos6502

// instr describes one of the 256 opcode slots: its mnemonic (for the
// tracer), addressing mode, instruction length in bytes, base cycle
// cost, whether a crossed page adds a cycle, and the function that
// executes it. Dispatch is a flat array index, never reflection.
type instr struct {
	name         string
	mode         uint8
	bytes        uint8
	cycles       uint8
	extraOnCross bool
	fn           func(c *CPU, addr uint16, mode uint8)
}

var opTable [256]instr

func init() {
	for op, in := range opcodeDefs {
		opTable[op] = in
	}
}

var opcodeDefs = map[uint8]instr{
	0x69: {"ADC", modeImmediate, 2, 2, false, opADC},
	0x65: {"ADC", modeZeroPage, 2, 3, false, opADC},
	0x75: {"ADC", modeZeroPageX, 2, 4, false, opADC},
	0x6D: {"ADC", modeAbsolute, 3, 4, false, opADC},
	0x7D: {"ADC", modeAbsoluteX, 3, 4, true, opADC},
	0x79: {"ADC", modeAbsoluteY, 3, 4, true, opADC},
	0x61: {"ADC", modeIndirectX, 2, 6, false, opADC},
	0x71: {"ADC", modeIndirectY, 2, 5, true, opADC},

	0x29: {"AND", modeImmediate, 2, 2, false, opAND},
	0x25: {"AND", modeZeroPage, 2, 3, false, opAND},
	0x35: {"AND", modeZeroPageX, 2, 4, false, opAND},
	0x2D: {"AND", modeAbsolute, 3, 4, false, opAND},
	0x3D: {"AND", modeAbsoluteX, 3, 4, true, opAND},
	0x39: {"AND", modeAbsoluteY, 3, 4, true, opAND},
	0x21: {"AND", modeIndirectX, 2, 6, false, opAND},
	0x31: {"AND", modeIndirectY, 2, 5, true, opAND},

	0x0A: {"ASL", modeAccumulator, 1, 2, false, opASL},
	0x06: {"ASL", modeZeroPage, 2, 5, false, opASL},
	0x16: {"ASL", modeZeroPageX, 2, 6, false, opASL},
	0x0E: {"ASL", modeAbsolute, 3, 6, false, opASL},
	0x1E: {"ASL", modeAbsoluteX, 3, 7, false, opASL},

	0x90: {"BCC", modeRelative, 2, 2, false, opBCC},
	0xB0: {"BCS", modeRelative, 2, 2, false, opBCS},
	0xF0: {"BEQ", modeRelative, 2, 2, false, opBEQ},
	0x30: {"BMI", modeRelative, 2, 2, false, opBMI},
	0xD0: {"BNE", modeRelative, 2, 2, false, opBNE},
	0x10: {"BPL", modeRelative, 2, 2, false, opBPL},
	0x50: {"BVC", modeRelative, 2, 2, false, opBVC},
	0x70: {"BVS", modeRelative, 2, 2, false, opBVS},

	0x24: {"BIT", modeZeroPage, 2, 3, false, opBIT},
	0x2C: {"BIT", modeAbsolute, 3, 4, false, opBIT},

	0x00: {"BRK", modeImplicit, 2, 7, false, opBRK},

	0x18: {"CLC", modeImplicit, 1, 2, false, opCLC},
	0xD8: {"CLD", modeImplicit, 1, 2, false, opCLD},
	0x58: {"CLI", modeImplicit, 1, 2, false, opCLI},
	0xB8: {"CLV", modeImplicit, 1, 2, false, opCLV},

	0xC9: {"CMP", modeImmediate, 2, 2, false, opCMP},
	0xC5: {"CMP", modeZeroPage, 2, 3, false, opCMP},
	0xD5: {"CMP", modeZeroPageX, 2, 4, false, opCMP},
	0xCD: {"CMP", modeAbsolute, 3, 4, false, opCMP},
	0xDD: {"CMP", modeAbsoluteX, 3, 4, true, opCMP},
	0xD9: {"CMP", modeAbsoluteY, 3, 4, true, opCMP},
	0xC1: {"CMP", modeIndirectX, 2, 6, false, opCMP},
	0xD1: {"CMP", modeIndirectY, 2, 5, true, opCMP},

	0xE0: {"CPX", modeImmediate, 2, 2, false, opCPX},
	0xE4: {"CPX", modeZeroPage, 2, 3, false, opCPX},
	0xEC: {"CPX", modeAbsolute, 3, 4, false, opCPX},

	0xC0: {"CPY", modeImmediate, 2, 2, false, opCPY},
	0xC4: {"CPY", modeZeroPage, 2, 3, false, opCPY},
	0xCC: {"CPY", modeAbsolute, 3, 4, false, opCPY},

	0xC6: {"DEC", modeZeroPage, 2, 5, false, opDEC},
	0xD6: {"DEC", modeZeroPageX, 2, 6, false, opDEC},
	0xCE: {"DEC", modeAbsolute, 3, 6, false, opDEC},
	0xDE: {"DEC", modeAbsoluteX, 3, 7, false, opDEC},

	0xCA: {"DEX", modeImplicit, 1, 2, false, opDEX},
	0x88: {"DEY", modeImplicit, 1, 2, false, opDEY},

	0x49: {"EOR", modeImmediate, 2, 2, false, opEOR},
	0x45: {"EOR", modeZeroPage, 2, 3, false, opEOR},
	0x55: {"EOR", modeZeroPageX, 2, 4, false, opEOR},
	0x4D: {"EOR", modeAbsolute, 3, 4, false, opEOR},
	0x5D: {"EOR", modeAbsoluteX, 3, 4, true, opEOR},
	0x59: {"EOR", modeAbsoluteY, 3, 4, true, opEOR},
	0x41: {"EOR", modeIndirectX, 2, 6, false, opEOR},
	0x51: {"EOR", modeIndirectY, 2, 5, true, opEOR},

	0xE6: {"INC", modeZeroPage, 2, 5, false, opINC},
	0xF6: {"INC", modeZeroPageX, 2, 6, false, opINC},
	0xEE: {"INC", modeAbsolute, 3, 6, false, opINC},
	0xFE: {"INC", modeAbsoluteX, 3, 7, false, opINC},

	0xE8: {"INX", modeImplicit, 1, 2, false, opINX},
	0xC8: {"INY", modeImplicit, 1, 2, false, opINY},

	0x4C: {"JMP", modeAbsolute, 3, 3, false, opJMP},
	0x6C: {"JMP", modeIndirect, 3, 5, false, opJMP},
	0x20: {"JSR", modeAbsolute, 3, 6, false, opJSR},

	0xA9: {"LDA", modeImmediate, 2, 2, false, opLDA},
	0xA5: {"LDA", modeZeroPage, 2, 3, false, opLDA},
	0xB5: {"LDA", modeZeroPageX, 2, 4, false, opLDA},
	0xAD: {"LDA", modeAbsolute, 3, 4, false, opLDA},
	0xBD: {"LDA", modeAbsoluteX, 3, 4, true, opLDA},
	0xB9: {"LDA", modeAbsoluteY, 3, 4, true, opLDA},
	0xA1: {"LDA", modeIndirectX, 2, 6, false, opLDA},
	0xB1: {"LDA", modeIndirectY, 2, 5, true, opLDA},

	0xA2: {"LDX", modeImmediate, 2, 2, false, opLDX},
	0xA6: {"LDX", modeZeroPage, 2, 3, false, opLDX},
	0xB6: {"LDX", modeZeroPageY, 2, 4, false, opLDX},
	0xAE: {"LDX", modeAbsolute, 3, 4, false, opLDX},
	0xBE: {"LDX", modeAbsoluteY, 3, 4, true, opLDX},

	0xA0: {"LDY", modeImmediate, 2, 2, false, opLDY},
	0xA4: {"LDY", modeZeroPage, 2, 3, false, opLDY},
	0xB4: {"LDY", modeZeroPageX, 2, 4, false, opLDY},
	0xAC: {"LDY", modeAbsolute, 3, 4, false, opLDY},
	0xBC: {"LDY", modeAbsoluteX, 3, 4, true, opLDY},

	0x4A: {"LSR", modeAccumulator, 1, 2, false, opLSR},
	0x46: {"LSR", modeZeroPage, 2, 5, false, opLSR},
	0x56: {"LSR", modeZeroPageX, 2, 6, false, opLSR},
	0x4E: {"LSR", modeAbsolute, 3, 6, false, opLSR},
	0x5E: {"LSR", modeAbsoluteX, 3, 7, false, opLSR},

	0xEA: {"NOP", modeImplicit, 1, 2, false, opNOP},

	0x09: {"ORA", modeImmediate, 2, 2, false, opORA},
	0x05: {"ORA", modeZeroPage, 2, 3, false, opORA},
	0x15: {"ORA", modeZeroPageX, 2, 4, false, opORA},
	0x0D: {"ORA", modeAbsolute, 3, 4, false, opORA},
	0x1D: {"ORA", modeAbsoluteX, 3, 4, true, opORA},
	0x19: {"ORA", modeAbsoluteY, 3, 4, true, opORA},
	0x01: {"ORA", modeIndirectX, 2, 6, false, opORA},
	0x11: {"ORA", modeIndirectY, 2, 5, true, opORA},

	0x48: {"PHA", modeImplicit, 1, 3, false, opPHA},
	0x08: {"PHP", modeImplicit, 1, 3, false, opPHP},
	0x68: {"PLA", modeImplicit, 1, 4, false, opPLA},
	0x28: {"PLP", modeImplicit, 1, 4, false, opPLP},

	0x2A: {"ROL", modeAccumulator, 1, 2, false, opROL},
	0x26: {"ROL", modeZeroPage, 2, 5, false, opROL},
	0x36: {"ROL", modeZeroPageX, 2, 6, false, opROL},
	0x2E: {"ROL", modeAbsolute, 3, 6, false, opROL},
	0x3E: {"ROL", modeAbsoluteX, 3, 7, false, opROL},

	0x6A: {"ROR", modeAccumulator, 1, 2, false, opROR},
	0x66: {"ROR", modeZeroPage, 2, 5, false, opROR},
	0x76: {"ROR", modeZeroPageX, 2, 6, false, opROR},
	0x6E: {"ROR", modeAbsolute, 3, 6, false, opROR},
	0x7E: {"ROR", modeAbsoluteX, 3, 7, false, opROR},

	0x40: {"RTI", modeImplicit, 1, 6, false, opRTI},
	0x60: {"RTS", modeImplicit, 1, 6, false, opRTS},

	0xE9: {"SBC", modeImmediate, 2, 2, false, opSBC},
	0xEB: {"SBC", modeImmediate, 2, 2, false, opSBC}, // undocumented
	0xE5: {"SBC", modeZeroPage, 2, 3, false, opSBC},
	0xF5: {"SBC", modeZeroPageX, 2, 4, false, opSBC},
	0xED: {"SBC", modeAbsolute, 3, 4, false, opSBC},
	0xFD: {"SBC", modeAbsoluteX, 3, 4, true, opSBC},
	0xF9: {"SBC", modeAbsoluteY, 3, 4, true, opSBC},
	0xE1: {"SBC", modeIndirectX, 2, 6, false, opSBC},
	0xF1: {"SBC", modeIndirectY, 2, 5, true, opSBC},

	0x38: {"SEC", modeImplicit, 1, 2, false, opSEC},
	0xF8: {"SED", modeImplicit, 1, 2, false, opSED},
	0x78: {"SEI", modeImplicit, 1, 2, false, opSEI},

	0x85: {"STA", modeZeroPage, 2, 3, false, opSTA},
	0x95: {"STA", modeZeroPageX, 2, 4, false, opSTA},
	0x8D: {"STA", modeAbsolute, 3, 4, false, opSTA},
	0x9D: {"STA", modeAbsoluteX, 3, 5, false, opSTA},
	0x99: {"STA", modeAbsoluteY, 3, 5, false, opSTA},
	0x81: {"STA", modeIndirectX, 2, 6, false, opSTA},
	0x91: {"STA", modeIndirectY, 2, 6, false, opSTA},

	0x86: {"STX", modeZeroPage, 2, 3, false, opSTX},
	0x96: {"STX", modeZeroPageY, 2, 4, false, opSTX},
	0x8E: {"STX", modeAbsolute, 3, 4, false, opSTX},

	0x84: {"STY", modeZeroPage, 2, 3, false, opSTY},
	0x94: {"STY", modeZeroPageX, 2, 4, false, opSTY},
	0x8C: {"STY", modeAbsolute, 3, 4, false, opSTY},

	0xAA: {"TAX", modeImplicit, 1, 2, false, opTAX},
	0xA8: {"TAY", modeImplicit, 1, 2, false, opTAY},
	0xBA: {"TSX", modeImplicit, 1, 2, false, opTSX},
	0x8A: {"TXA", modeImplicit, 1, 2, false, opTXA},
	0x9A: {"TXS", modeImplicit, 1, 2, false, opTXS},
	0x98: {"TYA", modeImplicit, 1, 2, false, opTYA},

	// Unofficial opcodes. Combinations of an official read-modify-write
	// and a second official operation on the same fetched value;
	// see https://www.nesdev.org/undocumented_opcodes.txt.
	0xA7: {"LAX", modeZeroPage, 2, 3, false, opLAX},
	0xB7: {"LAX", modeZeroPageY, 2, 4, false, opLAX},
	0xAF: {"LAX", modeAbsolute, 3, 4, false, opLAX},
	0xBF: {"LAX", modeAbsoluteY, 3, 4, true, opLAX},
	0xA3: {"LAX", modeIndirectX, 2, 6, false, opLAX},
	0xB3: {"LAX", modeIndirectY, 2, 5, true, opLAX},

	0x87: {"SAX", modeZeroPage, 2, 3, false, opSAX},
	0x97: {"SAX", modeZeroPageY, 2, 4, false, opSAX},
	0x8F: {"SAX", modeAbsolute, 3, 4, false, opSAX},
	0x83: {"SAX", modeIndirectX, 2, 6, false, opSAX},

	0xC7: {"DCP", modeZeroPage, 2, 5, false, opDCP},
	0xD7: {"DCP", modeZeroPageX, 2, 6, false, opDCP},
	0xCF: {"DCP", modeAbsolute, 3, 6, false, opDCP},
	0xDF: {"DCP", modeAbsoluteX, 3, 7, false, opDCP},
	0xDB: {"DCP", modeAbsoluteY, 3, 7, false, opDCP},
	0xC3: {"DCP", modeIndirectX, 2, 8, false, opDCP},
	0xD3: {"DCP", modeIndirectY, 2, 8, false, opDCP},

	0xE7: {"ISB", modeZeroPage, 2, 5, false, opISB},
	0xF7: {"ISB", modeZeroPageX, 2, 6, false, opISB},
	0xEF: {"ISB", modeAbsolute, 3, 6, false, opISB},
	0xFF: {"ISB", modeAbsoluteX, 3, 7, false, opISB},
	0xFB: {"ISB", modeAbsoluteY, 3, 7, false, opISB},
	0xE3: {"ISB", modeIndirectX, 2, 8, false, opISB},
	0xF3: {"ISB", modeIndirectY, 2, 8, false, opISB},

	0x07: {"SLO", modeZeroPage, 2, 5, false, opSLO},
	0x17: {"SLO", modeZeroPageX, 2, 6, false, opSLO},
	0x0F: {"SLO", modeAbsolute, 3, 6, false, opSLO},
	0x1F: {"SLO", modeAbsoluteX, 3, 7, false, opSLO},
	0x1B: {"SLO", modeAbsoluteY, 3, 7, false, opSLO},
	0x03: {"SLO", modeIndirectX, 2, 8, false, opSLO},
	0x13: {"SLO", modeIndirectY, 2, 8, false, opSLO},

	0x27: {"RLA", modeZeroPage, 2, 5, false, opRLA},
	0x37: {"RLA", modeZeroPageX, 2, 6, false, opRLA},
	0x2F: {"RLA", modeAbsolute, 3, 6, false, opRLA},
	0x3F: {"RLA", modeAbsoluteX, 3, 7, false, opRLA},
	0x3B: {"RLA", modeAbsoluteY, 3, 7, false, opRLA},
	0x23: {"RLA", modeIndirectX, 2, 8, false, opRLA},
	0x33: {"RLA", modeIndirectY, 2, 8, false, opRLA},

	0x47: {"SRE", modeZeroPage, 2, 5, false, opSRE},
	0x57: {"SRE", modeZeroPageX, 2, 6, false, opSRE},
	0x4F: {"SRE", modeAbsolute, 3, 6, false, opSRE},
	0x5F: {"SRE", modeAbsoluteX, 3, 7, false, opSRE},
	0x5B: {"SRE", modeAbsoluteY, 3, 7, false, opSRE},
	0x43: {"SRE", modeIndirectX, 2, 8, false, opSRE},
	0x53: {"SRE", modeIndirectY, 2, 8, false, opSRE},

	0x67: {"RRA", modeZeroPage, 2, 5, false, opRRA},
	0x77: {"RRA", modeZeroPageX, 2, 6, false, opRRA},
	0x6F: {"RRA", modeAbsolute, 3, 6, false, opRRA},
	0x7F: {"RRA", modeAbsoluteX, 3, 7, false, opRRA},
	0x7B: {"RRA", modeAbsoluteY, 3, 7, false, opRRA},
	0x63: {"RRA", modeIndirectX, 2, 8, false, opRRA},
	0x73: {"RRA", modeIndirectY, 2, 8, false, opRRA},

	0x0B: {"ANC", modeImmediate, 2, 2, false, opANC},
	0x2B: {"ANC", modeImmediate, 2, 2, false, opANC},
	0x4B: {"ALR", modeImmediate, 2, 2, false, opALR},
	0x6B: {"ARR", modeImmediate, 2, 2, false, opARR},
	0xCB: {"AXS", modeImmediate, 2, 2, false, opAXS},

	// Highly unstable on real silicon; implemented best-effort since
	// no cartridge in scope relies on their exact behavior.
	0xAB: {"LXA", modeImmediate, 2, 2, false, opLXA},
	0x8B: {"XAA", modeImmediate, 2, 2, false, opXAA},
	0xBB: {"LAS", modeAbsoluteY, 3, 4, true, opLAS},
	0x9B: {"TAS", modeAbsoluteY, 3, 5, false, opTAS},
	0x9F: {"AHX", modeAbsoluteY, 3, 5, false, opAHX},
	0x93: {"AHX", modeIndirectY, 2, 6, false, opAHX},
	0x9E: {"SHX", modeAbsoluteY, 3, 5, false, opSHX},
	0x9C: {"SHY", modeAbsoluteX, 3, 5, false, opSHY},

	// NOP variants: the addressing mode still fetches/discards
	// operand bytes, so the dummy read happens naturally and the
	// body does nothing.
	0x1A: {"NOP", modeImplicit, 1, 2, false, opNOP},
	0x3A: {"NOP", modeImplicit, 1, 2, false, opNOP},
	0x5A: {"NOP", modeImplicit, 1, 2, false, opNOP},
	0x7A: {"NOP", modeImplicit, 1, 2, false, opNOP},
	0xDA: {"NOP", modeImplicit, 1, 2, false, opNOP},
	0xFA: {"NOP", modeImplicit, 1, 2, false, opNOP},
	0x80: {"NOP", modeImmediate, 2, 2, false, opNOP},
	0x82: {"NOP", modeImmediate, 2, 2, false, opNOP},
	0x89: {"NOP", modeImmediate, 2, 2, false, opNOP},
	0xC2: {"NOP", modeImmediate, 2, 2, false, opNOP},
	0xE2: {"NOP", modeImmediate, 2, 2, false, opNOP},
	0x04: {"NOP", modeZeroPage, 2, 3, false, opNOP},
	0x44: {"NOP", modeZeroPage, 2, 3, false, opNOP},
	0x64: {"NOP", modeZeroPage, 2, 3, false, opNOP},
	0x14: {"NOP", modeZeroPageX, 2, 4, false, opNOP},
	0x34: {"NOP", modeZeroPageX, 2, 4, false, opNOP},
	0x54: {"NOP", modeZeroPageX, 2, 4, false, opNOP},
	0x74: {"NOP", modeZeroPageX, 2, 4, false, opNOP},
	0xD4: {"NOP", modeZeroPageX, 2, 4, false, opNOP},
	0xF4: {"NOP", modeZeroPageX, 2, 4, false, opNOP},
	0x0C: {"NOP", modeAbsolute, 3, 4, false, opNOP},
	0x1C: {"NOP", modeAbsoluteX, 3, 4, true, opNOP},
	0x3C: {"NOP", modeAbsoluteX, 3, 4, true, opNOP},
	0x5C: {"NOP", modeAbsoluteX, 3, 4, true, opNOP},
	0x7C: {"NOP", modeAbsoluteX, 3, 4, true, opNOP},
	0xDC: {"NOP", modeAbsoluteX, 3, 4, true, opNOP},
	0xFC: {"NOP", modeAbsoluteX, 3, 4, true, opNOP},
}

func opADC(c *CPU, addr uint16, _ uint8) { c.addWithCarry(c.read(addr)) }
func opAND(c *CPU, addr uint16, _ uint8) { c.A &= c.read(addr); c.setZN(c.A) }

func opASL(c *CPU, addr uint16, mode uint8) {
	if mode == modeAccumulator {
		carry := c.A&0x80 != 0
		c.A <<= 1
		c.setFlag(FlagCarry, carry)
		c.setZN(c.A)
		return
	}
	v := c.read(addr)
	carry := v&0x80 != 0
	v <<= 1
	c.write(addr, v)
	c.setFlag(FlagCarry, carry)
	c.setZN(v)
}

func opBCC(c *CPU, _ uint16, _ uint8) { c.branch(FlagCarry, false) }
func opBCS(c *CPU, _ uint16, _ uint8) { c.branch(FlagCarry, true) }
func opBEQ(c *CPU, _ uint16, _ uint8) { c.branch(FlagZero, true) }
func opBMI(c *CPU, _ uint16, _ uint8) { c.branch(FlagNegative, true) }
func opBNE(c *CPU, _ uint16, _ uint8) { c.branch(FlagZero, false) }
func opBPL(c *CPU, _ uint16, _ uint8) { c.branch(FlagNegative, false) }
func opBVC(c *CPU, _ uint16, _ uint8) { c.branch(FlagOverflow, false) }
func opBVS(c *CPU, _ uint16, _ uint8) { c.branch(FlagOverflow, true) }

func opBIT(c *CPU, addr uint16, _ uint8) {
	v := c.read(addr)
	c.setFlag(FlagZero, v&c.A == 0)
	c.P = c.P&^(FlagNegative|FlagOverflow) | (v & (FlagNegative | FlagOverflow))
}

func opBRK(c *CPU, _ uint16, _ uint8) {
	c.pushAddr(c.PC + 1)
	c.push(c.P | FlagBreak | FlagUnused)
	c.P |= FlagInterrupt
	c.PC = c.read16(vectorBRK)
}

func opCLC(c *CPU, _ uint16, _ uint8) { c.setFlag(FlagCarry, false) }
func opCLD(c *CPU, _ uint16, _ uint8) { c.setFlag(FlagDecimal, false) }
func opCLI(c *CPU, _ uint16, _ uint8) { c.setFlag(FlagInterrupt, false) }
func opCLV(c *CPU, _ uint16, _ uint8) { c.setFlag(FlagOverflow, false) }

func opCMP(c *CPU, addr uint16, _ uint8) { c.compare(c.A, c.read(addr)) }
func opCPX(c *CPU, addr uint16, _ uint8) { c.compare(c.X, c.read(addr)) }
func opCPY(c *CPU, addr uint16, _ uint8) { c.compare(c.Y, c.read(addr)) }

func opDEC(c *CPU, addr uint16, _ uint8) {
	v := c.read(addr) - 1
	c.write(addr, v)
	c.setZN(v)
}
func opDEX(c *CPU, _ uint16, _ uint8) { c.X--; c.setZN(c.X) }
func opDEY(c *CPU, _ uint16, _ uint8) { c.Y--; c.setZN(c.Y) }

func opEOR(c *CPU, addr uint16, _ uint8) { c.A ^= c.read(addr); c.setZN(c.A) }

func opINC(c *CPU, addr uint16, _ uint8) {
	v := c.read(addr) + 1
	c.write(addr, v)
	c.setZN(v)
}
func opINX(c *CPU, _ uint16, _ uint8) { c.X++; c.setZN(c.X) }
func opINY(c *CPU, _ uint16, _ uint8) { c.Y++; c.setZN(c.Y) }

func opJMP(c *CPU, addr uint16, _ uint8) { c.PC = addr }
func opJSR(c *CPU, addr uint16, _ uint8) {
	c.pushAddr(c.PC + 1)
	c.PC = addr
}

func opLDA(c *CPU, addr uint16, _ uint8) { c.A = c.read(addr); c.setZN(c.A) }
func opLDX(c *CPU, addr uint16, _ uint8) { c.X = c.read(addr); c.setZN(c.X) }
func opLDY(c *CPU, addr uint16, _ uint8) { c.Y = c.read(addr); c.setZN(c.Y) }

func opLSR(c *CPU, addr uint16, mode uint8) {
	if mode == modeAccumulator {
		carry := c.A&0x01 != 0
		c.A >>= 1
		c.setFlag(FlagCarry, carry)
		c.setZN(c.A)
		return
	}
	v := c.read(addr)
	carry := v&0x01 != 0
	v >>= 1
	c.write(addr, v)
	c.setFlag(FlagCarry, carry)
	c.setZN(v)
}

func opNOP(c *CPU, _ uint16, _ uint8) {}

func opORA(c *CPU, addr uint16, _ uint8) { c.A |= c.read(addr); c.setZN(c.A) }

func opPHA(c *CPU, _ uint16, _ uint8) { c.push(c.A) }
func opPHP(c *CPU, _ uint16, _ uint8) { c.push(c.P | FlagBreak | FlagUnused) }
func opPLA(c *CPU, _ uint16, _ uint8) { c.A = c.pop(); c.setZN(c.A) }
func opPLP(c *CPU, _ uint16, _ uint8) { c.P = c.pop()&^FlagBreak | FlagUnused }

func opROL(c *CPU, addr uint16, mode uint8) {
	var carryIn uint8
	if c.P&FlagCarry != 0 {
		carryIn = 1
	}
	if mode == modeAccumulator {
		carryOut := c.A&0x80 != 0
		c.A = c.A<<1 | carryIn
		c.setFlag(FlagCarry, carryOut)
		c.setZN(c.A)
		return
	}
	v := c.read(addr)
	carryOut := v&0x80 != 0
	v = v<<1 | carryIn
	c.write(addr, v)
	c.setFlag(FlagCarry, carryOut)
	c.setZN(v)
}

func opROR(c *CPU, addr uint16, mode uint8) {
	var carryIn uint8
	if c.P&FlagCarry != 0 {
		carryIn = 1
	}
	if mode == modeAccumulator {
		carryOut := c.A&0x01 != 0
		c.A = c.A>>1 | carryIn<<7
		c.setFlag(FlagCarry, carryOut)
		c.setZN(c.A)
		return
	}
	v := c.read(addr)
	carryOut := v&0x01 != 0
	v = v>>1 | carryIn<<7
	c.write(addr, v)
	c.setFlag(FlagCarry, carryOut)
	c.setZN(v)
}

func opRTI(c *CPU, _ uint16, _ uint8) {
	c.P = c.pop()&^FlagBreak | FlagUnused
	c.PC = c.popAddr()
}
func opRTS(c *CPU, _ uint16, _ uint8) { c.PC = c.popAddr() + 1 }

func opSBC(c *CPU, addr uint16, _ uint8) { c.addWithCarry(^c.read(addr)) }

func opSEC(c *CPU, _ uint16, _ uint8) { c.setFlag(FlagCarry, true) }
func opSED(c *CPU, _ uint16, _ uint8) { c.setFlag(FlagDecimal, true) }
func opSEI(c *CPU, _ uint16, _ uint8) { c.setFlag(FlagInterrupt, true) }

func opSTA(c *CPU, addr uint16, _ uint8) { c.write(addr, c.A) }
func opSTX(c *CPU, addr uint16, _ uint8) { c.write(addr, c.X) }
func opSTY(c *CPU, addr uint16, _ uint8) { c.write(addr, c.Y) }

func opTAX(c *CPU, _ uint16, _ uint8) { c.X = c.A; c.setZN(c.X) }
func opTAY(c *CPU, _ uint16, _ uint8) { c.Y = c.A; c.setZN(c.Y) }
func opTSX(c *CPU, _ uint16, _ uint8) { c.X = c.SP; c.setZN(c.X) }
func opTXA(c *CPU, _ uint16, _ uint8) { c.A = c.X; c.setZN(c.A) }
func opTXS(c *CPU, _ uint16, _ uint8) { c.SP = c.X }
func opTYA(c *CPU, _ uint16, _ uint8) { c.A = c.Y; c.setZN(c.A) }

func opLAX(c *CPU, addr uint16, _ uint8) {
	v := c.read(addr)
	c.A, c.X = v, v
	c.setZN(v)
}

func opSAX(c *CPU, addr uint16, _ uint8) { c.write(addr, c.A&c.X) }

func opDCP(c *CPU, addr uint16, _ uint8) {
	v := c.read(addr) - 1
	c.write(addr, v)
	c.compare(c.A, v)
}

func opISB(c *CPU, addr uint16, _ uint8) {
	v := c.read(addr) + 1
	c.write(addr, v)
	c.addWithCarry(^v)
}

func opSLO(c *CPU, addr uint16, _ uint8) {
	v := c.read(addr)
	carry := v&0x80 != 0
	v <<= 1
	c.write(addr, v)
	c.setFlag(FlagCarry, carry)
	c.A |= v
	c.setZN(c.A)
}

func opRLA(c *CPU, addr uint16, _ uint8) {
	var carryIn uint8
	if c.P&FlagCarry != 0 {
		carryIn = 1
	}
	v := c.read(addr)
	carryOut := v&0x80 != 0
	v = v<<1 | carryIn
	c.write(addr, v)
	c.setFlag(FlagCarry, carryOut)
	c.A &= v
	c.setZN(c.A)
}

func opSRE(c *CPU, addr uint16, _ uint8) {
	v := c.read(addr)
	carry := v&0x01 != 0
	v >>= 1
	c.write(addr, v)
	c.setFlag(FlagCarry, carry)
	c.A ^= v
	c.setZN(c.A)
}

func opRRA(c *CPU, addr uint16, _ uint8) {
	var carryIn uint8
	if c.P&FlagCarry != 0 {
		carryIn = 1
	}
	v := c.read(addr)
	carryOut := v&0x01 != 0
	v = v>>1 | carryIn<<7
	c.write(addr, v)
	c.setFlag(FlagCarry, carryOut)
	c.addWithCarry(v)
}

func opANC(c *CPU, addr uint16, _ uint8) {
	c.A &= c.read(addr)
	c.setZN(c.A)
	c.setFlag(FlagCarry, c.A&0x80 != 0)
}

func opALR(c *CPU, addr uint16, _ uint8) {
	c.A &= c.read(addr)
	carry := c.A&0x01 != 0
	c.A >>= 1
	c.setFlag(FlagCarry, carry)
	c.setZN(c.A)
}

func opARR(c *CPU, addr uint16, _ uint8) {
	c.A &= c.read(addr)
	var carryIn uint8
	if c.P&FlagCarry != 0 {
		carryIn = 1
	}
	c.A = c.A>>1 | carryIn<<7
	c.setZN(c.A)
	bit6 := c.A>>6&1 != 0
	bit5 := c.A>>5&1 != 0
	c.setFlag(FlagCarry, bit6)
	c.setFlag(FlagOverflow, bit6 != bit5)
}

func opAXS(c *CPU, addr uint16, _ uint8) {
	v := c.read(addr)
	and := c.A & c.X
	c.setFlag(FlagCarry, and >= v)
	c.X = and - v
	c.setZN(c.X)
}

// opLXA, opXAA, opLAS, opTAS, opAHX, opSHX and opSHY implement
// unofficial opcodes whose real-hardware behavior depends on bus
// capacitance and varies between chip revisions. These best-effort
// versions follow the commonly-documented approximation rather than
// any one chip's quirks.
func opLXA(c *CPU, addr uint16, _ uint8) {
	v := c.read(addr)
	c.A &= v
	c.X = c.A
	c.setZN(c.A)
}

func opXAA(c *CPU, addr uint16, _ uint8) {
	c.A = c.X & c.read(addr)
	c.setZN(c.A)
}

func opLAS(c *CPU, addr uint16, _ uint8) {
	v := c.read(addr) & c.SP
	c.A, c.X, c.SP = v, v, v
	c.setZN(v)
}

func opTAS(c *CPU, addr uint16, _ uint8) {
	c.SP = c.A & c.X
	c.write(addr, c.SP&(uint8(addr>>8)+1))
}

func opAHX(c *CPU, addr uint16, _ uint8) {
	c.write(addr, c.A&c.X&(uint8(addr>>8)+1))
}

func opSHX(c *CPU, addr uint16, _ uint8) {
	c.write(addr, c.X&(uint8(addr>>8)+1))
}

func opSHY(c *CPU, addr uint16, _ uint8) {
	c.write(addr, c.Y&(uint8(addr>>8)+1))
}
