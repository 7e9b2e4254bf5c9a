// Package trace formats one nestest-log-compatible line per
// instruction, from a CPU disassembly and register snapshot plus the
// PPU's current scanline/dot. It touches no emulator state; Format is
// a pure function of its arguments, so it can be unit tested without
// a running console and is reused by nes.Console.Trace, which backs
// the CLI's --trace flag.
package trace

import (
	"fmt"
	"strings"

	"github.com/bdwalton/nesbox/mos6502"
)

// columnA is where "A:" begins in the formatted line, matching the
// Nintendulator nestest.log layout.
const columnA = 48

// Format renders one trace line for the instruction d is about to
// execute, with the register state and PPU position snap/scanline/dot
// as they stand immediately before that instruction runs.
func Format(d mos6502.Disassembly, snap mos6502.Snapshot, scanline, dot int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%04X  ", d.PC)
	for i := 0; i < 3; i++ {
		if i < len(d.Bytes) {
			fmt.Fprintf(&b, "%02X ", d.Bytes[i])
		} else {
			b.WriteString("   ")
		}
	}
	b.WriteByte(' ')

	instr := d.Mnemonic
	if d.Operand != "" {
		instr += " " + d.Operand
	}
	b.WriteString(instr)

	for b.Len() < columnA {
		b.WriteByte(' ')
	}

	fmt.Fprintf(&b, "A:%02X X:%02X Y:%02X P:%02X SP:%02X PPU:%3d,%3d CYC:%d",
		snap.A, snap.X, snap.Y, snap.P, snap.SP, scanline, dot, snap.Cycle)

	return b.String()
}
