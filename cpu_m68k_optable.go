// cpu_m68k_optable.go - 68000 instruction descriptors and the 64K dispatch table

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
Buy me a coffee: https://ko-fi.com/intuition/tip

License: GPLv3 or later
*/

/*
cpu_m68k_optable.go - 68000 instruction descriptors and the 64K dispatch table

Every instruction is described once by a mask/match pair, the addressing
modes it accepts and its handler. buildM68KOpTable expands the descriptors
into a flat 65536 entry table so decode is a single index. Slots no
descriptor claims fall through to the illegal instruction handler, apart from
the $Axxx and $Fxxx lines which have their own traps.
*/

package main

import (
	"fmt"
	"math/bits"
	"sync"
)

// Addressing mode sets, one bit per M68K_AM_* index.
const (
	m68kEADn   = 1 << M68K_AM_DR
	m68kEAAn   = 1 << M68K_AM_AR
	m68kEAAI   = 1 << M68K_AM_AR_IND
	m68kEAPI   = 1 << M68K_AM_AR_POST
	m68kEAPD   = 1 << M68K_AM_AR_PRE
	m68kEADI   = 1 << M68K_AM_AR_DISP
	m68kEAIX   = 1 << M68K_AM_AR_INDEX
	m68kEAAW   = 1 << M68K_AM_ABS_SHORT
	m68kEAAL   = 1 << M68K_AM_ABS_LONG
	m68kEAPCDI = 1 << M68K_AM_PC_DISP
	m68kEAPCIX = 1 << M68K_AM_PC_INDEX
	m68kEAIMM  = 1 << M68K_AM_IMM

	m68kEAAll        = 0x0FFF
	m68kEAData       = m68kEAAll &^ m68kEAAn
	m68kEAMemory     = m68kEAAll &^ (m68kEADn | m68kEAAn)
	m68kEAControl    = m68kEAAI | m68kEADI | m68kEAIX | m68kEAAW | m68kEAAL | m68kEAPCDI | m68kEAPCIX
	m68kEAAlterable  = m68kEADn | m68kEAAn | m68kEAAI | m68kEAPI | m68kEAPD | m68kEADI | m68kEAIX | m68kEAAW | m68kEAAL
	m68kEADataAlt    = m68kEAAlterable &^ m68kEAAn
	m68kEAMemAlt     = m68kEAAlterable &^ (m68kEADn | m68kEAAn)
	m68kEAControlAlt = m68kEAControl & m68kEAAlterable
)

type m68kHandler func(cpu *M68KCPU, opcode uint16)

// m68kInstr describes one instruction encoding.
type m68kInstr struct {
	name    string
	mask    uint16
	match   uint16
	ea      uint16 // legal modes of the EA in bits 5-0, 0 when the field is not an EA
	dstEA   uint16 // legal modes of the MOVE destination in bits 11-6
	cycles  uint8  // base cycles, handlers add operand dependent time
	handler m68kHandler
}

type m68kOpEntry struct {
	handler m68kHandler
	cycles  uint8
	instr   int16 // index into m68kInstrs, -1 for the fallback traps
}

// m68kOpConflict reports an opcode claimed by two descriptors.
type m68kOpConflict struct {
	Opcode uint16
	First  string
	Second string
}

func (c m68kOpConflict) String() string {
	return fmt.Sprintf("$%04X claimed by %s and %s", c.Opcode, c.First, c.Second)
}

var (
	m68kOpTable     [65536]m68kOpEntry
	m68kInstrs      []m68kInstr
	m68kOpTableOnce sync.Once
)

func m68kInitOpTable() {
	m68kOpTableOnce.Do(func() {
		m68kInstrs = m68kInstructionSet()
		if conflicts := buildM68KOpTable(&m68kOpTable, m68kInstrs); len(conflicts) > 0 {
			panic(fmt.Sprintf("M68K: opcode table has %d overlapping slots, first %s", len(conflicts), conflicts[0]))
		}
	})
}

// M68KInstructionName returns the mnemonic the table decodes opcode to.
func M68KInstructionName(opcode uint16) string {
	m68kInitOpTable()
	idx := m68kOpTable[opcode].instr
	if idx < 0 {
		switch opcode >> 12 {
		case 0xA:
			return "LINEA"
		case 0xF:
			return "LINEF"
		}
		return "ILLEGAL"
	}
	return m68kInstrs[idx].name
}

// buildM68KOpTable fills table from the descriptors and returns every slot
// that two descriptors both claimed.
func buildM68KOpTable(table *[65536]m68kOpEntry, set []m68kInstr) []m68kOpConflict {
	for i := range table {
		op := uint16(i)
		entry := m68kOpEntry{handler: (*M68KCPU).ExecIllegal, instr: -1}
		switch op >> 12 {
		case 0xA:
			entry.handler = (*M68KCPU).ExecLineA
		case 0xF:
			entry.handler = (*M68KCPU).ExecLineF
		}
		table[i] = entry
	}

	var conflicts []m68kOpConflict
	for idx := range set {
		d := &set[idx]
		free := ^d.mask
		sub := free
		for {
			op := d.match | sub
			if d.accepts(op) {
				if prev := table[op].instr; prev >= 0 {
					conflicts = append(conflicts, m68kOpConflict{Opcode: op, First: set[prev].name, Second: d.name})
				} else {
					table[op] = m68kOpEntry{handler: d.handler, cycles: d.cycles, instr: int16(idx)}
				}
			}
			if sub == 0 {
				break
			}
			sub = (sub - 1) & free
		}
	}
	return conflicts
}

func (d *m68kInstr) accepts(op uint16) bool {
	if op&d.mask != d.match {
		return false
	}
	if d.ea != 0 {
		idx := m68kEAIndex((op>>3)&7, op&7)
		if idx == M68K_AM_INVALID || d.ea&(1<<idx) == 0 {
			return false
		}
	}
	if d.dstEA != 0 {
		idx := m68kEAIndex((op>>6)&7, (op>>9)&7)
		if idx == M68K_AM_INVALID || d.dstEA&(1<<idx) == 0 {
			return false
		}
	}
	return true
}

// m68kOpTableCoverage counts the opcodes that decode to a real instruction.
func m68kOpTableCoverage() int {
	m68kInitOpTable()
	n := 0
	for i := range m68kOpTable {
		if m68kOpTable[i].instr >= 0 {
			n++
		}
	}
	return n
}

var m68kSizeSuffix = [3]string{".B", ".W", ".L"}

// m68kInstructionSet lists the 68000 instruction encodings.
func m68kInstructionSet() []m68kInstr {
	var set []m68kInstr
	add := func(name string, mask, match, ea uint16, cycles uint8, h m68kHandler) {
		set = append(set, m68kInstr{name: name, mask: mask, match: match, ea: ea, cycles: cycles, handler: h})
	}
	// sized adds one descriptor per size for encodings with the size in bits 7-6.
	// Byte operations never accept An.
	sized := func(name string, mask, match, ea uint16, cycles uint8, h m68kHandler) {
		for size := uint16(0); size < 3; size++ {
			modes := ea
			if size == M68K_SIZE_BYTE {
				modes &^= m68kEAAn
			}
			add(name+m68kSizeSuffix[size], mask|0x00C0, match|size<<6, modes, cycles, h)
		}
	}

	// Group 0: immediates, bit operations, MOVEP
	sized("ORI", 0xFF00, 0x0000, m68kEADataAlt, 8, (*M68KCPU).ExecOri)
	sized("ANDI", 0xFF00, 0x0200, m68kEADataAlt, 8, (*M68KCPU).ExecAndi)
	sized("SUBI", 0xFF00, 0x0400, m68kEADataAlt, 8, (*M68KCPU).ExecSubi)
	sized("ADDI", 0xFF00, 0x0600, m68kEADataAlt, 8, (*M68KCPU).ExecAddi)
	sized("EORI", 0xFF00, 0x0A00, m68kEADataAlt, 8, (*M68KCPU).ExecEori)
	sized("CMPI", 0xFF00, 0x0C00, m68kEADataAlt, 8, (*M68KCPU).ExecCmpi)
	add("ORI to CCR", 0xFFFF, 0x003C, 0, 20, (*M68KCPU).ExecOriCCR)
	add("ORI to SR", 0xFFFF, 0x007C, 0, 20, (*M68KCPU).ExecOriSR)
	add("ANDI to CCR", 0xFFFF, 0x023C, 0, 20, (*M68KCPU).ExecAndiCCR)
	add("ANDI to SR", 0xFFFF, 0x027C, 0, 20, (*M68KCPU).ExecAndiSR)
	add("EORI to CCR", 0xFFFF, 0x0A3C, 0, 20, (*M68KCPU).ExecEoriCCR)
	add("EORI to SR", 0xFFFF, 0x0A7C, 0, 20, (*M68KCPU).ExecEoriSR)

	add("BTST", 0xF1C0, 0x0100, m68kEAData, 4, (*M68KCPU).ExecBitDynamic)
	add("BCHG", 0xF1C0, 0x0140, m68kEADataAlt, 4, (*M68KCPU).ExecBitDynamic)
	add("BCLR", 0xF1C0, 0x0180, m68kEADataAlt, 4, (*M68KCPU).ExecBitDynamic)
	add("BSET", 0xF1C0, 0x01C0, m68kEADataAlt, 4, (*M68KCPU).ExecBitDynamic)
	add("BTST", 0xFFC0, 0x0800, m68kEAData&^m68kEAIMM, 8, (*M68KCPU).ExecBitStatic)
	add("BCHG", 0xFFC0, 0x0840, m68kEADataAlt, 8, (*M68KCPU).ExecBitStatic)
	add("BCLR", 0xFFC0, 0x0880, m68kEADataAlt, 8, (*M68KCPU).ExecBitStatic)
	add("BSET", 0xFFC0, 0x08C0, m68kEADataAlt, 8, (*M68KCPU).ExecBitStatic)
	add("MOVEP", 0xF138, 0x0108, 0, 16, (*M68KCPU).ExecMovep)

	// Groups 1-3: MOVE and MOVEA. The source of a byte move cannot be An.
	for _, m := range []struct {
		size  int
		match uint16
	}{{M68K_SIZE_BYTE, 0x1000}, {M68K_SIZE_LONG, 0x2000}, {M68K_SIZE_WORD, 0x3000}} {
		src := uint16(m68kEAAll)
		if m.size == M68K_SIZE_BYTE {
			src &^= m68kEAAn
		}
		set = append(set, m68kInstr{name: "MOVE" + m68kSizeSuffix[m.size], mask: 0xF000, match: m.match,
			ea: src, dstEA: m68kEADataAlt, cycles: 4, handler: (*M68KCPU).ExecMove})
		if m.size != M68K_SIZE_BYTE {
			add("MOVEA"+m68kSizeSuffix[m.size], 0xF1C0, m.match|0x0040, m68kEAAll, 4, (*M68KCPU).ExecMovea)
		}
	}

	// Group 4: miscellaneous
	sized("NEGX", 0xFF00, 0x4000, m68kEADataAlt, 4, (*M68KCPU).ExecNegx)
	add("MOVE from SR", 0xFFC0, 0x40C0, m68kEADataAlt, 6, (*M68KCPU).ExecMoveFromSR)
	add("CHK", 0xF1C0, 0x4180, m68kEAData, 10, (*M68KCPU).ExecChk)
	add("LEA", 0xF1C0, 0x41C0, m68kEAControl, 4, (*M68KCPU).ExecLea)
	sized("CLR", 0xFF00, 0x4200, m68kEADataAlt, 4, (*M68KCPU).ExecClr)
	sized("NEG", 0xFF00, 0x4400, m68kEADataAlt, 4, (*M68KCPU).ExecNeg)
	add("MOVE to CCR", 0xFFC0, 0x44C0, m68kEAData, 12, (*M68KCPU).ExecMoveToCCR)
	sized("NOT", 0xFF00, 0x4600, m68kEADataAlt, 4, (*M68KCPU).ExecNot)
	add("MOVE to SR", 0xFFC0, 0x46C0, m68kEAData, 12, (*M68KCPU).ExecMoveToSR)
	add("NBCD", 0xFFC0, 0x4800, m68kEADataAlt, 6, (*M68KCPU).ExecNbcd)
	add("SWAP", 0xFFF8, 0x4840, 0, 4, (*M68KCPU).ExecSwap)
	add("PEA", 0xFFC0, 0x4840, m68kEAControl, 12, (*M68KCPU).ExecPea)
	add("EXT.W", 0xFFF8, 0x4880, 0, 4, (*M68KCPU).ExecExt)
	add("EXT.L", 0xFFF8, 0x48C0, 0, 4, (*M68KCPU).ExecExt)
	add("MOVEM", 0xFF80, 0x4880, m68kEAControlAlt|m68kEAPD, 8, (*M68KCPU).ExecMovem)
	add("MOVEM", 0xFF80, 0x4C80, m68kEAControl|m68kEAPI, 8, (*M68KCPU).ExecMovem)
	sized("TST", 0xFF00, 0x4A00, m68kEADataAlt, 4, (*M68KCPU).ExecTst)
	add("TAS", 0xFFC0, 0x4AC0, m68kEADataAlt, 4, (*M68KCPU).ExecTas)
	add("ILLEGAL", 0xFFFF, 0x4AFC, 0, 0, (*M68KCPU).ExecIllegal)
	add("TRAP", 0xFFF0, 0x4E40, 0, 4, (*M68KCPU).ExecTrap)
	add("LINK", 0xFFF8, 0x4E50, 0, 16, (*M68KCPU).ExecLink)
	add("UNLK", 0xFFF8, 0x4E58, 0, 12, (*M68KCPU).ExecUnlk)
	add("MOVE USP", 0xFFF0, 0x4E60, 0, 4, (*M68KCPU).ExecMoveUSP)
	add("RESET", 0xFFFF, 0x4E70, 0, M68K_CYCLE_RESET_OP, (*M68KCPU).ExecReset)
	add("NOP", 0xFFFF, 0x4E71, 0, 4, (*M68KCPU).ExecNop)
	add("STOP", 0xFFFF, 0x4E72, 0, 4, (*M68KCPU).ExecStop)
	add("RTE", 0xFFFF, 0x4E73, 0, 20, (*M68KCPU).ExecRte)
	add("RTS", 0xFFFF, 0x4E75, 0, 16, (*M68KCPU).ExecRts)
	add("TRAPV", 0xFFFF, 0x4E76, 0, 4, (*M68KCPU).ExecTrapv)
	add("RTR", 0xFFFF, 0x4E77, 0, 20, (*M68KCPU).ExecRtr)
	add("JSR", 0xFFC0, 0x4E80, m68kEAControl, 16, (*M68KCPU).ExecJsr)
	add("JMP", 0xFFC0, 0x4EC0, m68kEAControl, 8, (*M68KCPU).ExecJmp)

	// Group 5: ADDQ, SUBQ, Scc, DBcc
	sized("ADDQ", 0xF100, 0x5000, m68kEAAlterable, 4, (*M68KCPU).ExecAddq)
	sized("SUBQ", 0xF100, 0x5100, m68kEAAlterable, 4, (*M68KCPU).ExecSubq)
	add("Scc", 0xF0C0, 0x50C0, m68kEADataAlt, 4, (*M68KCPU).ExecScc)
	add("DBcc", 0xF0F8, 0x50C8, 0, 10, (*M68KCPU).ExecDbcc)

	// Group 6: branches
	add("BRA", 0xFF00, 0x6000, 0, 10, (*M68KCPU).ExecBra)
	add("BSR", 0xFF00, 0x6100, 0, 18, (*M68KCPU).ExecBsr)
	for cc := uint16(2); cc < 16; cc++ {
		add("Bcc", 0xFF00, 0x6000|cc<<8, 0, 8, (*M68KCPU).ExecBcc)
	}

	// Group 7: MOVEQ
	add("MOVEQ", 0xF100, 0x7000, 0, 4, (*M68KCPU).ExecMoveq)

	// Group 8: OR, DIVU, DIVS, SBCD
	add("DIVU", 0xF1C0, 0x80C0, m68kEAData, 0, (*M68KCPU).ExecDivu)
	add("DIVS", 0xF1C0, 0x81C0, m68kEAData, 0, (*M68KCPU).ExecDivs)
	add("SBCD", 0xF1F0, 0x8100, 0, 6, (*M68KCPU).ExecSbcd)
	sized("OR", 0xF100, 0x8000, m68kEAData, 4, (*M68KCPU).ExecOr)
	sized("OR", 0xF100, 0x8100, m68kEAMemAlt, 4, (*M68KCPU).ExecOr)

	// Group 9: SUB, SUBX, SUBA
	sized("SUB", 0xF100, 0x9000, m68kEAAll, 4, (*M68KCPU).ExecSub)
	sized("SUB", 0xF100, 0x9100, m68kEAMemAlt, 4, (*M68KCPU).ExecSub)
	sized("SUBX", 0xF130, 0x9100, 0, 4, (*M68KCPU).ExecSubx)
	add("SUBA.W", 0xF1C0, 0x90C0, m68kEAAll, 4, (*M68KCPU).ExecSuba)
	add("SUBA.L", 0xF1C0, 0x91C0, m68kEAAll, 4, (*M68KCPU).ExecSuba)

	// Group B: CMP, CMPA, CMPM, EOR
	sized("CMP", 0xF100, 0xB000, m68kEAAll, 4, (*M68KCPU).ExecCmp)
	add("CMPA.W", 0xF1C0, 0xB0C0, m68kEAAll, 6, (*M68KCPU).ExecCmpa)
	add("CMPA.L", 0xF1C0, 0xB1C0, m68kEAAll, 6, (*M68KCPU).ExecCmpa)
	sized("EOR", 0xF100, 0xB100, m68kEADataAlt, 4, (*M68KCPU).ExecEor)
	sized("CMPM", 0xF138, 0xB108, 0, 12, (*M68KCPU).ExecCmpm)

	// Group C: AND, MULU, MULS, ABCD, EXG
	add("MULU", 0xF1C0, 0xC0C0, m68kEAData, 38, (*M68KCPU).ExecMulu)
	add("MULS", 0xF1C0, 0xC1C0, m68kEAData, 38, (*M68KCPU).ExecMuls)
	add("ABCD", 0xF1F0, 0xC100, 0, 6, (*M68KCPU).ExecAbcd)
	add("EXG", 0xF1F8, 0xC140, 0, 6, (*M68KCPU).ExecExg)
	add("EXG", 0xF1F8, 0xC148, 0, 6, (*M68KCPU).ExecExg)
	add("EXG", 0xF1F8, 0xC188, 0, 6, (*M68KCPU).ExecExg)
	sized("AND", 0xF100, 0xC000, m68kEAData, 4, (*M68KCPU).ExecAnd)
	sized("AND", 0xF100, 0xC100, m68kEAMemAlt, 4, (*M68KCPU).ExecAnd)

	// Group D: ADD, ADDX, ADDA
	sized("ADD", 0xF100, 0xD000, m68kEAAll, 4, (*M68KCPU).ExecAdd)
	sized("ADD", 0xF100, 0xD100, m68kEAMemAlt, 4, (*M68KCPU).ExecAdd)
	sized("ADDX", 0xF130, 0xD100, 0, 4, (*M68KCPU).ExecAddx)
	add("ADDA.W", 0xF1C0, 0xD0C0, m68kEAAll, 4, (*M68KCPU).ExecAdda)
	add("ADDA.L", 0xF1C0, 0xD1C0, m68kEAAll, 4, (*M68KCPU).ExecAdda)

	// Group E: shifts and rotates
	shiftNames := [4]string{"AS", "LS", "ROX", "RO"}
	for t := uint16(0); t < 4; t++ {
		for size := uint16(0); size < 3; size++ {
			add(shiftNames[t]+"d"+m68kSizeSuffix[size], 0xF0D8, 0xE000|size<<6|t<<3, 0, 6, (*M68KCPU).ExecShiftReg)
		}
		add(shiftNames[t]+"d", 0xFEC0, 0xE0C0|t<<9, m68kEAMemAlt, 8, (*M68KCPU).ExecShiftMem)
	}

	return set
}

// m68kPopcount16 is used by MULU timing.
func m68kPopcount16(v uint16) int {
	return bits.OnesCount16(v)
}
