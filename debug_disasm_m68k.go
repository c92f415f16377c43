// debug_disasm_m68k.go - 68000 disassembler for tracing and the Machine Monitor

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

package main

import (
	"fmt"
	"strings"
)

var m68kCondCodes = [16]string{
	"T", "F", "HI", "LS", "CC", "CS", "NE", "EQ",
	"VC", "VS", "PL", "MI", "GE", "LT", "GT", "LE",
}

// m68kDisasm walks the extension words of one instruction.
type m68kDisasm struct {
	read func(addr uint32) uint16
	pc   uint32
}

func (d *m68kDisasm) word() uint16 {
	w := d.read(d.pc)
	d.pc += 2
	return w
}

func (d *m68kDisasm) long() uint32 {
	hi := uint32(d.word())
	return hi<<16 | uint32(d.word())
}

func (d *m68kDisasm) index(base string) string {
	ext := d.word()
	kind := "D"
	if ext&0x8000 != 0 {
		kind = "A"
	}
	size := ".W"
	if ext&0x0800 != 0 {
		size = ".L"
	}
	return fmt.Sprintf("%d(%s,%s%d%s)", int8(ext), base, kind, (ext>>12)&7, size)
}

func (d *m68kDisasm) ea(mode, reg uint16, size int) string {
	switch mode {
	case M68K_AM_DR:
		return fmt.Sprintf("D%d", reg)
	case M68K_AM_AR:
		return fmt.Sprintf("A%d", reg)
	case M68K_AM_AR_IND:
		return fmt.Sprintf("(A%d)", reg)
	case M68K_AM_AR_POST:
		return fmt.Sprintf("(A%d)+", reg)
	case M68K_AM_AR_PRE:
		return fmt.Sprintf("-(A%d)", reg)
	case M68K_AM_AR_DISP:
		return fmt.Sprintf("%d(A%d)", int16(d.word()), reg)
	case M68K_AM_AR_INDEX:
		return d.index(fmt.Sprintf("A%d", reg))
	}
	switch reg {
	case 0:
		return fmt.Sprintf("$%04X.W", d.word())
	case 1:
		return fmt.Sprintf("$%06X.L", d.long())
	case 2:
		base := d.pc
		return fmt.Sprintf("$%06X(PC)", base+uint32(int32(int16(d.word()))))
	case 3:
		return d.index("PC")
	case 4:
		switch size {
		case M68K_SIZE_BYTE:
			return fmt.Sprintf("#$%02X", d.word()&0xFF)
		case M68K_SIZE_LONG:
			return fmt.Sprintf("#$%08X", d.long())
		}
		return fmt.Sprintf("#$%04X", d.word())
	}
	return "???"
}

// src decodes the EA in bits 5-0.
func (d *m68kDisasm) src(op uint16, size int) string {
	return d.ea((op>>3)&7, op&7, size)
}

func m68kRegList(mask uint16, reversed bool) string {
	var parts []string
	for i := 0; i < 16; {
		bit := i
		if reversed {
			bit = 15 - i
		}
		if mask&(1<<bit) == 0 {
			i++
			continue
		}
		start := i
		for i < 16 {
			b := i
			if reversed {
				b = 15 - i
			}
			if mask&(1<<b) == 0 || (i != start && i == 8) {
				break
			}
			i++
		}
		name := func(n int) string {
			if n < 8 {
				return fmt.Sprintf("D%d", n)
			}
			return fmt.Sprintf("A%d", n-8)
		}
		if i-1 == start {
			parts = append(parts, name(start))
		} else {
			parts = append(parts, name(start)+"-"+name(i-1))
		}
	}
	return strings.Join(parts, "/")
}

// instrSize returns the operation size carried by a descriptor name suffix.
func m68kNameSize(name string) int {
	switch {
	case strings.HasSuffix(name, ".B"):
		return M68K_SIZE_BYTE
	case strings.HasSuffix(name, ".L"):
		return M68K_SIZE_LONG
	}
	return M68K_SIZE_WORD
}

// DisassembleM68K decodes the instruction at addr and returns its text and
// length in bytes. Decoding goes through the dispatch table so the text
// always names the handler the CPU would run.
func DisassembleM68K(read func(addr uint32) uint16, addr uint32) (string, int) {
	d := &m68kDisasm{read: read, pc: addr}
	op := d.word()
	name := M68KInstructionName(op)
	text := d.decode(op, name)
	return text, int(d.pc - addr)
}

func (d *m68kDisasm) decode(op uint16, name string) string {
	size := m68kNameSize(name)
	base, _, _ := strings.Cut(name, ".")
	base, _, _ = strings.Cut(base, " ")
	dn := (op >> 9) & 7
	cond := m68kCondCodes[(op>>8)&0xF]

	switch base {
	case "ILLEGAL":
		if op == 0x4AFC {
			return "ILLEGAL"
		}
		return fmt.Sprintf("DC.W $%04X", op)
	case "LINEA", "LINEF":
		return fmt.Sprintf("DC.W $%04X", op)

	case "ORI", "ANDI", "SUBI", "ADDI", "EORI", "CMPI":
		if strings.HasSuffix(name, "CCR") {
			return fmt.Sprintf("%s #$%02X,CCR", base, d.word()&0xFF)
		}
		if strings.HasSuffix(name, "SR") {
			return fmt.Sprintf("%s #$%04X,SR", base, d.word())
		}
		imm := d.ea(7, 4, size)
		return fmt.Sprintf("%s %s,%s", name, imm, d.src(op, size))

	case "BTST", "BCHG", "BCLR", "BSET":
		if op&0x0100 != 0 {
			return fmt.Sprintf("%s D%d,%s", base, dn, d.src(op, M68K_SIZE_BYTE))
		}
		bit := d.word() & 0xFF
		return fmt.Sprintf("%s #%d,%s", base, bit, d.src(op, M68K_SIZE_BYTE))

	case "MOVEP":
		sz := ".W"
		if op&0x0040 != 0 {
			sz = ".L"
		}
		disp := int16(d.word())
		if op&0x0080 != 0 {
			return fmt.Sprintf("MOVEP%s D%d,%d(A%d)", sz, dn, disp, op&7)
		}
		return fmt.Sprintf("MOVEP%s %d(A%d),D%d", sz, disp, op&7, dn)

	case "MOVE":
		switch name {
		case "MOVE from SR":
			return "MOVE SR," + d.src(op, M68K_SIZE_WORD)
		case "MOVE to CCR":
			return "MOVE " + d.src(op, M68K_SIZE_WORD) + ",CCR"
		case "MOVE to SR":
			return "MOVE " + d.src(op, M68K_SIZE_WORD) + ",SR"
		case "MOVE USP":
			if op&0x0008 != 0 {
				return fmt.Sprintf("MOVE USP,A%d", op&7)
			}
			return fmt.Sprintf("MOVE A%d,USP", op&7)
		}
		src := d.src(op, size)
		return fmt.Sprintf("%s %s,%s", name, src, d.ea((op>>6)&7, dn, size))

	case "MOVEA", "ADDA", "SUBA", "CMPA":
		return fmt.Sprintf("%s %s,A%d", name, d.src(op, size), dn)

	case "LEA":
		return fmt.Sprintf("LEA %s,A%d", d.src(op, M68K_SIZE_LONG), dn)

	case "CHK", "DIVU", "DIVS", "MULU", "MULS":
		return fmt.Sprintf("%s %s,D%d", base, d.src(op, M68K_SIZE_WORD), dn)

	case "NEGX", "CLR", "NEG", "NOT", "TST":
		return name + " " + d.src(op, size)

	case "NBCD", "TAS":
		return base + " " + d.src(op, M68K_SIZE_BYTE)

	case "PEA", "JSR", "JMP":
		return base + " " + d.src(op, M68K_SIZE_LONG)

	case "SWAP", "EXT":
		return fmt.Sprintf("%s D%d", name, op&7)

	case "MOVEM":
		mask := d.word()
		sz := ".W"
		if op&0x0040 != 0 {
			sz = ".L"
		}
		mode := (op >> 3) & 7
		if op&0x0400 != 0 {
			return fmt.Sprintf("MOVEM%s %s,%s", sz, d.src(op, M68K_SIZE_LONG), m68kRegList(mask, false))
		}
		list := m68kRegList(mask, mode == M68K_AM_AR_PRE)
		return fmt.Sprintf("MOVEM%s %s,%s", sz, list, d.src(op, M68K_SIZE_LONG))

	case "TRAP":
		return fmt.Sprintf("TRAP #%d", op&0xF)
	case "LINK":
		return fmt.Sprintf("LINK A%d,#%d", op&7, int16(d.word()))
	case "UNLK":
		return fmt.Sprintf("UNLK A%d", op&7)
	case "STOP":
		return fmt.Sprintf("STOP #$%04X", d.word())
	case "RESET", "NOP", "RTE", "RTS", "TRAPV", "RTR":
		return base

	case "ADDQ", "SUBQ":
		q := dn
		if q == 0 {
			q = 8
		}
		return fmt.Sprintf("%s #%d,%s", name, q, d.src(op, size))

	case "Scc":
		return "S" + cond + " " + d.src(op, M68K_SIZE_BYTE)

	case "DBcc":
		base := d.pc
		target := base + uint32(int32(int16(d.word())))
		return fmt.Sprintf("DB%s D%d,$%06X", cond, op&7, target)

	case "BRA", "BSR", "Bcc":
		mn := base
		if base == "Bcc" {
			mn = "B" + cond
		}
		pc := d.pc
		disp := uint32(int32(int8(op)))
		suffix := ".S"
		if uint8(op) == 0 {
			disp = uint32(int32(int16(d.word())))
			suffix = ".W"
		}
		return fmt.Sprintf("%s%s $%06X", mn, suffix, (pc+disp)&M68K_ADDRESS_MASK)

	case "MOVEQ":
		return fmt.Sprintf("MOVEQ #%d,D%d", int8(op), dn)

	case "ABCD", "SBCD", "ADDX", "SUBX":
		if op&0x0008 != 0 {
			return fmt.Sprintf("%s -(A%d),-(A%d)", name, op&7, dn)
		}
		return fmt.Sprintf("%s D%d,D%d", name, op&7, dn)

	case "CMPM":
		return fmt.Sprintf("%s (A%d)+,(A%d)+", name, op&7, dn)

	case "EXG":
		switch (op >> 3) & 0x1F {
		case 0x08:
			return fmt.Sprintf("EXG D%d,D%d", dn, op&7)
		case 0x09:
			return fmt.Sprintf("EXG A%d,A%d", dn, op&7)
		}
		return fmt.Sprintf("EXG D%d,A%d", dn, op&7)

	case "CMP":
		return fmt.Sprintf("%s %s,D%d", name, d.src(op, size), dn)

	case "EOR":
		return fmt.Sprintf("%s D%d,%s", name, dn, d.src(op, size))

	case "OR", "AND", "ADD", "SUB":
		if op&0x0100 != 0 {
			return fmt.Sprintf("%s D%d,%s", name, dn, d.src(op, size))
		}
		return fmt.Sprintf("%s %s,D%d", name, d.src(op, size), dn)
	}

	// Shifts and rotates: "ASd.B" for register forms, "ASd" for memory
	if strings.HasSuffix(base, "d") {
		dir := "R"
		if op&0x0100 != 0 {
			dir = "L"
		}
		mn := base[:len(base)-1] + dir
		if name == base {
			return fmt.Sprintf("%s.W %s", mn, d.src(op, M68K_SIZE_WORD))
		}
		mn += name[len(base):]
		if op&0x0020 != 0 {
			return fmt.Sprintf("%s D%d,D%d", mn, dn, op&7)
		}
		count := dn
		if count == 0 {
			count = 8
		}
		return fmt.Sprintf("%s #%d,D%d", mn, count, op&7)
	}
	return fmt.Sprintf("DC.W $%04X", op)
}

// disassembleM68K decodes count instructions from startAddr for the monitor.
func disassembleM68K(read func(addr uint32) uint16, startAddr uint32, count int) []DisassembledLine {
	var lines []DisassembledLine
	addr := startAddr
	for i := 0; i < count; i++ {
		text, n := DisassembleM68K(read, addr)
		var hex []string
		for off := 0; off < n; off += 2 {
			hex = append(hex, fmt.Sprintf("%04X", read(addr+uint32(off))))
		}
		lines = append(lines, DisassembledLine{
			Address:  uint64(addr),
			HexBytes: strings.Join(hex, " "),
			Mnemonic: text,
			Size:     n,
		})
		addr = (addr + uint32(n)) & M68K_ADDRESS_MASK
	}
	return lines
}
