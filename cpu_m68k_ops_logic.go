// cpu_m68k_ops_logic.go - 68000 logical, shift and bit instructions

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

// ------------------------------------------------------------------------------
// AND / OR / EOR / NOT
// ------------------------------------------------------------------------------

// execLogical is AND and OR in both directions; bit 8 set means Dn,<ea>.
// X is unaffected, V and C are cleared.
func (cpu *M68KCPU) execLogical(opcode uint16, op func(a, b uint32) uint32) {
	size := m68kSizeField(opcode)
	dreg := (opcode >> 9) & 7
	ea := cpu.resolveEA((opcode>>3)&7, opcode&7, size)

	if opcode&0x0100 == 0 {
		res := op(cpu.DataRegs[dreg], cpu.readOperand(&ea)) & m68kSizeMask(size)
		cpu.setDataReg(dreg, res, size)
		cpu.SetFlagsNZ(res, size)
		cpu.eaToRegCycles(&ea, size)
		return
	}
	res := op(cpu.readOperand(&ea), cpu.DataRegs[dreg]) & m68kSizeMask(size)
	cpu.writeOperand(&ea, res)
	cpu.SetFlagsNZ(res, size)
	cpu.regToEACycles(size)
}

func m68kAnd(a, b uint32) uint32 { return a & b }
func m68kOr(a, b uint32) uint32  { return a | b }
func m68kEor(a, b uint32) uint32 { return a ^ b }

func (cpu *M68KCPU) ExecAnd(opcode uint16) { cpu.execLogical(opcode, m68kAnd) }
func (cpu *M68KCPU) ExecOr(opcode uint16)  { cpu.execLogical(opcode, m68kOr) }

// ExecEor only has the Dn,<ea> form.
func (cpu *M68KCPU) ExecEor(opcode uint16) {
	size := m68kSizeField(opcode)
	ea := cpu.resolveEA((opcode>>3)&7, opcode&7, size)
	res := (cpu.readOperand(&ea) ^ cpu.DataRegs[(opcode>>9)&7]) & m68kSizeMask(size)
	cpu.writeOperand(&ea, res)
	cpu.SetFlagsNZ(res, size)
	if ea.kind == m68kOperandDataReg {
		if size == M68K_SIZE_LONG {
			cpu.instrCycles += 4
		}
		return
	}
	cpu.regToEACycles(size)
}

func (cpu *M68KCPU) ExecNot(opcode uint16) {
	size := m68kSizeField(opcode)
	ea := cpu.resolveEA((opcode>>3)&7, opcode&7, size)
	res := ^cpu.readOperand(&ea) & m68kSizeMask(size)
	cpu.writeOperand(&ea, res)
	cpu.SetFlagsNZ(res, size)
	cpu.rmwCycles(&ea, size)
}

func (cpu *M68KCPU) execLogicalImm(opcode uint16, op func(a, b uint32) uint32) {
	size := m68kSizeField(opcode)
	imm := cpu.fetchImmediate(size)
	ea := cpu.resolveEA((opcode>>3)&7, opcode&7, size)
	res := op(cpu.readOperand(&ea), imm) & m68kSizeMask(size)
	cpu.writeOperand(&ea, res)
	cpu.SetFlagsNZ(res, size)
	cpu.immCycles(&ea, size)
}

func (cpu *M68KCPU) ExecAndi(opcode uint16) { cpu.execLogicalImm(opcode, m68kAnd) }
func (cpu *M68KCPU) ExecOri(opcode uint16)  { cpu.execLogicalImm(opcode, m68kOr) }
func (cpu *M68KCPU) ExecEori(opcode uint16) { cpu.execLogicalImm(opcode, m68kEor) }

func (cpu *M68KCPU) execCCR(op func(a, b uint32) uint32) {
	imm := uint32(cpu.Fetch16() & 0xFF)
	cpu.SetCCR(uint8(op(uint32(cpu.GetCCR()), imm)))
}

func (cpu *M68KCPU) ExecAndiCCR(opcode uint16) { cpu.execCCR(m68kAnd) }
func (cpu *M68KCPU) ExecOriCCR(opcode uint16)  { cpu.execCCR(m68kOr) }
func (cpu *M68KCPU) ExecEoriCCR(opcode uint16) { cpu.execCCR(m68kEor) }

// execSRImm is the privileged SR form of ANDI, ORI and EORI.
func (cpu *M68KCPU) execSRImm(op func(a, b uint32) uint32) {
	if !cpu.supervisor() {
		cpu.privilegeViolation()
		return
	}
	imm := uint32(cpu.Fetch16())
	cpu.setSR(uint16(op(uint32(cpu.SR), imm)))
}

func (cpu *M68KCPU) ExecAndiSR(opcode uint16) { cpu.execSRImm(m68kAnd) }
func (cpu *M68KCPU) ExecOriSR(opcode uint16)  { cpu.execSRImm(m68kOr) }
func (cpu *M68KCPU) ExecEoriSR(opcode uint16) { cpu.execSRImm(m68kEor) }

// ------------------------------------------------------------------------------
// Shifts and rotates
// ------------------------------------------------------------------------------

const (
	m68kShiftAS = iota
	m68kShiftLS
	m68kShiftROX
	m68kShiftRO
)

// shift applies count single-bit steps of the given kind and sets the flags.
// X follows C for every kind except ROL/ROR. A zero count clears C (ROXd
// copies X into C instead) and V.
func (cpu *M68KCPU) shift(kind int, left bool, value, count uint32, size int) uint32 {
	mask := m68kSizeMask(size)
	msb := m68kSignBit(size)
	value &= mask

	carry := false
	overflow := false
	x := cpu.flag(M68K_SR_X)

	for i := uint32(0); i < count; i++ {
		var out bool
		if left {
			out = value&msb != 0
			value = value << 1 & mask
			switch kind {
			case m68kShiftAS:
				if out != (value&msb != 0) {
					overflow = true
				}
			case m68kShiftROX:
				if x {
					value |= 1
				}
				x = out
			case m68kShiftRO:
				if out {
					value |= 1
				}
			}
		} else {
			out = value&1 != 0
			sign := value & msb
			value >>= 1
			switch kind {
			case m68kShiftAS:
				value |= sign
			case m68kShiftROX:
				if x {
					value |= msb
				}
				x = out
			case m68kShiftRO:
				if out {
					value |= msb
				}
			}
		}
		carry = out
	}

	if count == 0 {
		carry = kind == m68kShiftROX && cpu.flag(M68K_SR_X)
	} else if kind != m68kShiftRO {
		if kind == m68kShiftROX {
			carry = x
		}
		cpu.setFlag(M68K_SR_X, carry)
	}
	cpu.setFlag(M68K_SR_C, carry)
	cpu.setFlag(M68K_SR_V, overflow)
	cpu.setFlag(M68K_SR_Z, value == 0)
	cpu.setFlag(M68K_SR_N, value&msb != 0)
	return value
}

// ExecShiftReg shifts Dn by an immediate 1-8 or by Dm modulo 64.
func (cpu *M68KCPU) ExecShiftReg(opcode uint16) {
	size := m68kSizeField(opcode)
	reg := opcode & 7
	countField := (opcode >> 9) & 7

	var count uint32
	if opcode&0x0020 != 0 {
		count = cpu.DataRegs[countField] & 63
	} else {
		count = uint32(countField)
		if count == 0 {
			count = 8
		}
	}

	res := cpu.shift(int(opcode>>3)&3, opcode&0x0100 != 0, cpu.DataRegs[reg], count, size)
	cpu.setDataReg(reg, res, size)

	cpu.instrCycles += 2 * int(count)
	if size == M68K_SIZE_LONG {
		cpu.instrCycles += 2
	}
}

// ExecShiftMem shifts a memory word by one.
func (cpu *M68KCPU) ExecShiftMem(opcode uint16) {
	ea := cpu.resolveEA((opcode>>3)&7, opcode&7, M68K_SIZE_WORD)
	v := cpu.readOperand(&ea)
	res := cpu.shift(int(opcode>>9)&3, opcode&0x0100 != 0, v, 1, M68K_SIZE_WORD)
	cpu.writeOperand(&ea, res)
}

// ------------------------------------------------------------------------------
// Bit operations
// ------------------------------------------------------------------------------

const (
	m68kBitTest = iota
	m68kBitChange
	m68kBitClear
	m68kBitSet
)

// execBit operates on bit n of a data register (modulo 32) or a memory byte
// (modulo 8). Only Z is affected.
func (cpu *M68KCPU) execBit(opcode uint16, bit uint32) {
	kind := int(opcode>>6) & 3
	mode := (opcode >> 3) & 7

	size := M68K_SIZE_BYTE
	if mode == M68K_AM_DR {
		size = M68K_SIZE_LONG
		bit &= 31
	} else {
		bit &= 7
	}
	ea := cpu.resolveEA(mode, opcode&7, size)
	v := cpu.readOperand(&ea)
	cpu.setFlag(M68K_SR_Z, v&(1<<bit) == 0)

	switch kind {
	case m68kBitChange:
		v ^= 1 << bit
	case m68kBitClear:
		v &^= 1 << bit
	case m68kBitSet:
		v |= 1 << bit
	}

	switch {
	case ea.kind == m68kOperandDataReg && kind == m68kBitTest:
		cpu.instrCycles += 2
	case ea.kind == m68kOperandDataReg && kind == m68kBitClear:
		cpu.instrCycles += 6
	case ea.kind == m68kOperandDataReg:
		cpu.instrCycles += 4
	case kind != m68kBitTest:
		cpu.instrCycles += 4
	}

	if kind != m68kBitTest {
		cpu.writeOperand(&ea, v)
	}
}

// ExecBitDynamic takes the bit number from Dn.
func (cpu *M68KCPU) ExecBitDynamic(opcode uint16) {
	cpu.execBit(opcode, cpu.DataRegs[(opcode>>9)&7])
}

// ExecBitStatic takes the bit number from an immediate word.
func (cpu *M68KCPU) ExecBitStatic(opcode uint16) {
	cpu.execBit(opcode, uint32(cpu.Fetch16()&0xFF))
}
