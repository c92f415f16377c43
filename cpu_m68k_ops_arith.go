// cpu_m68k_ops_arith.go - 68000 integer and BCD arithmetic

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

import "math/bits"

// ------------------------------------------------------------------------------
// Flag computation
// ------------------------------------------------------------------------------

// setAddFlags sets X N Z V C for res = dst + src.
func (cpu *M68KCPU) setAddFlags(src, dst, res uint32, size int) {
	msb := m68kSignBit(size)
	mask := m68kSizeMask(size)
	res &= mask
	carry := (src&dst | ^res&(src|dst)) & msb
	overflow := (src ^ res) & (dst ^ res) & msb
	cpu.setFlag(M68K_SR_C, carry != 0)
	cpu.setFlag(M68K_SR_X, carry != 0)
	cpu.setFlag(M68K_SR_V, overflow != 0)
	cpu.setFlag(M68K_SR_Z, res == 0)
	cpu.setFlag(M68K_SR_N, res&msb != 0)
}

// setCmpFlags sets N Z V C for res = dst - src. X is untouched.
func (cpu *M68KCPU) setCmpFlags(src, dst, res uint32, size int) {
	msb := m68kSignBit(size)
	mask := m68kSizeMask(size)
	res &= mask
	borrow := (src&^dst | res&^dst | src&res) & msb
	overflow := (src ^ dst) & (res ^ dst) & msb
	cpu.setFlag(M68K_SR_C, borrow != 0)
	cpu.setFlag(M68K_SR_V, overflow != 0)
	cpu.setFlag(M68K_SR_Z, res == 0)
	cpu.setFlag(M68K_SR_N, res&msb != 0)
}

// setSubFlags sets X N Z V C for res = dst - src.
func (cpu *M68KCPU) setSubFlags(src, dst, res uint32, size int) {
	cpu.setCmpFlags(src, dst, res, size)
	cpu.setFlag(M68K_SR_X, cpu.flag(M68K_SR_C))
}

// keepZ implements the multi-precision rule: Z is only ever cleared.
func (cpu *M68KCPU) keepZ(wasZ bool, res uint32, size int) {
	cpu.setFlag(M68K_SR_Z, wasZ && res&m68kSizeMask(size) == 0)
}

func (cpu *M68KCPU) xBit() uint32 {
	if cpu.flag(M68K_SR_X) {
		return 1
	}
	return 0
}

func (cpu *M68KCPU) setDataReg(reg uint16, value uint32, size int) {
	mask := m68kSizeMask(size)
	cpu.DataRegs[reg] = cpu.DataRegs[reg]&^mask | value&mask
}

// ------------------------------------------------------------------------------
// Timing helpers shared with the logical instructions
// ------------------------------------------------------------------------------

// eaToRegCycles: <ea>,Dn forms cost 4+ea, long 6+ea, long from a register or
// immediate 8.
func (cpu *M68KCPU) eaToRegCycles(op *m68kOperand, size int) {
	if size != M68K_SIZE_LONG {
		return
	}
	cpu.instrCycles += 2
	if op.isRegister() || op.kind == m68kOperandImmediate {
		cpu.instrCycles += 2
	}
}

// regToEACycles: Dn,<ea> forms cost 8+ea, long 12+ea.
func (cpu *M68KCPU) regToEACycles(size int) {
	cpu.instrCycles += 4
	if size == M68K_SIZE_LONG {
		cpu.instrCycles += 4
	}
}

// immCycles: #imm,<ea> forms cost 8 (16 long) to Dn and 12+ea (20+ea long)
// to memory.
func (cpu *M68KCPU) immCycles(op *m68kOperand, size int) {
	if op.kind != m68kOperandDataReg {
		cpu.instrCycles += 4
	}
	if size == M68K_SIZE_LONG {
		cpu.instrCycles += 8
	}
}

func (cpu *M68KCPU) fetchImmediate(size int) uint32 {
	switch size {
	case M68K_SIZE_BYTE:
		return uint32(cpu.Fetch16() & 0xFF)
	case M68K_SIZE_WORD:
		return uint32(cpu.Fetch16())
	}
	return cpu.Fetch32()
}

// ------------------------------------------------------------------------------
// ADD / SUB families
// ------------------------------------------------------------------------------

// execAddSub is ADD and SUB in both directions; bit 8 set means Dn,<ea>.
func (cpu *M68KCPU) execAddSub(opcode uint16, sub bool) {
	size := m68kSizeField(opcode)
	mask := m68kSizeMask(size)
	dreg := (opcode >> 9) & 7
	ea := cpu.resolveEA((opcode>>3)&7, opcode&7, size)

	var src, dst uint32
	if opcode&0x0100 == 0 {
		src = cpu.readOperand(&ea)
		dst = cpu.DataRegs[dreg] & mask
	} else {
		src = cpu.DataRegs[dreg] & mask
		dst = cpu.readOperand(&ea)
	}

	var res uint32
	if sub {
		res = (dst - src) & mask
		cpu.setSubFlags(src, dst, res, size)
	} else {
		res = (dst + src) & mask
		cpu.setAddFlags(src, dst, res, size)
	}

	if opcode&0x0100 == 0 {
		cpu.setDataReg(dreg, res, size)
		cpu.eaToRegCycles(&ea, size)
		return
	}
	cpu.writeOperand(&ea, res)
	cpu.regToEACycles(size)
}

func (cpu *M68KCPU) ExecAdd(opcode uint16) { cpu.execAddSub(opcode, false) }
func (cpu *M68KCPU) ExecSub(opcode uint16) { cpu.execAddSub(opcode, true) }

// execAddaSuba works on all 32 bits of An and leaves the flags alone.
func (cpu *M68KCPU) execAddaSuba(opcode uint16, sub bool) {
	size := M68K_SIZE_WORD
	if opcode&0x0100 != 0 {
		size = M68K_SIZE_LONG
	}
	ea := cpu.resolveEA((opcode>>3)&7, opcode&7, size)
	src := m68kSignExtend(cpu.readOperand(&ea), size)
	reg := (opcode >> 9) & 7
	if sub {
		cpu.AddrRegs[reg] -= src
	} else {
		cpu.AddrRegs[reg] += src
	}
	if size == M68K_SIZE_WORD {
		cpu.instrCycles += 4
	} else {
		cpu.eaToRegCycles(&ea, size)
	}
}

func (cpu *M68KCPU) ExecAdda(opcode uint16) { cpu.execAddaSuba(opcode, false) }
func (cpu *M68KCPU) ExecSuba(opcode uint16) { cpu.execAddaSuba(opcode, true) }

func (cpu *M68KCPU) execAddiSubi(opcode uint16, sub bool) {
	size := m68kSizeField(opcode)
	mask := m68kSizeMask(size)
	src := cpu.fetchImmediate(size)
	ea := cpu.resolveEA((opcode>>3)&7, opcode&7, size)
	dst := cpu.readOperand(&ea)
	var res uint32
	if sub {
		res = (dst - src) & mask
		cpu.setSubFlags(src, dst, res, size)
	} else {
		res = (dst + src) & mask
		cpu.setAddFlags(src, dst, res, size)
	}
	cpu.writeOperand(&ea, res)
	cpu.immCycles(&ea, size)
}

func (cpu *M68KCPU) ExecAddi(opcode uint16) { cpu.execAddiSubi(opcode, false) }
func (cpu *M68KCPU) ExecSubi(opcode uint16) { cpu.execAddiSubi(opcode, true) }

// execAddqSubq adds 1-8. To An the whole register changes and no flags are set.
func (cpu *M68KCPU) execAddqSubq(opcode uint16, sub bool) {
	size := m68kSizeField(opcode)
	data := uint32((opcode >> 9) & 7)
	if data == 0 {
		data = 8
	}
	mode := (opcode >> 3) & 7
	reg := opcode & 7

	if mode == M68K_AM_AR {
		if sub {
			cpu.AddrRegs[reg] -= data
		} else {
			cpu.AddrRegs[reg] += data
		}
		cpu.instrCycles += 4
		return
	}

	mask := m68kSizeMask(size)
	ea := cpu.resolveEA(mode, reg, size)
	dst := cpu.readOperand(&ea)
	var res uint32
	if sub {
		res = (dst - data) & mask
		cpu.setSubFlags(data, dst, res, size)
	} else {
		res = (dst + data) & mask
		cpu.setAddFlags(data, dst, res, size)
	}
	cpu.writeOperand(&ea, res)

	if ea.kind == m68kOperandDataReg {
		if size == M68K_SIZE_LONG {
			cpu.instrCycles += 4
		}
		return
	}
	cpu.regToEACycles(size)
}

func (cpu *M68KCPU) ExecAddq(opcode uint16) { cpu.execAddqSubq(opcode, false) }
func (cpu *M68KCPU) ExecSubq(opcode uint16) { cpu.execAddqSubq(opcode, true) }

// execAddxSubx handles Dy,Dx and -(Ay),-(Ax); bit 3 selects memory.
func (cpu *M68KCPU) execAddxSubx(opcode uint16, sub bool) {
	size := m68kSizeField(opcode)
	mask := m68kSizeMask(size)
	rx := (opcode >> 9) & 7
	ry := opcode & 7

	var src, dst, addr uint32
	memory := opcode&0x0008 != 0
	if memory {
		cpu.AddrRegs[ry] -= m68kStep(ry, size)
		src = cpu.readSized(cpu.AddrRegs[ry], size)
		cpu.AddrRegs[rx] -= m68kStep(rx, size)
		addr = cpu.AddrRegs[rx]
		dst = cpu.readSized(addr, size)
	} else {
		src = cpu.DataRegs[ry] & mask
		dst = cpu.DataRegs[rx] & mask
	}

	wasZ := cpu.flag(M68K_SR_Z)
	var res uint32
	if sub {
		res = (dst - src - cpu.xBit()) & mask
		cpu.setSubFlags(src, dst, res, size)
	} else {
		res = (dst + src + cpu.xBit()) & mask
		cpu.setAddFlags(src, dst, res, size)
	}
	cpu.keepZ(wasZ, res, size)

	if memory {
		cpu.writeSized(addr, res, size)
		if size == M68K_SIZE_LONG {
			cpu.instrCycles += 26
		} else {
			cpu.instrCycles += 14
		}
		return
	}
	cpu.setDataReg(rx, res, size)
	if size == M68K_SIZE_LONG {
		cpu.instrCycles += 4
	}
}

func (cpu *M68KCPU) ExecAddx(opcode uint16) { cpu.execAddxSubx(opcode, false) }
func (cpu *M68KCPU) ExecSubx(opcode uint16) { cpu.execAddxSubx(opcode, true) }

// ------------------------------------------------------------------------------
// Compare
// ------------------------------------------------------------------------------

func (cpu *M68KCPU) ExecCmp(opcode uint16) {
	size := m68kSizeField(opcode)
	mask := m68kSizeMask(size)
	ea := cpu.resolveEA((opcode>>3)&7, opcode&7, size)
	src := cpu.readOperand(&ea)
	dst := cpu.DataRegs[(opcode>>9)&7] & mask
	cpu.setCmpFlags(src, dst, (dst-src)&mask, size)
	if size == M68K_SIZE_LONG {
		cpu.instrCycles += 2
	}
}

func (cpu *M68KCPU) ExecCmpa(opcode uint16) {
	size := M68K_SIZE_WORD
	if opcode&0x0100 != 0 {
		size = M68K_SIZE_LONG
	}
	ea := cpu.resolveEA((opcode>>3)&7, opcode&7, size)
	src := m68kSignExtend(cpu.readOperand(&ea), size)
	dst := cpu.AddrRegs[(opcode>>9)&7]
	cpu.setCmpFlags(src, dst, dst-src, M68K_SIZE_LONG)
}

func (cpu *M68KCPU) ExecCmpi(opcode uint16) {
	size := m68kSizeField(opcode)
	mask := m68kSizeMask(size)
	src := cpu.fetchImmediate(size)
	ea := cpu.resolveEA((opcode>>3)&7, opcode&7, size)
	dst := cpu.readOperand(&ea)
	cpu.setCmpFlags(src, dst, (dst-src)&mask, size)
	if size == M68K_SIZE_LONG {
		if ea.kind == m68kOperandDataReg {
			cpu.instrCycles += 6
		} else {
			cpu.instrCycles += 4
		}
	}
}

// ExecCmpm compares (Ay)+ with (Ax)+.
func (cpu *M68KCPU) ExecCmpm(opcode uint16) {
	size := m68kSizeField(opcode)
	mask := m68kSizeMask(size)
	rx := (opcode >> 9) & 7
	ry := opcode & 7
	src := cpu.readSized(cpu.AddrRegs[ry], size)
	cpu.AddrRegs[ry] += m68kStep(ry, size)
	dst := cpu.readSized(cpu.AddrRegs[rx], size)
	cpu.AddrRegs[rx] += m68kStep(rx, size)
	cpu.setCmpFlags(src, dst, (dst-src)&mask, size)
	if size == M68K_SIZE_LONG {
		cpu.instrCycles += 8
	}
}

// ------------------------------------------------------------------------------
// Negate
// ------------------------------------------------------------------------------

func (cpu *M68KCPU) ExecNeg(opcode uint16) {
	size := m68kSizeField(opcode)
	mask := m68kSizeMask(size)
	ea := cpu.resolveEA((opcode>>3)&7, opcode&7, size)
	dst := cpu.readOperand(&ea)
	res := (0 - dst) & mask
	cpu.setSubFlags(dst, 0, res, size)
	cpu.writeOperand(&ea, res)
	cpu.rmwCycles(&ea, size)
}

func (cpu *M68KCPU) ExecNegx(opcode uint16) {
	size := m68kSizeField(opcode)
	mask := m68kSizeMask(size)
	ea := cpu.resolveEA((opcode>>3)&7, opcode&7, size)
	dst := cpu.readOperand(&ea)
	wasZ := cpu.flag(M68K_SR_Z)
	res := (0 - dst - cpu.xBit()) & mask
	cpu.setSubFlags(dst, 0, res, size)
	cpu.keepZ(wasZ, res, size)
	cpu.writeOperand(&ea, res)
	cpu.rmwCycles(&ea, size)
}

// ------------------------------------------------------------------------------
// Multiply / divide
// ------------------------------------------------------------------------------

// ExecMulu takes 38 + 2n cycles, n the number of set bits in the source.
func (cpu *M68KCPU) ExecMulu(opcode uint16) {
	ea := cpu.resolveEA((opcode>>3)&7, opcode&7, M68K_SIZE_WORD)
	src := uint16(cpu.readOperand(&ea))
	reg := (opcode >> 9) & 7
	res := uint32(uint16(cpu.DataRegs[reg])) * uint32(src)
	cpu.DataRegs[reg] = res
	cpu.SetFlagsNZ(res, M68K_SIZE_LONG)
	cpu.instrCycles += 2 * m68kPopcount16(src)
}

// ExecMuls takes 38 + 2n cycles, n the number of 01 or 10 pairs in the
// source with a zero appended below bit 0.
func (cpu *M68KCPU) ExecMuls(opcode uint16) {
	ea := cpu.resolveEA((opcode>>3)&7, opcode&7, M68K_SIZE_WORD)
	src := uint16(cpu.readOperand(&ea))
	reg := (opcode >> 9) & 7
	res := uint32(int32(int16(cpu.DataRegs[reg])) * int32(int16(src)))
	cpu.DataRegs[reg] = res
	cpu.SetFlagsNZ(res, M68K_SIZE_LONG)
	x := uint32(src) << 1
	cpu.instrCycles += 2 * bits.OnesCount32((x^(x>>1))&0xFFFF)
}

// m68kDivuCycles reproduces the microcode loop of DIVU.
func m68kDivuCycles(dividend uint32, divisor uint16) int {
	if dividend>>16 >= uint32(divisor) {
		return 10
	}
	mcycles := 38
	hdivisor := uint32(divisor) << 16
	for i := 0; i < 15; i++ {
		temp := dividend
		dividend <<= 1
		if int32(temp) < 0 {
			dividend -= hdivisor
		} else {
			mcycles += 2
			if dividend >= hdivisor {
				dividend -= hdivisor
				mcycles--
			}
		}
	}
	return mcycles * 2
}

// m68kDivsCycles reproduces the microcode loop of DIVS.
func m68kDivsCycles(dividend int32, divisor int16) int {
	mcycles := 6
	if dividend < 0 {
		mcycles++
	}
	absDividend := uint32(dividend)
	if dividend < 0 {
		absDividend = uint32(-int64(dividend))
	}
	absDivisor := uint32(divisor)
	if divisor < 0 {
		absDivisor = uint32(-int32(divisor))
	}
	absDivisor &= 0xFFFF
	if absDividend>>16 >= absDivisor {
		return (mcycles + 2) * 2
	}
	mcycles += 55
	if divisor >= 0 {
		if dividend >= 0 {
			mcycles--
		} else {
			mcycles++
		}
	}
	aquot := absDividend / absDivisor
	for i := 0; i < 15; i++ {
		if int16(aquot) >= 0 {
			mcycles++
		}
		aquot <<= 1
	}
	return mcycles * 2
}

func (cpu *M68KCPU) ExecDivu(opcode uint16) {
	ea := cpu.resolveEA((opcode>>3)&7, opcode&7, M68K_SIZE_WORD)
	divisor := uint16(cpu.readOperand(&ea))
	reg := (opcode >> 9) & 7
	dividend := cpu.DataRegs[reg]

	if divisor == 0 {
		cpu.setFlag(M68K_SR_C, false)
		cpu.instrCycles += 4
		cpu.raiseException(M68K_VEC_ZERO_DIVIDE)
		return
	}

	cpu.instrCycles += m68kDivuCycles(dividend, divisor)
	quotient := dividend / uint32(divisor)
	cpu.setFlag(M68K_SR_C, false)
	if quotient > 0xFFFF {
		cpu.setFlag(M68K_SR_V, true)
		cpu.setFlag(M68K_SR_N, true)
		return
	}
	remainder := dividend % uint32(divisor)
	cpu.DataRegs[reg] = remainder<<16 | quotient
	cpu.SetFlagsNZ(quotient, M68K_SIZE_WORD)
}

func (cpu *M68KCPU) ExecDivs(opcode uint16) {
	ea := cpu.resolveEA((opcode>>3)&7, opcode&7, M68K_SIZE_WORD)
	divisor := int16(cpu.readOperand(&ea))
	reg := (opcode >> 9) & 7
	dividend := int32(cpu.DataRegs[reg])

	if divisor == 0 {
		cpu.setFlag(M68K_SR_C, false)
		cpu.instrCycles += 4
		cpu.raiseException(M68K_VEC_ZERO_DIVIDE)
		return
	}

	cpu.instrCycles += m68kDivsCycles(dividend, divisor)
	quotient := int64(dividend) / int64(divisor)
	cpu.setFlag(M68K_SR_C, false)
	if quotient < -32768 || quotient > 32767 {
		cpu.setFlag(M68K_SR_V, true)
		cpu.setFlag(M68K_SR_N, true)
		return
	}
	remainder := int64(dividend) % int64(divisor)
	cpu.DataRegs[reg] = uint32(uint16(remainder))<<16 | uint32(uint16(quotient))
	cpu.SetFlagsNZ(uint32(quotient), M68K_SIZE_WORD)
}

// ExecChk traps when Dn (word) is negative or above the bound. Z V C follow
// what the silicon leaves behind: Z from Dn, V and C clear.
func (cpu *M68KCPU) ExecChk(opcode uint16) {
	ea := cpu.resolveEA((opcode>>3)&7, opcode&7, M68K_SIZE_WORD)
	bound := int16(cpu.readOperand(&ea))
	value := int16(cpu.DataRegs[(opcode>>9)&7])

	cpu.setFlag(M68K_SR_Z, value == 0)
	cpu.setFlag(M68K_SR_V, false)
	cpu.setFlag(M68K_SR_C, false)
	switch {
	case value < 0:
		cpu.setFlag(M68K_SR_N, true)
		cpu.raiseException(M68K_VEC_CHK)
	case value > bound:
		cpu.setFlag(M68K_SR_N, false)
		cpu.raiseException(M68K_VEC_CHK)
	}
}

// ------------------------------------------------------------------------------
// BCD
// ------------------------------------------------------------------------------

func (cpu *M68KCPU) bcdAdd(src, dst uint32) uint32 {
	res := (src & 0x0F) + (dst & 0x0F) + cpu.xBit()
	v := ^res
	if res > 9 {
		res += 6
	}
	res += (src & 0xF0) + (dst & 0xF0)
	carry := res > 0x99
	if carry {
		res -= 0xA0
	}
	v &= res
	cpu.finishBCD(res&0xFF, carry, v&0x80 != 0)
	return res & 0xFF
}

func (cpu *M68KCPU) bcdSub(src, dst uint32) uint32 {
	res := (dst & 0x0F) - (src & 0x0F) - cpu.xBit()
	v := ^res
	if res > 9 {
		res -= 6
	}
	res += (dst & 0xF0) - (src & 0xF0)
	carry := res > 0x99
	if carry {
		res += 0xA0
	}
	res &= 0xFF
	v &= res
	cpu.finishBCD(res, carry, v&0x80 != 0)
	return res
}

func (cpu *M68KCPU) finishBCD(res uint32, carry, overflow bool) {
	cpu.setFlag(M68K_SR_C, carry)
	cpu.setFlag(M68K_SR_X, carry)
	cpu.setFlag(M68K_SR_V, overflow)
	cpu.setFlag(M68K_SR_N, res&0x80 != 0)
	if res != 0 {
		cpu.SR &^= M68K_SR_Z
	}
}

// execBCD handles ABCD and SBCD, Dy,Dx or -(Ay),-(Ax).
func (cpu *M68KCPU) execBCD(opcode uint16, op func(src, dst uint32) uint32) {
	rx := (opcode >> 9) & 7
	ry := opcode & 7
	if opcode&0x0008 == 0 {
		res := op(cpu.DataRegs[ry]&0xFF, cpu.DataRegs[rx]&0xFF)
		cpu.setDataReg(rx, res, M68K_SIZE_BYTE)
		return
	}
	cpu.AddrRegs[ry] -= m68kStep(ry, M68K_SIZE_BYTE)
	src := uint32(cpu.read8(cpu.AddrRegs[ry]))
	cpu.AddrRegs[rx] -= m68kStep(rx, M68K_SIZE_BYTE)
	dst := uint32(cpu.read8(cpu.AddrRegs[rx]))
	cpu.write8(cpu.AddrRegs[rx], uint8(op(src, dst)))
	cpu.instrCycles += 12
}

func (cpu *M68KCPU) ExecAbcd(opcode uint16) { cpu.execBCD(opcode, cpu.bcdAdd) }
func (cpu *M68KCPU) ExecSbcd(opcode uint16) { cpu.execBCD(opcode, cpu.bcdSub) }

func (cpu *M68KCPU) ExecNbcd(opcode uint16) {
	ea := cpu.resolveEA((opcode>>3)&7, opcode&7, M68K_SIZE_BYTE)
	dst := cpu.readOperand(&ea)
	if ea.kind != m68kOperandDataReg {
		cpu.instrCycles += 2
	}

	res := (0x9A - dst - cpu.xBit()) & 0xFF
	if res == 0x9A {
		cpu.setFlag(M68K_SR_V, false)
		cpu.setFlag(M68K_SR_C, false)
		cpu.setFlag(M68K_SR_X, false)
		cpu.setFlag(M68K_SR_N, res&0x80 != 0)
		return
	}

	v := ^res
	if res&0x0F == 0x0A {
		res = (res & 0xF0) + 0x10
	}
	res &= 0xFF
	v &= res
	cpu.writeOperand(&ea, res)
	cpu.finishBCD(res, true, v&0x80 != 0)
}
