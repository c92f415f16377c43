// cpu_m68k_exceptions.go - 68000 exception and interrupt processing

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
cpu_m68k_exceptions.go - 68000 exception and interrupt processing

Exceptions are taken at instruction boundaries in this order: reset, bus and
address errors, the exception the instruction itself requested, trace, then
the highest pending interrupt above the mask (level 7 always).

Frames:
  group 1/2   SP -> SR, PC
  group 0     SP -> status word, access address, IR, SR, PC

Status word: bit 4 set for reads, bit 3 set when the access was not an
instruction fetch, bits 2-0 the function code.
*/

package main

import (
	"fmt"
	"math/bits"
)

// RaiseInterrupt asserts interrupt level 1-7. The level stays pending until it
// is acknowledged or cleared.
func (cpu *M68KCPU) RaiseInterrupt(level uint8) {
	if level == 0 || level > M68K_IRQ_NMI {
		return
	}
	cpu.pendingIRQ |= 1 << level
	cpu.settleState()
}

// ClearInterrupt drops a pending level without servicing it.
func (cpu *M68KCPU) ClearInterrupt(level uint8) {
	if level == 0 || level > M68K_IRQ_NMI {
		return
	}
	cpu.pendingIRQ &^= 1 << level
	cpu.settleState()
}

// settleState derives the controller state between exceptions. An interrupt
// that beats the mask is PENDING even inside a handler; a masked one only
// shows when no handler is running.
func (cpu *M68KCPU) settleState() {
	switch {
	case cpu.state == M68K_EXC_VECTORING:
	case cpu.pendingVector != 0 || cpu.acceptedInterrupt() != 0:
		cpu.state = M68K_EXC_PENDING
	case cpu.depth > 0:
		cpu.state = M68K_EXC_SERVICING
	case cpu.pendingIRQ != 0:
		cpu.state = M68K_EXC_PENDING
	default:
		cpu.state = M68K_EXC_IDLE
	}
}

// PendingInterrupts returns the asserted levels as a bitmask, bit n for level n.
func (cpu *M68KCPU) PendingInterrupts() uint8 {
	return cpu.pendingIRQ
}

// acceptedInterrupt returns the level to service now, or 0.
func (cpu *M68KCPU) acceptedInterrupt() uint8 {
	if cpu.pendingIRQ == 0 {
		return 0
	}
	level := uint8(bits.Len8(cpu.pendingIRQ) - 1)
	if level == M68K_IRQ_NMI || level > cpu.interruptMask() {
		return level
	}
	return 0
}

func m68kExceptionCycles(vector uint8) int {
	switch {
	case vector == M68K_VEC_BUS_ERROR || vector == M68K_VEC_ADDRESS_ERROR:
		return M68K_CYCLE_GROUP0
	case vector == M68K_VEC_ZERO_DIVIDE:
		return M68K_CYCLE_DIV_ZERO
	case vector == M68K_VEC_CHK || vector == M68K_VEC_TRAPV:
		return M68K_CYCLE_TRAP_EXC
	case vector >= M68K_VEC_TRAP_BASE && vector <= M68K_VEC_TRAP_LAST:
		return M68K_CYCLE_TRAP_EXC
	case vector >= M68K_VEC_SPURIOUS && vector <= M68K_VEC_LEVEL7:
		return M68K_CYCLE_INTERRUPT
	}
	return M68K_CYCLE_ILLEGAL
}

// ProcessException builds a group 1/2 frame and jumps through vector. It
// returns the cycles spent. Illegal, privilege and line A/F exceptions return
// to the faulting instruction, the rest to the next one.
func (cpu *M68KCPU) ProcessException(vector uint8) int {
	pc := cpu.PC
	switch vector {
	case M68K_VEC_ILLEGAL_INSTR, M68K_VEC_PRIVILEGE, M68K_VEC_LINE_A, M68K_VEC_LINE_F:
		pc = cpu.instrPC
	}
	cycles := m68kExceptionCycles(vector)
	if f := cpu.guarded(func() { cpu.enterException(vector, pc, cpu.interruptMask()) }); f != nil {
		return cycles + cpu.processGroup0(f)
	}
	return cycles
}

// enterException switches to supervisor mode, stacks PC and SR and loads the
// handler address. mask becomes the new interrupt mask.
func (cpu *M68KCPU) enterException(vector uint8, pc uint32, mask uint8) {
	cpu.state = M68K_EXC_VECTORING
	oldSR := cpu.SR
	newSR := (oldSR | M68K_SR_S) &^ (M68K_SR_T | M68K_SR_IPL)
	cpu.setSR(newSR | uint16(mask)<<M68K_SR_SHIFT)
	cpu.Push32(pc)
	cpu.Push16(oldSR)
	cpu.PC = cpu.read32(uint32(vector) * M68K_LONG_SIZE)
	cpu.stopped = false
	cpu.depth++
	cpu.state = M68K_EXC_SERVICING
}

// ProcessInterrupt acknowledges level and vectors to its handler.
func (cpu *M68KCPU) ProcessInterrupt(level uint8) int {
	cpu.stopped = false
	cpu.pendingIRQ &^= 1 << level

	vector := M68K_VEC_LEVEL1 + int(level) - 1
	if cpu.InterruptAck != nil {
		switch v := cpu.InterruptAck(level); {
		case v == M68K_SPURIOUS:
			vector = M68K_VEC_SPURIOUS
		case v >= 0 && v < 256:
			vector = v
		}
	}

	pc := cpu.PC
	f := cpu.guarded(func() {
		if cpu.read32(uint32(vector)*M68K_LONG_SIZE) == 0 {
			vector = M68K_VEC_UNINITIALISED
			if cpu.read32(uint32(vector)*M68K_LONG_SIZE) == 0 {
				vector = M68K_VEC_SPURIOUS
			}
		}
		cpu.enterException(uint8(vector), pc, level)
	})
	if f != nil {
		return M68K_CYCLE_INTERRUPT + cpu.processGroup0(f)
	}
	return M68K_CYCLE_INTERRUPT
}

// processGroup0 stacks a bus or address error frame. A second fault while
// doing so halts the CPU until the next reset.
func (cpu *M68KCPU) processGroup0(f *m68kFault) int {
	ssw := f.fc & 7
	if !f.write {
		ssw |= M68K_SSW_READ
	}
	if !f.instruction {
		ssw |= M68K_SSW_NOT_INSTR
	}
	pc := cpu.PC
	ir := cpu.currentIR

	second := cpu.guarded(func() {
		cpu.state = M68K_EXC_VECTORING
		oldSR := cpu.SR
		cpu.setSR((oldSR | M68K_SR_S) &^ M68K_SR_T)
		cpu.Push32(pc)
		cpu.Push16(oldSR)
		cpu.Push16(ir)
		cpu.Push32(f.address)
		cpu.Push16(ssw)
		cpu.PC = cpu.read32(uint32(f.vector) * M68K_LONG_SIZE)
		cpu.depth++
		cpu.state = M68K_EXC_SERVICING
	})
	cpu.stopped = false
	if second != nil {
		cpu.halted = true
		fmt.Printf("M68K: double fault, %v while stacking %v, CPU halted\n", second, f)
	}
	return M68K_CYCLE_GROUP0
}

// returnFromException is the RTE side of the state machine.
func (cpu *M68KCPU) returnFromException() {
	if cpu.depth > 0 {
		cpu.depth--
	}
	cpu.settleState()
}

// processReset loads SSP and PC from the vector table and clears every
// pending condition.
func (cpu *M68KCPU) processReset() int {
	cpu.pendingReset = false
	cpu.halted = false
	cpu.stopped = false
	cpu.pendingIRQ = 0
	cpu.pendingVector = 0
	cpu.depth = 0
	cpu.state = M68K_EXC_IDLE
	cpu.SR = M68K_SR_RESET

	f := cpu.guarded(func() {
		ssp := cpu.read32(M68K_RESET_SSP)
		pc := cpu.read32(M68K_RESET_VECTOR)
		cpu.SSP = ssp
		cpu.AddrRegs[7] = ssp
		cpu.PC = pc
	})
	if f != nil {
		cpu.halted = true
		fmt.Printf("M68K: %v reading reset vectors, CPU halted\n", f)
	}
	return M68K_CYCLE_RESET
}

// privilegeViolation discards the instruction's own timing and requests
// vector 8.
func (cpu *M68KCPU) privilegeViolation() {
	cpu.instrCycles = 0
	cpu.raiseException(M68K_VEC_PRIVILEGE)
}
