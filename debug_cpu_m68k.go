// debug_cpu_m68k.go - Machine Monitor adapter for the Mega Drive 68000

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
	"slices"
	"strings"
)

// DebugM68K exposes a Machine's 68000 to the monitor. Stepping goes through
// the Machine so line timing and interrupts stay correct.
type DebugM68K struct {
	machine     *Machine
	breakpoints map[uint64]*ConditionalBreakpoint
}

func NewDebugM68K(m *Machine) *DebugM68K {
	return &DebugM68K{
		machine:     m,
		breakpoints: make(map[uint64]*ConditionalBreakpoint),
	}
}

func (d *DebugM68K) CPUName() string   { return "68000" }
func (d *DebugM68K) AddressWidth() int { return 24 }

func (d *DebugM68K) GetRegisters() []RegisterInfo {
	r := d.machine.CPU.Registers()
	regs := make([]RegisterInfo, 0, 20)
	for i := 0; i < 8; i++ {
		regs = append(regs, RegisterInfo{
			Name: fmt.Sprintf("D%d", i), BitWidth: 32,
			Value: uint64(r.D[i]), Group: "data",
		})
	}
	for i := 0; i < 8; i++ {
		regs = append(regs, RegisterInfo{
			Name: fmt.Sprintf("A%d", i), BitWidth: 32,
			Value: uint64(r.A[i]), Group: "address",
		})
	}
	regs = append(regs,
		RegisterInfo{Name: "PC", BitWidth: 32, Value: uint64(r.PC), Group: "status"},
		RegisterInfo{Name: "SR", BitWidth: 16, Value: uint64(r.SR), Group: "status"},
		RegisterInfo{Name: "USP", BitWidth: 32, Value: uint64(r.USP), Group: "address"},
		RegisterInfo{Name: "SSP", BitWidth: 32, Value: uint64(r.SSP), Group: "address"},
	)
	return regs
}

func m68kRegIndex(upper string, prefix byte) (int, bool) {
	if len(upper) == 2 && upper[0] == prefix && upper[1] >= '0' && upper[1] <= '7' {
		return int(upper[1] - '0'), true
	}
	return 0, false
}

func (d *DebugM68K) GetRegister(name string) (uint64, bool) {
	r := d.machine.CPU.Registers()
	upper := strings.ToUpper(name)
	switch upper {
	case "PC":
		return uint64(r.PC), true
	case "SR":
		return uint64(r.SR), true
	case "CCR":
		return uint64(r.SR & 0xFF), true
	case "USP":
		return uint64(r.USP), true
	case "SSP":
		return uint64(r.SSP), true
	case "SP":
		return uint64(r.A[7]), true
	}
	if n, ok := m68kRegIndex(upper, 'D'); ok {
		return uint64(r.D[n]), true
	}
	if n, ok := m68kRegIndex(upper, 'A'); ok {
		return uint64(r.A[n]), true
	}
	return 0, false
}

func (d *DebugM68K) SetRegister(name string, value uint64) bool {
	cpu := d.machine.CPU
	r := cpu.Registers()
	v := uint32(value)
	upper := strings.ToUpper(name)
	switch upper {
	case "PC":
		r.PC = v & M68K_ADDRESS_MASK
	case "SR":
		// SetRegisters keeps A7 on the stack SR selects
		r.SR = uint16(value)
	case "CCR":
		r.SR = r.SR&0xFF00 | uint16(value&0x1F)
	case "USP":
		r.USP = v
	case "SSP":
		r.SSP = v
	case "SP", "A7":
		r.A[7] = v
		if r.SR&M68K_SR_S != 0 {
			r.SSP = v
		} else {
			r.USP = v
		}
	default:
		if n, ok := m68kRegIndex(upper, 'D'); ok {
			r.D[n] = v
		} else if n, ok := m68kRegIndex(upper, 'A'); ok {
			r.A[n] = v
		} else {
			return false
		}
	}
	cpu.SetRegisters(r)
	return true
}

func (d *DebugM68K) GetPC() uint64     { return uint64(d.machine.CPU.PC) }
func (d *DebugM68K) SetPC(addr uint64) { d.machine.CPU.PC = uint32(addr) & M68K_ADDRESS_MASK }

func (d *DebugM68K) Step() int { return d.machine.Step() }

// RunUntilBreak steps the machine until an enabled breakpoint fires, the
// CPU halts or budget cycles have run. A breakpoint at the starting PC is
// skipped once so "g" from a breakpoint makes progress.
func (d *DebugM68K) RunUntilBreak(budget int) (int, StopReason) {
	used := 0
	first := true
	for used < budget {
		if d.machine.CPU.Halted() {
			return used, StopHalted
		}
		if !first && d.checkBreakpoint(d.GetPC()) {
			return used, StopBreakpoint
		}
		first = false
		used += d.machine.Step()
	}
	return used, StopBudget
}

func (d *DebugM68K) checkBreakpoint(pc uint64) bool {
	bp, ok := d.breakpoints[pc]
	if !ok {
		return false
	}
	bp.HitCount++
	return evaluateCondition(bp.Condition, d, bp.HitCount)
}

func (d *DebugM68K) Disassemble(addr uint64, count int) []DisassembledLine {
	pc := d.GetPC()
	lines := disassembleM68K(d.machine.Bus.Read16, uint32(addr), count)
	for i := range lines {
		if lines[i].Address == pc {
			lines[i].IsPC = true
		}
	}
	return lines
}

func (d *DebugM68K) SetBreakpoint(addr uint64) bool {
	return d.SetConditionalBreakpoint(addr, nil)
}

func (d *DebugM68K) SetConditionalBreakpoint(addr uint64, cond *BreakpointCondition) bool {
	addr &= M68K_ADDRESS_MASK
	d.breakpoints[addr] = &ConditionalBreakpoint{Address: addr, Condition: cond}
	return true
}

func (d *DebugM68K) ClearBreakpoint(addr uint64) bool {
	addr &= M68K_ADDRESS_MASK
	if _, ok := d.breakpoints[addr]; ok {
		delete(d.breakpoints, addr)
		return true
	}
	return false
}

func (d *DebugM68K) ClearAllBreakpoints() {
	d.breakpoints = make(map[uint64]*ConditionalBreakpoint)
}

// ListBreakpoints returns breakpoints sorted by address.
func (d *DebugM68K) ListBreakpoints() []*ConditionalBreakpoint {
	result := make([]*ConditionalBreakpoint, 0, len(d.breakpoints))
	for _, bp := range d.breakpoints {
		result = append(result, bp)
	}
	slices.SortFunc(result, func(a, b *ConditionalBreakpoint) int {
		return int(a.Address) - int(b.Address)
	})
	return result
}

func (d *DebugM68K) HasBreakpoint(addr uint64) bool {
	_, ok := d.breakpoints[addr&M68K_ADDRESS_MASK]
	return ok
}

// ReadMemory reads through the bus without raising CPU faults. Unmapped
// bytes read as $FF.
func (d *DebugM68K) ReadMemory(addr uint64, size int) []byte {
	out := make([]byte, size)
	for i := range out {
		out[i] = d.machine.Bus.Read8(uint32(addr) + uint32(i))
	}
	return out
}

func (d *DebugM68K) WriteMemory(addr uint64, data []byte) {
	for i, b := range data {
		d.machine.Bus.Write8(uint32(addr)+uint32(i), b)
	}
}
