// debug_monitor.go - Machine Monitor core state

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

// OutputLine holds styled text for the monitor scrollback buffer.
type OutputLine struct {
	Text  string
	Color uint32 // RGBA packed
}

const (
	monitorMaxOutput    = 500
	monitorBackstepSize = 64
	monitorGoBudget     = 60 * VDP_CYCLES_LINE * VDP_LINES_PAL
)

// MachineMonitor is the interactive debugger. It owns no goroutines: every
// command runs the machine synchronously and returns.
type MachineMonitor struct {
	machine *Machine
	cpu     DebuggableCPU

	outputLines []OutputLine
	drained     int

	history []string

	prevRegs map[string]uint64

	// backstep keeps the machine state before each monitor step
	backstep []*MachineSnapshot

	macros map[string][]string

	// Script runs a Lua file against the machine for the "script" command.
	Script func(path string) error
}

func NewMachineMonitor(m *Machine) *MachineMonitor {
	mon := &MachineMonitor{
		machine:  m,
		cpu:      NewDebugM68K(m),
		prevRegs: make(map[string]uint64),
		macros:   make(map[string][]string),
	}
	mon.saveCurrentRegs()
	return mon
}

// CPU returns the debug adapter the monitor drives.
func (m *MachineMonitor) CPU() DebuggableCPU {
	return m.cpu
}

// Banner prints the greeting with the current registers and code.
func (m *MachineMonitor) Banner() {
	m.appendOutput("MACHINE MONITOR - Type ? for help", colorCyan)
	m.showRegisters()
	m.showDisassembly(0, 8)
}

// appendOutput adds a line to the scrollback buffer.
func (m *MachineMonitor) appendOutput(text string, color uint32) {
	m.outputLines = append(m.outputLines, OutputLine{Text: text, Color: color})
	if len(m.outputLines) > monitorMaxOutput {
		cut := len(m.outputLines) - monitorMaxOutput
		m.outputLines = m.outputLines[cut:]
		m.drained = max(0, m.drained-cut)
	}
}

// Output returns the whole scrollback buffer.
func (m *MachineMonitor) Output() []OutputLine {
	return m.outputLines
}

// DrainOutput returns the lines added since the last call.
func (m *MachineMonitor) DrainOutput() []OutputLine {
	out := m.outputLines[m.drained:]
	m.drained = len(m.outputLines)
	return out
}

// OutputText joins the scrollback into plain text.
func (m *MachineMonitor) OutputText() string {
	var sb strings.Builder
	for _, l := range m.outputLines {
		sb.WriteString(l.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// saveCurrentRegs snapshots the registers for change detection.
func (m *MachineMonitor) saveCurrentRegs() {
	m.prevRegs = make(map[string]uint64)
	for _, r := range m.cpu.GetRegisters() {
		m.prevRegs[r.Name] = r.Value
	}
}

func (m *MachineMonitor) pushBackstep() {
	m.backstep = append(m.backstep, m.machine.Snapshot())
	if len(m.backstep) > monitorBackstepSize {
		m.backstep = m.backstep[1:]
	}
}

func (m *MachineMonitor) reportStop(reason StopReason, cycles int) {
	switch reason {
	case StopBreakpoint:
		m.appendOutput(fmt.Sprintf("BREAK at $%06X after %d cycles", m.cpu.GetPC(), cycles), colorRed)
	case StopHalted:
		m.appendOutput(fmt.Sprintf("CPU HALTED (double fault) at $%06X", m.cpu.GetPC()), colorRed)
	default:
		m.appendOutput(fmt.Sprintf("Stopped at $%06X after %d cycles, frame %d line %d",
			m.cpu.GetPC(), cycles, m.machine.Frames, m.machine.Line()), colorCyan)
	}
	m.showRegisters()
	m.saveCurrentRegs()
	m.showDisassembly(0, 4)
}

// Color constants (RGBA packed as 0xRRGGBBAA)
const (
	colorWhite   = 0xFFFFFFFF
	colorCyan    = 0x64C8FFFF
	colorYellow  = 0xFFFF55FF
	colorRed     = 0xFF5555FF
	colorGreen   = 0x55FF55FF
	colorMagenta = 0xFF55FFFF
	colorDim     = 0x5555FFFF
)
