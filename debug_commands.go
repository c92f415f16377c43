// debug_commands.go - Command parser and handlers for Machine Monitor

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
	"os"
	"strconv"
	"strings"
)

// MonitorCommand is a parsed command with name and arguments.
type MonitorCommand struct {
	Name string
	Args []string
}

// ParseCommand splits a raw input line into a command name and arguments.
func ParseCommand(input string) MonitorCommand {
	input = strings.TrimSpace(input)
	if input == "" {
		return MonitorCommand{}
	}
	parts := strings.Fields(input)
	return MonitorCommand{
		Name: strings.ToLower(parts[0]),
		Args: parts[1:],
	}
}

// ParseAddress parses a monitor address in various formats:
// $hex, 0xhex, bare hex, #decimal
func ParseAddress(s string) (uint64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	// #decimal
	if strings.HasPrefix(s, "#") {
		v, err := strconv.ParseUint(s[1:], 10, 64)
		return v, err == nil
	}

	// $hex
	if strings.HasPrefix(s, "$") {
		v, err := strconv.ParseUint(s[1:], 16, 64)
		return v, err == nil
	}

	// 0x or 0X hex
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 64)
		return v, err == nil
	}

	v, err := strconv.ParseUint(s, 16, 64)
	return v, err == nil
}

// EvalAddress evaluates a simple expression: <term> [+|- <term>]*
// Each term is either a register name or a numeric address.
func EvalAddress(expr string, cpu DebuggableCPU) (uint64, bool) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, false
	}

	var result uint64
	op := byte('+')
	start := 0
	for i := 0; i <= len(expr); i++ {
		if i < len(expr) && (expr[i] != '+' && expr[i] != '-' || i == start) {
			continue
		}
		term := strings.TrimSpace(expr[start:i])
		if term == "" {
			return 0, false
		}
		var val uint64
		var ok bool
		if cpu != nil {
			val, ok = cpu.GetRegister(term)
		}
		if !ok {
			val, ok = ParseAddress(term)
		}
		if !ok {
			return 0, false
		}
		if op == '-' {
			result -= val
		} else {
			result += val
		}
		if i < len(expr) {
			op = expr[i]
		}
		start = i + 1
	}
	return result, true
}

// ExecuteCommand dispatches a command line. It returns true when the user
// asked to leave the monitor.
func (m *MachineMonitor) ExecuteCommand(input string) bool {
	cmd := ParseCommand(input)
	if cmd.Name == "" {
		return false
	}

	if len(m.history) == 0 || m.history[len(m.history)-1] != input {
		m.history = append(m.history, input)
	}

	switch cmd.Name {
	case "r":
		return m.cmdRegisters(cmd)
	case "d":
		return m.cmdDisassemble(cmd)
	case "m":
		return m.cmdMemoryDump(cmd)
	case "s":
		return m.cmdStep(cmd)
	case "g":
		return m.cmdGo(cmd)
	case "u":
		return m.cmdRunUntil(cmd)
	case "frame":
		return m.cmdFrame(cmd)
	case "x", "q":
		return true
	case "b":
		return m.cmdBreakpointSet(cmd)
	case "bc":
		return m.cmdBreakpointClear(cmd)
	case "bl":
		return m.cmdBreakpointList(cmd)
	case "f":
		return m.cmdFill(cmd)
	case "h":
		return m.cmdHunt(cmd)
	case "w":
		return m.cmdWrite(cmd)
	case "bt":
		return m.cmdBacktrace(cmd)
	case "ss":
		return m.cmdSaveState(cmd)
	case "sl":
		return m.cmdLoadState(cmd)
	case "bs":
		return m.cmdBackstep(cmd)
	case "io":
		return m.cmdIOView(cmd)
	case "reset":
		return m.cmdReset(cmd)
	case "irq":
		return m.cmdIRQ(cmd)
	case "pad":
		return m.cmdPad(cmd)
	case "trace":
		return m.cmdTrace(cmd)
	case "script":
		return m.cmdScript(cmd)
	case "memviz":
		return m.cmdMemviz(cmd)
	case "macro":
		return m.cmdMacro(cmd)
	case "?", "help":
		return m.cmdHelp(cmd)
	default:
		if cmds, ok := m.macros[cmd.Name]; ok {
			return m.executeMacro(cmds)
		}
		m.appendOutput(fmt.Sprintf("Unknown command: %s", cmd.Name), colorRed)
		return false
	}
}

func (m *MachineMonitor) cmdRegisters(cmd MonitorCommand) bool {
	if len(cmd.Args) >= 2 {
		name := cmd.Args[0]
		val, ok := ParseAddress(cmd.Args[1])
		if !ok {
			m.appendOutput(fmt.Sprintf("Invalid value: %s", cmd.Args[1]), colorRed)
			return false
		}
		if m.cpu.SetRegister(name, val) {
			m.appendOutput(fmt.Sprintf("%s = $%X", strings.ToUpper(name), val), colorGreen)
		} else {
			m.appendOutput(fmt.Sprintf("Unknown register: %s", name), colorRed)
		}
		return false
	}

	m.showRegisters()
	return false
}

func (m *MachineMonitor) showRegisters() {
	regs := m.cpu.GetRegisters()
	var row []string
	rowColor := uint32(colorWhite)
	flush := func() {
		if len(row) > 0 {
			m.appendOutput(strings.Join(row, "  "), rowColor)
			row, rowColor = nil, colorWhite
		}
	}
	for _, r := range regs {
		if prev, ok := m.prevRegs[r.Name]; ok && prev != r.Value {
			rowColor = colorGreen
		}
		if r.BitWidth == 16 {
			row = append(row, fmt.Sprintf("%-3s $%04X", r.Name, r.Value))
		} else {
			row = append(row, fmt.Sprintf("%-3s $%08X", r.Name, r.Value))
		}
		if len(row) == 4 {
			flush()
		}
	}
	flush()

	cpu := m.machine.CPU
	sr := uint16(regs[17].Value)
	flags := []byte("TSXNZVC")
	for i, bit := range []uint16{M68K_SR_T, M68K_SR_S, M68K_SR_X, M68K_SR_N, M68K_SR_Z, M68K_SR_V, M68K_SR_C} {
		if sr&bit == 0 {
			flags[i] = '-'
		}
	}
	status := fmt.Sprintf("%s  IPL %d  pending %08b  %s", flags, (sr>>8)&7, cpu.PendingInterrupts(), cpu.ExceptionState())
	if cpu.Stopped() {
		status += "  STOPPED"
	}
	if cpu.Halted() {
		status += "  HALTED"
	}
	m.appendOutput(status, colorDim)
}

func (m *MachineMonitor) cmdDisassemble(cmd MonitorCommand) bool {
	addr := m.cpu.GetPC()
	count := 16

	if len(cmd.Args) >= 1 {
		if v, ok := EvalAddress(cmd.Args[0], m.cpu); ok {
			addr = v
		}
	}
	if len(cmd.Args) >= 2 {
		if v, ok := ParseAddress(cmd.Args[1]); ok {
			count = int(v)
		}
	}

	m.showDisassemblyAt(addr, count)
	return false
}

func (m *MachineMonitor) showDisassembly(addr uint64, count int) {
	if addr == 0 {
		addr = m.cpu.GetPC()
	}
	m.showDisassemblyAt(addr, count)
}

func (m *MachineMonitor) showDisassemblyAt(addr uint64, count int) {
	for _, line := range m.cpu.Disassemble(addr, count) {
		color := uint32(colorWhite)
		prefix := "  "
		if line.IsPC {
			color = colorYellow
			prefix = "> "
		}
		if m.cpu.HasBreakpoint(line.Address) {
			prefix = "* "
			if !line.IsPC {
				color = colorRed
			}
		}
		m.appendOutput(fmt.Sprintf("%s%06X: %-24s %s", prefix, line.Address, line.HexBytes, line.Mnemonic), color)
	}
}

func (m *MachineMonitor) cmdMemoryDump(cmd MonitorCommand) bool {
	addr := uint64(MD_RAM_START)
	lines := 8

	if len(cmd.Args) >= 1 {
		if v, ok := EvalAddress(cmd.Args[0], m.cpu); ok {
			addr = v
		}
	}
	if len(cmd.Args) >= 2 {
		if v, ok := ParseAddress(cmd.Args[1]); ok {
			lines = int(v)
		}
	}

	for i := 0; i < lines; i++ {
		data := m.cpu.ReadMemory(addr, 16)

		var hexParts []string
		ascii := make([]byte, 0, 16)
		for _, b := range data {
			hexParts = append(hexParts, fmt.Sprintf("%02X", b))
			if b >= 0x20 && b < 0x7F {
				ascii = append(ascii, b)
			} else {
				ascii = append(ascii, '.')
			}
		}

		hexStr := strings.Join(hexParts[:8], " ") + "  " + strings.Join(hexParts[8:], " ")
		m.appendOutput(fmt.Sprintf("%06X: %s  %s", addr&M68K_ADDRESS_MASK, hexStr, ascii), colorWhite)
		addr += 16
	}
	return false
}

func (m *MachineMonitor) cmdStep(cmd MonitorCommand) bool {
	count := 1
	if len(cmd.Args) >= 1 {
		if v, ok := ParseAddress(cmd.Args[0]); ok {
			count = int(v)
		}
	}

	m.pushBackstep()

	totalCycles := 0
	for i := 0; i < count; i++ {
		totalCycles += m.cpu.Step()
	}

	m.appendOutput(fmt.Sprintf("Step: %d instruction(s), %d cycle(s)", count, totalCycles), colorCyan)

	for _, r := range m.cpu.GetRegisters() {
		if prev, ok := m.prevRegs[r.Name]; ok && prev != r.Value {
			m.appendOutput(fmt.Sprintf("  %s: $%X -> $%X", r.Name, prev, r.Value), colorGreen)
		}
	}
	m.saveCurrentRegs()

	m.showDisassembly(0, 1)
	return false
}

// cmdGo runs until a breakpoint. An optional argument sets PC first.
func (m *MachineMonitor) cmdGo(cmd MonitorCommand) bool {
	if len(cmd.Args) >= 1 {
		v, ok := EvalAddress(cmd.Args[0], m.cpu)
		if !ok {
			m.appendOutput(fmt.Sprintf("Invalid address: %s", cmd.Args[0]), colorRed)
			return false
		}
		m.cpu.SetPC(v)
	}
	m.pushBackstep()
	cycles, reason := m.cpu.RunUntilBreak(monitorGoBudget)
	m.reportStop(reason, cycles)
	return false
}

// cmdRunUntil runs to a temporary breakpoint.
func (m *MachineMonitor) cmdRunUntil(cmd MonitorCommand) bool {
	if len(cmd.Args) < 1 {
		m.appendOutput("Usage: u <addr>", colorRed)
		return false
	}
	addr, ok := EvalAddress(cmd.Args[0], m.cpu)
	if !ok {
		m.appendOutput(fmt.Sprintf("Invalid address: %s", cmd.Args[0]), colorRed)
		return false
	}
	had := m.cpu.HasBreakpoint(addr)
	if !had {
		m.cpu.SetBreakpoint(addr)
	}
	m.pushBackstep()
	cycles, reason := m.cpu.RunUntilBreak(monitorGoBudget)
	if !had {
		m.cpu.ClearBreakpoint(addr)
	}
	m.reportStop(reason, cycles)
	return false
}

// cmdFrame runs whole frames, ignoring breakpoints.
func (m *MachineMonitor) cmdFrame(cmd MonitorCommand) bool {
	count := 1
	if len(cmd.Args) >= 1 {
		if v, ok := ParseAddress(cmd.Args[0]); ok {
			count = int(v)
		}
	}
	m.pushBackstep()
	cycles := 0
	for i := 0; i < count; i++ {
		cycles += m.machine.RunFrame()
	}
	m.appendOutput(fmt.Sprintf("Ran %d frame(s), %d cycles, now frame %d", count, cycles, m.machine.Frames), colorCyan)
	m.saveCurrentRegs()
	return false
}

func (m *MachineMonitor) cmdBreakpointSet(cmd MonitorCommand) bool {
	if len(cmd.Args) < 1 {
		m.appendOutput("Usage: b <addr> [condition]", colorRed)
		return false
	}

	addr, ok := EvalAddress(cmd.Args[0], m.cpu)
	if !ok {
		m.appendOutput(fmt.Sprintf("Invalid address: %s", cmd.Args[0]), colorRed)
		return false
	}

	if len(cmd.Args) >= 2 {
		cond, err := ParseCondition(strings.Join(cmd.Args[1:], " "))
		if err != nil {
			m.appendOutput(fmt.Sprintf("Invalid condition: %s", err), colorRed)
			return false
		}
		m.cpu.SetConditionalBreakpoint(addr, cond)
		m.appendOutput(fmt.Sprintf("Breakpoint set at $%06X if %s", addr, FormatCondition(cond)), colorCyan)
	} else {
		m.cpu.SetBreakpoint(addr)
		m.appendOutput(fmt.Sprintf("Breakpoint set at $%06X", addr), colorCyan)
	}
	return false
}

func (m *MachineMonitor) cmdBreakpointClear(cmd MonitorCommand) bool {
	if len(cmd.Args) < 1 {
		m.appendOutput("Usage: bc <addr> | bc *", colorRed)
		return false
	}

	if cmd.Args[0] == "*" {
		m.cpu.ClearAllBreakpoints()
		m.appendOutput("All breakpoints cleared", colorCyan)
		return false
	}

	addr, ok := ParseAddress(cmd.Args[0])
	if !ok {
		m.appendOutput(fmt.Sprintf("Invalid address: %s", cmd.Args[0]), colorRed)
		return false
	}

	if m.cpu.ClearBreakpoint(addr) {
		m.appendOutput(fmt.Sprintf("Breakpoint cleared at $%06X", addr), colorCyan)
	} else {
		m.appendOutput(fmt.Sprintf("No breakpoint at $%06X", addr), colorRed)
	}
	return false
}

func (m *MachineMonitor) cmdBreakpointList(_ MonitorCommand) bool {
	bps := m.cpu.ListBreakpoints()
	if len(bps) == 0 {
		m.appendOutput("No breakpoints", colorDim)
		return false
	}
	for _, bp := range bps {
		condStr := ""
		if bp.Condition != nil {
			condStr = " if " + FormatCondition(bp.Condition)
		}
		hitStr := ""
		if bp.HitCount > 0 {
			hitStr = fmt.Sprintf(" (hits:%d)", bp.HitCount)
		}
		m.appendOutput(fmt.Sprintf("$%06X%s%s", bp.Address, condStr, hitStr), colorCyan)
	}
	return false
}

func (m *MachineMonitor) cmdFill(cmd MonitorCommand) bool {
	if len(cmd.Args) < 3 {
		m.appendOutput("Usage: f <start> <end> <byte>", colorRed)
		return false
	}

	start, ok1 := ParseAddress(cmd.Args[0])
	end, ok2 := ParseAddress(cmd.Args[1])
	val, ok3 := ParseAddress(cmd.Args[2])
	if !ok1 || !ok2 || !ok3 {
		m.appendOutput("Invalid argument", colorRed)
		return false
	}

	if end < start || end-start >= 0x100000 {
		m.appendOutput("Invalid range", colorRed)
		return false
	}

	data := make([]byte, end-start+1)
	for i := range data {
		data[i] = byte(val)
	}
	m.cpu.WriteMemory(start, data)
	m.appendOutput(fmt.Sprintf("Filled $%06X-$%06X with $%02X", start, end, byte(val)), colorCyan)
	return false
}

func (m *MachineMonitor) cmdHunt(cmd MonitorCommand) bool {
	if len(cmd.Args) < 3 {
		m.appendOutput("Usage: h <start> <end> <bytes..>", colorRed)
		return false
	}

	start, ok1 := ParseAddress(cmd.Args[0])
	end, ok2 := ParseAddress(cmd.Args[1])
	if !ok1 || !ok2 || end < start {
		m.appendOutput("Invalid argument", colorRed)
		return false
	}

	var pattern []byte
	for _, arg := range cmd.Args[2:] {
		v, ok := ParseAddress(arg)
		if !ok {
			m.appendOutput(fmt.Sprintf("Invalid byte: %s", arg), colorRed)
			return false
		}
		pattern = append(pattern, byte(v))
	}

	window := m.cpu.ReadMemory(start, int(end-start)+1)
	found := 0
	for i := 0; i+len(pattern) <= len(window); i++ {
		if string(window[i:i+len(pattern)]) != string(pattern) {
			continue
		}
		m.appendOutput(fmt.Sprintf("Found at $%06X", start+uint64(i)), colorCyan)
		found++
		if found >= 256 {
			m.appendOutput("... (truncated)", colorDim)
			break
		}
	}
	if found == 0 {
		m.appendOutput("Not found", colorDim)
	}
	return false
}

func (m *MachineMonitor) cmdWrite(cmd MonitorCommand) bool {
	if len(cmd.Args) < 2 {
		m.appendOutput("Usage: w <addr> <bytes..>", colorRed)
		return false
	}
	addr, ok := EvalAddress(cmd.Args[0], m.cpu)
	if !ok {
		m.appendOutput(fmt.Sprintf("Invalid address: %s", cmd.Args[0]), colorRed)
		return false
	}
	var data []byte
	for _, arg := range cmd.Args[1:] {
		v, ok := ParseAddress(arg)
		if !ok {
			m.appendOutput(fmt.Sprintf("Invalid byte: %s", arg), colorRed)
			return false
		}
		data = append(data, byte(v))
	}
	m.cpu.WriteMemory(addr, data)
	m.appendOutput(fmt.Sprintf("Wrote %d byte(s) at $%06X", len(data), addr), colorCyan)
	return false
}

func (m *MachineMonitor) cmdBacktrace(cmd MonitorCommand) bool {
	depth := 8
	if len(cmd.Args) >= 1 {
		if v, ok := ParseAddress(cmd.Args[0]); ok {
			depth = int(v)
		}
	}
	frames := backtraceFrames(m.cpu, depth)
	if len(frames) > 0 {
		m.appendOutput("Frame chain (A6):", colorCyan)
		for i, addr := range frames {
			m.appendOutput(fmt.Sprintf("  #%d $%06X", i, addr), colorWhite)
		}
	}
	m.appendOutput("Stack (A7):", colorCyan)
	for i, v := range backtraceStack(m.cpu, depth) {
		m.appendOutput(fmt.Sprintf("  +%02X $%08X", i*4, v), colorWhite)
	}
	return false
}

func (m *MachineMonitor) cmdSaveState(cmd MonitorCommand) bool {
	if len(cmd.Args) < 1 {
		m.appendOutput("Usage: ss <file>", colorRed)
		return false
	}
	if err := SaveSnapshotToFile(m.machine.Snapshot(), cmd.Args[0]); err != nil {
		m.appendOutput(fmt.Sprintf("Save failed: %v", err), colorRed)
		return false
	}
	m.appendOutput(fmt.Sprintf("State saved to %s", cmd.Args[0]), colorCyan)
	return false
}

func (m *MachineMonitor) cmdLoadState(cmd MonitorCommand) bool {
	if len(cmd.Args) < 1 {
		m.appendOutput("Usage: sl <file>", colorRed)
		return false
	}
	snap, err := LoadSnapshotFromFile(cmd.Args[0])
	if err != nil {
		m.appendOutput(fmt.Sprintf("Load failed: %v", err), colorRed)
		return false
	}
	if err := m.machine.Restore(snap); err != nil {
		m.appendOutput(fmt.Sprintf("Restore failed: %v", err), colorRed)
		return false
	}
	m.appendOutput(fmt.Sprintf("State loaded from %s", cmd.Args[0]), colorCyan)
	m.showRegisters()
	m.saveCurrentRegs()
	return false
}

func (m *MachineMonitor) cmdBackstep(_ MonitorCommand) bool {
	if len(m.backstep) == 0 {
		m.appendOutput("No history", colorRed)
		return false
	}
	snap := m.backstep[len(m.backstep)-1]
	m.backstep = m.backstep[:len(m.backstep)-1]
	if err := m.machine.Restore(snap); err != nil {
		m.appendOutput(fmt.Sprintf("Restore failed: %v", err), colorRed)
		return false
	}
	m.appendOutput(fmt.Sprintf("Back to $%06X (%d left)", m.cpu.GetPC(), len(m.backstep)), colorCyan)
	m.saveCurrentRegs()
	m.showDisassembly(0, 1)
	return false
}

func (m *MachineMonitor) cmdIOView(cmd MonitorCommand) bool {
	if len(cmd.Args) < 1 {
		m.appendOutput("Devices: "+strings.Join(listIODevices(), ", "), colorCyan)
		return false
	}
	for _, line := range formatIOView(m.machine, strings.ToLower(cmd.Args[0])) {
		m.appendOutput(line, colorWhite)
	}
	return false
}

func (m *MachineMonitor) cmdReset(cmd MonitorCommand) bool {
	mode := ResetSoft
	if len(cmd.Args) >= 1 && strings.EqualFold(cmd.Args[0], "hard") {
		mode = ResetHard
	}
	m.backstep = nil
	m.machine.Reset(mode)
	m.appendOutput(fmt.Sprintf("%s reset, PC=$%06X", mode, m.cpu.GetPC()), colorCyan)
	m.saveCurrentRegs()
	return false
}

func (m *MachineMonitor) cmdIRQ(cmd MonitorCommand) bool {
	if len(cmd.Args) < 1 {
		m.appendOutput("Usage: irq <level 1-7>", colorRed)
		return false
	}
	level, err := strconv.Atoi(cmd.Args[0])
	if err != nil || level < 1 || level > 7 {
		m.appendOutput(fmt.Sprintf("Invalid level: %s", cmd.Args[0]), colorRed)
		return false
	}
	m.machine.RaiseInterrupt(uint8(level))
	m.appendOutput(fmt.Sprintf("Level %d interrupt asserted", level), colorCyan)
	return false
}

// cmdPad sets pad buttons from a string such as "ub" or "sac".
func (m *MachineMonitor) cmdPad(cmd MonitorCommand) bool {
	if len(cmd.Args) < 2 {
		m.appendOutput("Usage: pad <1|2> <buttons: udlrabcs or ->", colorRed)
		return false
	}
	n, err := strconv.Atoi(cmd.Args[0])
	if err != nil || n < 1 || n > 2 {
		m.appendOutput(fmt.Sprintf("Invalid pad: %s", cmd.Args[0]), colorRed)
		return false
	}
	buttons, err := ParsePadButtons(cmd.Args[1])
	if err != nil {
		m.appendOutput(err.Error(), colorRed)
		return false
	}
	m.machine.SetPad(n-1, buttons)
	m.appendOutput(fmt.Sprintf("Pad %d = %08b", n, buttons), colorCyan)
	return false
}

func (m *MachineMonitor) cmdTrace(cmd MonitorCommand) bool {
	on := !m.machine.CPU.Trace
	if len(cmd.Args) >= 1 {
		on = strings.EqualFold(cmd.Args[0], "on")
	}
	m.machine.CPU.Trace = on
	m.appendOutput(fmt.Sprintf("Trace %v", on), colorCyan)
	return false
}

func (m *MachineMonitor) cmdScript(cmd MonitorCommand) bool {
	if len(cmd.Args) < 1 {
		m.appendOutput("Usage: script <file.lua>", colorRed)
		return false
	}
	if m.Script == nil {
		m.appendOutput("Scripting unavailable", colorRed)
		return false
	}
	if err := m.Script(cmd.Args[0]); err != nil {
		m.appendOutput(fmt.Sprintf("Script error: %v", err), colorRed)
		return false
	}
	m.saveCurrentRegs()
	return false
}

func (m *MachineMonitor) cmdMemviz(cmd MonitorCommand) bool {
	if len(cmd.Args) < 1 {
		m.appendOutput("Usage: memviz <file.dot>", colorRed)
		return false
	}
	f, err := os.Create(cmd.Args[0])
	if err != nil {
		m.appendOutput(fmt.Sprintf("memviz: %v", err), colorRed)
		return false
	}
	defer f.Close()
	WriteMachineGraph(f, m.machine)
	m.appendOutput(fmt.Sprintf("Machine graph written to %s", cmd.Args[0]), colorCyan)
	return false
}

// cmdMacro defines a macro: macro <name> <cmd1>; <cmd2>; ...
func (m *MachineMonitor) cmdMacro(cmd MonitorCommand) bool {
	if len(cmd.Args) == 0 {
		for name, cmds := range m.macros {
			m.appendOutput(fmt.Sprintf("%s: %s", name, strings.Join(cmds, "; ")), colorCyan)
		}
		return false
	}
	if len(cmd.Args) < 2 {
		m.appendOutput("Usage: macro <name> <cmd>; <cmd>...", colorRed)
		return false
	}
	var cmds []string
	for _, part := range strings.Split(strings.Join(cmd.Args[1:], " "), ";") {
		if part = strings.TrimSpace(part); part != "" {
			cmds = append(cmds, part)
		}
	}
	m.macros[strings.ToLower(cmd.Args[0])] = cmds
	m.appendOutput(fmt.Sprintf("Macro %s defined (%d commands)", cmd.Args[0], len(cmds)), colorCyan)
	return false
}

func (m *MachineMonitor) executeMacro(cmds []string) bool {
	for _, c := range cmds {
		if name := ParseCommand(c).Name; m.macros[name] != nil {
			m.appendOutput(fmt.Sprintf("Nested macro %s skipped", name), colorRed)
			continue
		}
		if m.ExecuteCommand(c) {
			return true
		}
	}
	return false
}

func (m *MachineMonitor) cmdHelp(_ MonitorCommand) bool {
	help := []string{
		"r [reg val]        registers / set register",
		"d [addr [n]]       disassemble",
		"m [addr [lines]]   memory dump",
		"s [n]              step n instructions",
		"g [addr]           go until breakpoint",
		"u <addr>           run until address",
		"frame [n]          run n frames",
		"b <addr> [cond]    breakpoint (cond: d0==$10, [$FF0000].w>5, hitcount>3)",
		"bc <addr>|*        clear breakpoint(s)",
		"bl                 list breakpoints",
		"f <s> <e> <byte>   fill memory",
		"h <s> <e> <bytes>  hunt for bytes",
		"w <addr> <bytes>   write bytes",
		"bt [depth]         backtrace",
		"ss/sl <file>       save/load state",
		"bs                 step back",
		"io [device]        device registers",
		"reset [hard]       reset the machine",
		"irq <level>        assert interrupt level",
		"pad <n> <buttons>  set pad buttons",
		"trace [on|off]     instruction trace",
		"script <file>      run a Lua script",
		"memviz <file>      write machine graph",
		"macro <name> ...   define macro",
		"x                  exit",
	}
	for _, line := range help {
		m.appendOutput(line, colorDim)
	}
	return false
}
