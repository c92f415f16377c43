package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Address parsing
// ---------------------------------------------------------------------------

func TestAddressParsing(t *testing.T) {
	tests := []struct {
		input string
		want  uint64
		ok    bool
	}{
		{"$1000", 0x1000, true},
		{"0x1000", 0x1000, true},
		{"1000", 0x1000, true},
		{"#4096", 4096, true},
		{"$DEAD", 0xDEAD, true},
		{"0XBEEF", 0xBEEF, true},
		{"FF", 0xFF, true},
		{"#0", 0, true},
		{"$0", 0, true},
		{"", 0, false},
		{"$G", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseAddress(tt.input)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseAddress(%q) = (%X, %v), want (%X, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

// ---------------------------------------------------------------------------
// Command parsing
// ---------------------------------------------------------------------------

func TestCommandParsing(t *testing.T) {
	tests := []struct {
		input    string
		wantName string
		wantArgs []string
	}{
		{"r pc 1000", "r", []string{"pc", "1000"}},
		{"d", "d", nil},
		{"  m  $FF0000  8  ", "m", []string{"$FF0000", "8"}},
		{"S", "s", nil},
		{"g $2000", "g", []string{"$2000"}},
		{"", "", nil},
		{"b 200 d0==$10", "b", []string{"200", "d0==$10"}},
	}

	for _, tt := range tests {
		cmd := ParseCommand(tt.input)
		if cmd.Name != tt.wantName {
			t.Errorf("ParseCommand(%q).Name = %q, want %q", tt.input, cmd.Name, tt.wantName)
		}
		if len(cmd.Args) != len(tt.wantArgs) {
			t.Errorf("ParseCommand(%q).Args = %v, want %v", tt.input, cmd.Args, tt.wantArgs)
		}
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestMonitor(t *testing.T, program ...uint16) (*MachineMonitor, *Machine) {
	t.Helper()
	m := newTestMachine(t, MachineConfig{}, program...)
	return NewMachineMonitor(m), m
}

func runCommand(mon *MachineMonitor, input string) (bool, string) {
	mon.DrainOutput()
	exit := mon.ExecuteCommand(input)
	var sb strings.Builder
	for _, l := range mon.DrainOutput() {
		sb.WriteString(l.Text)
		sb.WriteByte('\n')
	}
	return exit, sb.String()
}

func TestEvalAddress(t *testing.T) {
	mon, m := newTestMonitor(t)
	m.CPU.DataRegs[0] = 0x100
	m.CPU.AddrRegs[1] = 0xFF0000

	tests := []struct {
		expr string
		want uint64
	}{
		{"d0", 0x100},
		{"a1+d0", 0xFF0100},
		{"a1-$10", 0xFEFFF0},
		{"$200+#16", 0x210},
	}
	for _, tt := range tests {
		got, ok := EvalAddress(tt.expr, mon.CPU())
		if !ok || got != tt.want {
			t.Errorf("EvalAddress(%q) = $%X, %v, want $%X", tt.expr, got, ok, tt.want)
		}
	}
	if _, ok := EvalAddress("a1+", mon.CPU()); ok {
		t.Error("trailing operator accepted")
	}
}

// ---------------------------------------------------------------------------
// Registers and memory
// ---------------------------------------------------------------------------

func TestCommandRegisters(t *testing.T) {
	mon, m := newTestMonitor(t)

	_, out := runCommand(mon, "r d1 42")
	if m.CPU.DataRegs[1] != 0x42 {
		t.Fatalf("D1 = $%X after r d1 42: %s", m.CPU.DataRegs[1], out)
	}
	_, out = runCommand(mon, "r")
	if !strings.Contains(out, "D1  $00000042") {
		t.Errorf("register display missing D1:\n%s", out)
	}
	if !strings.Contains(out, "IPL 7") {
		t.Errorf("status line missing interrupt mask:\n%s", out)
	}
	_, out = runCommand(mon, "r q9 1")
	if !strings.Contains(out, "Unknown register") {
		t.Errorf("bad register accepted:\n%s", out)
	}
}

func TestCommandMemoryDump(t *testing.T) {
	mon, m := newTestMonitor(t)
	m.Bus.Write32(0xFF0000, 0x42414443)

	_, out := runCommand(mon, "m ff0000 1")
	if !strings.Contains(out, "FF0000: 42 41 44 43") {
		t.Errorf("dump:\n%s", out)
	}
	if !strings.Contains(out, "BADC") {
		t.Errorf("ASCII column missing:\n%s", out)
	}
}

func TestMemoryFillWriteHunt(t *testing.T) {
	mon, m := newTestMonitor(t)

	runCommand(mon, "f ff0000 ff000f aa")
	for a := uint32(0xFF0000); a <= 0xFF000F; a++ {
		if m.Bus.Read8(a) != 0xAA {
			t.Fatalf("$%06X not filled", a)
		}
	}

	runCommand(mon, "w ff0010 de ad be ef")
	if got := m.Bus.Read32(0xFF0010); got != 0xDEADBEEF {
		t.Fatalf("write = $%08X", got)
	}

	_, out := runCommand(mon, "h ff0000 ff00ff ad be")
	if !strings.Contains(out, "Found at $FF0011") {
		t.Errorf("hunt:\n%s", out)
	}
	_, out = runCommand(mon, "h ff0000 ff00ff 12 34")
	if !strings.Contains(out, "Not found") {
		t.Errorf("hunt miss:\n%s", out)
	}
	_, out = runCommand(mon, "f ff0010 ff0000 00")
	if !strings.Contains(out, "Invalid range") {
		t.Errorf("reversed fill range accepted:\n%s", out)
	}
}

// ---------------------------------------------------------------------------
// Execution
// ---------------------------------------------------------------------------

func TestCommandStep(t *testing.T) {
	mon, m := newTestMonitor(t, 0x7005, 0x7203) // MOVEQ #5,D0; MOVEQ #3,D1

	_, out := runCommand(mon, "s")
	if m.CPU.DataRegs[0] != 5 || m.CPU.PC != testROMEntry+2 {
		t.Fatalf("D0 = %d PC = $%X", m.CPU.DataRegs[0], m.CPU.PC)
	}
	if !strings.Contains(out, "D0: $0 -> $5") {
		t.Errorf("change not reported:\n%s", out)
	}
	if !strings.Contains(out, "MOVEQ #3,D1") {
		t.Errorf("next instruction not shown:\n%s", out)
	}
}

func TestCommandGoToBreakpoint(t *testing.T) {
	mon, m := newTestMonitor(t, 0x4E71, 0x4E71, 0x7001, 0x60FE)

	runCommand(mon, "b 204")
	exit, out := runCommand(mon, "g")
	if exit {
		t.Fatal("g left the monitor")
	}
	if m.CPU.PC != 0x204 {
		t.Fatalf("PC = $%X, want $204", m.CPU.PC)
	}
	if !strings.Contains(out, "BREAK at $000204") {
		t.Errorf("stop report:\n%s", out)
	}
}

func TestConditionalBreakpoint(t *testing.T) {
	// loop: ADDQ.L #1,D0; BRA.S loop
	mon, m := newTestMonitor(t, 0x5280, 0x60FC)

	runCommand(mon, "b 200 d0==3")
	runCommand(mon, "g")
	if m.CPU.PC != 0x200 || m.CPU.DataRegs[0] != 3 {
		t.Fatalf("stopped at $%X with D0 = %d", m.CPU.PC, m.CPU.DataRegs[0])
	}

	runCommand(mon, "bc *")
	runCommand(mon, "b 202 hitcount>=4")
	runCommand(mon, "g")
	if m.CPU.DataRegs[0] != 7 {
		t.Errorf("hit count breakpoint stopped with D0 = %d, want 7", m.CPU.DataRegs[0])
	}
}

func TestCommandRunUntil(t *testing.T) {
	mon, m := newTestMonitor(t, 0x4E71, 0x4E71, 0x4E71, 0x60FE)
	runCommand(mon, "u 206")
	if m.CPU.PC != 0x206 {
		t.Fatalf("PC = $%X", m.CPU.PC)
	}
	if mon.CPU().HasBreakpoint(0x206) {
		t.Error("temporary breakpoint left behind")
	}
}

func TestCommandFrame(t *testing.T) {
	mon, m := newTestMonitor(t, 0x60FE)
	_, out := runCommand(mon, "frame 2")
	if m.Frames != 2 {
		t.Fatalf("Frames = %d", m.Frames)
	}
	if !strings.Contains(out, "Ran 2 frame(s)") {
		t.Errorf("frame report:\n%s", out)
	}
}

func TestBackstep(t *testing.T) {
	mon, m := newTestMonitor(t, 0x7001, 0x7202, 0x60FE)
	runCommand(mon, "s")
	runCommand(mon, "s")
	if m.CPU.DataRegs[1] != 2 {
		t.Fatal("second step did not run")
	}
	runCommand(mon, "bs")
	if m.CPU.PC != testROMEntry+2 || m.CPU.DataRegs[1] != 0 {
		t.Errorf("after bs PC = $%X D1 = %d", m.CPU.PC, m.CPU.DataRegs[1])
	}
	runCommand(mon, "bs")
	_, out := runCommand(mon, "bs")
	if !strings.Contains(out, "No history") {
		t.Errorf("empty history:\n%s", out)
	}
}

// ---------------------------------------------------------------------------
// Breakpoint management
// ---------------------------------------------------------------------------

func TestBreakpointSetClearList(t *testing.T) {
	mon, _ := newTestMonitor(t)

	runCommand(mon, "b 300")
	runCommand(mon, "b 400 [ff0000].w>5")
	_, out := runCommand(mon, "bl")
	if !strings.Contains(out, "$000300") || !strings.Contains(out, "$000400 if [$FF0000].w>$5") {
		t.Errorf("list:\n%s", out)
	}
	if i, j := strings.Index(out, "$000300"), strings.Index(out, "$000400"); i > j {
		t.Error("breakpoints not sorted")
	}

	runCommand(mon, "bc 300")
	if mon.CPU().HasBreakpoint(0x300) {
		t.Error("bc 300 did not clear")
	}
	_, out = runCommand(mon, "bc 300")
	if !strings.Contains(out, "No breakpoint") {
		t.Errorf("second clear:\n%s", out)
	}
	runCommand(mon, "bc *")
	_, out = runCommand(mon, "bl")
	if !strings.Contains(out, "No breakpoints") {
		t.Errorf("after bc *:\n%s", out)
	}
}

// ---------------------------------------------------------------------------
// Machine control
// ---------------------------------------------------------------------------

func TestSaveLoadStateCommands(t *testing.T) {
	mon, m := newTestMonitor(t, 0x7001, 0x60FE)
	path := filepath.Join(t.TempDir(), "state.mdss")

	runCommand(mon, "s")
	_, out := runCommand(mon, "ss "+path)
	if !strings.Contains(out, "State saved") {
		t.Fatalf("save:\n%s", out)
	}
	m.CPU.DataRegs[0] = 0x99
	m.Bus.Write8(0xFF0000, 0x11)

	_, out = runCommand(mon, "sl "+path)
	if !strings.Contains(out, "State loaded") {
		t.Fatalf("load:\n%s", out)
	}
	if m.CPU.DataRegs[0] != 1 || m.Bus.Read8(0xFF0000) != 0 {
		t.Errorf("D0 = $%X RAM = $%02X after load", m.CPU.DataRegs[0], m.Bus.Read8(0xFF0000))
	}

	_, out = runCommand(mon, "sl "+filepath.Join(t.TempDir(), "missing"))
	if !strings.Contains(out, "Load failed") {
		t.Errorf("missing file:\n%s", out)
	}
}

func TestResetIRQPadCommands(t *testing.T) {
	mon, m := newTestMonitor(t, 0x7001, 0x60FE)
	runCommand(mon, "s")
	runCommand(mon, "reset")
	if m.CPU.PC != testROMEntry {
		t.Errorf("PC = $%X after reset", m.CPU.PC)
	}

	_, out := runCommand(mon, "irq 9")
	if !strings.Contains(out, "Invalid level") {
		t.Errorf("irq 9:\n%s", out)
	}
	runCommand(mon, "irq 7")
	if m.CPU.PendingInterrupts()&(1<<7) == 0 {
		t.Error("level 7 not pending")
	}

	runCommand(mon, "pad 2 sb")
	if m.IO.Pads[1].Buttons != PadStart|PadB {
		t.Errorf("pad 2 = %08b", m.IO.Pads[1].Buttons)
	}
	_, out = runCommand(mon, "pad 3 a")
	if !strings.Contains(out, "Invalid pad") {
		t.Errorf("pad 3:\n%s", out)
	}
}

func TestTraceToggle(t *testing.T) {
	mon, m := newTestMonitor(t)
	runCommand(mon, "trace on")
	if !m.CPU.Trace {
		t.Fatal("trace on ignored")
	}
	runCommand(mon, "trace")
	if m.CPU.Trace {
		t.Error("trace did not toggle off")
	}
}

func TestIOViewCommand(t *testing.T) {
	mon, m := newTestMonitor(t)
	m.Bus.Write16(0xC00004, 0x8F02)

	_, out := runCommand(mon, "io")
	for _, dev := range []string{"vdp", "psg", "tmss", "z80"} {
		if !strings.Contains(out, dev) {
			t.Errorf("device %s not listed:\n%s", dev, out)
		}
	}
	_, out = runCommand(mon, "io vdp")
	if !strings.Contains(out, "VDP") {
		t.Errorf("vdp view:\n%s", out)
	}
	_, out = runCommand(mon, "io nothing")
	if !strings.Contains(out, "Unknown device") {
		t.Errorf("unknown device:\n%s", out)
	}
}

func TestMemvizCommand(t *testing.T) {
	mon, _ := newTestMonitor(t)
	path := filepath.Join(t.TempDir(), "machine.dot")
	runCommand(mon, "memviz "+path)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "digraph") {
		t.Errorf("not a dot graph: %.80s", data)
	}
}

func TestScriptCommand(t *testing.T) {
	mon, _ := newTestMonitor(t)
	_, out := runCommand(mon, "script x.lua")
	if !strings.Contains(out, "Scripting unavailable") {
		t.Errorf("no script host:\n%s", out)
	}
	var ran string
	mon.Script = func(path string) error { ran = path; return nil }
	runCommand(mon, "script x.lua")
	if ran != "x.lua" {
		t.Errorf("script hook got %q", ran)
	}
}

// ---------------------------------------------------------------------------
// Macros, help and exit
// ---------------------------------------------------------------------------

func TestMacro(t *testing.T) {
	mon, m := newTestMonitor(t, 0x7001, 0x7202, 0x7403, 0x60FE)
	runCommand(mon, "macro two s; s")
	runCommand(mon, "two")
	if m.CPU.PC != testROMEntry+4 {
		t.Errorf("PC = $%X after macro", m.CPU.PC)
	}
	_, out := runCommand(mon, "macro")
	if !strings.Contains(out, "two: s; s") {
		t.Errorf("macro list:\n%s", out)
	}

	runCommand(mon, "macro loop two")
	_, out = runCommand(mon, "loop")
	if !strings.Contains(out, "Nested macro two skipped") {
		t.Errorf("nested macro:\n%s", out)
	}
}

func TestCommandExitAndHelp(t *testing.T) {
	mon, _ := newTestMonitor(t)
	for _, c := range []string{"x", "q"} {
		if exit, _ := runCommand(mon, c); !exit {
			t.Errorf("%q should leave the monitor", c)
		}
	}
	_, out := runCommand(mon, "?")
	if !strings.Contains(out, "breakpoint") {
		t.Errorf("help:\n%s", out)
	}
	_, out = runCommand(mon, "zz")
	if !strings.Contains(out, "Unknown command: zz") {
		t.Errorf("unknown command:\n%s", out)
	}
}

// ---------------------------------------------------------------------------
// Output buffer
// ---------------------------------------------------------------------------

func TestOutputScrollback(t *testing.T) {
	mon, _ := newTestMonitor(t)
	for i := 0; i < monitorMaxOutput+50; i++ {
		mon.appendOutput("line", colorWhite)
	}
	if n := len(mon.Output()); n != monitorMaxOutput {
		t.Errorf("scrollback holds %d lines", n)
	}
	mon.DrainOutput()
	mon.appendOutput("fresh", colorWhite)
	lines := mon.DrainOutput()
	if len(lines) != 1 || lines[0].Text != "fresh" {
		t.Errorf("drain returned %v", lines)
	}
}

func TestRegisterChangeHighlight(t *testing.T) {
	mon, _ := newTestMonitor(t, 0x7001)
	runCommand(mon, "s")
	mon.DrainOutput()
	mon.ExecuteCommand("r d0 5")
	mon.ExecuteCommand("r")
	green := false
	for _, l := range mon.DrainOutput() {
		if strings.Contains(l.Text, "D0") && l.Color == colorGreen {
			green = true
		}
	}
	if !green {
		t.Error("changed register row not highlighted")
	}
}

func TestBanner(t *testing.T) {
	mon, _ := newTestMonitor(t, 0x4E71)
	mon.Banner()
	text := mon.OutputText()
	if !strings.Contains(text, "MACHINE MONITOR") || !strings.Contains(text, "> 000200") {
		t.Errorf("banner:\n%s", text)
	}
}

func TestOverlayLines(t *testing.T) {
	mon, m := newTestMonitor(t, 0x7001, 0x4E71)
	m.CPU.DataRegs[1] = 0xCAFE
	lines := NewMonitorOverlay(mon).Lines(true)
	if len(lines) < 5+overlayDisasm {
		t.Fatalf("got %d lines", len(lines))
	}
	if !strings.Contains(lines[0].Text, "D1  0000CAFE") {
		t.Errorf("register row %q", lines[0].Text)
	}
	if !strings.HasPrefix(lines[4].Text, "PC  000200") || !strings.HasSuffix(lines[4].Text, "PAUSED") {
		t.Errorf("status %q", lines[4].Text)
	}
	if lines[5].Text != "000200  MOVEQ #1,D0" || lines[5].Color != colorYellow {
		t.Errorf("first disassembly line %+v", lines[5])
	}
}
