package main

import (
	"testing"
)

// newTestMachine builds a machine with buildTestROM(program...) loaded and
// reset.
func newTestMachine(t *testing.T, cfg MachineConfig, program ...uint16) *Machine {
	t.Helper()
	m, err := NewMachine(cfg)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	if err := m.LoadCartridge(buildTestROM(program...)); err != nil {
		t.Fatalf("LoadCartridge: %v", err)
	}
	return m
}

func TestMachineResetVectors(t *testing.T) {
	m := newTestMachine(t, MachineConfig{}, 0x4E71)
	cpu := m.CPU
	if cpu.PC != testROMEntry {
		t.Errorf("PC = $%06X, want $%06X", cpu.PC, testROMEntry)
	}
	if cpu.AddrRegs[7] != testROMStack {
		t.Errorf("SSP = $%08X, want $%08X", cpu.AddrRegs[7], testROMStack)
	}
	if cpu.SR != 0x2700 {
		t.Errorf("SR = $%04X, want $2700", cpu.SR)
	}
	if m.Region != 0 || m.PAL {
		t.Errorf("region %v pal %v", m.Region, m.PAL)
	}
}

func TestMachineSoftResetKeepsRAM(t *testing.T) {
	m := newTestMachine(t, MachineConfig{}, 0x4E71)
	m.Bus.Write16(0xFF0000, 0xBEEF)

	m.Reset(ResetSoft)
	if got := m.Bus.Read16(0xFF0000); got != 0xBEEF {
		t.Errorf("soft reset cleared RAM: $%04X", got)
	}
	m.Reset(ResetHard)
	if got := m.Bus.Read16(0xFF0000); got != 0 {
		t.Errorf("hard reset left RAM: $%04X", got)
	}
	if m.CPU.PC != testROMEntry {
		t.Errorf("PC = $%06X after reset", m.CPU.PC)
	}
}

func TestMachineBusErrorFrame(t *testing.T) {
	// MOVE.W $400000,D0
	m := newTestMachine(t, MachineConfig{}, 0x3039, 0x0040, 0x0000)
	m.Step()

	cpu := m.CPU
	if cpu.PC != testROMHandler(M68K_VEC_BUS_ERROR) {
		t.Fatalf("PC = $%06X, want bus error handler $%06X", cpu.PC, testROMHandler(M68K_VEC_BUS_ERROR))
	}
	sp := cpu.AddrRegs[7]
	if sp != testROMStack-M68K_GROUP0_FRAME_SZ {
		t.Fatalf("SP = $%08X, want 14 byte frame", sp)
	}
	ssw := m.Bus.Read16(sp)
	if ssw&M68K_SSW_READ == 0 || ssw&M68K_SSW_NOT_INSTR == 0 || ssw&7 != M68K_FC_SUPER_DATA {
		t.Errorf("SSW = $%04X", ssw)
	}
	if addr := m.Bus.Read32(sp + 2); addr != 0x400000 {
		t.Errorf("fault address = $%08X", addr)
	}
	if ir := m.Bus.Read16(sp + 6); ir != 0x3039 {
		t.Errorf("IR = $%04X", ir)
	}
	if sr := m.Bus.Read16(sp + 8); sr != 0x2700 {
		t.Errorf("stacked SR = $%04X", sr)
	}
}

func TestMachineBusErrorOnWrite(t *testing.T) {
	// MOVE.W D0,$A12000
	m := newTestMachine(t, MachineConfig{}, 0x33C0, 0x00A1, 0x2000)
	m.Step()
	if m.CPU.PC != testROMHandler(M68K_VEC_BUS_ERROR) {
		t.Fatalf("PC = $%06X", m.CPU.PC)
	}
	if ssw := m.Bus.Read16(m.CPU.AddrRegs[7]); ssw&M68K_SSW_READ != 0 {
		t.Errorf("write fault reported as read: SSW $%04X", ssw)
	}
}

func TestMachineAddressError(t *testing.T) {
	// MOVE.W $FF0001,D0
	m := newTestMachine(t, MachineConfig{}, 0x3039, 0x00FF, 0x0001)
	m.Step()
	if m.CPU.PC != testROMHandler(M68K_VEC_ADDRESS_ERROR) {
		t.Fatalf("PC = $%06X, want address error handler", m.CPU.PC)
	}
	if addr := m.Bus.Read32(m.CPU.AddrRegs[7] + 2); addr != 0xFF0001 {
		t.Errorf("fault address = $%08X", addr)
	}
}

func TestMachineRunFrame(t *testing.T) {
	// BRA.S *
	m := newTestMachine(t, MachineConfig{}, 0x60FE)
	frameCycles := VDP_LINES_NTSC * VDP_CYCLES_LINE

	frames := 0
	m.OnFrame = func(*Machine) { frames++ }

	m.RunFrame()
	used := m.RunFrame()
	if m.Frames != 2 || frames != 2 {
		t.Fatalf("Frames = %d, callbacks %d", m.Frames, frames)
	}
	if used < frameCycles-20 || used > frameCycles+20 {
		t.Errorf("frame took %d cycles, want about %d", used, frameCycles)
	}
	if m.Line() != 0 {
		t.Errorf("line = %d after a whole frame", m.Line())
	}
}

func TestMachineFrameStopPointHolds(t *testing.T) {
	m := newTestMachine(t, MachineConfig{}, 0x60FE)
	frameCycles := VDP_LINES_NTSC * VDP_CYCLES_LINE

	total := 0
	for i := 0; i < 4; i++ {
		total += m.RunFrame()
		if m.Line() != 0 || m.lineCycle() >= 10 {
			t.Fatalf("frame %d ended at line %d cycle %d", i, m.Line(), m.lineCycle())
		}
	}
	if d := total - 4*frameCycles; d < -10 || d >= 10 {
		t.Errorf("4 frames took %d cycles, %d off", total, d)
	}
}

func TestMachinePALTiming(t *testing.T) {
	m := newTestMachine(t, MachineConfig{PAL: true}, 0x60FE)
	if m.VDP.TotalLines() != VDP_LINES_PAL {
		t.Fatalf("lines = %d", m.VDP.TotalLines())
	}
	m.RunFrame()
	used := m.RunFrame()
	want := VDP_LINES_PAL * VDP_CYCLES_LINE
	if used < want-20 || used > want+20 {
		t.Errorf("PAL frame took %d cycles, want about %d", used, want)
	}
	if v := m.Bus.Read8(0xA10001); v&0x40 == 0 {
		t.Errorf("version $%02X does not report PAL", v)
	}
}

func TestMachineVerticalInterrupt(t *testing.T) {
	m := newTestMachine(t, MachineConfig{},
		0x33FC, 0x8164, 0x00C0, 0x0004, // MOVE.W #$8164,$C00004
		0x46FC, 0x2000, // MOVE #$2000,SR
		0x60FE, // BRA.S *
	)
	m.RunFrame()

	cpu := m.CPU
	handler := testROMHandler(M68K_VEC_LEVEL1 - 1 + VDP_IRQ_VINT)
	if cpu.PC != handler {
		t.Fatalf("PC = $%06X, want VINT handler $%06X", cpu.PC, handler)
	}
	if mask := (cpu.SR >> 8) & 7; mask != VDP_IRQ_VINT {
		t.Errorf("interrupt mask = %d, want 6", mask)
	}
	if m.VDP.Status()&VDP_STATUS_VINT != 0 {
		t.Error("VINT still pending after acknowledge")
	}
}

func TestMachineRunBudget(t *testing.T) {
	m := newTestMachine(t, MachineConfig{}, 0x60FE)
	used := m.Run(1000)
	if used < 1000 || used >= 1000+10 {
		t.Errorf("Run(1000) = %d", used)
	}
	if m.Line() != 2 {
		t.Errorf("line = %d, want 2", m.Line())
	}
}

func TestMachineResetInstruction(t *testing.T) {
	m := newTestMachine(t, MachineConfig{},
		0x13FC, 0x002B, 0x00A0, 0x4000, // MOVE.B #$2B,$A04000
		0x13FC, 0x0080, 0x00A0, 0x4001, // MOVE.B #$80,$A04001
		0x4E70, // RESET
	)
	m.Step()
	m.Step()
	if !m.YM.DACEnabled() {
		t.Fatal("DAC enable write did not reach the YM2612")
	}
	m.Step()
	if m.YM.DACEnabled() {
		t.Error("RESET did not reset the YM2612")
	}
	if m.CPU.PC != testROMEntry+18 {
		t.Errorf("PC = $%06X after RESET", m.CPU.PC)
	}
}

func TestMachineSetPad(t *testing.T) {
	m := newTestMachine(t, MachineConfig{})
	m.SetPad(0, PadStart|PadA)
	m.Bus.Write8(0xA10009, MD_IO_TH)
	m.Bus.Write8(0xA10003, 0)
	if got := m.Bus.Read8(0xA10003); got&0x30 != 0 {
		t.Errorf("pad read $%02X, want Start and A low", got)
	}
}

func TestMachineBootROMConfig(t *testing.T) {
	if _, err := NewMachine(MachineConfig{BootROM: make([]byte, 3)}); err == nil {
		t.Fatal("odd sized boot ROM accepted")
	}
}
