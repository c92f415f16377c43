package main

import "testing"

func ymWrite(ym *YM2612, part uint8, reg, v uint8) {
	ym.Write(part*2, reg)
	ym.Write(part*2+1, v)
}

func TestYM2612BusyFlag(t *testing.T) {
	ym := NewYM2612()
	if ym.ReadStatus()&YM_STATUS_BUSY != 0 {
		t.Fatal("busy at reset")
	}
	ymWrite(ym, 0, 0x30, 0x71)
	if ym.ReadStatus()&YM_STATUS_BUSY == 0 {
		t.Fatal("not busy after a data write")
	}
	ym.Advance(YM_BUSY_CYCLES)
	if ym.ReadStatus()&YM_STATUS_BUSY != 0 {
		t.Error("still busy after the write time")
	}
	if ym.Regs[0][0x30] != 0x71 {
		t.Errorf("reg $30 = $%02X", ym.Regs[0][0x30])
	}
	ymWrite(ym, 1, 0x30, 0x22)
	if ym.Regs[1][0x30] != 0x22 || ym.Regs[0][0x30] != 0x71 {
		t.Error("part II write landed in part I")
	}
}

func TestYM2612TimerA(t *testing.T) {
	ym := NewYM2612()
	ymWrite(ym, 0, YM_REG_TIMER_A_HI, 0xFF)
	ymWrite(ym, 0, YM_REG_TIMER_A_LO, 0x03) // one sample period
	ymWrite(ym, 0, YM_REG_TIMER_CTRL, 0x05) // load and flag A

	ym.Advance(YM_SAMPLE_CYCLES - 1)
	if ym.ReadStatus()&YM_STATUS_TIMER_A != 0 {
		t.Fatal("timer A overflowed early")
	}
	ym.Advance(1)
	if ym.ReadStatus()&YM_STATUS_TIMER_A == 0 {
		t.Fatal("timer A did not overflow")
	}

	ymWrite(ym, 0, YM_REG_TIMER_CTRL, 0x15) // reset flag A
	if ym.ReadStatus()&YM_STATUS_TIMER_A != 0 {
		t.Error("flag A not cleared")
	}
}

func TestYM2612TimerB(t *testing.T) {
	ym := NewYM2612()
	ymWrite(ym, 0, YM_REG_TIMER_B, 0xFF)
	ymWrite(ym, 0, YM_REG_TIMER_CTRL, 0x0A)
	period := YM_TIMER_B_SCALE * YM_SAMPLE_CYCLES
	ym.Advance(period)
	if ym.ReadStatus()&YM_STATUS_TIMER_B == 0 {
		t.Fatal("timer B did not overflow")
	}
	if ym.ReadStatus()&YM_STATUS_TIMER_A != 0 {
		t.Error("timer A flag set with timer A stopped")
	}
}

func TestYM2612TimerWithoutFlag(t *testing.T) {
	ym := NewYM2612()
	ymWrite(ym, 0, YM_REG_TIMER_A_HI, 0xFF)
	ymWrite(ym, 0, YM_REG_TIMER_CTRL, 0x01) // load without flag enable
	ym.Advance(10 * YM_SAMPLE_CYCLES)
	if ym.ReadStatus()&YM_STATUS_TIMER_A != 0 {
		t.Error("overflow flag set without enable")
	}
}

func TestYM2612KeyOn(t *testing.T) {
	ym := NewYM2612()
	tests := []struct {
		v  uint8
		ch int
	}{
		{0xF0, 0},
		{0x12, 2},
		{0xF4, 3},
		{0xF6, 5},
	}
	for _, tt := range tests {
		ymWrite(ym, 0, YM_REG_KEY, tt.v)
		if got := ym.KeyOn(tt.ch); got != tt.v>>4 {
			t.Errorf("key $%02X: channel %d = $%X", tt.v, tt.ch, got)
		}
	}
	ymWrite(ym, 0, YM_REG_KEY, 0xF3) // channel slot 3 does not exist
	for ch := 0; ch < 6; ch++ {
		if ch != 0 && ch != 2 && ch != 3 && ch != 5 && ym.KeyOn(ch) != 0 {
			t.Errorf("channel %d keyed by an invalid write", ch)
		}
	}
}
