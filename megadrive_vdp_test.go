package main

import "testing"

func newTestVDP() *VDP {
	v := NewVDP(false)
	v.Write16(MD_VDP_CONTROL, 0x8F02) // auto increment 2
	return v
}

func vdpSetAddress(v *VDP, code uint8, addr uint16) {
	v.Write16(MD_VDP_CONTROL, uint16(code&3)<<14|addr&0x3FFF)
	v.Write16(MD_VDP_CONTROL, uint16(code&0x3C)<<2|addr>>14)
}

func TestVDPRegisterWrite(t *testing.T) {
	v := newTestVDP()
	v.Write16(MD_VDP_CONTROL, 0x8C81)
	if v.Regs[VDP_REG_MODE4] != 0x81 {
		t.Fatalf("reg 12 = $%02X", v.Regs[VDP_REG_MODE4])
	}
	if v.Width() != 320 {
		t.Errorf("H40 width = %d", v.Width())
	}
	// Registers past 23 are ignored.
	v.Write16(MD_VDP_CONTROL, 0x9FFF)
	if v.pending {
		t.Error("register write left the command latch pending")
	}
}

func TestVDPVRAMAccess(t *testing.T) {
	v := newTestVDP()
	vdpSetAddress(v, VDP_CODE_VRAM_WRITE, 0xC000)
	v.Write16(MD_VDP_DATA, 0x1234)
	v.Write16(MD_VDP_DATA, 0x5678)
	if v.VRAM[0xC000] != 0x12 || v.VRAM[0xC003] != 0x78 {
		t.Fatalf("VRAM = % X", v.VRAM[0xC000:0xC004])
	}

	vdpSetAddress(v, VDP_CODE_VRAM_READ, 0xC002)
	if got := v.Read16(MD_VDP_DATA); got != 0x5678 {
		t.Errorf("VRAM read = $%04X", got)
	}
}

func TestVDPCRAMAndVSRAM(t *testing.T) {
	v := newTestVDP()
	vdpSetAddress(v, VDP_CODE_CRAM_WRITE, 0x0002)
	v.Write16(MD_VDP_DATA, 0xFFFF)
	if v.CRAM[1] != 0x0EEE {
		t.Errorf("CRAM[1] = $%04X, want masked $0EEE", v.CRAM[1])
	}
	vdpSetAddress(v, VDP_CODE_CRAM_READ, 0x0002)
	if got := v.Read16(MD_VDP_DATA); got != 0x0EEE {
		t.Errorf("CRAM read = $%04X", got)
	}

	vdpSetAddress(v, VDP_CODE_VSRAM_WRITE, 0x0004)
	v.Write16(MD_VDP_DATA, 0xFFFF)
	if v.VSRAM[2] != 0x07FF {
		t.Errorf("VSRAM[2] = $%04X", v.VSRAM[2])
	}
}

func TestVDPDMAFill(t *testing.T) {
	v := newTestVDP()
	v.Write16(MD_VDP_CONTROL, 0x8114) // DMA enable
	v.Write16(MD_VDP_CONTROL, 0x8F01)
	v.Write16(MD_VDP_CONTROL, 0x9304)
	v.Write16(MD_VDP_CONTROL, 0x9400)
	v.Write16(MD_VDP_CONTROL, 0x9780)
	vdpSetAddress(v, VDP_CODE_VRAM_WRITE|VDP_CODE_DMA, 0x0000)
	v.Write16(MD_VDP_DATA, 0xAA00)

	for _, i := range []int{2, 3, 5} {
		if v.VRAM[i] != 0xAA {
			t.Errorf("VRAM[%d] = $%02X, want fill byte", i, v.VRAM[i])
		}
	}
	if v.Regs[VDP_REG_DMA_LEN_L] != 0 || v.Regs[VDP_REG_DMA_LEN_H] != 0 {
		t.Error("length registers not cleared")
	}
}

func TestVDPDMAFrom68K(t *testing.T) {
	v := newTestVDP()
	v.DMARead = func(addr uint32) uint16 { return uint16(addr) }
	v.Write16(MD_VDP_CONTROL, 0x8114)
	v.Write16(MD_VDP_CONTROL, 0x9302)
	v.Write16(MD_VDP_CONTROL, 0x9400)
	v.Write16(MD_VDP_CONTROL, 0x9500)
	v.Write16(MD_VDP_CONTROL, 0x9608)
	v.Write16(MD_VDP_CONTROL, 0x9700)
	vdpSetAddress(v, VDP_CODE_VRAM_WRITE|VDP_CODE_DMA, 0x0000)

	if got := v.readVRAMWord(0); got != 0x1000 {
		t.Errorf("word 0 = $%04X, want $1000", got)
	}
	if got := v.readVRAMWord(2); got != 0x1002 {
		t.Errorf("word 1 = $%04X, want $1002", got)
	}
	if v.Regs[VDP_REG_DMA_SRC_L] != 2 {
		t.Errorf("source low = $%02X, want advanced by 2", v.Regs[VDP_REG_DMA_SRC_L])
	}
}

func TestVDPDMADisabled(t *testing.T) {
	v := newTestVDP()
	called := false
	v.DMARead = func(uint32) uint16 { called = true; return 0 }
	v.Write16(MD_VDP_CONTROL, 0x9301)
	vdpSetAddress(v, VDP_CODE_VRAM_WRITE|VDP_CODE_DMA, 0x0000)
	if called {
		t.Error("DMA ran with M1 clear")
	}
}

func TestVDPInterrupts(t *testing.T) {
	v := newTestVDP()
	raised := map[uint8]bool{}
	v.IRQ = func(level uint8, asserted bool) { raised[level] = asserted }
	v.Write16(MD_VDP_CONTROL, 0x8164) // display, VINT
	v.Write16(MD_VDP_CONTROL, 0x8014) // HINT
	v.Write16(MD_VDP_CONTROL, 0x8A00) // every line

	v.StartLine(0)
	v.StartLine(1)
	if !raised[VDP_IRQ_HINT] {
		t.Error("HINT not raised")
	}
	v.Acknowledge(VDP_IRQ_HINT)
	if raised[VDP_IRQ_HINT] {
		t.Error("HINT still asserted after acknowledge")
	}

	v.StartLine(v.ActiveLines())
	if !raised[VDP_IRQ_VINT] || !v.InVBlank() {
		t.Fatal("VINT not raised at the first blanked line")
	}
	if v.Status()&(VDP_STATUS_VINT|VDP_STATUS_VBLANK) != VDP_STATUS_VINT|VDP_STATUS_VBLANK {
		t.Errorf("status = $%04X", v.Status())
	}
	v.Acknowledge(VDP_IRQ_VINT)
	if raised[VDP_IRQ_VINT] {
		t.Error("VINT still asserted after acknowledge")
	}
}

func TestVDPHVCounter(t *testing.T) {
	v := newTestVDP()
	v.LineCycle = func() int { return VDP_CYCLES_LINE / 2 }
	v.StartLine(0x20)
	if got := v.HVCounter(); got != 0x2000|0xB6/2 {
		t.Errorf("HV = $%04X", got)
	}
	v.StartLine(0x100)
	if got := v.HVCounter() >> 8; got != 0xFA {
		t.Errorf("V past the NTSC jump = $%02X, want $FA", got)
	}
}

func TestVDPBackdrop(t *testing.T) {
	v := newTestVDP()
	v.CRAM[5] = 0x000E
	v.Write16(MD_VDP_CONTROL, 0x8705)
	v.RenderLine(0)
	if fb := v.FrameBuffer(); fb[0] != 0 || fb[3] != 0xFF {
		t.Errorf("display off pixel = % X", fb[:4])
	}
	v.Write16(MD_VDP_CONTROL, 0x8144)
	v.RenderLine(0)
	fb := v.FrameBuffer()
	if fb[0] != 7*36 || fb[1] != 0 || fb[2] != 0 {
		t.Errorf("backdrop pixel = % X", fb[:4])
	}
	// H32 leaves the right border black.
	if o := 300 * 4; fb[o] != 0 {
		t.Errorf("pixel 300 = % X in H32", fb[o:o+4])
	}
}

func TestVDPStatusPAL(t *testing.T) {
	if NewVDP(false).Status()&VDP_STATUS_PAL != 0 {
		t.Error("NTSC VDP reports PAL")
	}
	if NewVDP(true).Status()&VDP_STATUS_PAL == 0 {
		t.Error("PAL VDP reports NTSC")
	}
}
