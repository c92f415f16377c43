// debug_memviz.go - Graphviz dump of the machine object graph

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
	"io"

	"github.com/bradleyjkemp/memviz"
)

// machineGraph is the part of the machine worth drawing. Large arrays (RAM,
// VRAM, ROM) are left out so the graph stays readable.
type machineGraph struct {
	CPU    M68KRegisters
	State  string
	Line   int
	Frames uint64
	VDP    vdpGraph
	TMSS   tmssGraph
	Z80    z80Graph
	Mapper [MD_BANK_COUNT]uint8
	SRAM   *sramGraph
	Cart   *CartridgeHeader
	Bus    []busRegionGraph
}

type vdpGraph struct {
	Regs    [VDP_REG_COUNT]uint8
	Code    uint8
	Addr    uint32
	VBlank  bool
	Pending bool
}

type tmssGraph struct {
	Enabled, Unlocked, CartridgeMapped bool
}

type z80Graph struct {
	BusReq, Reset bool
	Bank          uint32
}

type sramGraph struct {
	Start, End        uint32
	Mapped, Protected bool
}

type busRegionGraph struct {
	Name       string
	Start, End uint32
	Owner      string
}

// WriteMachineGraph writes a dot graph of the machine's state to w.
func WriteMachineGraph(w io.Writer, m *Machine) {
	g := &machineGraph{
		CPU:    m.CPU.Registers(),
		State:  m.CPU.ExceptionState().String(),
		Line:   m.Line(),
		Frames: m.Frames,
		VDP: vdpGraph{
			Regs:    m.VDP.Regs,
			Code:    m.VDP.code,
			Addr:    m.VDP.addr,
			VBlank:  m.VDP.InVBlank(),
			Pending: m.VDP.pending,
		},
		TMSS: tmssGraph{m.TMSS.Enabled, m.TMSS.Unlocked(), m.TMSS.CartridgeMapped()},
		Z80:  z80Graph{m.Z80.BusRequested(), m.Z80.InReset(), m.Z80.Bank()},
	}
	for i := range g.Mapper {
		g.Mapper[i] = m.Bus.Mapper.Bank(i)
	}
	if s := m.Bus.SRAM; s != nil {
		g.SRAM = &sramGraph{s.Start, s.End, s.Mapped, s.WriteProtect}
	}
	if m.Cart != nil {
		hdr := m.Cart.Header
		g.Cart = &hdr
	}
	for _, r := range m.Bus.Regions() {
		g.Bus = append(g.Bus, busRegionGraph{r.Name, r.Start, r.End, r.Owner})
	}
	memviz.Map(w, g)
}
