// debug_ioview.go - Device register views for the Machine Monitor

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
)

// IORegisterDesc describes one device register. Addr is the 68000 address
// the register is written through, or zero for internal state. Read returns
// the latched value without the side effects a bus read would have.
type IORegisterDesc struct {
	Name   string
	Addr   uint32
	Width  int    // 1, 2, or 4 bytes
	Access string // "RW", "RO", "WO"
	Read   func(m *Machine) uint32
}

// IODeviceDesc describes a group of I/O registers for a device.
type IODeviceDesc struct {
	Name      string
	Registers []IORegisterDesc
}

func vdpRegView(name string, reg int) IORegisterDesc {
	return IORegisterDesc{name, MD_VDP_START + MD_VDP_CONTROL, 1, "WO", func(m *Machine) uint32 {
		return uint32(m.VDP.Regs[reg])
	}}
}

func boolView(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

var ioDevices = map[string]*IODeviceDesc{
	"vdp": {
		Name: "VDP",
		Registers: []IORegisterDesc{
			vdpRegView("MODE1", VDP_REG_MODE1),
			vdpRegView("MODE2", VDP_REG_MODE2),
			vdpRegView("PLANE_A", 2),
			vdpRegView("WINDOW", 3),
			vdpRegView("PLANE_B", 4),
			vdpRegView("SPRITES", 5),
			vdpRegView("BACKDROP", VDP_REG_BACKDROP),
			vdpRegView("HINT_COUNTER", VDP_REG_HINT),
			vdpRegView("MODE3", 11),
			vdpRegView("MODE4", VDP_REG_MODE4),
			vdpRegView("HSCROLL", 13),
			vdpRegView("AUTOINC", VDP_REG_AUTOINC),
			vdpRegView("PLANE_SIZE", 16),
			vdpRegView("DMA_LEN_L", VDP_REG_DMA_LEN_L),
			vdpRegView("DMA_LEN_H", VDP_REG_DMA_LEN_H),
			vdpRegView("DMA_SRC_L", VDP_REG_DMA_SRC_L),
			vdpRegView("DMA_SRC_M", VDP_REG_DMA_SRC_M),
			vdpRegView("DMA_SRC_H", VDP_REG_DMA_SRC_H),
			{"STATUS", MD_VDP_START + MD_VDP_CONTROL, 2, "RO", func(m *Machine) uint32 { return uint32(m.VDP.Status()) }},
			{"HV_COUNTER", MD_VDP_START + MD_VDP_HV, 2, "RO", func(m *Machine) uint32 { return uint32(m.VDP.HVCounter()) }},
			{"ADDRESS", 0, 4, "RO", func(m *Machine) uint32 { return m.VDP.addr }},
			{"CODE", 0, 1, "RO", func(m *Machine) uint32 { return uint32(m.VDP.code) }},
			{"LINE", 0, 2, "RO", func(m *Machine) uint32 { return uint32(m.VDP.Line()) }},
		},
	},
	"io": {
		Name: "I/O",
		Registers: []IORegisterDesc{
			{"VERSION", MD_IO_START + 2*MD_IO_VERSION + 1, 1, "RO", func(m *Machine) uint32 { return uint32(m.IO.Version()) }},
			{"DATA1", MD_IO_START + 2*MD_IO_DATA1 + 1, 1, "RW", func(m *Machine) uint32 { return uint32(m.IO.readData(0)) }},
			{"DATA2", MD_IO_START + 2*MD_IO_DATA2 + 1, 1, "RW", func(m *Machine) uint32 { return uint32(m.IO.readData(1)) }},
			{"DATA3", MD_IO_START + 2*MD_IO_DATA3 + 1, 1, "RW", func(m *Machine) uint32 { return uint32(m.IO.readData(2)) }},
			{"CTRL1", MD_IO_START + 2*MD_IO_CTRL1 + 1, 1, "RW", func(m *Machine) uint32 { return uint32(m.IO.ctrl[0]) }},
			{"CTRL2", MD_IO_START + 2*MD_IO_CTRL2 + 1, 1, "RW", func(m *Machine) uint32 { return uint32(m.IO.ctrl[1]) }},
			{"CTRL3", MD_IO_START + 2*MD_IO_CTRL3 + 1, 1, "RW", func(m *Machine) uint32 { return uint32(m.IO.ctrl[2]) }},
			{"PAD1", 0, 1, "RO", func(m *Machine) uint32 { return uint32(m.IO.Pads[0].Buttons) }},
			{"PAD2", 0, 1, "RO", func(m *Machine) uint32 { return uint32(m.IO.Pads[1].Buttons) }},
		},
	},
	"z80": {
		Name: "Z80 window",
		Registers: []IORegisterDesc{
			{"BUSREQ", MD_Z80_BUSREQ, 1, "RW", func(m *Machine) uint32 { return boolView(m.Z80.BusRequested()) }},
			{"RESET", MD_Z80_RESET, 1, "WO", func(m *Machine) uint32 { return boolView(m.Z80.InReset()) }},
			{"BANK", MD_Z80_START + MD_Z80_BANK_REG, 4, "WO", func(m *Machine) uint32 { return m.Z80.Bank() }},
		},
	},
	"tmss": {
		Name: "TMSS",
		Registers: []IORegisterDesc{
			{"SIGNATURE", MD_TMSS_SEGA, 4, "RW", func(m *Machine) uint32 {
				s := m.TMSS.signature
				return uint32(s[0])<<24 | uint32(s[1])<<16 | uint32(s[2])<<8 | uint32(s[3])
			}},
			{"BANK", MD_TMSS_BANK, 1, "WO", func(m *Machine) uint32 { return boolView(m.TMSS.CartridgeMapped()) }},
			{"ENABLED", 0, 1, "RO", func(m *Machine) uint32 { return boolView(m.TMSS.Enabled) }},
			{"UNLOCKED", 0, 1, "RO", func(m *Machine) uint32 { return boolView(m.TMSS.Unlocked()) }},
		},
	},
	"mapper": {
		Name: "Cartridge mapper",
		Registers: []IORegisterDesc{
			{"SRAM_CTRL", MD_MAPPER_BASE + MD_SRAM_CONTROL, 1, "RW", func(m *Machine) uint32 { return uint32(m.Bus.Mapper.Read8(MD_MAPPER_BASE + MD_SRAM_CONTROL)) }},
			{"BANK1", MD_MAPPER_BASE + 3, 1, "WO", func(m *Machine) uint32 { return uint32(m.Bus.Mapper.Bank(1)) }},
			{"BANK2", MD_MAPPER_BASE + 5, 1, "WO", func(m *Machine) uint32 { return uint32(m.Bus.Mapper.Bank(2)) }},
			{"BANK3", MD_MAPPER_BASE + 7, 1, "WO", func(m *Machine) uint32 { return uint32(m.Bus.Mapper.Bank(3)) }},
			{"BANK4", MD_MAPPER_BASE + 9, 1, "WO", func(m *Machine) uint32 { return uint32(m.Bus.Mapper.Bank(4)) }},
			{"BANK5", MD_MAPPER_BASE + 11, 1, "WO", func(m *Machine) uint32 { return uint32(m.Bus.Mapper.Bank(5)) }},
			{"BANK6", MD_MAPPER_BASE + 13, 1, "WO", func(m *Machine) uint32 { return uint32(m.Bus.Mapper.Bank(6)) }},
			{"BANK7", MD_MAPPER_BASE + 15, 1, "WO", func(m *Machine) uint32 { return uint32(m.Bus.Mapper.Bank(7)) }},
		},
	},
	"ym": {
		Name: "YM2612",
		Registers: []IORegisterDesc{
			{"STATUS", MD_Z80_START + MD_Z80_YM_BASE, 1, "RO", func(m *Machine) uint32 { return uint32(m.YM.status) }},
			{"TIMER_A", 0, 2, "WO", func(m *Machine) uint32 {
				return uint32(m.YM.Regs[0][YM_REG_TIMER_A_HI])<<2 | uint32(m.YM.Regs[0][YM_REG_TIMER_A_LO]&3)
			}},
			{"TIMER_B", 0, 1, "WO", func(m *Machine) uint32 { return uint32(m.YM.Regs[0][YM_REG_TIMER_B]) }},
			{"TIMER_CTRL", 0, 1, "WO", func(m *Machine) uint32 { return uint32(m.YM.Regs[0][YM_REG_TIMER_CTRL]) }},
			{"DAC", 0, 1, "WO", func(m *Machine) uint32 { return uint32(m.YM.Regs[0][YM_REG_DAC]) }},
			{"DAC_ENABLE", 0, 1, "WO", func(m *Machine) uint32 { return boolView(m.YM.DACEnabled()) }},
		},
	},
	"psg": {
		Name: "SN76489",
		Registers: []IORegisterDesc{
			{"TONE0", MD_VDP_START + MD_VDP_PSG, 2, "WO", func(m *Machine) uint32 { return uint32(m.PSG.Tone(0)) }},
			{"TONE1", MD_VDP_START + MD_VDP_PSG, 2, "WO", func(m *Machine) uint32 { return uint32(m.PSG.Tone(1)) }},
			{"TONE2", MD_VDP_START + MD_VDP_PSG, 2, "WO", func(m *Machine) uint32 { return uint32(m.PSG.Tone(2)) }},
			{"ATTEN0", MD_VDP_START + MD_VDP_PSG, 1, "WO", func(m *Machine) uint32 { return uint32(m.PSG.Attenuation(0)) }},
			{"ATTEN1", MD_VDP_START + MD_VDP_PSG, 1, "WO", func(m *Machine) uint32 { return uint32(m.PSG.Attenuation(1)) }},
			{"ATTEN2", MD_VDP_START + MD_VDP_PSG, 1, "WO", func(m *Machine) uint32 { return uint32(m.PSG.Attenuation(2)) }},
			{"ATTEN_NOISE", MD_VDP_START + MD_VDP_PSG, 1, "WO", func(m *Machine) uint32 { return uint32(m.PSG.Attenuation(PSG_NOISE_CH)) }},
		},
	},
}

// formatIOView renders the register view for a device.
func formatIOView(m *Machine, deviceName string) []string {
	dev, ok := ioDevices[deviceName]
	if !ok {
		return []string{fmt.Sprintf("Unknown device: %s", deviceName)}
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("--- %s Registers ---", dev.Name))

	for _, reg := range dev.Registers {
		at := "        "
		if reg.Addr != 0 {
			at = fmt.Sprintf("($%06X)", reg.Addr)
		}
		val := reg.Read(m)
		switch reg.Width {
		case 1:
			lines = append(lines, fmt.Sprintf("  %-14s %s = $%02X       [%d] %s", reg.Name, at, val, val, reg.Access))
		case 2:
			lines = append(lines, fmt.Sprintf("  %-14s %s = $%04X     [%d] %s", reg.Name, at, val, val, reg.Access))
		default:
			lines = append(lines, fmt.Sprintf("  %-14s %s = $%08X [%d] %s", reg.Name, at, val, val, reg.Access))
		}
	}

	return lines
}

// listIODevices returns the names of all available IO devices.
func listIODevices() []string {
	names := make([]string, 0, len(ioDevices))
	for name := range ioDevices {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
