// debug_status.go - Monitor status panel shared by the window overlay

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

import "fmt"

const (
	overlayDisasm = 6
	overlayTail   = 6
)

// MonitorOverlay draws the 68000 state and the tail of the monitor output.
type MonitorOverlay struct {
	monitor *MachineMonitor
}

func NewMonitorOverlay(monitor *MachineMonitor) *MonitorOverlay {
	return &MonitorOverlay{monitor: monitor}
}

// Lines returns the overlay text: register rows, a status line, a short
// disassembly from PC and the newest monitor output.
func (o *MonitorOverlay) Lines(paused bool) []OutputLine {
	m := o.monitor
	cpu := m.CPU()
	var out []OutputLine

	regs := cpu.GetRegisters()
	for i := 0; i < 16; i += 4 {
		row := ""
		for _, r := range regs[i : i+4] {
			row += fmt.Sprintf("%-3s %08X ", r.Name, r.Value)
		}
		out = append(out, OutputLine{row, colorWhite})
	}
	status := fmt.Sprintf("PC  %06X  SR %04X  frame %d line %d",
		regs[16].Value, regs[17].Value, m.machine.Frames, m.machine.Line())
	if paused {
		status += "  PAUSED"
	}
	out = append(out, OutputLine{status, colorYellow})

	for _, l := range cpu.Disassemble(cpu.GetPC(), overlayDisasm) {
		c := uint32(colorCyan)
		if l.IsPC {
			c = colorYellow
		}
		out = append(out, OutputLine{fmt.Sprintf("%06X  %s", l.Address, l.Mnemonic), c})
	}

	tail := m.Output()
	if len(tail) > overlayTail {
		tail = tail[len(tail)-overlayTail:]
	}
	return append(out, tail...)
}

