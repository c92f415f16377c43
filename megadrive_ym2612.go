// megadrive_ym2612.go - YM2612 register file, busy flag and timers

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

const (
	YM_REG_TIMER_A_HI = 0x24
	YM_REG_TIMER_A_LO = 0x25
	YM_REG_TIMER_B    = 0x26
	YM_REG_TIMER_CTRL = 0x27
	YM_REG_KEY        = 0x28
	YM_REG_DAC        = 0x2A
	YM_REG_DAC_ENABLE = 0x2B

	YM_STATUS_BUSY    = 0x80
	YM_STATUS_TIMER_B = 0x02
	YM_STATUS_TIMER_A = 0x01

	// One FM sample is 144 CPU cycles; timer A counts samples, timer B
	// counts groups of 16.
	YM_SAMPLE_CYCLES = 144
	YM_TIMER_B_SCALE = 16
	YM_BUSY_CYCLES   = 32 * 6
)

// YM2612 tracks the register writes and timer state of the FM chip. Sound
// synthesis is not performed; drivers that poll the busy flag and timer
// overflow bits see the behaviour they expect.
type YM2612 struct {
	Regs [2][256]uint8

	addr   [2]uint8
	status uint8
	busy   int

	timerA int // CPU cycles until overflow
	timerB int

	keyOn [6]uint8
}

func NewYM2612() *YM2612 {
	ym := &YM2612{}
	ym.Reset()
	return ym
}

func (ym *YM2612) Reset() {
	ym.Regs = [2][256]uint8{}
	ym.addr = [2]uint8{}
	ym.status = 0
	ym.busy = 0
	ym.timerA = 0
	ym.timerB = 0
	ym.keyOn = [6]uint8{}
}

func (ym *YM2612) ReadStatus() uint8 {
	s := ym.status
	if ym.busy > 0 {
		s |= YM_STATUS_BUSY
	}
	return s
}

// Write handles the four ports: address and data for part I, then part II.
func (ym *YM2612) Write(port uint8, v uint8) {
	part := (port >> 1) & 1
	if port&1 == 0 {
		ym.addr[part] = v
		return
	}
	reg := ym.addr[part]
	ym.Regs[part][reg] = v
	ym.busy = YM_BUSY_CYCLES
	if part == 0 {
		ym.writeGlobal(reg, v)
	}
}

func (ym *YM2612) writeGlobal(reg, v uint8) {
	switch reg {
	case YM_REG_TIMER_CTRL:
		if v&0x10 != 0 {
			ym.status &^= YM_STATUS_TIMER_A
		}
		if v&0x20 != 0 {
			ym.status &^= YM_STATUS_TIMER_B
		}
		if v&0x01 != 0 && ym.timerA <= 0 {
			ym.timerA = ym.timerAPeriod()
		}
		if v&0x02 != 0 && ym.timerB <= 0 {
			ym.timerB = ym.timerBPeriod()
		}
		if v&0x01 == 0 {
			ym.timerA = 0
		}
		if v&0x02 == 0 {
			ym.timerB = 0
		}
	case YM_REG_KEY:
		ch := v & 3
		if ch == 3 {
			return
		}
		if v&4 != 0 {
			ch += 3
		}
		ym.keyOn[ch] = v >> 4
	}
}

func (ym *YM2612) timerAPeriod() int {
	n := int(ym.Regs[0][YM_REG_TIMER_A_HI])<<2 | int(ym.Regs[0][YM_REG_TIMER_A_LO]&3)
	return (1024 - n) * YM_SAMPLE_CYCLES
}

func (ym *YM2612) timerBPeriod() int {
	n := int(ym.Regs[0][YM_REG_TIMER_B])
	return (256 - n) * YM_TIMER_B_SCALE * YM_SAMPLE_CYCLES
}

// KeyOn returns the operator key bits of channel ch (0-5).
func (ym *YM2612) KeyOn(ch int) uint8 {
	return ym.keyOn[ch]
}

// DACEnabled reports whether channel 6 plays register $2A samples.
func (ym *YM2612) DACEnabled() bool {
	return ym.Regs[0][YM_REG_DAC_ENABLE]&0x80 != 0
}

// Advance runs the busy flag and timers for the given CPU cycles. Overflow
// sets the status bit when the matching enable bit in $27 is set, and the
// timer reloads.
func (ym *YM2612) Advance(cpuCycles int) {
	if ym.busy > 0 {
		ym.busy -= cpuCycles
	}
	ctrl := ym.Regs[0][YM_REG_TIMER_CTRL]
	if ym.timerA > 0 {
		ym.timerA -= cpuCycles
		for ym.timerA <= 0 {
			if ctrl&0x04 != 0 {
				ym.status |= YM_STATUS_TIMER_A
			}
			ym.timerA += ym.timerAPeriod()
		}
	}
	if ym.timerB > 0 {
		ym.timerB -= cpuCycles
		for ym.timerB <= 0 {
			if ctrl&0x08 != 0 {
				ym.status |= YM_STATUS_TIMER_B
			}
			ym.timerB += ym.timerBPeriod()
		}
	}
}
