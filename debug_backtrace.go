// debug_backtrace.go - Call stack recovery for the Machine Monitor

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

import "encoding/binary"

// backtraceFrames follows the LINK A6 frame chain: each frame holds the
// caller's A6 at (A6) and the return address at 4(A6). The walk stops at a
// null, odd or non-ascending frame pointer.
func backtraceFrames(cpu DebuggableCPU, depth int) []uint64 {
	fp, _ := cpu.GetRegister("A6")
	var result []uint64
	for range depth {
		if fp == 0 || fp&1 != 0 {
			break
		}
		data := cpu.ReadMemory(fp, 8)
		if len(data) < 8 {
			break
		}
		next := uint64(binary.BigEndian.Uint32(data[0:4]))
		ret := uint64(binary.BigEndian.Uint32(data[4:8])) & M68K_ADDRESS_MASK
		result = append(result, ret)
		if next <= fp {
			break
		}
		fp = next
	}
	return result
}

// backtraceStack walks 4-byte slots from A7. It shows raw stack contents for
// code that does not use frame pointers.
func backtraceStack(cpu DebuggableCPU, depth int) []uint64 {
	sp, _ := cpu.GetRegister("A7")
	var result []uint64
	for range depth {
		data := cpu.ReadMemory(sp, 4)
		if len(data) < 4 {
			break
		}
		result = append(result, uint64(binary.BigEndian.Uint32(data)))
		sp += 4
	}
	return result
}
