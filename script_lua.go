// script_lua.go - Lua automation host

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

/*
script_lua.go exposes the machine to Lua scripts through a global "md"
table:

	md.run(cycles)        run at least cycles CPU cycles, returns cycles used
	md.step()             one instruction boundary, returns cycles
	md.frame([n])         run n frames (default 1), returns cycles
	md.peek8/16/32(addr)  read memory through the bus
	md.poke8/16/32(a, v)  write memory through the bus
	md.reg(name)          read a register ("d0", "a7", "pc", "sr", "usp", "ssp")
	md.setreg(name, v)    write a register
	md.irq(level)         assert an interrupt level
	md.reset(["hard"])    soft reset unless "hard"
	md.pad(n, "udlrabcs") set pad n (1 or 2) buttons
	md.snapshot(name)     keep the machine state under name
	md.restore(name)      return to a kept state
	md.save(path)/md.load(path)  snapshot files
	md.disasm(addr)       disassembled text and length
	md.on_frame(fn)       call fn(frame) after every frame
	md.pc(), md.frames(), md.line(), md.cycles()
*/

package main

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

type LuaHost struct {
	L       *lua.LState
	machine *Machine
	debug   *DebugM68K

	snapshots map[string]*MachineSnapshot
	onFrame   *lua.LFunction
	frameErr  error
}

func NewLuaHost(m *Machine) *LuaHost {
	h := &LuaHost{
		L:         lua.NewState(),
		machine:   m,
		debug:     NewDebugM68K(m),
		snapshots: make(map[string]*MachineSnapshot),
	}
	h.L.SetGlobal("md", h.L.SetFuncs(h.L.NewTable(), map[string]lua.LGFunction{
		"run":      h.luaRun,
		"step":     h.luaStep,
		"frame":    h.luaFrame,
		"peek8":    h.luaPeek(1),
		"peek16":   h.luaPeek(2),
		"peek32":   h.luaPeek(4),
		"poke8":    h.luaPoke(1),
		"poke16":   h.luaPoke(2),
		"poke32":   h.luaPoke(4),
		"reg":      h.luaReg,
		"setreg":   h.luaSetReg,
		"irq":      h.luaIRQ,
		"reset":    h.luaReset,
		"pad":      h.luaPad,
		"snapshot": h.luaSnapshot,
		"restore":  h.luaRestore,
		"save":     h.luaSave,
		"load":     h.luaLoad,
		"disasm":   h.luaDisasm,
		"on_frame": h.luaOnFrame,
		"pc":       func(L *lua.LState) int { L.Push(lua.LNumber(h.machine.CPU.PC)); return 1 },
		"frames":   func(L *lua.LState) int { L.Push(lua.LNumber(h.machine.Frames)); return 1 },
		"line":     func(L *lua.LState) int { L.Push(lua.LNumber(h.machine.Line())); return 1 },
		"cycles":   func(L *lua.LState) int { L.Push(lua.LNumber(h.machine.CPU.Cycles())); return 1 },
	}))
	return h
}

// Close releases the Lua state and detaches the frame callback.
func (h *LuaHost) Close() {
	if h.onFrame != nil {
		h.machine.OnFrame = nil
	}
	h.L.Close()
}

// RunFile executes a script file.
func (h *LuaHost) RunFile(path string) error {
	if err := h.L.DoFile(path); err != nil {
		return fmt.Errorf("lua %s: %w", path, err)
	}
	return h.frameErr
}

// RunString executes a chunk of Lua source.
func (h *LuaHost) RunString(src string) error {
	if err := h.L.DoString(src); err != nil {
		return fmt.Errorf("lua: %w", err)
	}
	return h.frameErr
}

func (h *LuaHost) luaRun(L *lua.LState) int {
	budget := L.CheckInt(1)
	L.Push(lua.LNumber(h.machine.Run(budget)))
	return 1
}

func (h *LuaHost) luaStep(L *lua.LState) int {
	L.Push(lua.LNumber(h.machine.Step()))
	return 1
}

func (h *LuaHost) luaFrame(L *lua.LState) int {
	n := L.OptInt(1, 1)
	cycles := 0
	for i := 0; i < n; i++ {
		cycles += h.machine.RunFrame()
	}
	L.Push(lua.LNumber(cycles))
	return 1
}

func (h *LuaHost) luaPeek(size int) lua.LGFunction {
	return func(L *lua.LState) int {
		addr := uint32(L.CheckInt64(1))
		if size > 1 && addr&1 != 0 {
			L.ArgError(1, "odd address")
		}
		bus := h.machine.Bus
		var v uint32
		switch size {
		case 1:
			v = uint32(bus.Read8(addr))
		case 2:
			v = uint32(bus.Read16(addr))
		default:
			v = bus.Read32(addr)
		}
		L.Push(lua.LNumber(v))
		return 1
	}
}

func (h *LuaHost) luaPoke(size int) lua.LGFunction {
	return func(L *lua.LState) int {
		addr := uint32(L.CheckInt64(1))
		if size > 1 && addr&1 != 0 {
			L.ArgError(1, "odd address")
		}
		v := uint32(L.CheckInt64(2))
		bus := h.machine.Bus
		switch size {
		case 1:
			bus.Write8(addr, uint8(v))
		case 2:
			bus.Write16(addr, uint16(v))
		default:
			bus.Write32(addr, v)
		}
		return 0
	}
}

func (h *LuaHost) luaReg(L *lua.LState) int {
	name := L.CheckString(1)
	v, ok := h.debug.GetRegister(name)
	if !ok {
		L.ArgError(1, "unknown register "+name)
		return 0
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (h *LuaHost) luaSetReg(L *lua.LState) int {
	name := L.CheckString(1)
	if !h.debug.SetRegister(name, uint64(L.CheckInt64(2))) {
		L.ArgError(1, "unknown register "+name)
	}
	return 0
}

func (h *LuaHost) luaIRQ(L *lua.LState) int {
	level := L.CheckInt(1)
	if level < 1 || level > 7 {
		L.ArgError(1, "interrupt level must be 1-7")
		return 0
	}
	h.machine.RaiseInterrupt(uint8(level))
	return 0
}

func (h *LuaHost) luaReset(L *lua.LState) int {
	mode := ResetSoft
	if strings.EqualFold(L.OptString(1, "soft"), "hard") {
		mode = ResetHard
	}
	h.machine.Reset(mode)
	return 0
}

func (h *LuaHost) luaPad(L *lua.LState) int {
	n := L.CheckInt(1)
	buttons, err := ParsePadButtons(L.OptString(2, "-"))
	if err != nil {
		L.ArgError(2, err.Error())
		return 0
	}
	if n < 1 || n > 2 {
		L.ArgError(1, "pad must be 1 or 2")
		return 0
	}
	h.machine.SetPad(n-1, buttons)
	return 0
}

func (h *LuaHost) luaSnapshot(L *lua.LState) int {
	h.snapshots[L.CheckString(1)] = h.machine.Snapshot()
	return 0
}

func (h *LuaHost) luaRestore(L *lua.LState) int {
	name := L.CheckString(1)
	snap, ok := h.snapshots[name]
	if !ok {
		L.ArgError(1, "no snapshot named "+name)
		return 0
	}
	if err := h.machine.Restore(snap); err != nil {
		L.RaiseError("restore: %v", err)
	}
	return 0
}

func (h *LuaHost) luaSave(L *lua.LState) int {
	if err := SaveSnapshotToFile(h.machine.Snapshot(), L.CheckString(1)); err != nil {
		L.RaiseError("save: %v", err)
	}
	return 0
}

func (h *LuaHost) luaLoad(L *lua.LState) int {
	snap, err := LoadSnapshotFromFile(L.CheckString(1))
	if err == nil {
		err = h.machine.Restore(snap)
	}
	if err != nil {
		L.RaiseError("load: %v", err)
	}
	return 0
}

func (h *LuaHost) luaDisasm(L *lua.LState) int {
	addr := uint32(L.OptInt64(1, int64(h.machine.CPU.PC)))
	text, n := DisassembleM68K(h.machine.Bus.Read16, addr)
	L.Push(lua.LString(text))
	L.Push(lua.LNumber(n))
	return 2
}

func (h *LuaHost) luaOnFrame(L *lua.LState) int {
	if L.Get(1) == lua.LNil {
		h.onFrame = nil
		h.machine.OnFrame = nil
		return 0
	}
	h.onFrame = L.CheckFunction(1)
	h.machine.OnFrame = func(m *Machine) {
		if h.frameErr != nil {
			return
		}
		err := h.L.CallByParam(lua.P{Fn: h.onFrame, NRet: 0, Protect: true}, lua.LNumber(m.Frames))
		if err != nil {
			h.frameErr = fmt.Errorf("lua on_frame: %w", err)
		}
	}
	return 0
}
