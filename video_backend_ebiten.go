//go:build !headless

// video_backend_ebiten.go - Ebiten window presenting the VDP output

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
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"
)

// EbitenOutput is both the VideoOutput and the ebiten.Game. Each Update
// runs one emulated frame, so ebiten's tick rate paces the machine.
type EbitenOutput struct {
	running     bool
	window      *ebiten.Image
	config      DisplayConfig
	frameBuffer []byte
	bufferMutex sync.RWMutex
	frameCount  uint64

	machine   *Machine
	overlay   *MonitorOverlay
	maxFrames uint64
	paused    bool
	stepOnce  bool

	showOverlay   bool
	clipboardOnce sync.Once
	clipboardOK   bool
}

func NewEbitenOutput() (*EbitenOutput, error) {
	eo := &EbitenOutput{}
	eo.SetDisplayConfig(DisplayConfig{
		Width:       VDP_MAX_WIDTH,
		Height:      VDP_MAX_HEIGHT,
		Scale:       VIDEO_DEFAULT_SCALE,
		RefreshRate: 60,
	})
	return eo, nil
}

func (eo *EbitenOutput) Start() error {
	if eo.running {
		return nil
	}
	eo.running = true
	ebiten.SetWindowSize(eo.config.Width*eo.config.Scale, eo.config.Height*eo.config.Scale)
	ebiten.SetWindowTitle("IntuitionDrive (c) 2024 - 2026 Zayn Otley")
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(eo.config.RefreshRate)
	ebiten.SetFullscreen(eo.config.Fullscreen)
	return nil
}

func (eo *EbitenOutput) Stop() error {
	eo.running = false
	return nil
}

func (eo *EbitenOutput) Close() error {
	return eo.Stop()
}

func (eo *EbitenOutput) IsStarted() bool {
	return eo.running
}

func (eo *EbitenOutput) SetDisplayConfig(config DisplayConfig) error {
	eo.bufferMutex.Lock()
	defer eo.bufferMutex.Unlock()

	if config.Width <= 0 || config.Height <= 0 {
		return &VideoError{
			Operation: "configure",
			Details:   fmt.Sprintf("invalid size %dx%d", config.Width, config.Height),
		}
	}
	if config.RefreshRate <= 0 {
		config.RefreshRate = 60
	}
	config.Scale = ClampScale(config.Scale)
	eo.config = config
	if len(eo.frameBuffer) != config.Width*config.Height*4 {
		eo.frameBuffer = make([]byte, config.Width*config.Height*4)
	}
	if eo.window != nil {
		eo.window.Deallocate()
		eo.window = nil
	}
	return nil
}

func (eo *EbitenOutput) GetDisplayConfig() DisplayConfig {
	eo.bufferMutex.RLock()
	defer eo.bufferMutex.RUnlock()
	return eo.config
}

func (eo *EbitenOutput) UpdateFrame(data []byte) error {
	eo.bufferMutex.Lock()
	copy(eo.frameBuffer, data)
	eo.frameCount++
	eo.bufferMutex.Unlock()
	return nil
}

func (eo *EbitenOutput) GetFrameCount() uint64 {
	eo.bufferMutex.RLock()
	defer eo.bufferMutex.RUnlock()
	return eo.frameCount
}

// Run drives the machine from the ebiten loop until the window closes or
// maxFrames frames have run (0 runs forever). It must be called from the
// main goroutine.
func (eo *EbitenOutput) Run(m *Machine, monitor *MachineMonitor, maxFrames uint64) error {
	eo.machine = m
	eo.maxFrames = maxFrames
	if monitor != nil {
		eo.overlay = NewMonitorOverlay(monitor)
	}
	if err := eo.SetDisplayConfig(DisplayConfigFor(m, eo.config.Scale)); err != nil {
		return err
	}
	if err := eo.Start(); err != nil {
		return err
	}
	if err := ebiten.RunGame(eo); err != nil {
		return &VideoError{Operation: "run", Details: "ebiten loop", Err: err}
	}
	return nil
}

// SetScale changes the window scale before Run.
func (eo *EbitenOutput) SetScale(scale int) {
	eo.bufferMutex.Lock()
	eo.config.Scale = ClampScale(scale)
	eo.bufferMutex.Unlock()
}

var padKeys = []struct {
	key    ebiten.Key
	button uint8
}{
	{ebiten.KeyArrowUp, PadUp},
	{ebiten.KeyArrowDown, PadDown},
	{ebiten.KeyArrowLeft, PadLeft},
	{ebiten.KeyArrowRight, PadRight},
	{ebiten.KeyZ, PadA},
	{ebiten.KeyX, PadB},
	{ebiten.KeyC, PadC},
	{ebiten.KeyEnter, PadStart},
}

var padGamepadButtons = []struct {
	button ebiten.StandardGamepadButton
	pad    uint8
}{
	{ebiten.StandardGamepadButtonLeftTop, PadUp},
	{ebiten.StandardGamepadButtonLeftBottom, PadDown},
	{ebiten.StandardGamepadButtonLeftLeft, PadLeft},
	{ebiten.StandardGamepadButtonLeftRight, PadRight},
	{ebiten.StandardGamepadButtonRightLeft, PadA},
	{ebiten.StandardGamepadButtonRightBottom, PadB},
	{ebiten.StandardGamepadButtonRightRight, PadC},
	{ebiten.StandardGamepadButtonCenterRight, PadStart},
}

// padFromKeys maps the keyboard onto pad 1.
func padFromKeys(pressed func(ebiten.Key) bool) uint8 {
	var buttons uint8
	for _, k := range padKeys {
		if pressed(k.key) {
			buttons |= k.button
		}
	}
	return buttons
}

func (eo *EbitenOutput) readPads() {
	pads := [2]uint8{padFromKeys(ebiten.IsKeyPressed), 0}
	var ids []ebiten.GamepadID
	for i, id := range ebiten.AppendGamepadIDs(ids) {
		if i >= len(pads) || !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for _, b := range padGamepadButtons {
			if ebiten.IsStandardGamepadButtonPressed(id, b.button) {
				pads[i] |= b.pad
			}
		}
	}
	eo.machine.SetPad(0, pads[0])
	eo.machine.SetPad(1, pads[1])
}

func (eo *EbitenOutput) copyRegisters() {
	eo.clipboardOnce.Do(func() {
		eo.clipboardOK = clipboard.Init() == nil
	})
	if !eo.clipboardOK {
		fmt.Println("Clipboard unavailable")
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(eo.machine.CPU.DumpRegisters()))
}

func (eo *EbitenOutput) Update() error {
	if ebiten.IsWindowBeingClosed() || !eo.running {
		return ebiten.Termination
	}

	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF11):
		eo.config.Fullscreen = !eo.config.Fullscreen
		ebiten.SetFullscreen(eo.config.Fullscreen)
	case inpututil.IsKeyJustPressed(ebiten.KeyF12):
		eo.showOverlay = !eo.showOverlay
	case inpututil.IsKeyJustPressed(ebiten.KeyF10):
		if shift {
			eo.machine.Reset(ResetHard)
		} else {
			eo.machine.Reset(ResetSoft)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyF9):
		eo.copyRegisters()
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		eo.paused = !eo.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyF6):
		eo.stepOnce = eo.paused
	}

	if eo.paused && !eo.stepOnce {
		return nil
	}
	eo.stepOnce = false

	eo.readPads()
	eo.machine.RunFrame()
	eo.UpdateFrame(eo.machine.FrameBuffer())

	if eo.maxFrames > 0 && eo.machine.Frames >= eo.maxFrames {
		return ebiten.Termination
	}
	return nil
}

func (eo *EbitenOutput) Draw(screen *ebiten.Image) {
	eo.bufferMutex.RLock()
	if eo.window == nil {
		eo.window = ebiten.NewImage(eo.config.Width, eo.config.Height)
	}
	eo.window.WritePixels(eo.frameBuffer)
	scale := float64(eo.config.Scale)
	eo.bufferMutex.RUnlock()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	screen.DrawImage(eo.window, op)

	if eo.showOverlay && eo.overlay != nil {
		eo.overlay.Draw(screen, eo.paused)
	}
}

func (eo *EbitenOutput) Layout(_, _ int) (int, int) {
	eo.bufferMutex.RLock()
	defer eo.bufferMutex.RUnlock()
	return eo.config.Width * eo.config.Scale, eo.config.Height * eo.config.Scale
}
