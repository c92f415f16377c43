// video_interface.go - Video output abstraction for the VDP frame buffer

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
	VIDEO_MIN_SCALE     = 1
	VIDEO_MAX_SCALE     = 6
	VIDEO_DEFAULT_SCALE = 3
)

// VideoError wraps a presenter failure with the step that failed.
type VideoError struct {
	Operation string
	Details   string
	Err       error
}

func (e *VideoError) Error() string {
	msg := fmt.Sprintf("video %s: %s", e.Operation, e.Details)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *VideoError) Unwrap() error { return e.Err }

// DisplayConfig sizes the presenter. Width and Height describe the VDP
// frame buffer, which is always VDP_MAX_WIDTH pixels per row even in H32.
type DisplayConfig struct {
	Width       int
	Height      int
	Scale       int
	RefreshRate int // 60 NTSC, 50 PAL
	Fullscreen  bool
}

// FrameSink receives one RGBA frame per emulated frame.
type FrameSink interface {
	UpdateFrame(rgba []byte) error
	GetFrameCount() uint64
}

// VideoOutput is a FrameSink with a lifecycle and display settings.
type VideoOutput interface {
	FrameSink

	Start() error
	Stop() error
	Close() error
	IsStarted() bool

	SetDisplayConfig(config DisplayConfig) error
	GetDisplayConfig() DisplayConfig
}

func ClampScale(scale int) int {
	return max(VIDEO_MIN_SCALE, min(VIDEO_MAX_SCALE, scale))
}

// DisplayConfigFor matches the output to the machine's region timing.
func DisplayConfigFor(m *Machine, scale int) DisplayConfig {
	cfg := DisplayConfig{
		Width:       VDP_MAX_WIDTH,
		Height:      VDP_MAX_HEIGHT,
		Scale:       ClampScale(scale),
		RefreshRate: 60,
	}
	if m.PAL {
		cfg.RefreshRate = 50
	}
	return cfg
}
