// terminal_host.go - Terminal front end for the Machine Monitor

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
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// monitorLineSource yields command lines and prints monitor output.
type monitorLineSource interface {
	ReadLine() (string, error)
	Print(lines []OutputLine)
}

// rawTerminal is an interactive terminal in raw mode with line editing and
// history provided by x/term.
type rawTerminal struct {
	t *term.Terminal
}

func (r *rawTerminal) ReadLine() (string, error) {
	return r.t.ReadLine()
}

func (r *rawTerminal) escapeFor(color uint32) []byte {
	e := r.t.Escape
	switch color {
	case colorRed:
		return e.Red
	case colorGreen:
		return e.Green
	case colorYellow:
		return e.Yellow
	case colorCyan:
		return e.Cyan
	case colorMagenta:
		return e.Magenta
	case colorDim:
		return e.Blue
	}
	return e.White
}

func (r *rawTerminal) Print(lines []OutputLine) {
	for _, l := range lines {
		fmt.Fprintf(r.t, "%s%s%s\r\n", r.escapeFor(l.Color), l.Text, r.t.Escape.Reset)
	}
}

// plainLines reads commands from a pipe or file.
type plainLines struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (p *plainLines) ReadLine() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.scanner.Text(), nil
}

func (p *plainLines) Print(lines []OutputLine) {
	for _, l := range lines {
		fmt.Fprintln(p.out, l.Text)
	}
}

// RunMonitorTerminal drives the monitor from stdin until "x" or end of
// input. A terminal is put in raw mode for the duration.
func RunMonitorTerminal(mon *MachineMonitor, in *os.File, out io.Writer) error {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return runMonitor(mon, &plainLines{scanner: bufio.NewScanner(in), out: out})
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("terminal_host: failed to set raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	rw := struct {
		io.Reader
		io.Writer
	}{in, out}
	t := term.NewTerminal(rw, "> ")
	if w, h, err := term.GetSize(fd); err == nil {
		t.SetSize(w, h)
	}
	return runMonitor(mon, &rawTerminal{t: t})
}

func runMonitor(mon *MachineMonitor, src monitorLineSource) error {
	mon.Banner()
	src.Print(mon.DrainOutput())
	for {
		line, err := src.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		exit := mon.ExecuteCommand(line)
		src.Print(mon.DrainOutput())
		if exit {
			return nil
		}
	}
}
