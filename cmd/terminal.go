package cmd

import (
	"io"
	"os"
	"runtime"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

// defaultFallbackTermWidth is used when the terminal size cannot be probed
// (CI, some Windows shells).
const defaultFallbackTermWidth = 120

var (
	termGetSize      = term.GetSize
	termIsTerminal   = term.IsTerminal
	stdinIsPiped     = func() bool { stat, _ := os.Stdin.Stat(); return stat == nil || (stat.Mode()&os.ModeCharDevice) == 0 }
	openTerminalIOFn = openTerminalIO
)

// detectTerminalSize probes stdout, stderr and stdin, then falls back to
// $COLUMNS.
func detectTerminalSize() (int, int) {
	fds := []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	for _, fd := range fds {
		if w, h, err := termGetSize(int(fd)); err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w, 0
		}
	}
	return defaultFallbackTermWidth, 0
}

// isTerminalWriter reports whether w is a terminal. Buffers and pipes are not.
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && termIsTerminal(int(f.Fd()))
}

// programOptions points bubbletea at the real terminal when the account data
// came in on stdin. The returned func releases the opened devices.
func programOptions() ([]tea.ProgramOption, func()) {
	cleanup := func() {}
	if !stdinIsPiped() {
		return nil, cleanup
	}

	ttyIn, ttyOut, err := openTerminalIOFn()
	if err != nil {
		// No controlling terminal; keys from the pipe are all we get.
		return nil, cleanup
	}
	cleanup = func() {
		_ = ttyIn.Close()
		if ttyOut != nil && ttyOut != ttyIn {
			_ = ttyOut.Close()
		}
	}

	opts := []tea.ProgramOption{tea.WithInput(ttyIn)}
	if ttyOut != nil {
		opts = append(opts, tea.WithOutput(ttyOut))
	}
	return opts, cleanup
}

func openTerminalIO() (*os.File, *os.File, error) {
	in, out := terminalDeviceNames(runtime.GOOS)

	input, err := os.OpenFile(in, os.O_RDWR, 0)
	if err != nil {
		return nil, nil, err
	}
	if out == "" || out == in {
		return input, input, nil
	}

	output, err := os.OpenFile(out, os.O_RDWR, 0)
	if err != nil {
		return input, nil, err
	}
	return input, output, nil
}

func terminalDeviceNames(goos string) (input string, output string) {
	if goos == "windows" {
		return "CONIN$", "CONOUT$"
	}
	return "/dev/tty", "/dev/tty"
}
