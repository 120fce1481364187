package progress

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// Geometry is the size of a terminal in character cells.
type Geometry struct {
	Columns int
	Rows    int
}

// Fallback is used when no strategy can determine the terminal size.
var Fallback = Geometry{Columns: 80, Rows: 25}

// Strategy reports the terminal geometry, or false when it has no answer.
type Strategy func() (Geometry, bool)

// Prober tries its strategies in order. The first usable answer wins and
// failing strategies are skipped silently.
type Prober []Strategy

func (p Prober) Probe() Geometry {
	for _, strategy := range p {
		if strategy == nil {
			continue
		}
		if g, ok := strategy(); ok && g.Columns > 0 && g.Rows > 0 {
			return g
		}
	}
	return Fallback
}

// DefaultProber asks the console behind f, then the controlling terminal,
// then COLUMNS/LINES.
func DefaultProber(f *os.File) Prober {
	return Prober{
		FileSize(f),
		ControllingTerminal,
		Environment(os.Getenv),
	}
}

// FileSize queries the console attached to f.
func FileSize(f *os.File) Strategy {
	return func() (Geometry, bool) {
		if f == nil {
			return Geometry{}, false
		}
		return fdSize(int(f.Fd()))
	}
}

// ControllingTerminal opens the process's terminal device and queries it,
// which still works when stdout is redirected.
func ControllingTerminal() (Geometry, bool) {
	tty, err := os.OpenFile(ttyDevice, os.O_RDWR, 0)
	if err != nil {
		return Geometry{}, false
	}
	defer tty.Close()
	return fdSize(int(tty.Fd()))
}

// Environment reads COLUMNS and LINES through getenv. A missing LINES keeps
// the fallback row count.
func Environment(getenv func(string) string) Strategy {
	return func() (Geometry, bool) {
		cols, err := strconv.Atoi(getenv("COLUMNS"))
		if err != nil || cols <= 0 {
			return Geometry{}, false
		}
		rows, err := strconv.Atoi(getenv("LINES"))
		if err != nil || rows <= 0 {
			rows = Fallback.Rows
		}
		return Geometry{Columns: cols, Rows: rows}, true
	}
}

func fdSize(fd int) (Geometry, bool) {
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return Geometry{}, false
	}
	return Geometry{Columns: cols, Rows: rows}, true
}
