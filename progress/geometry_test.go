package progress

import (
	"os"
	"path/filepath"
	"testing"
)

func fixed(g Geometry, ok bool) Strategy {
	return func() (Geometry, bool) {
		return g, ok
	}
}

func TestProberFirstSuccessWins(t *testing.T) {
	var called []string
	track := func(name string, g Geometry, ok bool) Strategy {
		return func() (Geometry, bool) {
			called = append(called, name)
			return g, ok
		}
	}
	p := Prober{
		track("console", Geometry{}, false),
		track("tty", Geometry{Columns: 132, Rows: 43}, true),
		track("env", Geometry{Columns: 10, Rows: 10}, true),
	}
	got := p.Probe()
	if got != (Geometry{Columns: 132, Rows: 43}) {
		t.Fatalf("unexpected geometry %+v", got)
	}
	if len(called) != 2 {
		t.Fatalf("strategies after the first success must not run, called %v", called)
	}
}

func TestProberFallback(t *testing.T) {
	p := Prober{
		fixed(Geometry{}, false),
		nil,
		fixed(Geometry{Columns: 0, Rows: 10}, true),
	}
	if got := p.Probe(); got != Fallback {
		t.Fatalf("expected fallback, got %+v", got)
	}
	if got := (Prober{}).Probe(); got != (Geometry{Columns: 80, Rows: 25}) {
		t.Fatalf("empty prober should fall back to 80x25, got %+v", got)
	}
}

func TestEnvironmentStrategy(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		want   Geometry
		wantOK bool
	}{
		{"both", map[string]string{"COLUMNS": "120", "LINES": "40"}, Geometry{120, 40}, true},
		{"columns only", map[string]string{"COLUMNS": "100"}, Geometry{100, 25}, true},
		{"missing", map[string]string{}, Geometry{}, false},
		{"garbage", map[string]string{"COLUMNS": "wide"}, Geometry{}, false},
		{"zero", map[string]string{"COLUMNS": "0", "LINES": "10"}, Geometry{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(k string) string { return tt.env[k] }
			got, ok := Environment(getenv)()
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("got %+v/%v, want %+v/%v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFileSizeOnRegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "not-a-tty"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	if _, ok := FileSize(f)(); ok {
		t.Fatalf("a regular file has no terminal size")
	}
	if _, ok := FileSize(nil)(); ok {
		t.Fatalf("nil file has no terminal size")
	}
}
