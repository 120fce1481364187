package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	fillMark = "="
	tipMark  = "^"
)

// Renderer draws a single self-overwriting progress line sized to the
// current terminal width. A Renderer belongs to exactly one transfer and is
// not safe for concurrent use.
type Renderer struct {
	out      io.Writer
	geometry func() Geometry

	total int64
	last  int
}

type Option func(*Renderer)

// WithWriter sets the destination of rendered lines, os.Stdout by default.
func WithWriter(w io.Writer) Option {
	return func(r *Renderer) {
		r.out = w
	}
}

// WithGeometry replaces the terminal probe. fn is called on every redraw.
func WithGeometry(fn func() Geometry) Option {
	return func(r *Renderer) {
		r.geometry = fn
	}
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		out:  os.Stdout,
		last: -1,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.geometry == nil {
		r.geometry = DefaultProber(os.Stdout).Probe
	}
	return r
}

// Update feeds a (current, total) pair. The first nonzero total is latched
// and used for every later call. The line is redrawn only when the integer
// percentage differs from the last one drawn.
func (r *Renderer) Update(current, total int64) {
	if r.total <= 0 && total > 0 {
		r.total = total
	}
	if r.total <= 0 {
		return
	}
	percent := int(current * 100 / r.total)
	if percent == r.last {
		return
	}
	r.last = percent

	line := Line(percent, r.total, r.geometry().Columns)
	if percent < 100 {
		io.WriteString(r.out, line+"\r")
		return
	}
	io.WriteString(r.out, line+"\n")
}

// DownloadProgress adapts the renderer to the client callback for downloads.
func (r *Renderer) DownloadProgress(downloadTotal, downloaded, _, _ int64) {
	r.Update(downloaded, downloadTotal)
}

// UploadProgress adapts the renderer to the client callback for uploads.
func (r *Renderer) UploadProgress(_, _, uploadTotal, uploaded int64) {
	r.Update(uploaded, uploadTotal)
}

// Percent returns the last rendered percentage, -1 before the first redraw.
func (r *Renderer) Percent() int {
	return r.last
}

// Line lays out one progress line for a terminal of the given width:
//
//	"{percent}% [{bar}] {done}/{total}"
//
// The result is exactly width columns long whenever the bar has room for at
// least one column. Narrower terminals produce shortened segments; the
// arithmetic is not clamped.
func Line(percent int, total int64, width int) string {
	precise := fmt.Sprintf("%-4s", fmt.Sprintf("%d%%", percent))

	totalStr := fmt.Sprintf("%.2f", float64(total))
	done := fmt.Sprintf("%.2f", float64(percent)*float64(total)/100)
	ratio := fmt.Sprintf("%*s", 2*len(totalStr)+1, done+"/"+totalStr)

	// Two brackets and two separating spaces. Subtracting only the brackets
	// would overflow the width by two columns.
	barWidth := width - len(precise) - len(ratio) - 4

	fill := floorDiv(percent*barWidth, 100)
	var bar strings.Builder
	bar.WriteString(repeat(fillMark, fill))
	tip := 0
	if percent != 100 {
		bar.WriteString(tipMark)
		tip = len(tipMark)
	}
	bar.WriteString(repeat(" ", barWidth-fill-tip))

	return precise + " [" + bar.String() + "] " + ratio
}

func repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
