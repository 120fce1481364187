// Package progress renders byte-transfer progress as a single terminal line.
//
// A line looks like
//
//	50%  [=============================^                             ]  100.00/200.00
//
// and always spans the full terminal width. The terminal size is probed
// again before every redraw, so resizing the window mid-transfer reflows the
// bar. Redraws happen only when the integer percentage changes, which bounds
// the output of a transfer to at most 101 lines regardless of how often the
// transfer loop reports.
package progress
