//go:build !windows

package progress

const ttyDevice = "/dev/tty"
