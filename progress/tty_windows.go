//go:build windows

package progress

const ttyDevice = "CONOUT$"
