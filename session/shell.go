package session

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"runtime"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/davtools/wdc/config"
)

// Shell is the interactive shell a login runs. Leaving it is the logout.
type Shell struct {
	Path string
	Args []string
	Env  []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ShellPath picks the user's shell.
func ShellPath(getenv func(string) string) string {
	if runtime.GOOS == "windows" {
		if comspec := getenv("COMSPEC"); comspec != "" {
			return comspec
		}
		return "cmd.exe"
	}
	if sh := getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

// NewShell returns the user's shell with the connection settings exported.
// Inherited connection variables are dropped so that the session only sees
// the settings it logged in with.
func NewShell(s *config.Settings) *Shell {
	return &Shell{
		Path:   ShellPath(os.Getenv),
		Env:    SessionEnv(os.Environ(), s),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// SessionEnv replaces the connection variables of base with those of s.
func SessionEnv(base []string, s *config.Settings) []string {
	names := config.EnvNames()
	env := make([]string, 0, len(base))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if slices.Contains(names, key) {
			continue
		}
		env = append(env, kv)
	}
	return append(env, s.Environ()...)
}

// Run blocks until the shell exits. A non-zero exit status of the shell is
// not an error.
func (sh *Shell) Run(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, sh.Path, sh.Args...)
	cmd.Env = sh.Env
	cmd.Stdin = sh.Stdin
	cmd.Stdout = sh.Stdout
	cmd.Stderr = sh.Stderr

	log.FromContext(ctx).WithPrefix("session").Debug("starting shell", "path", sh.Path)
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		log.FromContext(ctx).WithPrefix("session").Debug("shell exited", "code", exitErr.ExitCode())
		return nil
	}
	return err
}
