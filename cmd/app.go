package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/davtools/wdc/config"
	"github.com/davtools/wdc/logger"
	"github.com/davtools/wdc/session"
	"github.com/davtools/wdc/webdav"
)

const noSettingsMessage = "Not found settings of connection. Use 'wdc login <hostname>' to set them."

// annotationConnect marks commands that talk to the server.
const annotationConnect = "wdc/connect"

var errNoSettings = errors.New("no connection settings")

// app holds the state shared by the commands of one invocation.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	settings *config.Settings
	client   *webdav.Client
	prompter *session.Prompter
}

func Execute(ctx context.Context) {
	if code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	a := &app{in: in, out: out, errOut: errOut}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, errNoSettings) {
			fmt.Fprintln(out, noSettingsMessage)
			return 1
		}
		fmt.Fprintln(errOut, "Error:", err)
		return 1
	}
	return 0
}

// loadSettings reads the environment and the persistent flags once.
func (a *app) loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	if a.settings != nil {
		return a.settings, nil
	}
	flags := cmd.Root().PersistentFlags()
	v := config.New()
	config.BindFlags(v, flags)
	s, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	if flags.Changed("token") {
		s.WebDAV.Token, _ = flags.GetString("token")
	}
	a.settings = s
	return s, nil
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if isCompletion(cmd) {
		// candidates load settings themselves and fail silently
		l, _ := logger.New(a.errOut, "")
		cmd.SetContext(log.WithContext(ctx, l))
		return nil
	}

	s, err := a.loadSettings(cmd)
	if err != nil {
		return err
	}
	l, err := logger.New(a.errOut, s.Log.Level)
	if err != nil {
		return err
	}
	cmd.SetContext(log.WithContext(ctx, l))
	a.prompter = session.NewPrompter(a.in, a.out)

	if cmd.Annotations[annotationConnect] == "" {
		return nil
	}
	if err := s.Validate(); err != nil {
		if errors.Is(err, config.ErrNoHostname) || errors.Is(err, config.ErrNoCredentials) {
			l.Debug("invalid settings", "error", err)
			return errNoSettings
		}
		return err
	}
	a.client, err = newClient(s)
	return err
}

func isCompletion(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd, "completion":
			return true
		}
	}
	return false
}

func newClient(s *config.Settings) (*webdav.Client, error) {
	limit, err := s.RateLimit()
	if err != nil {
		return nil, err
	}
	return webdav.NewClient(webdav.Options{
		Hostname:      s.WebDAV.Hostname,
		Root:          s.WebDAV.Root,
		Login:         s.WebDAV.Login,
		Password:      s.WebDAV.Password,
		Token:         s.WebDAV.Token,
		Proxy:         s.Proxy.Hostname,
		ProxyLogin:    s.Proxy.Login,
		ProxyPassword: s.Proxy.Password,
		CertPath:      s.CertPath,
		KeyPath:       s.KeyPath,
		RateLimit:     limit,
		Workers:       s.Workers,
	})
}

// fail reports a client error of an action. The command itself succeeds.
func (a *app) fail(action string, err error) {
	fmt.Fprintf(a.out, "Failed to %s: %v\n", action, err)
}

func connected() map[string]string {
	return map[string]string{annotationConnect: "true"}
}
