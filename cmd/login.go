package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/davtools/wdc/config"
	"github.com/davtools/wdc/session"
)

func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login [hostname]",
		Short: "Open a shell with the connection settings exported",
		Long: `Asks for the missing connection details, checks them and starts your
shell with the settings exported as environment variables. Every wdc command
run inside that shell uses them. Exit the shell to log out.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := a.settings
			if len(args) > 0 {
				s.WebDAV.Hostname = args[0]
			}
			if err := session.Login(ctx, s, a.prompter, verifyConnection); err != nil {
				a.fail("login", err)
				return nil
			}

			st := newStyles(a.out)
			fmt.Fprintln(a.out, st.ok.Render("Logged in to "+s.WebDAV.Hostname+". Exit the shell to log out."))
			if err := session.NewShell(s).Run(ctx); err != nil {
				a.fail("run shell", err)
				return nil
			}
			log.FromContext(ctx).Info("logged out", "hostname", s.WebDAV.Hostname)
			return nil
		},
	}
}

func verifyConnection(ctx context.Context, s *config.Settings) error {
	client, err := newClient(s)
	if err != nil {
		return err
	}
	return client.Connect(ctx)
}
