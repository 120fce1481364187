package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

func optionalPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "check [path]",
		Short:             "Check that the server or a remote path is reachable",
		Annotations:       connected(),
		ValidArgsFunction: a.completeRemote,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := newStyles(a.out)
			ok, err := a.client.Check(cmd.Context(), optionalPath(args))
			if err != nil {
				log.FromContext(cmd.Context()).Debug("check failed", "error", err)
			}
			if ok {
				fmt.Fprintln(a.out, st.ok.Render("success"))
			} else {
				fmt.Fprintln(a.out, st.bad.Render("not success"))
			}
			return nil
		},
	}
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "info <path>",
		Short:             "Show the properties of a remote resource",
		Annotations:       connected(),
		ValidArgsFunction: a.completeRemote,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			info, err := a.client.Info(cmd.Context(), args[0])
			if err != nil {
				a.fail("get info", err)
				return nil
			}
			out, err := yaml.Marshal(info)
			if err != nil {
				a.fail("get info", err)
				return nil
			}
			fmt.Fprint(a.out, string(out))
			return nil
		},
	}
}

func newFreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "free",
		Short:       "Show the free space on the server",
		Annotations: connected(),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.client.Free(cmd.Context())
			if err != nil {
				a.fail("get free space", err)
				return nil
			}
			st := newStyles(a.out)
			fmt.Fprintf(a.out, "%s %s (%d bytes)\n", st.label.Render("free:"), humanize.IBytes(uint64(n)), n)
			return nil
		},
	}
}

func newLsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "ls [path]",
		Short:             "List a remote directory",
		Annotations:       connected(),
		ValidArgsFunction: a.completeRemote,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := a.client.List(cmd.Context(), optionalPath(args))
			if err != nil {
				a.fail("list", err)
				return nil
			}
			st := newStyles(a.out)
			for _, name := range names {
				if strings.HasSuffix(name, "/") {
					name = st.dir.Render(name)
				}
				fmt.Fprintln(a.out, name)
			}
			return nil
		},
	}
}

// pathAction builds a command that runs fn on one remote path.
func pathAction(a *app, use, short, action string, fn func(cmd *cobra.Command, remote string) error) *cobra.Command {
	return &cobra.Command{
		Use:               use + " <path>",
		Short:             short,
		Annotations:       connected(),
		ValidArgsFunction: a.completeRemote,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			if err := fn(cmd, args[0]); err != nil {
				a.fail(action, err)
			}
			return nil
		},
	}
}

func newCleanCmd(a *app) *cobra.Command {
	return pathAction(a, "clean", "Remove a remote file or directory", "clean", func(cmd *cobra.Command, remote string) error {
		return a.client.Clean(cmd.Context(), remote)
	})
}

func newMkdirCmd(a *app) *cobra.Command {
	return pathAction(a, "mkdir", "Create a remote directory", "create directory", func(cmd *cobra.Command, remote string) error {
		return a.client.Mkdir(cmd.Context(), remote)
	})
}

func newPublishCmd(a *app) *cobra.Command {
	return pathAction(a, "publish", "Publish a remote resource and print its link", "publish", func(cmd *cobra.Command, remote string) error {
		link, err := a.client.Publish(cmd.Context(), remote)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, link)
		return nil
	})
}

func newUnpublishCmd(a *app) *cobra.Command {
	return pathAction(a, "unpublish", "Revoke the public link of a remote resource", "unpublish", func(cmd *cobra.Command, remote string) error {
		return a.client.Unpublish(cmd.Context(), remote)
	})
}

// relocate builds copy and move, which take a remote source and a remote
// --to-path.
func relocate(a *app, use, short, action string, fn func(cmd *cobra.Command, from, to string) error) *cobra.Command {
	c := &cobra.Command{
		Use:               use + " <path> -t <to-path>",
		Short:             short,
		Annotations:       connected(),
		ValidArgsFunction: a.completeRemote,
		RunE: func(cmd *cobra.Command, args []string) error {
			to, _ := cmd.Flags().GetString("to-path")
			if len(args) == 0 || to == "" {
				return cmd.Help()
			}
			if err := fn(cmd, args[0], to); err != nil {
				a.fail(action, err)
			}
			return nil
		},
	}
	c.Flags().StringP("to-path", "t", "", "remote destination")
	c.RegisterFlagCompletionFunc("to-path", a.completeRemoteFlag)
	return c
}

func newCopyCmd(a *app) *cobra.Command {
	return relocate(a, "copy", "Copy a remote resource", "copy", func(cmd *cobra.Command, from, to string) error {
		return a.client.Copy(cmd.Context(), from, to)
	})
}

func newMoveCmd(a *app) *cobra.Command {
	return relocate(a, "move", "Move a remote resource", "move", func(cmd *cobra.Command, from, to string) error {
		return a.client.Move(cmd.Context(), from, to)
	})
}
