package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/davtools/wdc/progress"
	"github.com/davtools/wdc/session"
	"github.com/davtools/wdc/webdav"
)

// confirmReplace asks before an existing target is replaced. It reports
// whether the transfer may go on.
func (a *app) confirmReplace(target string) bool {
	ok, err := a.prompter.ConfirmOverwrite(target)
	if errors.Is(err, session.ErrIncorrectAnswer) {
		fmt.Fprintln(a.out, "Incorrect answer")
		return false
	}
	if err != nil {
		a.fail("read answer", err)
		return false
	}
	return ok
}

func (a *app) renderer() *progress.Renderer {
	return progress.NewRenderer(progress.WithWriter(a.out))
}

func (a *app) perFile(remote string) webdav.ProgressFunc {
	fmt.Fprintln(a.out, remote)
	return a.renderer().DownloadProgress
}

func (a *app) perUpload(remote string) webdav.ProgressFunc {
	fmt.Fprintln(a.out, remote)
	return a.renderer().UploadProgress
}

func newDownloadCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:               "download <path> -t <local path>",
		Short:             "Download a remote file or directory",
		Annotations:       connected(),
		ValidArgsFunction: a.completeRemote,
		RunE: func(cmd *cobra.Command, args []string) error {
			local, _ := cmd.Flags().GetString("to-path")
			if len(args) == 0 || local == "" {
				return cmd.Help()
			}
			if err := a.download(cmd.Context(), args[0], local); err != nil {
				a.fail("download", err)
			}
			return nil
		},
	}
	c.Flags().StringP("to-path", "t", "", "local destination")
	return c
}

func (a *app) download(ctx context.Context, remote, local string) error {
	logger := log.FromContext(ctx)
	isDir, err := a.client.IsDir(ctx, remote)
	if err != nil {
		return err
	}
	st, err := os.Stat(local)
	if err == nil && !isDir && st.IsDir() {
		// a file downloaded onto a directory goes inside it
		local = filepath.Join(local, path.Base(path.Join("/", remote)))
		st, err = os.Stat(local)
		if err == nil && st.IsDir() {
			return fmt.Errorf("%s is a directory", local)
		}
	}
	if err == nil {
		if !a.confirmReplace(local) {
			return nil
		}
		// a single file replaces the old one on rename
		if isDir || st.IsDir() {
			if err := os.RemoveAll(local); err != nil {
				return err
			}
		}
	}
	logger.Info("downloading", "remote", remote, "local", local, "dir", isDir)
	if isDir {
		return a.client.DownloadDir(ctx, remote, local, a.perFile)
	}
	return a.client.Download(ctx, remote, local, a.renderer().DownloadProgress)
}

func newUploadCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:               "upload <path> -f <local path>",
		Short:             "Upload a local file or directory",
		Annotations:       connected(),
		ValidArgsFunction: a.completeRemote,
		RunE: func(cmd *cobra.Command, args []string) error {
			local, _ := cmd.Flags().GetString("from-path")
			if len(args) == 0 || local == "" {
				return cmd.Help()
			}
			if err := a.upload(cmd.Context(), args[0], local); err != nil {
				a.fail("upload", err)
			}
			return nil
		},
	}
	c.Flags().StringP("from-path", "f", "", "local source")
	return c
}

func (a *app) upload(ctx context.Context, remote, local string) error {
	logger := log.FromContext(ctx)
	st, err := os.Stat(local)
	if err != nil {
		return err
	}
	exists, err := a.client.Check(ctx, remote)
	if err != nil {
		return err
	}
	if exists {
		if !a.confirmReplace(remote) {
			return nil
		}
		if err := a.client.Clean(ctx, remote); err != nil {
			return err
		}
	}
	logger.Info("uploading", "remote", remote, "local", local, "dir", st.IsDir())
	if st.IsDir() {
		return a.client.UploadDir(ctx, remote, local, a.perUpload)
	}
	return a.client.Upload(ctx, remote, local, a.renderer().UploadProgress)
}

func newPushCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:               "push <path> -f <local dir>",
		Short:             "Upload local files missing on the server",
		Annotations:       connected(),
		ValidArgsFunction: a.completeRemote,
		RunE: func(cmd *cobra.Command, args []string) error {
			local, _ := cmd.Flags().GetString("from-path")
			if len(args) == 0 || local == "" {
				return cmd.Help()
			}
			if err := a.client.Push(cmd.Context(), args[0], local); err != nil {
				a.fail("push", err)
			}
			return nil
		},
	}
	c.Flags().StringP("from-path", "f", "", "local source directory")
	return c
}

func newPullCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:               "pull <path> -t <local dir>",
		Short:             "Download remote files missing locally",
		Annotations:       connected(),
		ValidArgsFunction: a.completeRemote,
		RunE: func(cmd *cobra.Command, args []string) error {
			local, _ := cmd.Flags().GetString("to-path")
			if len(args) == 0 || local == "" {
				return cmd.Help()
			}
			if err := a.client.Pull(cmd.Context(), args[0], local); err != nil {
				a.fail("pull", err)
			}
			return nil
		},
	}
	c.Flags().StringP("to-path", "t", "", "local destination directory")
	return c
}
