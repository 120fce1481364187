package webdav

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/duke-git/lancet/v2/slice"
	"golang.org/x/sync/errgroup"
)

// tree splits directory entries into file names and sub-directory names.
type tree struct {
	files []string
	dirs  []string
}

func (t *tree) add(name string, dir bool) {
	if dir {
		t.dirs = append(t.dirs, name)
	} else {
		t.files = append(t.files, name)
	}
}

func (c *Client) remoteTree(ctx context.Context, remote string) (*tree, error) {
	entries, err := c.readDir(ctx, remote)
	if err != nil {
		return nil, err
	}
	t := &tree{}
	for _, e := range entries {
		t.add(e.Name(), e.IsDir())
	}
	return t, nil
}

func localTree(local string) (*tree, error) {
	entries, err := os.ReadDir(local)
	if err != nil {
		return nil, err
	}
	t := &tree{}
	for _, e := range entries {
		t.add(e.Name(), e.IsDir())
	}
	return t, nil
}

// Push uploads the files of localDir whose names are missing in remoteDir,
// recursing into sub-directories. Existing remote files are left alone.
func (c *Client) Push(ctx context.Context, remoteDir, localDir string) error {
	lt, err := localTree(localDir)
	if err != nil {
		return err
	}
	if err := c.ensureDir(ctx, remoteDir); err != nil {
		return err
	}
	rt, err := c.remoteTree(ctx, remoteDir)
	if err != nil {
		return err
	}

	missing := slice.Difference(lt.files, slices.Concat(rt.files, rt.dirs))
	log.FromContext(ctx).WithPrefix("webdav").Debug("push", "remote", remoteDir, "local", localDir, "missing", len(missing))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)
	for _, name := range missing {
		r := path.Join(clean(remoteDir), name)
		l := filepath.Join(localDir, name)
		g.Go(func() error {
			return c.Upload(gctx, r, l, nil)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, name := range lt.dirs {
		if slice.Contain(rt.files, name) {
			continue
		}
		if err := c.Push(ctx, path.Join(clean(remoteDir), name), filepath.Join(localDir, name)); err != nil {
			return err
		}
	}
	return nil
}

// Pull downloads the files of remoteDir whose names are missing in localDir,
// recursing into sub-collections. Existing local files are left alone.
func (c *Client) Pull(ctx context.Context, remoteDir, localDir string) error {
	rt, err := c.remoteTree(ctx, remoteDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(localDir, 0o755); err != nil {
		return err
	}
	lt, err := localTree(localDir)
	if err != nil {
		return err
	}

	missing := slice.Difference(rt.files, slices.Concat(lt.files, lt.dirs))
	log.FromContext(ctx).WithPrefix("webdav").Debug("pull", "remote", remoteDir, "local", localDir, "missing", len(missing))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)
	for _, name := range missing {
		r := path.Join(clean(remoteDir), name)
		l := filepath.Join(localDir, name)
		g.Go(func() error {
			return c.Download(gctx, r, l, nil)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, name := range rt.dirs {
		if slice.Contain(lt.files, name) {
			continue
		}
		if err := c.Pull(ctx, path.Join(clean(remoteDir), name), filepath.Join(localDir, name)); err != nil {
			return err
		}
	}
	return nil
}
