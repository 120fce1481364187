package webdav

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/davtools/wdc/common/utils/fsutil"
	"github.com/davtools/wdc/common/utils/ioutil"
)

// ProgressFunc receives transfer progress. Downloads fill the first pair,
// uploads the second.
type ProgressFunc func(downloadTotal, downloaded, uploadTotal, uploaded int64)

// ProgressFactory returns the progress callback for one file of a
// directory transfer. It may return nil.
type ProgressFactory func(remote string) ProgressFunc

// Download saves remote to local. The data goes to a hidden sibling of local
// first and replaces local only once complete.
func (c *Client) Download(ctx context.Context, remote, local string, progress ProgressFunc) error {
	resp, err := c.doRequest(ctx, MethodGet, clean(remote), nil, -1, nil)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", remote, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, remote)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("GET %s: %s", remote, resp.Status)
	}
	total := max(resp.ContentLength, 0)

	f, err := fsutil.CreatePartFile(local)
	if err != nil {
		return err
	}
	w := ioutil.NewProgressWriter(f, func(written int64) {
		if progress != nil {
			progress(total, written, 0, 0)
		}
	})
	if _, err := io.Copy(w, ioutil.NewRateLimitedReader(ctx, resp.Body, c.limiter)); err != nil {
		f.CloseAndRemove()
		return fmt.Errorf("failed to download %s: %w", remote, err)
	}
	if err := f.CloseAndRename(local); err != nil {
		return err
	}
	log.FromContext(ctx).WithPrefix("webdav").Debug("downloaded", "remote", remote, "local", local, "size", total)
	return nil
}

// Upload stores the local file at remote, replacing it.
func (c *Client) Upload(ctx context.Context, remote, local string, progress ProgressFunc) error {
	f, err := os.Open(local)
	if err != nil {
		return err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return err
	}
	if st.IsDir() {
		return fmt.Errorf("%s is a directory", local)
	}

	contentType := fsutil.DetectMIME(local)
	total := st.Size()
	body := ioutil.NewProgressReader(ioutil.NewRateLimitedReader(ctx, f, c.limiter), total, func(read, total int64) {
		if progress != nil {
			progress(0, 0, total, read)
		}
	})
	resp, err := c.doRequest(ctx, MethodPut, clean(remote), body, total, map[string]string{"Content-Type": contentType})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", local, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("PUT %s: %s", remote, resp.Status)
	}
	log.FromContext(ctx).WithPrefix("webdav").Debug("uploaded", "remote", remote, "local", local, "size", total, "type", contentType)
	return nil
}

// DownloadDir copies the remote collection into the local directory,
// creating it as needed.
func (c *Client) DownloadDir(ctx context.Context, remote, local string, factory ProgressFactory) error {
	entries, err := c.readDir(ctx, remote)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(local, 0o755); err != nil {
		return err
	}
	for _, e := range entries {
		r := path.Join(clean(remote), e.Name())
		l := filepath.Join(local, e.Name())
		if e.IsDir() {
			if err := c.DownloadDir(ctx, r, l, factory); err != nil {
				return err
			}
			continue
		}
		if err := c.Download(ctx, r, l, progressFor(factory, r)); err != nil {
			return err
		}
	}
	return nil
}

// UploadDir copies the local directory into the remote collection,
// creating it as needed.
func (c *Client) UploadDir(ctx context.Context, remote, local string, factory ProgressFactory) error {
	entries, err := os.ReadDir(local)
	if err != nil {
		return err
	}
	if err := c.ensureDir(ctx, remote); err != nil {
		return err
	}
	for _, e := range entries {
		r := path.Join(clean(remote), e.Name())
		l := filepath.Join(local, e.Name())
		if e.IsDir() {
			if err := c.UploadDir(ctx, r, l, factory); err != nil {
				return err
			}
			continue
		}
		if err := c.Upload(ctx, r, l, progressFor(factory, r)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) ensureDir(ctx context.Context, remote string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.wrap("mkdir", remote, c.dav.MkdirAll(clean(remote), 0o755))
}

func progressFor(factory ProgressFactory, remote string) ProgressFunc {
	if factory == nil {
		return nil
	}
	return factory(remote)
}
