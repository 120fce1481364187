package webdav

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/studio-b12/gowebdav"
	"golang.org/x/time/rate"
)

type Method string

const (
	MethodGet       Method = "GET"
	MethodPut       Method = "PUT"
	MethodPropfind  Method = "PROPFIND"
	MethodProppatch Method = "PROPPATCH"
)

// Options describes a connection. Either Token or Login and Password
// authenticate it.
type Options struct {
	Hostname string
	Root     string
	Login    string
	Password string
	Token    string

	Proxy         string
	ProxyLogin    string
	ProxyPassword string

	CertPath string
	KeyPath  string

	Timeout time.Duration
	// RateLimit caps transfer speed in bytes per second, shared by all
	// transfers of the client. Zero disables it.
	RateLimit int64
	Workers   int
}

type Client struct {
	baseURL    *url.URL
	dav        *gowebdav.Client
	auth       *credentials
	httpClient *http.Client
	opts       Options
	limiter    *rate.Limiter
}

func NewClient(opts Options) (*Client, error) {
	if opts.Hostname == "" {
		return nil, fmt.Errorf("webdav: empty hostname")
	}
	base, err := url.Parse(opts.Hostname)
	if err != nil {
		return nil, fmt.Errorf("webdav: invalid hostname %q: %w", opts.Hostname, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("webdav: hostname %q must be an absolute url", opts.Hostname)
	}
	base.Path = path.Join("/", base.Path, opts.Root)
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	tr, err := newTransport(opts)
	if err != nil {
		return nil, err
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	auth := newCredentials(opts)
	dav := gowebdav.NewAuthClient(base.String(), gowebdav.NewPreemptiveAuth(auth))
	dav.SetTransport(tr)
	dav.SetTimeout(opts.Timeout)

	c := &Client{
		baseURL:    base,
		dav:        dav,
		auth:       auth,
		httpClient: &http.Client{Transport: tr, Timeout: opts.Timeout},
		opts:       opts,
	}
	if opts.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst(opts.RateLimit))
	}
	return c, nil
}

func burst(limit int64) int {
	const maxBurst = 1 << 20
	if limit > maxBurst {
		return maxBurst
	}
	return int(limit)
}

// Connect checks that the root collection is reachable with the configured
// credentials.
func (c *Client) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.dav.Connect(); err != nil {
		return fmt.Errorf("%w: %v", ErrNotConnected, err)
	}
	return nil
}

func (c *Client) url(remote string) string {
	u := *c.baseURL
	u.Path = path.Join(u.Path, remote)
	if strings.HasSuffix(remote, "/") && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// doRequest sends a raw request for the operations gowebdav does not cover.
// length < 0 leaves the content length to net/http.
func (c *Client) doRequest(ctx context.Context, method Method, remote string, body io.Reader, length int64, header map[string]string) (*http.Response, error) {
	target := c.url(remote)
	req, err := http.NewRequestWithContext(ctx, string(method), target, body)
	if err != nil {
		return nil, err
	}
	c.auth.apply(req)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	if length >= 0 && body != nil {
		req.ContentLength = length
		if length == 0 {
			req.Body = http.NoBody
		}
	}
	logger := log.FromContext(ctx).WithPrefix("webdav")
	logger.Debug("request", "method", method, "url", target)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	logger.Debug("response", "method", method, "url", target, "status", resp.Status)
	return resp, nil
}

func (c *Client) wrap(op, remote string, err error) error {
	if err == nil {
		return nil
	}
	if gowebdav.IsErrNotFound(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, remote)
	}
	return fmt.Errorf("%s %s: %w", op, remote, err)
}

// Check reports whether remote exists. An empty path checks the root.
func (c *Client) Check(ctx context.Context, remote string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, err := c.dav.Stat(clean(remote))
	if err == nil {
		return true, nil
	}
	if gowebdav.IsErrNotFound(err) {
		return false, nil
	}
	return false, c.wrap("check", remote, err)
}

func (c *Client) readDir(ctx context.Context, remote string) ([]os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	remote = clean(remote)
	st, err := c.dav.Stat(remote)
	if err != nil {
		return nil, c.wrap("list", remote, err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, remote)
	}
	entries, err := c.dav.ReadDir(remote)
	if err != nil {
		return nil, c.wrap("list", remote, err)
	}
	return entries, nil
}

// List returns the entry names of a collection in server order, with a
// trailing slash on sub-collections.
func (c *Client) List(ctx context.Context, remote string) ([]string, error) {
	entries, err := c.readDir(ctx, remote)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	return names, nil
}

// Clean removes remote recursively.
func (c *Client) Clean(ctx context.Context, remote string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.wrap("clean", remote, c.dav.RemoveAll(clean(remote)))
}

// Mkdir creates one collection; the parent must exist.
func (c *Client) Mkdir(ctx context.Context, remote string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.wrap("mkdir", remote, c.dav.Mkdir(clean(remote), 0o755))
}

// Copy copies from to to, replacing to when it exists.
func (c *Client) Copy(ctx context.Context, from, to string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.wrap("copy", from, c.dav.Copy(clean(from), clean(to), true))
}

// Move moves from to to, replacing to when it exists.
func (c *Client) Move(ctx context.Context, from, to string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.wrap("move", from, c.dav.Rename(clean(from), clean(to), true))
}

// IsDir reports whether remote is an existing collection.
func (c *Client) IsDir(ctx context.Context, remote string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	st, err := c.dav.Stat(clean(remote))
	if err != nil {
		return false, c.wrap("stat", remote, err)
	}
	return st.IsDir(), nil
}

func clean(remote string) string {
	return path.Join("/", remote)
}
