package webdav

import (
	"net/http"

	"github.com/studio-b12/gowebdav"
)

// credentials authorizes every request up front. gowebdav's auto
// negotiation sends the first request of a client twice, which replays
// non-idempotent methods such as MOVE.
type credentials struct {
	login    string
	password string
	token    string
}

var _ gowebdav.Authenticator = (*credentials)(nil)

func newCredentials(opts Options) *credentials {
	return &credentials{login: opts.Login, password: opts.Password, token: opts.Token}
}

func (a *credentials) apply(req *http.Request) {
	switch {
	case a.token != "":
		req.Header.Set("Authorization", "OAuth "+a.token)
	case a.login != "" && a.password != "":
		req.SetBasicAuth(a.login, a.password)
	}
}

func (a *credentials) Authorize(_ *http.Client, req *http.Request, _ string) error {
	a.apply(req)
	return nil
}

func (a *credentials) Verify(_ *http.Client, resp *http.Response, p string) (bool, error) {
	if resp.StatusCode == http.StatusUnauthorized {
		return false, gowebdav.NewPathError("Authorize", p, resp.StatusCode)
	}
	return false, nil
}

func (a *credentials) Clone() gowebdav.Authenticator {
	return a
}

func (a *credentials) Close() error {
	return nil
}
