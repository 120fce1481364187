package netutil

import (
	"context"
	"fmt"
	"net"
	"net/url"

	"golang.org/x/net/proxy"
)

// ProxyURL parses a proxy address and attaches the credentials, if any.
func ProxyURL(rawURL, login, password string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("proxy %q must look like scheme://host:port", rawURL)
	}
	if login != "" {
		u.User = url.UserPassword(login, password)
	}
	return u, nil
}

// NewProxyDialer returns a dial function that connects through a socks5
// proxy.
func NewProxyDialer(u *url.URL) (func(ctx context.Context, network, addr string) (net.Conn, error), error) {
	d, err := proxy.FromURL(u, proxy.Direct)
	if err != nil {
		return nil, err
	}
	if cd, ok := d.(proxy.ContextDialer); ok {
		return cd.DialContext, nil
	}
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return d.Dial(network, addr)
	}, nil
}
