package webdav

import (
	"crypto/tls"
	"fmt"
	"net/http"

	"github.com/davtools/wdc/common/utils/netutil"
)

func newTransport(opts Options) (*http.Transport, error) {
	tr := http.DefaultTransport.(*http.Transport).Clone()

	if opts.CertPath != "" || opts.KeyPath != "" {
		cert, err := tls.LoadX509KeyPair(opts.CertPath, opts.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate: %w", err)
		}
		tr.TLSClientConfig = &tls.Config{Certificates: []tls.Certificate{cert}}
	}

	if opts.Proxy == "" {
		return tr, nil
	}
	proxyURL, err := netutil.ProxyURL(opts.Proxy, opts.ProxyLogin, opts.ProxyPassword)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy: %w", err)
	}
	switch proxyURL.Scheme {
	case "http", "https":
		tr.Proxy = http.ProxyURL(proxyURL)
	case "socks5", "socks5h":
		dial, err := netutil.NewProxyDialer(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy: %w", err)
		}
		tr.Proxy = nil
		tr.DialContext = dial
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", proxyURL.Scheme)
	}
	return tr, nil
}
