package config

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, b := range bindings {
		t.Setenv(b.env, "")
	}
}

func TestCodec(t *testing.T) {
	for _, plain := range []string{"", "secret", "пароль", "with spaces and = signs"} {
		decoded, err := Decode(Encode(plain))
		if err != nil {
			t.Fatalf("Decode(Encode(%q)): %v", plain, err)
		}
		if decoded != plain {
			t.Fatalf("got %q, want %q", decoded, plain)
		}
	}
	if Encode("secret") != "c2VjcmV0" {
		t.Fatalf("secrets must stay plain base64, got %q", Encode("secret"))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	s, err := Load(New())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Log.Level != "warn" {
		t.Errorf("expected default log level warn, got %q", s.Log.Level)
	}
	if s.Workers != 4 {
		t.Errorf("expected default workers 4, got %d", s.Workers)
	}
	if err := s.Validate(); !errors.Is(err, ErrNoHostname) {
		t.Errorf("expected ErrNoHostname, got %v", err)
	}
}

func TestLoadDecodesSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEBDAV_HOSTNAME", "https://dav.example.com")
	t.Setenv("WEBDAV_ROOT", "/backup")
	t.Setenv("WEBDAV_LOGIN", "alice")
	t.Setenv("WEBDAV_PASSWORD", Encode("s3cret"))
	t.Setenv("WEBDAV_TOKEN", Encode("tok"))
	t.Setenv("PROXY_HOSTNAME", "http://proxy:3128")
	t.Setenv("PROXY_LOGIN", "bob")
	t.Setenv("PROXY_PASSWORD", Encode("hunter2"))
	t.Setenv("CERT_PATH", "/tmp/cert.pem")
	t.Setenv("KEY_PATH", "/tmp/key.pem")

	s, err := Load(New())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := WebDAVConfig{
		Hostname: "https://dav.example.com",
		Root:     "/backup",
		Login:    "alice",
		Password: "s3cret",
		Token:    "tok",
	}
	if s.WebDAV != want {
		t.Fatalf("got %+v, want %+v", s.WebDAV, want)
	}
	if s.Proxy != (ProxyConfig{Hostname: "http://proxy:3128", Login: "bob", Password: "hunter2"}) {
		t.Fatalf("unexpected proxy settings %+v", s.Proxy)
	}
	if s.CertPath != "/tmp/cert.pem" || s.KeyPath != "/tmp/key.pem" {
		t.Fatalf("unexpected cert settings %q %q", s.CertPath, s.KeyPath)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadRejectsBadSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEBDAV_PASSWORD", "not base64!")
	_, err := Load(New())
	if !errors.Is(err, ErrBadSecret) {
		t.Fatalf("expected ErrBadSecret, got %v", err)
	}
	if !strings.Contains(err.Error(), "WEBDAV_PASSWORD") {
		t.Fatalf("error should name the variable: %v", err)
	}
}

func TestEnvironRoundTrip(t *testing.T) {
	clearEnv(t)
	orig := &Settings{
		WebDAV: WebDAVConfig{
			Hostname: "https://dav.example.com",
			Root:     "/r",
			Login:    "alice",
			Password: "p@ss",
		},
		Proxy: ProxyConfig{Hostname: "socks5://127.0.0.1:1080", Login: "bob", Password: "x"},
	}
	env := orig.Environ()
	for _, kv := range env {
		k, v, _ := strings.Cut(kv, "=")
		t.Setenv(k, v)
	}
	for _, kv := range env {
		if strings.HasPrefix(kv, "WEBDAV_PASSWORD=") && strings.Contains(kv, "p@ss") {
			t.Fatalf("password exported in clear text: %s", kv)
		}
		if strings.HasPrefix(kv, "WEBDAV_TOKEN=") {
			t.Fatalf("empty token must be omitted")
		}
	}

	got, err := Load(New())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got.WebDAV, orig.WebDAV) || !reflect.DeepEqual(got.Proxy, orig.Proxy) {
		t.Fatalf("round trip mismatch:\n got %+v %+v\nwant %+v %+v", got.WebDAV, got.Proxy, orig.WebDAV, orig.Proxy)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		s    Settings
		want error
	}{
		{
			name: "login and password",
			s:    Settings{WebDAV: WebDAVConfig{Hostname: "h", Login: "l", Password: "p"}},
		},
		{
			name: "token only",
			s:    Settings{WebDAV: WebDAVConfig{Hostname: "h", Token: "t"}},
		},
		{
			name: "missing hostname",
			s:    Settings{WebDAV: WebDAVConfig{Token: "t"}},
			want: ErrNoHostname,
		},
		{
			name: "login without password",
			s:    Settings{WebDAV: WebDAVConfig{Hostname: "h", Login: "l"}},
			want: ErrNoCredentials,
		},
		{
			name: "cert without key",
			s:    Settings{WebDAV: WebDAVConfig{Hostname: "h", Token: "t"}, CertPath: "c.pem"},
			want: ErrCertWithoutKey,
		},
		{
			name: "bad rate",
			s:    Settings{WebDAV: WebDAVConfig{Hostname: "h", Token: "t"}, LimitRate: "fast"},
			want: ErrBadRate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.want == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"1KiB", 1024},
		{"10MB", 10 * 1000 * 1000},
		{"2048", 2048},
	}
	for _, tt := range tests {
		s := Settings{LimitRate: tt.in}
		got, err := s.RateLimit()
		if err != nil {
			t.Fatalf("RateLimit(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("RateLimit(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEBDAV_ROOT", "/from-env")
	t.Setenv("PROXY_HOSTNAME", "http://env-proxy:3128")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse([]string{"--root", "/from-flag", "--workers", "8"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	v := New()
	BindFlags(v, fs)

	s, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.WebDAV.Root != "/from-flag" {
		t.Errorf("flag should override env, got root %q", s.WebDAV.Root)
	}
	if s.Proxy.Hostname != "http://env-proxy:3128" {
		t.Errorf("unset flag must not hide env, got proxy %q", s.Proxy.Hostname)
	}
	if s.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", s.Workers)
	}
}
