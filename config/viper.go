package config

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
)

type Settings struct {
	WebDAV   WebDAVConfig `mapstructure:"webdav"`
	Proxy    ProxyConfig  `mapstructure:"proxy"`
	CertPath string       `mapstructure:"cert_path"`
	KeyPath  string       `mapstructure:"key_path"`

	Log       LogConfig `mapstructure:"log"`
	LimitRate string    `mapstructure:"limit_rate"`
	Workers   int       `mapstructure:"workers"`
}

type WebDAVConfig struct {
	Hostname string `mapstructure:"hostname"`
	Root     string `mapstructure:"root"`
	Login    string `mapstructure:"login"`
	Password string `mapstructure:"password"`
	Token    string `mapstructure:"token"`
}

type ProxyConfig struct {
	Hostname string `mapstructure:"hostname"`
	Login    string `mapstructure:"login"`
	Password string `mapstructure:"password"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type binding struct {
	key     string
	env     string
	secret  bool
	session bool // exported into login sessions
	def     any
}

// bindings maps settings keys to the environment variables a login session
// exports. Secrets are stored base64 encoded.
var bindings = []binding{
	{key: "webdav.hostname", env: "WEBDAV_HOSTNAME", session: true, def: ""},
	{key: "webdav.root", env: "WEBDAV_ROOT", session: true, def: ""},
	{key: "webdav.login", env: "WEBDAV_LOGIN", session: true, def: ""},
	{key: "webdav.password", env: "WEBDAV_PASSWORD", session: true, secret: true, def: ""},
	{key: "webdav.token", env: "WEBDAV_TOKEN", session: true, secret: true, def: ""},
	{key: "proxy.hostname", env: "PROXY_HOSTNAME", session: true, def: ""},
	{key: "proxy.login", env: "PROXY_LOGIN", session: true, def: ""},
	{key: "proxy.password", env: "PROXY_PASSWORD", session: true, secret: true, def: ""},
	{key: "cert_path", env: "CERT_PATH", session: true, def: ""},
	{key: "key_path", env: "KEY_PATH", session: true, def: ""},
	{key: "log.level", env: "WDC_LOG_LEVEL", def: "warn"},
	{key: "limit_rate", env: "WDC_LIMIT_RATE", def: ""},
	{key: "workers", env: "WDC_WORKERS", def: 4},
}

// New returns a viper instance with every setting bound to its environment
// variable.
func New() *viper.Viper {
	v := viper.New()
	for _, b := range bindings {
		v.SetDefault(b.key, b.def)
		v.BindEnv(b.key, b.env)
	}
	return v
}

// Load reads the settings from v and decodes the secrets that came from the
// environment.
func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	for _, b := range bindings {
		if !b.secret {
			continue
		}
		raw, ok := os.LookupEnv(b.env)
		if !ok || raw == "" {
			continue
		}
		plain, err := Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadSecret, b.env)
		}
		*s.secret(b.key) = plain
	}
	if s.Workers < 1 {
		s.Workers = 1
	}
	return s, nil
}

func (s *Settings) secret(key string) *string {
	switch key {
	case "webdav.password":
		return &s.WebDAV.Password
	case "webdav.token":
		return &s.WebDAV.Token
	case "proxy.password":
		return &s.Proxy.Password
	}
	panic("config: unknown secret " + key)
}

// Validate reports whether the settings describe a usable connection.
func (s *Settings) Validate() error {
	if s.WebDAV.Hostname == "" {
		return ErrNoHostname
	}
	if s.WebDAV.Token == "" && (s.WebDAV.Login == "" || s.WebDAV.Password == "") {
		return ErrNoCredentials
	}
	if (s.CertPath == "") != (s.KeyPath == "") {
		return ErrCertWithoutKey
	}
	if _, err := s.RateLimit(); err != nil {
		return err
	}
	return nil
}

// RateLimit parses LimitRate ("512KiB", "10MB") into bytes per second.
// Zero means unlimited.
func (s *Settings) RateLimit() (int64, error) {
	if s.LimitRate == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s.LimitRate)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadRate, s.LimitRate)
	}
	return int64(n), nil
}

// Environ renders the connection settings as KEY=value pairs in the layout
// Load expects, secrets encoded. Empty values are omitted.
func (s *Settings) Environ() []string {
	values := map[string]string{
		"WEBDAV_HOSTNAME": s.WebDAV.Hostname,
		"WEBDAV_ROOT":     s.WebDAV.Root,
		"WEBDAV_LOGIN":    s.WebDAV.Login,
		"WEBDAV_PASSWORD": Encode(s.WebDAV.Password),
		"WEBDAV_TOKEN":    Encode(s.WebDAV.Token),
		"PROXY_HOSTNAME":  s.Proxy.Hostname,
		"PROXY_LOGIN":     s.Proxy.Login,
		"PROXY_PASSWORD":  Encode(s.Proxy.Password),
		"CERT_PATH":       s.CertPath,
		"KEY_PATH":        s.KeyPath,
	}
	env := make([]string, 0, len(values))
	for _, b := range bindings {
		if val := values[b.env]; b.session && val != "" {
			env = append(env, b.env+"="+val)
		}
	}
	return env
}

// EnvNames lists the variables Environ may produce.
func EnvNames() []string {
	var names []string
	for _, b := range bindings {
		if b.session {
			names = append(names, b.env)
		}
	}
	return names
}
