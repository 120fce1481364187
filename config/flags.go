package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// RegisterFlags adds the connection flags shared by every command.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP("root", "r", "", "root directory of the webdav server")
	flags.String("token", "", "OAuth token, used instead of login and password")
	flags.StringP("cert-path", "c", "", "client certificate file")
	flags.StringP("key-path", "k", "", "private key of the client certificate")
	flags.StringP("proxy", "p", "", "proxy server, e.g. http://127.0.0.1:3128 or socks5://127.0.0.1:1080")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("limit-rate", "", "limit transfer speed, e.g. 512KiB or 10MB (per second)")
	flags.Int("workers", 0, "number of parallel transfers for push and pull")
}

// BindFlags makes explicitly set flags take precedence over the environment.
// The token flag is plain text and is applied by the caller after Load.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	v.BindPFlag("webdav.root", flags.Lookup("root"))
	v.BindPFlag("cert_path", flags.Lookup("cert-path"))
	v.BindPFlag("key_path", flags.Lookup("key-path"))
	v.BindPFlag("proxy.hostname", flags.Lookup("proxy"))
	v.BindPFlag("log.level", flags.Lookup("log-level"))
	v.BindPFlag("limit_rate", flags.Lookup("limit-rate"))
	v.BindPFlag("workers", flags.Lookup("workers"))
}
