package config

import "errors"

var (
	ErrNoHostname     = errors.New("config: webdav hostname is not set")
	ErrNoCredentials  = errors.New("config: login and password or token is required")
	ErrCertWithoutKey = errors.New("config: cert path and key path must be set together")
	ErrBadSecret      = errors.New("config: secret is not valid base64")
	ErrBadRate        = errors.New("config: invalid rate limit")
)
