package webdav

import "errors"

var (
	ErrNotConnected     = errors.New("webdav: failed to connect to server")
	ErrNotFound         = errors.New("webdav: resource not found")
	ErrNotDirectory     = errors.New("webdav: not a directory")
	ErrQuotaUnavailable = errors.New("webdav: server does not report free space")
	ErrNotPublished     = errors.New("webdav: server returned no public link")
)
