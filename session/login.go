package session

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/davtools/wdc/config"
)

// Verifier checks that settings describe a reachable server.
type Verifier func(ctx context.Context, s *config.Settings) error

// Login asks for whatever connection details s is missing, then verifies
// them. A token makes login and password optional.
func Login(ctx context.Context, s *config.Settings, p *Prompter, verify Verifier) error {
	logger := log.FromContext(ctx).WithPrefix("login")

	ask := func(dst *string, prompt string, secret bool) error {
		if *dst != "" {
			return nil
		}
		var (
			v   string
			err error
		)
		if secret {
			v, err = p.ReadPassword(prompt)
		} else {
			v, err = p.ReadLine(prompt)
		}
		if err != nil {
			return fmt.Errorf("failed to read %q: %w", prompt, err)
		}
		*dst = v
		return nil
	}

	if err := ask(&s.WebDAV.Hostname, "Hostname: ", false); err != nil {
		return err
	}
	if s.WebDAV.Token == "" {
		if err := ask(&s.WebDAV.Login, "Login: ", false); err != nil {
			return err
		}
		if err := ask(&s.WebDAV.Password, "Password: ", true); err != nil {
			return err
		}
	}
	if s.Proxy.Hostname != "" {
		if err := ask(&s.Proxy.Login, "Proxy login: ", false); err != nil {
			return err
		}
		if s.Proxy.Login != "" {
			if err := ask(&s.Proxy.Password, "Proxy password: ", true); err != nil {
				return err
			}
		}
	}

	if err := s.Validate(); err != nil {
		return err
	}
	logger.Debug("verifying connection", "hostname", s.WebDAV.Hostname, "root", s.WebDAV.Root)
	if verify == nil {
		return nil
	}
	return verify(ctx, s)
}
