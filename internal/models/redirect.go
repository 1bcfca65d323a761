package models

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrUntrustedRedirect = errors.New("untrusted redirect destination")

// RedirectURI is a destination that passed a RedirectPolicy check. String
// returns the trimmed text the backend sent, not a re-encoding of it.
type RedirectURI struct {
	raw string
	u   *url.URL
}

func (r RedirectURI) String() string { return r.raw }

// Host is empty for same-origin paths.
func (r RedirectURI) Host() string {
	if r.u == nil {
		return ""
	}
	return r.u.Hostname()
}

func (r RedirectURI) IsZero() bool { return r.u == nil }

// RedirectPolicy is the allow-list applied to backend-provided destinations.
// An entry is either an exact host name or "*.example.com", which matches
// subdomains of example.com but not example.com itself.
type RedirectPolicy struct {
	hosts []string
}

func NewRedirectPolicy(hosts []string) RedirectPolicy {
	p := RedirectPolicy{}
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			p.hosts = append(p.hosts, h)
		}
	}
	return p
}

// Parse validates raw as a destination. Surrounding whitespace is dropped;
// absolute http(s) URLs must name an allowed host and relative targets
// must be rooted paths on this origin.
func (p RedirectPolicy) Parse(raw string) (RedirectURI, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return RedirectURI{}, fmt.Errorf("%w: empty destination", ErrUntrustedRedirect)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return RedirectURI{}, fmt.Errorf("%w: %v", ErrUntrustedRedirect, err)
	}

	if !u.IsAbs() {
		if u.Host != "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
			return RedirectURI{}, fmt.Errorf("%w: %q", ErrUntrustedRedirect, raw)
		}
		return RedirectURI{raw: raw, u: u}, nil
	}

	if u.Scheme != "https" && u.Scheme != "http" {
		return RedirectURI{}, fmt.Errorf("%w: scheme %q", ErrUntrustedRedirect, u.Scheme)
	}
	if u.User != nil {
		return RedirectURI{}, fmt.Errorf("%w: userinfo not allowed", ErrUntrustedRedirect)
	}
	if !p.allows(u.Hostname()) {
		return RedirectURI{}, fmt.Errorf("%w: host %q", ErrUntrustedRedirect, u.Hostname())
	}
	return RedirectURI{raw: raw, u: u}, nil
}

func (p RedirectPolicy) allows(host string) bool {
	host = strings.ToLower(host)
	if host == "" {
		return false
	}
	for _, h := range p.hosts {
		if suffix, ok := strings.CutPrefix(h, "*."); ok {
			if strings.HasSuffix(host, "."+suffix) {
				return true
			}
			continue
		}
		if host == h {
			return true
		}
	}
	return false
}
