// Package source defines the playable server records an item carries.
package source

import (
	"fmt"

	"github.com/samber/mo"
)

// Server is one playable source for an item.
type Server struct {
	Name string
	URL  string
	// License is either a "keyId:key" pair, a license server URL or an auth token.
	License mo.Option[string]
	// DRM is the explicit protection flag. Absent means it is inferred.
	DRM mo.Option[bool]
}

// NewServer returns a server without license or protection flag.
func NewServer(name, url string) Server {
	return Server{
		Name:    name,
		URL:     url,
		License: mo.None[string](),
		DRM:     mo.None[bool](),
	}
}

// WithLicense returns a copy of s carrying license. An empty license is treated as absent.
func (s Server) WithLicense(license string) Server {
	if license == "" {
		s.License = mo.None[string]()
	} else {
		s.License = mo.Some(license)
	}
	return s
}

// WithDRM returns a copy of s with an explicit protection flag.
func (s Server) WithDRM(protected bool) Server {
	s.DRM = mo.Some(protected)
	return s
}

func (s Server) String() string {
	if s.Name != "" {
		return s.Name
	}
	return s.URL
}

// Validate reports servers that cannot be resolved at all.
func (s Server) Validate() error {
	if s.URL == "" {
		return fmt.Errorf("server %q has no url", s.Name)
	}
	return nil
}
