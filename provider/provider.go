// Package provider manages the built-in platform resolvers.
package provider

import (
	"net/url"
	"strings"

	"github.com/samber/lo"
	"github.com/tubemux/tubemux/provider/youtube"
	"github.com/tubemux/tubemux/source"
)

// Provider represents a platform resolver.
type Provider struct {
	ID           string
	Name         string
	Hosts        []string
	CreateSource func() (source.Source, error)
}

func (p *Provider) String() string {
	return p.Name
}

// Builtins returns built-in providers.
func Builtins() []*Provider {
	return []*Provider{
		{
			ID:    youtube.ID,
			Name:  youtube.Name,
			Hosts: youtube.Hosts,
			CreateSource: func() (source.Source, error) {
				return youtube.New(), nil
			},
		},
	}
}

// Default returns the provider used when a URL matches no known host.
func Default() *Provider {
	return Builtins()[0]
}

// Get finds a provider by ID or name.
func Get(name string) (*Provider, bool) {
	return lo.Find(Builtins(), func(p *Provider) bool {
		return p.ID == name || strings.EqualFold(p.Name, name)
	})
}

// ForURL picks the provider serving the host of rawURL.
// Bare identifiers and unknown hosts fall back to Default.
func ForURL(rawURL string) *Provider {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return Default()
	}

	host := strings.ToLower(u.Hostname())
	for _, p := range Builtins() {
		if lo.Contains(p.Hosts, host) {
			return p
		}
	}

	return Default()
}
