package main

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Network is one deployment of the API.
type Network struct {
	URL string `toml:"url"`
}

// Networks is the content of a networks file:
//
//	[networks.local]
//	url = "http://localhost:8080"
type Networks struct {
	Networks map[string]Network `toml:"networks"`
}

// LoadNetworks decodes a networks file.
func LoadNetworks(path string) (*Networks, error) {
	var n Networks
	md, err := toml.DecodeFile(path, &n)
	if err != nil {
		return nil, fmt.Errorf("read networks file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in %s: %v", path, undecoded)
	}
	return &n, nil
}

// Resolve returns the base URL of a network.
func (n *Networks) Resolve(name string) (*url.URL, error) {
	network, ok := n.Networks[name]
	if !ok {
		return nil, fmt.Errorf("unknown network %q (have %s)", name, strings.Join(n.names(), ", "))
	}
	u, err := url.Parse(network.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("network %q: invalid url %q", name, network.URL)
	}
	return u, nil
}

func (n *Networks) names() []string {
	names := make([]string, 0, len(n.Networks))
	for name := range n.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
