package config

import (
	"fmt"
	"net/url"

	"github.com/spf13/pflag"
)

type ServerConfig struct {
	// URL is the admin server URL.
	URL string `json:"url" yaml:"url"`
}

type Config struct {
	Server ServerConfig `json:"server" yaml:"server"`
}

func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("missing server url")
	}
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid server url: unsupported scheme: %s", u.Scheme)
	}
	return nil
}

func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(
		&c.Server.URL,
		"server.url",
		"http://localhost:8001",
		`
Simulator admin URL. This URL should point to the address configured with
'--admin.bind-addr' when running 'ringcast simulate'.`,
	)
}
