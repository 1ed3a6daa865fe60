package client

import (
	"net/http"
	"strings"
)

// DefaultBaseURL is the service address used when none is configured.
const DefaultBaseURL = "http://localhost:8000"

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL points the client at another service instance. The /search path is fixed.
func WithBaseURL(u string) Option {
	return optionFunc(func(c *clientConfig) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	})
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		if hc != nil {
			c.httpClient = hc
		}
	})
}
