package http

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// ClientConfig holds the transport settings for the gateway HTTP client
type ClientConfig struct {
	// Request timeout applied by http.Client (covers dial, TLS, headers and body)
	Timeout time.Duration

	// Connection pooling (the gateway is a single host)
	MaxIdleConnsPerHost int
	MaxConnsPerHost     int
	IdleConnTimeout     time.Duration

	DialTimeout           time.Duration
	TLSHandshakeTimeout   time.Duration
	ResponseHeaderTimeout time.Duration
	KeepAlive             time.Duration

	// Only for pointing the adapter at a local stub gateway
	InsecureSkipVerify bool
}

// GatewayClientConfig returns the settings used for GlobalOne XML payments.
// There is no retry layer above this client, so timeouts are the only cancellation mechanism
// besides the request context.
func GatewayClientConfig(timeout time.Duration) *ClientConfig {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ClientConfig{
		Timeout:               timeout,
		MaxIdleConnsPerHost:   10,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       90 * time.Second,
		DialTimeout:           10 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		KeepAlive:             60 * time.Second,
	}
}

// NewHTTPClient creates an HTTP client with the given configuration
func NewHTTPClient(cfg *ClientConfig) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}

	transport := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		MaxIdleConns:        cfg.MaxIdleConnsPerHost,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		MaxConnsPerHost:     cfg.MaxConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,

		TLSHandshakeTimeout:   cfg.TLSHandshakeTimeout,
		ResponseHeaderTimeout: cfg.ResponseHeaderTimeout,

		// XML bodies are small
		DisableCompression: true,

		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify,
			MinVersion:         tls.VersionTLS12,
		},
		ForceAttemptHTTP2: true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}
}
