package globalone

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	pkgerrors "github.com/kevin07696/globalonepay/pkg/errors"
)

const (
	// DefaultURL is the GlobalOne test endpoint
	DefaultURL = "https://testpayments.globalone.me/merchant/xmlpayment"

	// DefaultPort is the HTTPS port
	DefaultPort = 443

	// ServiceProviderName tags every result record produced by this adapter
	ServiceProviderName = "globalOnePay"
)

// Credentials identify the merchant terminal and sign every request
type Credentials struct {
	TerminalID    string // Gateway-assigned terminal identifier
	SharedSecret  string // Only ever used as the last hash input, never sent
	MerchantCode  string // Optional
	MultiCurrency bool   // Terminal is multi-currency: currency joins the payment hash
}

// String keeps the shared secret out of logs and fmt output
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{TerminalID:%s MerchantCode:%s MultiCurrency:%t SharedSecret:[REDACTED]}",
		c.TerminalID, c.MerchantCode, c.MultiCurrency)
}

// Config contains configuration for the GlobalOne adapter
type Config struct {
	Credentials

	// XML payment endpoint
	// Test: https://testpayments.globalone.me/merchant/xmlpayment
	URL string

	// Port for the endpoint, applied when URL does not carry one (default 443)
	Port int

	// HTTP client timeout used by NewAdapterWithDefaults (default 30s)
	Timeout time.Duration
}

// withDefaults returns a copy with URL and Port filled in
func (c Config) withDefaults() Config {
	if c.URL == "" {
		c.URL = DefaultURL
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	return c
}

// Validate checks the required credentials
func (c Config) Validate() error {
	if c.TerminalID == "" {
		return pkgerrors.NewValidationError("terminalId", "is required")
	}
	if c.SharedSecret == "" {
		return pkgerrors.NewValidationError("sharedSecret", "is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return pkgerrors.NewValidationError("port", fmt.Sprintf("out of range: %d", c.Port))
	}
	return nil
}

// endpoint resolves the URL requests are posted to.
// An explicit port in the URL wins; otherwise Port is added unless it is the scheme default.
func (c Config) endpoint() (string, error) {
	u, err := url.Parse(c.URL)
	if err != nil {
		return "", pkgerrors.NewValidationError("url", err.Error())
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return "", pkgerrors.NewValidationError("url", fmt.Sprintf("unsupported scheme %q", u.Scheme))
	}
	if u.Host == "" {
		return "", pkgerrors.NewValidationError("url", "host is required")
	}

	if u.Port() == "" && c.Port != schemeDefaultPort(u.Scheme) {
		u.Host = net.JoinHostPort(u.Hostname(), strconv.Itoa(c.Port))
	}
	return u.String(), nil
}

func schemeDefaultPort(scheme string) int {
	if scheme == "http" {
		return 80
	}
	return 443
}
