package platform

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	HTTP   *resty.Client
	Config ClientConfig
}

type ClientConfig struct {
	BaseURL string
	Token   string // Supervisor token or long-lived access token
	Timeout time.Duration
}

func New(cfg ClientConfig) *Client {
	r := resty.New()
	r.SetBaseURL(cfg.BaseURL)

	r.SetHeader("Content-Type", "application/json")
	r.SetHeader("Accept", "application/json")

	if cfg.Token != "" {
		r.SetAuthToken(cfg.Token)
	}

	if cfg.Timeout > 0 {
		r.SetTimeout(cfg.Timeout)
	}

	// Local platform instances commonly run with self-signed certs
	r.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})

	return &Client{
		HTTP:   r,
		Config: cfg,
	}
}

// Ping checks that the platform API is reachable and the token is accepted.
func (c *Client) Ping() error {
	resp, err := c.HTTP.R().Get("/api/")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("platform API returned %s: %s", resp.Status(), resp.String())
	}
	return nil
}
