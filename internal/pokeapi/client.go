// Package pokeapi is the HTTP client for the upstream Pokédex service.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ixcomercio/recognitions/internal/apperr"
	"github.com/ixcomercio/recognitions/internal/metrics"
)

const (
	// clientTimeout is the total request timeout.
	clientTimeout = 30 * time.Second
	// dialTimeout is the connection timeout.
	dialTimeout = 10 * time.Second
	// responseHeaderTimeout is time to wait for response headers.
	responseHeaderTimeout = 15 * time.Second
)

// forwardedHeaders are copied from the inbound request to the upstream call.
var forwardedHeaders = []string{
	"x-country",
	"x-customerid",
	"x-commerce",
	"x-channel",
	"x-usrtx",
	"x-api-version",
}

// Client calls the upstream Pokédex service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    metrics.Recorder
}

// NewClient creates a Pokédex client with tuned timeouts.
// recorder may be nil.
func NewClient(baseURL string, recorder metrics.Recorder) *Client {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		metrics: recorder,
		httpClient: &http.Client{
			Timeout: clientTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   dialTimeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				ResponseHeaderTimeout: responseHeaderTimeout,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       90 * time.Second,
			},
		},
	}
}

// Kanto fetches the Kanto pokédex, forwarding the caller identity headers.
// The decoded JSON body is returned as-is for the handler to envelope.
func (c *Client) Kanto(ctx context.Context, inbound http.Header) (json.RawMessage, error) {
	return c.get(ctx, "/pokedex/kanto", inbound)
}

// Pokemon fetches a single pokémon by name.
func (c *Client) Pokemon(ctx context.Context, name string, inbound http.Header) (json.RawMessage, error) {
	return c.get(ctx, "/pokemon/"+name, inbound)
}

func (c *Client) get(ctx context.Context, path string, inbound http.Header) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, apperr.Upstream("failed to build upstream request", "ERR_REQUEST", "pokeapi", "get", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for _, name := range forwardedHeaders {
		if v := inbound.Get(name); v != "" {
			req.Header.Set(name, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.IncUpstreamCall("failed")
		return nil, apperr.Upstream(
			fmt.Sprintf("upstream call to %s failed", path),
			transportCode(err), "pokeapi", "get", err,
		)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.IncUpstreamCall("failed")
		return nil, apperr.Upstream("failed to read upstream response", "ERR_READ", "pokeapi", "get", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.IncUpstreamCall("failed")
		return nil, apperr.Upstream(
			fmt.Sprintf("upstream call to %s returned status %d", path, resp.StatusCode),
			http.StatusText(resp.StatusCode), "pokeapi", "get", nil,
		)
	}

	c.metrics.IncUpstreamCall("success")
	return json.RawMessage(body), nil
}

// transportCode classifies a transport error into a short code.
func transportCode(err error) string {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "ETIMEDOUT"
	}
	return "ECONNREFUSED"
}
