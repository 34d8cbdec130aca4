package explorer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cryptotracker.io/internal/infrastructure/logger"
)

// DefaultBaseURL is the public Blockchair API.
const DefaultBaseURL = "https://api.blockchair.com"

const (
	dashboardsAddress = "/dashboards/address/"
	queryParameters   = "?transaction_details=true"
)

var (
	errTransport    = errors.New("explorer request failed")
	errDecode       = errors.New("explorer response is not valid JSON")
	errMissingField = errors.New("explorer response is missing a field")
)

// RawResponse is a fully read HTTP response.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client talks to the Blockchair dashboards API. Every exported fetch performs
// exactly one GET and never returns an error: failures are logged and collapse
// to nil or an empty slice.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     logger.Logger
}

// NewClient creates a new explorer client. An empty baseURL selects Blockchair;
// a zero timeout leaves requests bounded only by ctx and the transport.
func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log,
	}
}

// DashboardURL builds the address dashboard URL for cryptoType and address.
func (c *Client) DashboardURL(cryptoType, address string) string {
	return c.baseURL + "/" + url.PathEscape(cryptoType) + dashboardsAddress + url.PathEscape(address) + queryParameters
}

// FetchRaw issues a GET against rawURL. It returns nil when the request could not
// be completed; any HTTP status, including non-2xx, is returned as is.
func (c *Client) FetchRaw(ctx context.Context, rawURL string) *RawResponse {
	resp, err := c.get(ctx, rawURL)
	if err != nil {
		c.log(ctx).LogError(ctx, "HTTP request failed", err, "url", rawURL)
		return nil
	}
	return resp
}

// log prefers the request-scoped logger carried by ctx over the client's own.
func (c *Client) log(ctx context.Context) logger.Logger {
	return logger.FromContext(ctx, c.logger)
}

func (c *Client) get(ctx context.Context, rawURL string) (*RawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", errTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", errTransport, err)
	}

	return &RawResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
