// Package ekap is a client for the internal REST API of the EKAP v2 public
// procurement portal. It builds the Turkish request bodies the API expects and
// normalizes its nested responses into a flat, English-keyed schema.
package ekap

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the EKAP v2 origin.
	DefaultBaseURL = "https://ekapv2.kik.gov.tr"
	// LegacyTLSHost is the only host the relaxed TLS policy is ever applied to.
	LegacyTLSHost = "ekapv2.kik.gov.tr"

	DefaultTimeout       = 30 * time.Second
	DefaultPreviewLength = 200
)

// Upstream endpoints.
const (
	EndpointTenderSearch  = "/b_ihalearama/api/Ihale/GetListByParameters"
	EndpointOKASCodes     = "/b_ihalearama/api/IhtiyacKalemleri/GetAll"
	EndpointAuthorities   = "/b_idare/api/DetsisKurumBirim/DetsisAgaci"
	EndpointAnnouncements = "/b_ihalearama/api/Ilan/GetList"
	EndpointTenderDetail  = "/b_ihalearama/api/IhaleDetay/GetByIhaleIdIhaleDetay"
)

const (
	maxConnsPerHost     = 10
	maxIdleConnsPerHost = 5
	maxErrorBodyBytes   = 64 << 10
)

// The API is meant for the portal's own frontend and rejects requests that
// do not look like they come from a browser on the portal.
var defaultHeaders = map[string]string{
	"Accept":             "application/json",
	"Accept-Language":    "null",
	"Connection":         "keep-alive",
	"Content-Type":       "application/json",
	"Origin":             DefaultBaseURL,
	"Referer":            DefaultBaseURL + "/ekap/search",
	"User-Agent":         "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/138.0.0.0 Safari/537.36",
	"api-version":        "v1",
	"sec-ch-ua":          `"Not)A;Brand";v="8", "Chromium";v="138", "Google Chrome";v="138"`,
	"sec-ch-ua-mobile":   "?0",
	"sec-ch-ua-platform": `"macOS"`,
}

// Client talks to the EKAP API. It holds configuration only; every call
// builds and tears down its own transport.
type Client struct {
	baseURL           string
	timeout           time.Duration
	insecureLegacyTLS bool
	logger            *slog.Logger
	metrics           *Metrics
	html              *HTMLRenderer
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another origin, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithInsecureLegacyTLS toggles the relaxed TLS policy needed by the EKAP
// host: legacy cipher suites, TLS 1.0, no certificate or hostname checks.
// It never applies to any other host.
func WithInsecureLegacyTLS(enabled bool) Option {
	return func(c *Client) {
		c.insecureLegacyTLS = enabled
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// WithPreviewLength sets the length of announcement text previews.
func WithPreviewLength(length int) Option {
	return func(c *Client) {
		if length > 0 {
			c.html.PreviewLength = length
		}
	}
}

// NewClient creates a client for the public EKAP portal.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:           DefaultBaseURL,
		timeout:           DefaultTimeout,
		insecureLegacyTLS: true,
		logger:            slog.Default(),
		html:              NewHTMLRenderer(nil, DefaultPreviewLength),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.html.Logger = c.logger
	return c
}

// BaseURL returns the origin the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// legacyTLSConfig accepts every cipher suite Go knows, including the
// insecure ones, and skips certificate verification.
func legacyTLSConfig() *tls.Config {
	var suites []uint16
	for _, suite := range tls.CipherSuites() {
		suites = append(suites, suite.ID)
	}
	for _, suite := range tls.InsecureCipherSuites() {
		suites = append(suites, suite.ID)
	}
	return &tls.Config{
		MinVersion:         tls.VersionTLS10,
		CipherSuites:       suites,
		InsecureSkipVerify: true, //nolint:gosec // the EKAP host serves an outdated certificate chain
	}
}

// usesLegacyTLS reports whether the relaxed policy applies to rawURL.
func (c *Client) usesLegacyTLS(rawURL string) bool {
	if !c.insecureLegacyTLS {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Hostname() == LegacyTLSHost
}

func (c *Client) newTransport(rawURL string) *http.Transport {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxConnsPerHost:     maxConnsPerHost,
		MaxIdleConns:        maxIdleConnsPerHost,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
		IdleConnTimeout:     c.timeout,
		TLSHandshakeTimeout: 10 * time.Second,
		ForceAttemptHTTP2:   false,
		// A non-nil empty map disables HTTP/2.
		TLSNextProto: map[string]func(string, *tls.Conn) http.RoundTripper{},
	}
	if c.usesLegacyTLS(rawURL) {
		transport.TLSClientConfig = legacyTLSConfig()
	}
	return transport
}

// Post sends body as JSON to endpoint and decodes the answer into out.
// Numbers in the answer decode as json.Number so ids keep their exact form.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &RequestError{Endpoint: endpoint, Err: fmt.Errorf("failed to encode request body: %w", err)}
	}

	reqURL := c.baseURL + endpoint
	c.logger.Info("Starting EKAP API request",
		slog.String("url", reqURL),
		slog.Int("bodyBytes", len(payload)))
	c.logger.Debug("EKAP request body", slog.String("body", string(payload)))

	transport := c.newTransport(reqURL)
	defer transport.CloseIdleConnections()
	httpClient := &http.Client{Timeout: c.timeout, Transport: transport}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		c.logger.Error("Failed to create HTTP request", slog.Any("error", err))
		return &RequestError{Endpoint: endpoint, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.metrics.observe(endpoint, 0, duration)
		c.logger.Error("HTTP request failed",
			slog.String("url", reqURL),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return &RequestError{Endpoint: endpoint, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("Failed to close response body", slog.Any("error", err))
		}
	}()

	c.metrics.observe(endpoint, resp.StatusCode, duration)
	c.logger.Info("HTTP request completed",
		slog.String("url", reqURL),
		slog.Duration("duration", duration),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		errBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		if readErr != nil {
			c.logger.Warn("Failed to read error response body", slog.Any("error", readErr))
		}
		c.logger.Warn("EKAP API returned non-2xx status",
			slog.Int("status", resp.StatusCode),
			slog.String("url", reqURL))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(errBody)), URL: reqURL}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		c.logger.Error("Failed to decode JSON response", slog.Any("error", err))
		return &RequestError{Endpoint: endpoint, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// TenderURL is the portal page of a tender.
func TenderURL(id any) string {
	return fmt.Sprintf("%s/ekap/tender/%s", DefaultBaseURL, scalarString(id))
}
