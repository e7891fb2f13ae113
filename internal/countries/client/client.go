// Package client fetches country records from the countries REST API.
//
// The soft methods (FetchAll, FetchByCode) never return errors: a failed call is
// logged and yields an empty result, because the suites report on the API
// rather than depend on it. The strict methods (All, ByCode) expose the
// categorized error for callers that need the cause.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"atlasqa/internal/countries/models"
	"atlasqa/internal/platform/logger"
	"atlasqa/internal/platform/metrics"
)

const (
	opFetchAll    = "fetch_all"
	opFetchByCode = "fetch_by_code"

	// maxErrorBody bounds how much of a failed response body is logged.
	maxErrorBody = 512
)

var tracer = otel.Tracer("atlasqa/internal/countries/client")

// Client talks to one countries API base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the transport. The default is a zero http.Client,
// so only the caller's context bounds a request.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for soft-failure reporting.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a client for baseURL (e.g. https://restcountries.com/v3.1).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchAll returns every country with the selected fields, or an empty slice
// if the call fails for any reason.
func (c *Client) FetchAll(ctx context.Context, fields []string) []models.Country {
	countries, err := c.All(ctx, fields)
	if err != nil {
		c.logger.WarnContext(ctx, "countries API call failed",
			"operation", opFetchAll,
			"category", GetCategory(err),
			"error", err,
		)
		return []models.Country{}
	}
	c.logger.InfoContext(ctx, "retrieved countries",
		"count", len(countries),
		"fields", strings.Join(fields, ","),
	)
	return countries
}

// FetchByCode returns the country with the given alpha code. The boolean is
// false when the call failed or the code is unknown.
func (c *Client) FetchByCode(ctx context.Context, code string) (models.Country, bool) {
	country, err := c.ByCode(ctx, code)
	if err != nil {
		c.logger.WarnContext(ctx, "countries API call failed",
			"operation", opFetchByCode,
			"code", code,
			"category", GetCategory(err),
			"error", err,
		)
		return models.Country{}, false
	}
	return *country, true
}

// Health probes the API with a single-code lookup.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.ByCode(ctx, "USA")
	return err
}

// All fetches every country. An empty fields slice omits the selection
// parameter and the API returns full records.
func (c *Client) All(ctx context.Context, fields []string) ([]models.Country, error) {
	ctx, span := tracer.Start(ctx, "countries.fetch_all")
	defer span.End()
	span.SetAttributes(attribute.StringSlice("countries.fields", fields))

	endpoint := c.baseURL + "/all"
	if len(fields) > 0 {
		// commas stay literal; the API splits the raw value
		endpoint += "?fields=" + strings.Join(fields, ",")
	}

	var countries []models.Country
	err := c.get(ctx, opFetchAll, endpoint, &countries)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(GetCategory(err)))
		return nil, err
	}
	if countries == nil {
		countries = []models.Country{}
	}
	span.SetAttributes(attribute.Int("countries.count", len(countries)))
	return countries, nil
}

// ByCode fetches one country. The endpoint answers with an array; the first
// element is returned and an empty array is reported as not found.
func (c *Client) ByCode(ctx context.Context, code string) (*models.Country, error) {
	code = models.NormalizeCode(code)
	ctx, span := tracer.Start(ctx, "countries.fetch_by_code")
	defer span.End()
	span.SetAttributes(attribute.String("countries.code", code))

	if code == "" {
		err := newError(ErrorInternal, opFetchByCode, "empty country code", nil)
		span.SetStatus(codes.Error, string(err.Category))
		return nil, err
	}

	var countries []models.Country
	err := c.get(ctx, opFetchByCode, c.baseURL+"/alpha/"+url.PathEscape(code), &countries)
	if err == nil && len(countries) == 0 {
		err = newError(ErrorNotFound, opFetchByCode, fmt.Sprintf("no record for %s", code), nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(GetCategory(err)))
		return nil, err
	}
	return &countries[0], nil
}

func (c *Client) get(ctx context.Context, op, endpoint string, out any) error {
	start := time.Now()
	err := c.doGet(ctx, op, endpoint, out)

	outcome := "ok"
	if err != nil {
		outcome = string(GetCategory(err))
	}
	c.metrics.ObserveFetch(op, outcome, time.Since(start))
	return err
}

func (c *Client) doGet(ctx context.Context, op, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return newError(ErrorInternal, op, "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return newError(ErrorProviderOutage, op, "read response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		e := newError(statusCategory(resp.StatusCode), op,
			fmt.Sprintf("status %d: %s", resp.StatusCode, truncate(body, maxErrorBody)), nil)
		e.StatusCode = resp.StatusCode
		return e
	}

	if err := json.Unmarshal(body, out); err != nil {
		return newError(ErrorBadData, op, "decode response", err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
