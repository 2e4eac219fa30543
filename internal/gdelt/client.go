package gdelt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default API endpoints.
const (
	DefaultDocURL = "https://api.gdeltproject.org/api/v2/doc/doc"
	DefaultGeoURL = "https://api.gdeltproject.org/api/v2/geo/geo"
)

const (
	defaultUserAgent = "gdeltctl/dev"
	defaultTimeout   = 30 * time.Second
	maxBodyBytes     = 32 << 20
	snippetLen       = 200
)

// Options configures a Client. Zero fields fall back to defaults.
type Options struct {
	DocURL     string
	GeoURL     string
	UserAgent  string
	HTTPClient *http.Client
	Logger     *slog.Logger
	Tracer     trace.Tracer
}

// Client issues single GET requests against the DOC and GEO APIs.
type Client struct {
	docURL    string
	geoURL    string
	userAgent string
	http      *http.Client
	logger    *slog.Logger
	tracer    trace.Tracer
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	c := &Client{
		docURL:    opts.DocURL,
		geoURL:    opts.GeoURL,
		userAgent: opts.UserAgent,
		http:      opts.HTTPClient,
		logger:    opts.Logger,
		tracer:    opts.Tracer,
	}
	if c.docURL == "" {
		c.docURL = DefaultDocURL
	}
	if c.geoURL == "" {
		c.geoURL = DefaultGeoURL
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: defaultTimeout}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer("github.com/chris-regnier/gdeltctl/internal/gdelt")
	}
	return c
}

// FetchDocuments queries the DOC 2.0 API. The output format is always JSON,
// whatever the caller asked for. The body is returned undecoded because its
// shape depends on q.Mode.
func (c *Client) FetchDocuments(ctx context.Context, q DocQuery) (json.RawMessage, error) {
	params := q.Params()
	params["format"] = DocFormat
	return c.fetch(ctx, EndpointDoc, c.docURL, q.Mode, params)
}

// FetchGeo queries the GEO 2.0 API with the case-sensitive GeoJSON format.
func (c *Client) FetchGeo(ctx context.Context, q GeoQuery) (json.RawMessage, error) {
	params := q.Params()
	params["format"] = GeoFormat
	return c.fetch(ctx, EndpointGeo, c.geoURL, q.Mode, params)
}

func (c *Client) fetch(ctx context.Context, endpoint Endpoint, base string, mode Mode, params Params) (json.RawMessage, error) {
	ctx, span := c.tracer.Start(ctx, "gdelt.fetch", trace.WithAttributes(
		attribute.String("gdelt.endpoint", string(endpoint)),
		attribute.String("gdelt.mode", string(mode)),
	))
	defer span.End()

	body, err := c.get(ctx, endpoint, base+"?"+EncodeQuery(params), span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if !json.Valid(body) {
		err := &DecodeError{Mode: mode, Err: fmt.Errorf("response is not JSON: %q", snippet(body))}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return json.RawMessage(body), nil
}

func (c *Client) get(ctx context.Context, endpoint Endpoint, rawURL string, span trace.Span) ([]byte, error) {
	if endpoint == EndpointGeo {
		c.logger.Debug("gdelt geo fetch", "url", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if endpoint == EndpointGeo {
		c.logger.Debug("gdelt geo response",
			"status", resp.StatusCode,
			"content_type", resp.Header.Get("Content-Type"))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteAPIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > snippetLen {
		return s[:snippetLen] + "..."
	}
	return s
}

// IsRemote reports whether err came from the remote side of a fetch, as
// opposed to local validation.
func IsRemote(err error) bool {
	var apiErr *RemoteAPIError
	var transportErr *TransportError
	var decodeErr *DecodeError
	return errors.As(err, &apiErr) || errors.As(err, &transportErr) || errors.As(err, &decodeErr)
}
