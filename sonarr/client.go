package sonarr

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/net/http/httpguts"
)

const (
	// apiRoot is the versioned path every request is resolved against
	apiRoot = "/api/v3/"
	// apiKeyHeader carries the API key on every request
	apiKeyHeader = "X-Api-Key"
	redacted     = "[REDACTED]"
)

// Client is a Sonarr v3 API client. It is immutable after construction and
// safe for concurrent use.
type Client struct {
	baseURL *url.URL
	http    *resty.Client
	logger  zerolog.Logger
}

// NewClient creates a new Sonarr client. No request is made.
//
// The path of baseURL is replaced by /api/v3/. The API key is attached to
// every request and never rendered in logs or errors.
func NewClient(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	u, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	if err := validateAPIKey(apiKey); err != nil {
		return nil, err
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	logger = logger.With().Str("component", "sonarr").Logger()

	return &Client{
		baseURL: u,
		http:    newTransport(u, apiKey, logger, options),
		logger:  logger,
	}, nil
}

// parseBaseURL parses raw and pins its path to the API root
func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https, got %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	u.Path = apiRoot
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	u.User = nil
	return u, nil
}

// validateAPIKey rejects keys that cannot travel unchanged as an HTTP header
// value, including tabs which transports trim. The key itself is never part
// of the error.
func validateAPIKey(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("%w: API key is required", ErrInvalidCredential)
	}
	if strings.ContainsFunc(apiKey, unicode.IsControl) || !httpguts.ValidHeaderFieldValue(apiKey) {
		return fmt.Errorf("%w: API key contains characters not allowed in a header value", ErrInvalidCredential)
	}
	return nil
}

// newTransport builds the resty client shared by every request. The API key
// header is set here and only here, together with the hook that redacts it
// from debug dumps.
func newTransport(u *url.URL, apiKey string, logger zerolog.Logger, options clientOptions) *resty.Client {
	var rc *resty.Client
	if options.httpClient != nil {
		hc := *options.httpClient
		rc = resty.NewWithClient(&hc)
	} else {
		rc = resty.New()
	}

	rc.SetBaseURL(u.String()).
		SetTimeout(options.timeout).
		SetLogger(restyLogger{logger: logger}).
		SetDebug(options.debug).
		SetHeader(apiKeyHeader, apiKey).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", options.userAgent).
		OnRequestLog(func(rl *resty.RequestLog) error {
			if rl.Header.Get(apiKeyHeader) != "" {
				rl.Header.Set(apiKeyHeader, redacted)
			}
			return nil
		})

	return rc
}

// BaseURL returns the API root requests are resolved against
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// String renders the client without its credentials
func (c *Client) String() string {
	return fmt.Sprintf("sonarr.Client{baseURL: %s}", c.baseURL)
}

// GoString keeps %#v from dumping the transport and its headers
func (c *Client) GoString() string {
	return c.String()
}

// restyLogger adapts zerolog to resty's Logger interface
type restyLogger struct {
	logger zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Error().Msgf(format, v...)
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn().Msgf(format, v...)
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug().Msgf(format, v...)
}
