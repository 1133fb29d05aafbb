package sonarr

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// request describes one API call. Endpoint is the path template relative to
// the API root and doubles as the name used in errors and logs.
type request struct {
	method   string
	endpoint string
	query    map[string]string
	path     map[string]string
	body     any
}

// do performs a single HTTP exchange and decodes a 2xx body into out when out
// is non-nil. Query and path values go through resty's encoders; nothing is
// concatenated into the URL by hand.
func (c *Client) do(ctx context.Context, r request, out any) error {
	req := c.http.R().SetContext(ctx)
	if len(r.query) > 0 {
		req.SetQueryParams(r.query)
	}
	if len(r.path) > 0 {
		req.SetPathParams(r.path)
	}
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request body: %w", r.endpoint, err)
		}
		req.SetHeader("Content-Type", "application/json").SetBody(payload)
	}

	start := time.Now()
	resp, err := req.Execute(r.method, r.endpoint)
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("method", r.method).
			Str("endpoint", r.endpoint).
			Dur("duration", time.Since(start)).
			Msg("Sonarr request failed")
		return &TransportError{Method: r.method, Endpoint: r.endpoint, Err: err}
	}

	c.logger.Debug().
		Str("method", r.method).
		Str("endpoint", r.endpoint).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("Sonarr request completed")

	if !resp.IsSuccess() {
		return newStatusError(r.method, r.endpoint, resp.StatusCode(), resp.Body())
	}

	if out == nil {
		return nil
	}
	return decode(r.endpoint, resp, out)
}

func decode(endpoint string, resp *resty.Response, out any) error {
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	return nil
}
