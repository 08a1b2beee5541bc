package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Sternrassler/iracing-data-client/pkg/payload"
)

// FetchResource retrieves a data endpoint and returns the fully decoded
// payload. The service answers most endpoints with a short-lived link into
// cache storage rather than inline data, so a fetch may cost one HTTP
// round trip more than the nominal request.
func (c *Client) FetchResource(ctx context.Context, endpoint string, query url.Values) (any, error) {
	return c.fetchURL(ctx, c.baseURL+endpoint, query)
}

// FetchLinked resolves an absolute resource URL the same way FetchResource
// resolves an endpoint. Some payloads carry secondary data_url fields that
// need this.
func (c *Client) FetchLinked(ctx context.Context, rawURL string) (any, error) {
	return c.fetchURL(ctx, rawURL, nil)
}

func (c *Client) fetchURL(ctx context.Context, rawURL string, query url.Values) (any, error) {
	resp, err := c.get(ctx, rawURL, query, true)
	if err != nil {
		return nil, err
	}

	// Only JSON bodies can be link envelopes. The CSV endpoints answer
	// their data directly.
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		defer resp.Body.Close()
		return c.decodePayload(rawURL, resp)
	}

	res, err := c.classifyResponse(rawURL, resp)
	if err != nil {
		return nil, err
	}

	if res.Kind == payload.KindInline {
		return res.Value, nil
	}

	// Follow the link exactly once; the linked body is final data and is
	// never re-classified.
	linkResp, err := c.get(ctx, res.Link, nil, true)
	if err != nil {
		return nil, err
	}
	defer linkResp.Body.Close()

	return c.decodePayload(res.Link, linkResp)
}

// classifyResponse reads a JSON response and classifies the body as
// inline data or a link to follow. It consumes the body.
func (c *Client) classifyResponse(rawURL string, resp *http.Response) (payload.Resource, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return payload.Resource{}, &RequestError{URL: rawURL, Err: fmt.Errorf("read response body: %w", err)}
	}

	res, err := payload.Classify(body)
	if err != nil {
		return payload.Resource{}, &DataShapeError{URL: rawURL, Err: err}
	}
	return res, nil
}

// decodePayload decodes a final response body according to its declared
// content type. JSON decodes structurally; text/csv and text/plain both
// route through the CSV decoder. Anything else is a data-shape failure,
// surfaced as a typed error rather than a fatal condition.
func (c *Client) decodePayload(rawURL string, resp *http.Response) (any, error) {
	contentType := resp.Header.Get("Content-Type")

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{URL: rawURL, Err: fmt.Errorf("read payload body: %w", err)}
	}

	switch {
	case strings.Contains(contentType, "application/json"):
		var v any
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, &DataShapeError{URL: rawURL, ContentType: contentType, Err: err}
		}
		return v, nil

	case strings.Contains(contentType, "text/csv"), strings.Contains(contentType, "text/plain"):
		return payload.DecodeCSV(string(body)), nil

	default:
		c.logger.Error().
			Str("url", rawURL).
			Str("content_type", contentType).
			Msg("Unsupported payload content type")
		return nil, &DataShapeError{URL: rawURL, ContentType: contentType}
	}
}
