// Package api provides the flat catalog of members-service data endpoints
// on top of the resilient transport in pkg/client. Every method builds a
// query and delegates to FetchResource or GatherChunks; payloads are
// opaque JSON values whose meaning belongs to the service, not this
// client.
package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Sternrassler/iracing-data-client/pkg/client"
)

// API is the endpoint catalog bound to one data client.
type API struct {
	client *client.Client
}

// New creates the catalog on top of a transport client.
func New(c *client.Client) *API {
	return &API{client: c}
}

// Client returns the underlying transport client.
func (a *API) Client() *client.Client {
	return a.client
}

func (a *API) get(ctx context.Context, endpoint string, query url.Values) (any, error) {
	return a.client.FetchResource(ctx, endpoint, query)
}

// chunked fetches a resource whose payload carries a chunk_info manifest
// and flattens the chunks into one ordered slice.
func (a *API) chunked(ctx context.Context, endpoint string, query url.Values) ([]any, error) {
	v, err := a.get(ctx, endpoint, query)
	if err != nil {
		return nil, err
	}
	return a.client.GatherChunks(ctx, dig(v, "chunk_info"))
}

// chunkedData is chunked for the search endpoints, which nest the
// manifest one level deeper under "data".
func (a *API) chunkedData(ctx context.Context, endpoint string, query url.Values) ([]any, error) {
	v, err := a.get(ctx, endpoint, query)
	if err != nil {
		return nil, err
	}
	return a.client.GatherChunks(ctx, dig(v, "data", "chunk_info"))
}

// linked follows a secondary data_url field some payloads carry.
func (a *API) linked(ctx context.Context, v any) (any, error) {
	dataURL, ok := dig(v, "data_url").(string)
	if !ok {
		return nil, fmt.Errorf("payload carried no data_url")
	}
	return a.client.FetchLinked(ctx, dataURL)
}

// dig walks nested objects by key, returning nil when any step is not an
// object or the key is absent.
func dig(v any, keys ...string) any {
	for _, key := range keys {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v = obj[key]
	}
	return v
}

func setInt(q url.Values, key string, v int) {
	if v != 0 {
		q.Set(key, strconv.Itoa(v))
	}
}

func setBool(q url.Values, key string, v bool) {
	q.Set(key, strconv.FormatBool(v))
}

func setString(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
