package client

import (
	"context"
	"encoding/json"
	"io"

	"github.com/Sternrassler/iracing-data-client/pkg/payload"
)

// GatherChunks downloads a chunked result set and flattens it into one
// ordered slice. Output order is fully determined by manifest order: chunks
// are fetched sequentially in the order the manifest names them, and each
// chunk's internal order is preserved.
//
// A value that is not a well-formed manifest means the queried dataset was
// empty; that yields an empty slice, not an error. Chunk URLs are
// pre-signed and short-lived, so the fetches skip authentication but still
// run through the retry discipline.
func (c *Client) GatherChunks(ctx context.Context, v any) ([]any, error) {
	manifest, ok := payload.ManifestFrom(v)
	if !ok {
		return []any{}, nil
	}

	out := []any{}
	for _, name := range manifest.FileNames {
		chunkURL := manifest.BaseURL + name

		records, err := c.fetchChunk(ctx, chunkURL)
		if err != nil {
			return nil, err
		}
		out = append(out, records...)
	}

	c.logger.Debug().
		Int("chunks", len(manifest.FileNames)).
		Int("records", len(out)).
		Msg("Chunked result set assembled")

	return out, nil
}

func (c *Client) fetchChunk(ctx context.Context, chunkURL string) ([]any, error) {
	resp, err := c.GetUnauthenticated(ctx, chunkURL, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{URL: chunkURL, Err: err}
	}

	var records []any
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, &DataShapeError{URL: chunkURL, Err: err}
	}
	return records, nil
}
