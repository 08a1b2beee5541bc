package client

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/Sternrassler/iracing-data-client/internal/testutil"
)

func TestGatherChunks_ManifestOrderPreserved(t *testing.T) {
	mock := testutil.NewMockDataAPI()
	defer mock.Close()
	// b.json is listed first in the manifest and must come first in the
	// output regardless of any fetch timing.
	mock.SetResponse("/chunks/a.json", testutil.NewJSONResponse(`[3]`))
	mock.SetResponse("/chunks/b.json", testutil.NewJSONResponse(`[1, 2]`))

	c := newTestClient(t, mock)

	manifest := map[string]any{
		"base_download_url": mock.URL() + "/chunks/",
		"chunk_file_names":  []any{"b.json", "a.json"},
	}

	out, err := c.GatherChunks(context.Background(), manifest)
	if err != nil {
		t.Fatalf("GatherChunks failed: %v", err)
	}

	want := []any{float64(1), float64(2), float64(3)}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("out = %v, want %v", out, want)
	}
}

func TestGatherChunks_NonManifestYieldsEmpty(t *testing.T) {
	c := newTestClientNoServer(t)

	// The service answers with no chunk_info when a dataset is empty.
	// Any non-manifest value therefore maps to "no data", including
	// malformed manifests; the upstream behavior conflates the two and
	// this client preserves that conflation.
	tests := []struct {
		name  string
		input any
	}{
		{"nil input", nil},
		{"string input", "not a manifest"},
		{"sequence input", []any{"a.json"}},
		{"object missing base url", map[string]any{"chunk_file_names": []any{"a.json"}}},
		{"object missing file names", map[string]any{"base_download_url": "http://x/"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := c.GatherChunks(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("GatherChunks failed: %v", err)
			}
			if len(out) != 0 {
				t.Errorf("out = %v, want empty", out)
			}
		})
	}
}

func TestGatherChunks_SkipsAuthentication(t *testing.T) {
	mock := testutil.NewMockDataAPI()
	defer mock.Close()
	mock.SetResponse("/chunks/a.json", testutil.NewJSONResponse(`[1]`))

	c := newTestClient(t, mock)

	manifest := map[string]any{
		"base_download_url": mock.URL() + "/chunks/",
		"chunk_file_names":  []any{"a.json"},
	}

	if _, err := c.GatherChunks(context.Background(), manifest); err != nil {
		t.Fatalf("GatherChunks failed: %v", err)
	}
	// Chunk URLs are pre-signed; no handshake should happen.
	if n := mock.GetLoginCount(); n != 0 {
		t.Errorf("login count = %d, want 0", n)
	}
}

func TestGatherChunks_FetchFailurePropagates(t *testing.T) {
	mock := testutil.NewMockDataAPI()
	defer mock.Close()
	mock.SetResponse("/chunks/a.json", testutil.NewJSONResponse(`[1]`))
	mock.SetResponse("/chunks/b.json", testutil.NewStatusResponse(http.StatusNotFound))

	c := newTestClient(t, mock)

	manifest := map[string]any{
		"base_download_url": mock.URL() + "/chunks/",
		"chunk_file_names":  []any{"a.json", "b.json"},
	}

	_, err := c.GatherChunks(context.Background(), manifest)

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %v", err)
	}
}

func TestGatherChunks_NonSequenceChunk(t *testing.T) {
	mock := testutil.NewMockDataAPI()
	defer mock.Close()
	mock.SetResponse("/chunks/a.json", testutil.NewJSONResponse(`{"not": "a sequence"}`))

	c := newTestClient(t, mock)

	manifest := map[string]any{
		"base_download_url": mock.URL() + "/chunks/",
		"chunk_file_names":  []any{"a.json"},
	}

	_, err := c.GatherChunks(context.Background(), manifest)

	var shapeErr *DataShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected *DataShapeError, got %v", err)
	}
}

// newTestClientNoServer builds a client whose session never logs in; used
// for paths that must not touch the network.
func newTestClientNoServer(t *testing.T) *Client {
	t.Helper()

	mock := testutil.NewMockDataAPI()
	t.Cleanup(mock.Close)
	return newTestClient(t, mock)
}
