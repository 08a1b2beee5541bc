// Package payload classifies and reshapes the dynamic response bodies of
// the members service. Responses arrive in a handful of shapes: a plain
// JSON sequence, an object carrying the data inline, an object that only
// names a link where the data resides, or an object describing a chunked
// result set. Classification happens once at the boundary so callers never
// branch on ad hoc field presence.
package payload

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind tags the classification of a decoded response body.
type Kind int

const (
	// KindInline means the body is the data itself.
	KindInline Kind = iota

	// KindLink means the body names another URL holding the data.
	// A link is followed exactly once, never re-classified.
	KindLink
)

// Resource is a classified response body.
type Resource struct {
	Kind Kind

	// Value holds the decoded payload for KindInline.
	Value any

	// Link holds the target URL for KindLink.
	Link string
}

// Classify decodes a JSON body and tags it. A body is a link iff it is not
// a sequence and carries a string field named "link"; everything else is
// inline data. Sequences never carry a link field by construction.
func Classify(body []byte) (Resource, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return Resource{}, fmt.Errorf("decode response body: %w", err)
	}

	if obj, ok := v.(map[string]any); ok {
		if link, ok := obj["link"].(string); ok {
			return Resource{Kind: KindLink, Link: link}, nil
		}
	}

	return Resource{Kind: KindInline, Value: v}, nil
}

// ChunkManifest describes a multi-file paginated result set. FileNames
// order determines the order of the aggregated output.
type ChunkManifest struct {
	BaseURL   string
	FileNames []string
}

// ManifestFrom extracts a chunk manifest from a decoded payload value.
// The second return is false when the value is not a well-formed manifest,
// which the service uses to mean "no data available".
func ManifestFrom(v any) (ChunkManifest, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return ChunkManifest{}, false
	}

	base, ok := obj["base_download_url"].(string)
	if !ok {
		return ChunkManifest{}, false
	}

	rawNames, ok := obj["chunk_file_names"].([]any)
	if !ok {
		return ChunkManifest{}, false
	}

	names := make([]string, 0, len(rawNames))
	for _, raw := range rawNames {
		name, ok := raw.(string)
		if !ok {
			return ChunkManifest{}, false
		}
		names = append(names, name)
	}

	return ChunkManifest{BaseURL: base, FileNames: names}, true
}

// Records coerces a decoded payload into a slice of record objects.
func Records(v any) ([]map[string]any, error) {
	seq, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a sequence of records, got %T", v)
	}

	records := make([]map[string]any, 0, len(seq))
	for i, item := range seq {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d: expected an object, got %T", i, item)
		}
		records = append(records, rec)
	}
	return records, nil
}

// AssetTable coerces a decoded payload into an id-keyed asset mapping.
func AssetTable(v any) (map[string]map[string]any, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected an asset mapping, got %T", v)
	}

	assets := make(map[string]map[string]any, len(obj))
	for id, raw := range obj {
		fields, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("asset %q: expected an object, got %T", id, raw)
		}
		assets[id] = fields
	}
	return assets, nil
}

// MergeAssets enriches every record with the asset fields looked up by the
// record's id, overwriting on key collision. A record without a matching
// asset entry is a data error and aborts the merge.
func MergeAssets(records []map[string]any, assets map[string]map[string]any, idField string) ([]map[string]any, error) {
	for i, rec := range records {
		id, ok := rec[idField]
		if !ok {
			return nil, fmt.Errorf("record %d: missing id field %q", i, idField)
		}

		key := stringifyID(id)
		asset, ok := assets[key]
		if !ok {
			return nil, fmt.Errorf("record %d: no asset entry for id %q", i, key)
		}

		for k, v := range asset {
			rec[k] = v
		}
	}
	return records, nil
}

// stringifyID renders an id value the way the asset table keys it.
// JSON numbers decode as float64; integral ids must not pick up a
// fractional rendering.
func stringifyID(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}
