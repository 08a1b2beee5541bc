package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_LinkObject(t *testing.T) {
	res, err := Classify([]byte(`{"link": "https://x", "expires": "2024-01-01T00:00:00Z"}`))
	require.NoError(t, err)

	assert.Equal(t, KindLink, res.Kind)
	assert.Equal(t, "https://x", res.Link)
}

func TestClassify_SequenceIsInline(t *testing.T) {
	res, err := Classify([]byte(`[{"a": 1}]`))
	require.NoError(t, err)

	assert.Equal(t, KindInline, res.Kind)
	require.IsType(t, []any{}, res.Value)
	assert.Len(t, res.Value, 1)
}

func TestClassify_ObjectWithoutLinkIsInline(t *testing.T) {
	res, err := Classify([]byte(`{"cust_id": 123, "display_name": "A. Driver"}`))
	require.NoError(t, err)

	assert.Equal(t, KindInline, res.Kind)
	obj, ok := res.Value.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(123), obj["cust_id"])
}

func TestClassify_NonStringLinkIsInline(t *testing.T) {
	res, err := Classify([]byte(`{"link": 42}`))
	require.NoError(t, err)

	assert.Equal(t, KindInline, res.Kind)
}

func TestClassify_MalformedBody(t *testing.T) {
	_, err := Classify([]byte(`{"link": `))
	assert.Error(t, err)
}

func TestManifestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  ChunkManifest
		ok    bool
	}{
		{
			name: "well-formed manifest",
			input: map[string]any{
				"base_download_url": "https://cdn.example.com/results/",
				"chunk_file_names":  []any{"a.json", "b.json"},
			},
			want: ChunkManifest{
				BaseURL:   "https://cdn.example.com/results/",
				FileNames: []string{"a.json", "b.json"},
			},
			ok: true,
		},
		{
			name: "empty file list",
			input: map[string]any{
				"base_download_url": "https://cdn.example.com/results/",
				"chunk_file_names":  []any{},
			},
			want: ChunkManifest{BaseURL: "https://cdn.example.com/results/", FileNames: []string{}},
			ok:   true,
		},
		{name: "nil input", input: nil, ok: false},
		{name: "sequence input", input: []any{"a.json"}, ok: false},
		{name: "missing base url", input: map[string]any{"chunk_file_names": []any{"a.json"}}, ok: false},
		{name: "missing file names", input: map[string]any{"base_download_url": "https://x/"}, ok: false},
		{
			name: "non-string file name",
			input: map[string]any{
				"base_download_url": "https://x/",
				"chunk_file_names":  []any{"a.json", 7},
			},
			ok: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ManifestFrom(tt.input)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMergeAssets(t *testing.T) {
	records := []map[string]any{
		{"car_id": float64(1), "name": "MX-5"},
		{"car_id": float64(2), "name": "GT3"},
	}
	assets := map[string]map[string]any{
		"1": {"logo": "mx5.png"},
		"2": {"logo": "gt3.png", "name": "GT3 Evo"},
	}

	merged, err := MergeAssets(records, assets, "car_id")
	require.NoError(t, err)

	assert.Equal(t, "mx5.png", merged[0]["logo"])
	// Asset fields overwrite record fields on collision.
	assert.Equal(t, "GT3 Evo", merged[1]["name"])
}

func TestMergeAssets_MissingAssetIsHardError(t *testing.T) {
	records := []map[string]any{{"car_id": float64(99), "name": "Ghost"}}

	_, err := MergeAssets(records, map[string]map[string]any{}, "car_id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"99"`)
}

func TestMergeAssets_MissingIDField(t *testing.T) {
	records := []map[string]any{{"name": "No ID"}}

	_, err := MergeAssets(records, map[string]map[string]any{}, "car_id")
	assert.Error(t, err)
}

func TestRecordsAndAssetTable(t *testing.T) {
	recs, err := Records([]any{map[string]any{"a": float64(1)}})
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	_, err = Records(map[string]any{})
	assert.Error(t, err)

	assets, err := AssetTable(map[string]any{"1": map[string]any{"logo": "x.png"}})
	require.NoError(t, err)
	assert.Equal(t, "x.png", assets["1"]["logo"])

	_, err = AssetTable([]any{})
	assert.Error(t, err)
}

func TestStringifyID_IntegralFloat(t *testing.T) {
	// JSON numbers arrive as float64; ids must not render fractionally.
	assert.Equal(t, "123", stringifyID(float64(123)))
	assert.Equal(t, "105", stringifyID(float64(105)))
	assert.Equal(t, "abc", stringifyID("abc"))
}
