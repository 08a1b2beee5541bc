package api

import (
	"context"

	"github.com/Sternrassler/iracing-data-client/pkg/payload"
)

// Cars lists every car definition.
func (a *API) Cars(ctx context.Context) (any, error) {
	return a.get(ctx, "/data/car/get", nil)
}

// CarAssets returns the art and copy assets for every car, keyed by car id.
// Image paths are relative to https://images-static.iracing.com/.
func (a *API) CarAssets(ctx context.Context) (any, error) {
	return a.get(ctx, "/data/car/assets", nil)
}

// CarsWithAssets merges the asset table into the car list by car_id.
func (a *API) CarsWithAssets(ctx context.Context) ([]map[string]any, error) {
	return a.merged(ctx, "/data/car/get", "/data/car/assets", "car_id")
}

// CarClasses lists every car class.
func (a *API) CarClasses(ctx context.Context) (any, error) {
	return a.get(ctx, "/data/carclass/get", nil)
}

// Tracks lists every track configuration.
func (a *API) Tracks(ctx context.Context) (any, error) {
	return a.get(ctx, "/data/track/get", nil)
}

// TrackAssets returns the art and copy assets for every track, keyed by
// track id. Image paths are relative to https://images-static.iracing.com/.
func (a *API) TrackAssets(ctx context.Context) (any, error) {
	return a.get(ctx, "/data/track/assets", nil)
}

// TracksWithAssets merges the asset table into the track list by track_id.
func (a *API) TracksWithAssets(ctx context.Context) ([]map[string]any, error) {
	return a.merged(ctx, "/data/track/get", "/data/track/assets", "track_id")
}

// merged fetches a record list and its matching asset table and merges
// them. A record whose id has no asset entry is an error: the two
// endpoints are published as a pair and a gap means the datasets are out
// of sync.
func (a *API) merged(ctx context.Context, listEndpoint, assetEndpoint, idField string) ([]map[string]any, error) {
	listRaw, err := a.get(ctx, listEndpoint, nil)
	if err != nil {
		return nil, err
	}
	assetsRaw, err := a.get(ctx, assetEndpoint, nil)
	if err != nil {
		return nil, err
	}
	records, err := payload.Records(listRaw)
	if err != nil {
		return nil, err
	}
	assets, err := payload.AssetTable(assetsRaw)
	if err != nil {
		return nil, err
	}
	return payload.MergeAssets(records, assets, idField)
}
