package api

import (
	"context"
	"net/url"
)

// Series lists every series.
func (a *API) Series(ctx context.Context) (any, error) {
	return a.get(ctx, "/data/series/get", nil)
}

// SeriesAssets returns the art and copy assets for every series, keyed
// by series id.
func (a *API) SeriesAssets(ctx context.Context) (any, error) {
	return a.get(ctx, "/data/series/assets", nil)
}

// SeriesWithAssets merges the asset table into the series list by
// series_id.
func (a *API) SeriesWithAssets(ctx context.Context) ([]map[string]any, error) {
	return a.merged(ctx, "/data/series/get", "/data/series/assets", "series_id")
}

// SeriesStats lists every series with its season rollups.
func (a *API) SeriesStats(ctx context.Context) (any, error) {
	return a.get(ctx, "/data/series/stats_series", nil)
}

// SeriesPastSeasons lists the completed seasons of one series.
func (a *API) SeriesPastSeasons(ctx context.Context, seriesID int) (any, error) {
	q := url.Values{}
	setInt(q, "series_id", seriesID)
	v, err := a.get(ctx, "/data/series/past_seasons", q)
	if err != nil {
		return nil, err
	}
	return dig(v, "series"), nil
}

// SeriesSeasons lists the active seasons, optionally with the series
// definition embedded in each.
func (a *API) SeriesSeasons(ctx context.Context, includeSeries bool) (any, error) {
	q := url.Values{}
	setBool(q, "include_series", includeSeries)
	return a.get(ctx, "/data/series/seasons", q)
}
