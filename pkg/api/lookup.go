package api

import (
	"context"
	"net/url"
)

// LookupClubHistory returns the club history for a season year and
// quarter. The service falls back to an earlier history when the
// requested quarter has none.
func (a *API) LookupClubHistory(ctx context.Context, seasonYear, seasonQuarter int) (any, error) {
	q := url.Values{}
	setInt(q, "season_year", seasonYear)
	setInt(q, "season_quarter", seasonQuarter)
	return a.get(ctx, "/data/lookup/club_history", q)
}

// LookupCountries lists country names and codes.
func (a *API) LookupCountries(ctx context.Context) (any, error) {
	return a.get(ctx, "/data/lookup/countries", nil)
}

// LookupDrivers searches drivers by customer id or partial name,
// optionally narrowed to the roster of one league.
func (a *API) LookupDrivers(ctx context.Context, searchTerm string, leagueID int) (any, error) {
	q := url.Values{}
	setString(q, "search_term", searchTerm)
	setInt(q, "league_id", leagueID)
	return a.get(ctx, "/data/lookup/drivers", q)
}

// LookupGet returns the general lookup tables.
func (a *API) LookupGet(ctx context.Context) (any, error) {
	return a.get(ctx, "/data/lookup/get", nil)
}

// LookupLicenses lists every license level.
func (a *API) LookupLicenses(ctx context.Context) (any, error) {
	return a.get(ctx, "/data/lookup/licenses", nil)
}
