package api

import (
	"context"
	"errors"
	"net/url"
	"strconv"
)

// ErrMissingLeagueID is returned by league operations when no league id
// was supplied.
var ErrMissingLeagueID = errors.New("league_id is required")

// LeagueDirectoryParams narrows a league directory search. The zero
// value searches every league.
type LeagueDirectoryParams struct {
	Search               string
	Tag                  string
	RestrictToMember     bool
	RestrictToRecruiting bool
	RestrictToFriends    bool
	RestrictToWatched    bool
	MinimumRosterCount   int
	MaximumRosterCount   int // defaults to 999
	Lowerbound           int // first row of results, defaults to 1
	Upperbound           int // last row of results, defaults to lowerbound+39
	Sort                 string
	Order                string // asc or desc, defaults to asc
}

// LeagueGet returns the full definition of one league.
func (a *API) LeagueGet(ctx context.Context, leagueID int, includeLicenses bool) (any, error) {
	if leagueID == 0 {
		return nil, ErrMissingLeagueID
	}
	q := url.Values{}
	setInt(q, "league_id", leagueID)
	setBool(q, "include_licenses", includeLicenses)
	return a.get(ctx, "/data/league/get", q)
}

// LeagueCustLeagueSessions lists league sessions visible to the
// authenticated member, optionally restricted to sessions they created
// or to one car or track package.
func (a *API) LeagueCustLeagueSessions(ctx context.Context, mine bool, packageID int) (any, error) {
	q := url.Values{}
	setBool(q, "mine", mine)
	setInt(q, "package_id", packageID)
	return a.get(ctx, "/data/league/cust_league_sessions", q)
}

// LeagueDirectory searches the league directory.
func (a *API) LeagueDirectory(ctx context.Context, params LeagueDirectoryParams) (any, error) {
	if params.MaximumRosterCount == 0 {
		params.MaximumRosterCount = 999
	}
	if params.Lowerbound == 0 {
		params.Lowerbound = 1
	}
	if params.Order == "" {
		params.Order = "asc"
	}
	q := url.Values{}
	setString(q, "search", params.Search)
	setString(q, "tag", params.Tag)
	setBool(q, "restrict_to_member", params.RestrictToMember)
	setBool(q, "restrict_to_recruiting", params.RestrictToRecruiting)
	setBool(q, "restrict_to_friends", params.RestrictToFriends)
	setBool(q, "restrict_to_watched", params.RestrictToWatched)
	setInt(q, "minimum_roster_count", params.MinimumRosterCount)
	q.Set("maximum_roster_count", strconv.Itoa(params.MaximumRosterCount))
	q.Set("lowerbound", strconv.Itoa(params.Lowerbound))
	setInt(q, "upperbound", params.Upperbound)
	setString(q, "sort", params.Sort)
	q.Set("order", params.Order)
	return a.get(ctx, "/data/league/directory", q)
}

// LeaguePointsSystems lists the points systems of a league. When
// seasonID names a season using custom points, the custom option is
// included in the result.
func (a *API) LeaguePointsSystems(ctx context.Context, leagueID, seasonID int) (any, error) {
	if leagueID == 0 {
		return nil, ErrMissingLeagueID
	}
	q := url.Values{}
	setInt(q, "league_id", leagueID)
	setInt(q, "season_id", seasonID)
	return a.get(ctx, "/data/league/get_points_systems", q)
}

// LeagueMembership lists the leagues the authenticated member belongs to.
func (a *API) LeagueMembership(ctx context.Context, includeLeague bool) (any, error) {
	q := url.Values{}
	setBool(q, "include_league", includeLeague)
	return a.get(ctx, "/data/league/membership", q)
}

// LeagueRoster returns the roster of a league. The service answers with
// an envelope whose data_url points at the actual roster, so this makes
// a second fetch.
func (a *API) LeagueRoster(ctx context.Context, leagueID int, includeLicenses bool) (any, error) {
	if leagueID == 0 {
		return nil, ErrMissingLeagueID
	}
	q := url.Values{}
	setInt(q, "league_id", leagueID)
	if includeLicenses {
		setBool(q, "include_licenses", includeLicenses)
	}
	envelope, err := a.get(ctx, "/data/league/roster", q)
	if err != nil {
		return nil, err
	}
	return a.linked(ctx, envelope)
}

// LeagueSeasons lists the seasons of a league, optionally including
// retired seasons.
func (a *API) LeagueSeasons(ctx context.Context, leagueID int, retired bool) (any, error) {
	if leagueID == 0 {
		return nil, ErrMissingLeagueID
	}
	q := url.Values{}
	setInt(q, "league_id", leagueID)
	setBool(q, "retired", retired)
	return a.get(ctx, "/data/league/seasons", q)
}

// LeagueSeasonStandings returns the standings of a league season,
// optionally narrowed to one car class or car.
func (a *API) LeagueSeasonStandings(ctx context.Context, leagueID, seasonID, carClassID, carID int) (any, error) {
	if leagueID == 0 {
		return nil, ErrMissingLeagueID
	}
	q := url.Values{}
	setInt(q, "league_id", leagueID)
	setInt(q, "season_id", seasonID)
	setInt(q, "car_class_id", carClassID)
	setInt(q, "car_id", carID)
	return a.get(ctx, "/data/league/season_standings", q)
}

// LeagueSeasonSessions lists the sessions of a league season.
func (a *API) LeagueSeasonSessions(ctx context.Context, leagueID, seasonID int, resultsOnly bool) (any, error) {
	if leagueID == 0 {
		return nil, ErrMissingLeagueID
	}
	q := url.Values{}
	setInt(q, "league_id", leagueID)
	setInt(q, "season_id", seasonID)
	setBool(q, "results_only", resultsOnly)
	return a.get(ctx, "/data/league/season_sessions", q)
}
