package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// driverStatsEndpoints maps racing categories to their driver stats
// endpoints.
var driverStatsEndpoints = map[int]string{
	1: "/data/driver_stats_by_category/oval",
	2: "/data/driver_stats_by_category/road",
	3: "/data/driver_stats_by_category/dirt_oval",
	4: "/data/driver_stats_by_category/dirt_road",
	5: "/data/driver_stats_by_category/sports_car",
	6: "/data/driver_stats_by_category/formula_car",
}

// DriverList returns the driver stats for one racing category.
// categoryID is 1 oval, 2 road, 3 dirt oval, 4 dirt road, 5 sports car,
// 6 formula car. These endpoints answer in CSV, so records come back as
// string fields.
func (a *API) DriverList(ctx context.Context, categoryID int) (any, error) {
	endpoint, ok := driverStatsEndpoints[categoryID]
	if !ok {
		return nil, fmt.Errorf("invalid category id %d, valid ids are 1 through 6", categoryID)
	}
	return a.get(ctx, endpoint, nil)
}

// StatsMemberBests returns the best lap times of a member per car.
// custID 0 means the authenticated member; the first call should omit
// carID and pick one from the returned cars_driven list.
func (a *API) StatsMemberBests(ctx context.Context, custID, carID int) (any, error) {
	q := url.Values{}
	setInt(q, "cust_id", custID)
	setInt(q, "car_id", carID)
	return a.get(ctx, "/data/stats/member_bests", q)
}

// StatsMemberCareer returns the career stats of a member. custID 0
// means the authenticated member.
func (a *API) StatsMemberCareer(ctx context.Context, custID int) (any, error) {
	q := url.Values{}
	setInt(q, "cust_id", custID)
	return a.get(ctx, "/data/stats/member_career", q)
}

// StatsMemberRecap returns a season recap for a member. year 0 means
// the current calendar year; quarter 0 covers the whole year.
func (a *API) StatsMemberRecap(ctx context.Context, custID, year, quarter int) (any, error) {
	q := url.Values{}
	setInt(q, "cust_id", custID)
	setInt(q, "year", year)
	setInt(q, "season", quarter)
	return a.get(ctx, "/data/stats/member_recap", q)
}

// StatsMemberRecentRaces returns the latest races of a member.
func (a *API) StatsMemberRecentRaces(ctx context.Context, custID int) (any, error) {
	q := url.Values{}
	setInt(q, "cust_id", custID)
	return a.get(ctx, "/data/stats/member_recent_races", q)
}

// StatsMemberSummary returns the stats summary of a member.
func (a *API) StatsMemberSummary(ctx context.Context, custID int) (any, error) {
	q := url.Values{}
	setInt(q, "cust_id", custID)
	return a.get(ctx, "/data/stats/member_summary", q)
}

// StatsMemberYearly returns the per-year stats of a member.
func (a *API) StatsMemberYearly(ctx context.Context, custID int) (any, error) {
	q := url.Values{}
	setInt(q, "cust_id", custID)
	return a.get(ctx, "/data/stats/member_yearly", q)
}

// standingsQuery builds the common query of the season standings
// operations. raceWeekNum and division are zero-based, so -1 stands for
// "all"; clubID 0 means every club.
func standingsQuery(seasonID, carClassID, raceWeekNum, clubID, division int) url.Values {
	q := url.Values{}
	setInt(q, "season_id", seasonID)
	setInt(q, "car_class_id", carClassID)
	if raceWeekNum >= 0 {
		q.Set("race_week_num", strconv.Itoa(raceWeekNum))
	}
	setInt(q, "club_id", clubID)
	if division >= 0 {
		q.Set("division", strconv.Itoa(division))
	}
	return q
}

// StatsSeasonDriverStandings returns the driver standings of a season
// and car class. Pass -1 for raceWeekNum or division and 0 for clubID
// to cover all.
func (a *API) StatsSeasonDriverStandings(ctx context.Context, seasonID, carClassID, raceWeekNum, clubID, division int) ([]any, error) {
	q := standingsQuery(seasonID, carClassID, raceWeekNum, clubID, division)
	return a.chunked(ctx, "/data/stats/season_driver_standings", q)
}

// StatsSeasonSupersessionStandings returns the supersession standings
// of a season and car class.
func (a *API) StatsSeasonSupersessionStandings(ctx context.Context, seasonID, carClassID, raceWeekNum, clubID, division int) ([]any, error) {
	q := standingsQuery(seasonID, carClassID, raceWeekNum, clubID, division)
	return a.chunked(ctx, "/data/stats/season_supersession_standings", q)
}

// StatsSeasonTeamStandings returns the team standings of a season and
// car class.
func (a *API) StatsSeasonTeamStandings(ctx context.Context, seasonID, carClassID, raceWeekNum int) ([]any, error) {
	q := standingsQuery(seasonID, carClassID, raceWeekNum, 0, -1)
	return a.chunked(ctx, "/data/stats/season_team_standings", q)
}

// StatsSeasonTTStandings returns the time trial standings of a season
// and car class.
func (a *API) StatsSeasonTTStandings(ctx context.Context, seasonID, carClassID, raceWeekNum, clubID, division int) ([]any, error) {
	q := standingsQuery(seasonID, carClassID, raceWeekNum, clubID, division)
	return a.chunked(ctx, "/data/stats/season_tt_standings", q)
}

// StatsSeasonTTResults returns the time trial results of one race week.
func (a *API) StatsSeasonTTResults(ctx context.Context, seasonID, carClassID, raceWeekNum, clubID, division int) ([]any, error) {
	q := standingsQuery(seasonID, carClassID, raceWeekNum, clubID, division)
	return a.chunked(ctx, "/data/stats/season_tt_results", q)
}

// StatsSeasonQualifyResults returns the qualifying results of one race
// week.
func (a *API) StatsSeasonQualifyResults(ctx context.Context, seasonID, carClassID, raceWeekNum, clubID, division int) ([]any, error) {
	q := standingsQuery(seasonID, carClassID, raceWeekNum, clubID, division)
	return a.chunked(ctx, "/data/stats/season_qualify_results", q)
}

// StatsWorldRecords returns world records for a car on a track,
// optionally narrowed to one season.
func (a *API) StatsWorldRecords(ctx context.Context, carID, trackID, seasonYear, seasonQuarter int) ([]any, error) {
	q := url.Values{}
	setInt(q, "car_id", carID)
	setInt(q, "track_id", trackID)
	setInt(q, "season_year", seasonYear)
	setInt(q, "season_quarter", seasonQuarter)
	return a.chunkedData(ctx, "/data/stats/world_records", q)
}
