package api

import (
	"context"
	"errors"
	"net/url"
	"strconv"
)

var (
	// ErrMissingDateRange is returned by the search operations when
	// neither a start nor a finish range was supplied.
	ErrMissingDateRange = errors.New("a start_range_begin or finish_range_begin is required")

	// ErrMissingSearchSubject is returned by the hosted search when no
	// customer, host, team or session name narrows the query.
	ErrMissingSearchSubject = errors.New("one of cust_id, host_cust_id, session_name or team_id is required")

	// ErrMissingParticipant is returned by the lap data operation when
	// neither a customer nor a team id was supplied.
	ErrMissingParticipant = errors.New("either a cust_id or a team_id is required")
)

// SearchHostedParams narrows a hosted and league session search.
// A start or finish range and one of CustID, HostCustID, SessionName or
// TeamID are required; the service covers at most 90 days per call.
// Range values are ISO-8601 UTC with zero offset, e.g. "2022-04-01T15:45Z".
type SearchHostedParams struct {
	StartRangeBegin  string
	StartRangeEnd    string
	FinishRangeBegin string
	FinishRangeEnd   string
	CustID           int
	HostCustID       int
	SessionName      string
	LeagueID         int
	LeagueSeasonID   int
	CarID            int
	TrackID          int
	CategoryIDs      []int
	TeamID           int
}

// SearchSeriesParams narrows an official series session search.
// Either a season year and quarter or a start or finish range is
// required; the service covers at most 90 days per call.
type SearchSeriesParams struct {
	SeasonYear       int
	SeasonQuarter    int
	StartRangeBegin  string
	StartRangeEnd    string
	FinishRangeBegin string
	FinishRangeEnd   string
	CustID           int
	SeriesID         int
	RaceWeekNum      int
	OfficialOnly     bool
	EventTypes       []int
	CategoryIDs      []int
}

// Result returns the full result of one subsession, if the member is
// authorized to view it.
func (a *API) Result(ctx context.Context, subsessionID int, includeLicenses bool) (any, error) {
	q := url.Values{}
	setInt(q, "subsession_id", subsessionID)
	setBool(q, "include_licenses", includeLicenses)
	return a.get(ctx, "/data/results/get", q)
}

// ResultLapChartData returns the laps of every car in one sim session.
// simsessionNumber is -2 for practice, -1 for qualifying, 0 for the race.
func (a *API) ResultLapChartData(ctx context.Context, subsessionID, simsessionNumber int) ([]any, error) {
	q := url.Values{}
	setInt(q, "subsession_id", subsessionID)
	q.Set("simsession_number", strconv.Itoa(simsessionNumber))
	return a.chunked(ctx, "/data/results/lap_chart_data", q)
}

// ResultLapData returns the laps of one car in a sim session. custID is
// required for single-driver events, teamID for team events; with only a
// teamID the laps of every driver on the team are included. A payload
// with no chunk manifest means no laps were turned and yields an empty
// slice.
func (a *API) ResultLapData(ctx context.Context, subsessionID, simsessionNumber, custID, teamID int) ([]any, error) {
	if custID == 0 && teamID == 0 {
		return nil, ErrMissingParticipant
	}
	q := url.Values{}
	setInt(q, "subsession_id", subsessionID)
	q.Set("simsession_number", strconv.Itoa(simsessionNumber))
	setInt(q, "cust_id", custID)
	setInt(q, "team_id", teamID)
	return a.chunked(ctx, "/data/results/lap_data", q)
}

// ResultEventLog returns the events logged during one sim session.
func (a *API) ResultEventLog(ctx context.Context, subsessionID, simsessionNumber int) ([]any, error) {
	q := url.Values{}
	setInt(q, "subsession_id", subsessionID)
	q.Set("simsession_number", strconv.Itoa(simsessionNumber))
	return a.chunked(ctx, "/data/results/event_log", q)
}

// ResultSearchHosted searches hosted and league session results.
// Results are ordered by subsession id, a proxy for start time.
func (a *API) ResultSearchHosted(ctx context.Context, params SearchHostedParams) ([]any, error) {
	if params.StartRangeBegin == "" && params.FinishRangeBegin == "" {
		return nil, ErrMissingDateRange
	}
	if params.CustID == 0 && params.HostCustID == 0 && params.SessionName == "" && params.TeamID == 0 {
		return nil, ErrMissingSearchSubject
	}
	q := url.Values{}
	setString(q, "start_range_begin", params.StartRangeBegin)
	setString(q, "start_range_end", params.StartRangeEnd)
	setString(q, "finish_range_begin", params.FinishRangeBegin)
	setString(q, "finish_range_end", params.FinishRangeEnd)
	setInt(q, "cust_id", params.CustID)
	setInt(q, "host_cust_id", params.HostCustID)
	setString(q, "session_name", params.SessionName)
	setInt(q, "league_id", params.LeagueID)
	setInt(q, "league_season_id", params.LeagueSeasonID)
	setInt(q, "car_id", params.CarID)
	setInt(q, "track_id", params.TrackID)
	if len(params.CategoryIDs) > 0 {
		q.Set("category_ids", joinInts(params.CategoryIDs))
	}
	setInt(q, "team_id", params.TeamID)
	return a.chunkedData(ctx, "/data/results/search_hosted", q)
}

// ResultSearchSeries searches official series session results.
func (a *API) ResultSearchSeries(ctx context.Context, params SearchSeriesParams) ([]any, error) {
	haveSeason := params.SeasonYear != 0 && params.SeasonQuarter != 0
	if !haveSeason && params.StartRangeBegin == "" && params.FinishRangeBegin == "" {
		return nil, ErrMissingDateRange
	}
	q := url.Values{}
	setInt(q, "season_year", params.SeasonYear)
	setInt(q, "season_quarter", params.SeasonQuarter)
	setString(q, "start_range_begin", params.StartRangeBegin)
	setString(q, "start_range_end", params.StartRangeEnd)
	setString(q, "finish_range_begin", params.FinishRangeBegin)
	setString(q, "finish_range_end", params.FinishRangeEnd)
	setInt(q, "cust_id", params.CustID)
	setInt(q, "series_id", params.SeriesID)
	setInt(q, "race_week_num", params.RaceWeekNum)
	if params.OfficialOnly {
		setBool(q, "official_only", true)
	}
	if len(params.EventTypes) > 0 {
		q.Set("event_types", joinInts(params.EventTypes))
	}
	if len(params.CategoryIDs) > 0 {
		q.Set("category_ids", joinInts(params.CategoryIDs))
	}
	return a.chunkedData(ctx, "/data/results/search_series", q)
}

// ResultSeasonResults lists the sessions of one race week of a series
// season. eventType narrows to 2 practice, 3 qualify, 4 time trial or
// 5 race; raceWeekNum is zero-based and -1 means every week.
func (a *API) ResultSeasonResults(ctx context.Context, seasonID, eventType, raceWeekNum int) (any, error) {
	q := url.Values{}
	setInt(q, "season_id", seasonID)
	setInt(q, "event_type", eventType)
	if raceWeekNum >= 0 {
		q.Set("race_week_num", strconv.Itoa(raceWeekNum))
	}
	return a.get(ctx, "/data/results/season_results", q)
}
