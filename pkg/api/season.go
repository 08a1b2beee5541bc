package api

import (
	"context"
	"fmt"
	"net/url"
)

// SeasonList lists the official seasons of one year and quarter.
func (a *API) SeasonList(ctx context.Context, seasonYear, seasonQuarter int) (any, error) {
	q := url.Values{}
	setInt(q, "season_year", seasonYear)
	setInt(q, "season_quarter", seasonQuarter)
	return a.get(ctx, "/data/season/list", q)
}

// SeasonRaceGuide returns the race guide. from is ISO-8601 with offset
// and defaults to the current time; sessions starting up to three hours
// after it are included, plus earlier ones still running when
// includeEndAfterFrom is set.
func (a *API) SeasonRaceGuide(ctx context.Context, from string, includeEndAfterFrom bool) (any, error) {
	q := url.Values{}
	setString(q, "from", from)
	if includeEndAfterFrom {
		setBool(q, "include_end_after_from", true)
	}
	return a.get(ctx, "/data/season/race_guide", q)
}

// SeasonSpectatorSubsessionIDs returns the joinable subsession ids for
// the given event types (2 practice, 3 qualify, 4 time trial, 5 race).
// Nil means every type.
func (a *API) SeasonSpectatorSubsessionIDs(ctx context.Context, eventTypes []int) ([]int, error) {
	if len(eventTypes) == 0 {
		eventTypes = []int{2, 3, 4, 5}
	}
	q := url.Values{}
	q.Set("event_types", joinInts(eventTypes))
	v, err := a.get(ctx, "/data/season/spectator_subsessionids", q)
	if err != nil {
		return nil, err
	}
	raw, ok := dig(v, "subsession_ids").([]any)
	if !ok {
		return nil, fmt.Errorf("payload carried no subsession_ids list")
	}
	ids := make([]int, 0, len(raw))
	for _, e := range raw {
		n, ok := e.(float64)
		if !ok {
			return nil, fmt.Errorf("subsession id %v is not a number", e)
		}
		ids = append(ids, int(n))
	}
	return ids, nil
}

// HostedCombinedSessions returns hosted sessions joinable as driver or
// spectator plus the member's pending non-league sessions, under the
// sessions key. packageID narrows to sessions using one car or track
// package.
func (a *API) HostedCombinedSessions(ctx context.Context, packageID int) (any, error) {
	q := url.Values{}
	setInt(q, "package_id", packageID)
	return a.get(ctx, "/data/hosted/combined_sessions", q)
}

// HostedSessions returns the hosted sessions joinable as driver.
func (a *API) HostedSessions(ctx context.Context) (any, error) {
	return a.get(ctx, "/data/hosted/sessions", nil)
}

// Team returns detailed information about one team.
func (a *API) Team(ctx context.Context, teamID int, includeLicenses bool) (any, error) {
	q := url.Values{}
	setInt(q, "team_id", teamID)
	setBool(q, "include_licenses", includeLicenses)
	return a.get(ctx, "/data/team/get", q)
}
