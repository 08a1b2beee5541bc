package api

import (
	"context"
	"errors"
	"net/url"
	"strconv"
)

// ErrMissingCustID is returned when an operation needs at least one
// customer id.
var ErrMissingCustID = errors.New("at least one cust_id is required")

// Member returns basic profile information for one or more members.
func (a *API) Member(ctx context.Context, includeLicenses bool, custIDs ...int) (any, error) {
	if len(custIDs) == 0 {
		return nil, ErrMissingCustID
	}
	q := url.Values{}
	q.Set("cust_ids", joinInts(custIDs))
	setBool(q, "include_licenses", includeLicenses)
	return a.get(ctx, "/data/member/get", q)
}

// MemberAwards lists the awards of a member. custID 0 means the
// authenticated member. The service answers with an envelope whose
// data_url points at the award list, so this makes a second fetch.
func (a *API) MemberAwards(ctx context.Context, custID int) (any, error) {
	q := url.Values{}
	setInt(q, "cust_id", custID)
	envelope, err := a.get(ctx, "/data/member/awards", q)
	if err != nil {
		return nil, err
	}
	return a.linked(ctx, envelope)
}

// MemberChartData returns rating time series for a member and category.
// categoryID is 1 oval, 2 road, 3 dirt oval, 4 dirt road, 5 sports car,
// 6 formula car; chartType is 1 iRating, 2 TT rating, 3 license/SR.
// custID 0 means the authenticated member.
func (a *API) MemberChartData(ctx context.Context, custID, categoryID, chartType int) (any, error) {
	q := url.Values{}
	setInt(q, "cust_id", custID)
	q.Set("category_id", strconv.Itoa(categoryID))
	q.Set("chart_type", strconv.Itoa(chartType))
	return a.get(ctx, "/data/member/chart_data", q)
}

// MemberInfo returns the account details of the authenticated member.
func (a *API) MemberInfo(ctx context.Context) (any, error) {
	return a.get(ctx, "/data/member/info", nil)
}

// MemberProfile returns the detailed profile of a member. custID 0
// means the authenticated member.
func (a *API) MemberProfile(ctx context.Context, custID int) (any, error) {
	q := url.Values{}
	setInt(q, "cust_id", custID)
	return a.get(ctx, "/data/member/profile", q)
}
