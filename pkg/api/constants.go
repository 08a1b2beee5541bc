package api

import "context"

// ConstantsCategories lists the racing categories.
func (a *API) ConstantsCategories(ctx context.Context) (any, error) {
	return a.get(ctx, "/data/constants/categories", nil)
}

// ConstantsDivisions lists the license divisions.
func (a *API) ConstantsDivisions(ctx context.Context) (any, error) {
	return a.get(ctx, "/data/constants/divisions", nil)
}

// ConstantsEventTypes lists the session event types.
func (a *API) ConstantsEventTypes(ctx context.Context) (any, error) {
	return a.get(ctx, "/data/constants/event_types", nil)
}
