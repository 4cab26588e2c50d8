package handler

import (
	"net/http"
	"strconv"
	"time"

	"salondesk-backend/internal/server/authctx"
)

const dateLayout = "2006-01-02"

// scopedOutletID resolves the outlet filter for a request. A user bound to an
// outlet is always scoped to it; unbound users (head office) may filter via
// the outletId query parameter.
func scopedOutletID(r *http.Request) (*int64, error) {
	if u := authctx.FromContext(r.Context()); u != nil && u.OutletID != nil {
		return u.OutletID, nil
	}
	v := r.URL.Query().Get("outletId")
	if v == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseDateQuery(r *http.Request, key string) (*time.Time, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
