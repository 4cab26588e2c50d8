package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"salondesk-backend/internal/domain"
	"salondesk-backend/internal/server/authctx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopedOutletID_UnboundUserUsesQueryParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/customers?outletId=7", nil)

	id, err := scopedOutletID(req)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(7), *id)
}

func TestScopedOutletID_BoundUserPinnedToOutlet(t *testing.T) {
	// A user bound to outlet 3 stays scoped to it even when the request asks
	// for another outlet's data.
	outlet := int64(3)
	req := httptest.NewRequest(http.MethodGet, "/customers?outletId=7", nil)
	ctx := authctx.WithCurrentUser(req.Context(), authctx.CurrentUser{
		ID:       1,
		Role:     domain.RoleStaff,
		OutletID: &outlet,
	})

	id, err := scopedOutletID(req.WithContext(ctx))
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(3), *id)
}

func TestScopedOutletID_NoFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/customers", nil)

	id, err := scopedOutletID(req)
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestScopedOutletID_BadValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/customers?outletId=abc", nil)

	_, err := scopedOutletID(req)
	require.Error(t, err)
}
