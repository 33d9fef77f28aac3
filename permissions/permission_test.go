package permissions_test

import (
	"net/http"
	"testing"

	"hotelledger/permissions"
	"hotelledger/shared/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_EmbeddedTable(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name    string
		path    string
		method  string
		role    string
		allowed bool
	}{
		{name: "agent creates booking", path: "/v1/booking", method: http.MethodPost, role: constant.RoleAgent, allowed: true},
		{name: "agent records payment", path: "/v1/booking/details/{id}", method: http.MethodPut, role: constant.RoleAgent, allowed: true},
		{name: "agent cannot set expenses", path: "/v1/daily-summary/{date}", method: http.MethodPut, role: constant.RoleAgent, allowed: false},
		{name: "admin sets expenses", path: "/v1/daily-summary/{date}", method: http.MethodPut, role: constant.RoleAdmin, allowed: true},
		{name: "agent cannot release inventory", path: "/v1/bookings/delete", method: http.MethodDelete, role: constant.RoleAgent, allowed: false},
		{name: "admin cannot delete category", path: "/v1/categories/{id}", method: http.MethodDelete, role: constant.RoleAdmin, allowed: false},
		{name: "super admin deletes category", path: "/v1/categories/{id}", method: http.MethodDelete, role: constant.RoleSuperAdmin, allowed: true},
		{name: "admin cannot register hotel", path: "/v1/hotels/", method: http.MethodPost, role: constant.RoleAdmin, allowed: false},
		{name: "admin edits hotel details", path: "/v1/hotels/{id}/details", method: http.MethodPut, role: constant.RoleAdmin, allowed: true},
		{name: "agent cannot edit hotel details", path: "/v1/hotels/{id}/details", method: http.MethodPut, role: constant.RoleAgent, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.path, permission.Path)
			assert.Equal(t, tt.allowed, permission.Allows(tt.role))
		})
	}
}

func TestFindPermissions_UnknownRoute(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	permission := data.FindPermissions("/v1/unknown", http.MethodGet)

	assert.Empty(t, permission.Path)
	assert.True(t, permission.Allows(constant.RoleAgent))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name: "valid",
			data: `{"endpoints":[{"path":"/v1/bookings","method":"GET","permissions":["agent"]}]}`,
		},
		{
			name:    "duplicate route",
			data:    `{"endpoints":[{"path":"/v1/bookings","method":"GET"},{"path":"/v1/bookings","method":"GET"}]}`,
			wantErr: "duplicate permission for GET /v1/bookings",
		},
		{
			name:    "unknown role",
			data:    `{"endpoints":[{"path":"/v1/bookings","method":"GET","permissions":["owner"]}]}`,
			wantErr: `unknown role "owner" on GET /v1/bookings`,
		},
		{
			name:    "malformed",
			data:    `{"endpoints":`,
			wantErr: "failed to decode permissions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := permissions.Parse([]byte(tt.data))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Len(t, data.Endpoints, 1)
		})
	}
}
