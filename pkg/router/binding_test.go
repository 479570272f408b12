package router

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_bindQuery(t *testing.T) {
	type request struct {
		GuildID string   `json:"guild_id"`
		Status  string   `json:"status,omitempty"`
		Offset  int      `json:"offset"`
		Limit   int      `json:"limit"`
		All     bool     `json:"all"`
		RoleIDs []string `json:"role_ids"`
	}

	values := url.Values{}
	values.Set("guild_id", "guild1")
	values.Set("status", "available")
	values.Set("limit", "20")
	values.Set("all", "true")
	values.Add("role_ids", "a")
	values.Add("role_ids", "b")

	var req request
	require.NoError(t, bindQuery(values, &req))
	require.Equal(t, "guild1", req.GuildID)
	require.Equal(t, "available", req.Status)
	require.Equal(t, 0, req.Offset)
	require.Equal(t, 20, req.Limit)
	require.True(t, req.All)
	require.Equal(t, []string{"a", "b"}, req.RoleIDs)
}

func Test_bindQuery_InvalidNumber(t *testing.T) {
	type request struct {
		Limit int `json:"limit"`
	}

	values := url.Values{}
	values.Set("limit", "twenty")

	var req request
	require.Error(t, bindQuery(values, &req))
}
