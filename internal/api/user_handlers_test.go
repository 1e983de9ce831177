package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCurrentUser(t *testing.T) {
	ts := setupTestServer(t)
	token, userID := ts.registerUser(t, "alice")

	resp := ts.api.Get("/api/v1/users/me", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[ProfileResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, userID, envelope.Data.ID)
	assert.Equal(t, "alice", envelope.Data.Username)
	assert.Equal(t, "alice@example.com", envelope.Data.Email)
	assert.False(t, envelope.Data.IsSubscribed)
}

func TestGetCurrentUser_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/users/me")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestGetUser_SubscribedFlagFollowsViewer(t *testing.T) {
	ts := setupTestServer(t)
	aliceToken, _ := ts.registerUser(t, "alice")
	_, bobID := ts.registerUser(t, "bob")

	resp := ts.api.Post("/api/v1/users/"+bobID+"/subscribe",
		"Authorization: Bearer "+aliceToken)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = ts.api.Get("/api/v1/users/"+bobID, "Authorization: Bearer "+aliceToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ProfileResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data.IsSubscribed)

	// Anonymous viewers never see is_subscribed.
	resp = ts.api.Get("/api/v1/users/" + bobID)
	require.Equal(t, http.StatusOK, resp.Code)

	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.False(t, envelope.Data.IsSubscribed)
}

func TestGetUser_UnknownNotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/users/usr-missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListUsers_Pagination(t *testing.T) {
	ts := setupTestServer(t)
	for _, name := range []string{"alice", "bob", "carol"} {
		ts.registerUser(t, name)
	}

	resp := ts.api.Get("/api/v1/users?page=2&limit=2")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ListUsersResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, 3, envelope.Data.Total)
	require.Len(t, envelope.Data.Users, 1)
	assert.Equal(t, "carol", envelope.Data.Users[0].Username)
}
