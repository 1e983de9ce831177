package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/savorly/savorly-server/internal/errors"
)

func TestUserGetNotFound(t *testing.T) {
	svcs, _ := setupTestServices(t)

	_, err := svcs.User.Get(context.Background(), "", "user-ghost")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserListPagination(t *testing.T) {
	svcs, _ := setupTestServices(t)
	ctx := context.Background()

	for _, name := range []string{"alice", "bob", "carol"} {
		registerTestUser(t, svcs, name)
	}

	page, err := svcs.User.List(ctx, "", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Len(t, page.Users, 2)

	rest, err := svcs.User.List(ctx, "", 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest.Users, 1)
}

func TestUserListSubscribedFlags(t *testing.T) {
	svcs, _ := setupTestServices(t)
	ctx := context.Background()

	viewer := registerTestUser(t, svcs, "bob")
	followed := registerTestUser(t, svcs, "alice")
	registerTestUser(t, svcs, "carol")

	_, err := svcs.Subscription.Subscribe(ctx, viewer.ID, followed.ID)
	require.NoError(t, err)

	page, err := svcs.User.List(ctx, viewer.ID, 10, 0)
	require.NoError(t, err)

	flags := make(map[string]bool)
	for _, u := range page.Users {
		flags[u.Username] = u.IsSubscribed
	}
	assert.True(t, flags["alice"])
	assert.False(t, flags["carol"])
	// Self-view never shows as subscribed.
	assert.False(t, flags["bob"])
}
