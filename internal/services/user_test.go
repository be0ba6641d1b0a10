package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/gotweet/gotweet/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.registerUser(t, "alice")
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "password123", user.Password, "password must be stored hashed")

	loggedIn, err := env.userService.Login(ctx, &LoginRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestLoginDoesNotDiscloseAccountExistence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerUser(t, "alice")

	_, errWrongPassword := env.userService.Login(ctx, &LoginRequest{Username: "alice", Password: "nope-nope-nope"})
	_, errUnknownUser := env.userService.Login(ctx, &LoginRequest{Username: "mallory", Password: "whatever123"})

	assert.ErrorIs(t, errWrongPassword, models.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownUser, models.ErrInvalidCredentials)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerUser(t, "alice")

	_, err := env.userService.Register(ctx, &RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, models.ErrUsernameTaken)

	_, err = env.userService.Register(ctx, &RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, models.ErrEmailTaken)
}

func TestFollowSelfIsRejectedWithoutStateChange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice")

	_, err := env.userService.Follow(ctx, alice.ID, alice.ID)
	assert.ErrorIs(t, err, models.ErrSelfFollow)

	_, err = env.userService.Unfollow(ctx, alice.ID, alice.ID)
	assert.ErrorIs(t, err, models.ErrSelfFollow)

	var count int64
	require.NoError(t, env.db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestFollowUnknownTarget(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice")

	_, err := env.userService.Follow(ctx, alice.ID, uuid.New())
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestFollowTwiceLeavesOneEdge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")

	created, err := env.userService.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = env.userService.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, created, "second follow is an informational no-op")

	var count int64
	require.NoError(t, env.db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFollowThenUnfollowLeavesNoEdge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")

	_, err := env.userService.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	deleted, err := env.userService.Unfollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Unfollowing again is a no-op, not an error.
	deleted, err = env.userService.Unfollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	var count int64
	require.NoError(t, env.db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestFollowListsAndStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")
	carol := env.registerUser(t, "carol")

	_, err := env.userService.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = env.userService.Follow(ctx, carol.ID, bob.ID)
	require.NoError(t, err)

	following, err := env.userService.ListFollowing(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, bob.ID, following[0].FollowingID)

	followers, err := env.userService.ListFollowers(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, followers, 2)

	isFollowing, err := env.userService.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, isFollowing)
}
