package services

import (
	"context"
	"testing"

	"github.com/gotweet/gotweet/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileComposesCountsAndFollowStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")
	carol := env.registerUser(t, "carol")

	_, err := env.userService.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = env.userService.Follow(ctx, carol.ID, bob.ID)
	require.NoError(t, err)
	_, err = env.userService.Follow(ctx, bob.ID, carol.ID)
	require.NoError(t, err)

	_, err = env.tweetService.Create(ctx, bob.ID, &CreateTweetRequest{Content: "hello"})
	require.NoError(t, err)

	view, err := env.feedService.Profile(ctx, "bob", alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", view.User.Username)
	require.Len(t, view.Tweets, 1)
	assert.Equal(t, int64(1), view.FollowingCount)
	assert.Equal(t, int64(2), view.FollowerCount)
	assert.True(t, view.IsFollowing)

	// A viewer without an edge sees is_following = false.
	view, err = env.feedService.Profile(ctx, "alice", bob.ID)
	require.NoError(t, err)
	assert.False(t, view.IsFollowing)

	// Own profile never reports self-following.
	view, err = env.feedService.Profile(ctx, "bob", bob.ID)
	require.NoError(t, err)
	assert.False(t, view.IsFollowing)
}

func TestProfileUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	alice := env.registerUser(t, "alice")

	_, err := env.feedService.Profile(context.Background(), "nobody", alice.ID)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestHomeTimelineContainsAllUsersTweets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")

	_, err := env.tweetService.Create(ctx, alice.ID, &CreateTweetRequest{Content: "from alice"})
	require.NoError(t, err)
	_, err = env.tweetService.Create(ctx, bob.ID, &CreateTweetRequest{Content: "from bob"})
	require.NoError(t, err)

	// No follow relationship exists; the home feed is global.
	tweets, err := env.feedService.HomeTimeline(ctx)
	require.NoError(t, err)
	assert.Len(t, tweets, 2)
}
