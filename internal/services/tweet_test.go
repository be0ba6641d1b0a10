package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gotweet/gotweet/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTweetValidatesBounds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice")

	_, err := env.tweetService.Create(ctx, alice.ID, &CreateTweetRequest{Content: ""})
	assert.ErrorIs(t, err, models.ErrEmptyContent)

	_, err = env.tweetService.Create(ctx, alice.ID, &CreateTweetRequest{Content: "   "})
	assert.ErrorIs(t, err, models.ErrEmptyContent)

	_, err = env.tweetService.Create(ctx, alice.ID, &CreateTweetRequest{Content: strings.Repeat("x", 151)})
	assert.ErrorIs(t, err, models.ErrContentTooLong)

	_, err = env.tweetService.Create(ctx, alice.ID, &CreateTweetRequest{
		Title:   strings.Repeat("t", 31),
		Content: "hello",
	})
	assert.ErrorIs(t, err, models.ErrTitleTooLong)

	tweet, err := env.tweetService.Create(ctx, alice.ID, &CreateTweetRequest{Content: strings.Repeat("x", 150)})
	require.NoError(t, err)
	assert.Nil(t, tweet.Title)

	tweet, err = env.tweetService.Create(ctx, alice.ID, &CreateTweetRequest{Title: "hi", Content: "hello"})
	require.NoError(t, err)
	require.NotNil(t, tweet.Title)
	assert.Equal(t, "hi", *tweet.Title)
}

func TestNewestTweetListedFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice")

	first, err := env.tweetService.Create(ctx, alice.ID, &CreateTweetRequest{Content: "first"})
	require.NoError(t, err)

	second := &models.Tweet{Content: "second", UserID: alice.ID, CreatedAt: first.CreatedAt.Add(time.Minute)}
	require.NoError(t, env.db.Create(second).Error)

	tweets, err := env.tweetService.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, tweets, 2)
	assert.Equal(t, "second", tweets[0].Content)
	assert.Equal(t, "first", tweets[1].Content)
}

func TestDeleteTweetAuthorization(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")

	tweet, err := env.tweetService.Create(ctx, alice.ID, &CreateTweetRequest{Content: "mine"})
	require.NoError(t, err)

	err = env.tweetService.Delete(ctx, uuid.New(), bob.ID)
	assert.ErrorIs(t, err, models.ErrTweetNotFound)

	err = env.tweetService.Delete(ctx, tweet.ID, bob.ID)
	assert.ErrorIs(t, err, models.ErrNotTweetAuthor)

	err = env.tweetService.Delete(ctx, tweet.ID, alice.ID)
	require.NoError(t, err)

	tweets, err := env.tweetService.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, tweets)
}

func TestGetTweetNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.tweetService.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, models.ErrTweetNotFound)
}
