package services

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gotweet/gotweet/internal/models"
	"github.com/gotweet/gotweet/internal/repository"
	"github.com/gotweet/gotweet/pkg/logger"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db           *gorm.DB
	userService  *UserService
	tweetService *TweetService
	feedService  *FeedService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Tweet{},
		&models.TweetLike{},
	))

	log := logger.NewLogger()
	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	tweetRepo := repository.NewTweetRepository(db)

	return &testEnv{
		db:           db,
		userService:  NewUserService(userRepo, followRepo, log),
		tweetService: NewTweetService(tweetRepo, log),
		feedService:  NewFeedService(tweetRepo, followRepo, userRepo, log),
	}
}

func (e *testEnv) registerUser(t *testing.T, username string) *models.User {
	t.Helper()

	user, err := e.userService.Register(context.Background(), &RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}
