package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gotweet/gotweet/internal/models"
	"github.com/gotweet/gotweet/internal/repository"
	"github.com/gotweet/gotweet/pkg/logger"
)

// FeedService composes read models over the tweet and follow stores. Every
// tweet is globally visible; the home feed does no relationship filtering.
type FeedService struct {
	tweetRepo  *repository.TweetRepository
	followRepo *repository.FollowRepository
	userRepo   *repository.UserRepository
	logger     *logger.Logger
}

func NewFeedService(tweetRepo *repository.TweetRepository, followRepo *repository.FollowRepository, userRepo *repository.UserRepository, logger *logger.Logger) *FeedService {
	return &FeedService{
		tweetRepo:  tweetRepo,
		followRepo: followRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

type ProfileView struct {
	User           *models.User
	Tweets         []*models.Tweet
	FollowingCount int64
	FollowerCount  int64
	IsFollowing    bool
}

func (s *FeedService) HomeTimeline(ctx context.Context) ([]*models.Tweet, error) {
	return s.tweetRepo.ListAll(ctx)
}

// Profile assembles a user's page as seen by viewer: their tweets newest
// first, both edge counts, and whether the viewer already follows them.
func (s *FeedService) Profile(ctx context.Context, username string, viewerID uuid.UUID) (*ProfileView, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, models.ErrUserNotFound
	}

	tweets, err := s.tweetRepo.ListByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	followingCount, err := s.followRepo.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	followerCount, err := s.followRepo.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	isFollowing := false
	if viewerID != user.ID {
		isFollowing, err = s.followRepo.IsFollowing(ctx, viewerID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	return &ProfileView{
		User:           user,
		Tweets:         tweets,
		FollowingCount: followingCount,
		FollowerCount:  followerCount,
		IsFollowing:    isFollowing,
	}, nil
}
