package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/gotweet/gotweet/internal/models"
	"github.com/gotweet/gotweet/internal/repository"
	"github.com/gotweet/gotweet/pkg/logger"
)

type TweetService struct {
	tweetRepo *repository.TweetRepository
	logger    *logger.Logger
}

func NewTweetService(tweetRepo *repository.TweetRepository, logger *logger.Logger) *TweetService {
	return &TweetService{
		tweetRepo: tweetRepo,
		logger:    logger,
	}
}

type CreateTweetRequest struct {
	Title   string `form:"title"`
	Content string `form:"content"`
}

func (s *TweetService) Create(ctx context.Context, userID uuid.UUID, req *CreateTweetRequest) (*models.Tweet, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, models.ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > models.TweetContentMaxLen {
		return nil, models.ErrContentTooLong
	}

	var title *string
	if t := strings.TrimSpace(req.Title); t != "" {
		if utf8.RuneCountInString(t) > models.TweetTitleMaxLen {
			return nil, models.ErrTitleTooLong
		}
		title = &t
	}

	tweet := &models.Tweet{
		Title:   title,
		Content: content,
		UserID:  userID,
	}

	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, fmt.Errorf("failed to create tweet: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"tweet_id": tweet.ID,
		"user_id":  userID,
	}).Info("Tweet created successfully")
	return tweet, nil
}

func (s *TweetService) Get(ctx context.Context, id uuid.UUID) (*models.Tweet, error) {
	tweet, err := s.tweetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get tweet: %w", err)
	}
	if tweet == nil {
		return nil, models.ErrTweetNotFound
	}
	return tweet, nil
}

// Delete removes the tweet when the actor is its author. An unknown tweet and
// a foreign tweet fail with distinct errors so the boundary can render 404 vs
// 403.
func (s *TweetService) Delete(ctx context.Context, tweetID, actorID uuid.UUID) error {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return fmt.Errorf("failed to get tweet: %w", err)
	}
	if tweet == nil {
		return models.ErrTweetNotFound
	}
	if tweet.UserID != actorID {
		return models.ErrNotTweetAuthor
	}

	if err := s.tweetRepo.Delete(ctx, tweetID); err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"tweet_id": tweetID,
		"user_id":  actorID,
	}).Info("Tweet deleted successfully")
	return nil
}

func (s *TweetService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Tweet, error) {
	return s.tweetRepo.ListByUserID(ctx, userID)
}

func (s *TweetService) ListAll(ctx context.Context) ([]*models.Tweet, error) {
	return s.tweetRepo.ListAll(ctx)
}
