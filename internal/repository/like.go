package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gotweet/gotweet/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Create inserts the like with the same conflict-backed idempotency as
// follow edges: the unique (tweet, user) index decides, not a pre-check.
func (r *LikeRepository) Create(ctx context.Context, like *models.TweetLike) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tweet_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(like)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create like: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *LikeRepository) Delete(ctx context.Context, tweetID, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("tweet_id = ? AND user_id = ?", tweetID, userID).
		Delete(&models.TweetLike{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete like: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *LikeRepository) CountByTweet(ctx context.Context, tweetID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TweetLike{}).
		Where("tweet_id = ?", tweetID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}
