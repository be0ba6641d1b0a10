package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TweetTitleMaxLen   = 30
	TweetContentMaxLen = 150
)

type Tweet struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Title     *string   `json:"title" gorm:"size:30"`
	Content   string    `json:"content" gorm:"size:150;not null"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	User User `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TweetLike records at most one like per user per tweet, enforced by the
// unique pair index. No routes are bound to it yet; the table exists so the
// schema is ready when the feature lands.
type TweetLike struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	TweetID   uuid.UUID `json:"tweet_id" gorm:"type:uuid;not null;uniqueIndex:idx_tweet_likes_pair"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_tweet_likes_pair"`
	CreatedAt time.Time `json:"created_at"`

	Tweet Tweet `json:"tweet" gorm:"foreignKey:TweetID;constraint:OnDelete:CASCADE"`
	User  User  `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (t *Tweet) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (l *TweetLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (Tweet) TableName() string {
	return "tweets"
}

func (TweetLike) TableName() string {
	return "tweet_likes"
}
