package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gotweet/gotweet/internal/models"
	"github.com/gotweet/gotweet/internal/repository"
	"github.com/gotweet/gotweet/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo   *repository.UserRepository
	followRepo *repository.FollowRepository
	logger     *logger.Logger
}

func NewUserService(userRepo *repository.UserRepository, followRepo *repository.FollowRepository, logger *logger.Logger) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
		logger:     logger,
	}
}

type RegisterRequest struct {
	Username string `form:"username" binding:"required,min=3,max=30"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	existingUser, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existingUser != nil {
		return nil, models.ErrUsernameTaken
	}

	existingUser, err = s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existingUser != nil {
		return nil, models.ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.WithField("user_id", user.ID).Info("User registered successfully")
	return user, nil
}

// Login resolves the credentials to a user. The same error is returned for an
// unknown username and a wrong password, so the response never discloses
// whether an account exists.
func (s *UserService) Login(ctx context.Context, req *LoginRequest) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	s.logger.WithField("user_id", user.ID).Info("User logged in successfully")
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

// Follow creates the edge follower -> following. It returns false without
// error when the edge already existed, which callers surface as an
// informational message rather than a failure.
func (s *UserService) Follow(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	if followerID == followingID {
		return false, models.ErrSelfFollow
	}

	target, err := s.userRepo.GetByID(ctx, followingID)
	if err != nil {
		return false, fmt.Errorf("failed to get target user: %w", err)
	}
	if target == nil {
		return false, models.ErrUserNotFound
	}

	follow := &models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	}

	created, err := s.followRepo.Create(ctx, follow)
	if err != nil {
		return false, err
	}
	if created {
		s.logger.WithFields(map[string]interface{}{
			"follower_id":  followerID,
			"following_id": followingID,
		}).Info("User followed successfully")
	}
	return created, nil
}

// Unfollow removes the edge. A missing edge is reported as deleted=false,
// not an error.
func (s *UserService) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	if followerID == followingID {
		return false, models.ErrSelfFollow
	}

	target, err := s.userRepo.GetByID(ctx, followingID)
	if err != nil {
		return false, fmt.Errorf("failed to get target user: %w", err)
	}
	if target == nil {
		return false, models.ErrUserNotFound
	}

	deleted, err := s.followRepo.Delete(ctx, followerID, followingID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.WithFields(map[string]interface{}{
			"follower_id":  followerID,
			"following_id": followingID,
		}).Info("User unfollowed successfully")
	}
	return deleted, nil
}

func (s *UserService) ListFollowing(ctx context.Context, userID uuid.UUID) ([]*models.Follow, error) {
	return s.followRepo.ListFollowing(ctx, userID)
}

func (s *UserService) ListFollowers(ctx context.Context, userID uuid.UUID) ([]*models.Follow, error) {
	return s.followRepo.ListFollowers(ctx, userID)
}

func (s *UserService) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	return s.followRepo.IsFollowing(ctx, followerID, followingID)
}
