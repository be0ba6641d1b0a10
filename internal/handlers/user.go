package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gotweet/gotweet/internal/middleware"
	"github.com/gotweet/gotweet/internal/models"
	"github.com/gotweet/gotweet/internal/services"
)

type UserHandler struct {
	userService    *services.UserService
	feedService    *services.FeedService
	sessionService *services.SessionService
}

func NewUserHandler(userService *services.UserService, feedService *services.FeedService, sessionService *services.SessionService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		feedService:    feedService,
		sessionService: sessionService,
	}
}

func (h *UserHandler) Profile(c *gin.Context) {
	view, err := h.feedService.Profile(c.Request.Context(), c.Param("username"), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			c.HTML(http.StatusNotFound, "error.html", gin.H{"message": "User not found."})
			return
		}
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"message": "Something went wrong."})
		return
	}

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"profile":         view.User,
		"tweets":          view.Tweets,
		"following_count": view.FollowingCount,
		"follower_count":  view.FollowerCount,
		"is_following":    view.IsFollowing,
		"is_self":         view.User.ID == middleware.GetUserID(c),
		"user_id":         middleware.GetUserID(c).String(),
		"flashes":         h.sessionService.PopFlashes(c.Request.Context(), middleware.GetSessionID(c)),
	})
}

// FollowUser resolves the target by username first (404 before any other
// check), rejects self-follow with 400, and treats an existing edge as an
// informational no-op.
func (h *UserHandler) FollowUser(c *gin.Context) {
	target, err := h.userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			c.HTML(http.StatusNotFound, "error.html", gin.H{"message": "User not found."})
			return
		}
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"message": "Something went wrong."})
		return
	}

	sessionID := middleware.GetSessionID(c)
	created, err := h.userService.Follow(c.Request.Context(), middleware.GetUserID(c), target.ID)
	if err != nil {
		if errors.Is(err, models.ErrSelfFollow) {
			c.HTML(http.StatusBadRequest, "error.html", gin.H{"message": "You cannot follow yourself."})
			return
		}
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"message": "Something went wrong."})
		return
	}

	if created {
		h.sessionService.AddFlash(c.Request.Context(), sessionID, services.FlashSuccess, "You are now following "+target.Username+".")
	} else {
		h.sessionService.AddFlash(c.Request.Context(), sessionID, services.FlashInfo, "You are already following "+target.Username+".")
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *UserHandler) UnfollowUser(c *gin.Context) {
	target, err := h.userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			c.HTML(http.StatusNotFound, "error.html", gin.H{"message": "User not found."})
			return
		}
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"message": "Something went wrong."})
		return
	}

	sessionID := middleware.GetSessionID(c)
	deleted, err := h.userService.Unfollow(c.Request.Context(), middleware.GetUserID(c), target.ID)
	if err != nil {
		if errors.Is(err, models.ErrSelfFollow) {
			c.HTML(http.StatusBadRequest, "error.html", gin.H{"message": "You cannot unfollow yourself."})
			return
		}
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"message": "Something went wrong."})
		return
	}

	if deleted {
		h.sessionService.AddFlash(c.Request.Context(), sessionID, services.FlashSuccess, "You unfollowed "+target.Username+".")
	} else {
		h.sessionService.AddFlash(c.Request.Context(), sessionID, services.FlashInfo, "You are not following "+target.Username+".")
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *UserHandler) FollowingList(c *gin.Context) {
	target, err := h.userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			c.HTML(http.StatusNotFound, "error.html", gin.H{"message": "User not found."})
			return
		}
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"message": "Something went wrong."})
		return
	}

	follows, err := h.userService.ListFollowing(c.Request.Context(), target.ID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"message": "Something went wrong."})
		return
	}

	c.HTML(http.StatusOK, "following.html", gin.H{
		"profile": target,
		"follows": follows,
		"user_id": middleware.GetUserID(c).String(),
	})
}

func (h *UserHandler) FollowersList(c *gin.Context) {
	target, err := h.userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			c.HTML(http.StatusNotFound, "error.html", gin.H{"message": "User not found."})
			return
		}
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"message": "Something went wrong."})
		return
	}

	follows, err := h.userService.ListFollowers(c.Request.Context(), target.ID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"message": "Something went wrong."})
		return
	}

	c.HTML(http.StatusOK, "followers.html", gin.H{
		"profile": target,
		"follows": follows,
		"user_id": middleware.GetUserID(c).String(),
	})
}
