package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gotweet/gotweet/internal/middleware"
	"github.com/gotweet/gotweet/internal/models"
	"github.com/gotweet/gotweet/internal/services"
)

type TweetHandler struct {
	tweetService   *services.TweetService
	feedService    *services.FeedService
	sessionService *services.SessionService
}

func NewTweetHandler(tweetService *services.TweetService, feedService *services.FeedService, sessionService *services.SessionService) *TweetHandler {
	return &TweetHandler{
		tweetService:   tweetService,
		feedService:    feedService,
		sessionService: sessionService,
	}
}

func (h *TweetHandler) Home(c *gin.Context) {
	tweets, err := h.feedService.HomeTimeline(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"message": "Something went wrong."})
		return
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"tweets":  tweets,
		"user_id": middleware.GetUserID(c).String(),
		"flashes": h.sessionService.PopFlashes(c.Request.Context(), middleware.GetSessionID(c)),
	})
}

func (h *TweetHandler) CreateTweet(c *gin.Context) {
	var req services.CreateTweetRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderHomeWithError(c, &req, "Invalid form submission.")
		return
	}

	_, err := h.tweetService.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyContent),
			errors.Is(err, models.ErrContentTooLong),
			errors.Is(err, models.ErrTitleTooLong):
			h.renderHomeWithError(c, &req, err.Error())
		default:
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"message": "Something went wrong."})
		}
		return
	}

	h.sessionService.AddFlash(c.Request.Context(), middleware.GetSessionID(c), services.FlashSuccess, "Tweet posted.")
	c.Redirect(http.StatusFound, "/")
}

func (h *TweetHandler) ShowTweet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"message": "Tweet not found."})
		return
	}

	tweet, err := h.tweetService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrTweetNotFound) {
			c.HTML(http.StatusNotFound, "error.html", gin.H{"message": "Tweet not found."})
			return
		}
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"message": "Something went wrong."})
		return
	}

	c.HTML(http.StatusOK, "tweet.html", gin.H{
		"tweet":   tweet,
		"user_id": middleware.GetUserID(c).String(),
		"flashes": h.sessionService.PopFlashes(c.Request.Context(), middleware.GetSessionID(c)),
	})
}

func (h *TweetHandler) DeleteTweet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"message": "Tweet not found."})
		return
	}

	if err := h.tweetService.Delete(c.Request.Context(), id, middleware.GetUserID(c)); err != nil {
		switch {
		case errors.Is(err, models.ErrTweetNotFound):
			c.HTML(http.StatusNotFound, "error.html", gin.H{"message": "Tweet not found."})
		case errors.Is(err, models.ErrNotTweetAuthor):
			c.HTML(http.StatusForbidden, "error.html", gin.H{"message": "You can only delete your own tweets."})
		default:
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"message": "Something went wrong."})
		}
		return
	}

	h.sessionService.AddFlash(c.Request.Context(), middleware.GetSessionID(c), services.FlashSuccess, "Tweet deleted.")
	c.Redirect(http.StatusFound, "/")
}

// renderHomeWithError re-renders the home page with the rejected form values,
// keeping the 200-with-field-errors contract of the form flow.
func (h *TweetHandler) renderHomeWithError(c *gin.Context, req *services.CreateTweetRequest, message string) {
	tweets, err := h.feedService.HomeTimeline(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"message": "Something went wrong."})
		return
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"tweets":     tweets,
		"user_id":    middleware.GetUserID(c).String(),
		"form_error": message,
		"title":      req.Title,
		"content":    req.Content,
	})
}
