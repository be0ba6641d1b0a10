package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gotweet/gotweet/internal/config"
	"github.com/gotweet/gotweet/internal/handlers"
	"github.com/gotweet/gotweet/internal/middleware"
	"github.com/gotweet/gotweet/internal/repository"
	"github.com/gotweet/gotweet/internal/services"
	"github.com/gotweet/gotweet/pkg/cache"
	"github.com/gotweet/gotweet/pkg/logger"
	"gorm.io/gorm"
)

// New wires repositories, services and handlers onto a gin engine. Everything
// except health and the signup/login pages sits behind the session gate.
func New(cfg *config.Config, db *gorm.DB, redisClient *cache.RedisClient, log *logger.Logger, templatesGlob string) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.LoadHTMLGlob(templatesGlob)

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	tweetRepo := repository.NewTweetRepository(db)

	userService := services.NewUserService(userRepo, followRepo, log)
	tweetService := services.NewTweetService(tweetRepo, log)
	feedService := services.NewFeedService(tweetRepo, followRepo, userRepo, log)
	sessionService := services.NewSessionService(redisClient, &cfg.Session, log)

	cookieMaxAge := int(cfg.Session.TTL / time.Second)
	authHandler := handlers.NewAuthHandler(userService, sessionService, cfg.Session.CookieName, cookieMaxAge)
	tweetHandler := handlers.NewTweetHandler(tweetService, feedService, sessionService)
	userHandler := handlers.NewUserHandler(userService, feedService, sessionService)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	engine.GET("/signup", authHandler.ShowSignup)
	engine.POST("/signup", authHandler.Signup)
	engine.GET("/login", authHandler.ShowLogin)
	engine.POST("/login", authHandler.Login)

	protected := engine.Group("")
	protected.Use(middleware.RequireSession(sessionService, cfg.Session.CookieName))
	{
		protected.POST("/logout", authHandler.Logout)

		protected.GET("/", tweetHandler.Home)
		protected.POST("/tweets", tweetHandler.CreateTweet)
		protected.GET("/tweets/:id", tweetHandler.ShowTweet)
		protected.POST("/tweets/:id/delete", tweetHandler.DeleteTweet)

		protected.GET("/users/:username", userHandler.Profile)
		protected.POST("/users/:username/follow", userHandler.FollowUser)
		protected.POST("/users/:username/unfollow", userHandler.UnfollowUser)
		protected.GET("/users/:username/following", userHandler.FollowingList)
		protected.GET("/users/:username/followers", userHandler.FollowersList)
	}

	return engine
}
