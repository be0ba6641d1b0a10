package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gotweet/gotweet/internal/middleware"
	"github.com/gotweet/gotweet/internal/models"
	"github.com/gotweet/gotweet/internal/services"
)

type AuthHandler struct {
	userService    *services.UserService
	sessionService *services.SessionService
	cookieName     string
	cookieMaxAge   int
}

func NewAuthHandler(userService *services.UserService, sessionService *services.SessionService, cookieName string, cookieMaxAge int) *AuthHandler {
	return &AuthHandler{
		userService:    userService,
		sessionService: sessionService,
		cookieName:     cookieName,
		cookieMaxAge:   cookieMaxAge,
	}
}

func (h *AuthHandler) ShowSignup(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusOK, "signup.html", gin.H{
			"errors":   formErrors(err),
			"username": c.PostForm("username"),
			"email":    c.PostForm("email"),
		})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		fieldErrors := map[string]string{}
		switch {
		case errors.Is(err, models.ErrUsernameTaken):
			fieldErrors["username"] = "This username is already taken."
		case errors.Is(err, models.ErrEmailTaken):
			fieldErrors["email"] = "This email is already registered."
		default:
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"message": "Something went wrong."})
			return
		}
		c.HTML(http.StatusOK, "signup.html", gin.H{
			"errors":   fieldErrors,
			"username": req.Username,
			"email":    req.Email,
		})
		return
	}

	h.establishSession(c, user.ID, "")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"next": c.Query("next")})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"error":    "Please enter your username and password.",
			"username": c.PostForm("username"),
			"next":     c.PostForm("next"),
		})
		return
	}

	user, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			c.HTML(http.StatusOK, "login.html", gin.H{
				"error":    "Invalid username or password.",
				"username": req.Username,
				"next":     c.PostForm("next"),
			})
			return
		}
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"message": "Something went wrong."})
		return
	}

	h.establishSession(c, user.ID, c.PostForm("next"))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	if sessionID != "" {
		if err := h.sessionService.Destroy(c.Request.Context(), sessionID); err != nil {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"message": "Something went wrong."})
			return
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) establishSession(c *gin.Context, userID uuid.UUID, next string) {
	token, err := h.sessionService.Create(c.Request.Context(), userID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"message": "Something went wrong."})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, h.cookieMaxAge, "/", "", false, true)

	// Only local paths are honored as a post-login target.
	target := "/"
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		target = next
	}
	c.Redirect(http.StatusFound, target)
}

// formErrors flattens binding failures into per-field messages for template
// rendering.
func formErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = "Invalid form submission."
		return out
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required."
		case "email":
			out[field] = "Enter a valid email address."
		case "min":
			out[field] = fmt.Sprintf("Must be at least %s characters.", fe.Param())
		case "max":
			out[field] = fmt.Sprintf("Must be at most %s characters.", fe.Param())
		default:
			out[field] = "Invalid value."
		}
	}
	return out
}
