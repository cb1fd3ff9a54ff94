package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-recommendation/internal/config"
	"github.com/iliyamo/movie-recommendation/internal/model"
	"github.com/iliyamo/movie-recommendation/internal/queue"
	"github.com/iliyamo/movie-recommendation/internal/repository"
	queue_publisher "github.com/iliyamo/movie-recommendation/internal/service"
	"github.com/iliyamo/movie-recommendation/internal/utils"
)

// AuthHandler bundles dependencies for the signup and login endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type signupReq struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPart struct {
	ID       uint64 `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"username"`
}
type authResp struct {
	Token string   `json:"token"`
	User  userPart `json:"user"`
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func toUserPart(u model.User) userPart {
	return userPart{ID: u.ID, Email: u.Email, Name: u.Name, Username: u.Username}
}

// Signup: validate, create the credential record and return a token
// immediately.  Creation is atomic from the caller's perspective: any
// failure leaves no partial record behind.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Username == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "all fields are required"})
	}
	if req.Password != req.ConfirmPassword {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "passwords do not match"})
	}
	if len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "password must be at least 8 characters"})
	}
	if n := len(req.Username); n < 3 || n > 50 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "username must be 3-50 characters"})
	}
	if !emailRe.MatchString(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid email address"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Email, req.Username, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "user already exists", "field": "email"})
		}
		log.Printf("signup: create user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not create user"})
	}

	tok, err := utils.NewAuthToken(h.Cfg.JWTSecret, u.ID, h.Cfg.TokenTTLDays)
	if err != nil {
		log.Printf("signup: issue token failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not issue token"})
	}

	publishActivity(queue.UserActivityEvent{Kind: queue.ActivitySignup, UserID: u.ID})

	return c.JSON(http.StatusCreated, authResp{Token: tok.Token, User: toUserPart(u)})
}

// Login: verify credentials and return a fresh token.  The 401 body never
// reveals whether the email or the password was wrong.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
		}
		log.Printf("login: verify failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "login failed"})
	}

	tok, err := utils.NewAuthToken(h.Cfg.JWTSecret, u.ID, h.Cfg.TokenTTLDays)
	if err != nil {
		log.Printf("login: issue token failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not issue token"})
	}

	// Server-side only; the response body stays free of identity detail.
	log.Printf("user logged in: id=%d email=%s", u.ID, u.Email)

	return c.JSON(http.StatusOK, authResp{Token: tok.Token, User: toUserPart(u)})
}

// publishActivity forwards an event to the broker without blocking the
// request.  Publish failures are logged inside the publisher and ignored.
func publishActivity(ev queue.UserActivityEvent) {
	ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishUserActivity(ctx, ev)
	}()
}
