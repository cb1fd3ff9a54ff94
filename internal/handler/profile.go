package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-recommendation/internal/config"
	"github.com/iliyamo/movie-recommendation/internal/middleware"
	"github.com/iliyamo/movie-recommendation/internal/model"
	"github.com/iliyamo/movie-recommendation/internal/repository"
	"github.com/iliyamo/movie-recommendation/internal/utils"
)

// ProfileHandler serves the authenticated user's profile.
type ProfileHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewProfileHandler(cfg config.Config, u *repository.UserRepo) *ProfileHandler {
	return &ProfileHandler{Cfg: cfg, Users: u}
}

type profileResp struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Photo   string `json:"photo"`
}

func (h *ProfileHandler) toProfileResp(u model.User) profileResp {
	photo := u.Photo
	if photo != "" && !strings.HasPrefix(photo, "http") {
		photo = h.Cfg.PublicBaseURL + photo
	}
	return profileResp{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: u.Address,
		Photo:   photo,
	}
}

// Get returns the profile of the token's subject.  The session middleware
// does not check record existence, so a token for a deleted user reaches
// this handler and is answered with 404 here.
func (h *ProfileHandler) Get(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		log.Printf("profile: load user %d failed: %v", uid, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not load profile"})
	}
	return c.JSON(http.StatusOK, h.toProfileResp(u))
}

// Update applies an allow-listed profile update.  The body is either JSON
// or a multipart form; a multipart `photo` file part is stored on disk and
// its /uploads path written to the record.  Any field outside the
// allow-list rejects the whole request before anything is applied.
func (h *ProfileHandler) Update(c echo.Context) error {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
	}

	fields, savedPhoto, err := h.updateFields(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	if email, ok := fields["email"]; ok && !emailRe.MatchString(strings.ToLower(strings.TrimSpace(email))) {
		h.discardPhoto(savedPhoto)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid email address"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Update(ctx, uid, fields)
	if err != nil {
		// A photo stored for a rejected update would be orphaned on disk.
		h.discardPhoto(savedPhoto)
		switch {
		case errors.Is(err, repository.ErrInvalidField):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid updates"})
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "email already in use", "field": "email"})
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		log.Printf("profile: update user %d failed: %v", uid, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not update profile"})
	}
	return c.JSON(http.StatusOK, h.toProfileResp(u))
}

// updateFields collects requested field changes from either a JSON body or
// a multipart form.  It returns the raw field map plus the public path of a
// photo stored this request, if any; allow-list enforcement happens in the
// repository so the rule lives in one place.
func (h *ProfileHandler) updateFields(c echo.Context) (map[string]string, string, error) {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	fields := map[string]string{}

	if strings.HasPrefix(ct, echo.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, "", errors.New("invalid form body")
		}
		for k, vals := range form.Value {
			if len(vals) > 0 {
				fields[k] = vals[0]
			}
		}
		var saved string
		if files := form.File["photo"]; len(files) > 0 {
			path, err := utils.SavePhoto(files[0], h.Cfg.UploadDir)
			if err != nil {
				if errors.Is(err, utils.ErrPhotoTooLarge) || errors.Is(err, utils.ErrPhotoType) {
					return nil, "", err
				}
				log.Printf("profile: save photo failed: %v", err)
				return nil, "", errors.New("could not store photo")
			}
			fields["photo"] = path
			saved = path
		}
		return fields, saved, nil
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&raw); err != nil {
		return nil, "", errors.New("invalid body")
	}
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return nil, "", errors.New("fields must be strings")
		}
		fields[k] = s
	}
	return fields, "", nil
}

// discardPhoto removes a photo stored for an update that was later
// rejected, so failed requests do not leak files into the upload dir.
func (h *ProfileHandler) discardPhoto(publicPath string) {
	if publicPath == "" {
		return
	}
	name := filepath.Base(publicPath)
	if err := os.Remove(filepath.Join(h.Cfg.UploadDir, name)); err != nil {
		log.Printf("profile: discard photo %s failed: %v", name, err)
	}
}
