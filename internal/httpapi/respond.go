package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/calmouapp/calmou/internal/common"
	"github.com/calmouapp/calmou/internal/models"
)

// abortError maps service errors onto transport status codes without leaking
// internals.
func abortError(c *gin.Context, err error) {
	requestID := c.GetString(ctxRequestID)

	switch {
	case errors.Is(err, common.ErrNotFound), errors.Is(err, common.ErrAccountNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error": "not found", "requestID": requestID,
		})
	case errors.Is(err, common.ErrInvalidArgument):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": "invalid request", "requestID": requestID,
		})
	case errors.Is(err, common.ErrDuplicateEmail):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error": "email already registered", "requestID": requestID,
		})
	case errors.Is(err, common.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid credentials", "requestID": requestID,
		})
	case errors.Is(err, common.ErrConnectionUnavailable):
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"error": "service temporarily unavailable", "requestID": requestID,
		})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "internal error", "requestID": requestID,
		})
	}
}

// userView is the public shape of an account; the credential record never
// leaves the server.
type userView struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Config    map[string]any `json:"config,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func toUserView(u *models.User) userView {
	return userView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Config:    u.Config,
		CreatedAt: u.CreatedAt,
	}
}

type profileView struct {
	Name        string     `json:"name"`
	CPF         *string    `json:"cpf"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	BloodType   *string    `json:"blood_type"`
	Allergies   *string    `json:"allergies"`
	PhotoRef    *string    `json:"photo_ref"`
}

func toProfileView(u *models.User) profileView {
	return profileView{
		Name:        u.Name,
		CPF:         u.CPF,
		DateOfBirth: u.DateOfBirth,
		BloodType:   u.BloodType,
		Allergies:   u.Allergies,
		PhotoRef:    u.PhotoRef,
	}
}
