package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/calmouapp/calmou/internal/models"
)

func (a *API) UserList(c *gin.Context) {
	users, err := a.Accounts.List(c.Request.Context())
	if err != nil {
		abortError(c, err)
		return
	}

	views := make([]userView, 0, len(users))
	for i := range users {
		views = append(views, toUserView(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"users": views})
}

func (a *API) UserFetch(c *gin.Context) {
	user, err := a.Accounts.Get(c.Request.Context(), pathUserID(c))
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserView(user))
}

type userUpdateBody struct {
	Name     *string        `json:"name"`
	Email    *string        `json:"email"`
	Password *string        `json:"password"`
	Config   map[string]any `json:"config"`
}

func (a *API) UserUpdate(c *gin.Context) {
	var body userUpdateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body", "requestID": c.GetString(ctxRequestID),
		})
		return
	}

	err := a.Accounts.Update(c.Request.Context(), pathUserID(c), models.UserPatch{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		Config:   body.Config,
	})
	if err != nil {
		abortError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UserDelete removes the account together with its whole data footprint.
func (a *API) UserDelete(c *gin.Context) {
	summary, err := a.Deletion.DeleteAccountCascade(c.Request.Context(), pathUserID(c))
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"removed":                summary.Removed,
		"mood_entries":           summary.MoodEntries,
		"meditation_completions": summary.MeditationCompletions,
		"assessment_results":     summary.AssessmentResults,
	})
}

func (a *API) ProfileFetch(c *gin.Context) {
	user, err := a.Accounts.Get(c.Request.Context(), pathUserID(c))
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileView(user))
}

type profileUpdateBody struct {
	Name        *string    `json:"name"`
	CPF         *string    `json:"cpf"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	BloodType   *string    `json:"blood_type"`
	Allergies   *string    `json:"allergies"`
	PhotoRef    *string    `json:"photo_ref"`
}

func (a *API) ProfileUpdate(c *gin.Context) {
	var body profileUpdateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body", "requestID": c.GetString(ctxRequestID),
		})
		return
	}

	err := a.Accounts.UpdateProfile(c.Request.Context(), pathUserID(c), models.ProfilePatch{
		Name:        body.Name,
		CPF:         body.CPF,
		DateOfBirth: body.DateOfBirth,
		BloodType:   body.BloodType,
		Allergies:   body.Allergies,
		PhotoRef:    body.PhotoRef,
	})
	if err != nil {
		abortError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PhotoUploadURL hands out a presigned PUT url; the client uploads directly
// to object storage and then persists the returned key via ProfileUpdate.
func (a *API) PhotoUploadURL(c *gin.Context) {
	url, key, err := a.Photos.UploadURL(c.Request.Context(), pathUserID(c))
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"upload_url": url, "photo_ref": key})
}

func (a *API) PhotoDownloadURL(c *gin.Context) {
	user, err := a.Accounts.Get(c.Request.Context(), pathUserID(c))
	if err != nil {
		abortError(c, err)
		return
	}
	if user.PhotoRef == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error": "no photo", "requestID": c.GetString(ctxRequestID),
		})
		return
	}

	url, err := a.Photos.DownloadURL(c.Request.Context(), *user.PhotoRef)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"download_url": url})
}
