package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calmouapp/calmou/internal/models"
)

type registerBody struct {
	Name     string         `json:"name" binding:"required"`
	Email    string         `json:"email" binding:"required,email"`
	Password string         `json:"password" binding:"required,min=8"`
	Config   map[string]any `json:"config"`
}

func (a *API) Register(c *gin.Context) {
	var body registerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body", "requestID": c.GetString(ctxRequestID),
		})
		return
	}

	user, pair, err := a.Accounts.Register(c.Request.Context(), models.NewUser{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		Config:   body.Config,
	})
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":          toUserView(user),
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

type loginBody struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *API) Login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body", "requestID": c.GetString(ctxRequestID),
		})
		return
	}

	user, pair, err := a.Accounts.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          toUserView(user),
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

type refreshBody struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (a *API) RefreshToken(c *gin.Context) {
	var body refreshBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body", "requestID": c.GetString(ctxRequestID),
		})
		return
	}

	access, err := a.Accounts.Refresh(c.Request.Context(), body.RefreshToken)
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": access})
}
