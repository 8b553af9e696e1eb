package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/calmouapp/calmou/internal/models"
)

func meditationView(m *models.Meditation) gin.H {
	return gin.H{
		"id":               m.ID,
		"title":            m.Title,
		"description":      m.Description,
		"duration_minutes": m.DurationMinutes,
		"audio_url":        m.AudioURL,
		"type":             m.Type,
		"category":         m.Category,
		"cover_image":      m.CoverImage,
	}
}

func (a *API) MeditationCatalog(c *gin.Context) {
	items, err := a.Meditations.Catalog(c.Request.Context(), c.Query("category"))
	if err != nil {
		abortError(c, err)
		return
	}

	views := make([]gin.H, 0, len(items))
	for i := range items {
		views = append(views, meditationView(&items[i]))
	}
	c.JSON(http.StatusOK, gin.H{"meditations": views})
}

func (a *API) MeditationFetch(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": "invalid meditation id", "requestID": c.GetString(ctxRequestID),
		})
		return
	}

	m, err := a.Meditations.Get(c.Request.Context(), id)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, meditationView(m))
}

type completionBody struct {
	MeditationID  int64 `json:"meditation_id" binding:"required"`
	ActualMinutes int   `json:"actual_minutes"`
}

func (a *API) MeditationComplete(c *gin.Context) {
	var body completionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body", "requestID": c.GetString(ctxRequestID),
		})
		return
	}

	completion, err := a.Meditations.Complete(c.Request.Context(), &models.MeditationCompletion{
		UserID:        pathUserID(c),
		MeditationID:  body.MeditationID,
		ActualMinutes: body.ActualMinutes,
	})
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":             completion.ID,
		"meditation_id":  completion.MeditationID,
		"actual_minutes": completion.ActualMinutes,
		"completed_at":   completion.CompletedAt,
	})
}

func (a *API) MeditationHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	history, err := a.Meditations.History(c.Request.Context(), pathUserID(c), limit)
	if err != nil {
		abortError(c, err)
		return
	}

	items := make([]gin.H, 0, len(history))
	for _, h := range history {
		items = append(items, gin.H{
			"id":             h.ID,
			"meditation_id":  h.MeditationID,
			"title":          h.Title,
			"category":       h.Category,
			"actual_minutes": h.ActualMinutes,
			"completed_at":   h.CompletedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"history": items})
}

func (a *API) MeditationStats(c *gin.Context) {
	stats, err := a.Meditations.Stats(c.Request.Context(), pathUserID(c))
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_sessions": stats.TotalSessions,
		"total_minutes":  stats.TotalMinutes,
		"categories":     stats.Categories,
	})
}

func (a *API) MeditationHistoryDelete(c *gin.Context) {
	entryID, err := strconv.ParseInt(c.Param("entryID"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": "invalid history entry id", "requestID": c.GetString(ctxRequestID),
		})
		return
	}

	if err := a.Meditations.DeleteHistoryEntry(c.Request.Context(), entryID, pathUserID(c)); err != nil {
		abortError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
