package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/calmouapp/calmou/internal/models"
)

type moodBody struct {
	Level       int     `json:"level" binding:"required,min=1,max=5"`
	MainFeeling *string `json:"main_feeling"`
	Notes       *string `json:"notes"`
}

func (a *API) MoodRecord(c *gin.Context) {
	var body moodBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body", "requestID": c.GetString(ctxRequestID),
		})
		return
	}

	entry, err := a.Moods.Record(c.Request.Context(), &models.MoodEntry{
		UserID:      pathUserID(c),
		Level:       body.Level,
		MainFeeling: body.MainFeeling,
		Notes:       body.Notes,
	})
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":           entry.ID,
		"level":        entry.Level,
		"main_feeling": entry.MainFeeling,
		"notes":        entry.Notes,
		"recorded_at":  entry.RecordedAt,
	})
}

func (a *API) MoodHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	entries, err := a.Moods.History(c.Request.Context(), pathUserID(c), limit)
	if err != nil {
		abortError(c, err)
		return
	}

	items := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		items = append(items, gin.H{
			"id":           e.ID,
			"level":        e.Level,
			"main_feeling": e.MainFeeling,
			"notes":        e.Notes,
			"recorded_at":  e.RecordedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"entries": items})
}

func (a *API) MoodWeeklyReport(c *gin.Context) {
	report, err := a.Moods.WeeklyReport(c.Request.Context(), pathUserID(c))
	if err != nil {
		abortError(c, err)
		return
	}

	days := make([]gin.H, 0, len(report))
	for _, d := range report {
		days = append(days, gin.H{
			"day":     d.Day.Format("2006-01-02"),
			"average": d.Average,
			"entries": d.Entries,
		})
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}
