package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (a *API) SystemStats(c *gin.Context) {
	stats, err := a.Stats.Snapshot(c.Request.Context())
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":                  stats.Users,
		"mood_entries":           stats.MoodEntries,
		"meditation_completions": stats.MeditationCompletions,
		"assessment_results":     stats.AssessmentResults,
	})
}
