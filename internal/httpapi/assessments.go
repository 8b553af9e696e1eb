package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/calmouapp/calmou/internal/models"
)

type assessmentBody struct {
	Type       string         `json:"type" binding:"required"`
	Answers    map[string]any `json:"answers" binding:"required"`
	Score      int            `json:"score"`
	ResultText *string        `json:"result_text"`
}

func (a *API) AssessmentSave(c *gin.Context) {
	var body assessmentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body", "requestID": c.GetString(ctxRequestID),
		})
		return
	}

	res, err := a.Assessments.Save(c.Request.Context(), &models.AssessmentResult{
		UserID:     pathUserID(c),
		Type:       body.Type,
		Answers:    body.Answers,
		Score:      body.Score,
		ResultText: body.ResultText,
	})
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":          res.ID,
		"type":        res.Type,
		"score":       res.Score,
		"result_text": res.ResultText,
		"taken_at":    res.TakenAt,
	})
}

func (a *API) AssessmentHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	results, err := a.Assessments.History(c.Request.Context(), pathUserID(c), limit)
	if err != nil {
		abortError(c, err)
		return
	}

	items := make([]gin.H, 0, len(results))
	for _, r := range results {
		items = append(items, gin.H{
			"id":          r.ID,
			"type":        r.Type,
			"answers":     r.Answers,
			"score":       r.Score,
			"result_text": r.ResultText,
			"taken_at":    r.TakenAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"results": items})
}
