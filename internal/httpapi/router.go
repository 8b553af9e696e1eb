// Package httpapi is the HTTP boundary: a gin router plus thin handlers
// that parse requests, call services, and serialize responses. No business
// logic lives here.
package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/calmouapp/calmou/internal/auth"
	"github.com/calmouapp/calmou/internal/config"
	"github.com/calmouapp/calmou/internal/services"
)

// API wires services into HTTP handlers.
type API struct {
	Accounts    *services.AccountService
	Deletion    *services.DeletionService
	Moods       *services.MoodService
	Meditations *services.MeditationService
	Assessments *services.AssessmentService
	Stats       *services.StatsService
	Photos      *services.PhotoService
	Gateway     *auth.Gateway
}

// NewRouter builds the gin engine with logging, CORS, and all routes.
func NewRouter(a *API, cfg *config.Config, log *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		newRequestIDMiddleware(),
		ginzap.GinzapWithConfig(log, &ginzap.Config{
			TimeFormat: time.RFC3339,
			UTC:        true,
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}
				if v := c.GetString(ctxRequestID); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}
				if v, ok := c.Get(ctxUserID); ok {
					fields = append(fields, zap.Int64("user_id", v.(int64)))
				}
				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true

	authn := newAuthMiddleware(a.Gateway)

	api := router.Group("/api")
	{
		api.GET("/health", a.Health)
		api.GET("/stats", a.SystemStats)

		api.POST("/register", a.Register)
		api.POST("/login", a.Login)
		api.POST("/refresh", a.RefreshToken)
	}

	users := api.Group("/users", authn)
	{
		users.GET("", a.UserList)
		users.GET("/:id", ownAccount, a.UserFetch)
		users.PUT("/:id", ownAccount, a.UserUpdate)
		users.DELETE("/:id", ownAccount, a.UserDelete)

		users.GET("/:id/profile", ownAccount, a.ProfileFetch)
		users.PUT("/:id/profile", ownAccount, a.ProfileUpdate)
		users.POST("/:id/photo", ownAccount, a.PhotoUploadURL)
		users.GET("/:id/photo", ownAccount, a.PhotoDownloadURL)

		users.POST("/:id/mood", ownAccount, a.MoodRecord)
		users.GET("/:id/mood", ownAccount, a.MoodHistory)
		users.GET("/:id/mood/report", ownAccount, a.MoodWeeklyReport)

		users.POST("/:id/meditations", ownAccount, a.MeditationComplete)
		users.GET("/:id/meditations", ownAccount, a.MeditationHistory)
		users.GET("/:id/meditations/stats", ownAccount, a.MeditationStats)
		users.DELETE("/:id/meditations/:entryID", ownAccount, a.MeditationHistoryDelete)

		users.POST("/:id/assessments", ownAccount, a.AssessmentSave)
		users.GET("/:id/assessments", ownAccount, a.AssessmentHistory)
	}

	meditations := api.Group("/meditations", authn)
	{
		meditations.GET("", a.MeditationCatalog)
		meditations.GET("/:id", a.MeditationFetch)
	}

	return router
}
