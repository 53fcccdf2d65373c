package http

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/VideoCall/internal/adapters/events"
	"github.com/dkeye/VideoCall/internal/app"
	"github.com/dkeye/VideoCall/internal/app/orch"
	"github.com/dkeye/VideoCall/internal/config"
)

const (
	clientTokenKey = "client_token"

	startLimit    = 10
	startInterval = time.Minute
)

func genClientToken() string {
	return uuid.NewString()
}

// ClientTokenMiddleware gives every browser a stable token kept in the
// signed session cookie.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Default(c)
		token, _ := s.Get(clientTokenKey).(string)
		if token == "" {
			token = genClientToken()
			s.Set(clientTokenKey, token)
			if err := s.Save(); err != nil {
				log.Error().Err(err).Str("module", "adapters.http").Msg("session save")
			}
		}
		c.Set(clientTokenKey, token)
		c.Next()
	}
}

// Deps are the components the API drives. Prompts is nil when prompts are
// auto-answered.
type Deps struct {
	Sessions *orch.Manager
	Gate     *app.PermissionGate
	Prompts  *UIPrompter
	Events   *events.Hub
}

func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{Path: "/", MaxAge: 3600 * 24 * 7, HttpOnly: true})
	r.Use(sessions.Sessions("VideoCallSessions", store))
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	h := &handlers{deps: deps}
	api := r.Group("/api")

	limiter := NewStartLimiter(startLimit, startInterval)
	api.POST("/session", limiter.Middleware(), h.startSession)
	api.GET("/session", h.getSession)
	api.DELETE("/session", h.endSession)
	api.POST("/session/video/toggle", h.toggleVideo)
	api.POST("/session/audio/toggle", h.toggleAudio)
	api.POST("/session/camera/switch", h.switchCamera)

	api.GET("/permissions", h.getPermissions)
	api.POST("/permissions/:capability", h.answerPermission)

	if deps.Events != nil {
		api.GET("/ws/events", deps.Events.ServeWS)
	}

	return r
}
