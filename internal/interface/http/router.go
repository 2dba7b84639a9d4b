package http

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/vibe-weather/internal/infra/config"
)

//go:embed static/index.html
var indexHTML []byte

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
	})
	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/clock", handler.Clock)
		api.GET("/clock/stream", handler.ClockStream)
		api.GET("/themes", handler.Themes)
		api.GET("/chat/prompts", handler.QuickPrompts)

		api.POST("/sessions", handler.CreateSession)
		sessions := api.Group("/sessions/:id")
		{
			sessions.GET("", handler.GetSession)
			sessions.DELETE("", handler.CloseSession)
			sessions.POST("/search", handler.Search)
			sessions.POST("/locate", handler.Locate)
			sessions.POST("/theme", handler.CycleTheme)
			sessions.POST("/gravity", handler.ToggleGravity)
			sessions.POST("/panels", handler.SetPanel)
			sessions.POST("/chat", handler.Chat)
			sessions.POST("/parallax", handler.Parallax)
		}
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
