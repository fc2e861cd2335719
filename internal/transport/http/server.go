// Package http exposes the counter relay over HTTP: the WebSocket
// endpoint, the page shell, and a couple of operational routes.
package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vmarkelov/wscount/internal/config"
	"github.com/vmarkelov/wscount/internal/core"
)

// NewServer builds the HTTP server fronting the relay.
func NewServer(relay *core.Relay, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))
	router.SetHTMLTemplate(pageTemplate)

	router.GET("/", pageHandler)
	router.GET("/health", healthHandler)
	router.GET("/stats", statsHandler(relay))

	// The upgrade handshake hijacks the raw connection, which gin's
	// wrapped ResponseWriter does not support; /ws stays on the plain
	// mux and everything else falls through to gin.
	mux := stdhttp.NewServeMux()
	mux.Handle("/ws", NewWSHandler(relay, cfg, logger))
	mux.Handle("/", router)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}

func statsHandler(relay *core.Relay) gin.HandlerFunc {
	return func(c *gin.Context) {
		rooms, clients := relay.Registry().Stats()
		c.JSON(stdhttp.StatusOK, gin.H{"rooms": rooms, "clients": clients})
	}
}

// LoggerMiddleware logs each HTTP request after it completes.
func LoggerMiddleware(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("http request")
	}
}
