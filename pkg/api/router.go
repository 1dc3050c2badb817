package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"

	"github.com/mediaconnect/doctor-invites/pkg/middleware"
)

// NewRouter builds the gin engine with middleware, templates and routes.
// metrics is mounted on /metrics when non-nil.
func NewRouter(h *Handlers, logger log.Logger, corsOrigins []string, metrics http.Handler) (*gin.Engine, error) {
	tmpl, err := Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(corsOrigins...))
	router.Use(middleware.Language())
	router.SetHTMLTemplate(tmpl)

	router.GET("/health", h.HealthCheck)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}
	h.Register(router)

	return router, nil
}
