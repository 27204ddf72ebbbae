package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the gin engine with every route registered
func NewRouter(deps Deps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(deps.Logger, deps.Metrics))

	h := &handlers{deps: deps}

	r.GET("/healthz", h.health)
	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	v1 := r.Group("/v1")
	v1.POST("/analyze", h.analyze)
	v1.POST("/claims/check", h.checkClaim)
	v1.POST("/emotion/adjust", h.adjustEmotion)
	v1.GET("/corpus", h.corpus)

	return r
}
