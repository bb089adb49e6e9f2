// Package api exposes the quote and portfolio services over HTTP.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"portfolioquotes/internal/logging"
)

// Routes registers handlers on an /api group.
type Routes interface {
	RegisterRoutes(r *gin.RouterGroup)
}

// NewRouter builds the engine: /healthz, /metrics from gatherer (nil skips
// it) and every handler under /api.
func NewRouter(log *zap.Logger, gatherer prometheus.Gatherer, handlers ...Routes) *gin.Engine {
	log = logging.OrNop(log)

	r := gin.New()
	r.Use(recoverPanic(log), requestLog(log), limitBody())

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api", jsonHeaders(), withGzip())
	api.OPTIONS("/*any", func(*gin.Context) {})
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}
	return r
}
