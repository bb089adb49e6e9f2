package api

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxBody = 1 << 20 // 1MB

// jsonHeaders sets the content type and basic CORS headers and answers
// preflight requests.
func jsonHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Content-Type", "application/json; charset=utf-8")
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

var gzPool = sync.Pool{New: func() any {
	// JSON payloads are small; favour speed
	w, _ := gzip.NewWriterLevel(io.Discard, gzip.BestSpeed)
	return w
}}

// withGzip compresses the response when the client supports gzip. Bodiless
// responses such as 204 go out uncompressed.
func withGzip() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}
		c.Writer.Header().Add("Vary", "Accept-Encoding")
		gw := &gzipWriter{ResponseWriter: c.Writer}
		c.Writer = gw
		defer gw.release()
		c.Next()
	}
}

type gzipWriter struct {
	gin.ResponseWriter
	writer *gzip.Writer
}

// Write starts the gzip stream on the first non-empty body write.
func (g *gzipWriter) Write(b []byte) (int, error) {
	if g.writer == nil {
		if len(b) == 0 {
			return g.ResponseWriter.Write(b)
		}
		h := g.Header()
		h.Set("Content-Encoding", "gzip")
		h.Del("Content-Length")
		g.writer = gzPool.Get().(*gzip.Writer)
		g.writer.Reset(g.ResponseWriter)
	}
	return g.writer.Write(b)
}

func (g *gzipWriter) WriteString(s string) (int, error) {
	return g.Write([]byte(s))
}

// Unwrap lets http.ResponseController reach the connection.
func (g *gzipWriter) Unwrap() http.ResponseWriter { return g.ResponseWriter }

func (g *gzipWriter) release() {
	if g.writer == nil {
		return
	}
	_ = g.writer.Close()
	g.writer.Reset(io.Discard)
	gzPool.Put(g.writer)
	g.writer = nil
}

// limitBody caps request body size.
func limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil && (c.Request.Method == http.MethodPost || c.Request.Method == http.MethodPut) {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBody)
		}
		c.Next()
	}
}

// requestLog logs one line per request.
func requestLog(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Warn("request", fields...)
		default:
			log.Debug("request", fields...)
		}
	}
}

// recoverPanic answers 500 and logs the panic instead of dropping the connection.
func recoverPanic(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec any) {
		log.Error("handler panic", zap.Any("panic", rec), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}
