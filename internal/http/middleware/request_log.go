package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/addressbook-backend/internal/platform/ctxutil"
	"github.com/yungbote/addressbook-backend/internal/platform/logger"
)

// RequestLogger writes one access line per request. Health probes go to debug.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		began := time.Now()
		c.Next()
		if log == nil {
			return
		}

		route := routeLabel(c)
		kv := accessFields(c, route, time.Since(began))
		status := c.Writer.Status()
		switch {
		case status >= 500:
			log.Error("request failed", kv...)
		case status >= 400:
			log.Warn("request rejected", kv...)
		case route == "/healthcheck":
			log.Debug("request served", kv...)
		default:
			log.Info("request served", kv...)
		}
	}
}

func accessFields(c *gin.Context, route string, took time.Duration) []interface{} {
	kv := []interface{}{
		"method", c.Request.Method,
		"route", route,
		"status", c.Writer.Status(),
		"bytes", c.Writer.Size(),
		"duration_ms", took.Milliseconds(),
		"remote_addr", c.ClientIP(),
	}
	if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
		kv = appendNonEmpty(kv, "trace_id", td.TraceID)
		kv = appendNonEmpty(kv, "request_id", td.RequestID)
	}
	if route == unmatchedRoute {
		kv = append(kv, "path", c.Request.URL.Path)
	}
	if len(c.Errors) > 0 {
		kv = append(kv, "error", c.Errors.String())
	}
	return kv
}

func appendNonEmpty(kv []interface{}, key, val string) []interface{} {
	if val == "" {
		return kv
	}
	return append(kv, key, val)
}
