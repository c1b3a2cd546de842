package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/neurobridge-disguise/internal/platform/ctxutil"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

// RequestLogger writes one line per request after the handler chain has run,
// so the session attached by auth is visible. Ids pass through the logger's
// redactor like every other field.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	log = log.With("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := append(routeFields(c, start), identityFields(c)...)
		switch {
		case status >= 500:
			log.Error("request", fields...)
		case status >= 400:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

func routeFields(c *gin.Context, start time.Time) []interface{} {
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	fields := []interface{}{
		"method", c.Request.Method,
		"route", route,
		"status", c.Writer.Status(),
		"latency_ms", time.Since(start).Milliseconds(),
	}
	if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
		fields = append(fields, "trace_id", td.TraceID, "request_id", td.RequestID)
	}
	return fields
}

func identityFields(c *gin.Context) []interface{} {
	var fields []interface{}
	if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil && rd.UserID != uuid.Nil {
		fields = append(fields, "user_id", rd.UserID.String(), "session_id", rd.SessionID)
	}
	if sess := SessionFrom(c); sess.IsDisguised() {
		fields = append(fields, "disguise_id", sess.User.ID.String(), "context_id", sess.Disguise.ContextID.String())
	}
	return fields
}
