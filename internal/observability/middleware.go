package observability

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Context keys a handler may set to enrich the request log line.
const (
	DecodedKey     = "disctl.decoded"
	DecodeErrorKey = "disctl.decode_error"
)

func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = logger.Error()
		case status >= 400:
			event = logger.Warn()
		default:
			event = logger.Debug()
		}

		event = event.
			Str("method", c.Request.Method).
			Str("route", routePath(c)).
			Int("status", status).
			Int64("request_bytes", c.Request.ContentLength).
			Dur("duration", time.Since(start))
		if n, ok := c.Get(DecodedKey); ok {
			event = event.Interface("pdus", n)
		}
		if v, ok := c.Get(DecodeErrorKey); ok {
			if err, isErr := v.(error); isErr {
				event = event.Str("decode_error", DecodeErrorReason(err)).Err(err)
			}
		}
		event.Msg("inspector request")
	}
}

func RequestMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		RecordHTTPRequest(c.Request.Method, routePath(c), c.Writer.Status(), time.Since(start))
	}
}

// routePath uses the matched route template so label cardinality stays bounded.
func routePath(c *gin.Context) string {
	if path := c.FullPath(); path != "" {
		return path
	}
	return "unmatched"
}
