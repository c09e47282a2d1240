package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/metrics"
	"github.com/fekuna/omnipos-catalog-service/internal/requestid"
	"github.com/fekuna/omnipos-catalog-service/internal/response"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"

// RequestID reuses an inbound X-Request-ID or mints one, and exposes it on
// the response, the gin context and the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestid.Header)
		if id == "" {
			id = requestid.New()
		}
		c.Set(requestIDKey, id)
		c.Header(requestid.Header, id)
		c.Request = c.Request.WithContext(requestid.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func Logger(log logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			log.Error("request failed", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("request rejected", fields...)
		default:
			log.Info("request handled", fields...)
		}
	}
}

// Recovery turns a panic into a 500 envelope instead of dropping the connection.
func Recovery(log logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					zap.String("request_id", c.GetString(requestIDKey)),
					zap.Any("panic", r),
					zap.Stack("stack"),
				)
				response.Fail(c, fmt.Errorf("panic: %v", r))
			}
		}()
		c.Next()
	}
}

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("X-DNS-Prefetch-Control", "off")
		h.Set("Strict-Transport-Security", "max-age=15552000; includeSubDomains")
		c.Next()
	}
}

func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+requestid.Header)
		h.Set("Access-Control-Expose-Headers", requestid.Header)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Metrics records request counts and latency keyed by the matched route
// template, so path parameters do not explode label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusNotFound, response.Envelope{
			Success: false,
			Error:   "Not Found",
			Message: fmt.Sprintf("route %s %s not found", c.Request.Method, c.Request.URL.Path),
		})
	}
}
