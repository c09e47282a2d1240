package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/requestid"
	"github.com/fekuna/omnipos-catalog-service/internal/response"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, requestid.FromContext(c.Request.Context()))
	})

	w := serve(r, http.MethodGet, "/", nil)
	generated := w.Header().Get(requestid.Header)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	w = serve(r, http.MethodGet, "/", http.Header{requestid.Header: {"given-id"}})
	assert.Equal(t, "given-id", w.Header().Get(requestid.Header))
	assert.Equal(t, "given-id", w.Body.String())
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery(logger.NewNop()))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := serve(r, http.MethodGet, "/boom", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "internal server error", env.Message)
}

func TestSecurityHeadersAndCORS(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders(), CORS())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/", nil)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	r.OPTIONS("/", func(c *gin.Context) { c.Status(http.StatusTeapot) })
	w = serve(r, http.MethodOptions, "/", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestNotFound(t *testing.T) {
	r := gin.New()
	r.NoRoute(NotFound())

	w := serve(r, http.MethodGet, "/nope", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "/nope")
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"), "buckets are per client")

	now = now.Add(time.Second)
	assert.True(t, rl.Allow("a"))

	now = now.Add(visitorTTL + time.Minute)
	rl.Allow("c")
	rl.mu.Lock()
	_, stale := rl.visitors["b"]
	rl.mu.Unlock()
	assert.False(t, stale)
}

func TestRateLimiterMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(NewRateLimiter(0.001, 1).Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", nil).Code)
	w := serve(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestUnaryInterceptor(t *testing.T) {
	intercept := UnaryInterceptor(logger.NewNop())
	info := &grpc.UnaryServerInfo{FullMethod: "/catalog.Test/Call"}
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-request-id", "rid-1"))

	var seen string
	resp, err := intercept(ctx, nil, info, func(ctx context.Context, req any) (any, error) {
		seen = requestid.FromContext(ctx)
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Equal(t, "rid-1", seen)

	_, err = intercept(ctx, nil, info, func(ctx context.Context, req any) (any, error) {
		return nil, apperror.NotFound("product", "p1")
	})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = intercept(ctx, nil, info, func(ctx context.Context, req any) (any, error) {
		return nil, errors.New("boom")
	})
	assert.Equal(t, codes.Internal, status.Code(err))
}
