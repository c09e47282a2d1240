package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	router := gin.New()
	router.POST("/", handler)
	req := httptest.NewRequest(http.MethodPost, "/", jsonBody(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestFail_MapsKinds(t *testing.T) {
	tests := []struct {
		err    error
		status int
		kind   string
	}{
		{apperror.NotFound("product", "p1"), http.StatusNotFound, "NotFound"},
		{apperror.New(apperror.KindHasDependents, "busy"), http.StatusConflict, "HasDependents"},
		{apperror.New(apperror.KindInsufficientInventory, "short"), http.StatusConflict, "InsufficientInventory"},
		{apperror.BadRequest("bad"), http.StatusBadRequest, "BadRequest"},
		{apperror.AlreadyExists("category", "c1"), http.StatusConflict, "AlreadyExists"},
		{errors.New("db exploded"), http.StatusInternalServerError, "Internal"},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			w := perform(func(c *gin.Context) { Fail(c, tt.err) }, "")
			assert.Equal(t, tt.status, w.Code)

			env := decode(t, w)
			assert.False(t, env.Success)
			assert.Equal(t, tt.kind, env.Error)
		})
	}
}

func TestFail_HidesInternalMessages(t *testing.T) {
	w := perform(func(c *gin.Context) { Fail(c, errors.New("secret detail")) }, "")
	env := decode(t, w)
	assert.Equal(t, "internal server error", env.Message)
}

func TestValidationFailed_FirstFieldError(t *testing.T) {
	type req struct {
		Name  string  `json:"name" binding:"required,min=3"`
		Price float64 `json:"price" binding:"gte=0"`
	}
	handler := func(c *gin.Context) {
		var r req
		if err := c.ShouldBindJSON(&r); err != nil {
			ValidationFailed(c, err)
			return
		}
		OK(c, http.StatusOK, r)
	}

	w := perform(handler, `{"name":"ab","price":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.Equal(t, "Validation Error", env.Error)
	assert.Equal(t, `"name" must be at least 3`, env.Message)

	w = perform(handler, `{"name":"abc","price":1}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestList_IncludesCount(t *testing.T) {
	w := perform(func(c *gin.Context) { List(c, []string{"a", "b"}, 2) }, "")
	env := decode(t, w)
	require.NotNil(t, env.Count)
	assert.Equal(t, 2, *env.Count)
	assert.True(t, env.Success)
}
