// Package response writes the JSON envelopes shared by every HTTP handler.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Envelope struct {
	Success    bool   `json:"success"`
	Count      *int   `json:"count,omitempty"`
	Pagination any    `json:"pagination,omitempty"`
	Data       any    `json:"data,omitempty"`
	Error      string `json:"error,omitempty"`
	Message    string `json:"message,omitempty"`
}

func OK(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

func List(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, Envelope{Success: true, Count: &count, Data: data})
}

func Page(c *gin.Context, data any, count int, pagination any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Count: &count, Pagination: pagination, Data: data})
}

// Fail writes the error envelope for err, choosing the status from its kind.
func Fail(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	status := StatusFor(kind)

	message := err.Error()
	if kind == apperror.KindInternal {
		message = "internal server error"
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, Envelope{Success: false, Error: string(kind), Message: message})
}

// ValidationFailed reports a binding error as a 400 naming only the first
// failing field.
func ValidationFailed(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	message := err.Error()
	if errors.As(err, &verrs) && len(verrs) > 0 {
		message = describeFieldError(verrs[0])
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{
		Success: false,
		Error:   "Validation Error",
		Message: message,
	})
}

func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindInvalidReference, apperror.KindSelfParent, apperror.KindBadRequest:
		return http.StatusBadRequest
	case apperror.KindHasDependents, apperror.KindInsufficientInventory, apperror.KindAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func describeFieldError(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "min", "gte":
		return fmt.Sprintf("%q must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%q must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%q failed the %q rule", field, fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
