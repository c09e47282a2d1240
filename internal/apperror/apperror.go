// Package apperror defines the failure kinds returned by the catalog core.
// Transports translate a Kind into their own status codes.
package apperror

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
)

type Kind string

const (
	KindNotFound              Kind = "NotFound"
	KindInvalidReference      Kind = "InvalidReference"
	KindSelfParent            Kind = "SelfParent"
	KindHasDependents         Kind = "HasDependents"
	KindInsufficientInventory Kind = "InsufficientInventory"
	KindBadRequest            Kind = "BadRequest"
	KindAlreadyExists         Kind = "AlreadyExists"
	KindInternal              Kind = "Internal"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// GRPCCode maps the kind onto the closest gRPC status code.
func (e *Error) GRPCCode() codes.Code {
	return kindCodes[e.Kind]
}

var kindCodes = map[Kind]codes.Code{
	KindNotFound:              codes.NotFound,
	KindInvalidReference:      codes.InvalidArgument,
	KindSelfParent:            codes.InvalidArgument,
	KindHasDependents:         codes.FailedPrecondition,
	KindInsufficientInventory: codes.FailedPrecondition,
	KindBadRequest:            codes.InvalidArgument,
	KindAlreadyExists:         codes.AlreadyExists,
	KindInternal:              codes.Internal,
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(entity, id string) *Error {
	return New(KindNotFound, "%s %q not found", entity, id)
}

func InvalidReference(field, id string) *Error {
	return New(KindInvalidReference, "%s %q does not reference an existing record", field, id)
}

func AlreadyExists(entity, id string) *Error {
	return New(KindAlreadyExists, "%s %q already exists", entity, id)
}

func BadRequest(format string, args ...any) *Error {
	return New(KindBadRequest, format, args...)
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}
