// Package requestid carries the per-request correlation id through contexts
// for both the HTTP and gRPC transports.
package requestid

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"
)

const (
	Header      = "X-Request-ID"
	metadataKey = "x-request-id"
)

type ctxKey struct{}

func New() string {
	return uuid.New().String()
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the id stored by WithRequestID, falling back to
// incoming gRPC metadata. It returns "" when neither is present.
func FromContext(ctx context.Context) string {
	if val, ok := ctx.Value(ctxKey{}).(string); ok {
		return val
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get(metadataKey); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}
