package requestid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"
)

func TestFromContext(t *testing.T) {
	assert.Empty(t, FromContext(context.Background()))

	ctx := WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", FromContext(ctx))

	md := metadata.Pairs("x-request-id", "from-metadata")
	assert.Equal(t, "from-metadata", FromContext(metadata.NewIncomingContext(context.Background(), md)))

	both := WithRequestID(metadata.NewIncomingContext(context.Background(), md), "explicit")
	assert.Equal(t, "explicit", FromContext(both))
}

func TestNew(t *testing.T) {
	assert.NotEqual(t, New(), New())
	assert.Len(t, New(), 36)
}
