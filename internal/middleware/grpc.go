package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/requestid"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UnaryInterceptor stores the caller's request id on the context, logs the
// call and converts domain errors into gRPC statuses.
func UnaryInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		id := requestid.FromContext(ctx)
		if id == "" {
			id = requestid.New()
		}
		ctx = requestid.WithRequestID(ctx, id)

		start := time.Now()
		resp, err := handler(ctx, req)

		fields := []zap.Field{
			zap.String("request_id", id),
			zap.String("method", info.FullMethod),
			zap.Duration("latency", time.Since(start)),
		}
		if err != nil {
			err = toStatus(err)
			log.Warn("grpc call failed", append(fields, zap.Error(err))...)
			return resp, err
		}
		log.Debug("grpc call handled", fields...)
		return resp, nil
	}
}

// toStatus maps apperror kinds for catalog services registered alongside
// health and reflection. Those two only return plain statuses.
func toStatus(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return status.Error(appErr.GRPCCode(), appErr.Message)
	}
	return status.Error(codes.Internal, "internal error")
}
