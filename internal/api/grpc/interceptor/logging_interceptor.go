package interceptor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"rentaldesk-backend/internal/logger"
)

// requestID reuses the caller's x-request-id metadata or mints one.
func requestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get("x-request-id"); len(ids) > 0 && ids[0] != "" {
			return ids[0]
		}
	}
	return uuid.NewString()
}

// UnaryLogging tags the context with a request id and logs every call with
// its status code and duration.
func UnaryLogging() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		ctx = logger.WithRequestID(ctx, requestID(ctx))
		start := time.Now()
		resp, err := handler(ctx, req)
		logCall(ctx, info.FullMethod, err, time.Since(start))
		return resp, err
	}
}

func StreamLogging() grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx := logger.WithRequestID(ss.Context(), requestID(ss.Context()))
		start := time.Now()
		err := handler(srv, &contextStream{ServerStream: ss, ctx: ctx})
		logCall(ctx, info.FullMethod, err, time.Since(start))
		return err
	}
}

func logCall(ctx context.Context, method string, err error, elapsed time.Duration) {
	code := status.Code(err)
	args := []any{"method", method, "code", code.String(), "duration_ms", elapsed.Milliseconds()}
	if err != nil {
		logger.WarnContext(ctx, "gRPC call failed", append(args, "error", err)...)
		return
	}
	logger.InfoContext(ctx, "gRPC call", args...)
}
