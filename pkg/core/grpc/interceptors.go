// File: interceptors.go
// Title: gRPC Interceptors
// Description: Server interceptors for panic recovery, request ids and
//              request logging, and the client side request id
//              propagation.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-28
// Modified: 2025-03-28
//
// Change History:
// - 2025-03-28 v0.1.0: Initial interceptors

package grpc

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	mdwlog "github.com/msto63/smython/foundation/core/log"
)

type contextKey string

const (
	// RequestIDKey stores the request id in a handler context
	RequestIDKey contextKey = "request_id"
	// RequestIDHeader carries the request id in metadata
	RequestIDHeader = "x-request-id"
)

// RecoveryInterceptor turns a handler panic into codes.Internal
func RecoveryInterceptor(logger *mdwlog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithRequestID(GetRequestID(ctx)).Error("gRPC panic recovered", mdwlog.Fields{
					"method": info.FullMethod,
					"panic":  r,
					"stack":  string(debug.Stack()),
				})
				err = status.Errorf(codes.Internal, "internal server error")
			}
		}()
		return handler(ctx, req)
	}
}

// StreamRecoveryInterceptor recovers from panics in streaming handlers
func StreamRecoveryInterceptor(logger *mdwlog.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("gRPC stream panic recovered", mdwlog.Fields{
					"method": info.FullMethod,
					"panic":  r,
					"stack":  string(debug.Stack()),
				})
				err = status.Errorf(codes.Internal, "internal server error")
			}
		}()
		return handler(srv, ss)
	}
}

// LoggingInterceptor logs every unary request with its status
func LoggingInterceptor(logger *mdwlog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		logger.WithRequestID(GetRequestID(ctx)).Info("gRPC request", mdwlog.Fields{
			"method":      info.FullMethod,
			"status":      status.Code(err).String(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return resp, err
	}
}

// StreamLoggingInterceptor logs streaming requests, such as health watches
func StreamLoggingInterceptor(logger *mdwlog.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)

		logger.Info("gRPC stream request", mdwlog.Fields{
			"method":      info.FullMethod,
			"status":      status.Code(err).String(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return err
	}
}

// RequestIDInterceptor stores the caller's request id, or a new one, in
// the handler context and echoes it in the response header
func RequestIDInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		requestID := extractRequestID(ctx)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = WithRequestID(ctx, requestID)
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID))

		return handler(ctx, req)
	}
}

// ClientRequestIDInterceptor propagates the context request id to
// outgoing requests
func ClientRequestIDInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		requestID := GetRequestID(ctx)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = metadata.AppendToOutgoingContext(ctx, RequestIDHeader, requestID)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// GetRequestID returns the request id of ctx, from the context value or
// the incoming metadata
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return extractRequestID(ctx)
}

func extractRequestID(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(RequestIDHeader); len(values) > 0 {
		return values[0]
	}
	return ""
}

// WithRequestID adds a request id to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}
