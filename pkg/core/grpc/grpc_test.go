package grpc

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	mdwlog "github.com/msto63/smython/foundation/core/log"
)

// syncBuffer is written by server goroutines and read by the test
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func startServer(t *testing.T, logger *mdwlog.Logger) (*Server, *grpc.ClientConn) {
	t.Helper()
	cfg := DefaultServerConfig("127.0.0.1:0")
	cfg.Logger = logger
	srv := NewServer(cfg)
	require.NoError(t, srv.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	conn, err := Dial(DefaultClientConfig(srv.Address()))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return srv, conn
}

func TestHealthService(t *testing.T) {
	srv, conn := startServer(t, mdwlog.New().WithOutput(io.Discard))
	client := healthpb.NewHealthClient(conn)
	ctx := context.Background()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	srv.SetServing("smython.v1.Parser", false)
	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: "smython.v1.Parser"})
	require.NoError(t, err)
	require.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())

	_, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: "unknown"})
	require.Equal(t, codes.NotFound, status.Code(err))
}

func TestRequestIDRoundTrip(t *testing.T) {
	logs := &syncBuffer{}
	_, conn := startServer(t, mdwlog.New().WithOutput(logs))
	client := healthpb.NewHealthClient(conn)

	var header metadata.MD
	ctx := WithRequestID(context.Background(), "req-42")
	_, err := client.Check(ctx, &healthpb.HealthCheckRequest{}, grpc.Header(&header))
	require.NoError(t, err)
	require.Equal(t, []string{"req-42"}, header.Get(RequestIDHeader))

	header = nil
	_, err = client.Check(context.Background(), &healthpb.HealthCheckRequest{}, grpc.Header(&header))
	require.NoError(t, err)
	require.Len(t, header.Get(RequestIDHeader), 1)
	require.NotEmpty(t, header.Get(RequestIDHeader)[0])

	require.Contains(t, logs.String(), `"request_id":"req-42"`)
	require.Contains(t, logs.String(), `"method":"/grpc.health.v1.Health/Check"`)
}

func TestRecoveryInterceptor(t *testing.T) {
	var logs bytes.Buffer
	interceptor := RecoveryInterceptor(mdwlog.New().WithOutput(&logs))
	info := &grpc.UnaryServerInfo{FullMethod: "/test.Service/Panic"}

	_, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		panic("boom")
	})
	require.Equal(t, codes.Internal, status.Code(err))
	require.Contains(t, logs.String(), "gRPC panic recovered")
	require.Contains(t, logs.String(), `"panic":"boom"`)
}

func TestGetRequestID(t *testing.T) {
	require.Empty(t, GetRequestID(context.Background()))

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, "from-md"))
	require.Equal(t, "from-md", GetRequestID(ctx))
	require.Equal(t, "from-value", GetRequestID(WithRequestID(ctx, "from-value")))
}
