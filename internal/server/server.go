// File: server.go
// Title: Parse Server
// Description: Runs the parse service on HTTP (WebSocket endpoint, health
//              and version) and on gRPC until the context ends.
// Author: msto63
// Version: v0.1.0
// Created: 2025-04-02
// Modified: 2025-04-04
//
// Change History:
// - 2025-04-02 v0.1.0: Initial server
// - 2025-04-03 v0.1.0: Result cache and /stats
// - 2025-04-04 v0.1.0: Health report on /healthz

package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	mdwlog "github.com/msto63/smython/foundation/core/log"
	"github.com/msto63/smython/foundation/smython"
	"github.com/msto63/smython/pkg/core/cache"
	"github.com/msto63/smython/pkg/core/health"
	coregrpc "github.com/msto63/smython/pkg/core/grpc"
	"github.com/msto63/smython/pkg/core/version"
)

// Config configures the parse server
type Config struct {
	HTTPAddr    string
	GRPCAddr    string // empty disables gRPC
	ReadTimeout time.Duration
	ResultCache int // cached parse results; 0 disables
	Engine      *smython.Engine
	Logger      *mdwlog.Logger
}

// Server serves parse requests
type Server struct {
	config     Config
	svc        *Service
	results    *cache.Cache[*ParseResult]
	health     *health.Registry
	logger     *mdwlog.Logger
	httpServer *http.Server
	grpcServer *coregrpc.Server
}

// New creates a server
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = mdwlog.GetDefault()
	}
	if cfg.Engine == nil {
		cfg.Engine = smython.Default()
	}
	logger := cfg.Logger.WithField("component", "smython-server")
	var results *cache.Cache[*ParseResult]
	if cfg.ResultCache > 0 {
		ccfg := cache.DefaultConfig()
		ccfg.MaxItems = cfg.ResultCache
		results = cache.New[*ParseResult](ccfg)
	}
	svc := NewService(cfg.Engine, results)

	s := &Server{config: cfg, svc: svc, results: results, logger: logger}
	s.health = health.NewRegistry("smython", version.Version)
	s.health.Register(health.ParserCheck("parser", cfg.Engine))
	s.httpServer = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: cfg.ReadTimeout,
	}

	if cfg.GRPCAddr != "" {
		gcfg := coregrpc.DefaultServerConfig(cfg.GRPCAddr)
		gcfg.Logger = cfg.Logger
		s.grpcServer = coregrpc.NewServer(gcfg)
		RegisterParserServer(s.grpcServer.GRPCServer(), NewParserServer(svc))
		s.grpcServer.SetServing(ParserServiceName, true)
	}
	return s
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", NewWebSocketHandler(s.svc, s.logger))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		report := s.health.Check(r.Context())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(report.HTTPStatus())
		json.NewEncoder(w).Encode(report)
	})
	mux.HandleFunc("GET /version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, version.Get())
	})
	mux.HandleFunc("GET /stats", func(w http.ResponseWriter, r *http.Request) {
		stats := map[string]interface{}{"result_cache": false}
		if s.results != nil {
			st := s.results.Stats()
			stats = map[string]interface{}{
				"result_cache": true,
				"size":         st.Size,
				"hits":         st.Hits,
				"misses":       st.Misses,
				"evicted":      st.Evicted,
				"hit_rate":     st.HitRate(),
			}
		}
		writeJSON(w, stats)
	})
	return loggingMiddleware(s.logger, mux)
}

// Run serves HTTP and gRPC until ctx is done
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.HTTPAddr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", s.config.HTTPAddr)
	}
	if s.grpcServer != nil {
		if err := s.grpcServer.Listen(); err != nil {
			ln.Close()
			return err
		}
	}

	if s.results != nil {
		defer s.results.Close()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("HTTP server started", mdwlog.Fields{"addr": ln.Addr().String()})
		if err := s.httpServer.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})
	if s.grpcServer != nil {
		g.Go(func() error {
			return s.grpcServer.Serve(ctx)
		})
	}
	return g.Wait()
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *mdwlog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		logger.Info("HTTP request", mdwlog.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      wrapper.statusCode,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
}

// responseWrapper captures the status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack lets the WebSocket upgrade take over the connection
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	w.statusCode = http.StatusSwitchingProtocols
	return hj.Hijack()
}

func (w *responseWrapper) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
