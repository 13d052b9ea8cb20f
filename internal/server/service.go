// File: service.go
// Title: Parse Service
// Description: Transport independent parse and tokenize operations, and
//              the smython.v1.Parser gRPC service built on the well-known
//              StringValue and Struct messages.
// Author: msto63
// Version: v0.1.0
// Created: 2025-04-01
// Modified: 2025-04-03
//
// Change History:
// - 2025-04-01 v0.1.0: Initial service
// - 2025-04-02 v0.1.0: gRPC service description
// - 2025-04-03 v0.1.0: Parse result cache

package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	mdwerror "github.com/msto63/smython/foundation/core/error"
	"github.com/msto63/smython/foundation/smython"
	"github.com/msto63/smython/foundation/smython/ast"
	"github.com/msto63/smython/foundation/smython/parser"
	"github.com/msto63/smython/pkg/core/cache"
)

// ParseResult is the outcome of parsing one source text
type ParseResult struct {
	OK      bool   `json:"ok"`
	Dump    string `json:"dump,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Message string `json:"message,omitempty"`
}

// Token is the wire form of a lexical token
type Token struct {
	Kind   string `json:"kind"`
	Text   string `json:"text,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// Service answers parse requests with an engine
type Service struct {
	engine  *smython.Engine
	results *cache.Cache[*ParseResult] // optional, keyed by source hash
}

// NewService creates a service. A non-nil results cache memoizes parse
// results by the SHA-256 of the source.
func NewService(engine *smython.Engine, results *cache.Cache[*ParseResult]) *Service {
	return &Service{engine: engine, results: results}
}

// Parse parses source. Malformed source is a regular result; the error is
// reserved for inputs the engine refuses, such as oversized ones.
func (s *Service) Parse(source string) (*ParseResult, error) {
	if s.results == nil {
		return s.parse(source)
	}
	sum := sha256.Sum256([]byte(source))
	return s.results.GetOrSet(hex.EncodeToString(sum[:]), func() (*ParseResult, error) {
		return s.parse(source)
	})
}

func (s *Service) parse(source string) (*ParseResult, error) {
	suite, err := s.engine.Parse(source)
	if err != nil {
		return syntaxResult(err)
	}
	return &ParseResult{OK: true, Dump: ast.Dump(suite)}, nil
}

// Tokenize lexes source
func (s *Service) Tokenize(source string) ([]Token, *ParseResult, error) {
	toks, err := s.engine.Tokens(source)
	if err != nil {
		res, ferr := syntaxResult(err)
		return nil, res, ferr
	}
	out := make([]Token, len(toks))
	for i, tok := range toks {
		out[i] = Token{Kind: tok.Kind.String(), Text: tok.Text, Line: tok.Pos.Line, Column: tok.Pos.Column}
	}
	return out, &ParseResult{OK: true}, nil
}

func syntaxResult(err error) (*ParseResult, error) {
	se, ok := parser.AsSyntaxError(err)
	if !ok {
		return nil, err
	}
	return &ParseResult{OK: false, Line: se.Pos.Line, Column: se.Pos.Column, Message: se.Msg}, nil
}

// ===============================
// gRPC
// ===============================

const (
	// ParserServiceName is the full gRPC service name
	ParserServiceName = "smython.v1.Parser"
	// ParseMethod is the full method name of Parse
	ParseMethod = "/smython.v1.Parser/Parse"
)

// ParserServer is the server API of smython.v1.Parser
type ParserServer interface {
	Parse(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

// ParserServiceDesc describes smython.v1.Parser for grpc.Server
var ParserServiceDesc = grpc.ServiceDesc{
	ServiceName: ParserServiceName,
	HandlerType: (*ParserServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Parse", Handler: parseHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "smython/v1/parser.proto",
}

// RegisterParserServer registers srv on s
func RegisterParserServer(s grpc.ServiceRegistrar, srv ParserServer) {
	s.RegisterService(&ParserServiceDesc, srv)
}

func parseHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ParserServer).Parse(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ParseMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ParserServer).Parse(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// ParserClient is the client API of smython.v1.Parser
type ParserClient interface {
	Parse(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type parserClient struct {
	cc grpc.ClientConnInterface
}

// NewParserClient creates a client on cc
func NewParserClient(cc grpc.ClientConnInterface) ParserClient {
	return &parserClient{cc: cc}
}

func (c *parserClient) Parse(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ParseMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// grpcParser adapts Service to ParserServer
type grpcParser struct {
	svc *Service
}

// NewParserServer exposes svc as the gRPC parser service
func NewParserServer(svc *Service) ParserServer {
	return &grpcParser{svc: svc}
}

// Parse implements ParserServer
func (g *grpcParser) Parse(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	res, err := g.svc.Parse(in.GetValue())
	if err != nil {
		if mdwerror.HasCode(err, mdwerror.CodeInputTooLarge) {
			return nil, status.Error(codes.ResourceExhausted, err.Error())
		}
		return nil, status.Error(codes.Internal, err.Error())
	}
	return structpb.NewStruct(res.fields())
}

// fields renders the result as Struct fields
func (r *ParseResult) fields() map[string]interface{} {
	if r.OK {
		return map[string]interface{}{"ok": true, "dump": r.Dump}
	}
	return map[string]interface{}{
		"ok":      false,
		"line":    r.Line,
		"column":  r.Column,
		"message": r.Message,
	}
}

// ResultFromStruct decodes a Parse response
func ResultFromStruct(s *structpb.Struct) *ParseResult {
	f := s.GetFields()
	return &ParseResult{
		OK:      f["ok"].GetBoolValue(),
		Dump:    f["dump"].GetStringValue(),
		Line:    int(f["line"].GetNumberValue()),
		Column:  int(f["column"].GetNumberValue()),
		Message: f["message"].GetStringValue(),
	}
}
