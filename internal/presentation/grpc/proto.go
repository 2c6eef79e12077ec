package grpc

// proto.go defines the gRPC server interface derived from
// phishguard/v1/phishguard.proto. This file serves as a stand-in for
// buf-generated code; replace it with the generated import once
// `buf generate` is wired into the build.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// PhishGuardServiceServer is the server API for PhishGuardService.
type PhishGuardServiceServer interface {
	ScoreURL(context.Context, *ScoreURLRequest) (*ScoreResponse, error)
	ScoreEmail(context.Context, *ScoreEmailRequest) (*ScoreResponse, error)
	mustEmbedUnimplementedPhishGuardServiceServer()
}

// UnimplementedPhishGuardServiceServer provides forward-compatible default implementations.
type UnimplementedPhishGuardServiceServer struct{}

func (UnimplementedPhishGuardServiceServer) ScoreURL(context.Context, *ScoreURLRequest) (*ScoreResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ScoreURL not implemented")
}
func (UnimplementedPhishGuardServiceServer) ScoreEmail(context.Context, *ScoreEmailRequest) (*ScoreResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ScoreEmail not implemented")
}
func (UnimplementedPhishGuardServiceServer) mustEmbedUnimplementedPhishGuardServiceServer() {}

// RegisterPhishGuardServiceServer registers the PhishGuardServiceServer with the gRPC server.
func RegisterPhishGuardServiceServer(s *grpclib.Server, srv PhishGuardServiceServer) {
	s.RegisterService(&_PhishGuardService_serviceDesc, srv)
}

var _PhishGuardService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "phishguard.v1.PhishGuardService",
	HandlerType: (*PhishGuardServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "ScoreURL", Handler: _PhishGuardService_ScoreURL_Handler},
		{MethodName: "ScoreEmail", Handler: _PhishGuardService_ScoreEmail_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _PhishGuardService_ScoreURL_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ScoreURLRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(PhishGuardServiceServer).ScoreURL(ctx, req)
}

func _PhishGuardService_ScoreEmail_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ScoreEmailRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(PhishGuardServiceServer).ScoreEmail(ctx, req)
}
