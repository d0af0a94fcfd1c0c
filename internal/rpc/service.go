// Package rpc exposes a play session over gRPC. Messages are
// google.protobuf.Struct documents carrying the same JSON shapes the HTTP
// API uses, so no generated stubs are needed.
package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/markd315/football-vibes-sub000/internal/engine"
	"github.com/markd315/football-vibes-sub000/internal/game"
	"github.com/markd315/football-vibes-sub000/internal/outcome"
	"github.com/markd315/football-vibes-sub000/internal/rating"
)

const ServiceName = "playengine.v1.PlayEngine"

// PlayEngineServer is the server API for the PlayEngine service.
type PlayEngineServer interface {
	ResolvePlay(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetState(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CallTimeout(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Ratings(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PlayEngineServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("ResolvePlay", PlayEngineServer.ResolvePlay),
		unary("GetState", PlayEngineServer.GetState),
		unary("CallTimeout", PlayEngineServer.CallTimeout),
		unary("Ratings", PlayEngineServer.Ratings),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "playengine/v1/playengine.proto",
}

func fullMethod(name string) string { return "/" + ServiceName + "/" + name }

func unary(name string, call func(PlayEngineServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PlayEngineServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(PlayEngineServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Register attaches srv to gs.
func Register(gs *grpc.Server, srv PlayEngineServer) {
	gs.RegisterService(&ServiceDesc, srv)
}

// Server serves one session.
type Server struct {
	session *engine.Session
	log     *logrus.Entry
}

func NewServer(s *engine.Session, log *logrus.Entry) *Server {
	return &Server{session: s, log: log}
}

type sideRequest struct {
	Side     string `json:"side"`
	PlayType string `json:"play-type,omitempty"`
}

func (s *Server) ResolvePlay(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var call engine.PlayCall
	if err := decode(in, &call); err != nil {
		return nil, err
	}
	res, err := s.session.Resolve(ctx, call)
	if err != nil {
		s.log.WithError(err).WithField("play_type", call.PlayType).Warn("rpc play failed")
		return nil, toStatus(err)
	}
	return encode(res)
}

func (s *Server) GetState(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return encode(s.session.State())
}

func (s *Server) CallTimeout(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req sideRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	side, err := game.ParseSide(req.Side)
	if err != nil {
		return nil, toStatus(err)
	}
	st, err := s.session.CallTimeout(ctx, side)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(st)
}

func (s *Server) Ratings(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req sideRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	side, err := game.ParseSide(req.Side)
	if err != nil {
		return nil, toStatus(err)
	}
	pt, err := game.ParsePlayType(req.PlayType)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(ratingsMessage{Ratings: s.session.Ratings(side, pt)})
}

type ratingsMessage struct {
	Ratings []rating.Result `json:"ratings"`
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, game.ErrUnknownPlayType),
		errors.Is(err, game.ErrUnknownSide),
		errors.Is(err, rating.ErrIllegalAssignment):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, game.ErrNoTimeouts):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, outcome.ErrProfileNotFound),
		errors.Is(err, outcome.ErrInvalidProfile):
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

// encode converts v to a Struct through its JSON form.
func encode(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func decode(in *structpb.Struct, v any) error {
	if in == nil {
		in = &structpb.Struct{}
	}
	b, err := protojson.Marshal(in)
	if err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if err := json.Unmarshal(b, v); err != nil {
		return status.Error(codes.InvalidArgument, fmt.Sprintf("decode request: %v", err))
	}
	return nil
}
