// Package grpcservice implements the HistoryService control API served on
// the instance socket, and a JSON gateway in front of it.
//
// The service uses protobuf well-known types only, so it is registered with a
// hand-written grpc.ServiceDesc instead of generated stubs.
package grpcservice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"go.klb.dev/clipqture/internal/history"
	"go.klb.dev/clipqture/internal/menu"
)

const ServiceName = "clipqture.v1.HistoryService"

// Full method names.
const (
	ListMethod  = "/" + ServiceName + "/List"
	ClearMethod = "/" + ServiceName + "/Clear"
	ShowMethod  = "/" + ServiceName + "/Show"
)

// HistoryServer is the server API for HistoryService.
type HistoryServer interface {
	List(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Clear(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Show(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
}

// Store is the part of history.Store the service needs.
type Store interface {
	Entries() []history.Entry
	Clear()
	Cap() int
}

// EntryView is one history entry as reported over the API.
type EntryView struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// History is the decoded List response.
type History struct {
	MaxItems int         `json:"max_items"`
	Entries  []EntryView `json:"entries"`
}

// Service implements HistoryServer.
type Service struct {
	store Store
	opts  menu.Options
	show  func() // nil = no presenter attached
}

// New returns a Service backed by store. Labels are built with opts; show
// raises one menu trigger and may be nil.
func New(store Store, opts menu.Options, show func()) *Service {
	return &Service{store: store, opts: opts, show: show}
}

// List implements HistoryService.List.
func (s *Service) List(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	entries := s.store.Entries()
	views := make([]any, len(entries))
	for i, e := range entries {
		views[i] = map[string]any{
			"text":  e.Text,
			"label": menu.Label(e.Text, s.opts),
			"icon":  history.Describe(e.Icon),
		}
	}
	st, err := structpb.NewStruct(map[string]any{
		"max_items": s.store.Cap(),
		"entries":   views,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode history: %v", err)
	}
	return st, nil
}

// Clear implements HistoryService.Clear.
func (s *Service) Clear(_ context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	s.store.Clear()
	slog.Debug("history cleared via rpc")
	return &emptypb.Empty{}, nil
}

// Show implements HistoryService.Show.
func (s *Service) Show(_ context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	if s.show == nil {
		return nil, status.Error(codes.Unavailable, "no menu presenter attached")
	}
	s.show()
	return &emptypb.Empty{}, nil
}

// DecodeHistory converts a List response into a History.
func DecodeHistory(st *structpb.Struct) (History, error) {
	var h History
	b, err := protojson.Marshal(st)
	if err != nil {
		return h, fmt.Errorf("decode history: %w", err)
	}
	if err := json.Unmarshal(b, &h); err != nil {
		return h, fmt.Errorf("decode history: %w", err)
	}
	return h, nil
}

// ── registration ──────────────────────────────────────────────────────────

// ServiceDesc describes HistoryService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*HistoryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "List", Handler: unary(ListMethod, func(s HistoryServer, ctx context.Context, in *emptypb.Empty) (proto.Message, error) {
			return s.List(ctx, in)
		})},
		{MethodName: "Clear", Handler: unary(ClearMethod, func(s HistoryServer, ctx context.Context, in *emptypb.Empty) (proto.Message, error) {
			return s.Clear(ctx, in)
		})},
		{MethodName: "Show", Handler: unary(ShowMethod, func(s HistoryServer, ctx context.Context, in *emptypb.Empty) (proto.Message, error) {
			return s.Show(ctx, in)
		})},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "clipqture/v1/history.proto",
}

// Register adds srv to a gRPC server.
func Register(r grpc.ServiceRegistrar, srv HistoryServer) {
	r.RegisterService(&ServiceDesc, srv)
}

type unaryCall func(HistoryServer, context.Context, *emptypb.Empty) (proto.Message, error)

func unary(fullMethod string, call unaryCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(emptypb.Empty)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(HistoryServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(HistoryServer), ctx, req.(*emptypb.Empty))
		}
		return interceptor(ctx, in, info, handler)
	}
}
