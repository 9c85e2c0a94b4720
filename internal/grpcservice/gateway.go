package grpcservice

import (
	"context"
	"net"
	"net/http"

	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
)

// Gateway routes.
const (
	HistoryPath = "/v1/history"
	ClearPath   = "/v1/history/clear"
	ShowPath    = "/v1/show"
)

// NewGateway returns an HTTP JSON mux that calls srv in-process.
//
//	GET  /v1/history        -> List
//	POST /v1/history/clear  -> Clear
//	POST /v1/show           -> Show
func NewGateway(srv HistoryServer) (*gwruntime.ServeMux, error) {
	mux := gwruntime.NewServeMux(
		gwruntime.WithMarshalerOption(gwruntime.MIMEWildcard, &gwruntime.JSONPb{
			MarshalOptions: protojson.MarshalOptions{
				EmitUnpopulated: true,
			},
			UnmarshalOptions: protojson.UnmarshalOptions{
				DiscardUnknown: true,
			},
		}),
	)

	routes := []struct {
		method, path string
		call         func(context.Context, *emptypb.Empty) (proto.Message, error)
	}{
		{http.MethodGet, HistoryPath, func(ctx context.Context, in *emptypb.Empty) (proto.Message, error) {
			return srv.List(ctx, in)
		}},
		{http.MethodPost, ClearPath, func(ctx context.Context, in *emptypb.Empty) (proto.Message, error) {
			return srv.Clear(ctx, in)
		}},
		{http.MethodPost, ShowPath, func(ctx context.Context, in *emptypb.Empty) (proto.Message, error) {
			return srv.Show(ctx, in)
		}},
	}
	for _, rt := range routes {
		if err := mux.HandlePath(rt.method, rt.path, handle(mux, rt.call)); err != nil {
			return nil, err
		}
	}
	return mux, nil
}

func handle(mux *gwruntime.ServeMux, call func(context.Context, *emptypb.Empty) (proto.Message, error)) gwruntime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		ctx := r.Context()
		_, outbound := gwruntime.MarshalerForRequest(mux, r)
		resp, err := call(ctx, &emptypb.Empty{})
		if err != nil {
			gwruntime.HTTPError(ctx, mux, outbound, w, r, err)
			return
		}
		gwruntime.ForwardResponseMessage(ctx, mux, outbound, w, r, resp)
	}
}

// ServeHTTP runs an HTTP/1.1 server on ln serving the gateway mux.
func ServeHTTP(ln net.Listener, mux *gwruntime.ServeMux) error {
	srv := &http.Server{Handler: mux}
	return srv.Serve(ln)
}
