package grpcservice

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client is the client API for HistoryService.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps an established connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// DialSocket returns a connection to the control service on the instance
// socket at path. No auth: the socket lives in the user's runtime directory.
func DialSocket(path string) (*grpc.ClientConn, error) {
	return grpc.NewClient(
		"unix://"+path,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
}

// List returns the raw history struct.
func (c *Client) List(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ListMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// History lists and decodes the history.
func (c *Client) History(ctx context.Context, opts ...grpc.CallOption) (History, error) {
	st, err := c.List(ctx, opts...)
	if err != nil {
		return History{}, err
	}
	return DecodeHistory(st)
}

// Clear empties the history.
func (c *Client) Clear(ctx context.Context, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, ClearMethod, &emptypb.Empty{}, new(emptypb.Empty), opts...)
}

// Show pops up the menu of the running instance.
func (c *Client) Show(ctx context.Context, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, ShowMethod, &emptypb.Empty{}, new(emptypb.Empty), opts...)
}
