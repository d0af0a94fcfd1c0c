package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/markd315/football-vibes-sub000/internal/engine"
	"github.com/markd315/football-vibes-sub000/internal/game"
	"github.com/markd315/football-vibes-sub000/internal/rates"
	"github.com/markd315/football-vibes-sub000/internal/rating"
)

// Client talks to a PlayEngine server.
type Client struct {
	conn *grpc.ClientConn
}

// NewClient connects to addr without transport security. Extra options are
// appended after the credentials.
func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{conn: conn}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) invoke(ctx context.Context, method string, req, out any) error {
	in, err := encode(req)
	if err != nil {
		return err
	}
	resp := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, fullMethod(method), in, resp); err != nil {
		return err
	}
	return decode(resp, out)
}

func (c *Client) ResolvePlay(ctx context.Context, call engine.PlayCall) (engine.PlayResult, error) {
	var res engine.PlayResult
	err := c.invoke(ctx, "ResolvePlay", call, &res)
	return res, err
}

func (c *Client) State(ctx context.Context) (game.State, error) {
	var st game.State
	err := c.invoke(ctx, "GetState", struct{}{}, &st)
	return st, err
}

// CallTimeout charges a timeout to side and returns the new state.
func (c *Client) CallTimeout(ctx context.Context, side game.Side) (game.State, error) {
	var st game.State
	err := c.invoke(ctx, "CallTimeout", sideRequest{Side: string(side)}, &st)
	return st, err
}

func (c *Client) Ratings(ctx context.Context, side game.Side, pt rates.PlayType) ([]rating.Result, error) {
	var msg ratingsMessage
	err := c.invoke(ctx, "Ratings", sideRequest{Side: string(side), PlayType: string(pt)}, &msg)
	return msg.Ratings, err
}
