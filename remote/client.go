package remote

import (
	"context"
	"fmt"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/marben/irpc"
	mandel "github.com/victorskl/mandelcount"
	"github.com/victorskl/mandelcount/count"
)

// Client counts regions on a remote Server.
type Client struct {
	conn *websocket.Conn

	mu     sync.Mutex // one request in flight per connection
	nextID uint64
}

// Dial connects to the server at url, e.g. ws://localhost:8080/ws.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket.Dial %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

// Count implements mandel.Counter.
func (c *Client) Count(ctx context.Context, r mandel.Region) (int, error) {
	resp, err := c.Pass(ctx, r)
	if err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// Check asks the server whether it would count r, without counting it.
func (c *Client) Check(ctx context.Context, r mandel.Region) error {
	_, err := c.roundTrip(ctx, Request{Region: r, Check: true})
	return err
}

// Pass sends r to the server and returns the full response.
func (c *Client) Pass(ctx context.Context, r mandel.Region) (Response, error) {
	return c.roundTrip(ctx, Request{Region: r})
}

func (c *Client) roundTrip(ctx context.Context, req Request) (Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	req.ID = c.nextID
	if err := wsjson.Write(ctx, c.conn, req); err != nil {
		return Response{}, fmt.Errorf("send request %d: %w", req.ID, err)
	}

	var resp Response
	if err := wsjson.Read(ctx, c.conn, &resp); err != nil {
		return Response{}, fmt.Errorf("read response %d: %w", req.ID, err)
	}
	if resp.ID != req.ID {
		return Response{}, fmt.Errorf("%w: response id %d for request %d", ErrRemote, resp.ID, req.ID)
	}
	if resp.Code != "" {
		return Response{}, codeError(resp)
	}
	return resp, nil
}

// Close closes the connection with a normal closure.
func (c *Client) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "")
}

var (
	_ mandel.Counter = (*Client)(nil)
	_ count.Checker  = (*Client)(nil)
)

// IrpcClient counts regions on a remote Server over irpc. irpc carries errors
// as plain messages, so failures wrap ErrRemote rather than the sentinels of
// package mandel.
type IrpcClient struct {
	ep      *irpc.Endpoint
	counter *mandel.CounterIrpcClient
}

// DialIrpc connects to the server's irpc endpoint at url, e.g. ws://localhost:8080/irpc.
func DialIrpc(ctx context.Context, url string) (*IrpcClient, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket.Dial %s: %w", url, err)
	}

	// the endpoint owns the connection from here on; Close tears both down
	ep := irpc.NewEndpoint(websocket.NetConn(context.Background(), conn, websocket.MessageBinary))
	counter, err := mandel.NewCounterIrpcClient(ep)
	if err != nil {
		ep.Close()
		return nil, fmt.Errorf("NewCounterIrpcClient: %w", err)
	}
	return &IrpcClient{ep: ep, counter: counter}, nil
}

// Count implements mandel.Counter.
func (c *IrpcClient) Count(ctx context.Context, r mandel.Region) (int, error) {
	n, err := c.counter.Count(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRemote, err)
	}
	return n, nil
}

func (c *IrpcClient) Close() error {
	return c.ep.Close()
}

var _ mandel.Counter = (*IrpcClient)(nil)
