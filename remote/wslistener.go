package remote

import (
	"context"
	"net"

	"github.com/coder/websocket"
)

// wsListener implements net.Listener for websockets accepted by an http handler,
// so the irpc server can Serve them like any other connection.
type wsListener struct {
	ch     chan *websocket.Conn
	ctx    context.Context
	cancel context.CancelFunc
	addr   wsAddr
}

func newWSListener(path string) *wsListener {
	ctx, cancel := context.WithCancel(context.Background())
	return &wsListener{
		ch:     make(chan *websocket.Conn),
		ctx:    ctx,
		cancel: cancel,
		addr:   wsAddr{addr: path},
	}
}

// hand queues c for Accept; it fails once the listener is closed.
func (l *wsListener) hand(c *websocket.Conn) error {
	select {
	case l.ch <- c:
		return nil
	case <-l.ctx.Done():
		return net.ErrClosed
	}
}

// Accept returns the next handed websocket as a net.Conn of binary messages.
// The connection lives until the listener is closed or either side closes it.
func (l *wsListener) Accept() (net.Conn, error) {
	select {
	case c := <-l.ch:
		return websocket.NetConn(l.ctx, c, websocket.MessageBinary), nil
	case <-l.ctx.Done():
		return nil, net.ErrClosed
	}
}

func (l *wsListener) Addr() net.Addr {
	return l.addr
}

func (l *wsListener) Close() error {
	l.cancel()
	return nil
}

// wsAddr implements net.Addr
type wsAddr struct {
	addr string
}

func (a wsAddr) Network() string {
	return "ws"
}

func (a wsAddr) String() string {
	return a.addr
}
