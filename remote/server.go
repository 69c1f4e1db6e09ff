package remote

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/marben/irpc"
	mandel "github.com/victorskl/mandelcount"
	"github.com/victorskl/mandelcount/count"
)

// Server answers count requests from any number of websocket clients, speaking
// JSON at Path and irpc at IrpcPath. Passes never overlap: each one already uses
// every worker of the pool.
type Server struct {
	reducer count.Reducer

	// pass is a one-slot semaphore held for the duration of a pass
	pass chan struct{}

	irpcServer   *irpc.Server
	irpcListener *wsListener
	irpcDone     chan struct{}

	clients int
	passes  int
	m       sync.Mutex
}

// NewServer starts serving irpc connections handed over by Handler; Close stops it.
func NewServer(rd count.Reducer) *Server {
	s := &Server{
		reducer:      rd,
		pass:         make(chan struct{}, 1),
		irpcListener: newWSListener(IrpcPath),
		irpcDone:     make(chan struct{}),
	}

	// irpc clients count through the same semaphore and stats as JSON clients
	s.irpcServer = irpc.NewServer(
		irpc.WithServices(mandel.NewCounterIrpcService(s)),
		irpc.WithOnConnect(func(ep *irpc.Endpoint) {
			s.incClients()
			<-ep.Context().Done()
			s.decClients()
		}),
	)
	go func() {
		defer close(s.irpcDone)
		if err := s.irpcServer.Serve(s.irpcListener); err != nil && !errors.Is(err, irpc.ErrServerClosed) {
			log.Printf("irpc server: %v", err)
		}
	}()
	return s
}

// Handler serves the websocket endpoints and a liveness check at /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(Path, s.websocketHandler)
	mux.HandleFunc(IrpcPath, s.irpcHandler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	return mux
}

// HTTPServer wraps Handler in an http.Server listening on addr.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Stats returns the number of connected clients and of passes served so far.
func (s *Server) Stats() (clients, passes int) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.clients, s.passes
}

// Close disconnects irpc clients and stops accepting new ones.
func (s *Server) Close() error {
	err := s.irpcServer.Close()
	s.irpcListener.Close()
	<-s.irpcDone
	return err
}

// Count implements mandel.Counter; it is what irpc clients call.
func (s *Server) Count(ctx context.Context, r mandel.Region) (int, error) {
	p, err := s.run(ctx, r)
	if err != nil {
		return 0, err
	}
	return p.Count, nil
}

func (s *Server) websocketHandler(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	defer c.CloseNow()

	s.incClients()
	defer s.decClients()

	if err := s.serveConn(r.Context(), c); err != nil {
		log.Printf("client %s: %v", r.RemoteAddr, err)
		return
	}
	c.Close(websocket.StatusNormalClosure, "")
}

// irpcHandler passes the accepted websocket to the irpc server through irpcListener.
func (s *Server) irpcHandler(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	if err := s.irpcListener.hand(c); err != nil {
		c.Close(websocket.StatusGoingAway, "server closing")
	}
}

// serveConn answers requests until the client closes the connection.
func (s *Server) serveConn(ctx context.Context, c *websocket.Conn) error {
	for {
		var req Request
		if err := wsjson.Read(ctx, c, &req); err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return nil
			}
			return fmt.Errorf("read request: %w", err)
		}

		resp := s.answer(ctx, req)
		if err := wsjson.Write(ctx, c, resp); err != nil {
			return fmt.Errorf("write response %d: %w", resp.ID, err)
		}
	}
}

func (s *Server) answer(ctx context.Context, req Request) Response {
	resp := Response{ID: req.ID}
	if req.Check {
		if err := s.reducer.Check(req.Region); err != nil {
			resp.Error, resp.Code = err.Error(), errorCode(err)
		}
		return resp
	}

	p, err := s.run(ctx, req.Region)
	if err != nil {
		resp.Error, resp.Code = err.Error(), errorCode(err)
		return resp
	}
	resp.Count = p.Count
	resp.Policy = p.Policy
	resp.Workers = len(p.Workers)
	resp.ElapsedMs = float64(p.Elapsed) / float64(time.Millisecond)
	resp.Imbalance = p.Imbalance()
	return resp
}

// run counts r once the pass semaphore is free.
func (s *Server) run(ctx context.Context, r mandel.Region) (count.Pass, error) {
	if err := s.reducer.Check(r); err != nil {
		return count.Pass{}, err
	}

	select {
	case s.pass <- struct{}{}:
	case <-ctx.Done():
		return count.Pass{}, context.Cause(ctx)
	}
	p, err := s.reducer.Pass(ctx, r)
	<-s.pass
	if err != nil {
		return count.Pass{}, err
	}
	s.passFinished()

	log.Printf("pass %s: count=%d policy=%s elapsed=%s imbalance=%.2f",
		r, p.Count, p.Policy, p.Elapsed, p.Imbalance())
	return p, nil
}

func (s *Server) incClients() {
	s.m.Lock()
	s.clients++
	n := s.clients
	s.m.Unlock()

	log.Printf("clients: %d", n)
}

func (s *Server) decClients() {
	s.m.Lock()
	s.clients--
	n := s.clients
	s.m.Unlock()

	log.Printf("clients: %d", n)
}

func (s *Server) passFinished() {
	s.m.Lock()
	s.passes++
	s.m.Unlock()
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := s.HTTPServer(addr)
	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on ws://%s%s and ws://%s%s", addr, Path, addr, IrpcPath)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.Close()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := s.Close(); err != nil {
		log.Printf("close irpc clients: %v", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

var _ mandel.Counter = (*Server)(nil)
