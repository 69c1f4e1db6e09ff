// Package remote exposes a count.Reducer over a websocket and provides a client
// implementing mandel.Counter on top of it.
//
// Each websocket text message is one JSON Request or Response. A connection
// carries one request at a time; the server answers in order.
package remote

import (
	"errors"
	"fmt"
	"strings"

	mandel "github.com/victorskl/mandelcount"
)

// Path is where the server accepts websocket connections.
const Path = "/ws"

// IrpcPath is where the server accepts irpc connections carried over websocket
// binary messages.
const IrpcPath = "/irpc"

// URL turns a listen address such as ":8080" or "host:8080" into the websocket URL
// of path on a server listening there. Full ws:// and wss:// URLs are returned unchanged.
func URL(addr, path string) string {
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		return addr
	}
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "ws://" + addr + path
}

// Request asks the server to count Region. With Check set the server only reports
// whether it would accept the region and the response carries no count.
type Request struct {
	ID     uint64        `json:"id"`
	Region mandel.Region `json:"region"`
	Check  bool          `json:"check,omitempty"`
}

// Response answers the Request with the same ID. A non-empty Code marks a failure.
type Response struct {
	ID        uint64  `json:"id"`
	Count     int     `json:"count"`
	Policy    string  `json:"policy,omitempty"`
	Workers   int     `json:"workers,omitempty"`
	ElapsedMs float64 `json:"elapsed_ms,omitempty"`
	Imbalance float64 `json:"imbalance,omitempty"`
	Error     string  `json:"error,omitempty"`
	Code      string  `json:"code,omitempty"`
}

// Error codes carried in Response.Code.
const (
	CodeInvalidArgument   = "invalid_argument"
	CodeResourceExhausted = "resource_exhausted"
	CodeInternal          = "internal"
)

// ErrRemote wraps failures the server reported without a more specific code.
var ErrRemote = errors.New("remote count failed")

func errorCode(err error) string {
	switch {
	case errors.Is(err, mandel.ErrInvalidArgument):
		return CodeInvalidArgument
	case errors.Is(err, mandel.ErrResourceExhausted):
		return CodeResourceExhausted
	}
	return CodeInternal
}

// codeError turns a failed Response back into an error matching the server-side sentinel.
func codeError(resp Response) error {
	switch resp.Code {
	case CodeInvalidArgument:
		return fmt.Errorf("%w: %s", mandel.ErrInvalidArgument, resp.Error)
	case CodeResourceExhausted:
		return fmt.Errorf("%w: %s", mandel.ErrResourceExhausted, resp.Error)
	}
	return fmt.Errorf("%w: %s", ErrRemote, resp.Error)
}
