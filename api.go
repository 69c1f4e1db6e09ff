package mandel

import (
	"context"
)

//go:generate irpc $GOFILE

// Counter counts the lattice points of a region that belong to the Mandelbrot set.
// It is implemented locally by count.Reducer and over the network by remote.Client
// and the irpc generated CounterIrpcClient.
type Counter interface {
	Count(ctx context.Context, r Region) (int, error)
}
