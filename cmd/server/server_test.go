package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/victorskl/mandelcount/partition"
)

func TestServerStopsWithContext(t *testing.T) {
	t.Setenv("MANDEL_POLICY", "static")

	ctx, cancel := context.WithCancel(context.Background())
	cmd := newServerCmd()
	cmd.SetArgs([]string{"--addr", "127.0.0.1:0"})

	errc := make(chan error, 1)
	go func() { errc <- cmd.ExecuteContext(ctx) }()
	cancel()

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServerRejectsBadConfig(t *testing.T) {
	t.Setenv("MANDEL_POLICY", "fastest")
	cmd := newServerCmd()
	cmd.SetArgs([]string{})
	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, partition.ErrUnknownPolicy)
}
