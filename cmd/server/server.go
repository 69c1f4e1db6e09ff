// server counts regions for websocket clients. Every pass uses the whole worker
// pool of this process; passes from different clients are served one at a time.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/victorskl/mandelcount/config"
	"github.com/victorskl/mandelcount/remote"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newServerCmd().ExecuteContext(ctx); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func newServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "server",
		Short:             "Serve Mandelbrot region counts over a websocket",
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	config.Flags(cmd.Flags())
	cmd.Flags().String("addr", ":8080", "listen address")
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	rd, err := cfg.Reducer()
	if err != nil {
		return fmt.Errorf("reducer: %w", err)
	}
	log.Printf("policy=%s workers=%d max_points=%d", rd.Policy.Name(), rd.Workers, rd.MaxPoints)
	return remote.NewServer(rd).ListenAndServe(ctx, cfg.Addr)
}
