// cliclient sends regions to a running server and prints one count per line, in
// argument order. It takes the same six-values-per-region arguments as mandelcount.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	mandel "github.com/victorskl/mandelcount"
	"github.com/victorskl/mandelcount/config"
	"github.com/victorskl/mandelcount/count"
	"github.com/victorskl/mandelcount/remote"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newClientCmd().ExecuteContext(ctx); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func newClientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "cliclient [--addr host:port] real_lower real_upper img_lower img_upper num maxiter [...]",
		Short:              "Count Mandelbrot set members on a remote server",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, positional := config.SplitArgs(cmd.Flags(), args)
			if err := cmd.Flags().Parse(flags); err != nil {
				return err
			}
			if help, _ := cmd.Flags().GetBool("help"); help {
				return cmd.Help()
			}

			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, positional, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolP("help", "h", false, "help for cliclient")
	config.Flags(cmd.Flags())
	cmd.Flags().String("addr", ":8080", "server address or ws:// URL")
	cmd.Flags().String("transport", "ws", "protocol: ws (JSON messages) or irpc")
	return cmd
}

func run(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	regions, err := mandel.ParseRegions(args)
	if err != nil {
		return err
	}

	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, url, err := dial(dialCtx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer client.Close()

	rn := count.Runner{Counter: client}
	if cfg.Verbose {
		rn.Log = log.Default()
		log.Printf("connected to %s, %d regions", url, len(regions))
	}
	return rn.Run(ctx, regions, func(_, n int) error {
		_, err := fmt.Fprintln(out, n)
		return err
	})
}

type counterCloser interface {
	mandel.Counter
	Close() error
}

// dial connects with the configured transport. Only the ws transport can ask the
// server to check regions up front; over irpc a region the server rejects fails
// when its turn comes.
func dial(ctx context.Context, cfg config.Config) (counterCloser, string, error) {
	if cfg.Transport == "irpc" {
		url := remote.URL(cfg.Addr, remote.IrpcPath)
		c, err := remote.DialIrpc(ctx, url)
		return c, url, err
	}
	url := remote.URL(cfg.Addr, remote.Path)
	c, err := remote.Dial(ctx, url)
	return c, url, err
}
