// mandelcount counts, for each region given on the command line, the lattice points that
// belong to the Mandelbrot set, and prints one count per line in argument order.
//
// The partition policy and worker count come from the environment or a config file
// (MANDEL_POLICY, MANDEL_WORKERS, ...), see package config.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	mandel "github.com/victorskl/mandelcount"
	"github.com/victorskl/mandelcount/config"
	"github.com/victorskl/mandelcount/count"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Fatalf("mandelcount: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mandelcount real_lower real_upper img_lower img_upper num maxiter [...]",
		Short: "Count Mandelbrot set members on sampled regions of the complex plane",
		Long: `Each group of six values describes one region: its real and imaginary bounds,
the lattice resolution num (the region is sampled on (num+1)x(num+1) points) and the
iteration budget maxiter. One count is printed per region, in argument order.

Partition policy (static, dynamic, guided, random) and worker count are taken from
MANDEL_POLICY and MANDEL_WORKERS, a .env file or mandelcount.yaml.`,
		Args: cobra.ArbitraryArgs,
		// Coordinates are routinely negative; flags are split out in RunE.
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
	cmd.Flags().BoolP("help", "h", false, "help for mandelcount")
	config.Flags(cmd.Flags())
	cmd.AddCommand(newLandmarksCmd())
	return cmd
}

func run(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	regions, err := mandel.ParseRegions(args)
	if err != nil {
		return err
	}
	rd, err := cfg.Reducer()
	if err != nil {
		return err
	}

	rn := count.Runner{Counter: rd}
	if cfg.Verbose {
		rn.Log = log.Default()
		log.Printf("policy=%s workers=%d regions=%d", cfg.Policy, cfg.Workers, len(regions))
	}
	return rn.Run(ctx, regions, func(_, n int) error {
		_, err := fmt.Fprintln(out, n)
		return err
	})
}

func newLandmarksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "landmarks",
		Short: "Print well-known regions as mandelcount arguments",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			names := make([]string, 0, len(mandel.Landmarks))
			for name := range mandel.Landmarks {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", name, strings.Join(mandel.Landmarks[name].Args(), " "))
			}
		},
	}
}
