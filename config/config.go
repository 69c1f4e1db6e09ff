// Package config loads process-wide settings for the counting commands.
//
// Settings come, in increasing priority, from defaults, a config file
// (mandelcount.yaml/.toml/.json in the working directory, or --config), a .env
// file, MANDEL_* environment variables and command line flags.
// The partition policy and the worker count are deliberately not per-run
// arguments: one process uses one policy for every region it counts.
package config

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/victorskl/mandelcount/count"
	"github.com/victorskl/mandelcount/partition"
)

// EnvPrefix prefixes every environment variable, e.g. MANDEL_POLICY.
const EnvPrefix = "MANDEL"

// Config holds every setting.
type Config struct {
	Policy    string
	Workers   int
	Chunk     int
	MinChunk  int
	Seed      int64 // 0 seeds the random policy from the clock
	MaxPoints int
	Addr      string
	Transport string // ws (JSON messages) or irpc, for remote clients
	Verbose   bool
}

// Transports lists the accepted values of Config.Transport.
var Transports = []string{"ws", "irpc"}

func defaults(v *viper.Viper) {
	v.SetDefault("policy", "dynamic")
	v.SetDefault("workers", runtime.GOMAXPROCS(0))
	v.SetDefault("chunk", 1)
	v.SetDefault("min_chunk", 1)
	v.SetDefault("seed", 0)
	v.SetDefault("max_points", count.DefaultMaxPoints)
	v.SetDefault("addr", ":8080")
	v.SetDefault("transport", "ws")
	v.SetDefault("verbose", false)
}

// Flags registers the flags shared by all commands on fs.
func Flags(fs *pflag.FlagSet) {
	fs.BoolP("verbose", "v", false, "log progress to stderr")
	fs.String("config", "", "config file (default ./mandelcount.{yaml,toml,json} if present)")
}

// Load reads the configuration; fs may be nil. Flags in fs that were set on the
// command line take precedence over every other source.
func Load(fs *pflag.FlagSet) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	defaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("mandelcount")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	c := Config{
		Policy:    strings.ToLower(v.GetString("policy")),
		Workers:   v.GetInt("workers"),
		Chunk:     v.GetInt("chunk"),
		MinChunk:  v.GetInt("min_chunk"),
		Seed:      v.GetInt64("seed"),
		MaxPoints: v.GetInt("max_points"),
		Addr:      v.GetString("addr"),
		Transport: strings.ToLower(v.GetString("transport")),
		Verbose:   v.GetBool("verbose"),
	}
	return c, c.Validate()
}

// Validate checks ranges and the policy name.
func (c Config) Validate() error {
	if !slices.Contains(partition.Names(), c.Policy) {
		return fmt.Errorf("policy: %w: %q (want one of %v)", partition.ErrUnknownPolicy, c.Policy, partition.Names())
	}
	if !slices.Contains(Transports, c.Transport) {
		return fmt.Errorf("transport: unknown %q (want one of %v)", c.Transport, Transports)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers: %d is negative", c.Workers)
	}
	if c.Chunk < 0 || c.MinChunk < 0 {
		return fmt.Errorf("chunk sizes must not be negative (chunk=%d, min_chunk=%d)", c.Chunk, c.MinChunk)
	}
	return nil
}

// PartitionPolicy builds the configured policy.
func (c Config) PartitionPolicy() (partition.Policy, error) {
	o := partition.Options{Chunk: c.Chunk, MinChunk: c.MinChunk}
	if c.Seed != 0 {
		o.Rand = rand.New(rand.NewSource(c.Seed))
	}
	return partition.New(c.Policy, o)
}

// Reducer builds a reducer for the configured policy and pool size.
func (c Config) Reducer() (count.Reducer, error) {
	p, err := c.PartitionPolicy()
	if err != nil {
		return count.Reducer{}, err
	}
	return count.Reducer{Policy: p, Workers: c.Workers, MaxPoints: c.MaxPoints}, nil
}
