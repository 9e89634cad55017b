// Command detrand-stream prints the deterministic byte stream for one or more seeds. This is useful
// for pinning golden values and for checking another implementation against this one.
//
// Each seed gets its own bridge and the bytes are drawn through the C callback, in fills of -chunk
// bytes. Since every fill consumes whole 64-bit words, chunk sizes which are not multiples of 8
// change the output.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/getlantern/detrand"
	"github.com/getlantern/detrand/internal/config"
	"github.com/getlantern/detrand/xorshift"
)

type streamConfig struct {
	Seeds  []string `env:"DETRAND_SEED" envSeparator:","`
	Length int      `env:"DETRAND_LENGTH" envDefault:"32"`
	Chunk  int      `env:"DETRAND_CHUNK" envDefault:"0"`
}

func parseSeeds(list []string) ([]xorshift.Seed, error) {
	if len(list) == 0 {
		return []xorshift.Seed{xorshift.DefaultSeed()}, nil
	}
	seeds := make([]xorshift.Seed, 0, len(list))
	for _, s := range list {
		seed, err := xorshift.ParseSeed(s)
		if err != nil {
			return nil, fmt.Errorf("bad seed %q: %w", s, err)
		}
		seeds = append(seeds, seed)
	}
	return seeds, nil
}

// stream draws length bytes from a fresh bridge in fills of chunk bytes. A chunk of 0 means one fill.
func stream(seed xorshift.Seed, length, chunk int) ([]byte, error) {
	rng := detrand.TestRNGFromSeed(seed)
	defer rng.Close()

	if chunk <= 0 {
		chunk = length
	}
	out := make([]byte, length)
	for start := 0; start < length; start += chunk {
		end := start + chunk
		if end > length {
			end = length
		}
		if status := rng.Fill(out[start:end]); status != 0 {
			return nil, fmt.Errorf("rng callback failed with status %d", status)
		}
	}
	return out, nil
}

func run(ctx context.Context, seeds []xorshift.Seed, length, chunk int) ([][]byte, error) {
	results := make([][]byte, len(seeds))
	g, ctx := errgroup.WithContext(ctx)
	for i, seed := range seeds {
		i, seed := i, seed
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := stream(seed, length, chunk)
			if err != nil {
				return fmt.Errorf("seed %v: %w", seed, err)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func main() {
	var cfg streamConfig
	if err := config.ParseEnv(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var (
		seedList = flag.String("seeds", strings.Join(cfg.Seeds, ","), "comma-separated hex seeds (32 digits each); the default seed if empty")
		length   = flag.Int("n", cfg.Length, "number of bytes to print per seed")
		chunk    = flag.Int("chunk", cfg.Chunk, "bytes per fill call; 0 for a single fill")
	)
	flag.Parse()

	if *length < 0 {
		fmt.Fprintln(os.Stderr, "-n must not be negative")
		os.Exit(1)
	}

	var list []string
	if *seedList != "" {
		list = strings.Split(*seedList, ",")
	}
	seeds, err := parseSeeds(list)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	results, err := run(context.Background(), seeds, *length, *chunk)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for i, out := range results {
		fmt.Printf("%v %s\n", seeds[i], hex.EncodeToString(out))
	}
}
