// Command detrand-corpus writes a corpus of ClientHellos based on those sent by popular web browsers.
// Each hello draws all of its randomness from a fresh deterministic bridge, so running the command
// twice with the same seed produces identical files.
//
// Output files contain full TLS records (header included), one per fingerprint, named after the
// fingerprint. A README.md describing how the corpus was generated is written alongside.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/getlantern/golog"
	utls "github.com/refraction-networking/utls"

	"github.com/getlantern/detrand"
	"github.com/getlantern/detrand/hello"
	"github.com/getlantern/detrand/internal/config"
	"github.com/getlantern/detrand/xorshift"
)

var log = golog.LoggerFor("detrand.corpus")

type corpusConfig struct {
	Seed       string `env:"DETRAND_SEED"`
	OutputDir  string `env:"DETRAND_OUTPUT_DIR" envDefault:"corpus"`
	ServerName string `env:"DETRAND_SERVER_NAME" envDefault:"example.com"`
}

func writeCorpus(dirpath, serverName string, seed xorshift.Seed) ([]string, error) {
	if err := os.MkdirAll(dirpath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	for _, id := range hello.Fingerprints {
		record, err := buildHello(seed, serverName, id)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dirpath, id.Str())
		if err := os.WriteFile(path, record, 0644); err != nil {
			return nil, fmt.Errorf("failed to write file for %s: %w", id.Str(), err)
		}
		log.Debugf("wrote %d bytes to %s", len(record), path)
		written = append(written, path)
	}
	if err := writeGenerationReport(dirpath, serverName, seed); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	return written, nil
}

// buildHello draws the hello from its own bridge so each file starts at the beginning of the stream.
func buildHello(seed xorshift.Seed, serverName string, id utls.ClientHelloID) ([]byte, error) {
	rng := detrand.TestRNGFromSeed(seed)
	defer rng.Close()

	record, err := hello.Build(rng, id, serverName)
	if err != nil {
		return nil, fmt.Errorf("failed to build hello: %w", err)
	}
	return record, nil
}

func writeGenerationReport(dirpath, serverName string, seed xorshift.Seed) error {
	var sb strings.Builder
	sb.WriteString("This corpus was generated under:\n\n")
	sb.WriteString(fmt.Sprintf("- Date: %v\n", time.Now().Format(time.UnixDate)))
	sb.WriteString(fmt.Sprintf("- Seed: %v\n", seed))
	sb.WriteString(fmt.Sprintf("- Seed words: %08x\n", seed.Words()))
	sb.WriteString(fmt.Sprintf("- utls.Config: %v\n", spew.Sdump(hello.Config(nil, serverName))))
	return os.WriteFile(filepath.Join(dirpath, "README.md"), []byte(sb.String()), 0644)
}

func main() {
	var cfg corpusConfig
	if err := config.ParseEnv(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var (
		outputDir  = flag.String("output-dir", cfg.OutputDir, "the output directory for the corpus")
		serverName = flag.String("sni", cfg.ServerName, "server name indicator sent in each hello")
		seedHex    = flag.String("seed", cfg.Seed, "hex seed (32 digits); the default seed if empty")
	)
	flag.Parse()

	seed := xorshift.DefaultSeed()
	if *seedHex != "" {
		var err error
		if seed, err = xorshift.ParseSeed(*seedHex); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	written, err := writeCorpus(*outputDir, *serverName, seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d hellos to %s\n", len(written), *outputDir)
}
