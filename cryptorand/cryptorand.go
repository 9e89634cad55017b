// Package cryptorand adapts a deterministic byte stream to the randomness hooks of Go's crypto
// packages, such as tls.Config.Rand, so that their output is reproducible in tests.
package cryptorand

import (
	"crypto/ed25519"
	"fmt"
	"io"
	"runtime"
)

// The standard library reads one byte from the randomness source at random, from this function.
const maybeReadByteFunc = "crypto/internal/randutil.MaybeReadByte"

// Reader wraps a deterministic source for use as a crypto randomness hook (e.g.
// [tls.Config.Rand](https://pkg.go.dev/crypto/tls#Config)). Reads are always filled completely.
type Reader struct {
	src io.Reader

	// Fully qualified name of the function whose single byte reads are not served by src.
	coinFlip string
}

// NewReader wraps src, which is typically a *rngcb.Bridge or *xorshift.Rng.
func NewReader(src io.Reader) Reader {
	return Reader{src, maybeReadByteFunc}
}

func (r Reader) Read(buf []byte) (int, error) {
	// randutil.MaybeReadByte consumes a byte only half the time. It gets a zero byte here and the
	// source does not advance either way.
	if len(buf) == 1 && r.calledFrom(r.coinFlip) {
		buf[0] = 0
		return 1, nil
	}
	return io.ReadFull(r.src, buf)
}

// calledFrom reports whether the function named fn is on the caller's stack.
func (r Reader) calledFrom(fn string) bool {
	pcs := make([]uintptr, 32)
	// Skip runtime.Callers, calledFrom and Read.
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.Function == fn {
			return true
		}
		if !more {
			return false
		}
	}
}

// Ed25519Key derives an ed25519 private key from the next ed25519.SeedSize bytes of r.
func Ed25519Key(r io.Reader) (ed25519.PrivateKey, error) {
	seed := make([]byte, ed25519.SeedSize)
	if _, err := io.ReadFull(r, seed); err != nil {
		return nil, fmt.Errorf("failed to read key seed: %w", err)
	}
	return ed25519.NewKeyFromSeed(seed), nil
}
