// Package hello produces and captures TLS ClientHellos. Hellos built from a deterministic randomness
// source are byte-for-byte reproducible, which makes them usable as golden data and fuzzing corpora.
package hello

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/getlantern/preconn"
	"github.com/getlantern/tlsutil"
	utls "github.com/refraction-networking/utls"
)

const (
	recordTypeHandshake = 22
	recordHeaderLen     = 5

	// DefaultBufferSize is used by Sniff when bufferSize is not positive.
	DefaultBufferSize = 1024
)

// Fingerprints are the ClientHello fingerprints used for corpora.
var Fingerprints = []utls.ClientHelloID{
	utls.HelloFirefox_65,
	utls.HelloChrome_83,
	utls.HelloIOS_12_1,
	utls.HelloEdge_85,
	utls.HelloExplorer_11,
	utls.HelloSafari_13_1,
	utls.Hello360_7_5,
	utls.HelloQQ_10_6,
}

// Config returns the utls configuration Build uses. All randomness is drawn from rand.
func Config(rand io.Reader, serverName string) *utls.Config {
	return &utls.Config{
		Rand:               rand,
		ServerName:         serverName,
		InsecureSkipVerify: true,
	}
}

// Build returns the ClientHello record a utls client with fingerprint id would send to serverName.
// Every random value in the hello (random, session ID, key shares, GREASE) is read from rand, so
// equal streams produce equal records.
func Build(rand io.Reader, id utls.ClientHelloID, serverName string) ([]byte, error) {
	uconn := utls.UClient(nil, Config(rand, serverName), id)
	if err := uconn.BuildHandshakeState(); err != nil {
		return nil, fmt.Errorf("failed to build handshake state for %s: %w", id.Str(), err)
	}
	record := wrapRecord(uconn.HandshakeState.Hello.Raw)
	if err := Validate(record); err != nil {
		return nil, fmt.Errorf("built invalid hello for %s: %w", id.Str(), err)
	}
	return record, nil
}

// The handshake message utls produces carries no record header.
func wrapRecord(msg []byte) []byte {
	record := make([]byte, recordHeaderLen, recordHeaderLen+len(msg))
	record[0] = recordTypeHandshake
	// Some TLS servers fail if the record version is greater than TLS 1.0 for the initial
	// ClientHello.
	record[1], record[2] = 0x03, 0x01
	record[3], record[4] = byte(len(msg)>>8), byte(len(msg))
	return append(record, msg...)
}

// Validate returns nil if b holds a complete ClientHello record. If b is a valid but incomplete
// prefix, the error wraps io.EOF.
func Validate(b []byte) error {
	_, err := tlsutil.ValidateClientHello(b)
	return err
}

// Sniff reads off of conn until one of the following:
//   - The bytes read constitute a valid TLS ClientHello.
//   - The bytes read could not possibly constitute a valid TLS ClientHello.
//   - A network error is encountered or ctx is done.
//
// A copy of whatever was read is always returned, along with a connection which replays it ahead of
// the rest of the stream.
func Sniff(ctx context.Context, conn net.Conn, bufferSize int) ([]byte, net.Conn, error) {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	var (
		buf  = make([]byte, bufferSize)
		read = new(bytes.Buffer)
	)

	stop, stopped := make(chan struct{}), make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
			// Unblocks any pending read.
			conn.SetReadDeadline(time.Now())
		case <-stop:
		}
	}()
	finish := func(err error) ([]byte, net.Conn, error) {
		close(stop)
		<-stopped
		if ctx.Err() != nil {
			conn.SetReadDeadline(time.Time{})
			err = ctx.Err()
		}
		sniffed := append([]byte(nil), read.Bytes()...)
		return sniffed, preconn.Wrap(conn, read.Bytes()), err
	}

	for {
		n, err := conn.Read(buf)
		// Note: bytes.Buffer.Write does not return errors.
		read.Write(buf[:n])
		if err != nil {
			return finish(fmt.Errorf("read failed: %w", err))
		}
		err = Validate(read.Bytes())
		if err == nil {
			return finish(nil)
		}
		if !errors.Is(err, io.EOF) {
			return finish(fmt.Errorf("not a client hello: %w", err))
		}
	}
}
