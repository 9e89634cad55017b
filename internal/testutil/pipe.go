// Package testutil provides shared utilities for testing.
package testutil

import (
	"io"
	"net"
	"sync"
)

// BufferedPipe returns the two ends of an in-memory connection. Unlike net.Pipe, Write returns once
// the data is queued, so a test can send a whole ClientHello before the other end starts reading.
//
// Data still queued when an end is closed may never reach the peer.
func BufferedPipe() (net.Conn, net.Conn) {
	a, b := net.Pipe()
	return newQueuedConn(a), newQueuedConn(b)
}

const writeQueueLen = 10

type queuedConn struct {
	net.Conn

	pending chan []byte
	done    chan struct{}
	once    sync.Once
}

func newQueuedConn(conn net.Conn) *queuedConn {
	qc := &queuedConn{
		Conn:    conn,
		pending: make(chan []byte, writeQueueLen),
		done:    make(chan struct{}),
	}
	go qc.drain()
	return qc
}

func (qc *queuedConn) drain() {
	for {
		select {
		case b := <-qc.pending:
			if _, err := qc.Conn.Write(b); err != nil {
				qc.Close()
				return
			}
		case <-qc.done:
			return
		}
	}
}

// pending is never closed, so a Write racing with Close cannot panic.
func (qc *queuedConn) Write(b []byte) (int, error) {
	select {
	case <-qc.done:
		return 0, io.ErrClosedPipe
	default:
	}
	queued := append([]byte(nil), b...)
	select {
	case qc.pending <- queued:
		return len(b), nil
	case <-qc.done:
		return 0, io.ErrClosedPipe
	}
}

func (qc *queuedConn) Close() error {
	var err error
	qc.once.Do(func() {
		close(qc.done)
		err = qc.Conn.Close()
	})
	return err
}
