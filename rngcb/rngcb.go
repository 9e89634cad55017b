// Package rngcb exposes a deterministic xorshift generator through the randomness hook used by
// native cryptography libraries: a function pointer
//
//	int (*f_rng)(void *p_rng, unsigned char *output, size_t len)
//
// plus the opaque p_rng context it must be called with. A zero return means success; the callbacks
// here always succeed.
//
// NOT cryptographically secure. Use for testing only.
//
// The generator state lives in C memory owned by a Bridge. The context pointer handed out by
// DataPtr and DataPtrMut is a non-owning alias, valid until the Bridge is closed (or collected).
// Native code must not retain it beyond that.
//
// A Bridge must be used from a single goroutine, and callbacks must not be reentered. Concurrent
// or reentrant use of one context is undefined behavior; it is not guarded against.
package rngcb

/*
#include <stdlib.h>
#include <stddef.h>

typedef int (*detrand_rng_fn)(void *p_rng, unsigned char *output, size_t len);

extern int detrandCall(void *, unsigned char *, size_t);
extern int detrandCallMut(void *, unsigned char *, size_t);

static int detrand_invoke(detrand_rng_fn f_rng, void *p_rng, unsigned char *output, size_t len) {
	return f_rng(p_rng, output, len);
}
*/
import "C"

import (
	"fmt"
	"io"
	"runtime"
	"unsafe"

	"github.com/getlantern/golog"

	"github.com/getlantern/detrand/xorshift"
)

var log = golog.LoggerFor("detrand.rngcb")

var (
	callFn    = C.detrand_rng_fn(C.detrandCall)
	callMutFn = C.detrand_rng_fn(C.detrandCallMut)
)

// Bridge owns a generator allocated in C memory and exposes it to native code.
type Bridge struct {
	ctx  *xorshift.Rng
	seed xorshift.Seed
}

var (
	_ io.Reader = (*Bridge)(nil)
	_ io.Closer = (*Bridge)(nil)
)

// New allocates a context seeded with seed. The context is freed by Close, or when the Bridge is
// garbage collected.
func New(seed xorshift.Seed) *Bridge {
	ctx := (*xorshift.Rng)(C.malloc(C.size_t(unsafe.Sizeof(xorshift.Rng{}))))
	*ctx = *xorshift.FromSeed(seed)

	b := &Bridge{ctx: ctx, seed: seed}
	runtime.SetFinalizer(b, (*Bridge).Close)
	log.Debugf("allocated context %p for seed %v", ctx, seed)
	return b
}

// Seed returns the seed the bridge was created with.
func (b *Bridge) Seed() xorshift.Seed {
	return b.seed
}

// Callback returns the shared-context callback as a C function pointer of type
// int (*)(void *, unsigned char *, size_t). It must be called with DataPtr.
func (b *Bridge) Callback() unsafe.Pointer {
	return unsafe.Pointer(callFn)
}

// CallbackMut returns the mutable-context callback as a C function pointer of type
// int (*)(void *, unsigned char *, size_t). It must be called with DataPtrMut.
func (b *Bridge) CallbackMut() unsafe.Pointer {
	return unsafe.Pointer(callMutFn)
}

// DataPtr returns the context pointer for Callback. Panics if the bridge has been closed.
func (b *Bridge) DataPtr() unsafe.Pointer {
	return unsafe.Pointer(b.context())
}

// DataPtrMut returns the context pointer for CallbackMut. Panics if the bridge has been closed.
func (b *Bridge) DataPtrMut() unsafe.Pointer {
	return unsafe.Pointer(b.context())
}

func (b *Bridge) context() *xorshift.Rng {
	if b.ctx == nil {
		panic("rngcb: use of closed bridge")
	}
	return b.ctx
}

// Fill fills buf by calling the mutable-context callback through its C function pointer, exactly
// as native code would. It returns the callback's status code.
func (b *Bridge) Fill(buf []byte) int {
	status := Invoke(b.CallbackMut(), b.DataPtrMut(), buf)
	runtime.KeepAlive(b)
	return status
}

// Read implements io.Reader over Fill, so Go code taking an io.Reader draws through the same C
// path. It always fills p.
func (b *Bridge) Read(p []byte) (int, error) {
	if status := b.Fill(p); status != 0 {
		return 0, fmt.Errorf("rng callback failed with status %d", status)
	}
	return len(p), nil
}

// Close frees the context. Context pointers previously returned become invalid. Closing twice is a
// no-op.
func (b *Bridge) Close() error {
	if b.ctx == nil {
		return nil
	}
	log.Debugf("freeing context %p", b.ctx)
	C.free(unsafe.Pointer(b.ctx))
	b.ctx = nil
	runtime.SetFinalizer(b, nil)
	return nil
}

// Invoke calls the C function pointer fn, of type int (*)(void *, unsigned char *, size_t), with
// ctx and buf, and returns its status. This is how native code drives a randomness callback; it is
// exported so callbacks can be exercised without a native library.
//
// buf may be empty, in which case the callback receives a NULL output pointer and zero length.
func Invoke(fn, ctx unsafe.Pointer, buf []byte) int {
	var output *C.uchar
	if len(buf) > 0 {
		output = (*C.uchar)(unsafe.Pointer(&buf[0]))
	}
	return int(C.detrand_invoke(C.detrand_rng_fn(fn), ctx, output, C.size_t(len(buf))))
}
