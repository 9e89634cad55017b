package rngcb

// #include <stddef.h>
import "C"

import (
	"unsafe"

	"github.com/getlantern/detrand/xorshift"
)

// Both callbacks have the C signature
//
//	int (*)(void *p_rng, unsigned char *output, size_t len)
//
// and always return 0. They differ only in the access the calling library claims over p_rng.

//export detrandCallMut
func detrandCallMut(pRng unsafe.Pointer, output *C.uchar, length C.size_t) C.int {
	fillFromContext(pRng, output, length)
	return 0
}

// detrandCall is the form used where the library only holds a shared (const) context. The
// generator is mutated regardless. This is sound only because a context is never used by more than
// one goroutine at a time and callbacks are never reentered; see the package documentation.
//
//export detrandCall
func detrandCall(pRng unsafe.Pointer, output *C.uchar, length C.size_t) C.int {
	fillFromContext(pRng, output, length)
	return 0
}

// fillFromContext is the one place a raw context pointer is turned back into a generator. pRng
// must come from Bridge.DataPtr or Bridge.DataPtrMut of a bridge which has not been closed.
func fillFromContext(pRng unsafe.Pointer, output *C.uchar, length C.size_t) {
	if length == 0 {
		return
	}
	if pRng == nil {
		panic("rngcb: callback invoked with a nil context")
	}
	rng := (*xorshift.Rng)(pRng)
	rng.FillBytes(unsafe.Slice((*byte)(unsafe.Pointer(output)), int(length)))
}
