package rngcb

import (
	"encoding/hex"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getlantern/detrand/internal/testutil"
	"github.com/getlantern/detrand/xorshift"
)

func TestFillMatchesGenerator(t *testing.T) {
	t.Parallel()

	seed := testutil.Seed(0x40)
	b := New(seed)
	defer b.Close()
	rng := xorshift.FromSeed(seed)

	for _, l := range []int{16, 1, 0, 8, 13, 255, 4096} {
		fromBridge, direct := make([]byte, l), make([]byte, l)
		require.Equal(t, 0, b.Fill(fromBridge))
		rng.FillBytes(direct)
		require.Equal(t, direct, fromBridge, "length %d", l)
	}
}

func TestDefaultSeedGolden(t *testing.T) {
	t.Parallel()

	b := New(xorshift.DefaultSeed())
	defer b.Close()

	buf := make([]byte, 16)
	require.Equal(t, 0, Invoke(b.CallbackMut(), b.DataPtrMut(), buf))
	require.Equal(t, "84e1634d0f62f1db8c5cd50e0b3d1fc2", hex.EncodeToString(buf))
}

func TestStatusAlwaysZero(t *testing.T) {
	t.Parallel()

	b := New(xorshift.DefaultSeed())
	defer b.Close()

	for l := 0; l <= 33; l++ {
		buf := make([]byte, l)
		assert.Equal(t, 0, Invoke(b.Callback(), b.DataPtr(), buf), "shared, length %d", l)
		assert.Equal(t, 0, Invoke(b.CallbackMut(), b.DataPtrMut(), buf), "mutable, length %d", l)
	}
	assert.Equal(t, 0, Invoke(b.Callback(), b.DataPtr(), nil))
}

func TestCallbacksShareOneStream(t *testing.T) {
	t.Parallel()

	b := New(xorshift.DefaultSeed())
	defer b.Close()
	require.Equal(t, b.DataPtr(), b.DataPtrMut())
	require.NotEqual(t, b.Callback(), b.CallbackMut())

	interleaved := make([]byte, 32)
	require.Equal(t, 0, Invoke(b.Callback(), b.DataPtr(), interleaved[:8]))
	require.Equal(t, 0, Invoke(b.CallbackMut(), b.DataPtrMut(), interleaved[8:16]))
	require.Equal(t, 0, Invoke(b.Callback(), b.DataPtr(), interleaved[16:]))

	expected := make([]byte, 32)
	xorshift.New().FillBytes(expected)
	require.Equal(t, expected, interleaved)
}

func TestBridgesAreIndependent(t *testing.T) {
	t.Parallel()

	a, b := New(xorshift.DefaultSeed()), New(xorshift.DefaultSeed())
	defer a.Close()
	defer b.Close()
	require.NotEqual(t, a.DataPtr(), b.DataPtr())

	skip := make([]byte, 64)
	require.Equal(t, 0, a.Fill(skip))

	fromA, fromB := make([]byte, 8), make([]byte, 8)
	require.Equal(t, 0, a.Fill(fromA))
	require.Equal(t, 0, b.Fill(fromB))
	require.NotEqual(t, fromA, fromB)
	require.Equal(t, skip[:8], fromB)
}

func TestRead(t *testing.T) {
	t.Parallel()

	b := New(xorshift.DefaultSeed())
	defer b.Close()
	require.Equal(t, xorshift.DefaultSeed(), b.Seed())

	buf := make([]byte, 21)
	_, err := io.ReadFull(b, buf)
	require.NoError(t, err)

	require.Equal(t, testutil.ReferenceBytes(t, xorshift.DefaultSeed(), 21), buf)
}

func TestClose(t *testing.T) {
	t.Parallel()

	b := New(xorshift.DefaultSeed())
	require.NoError(t, b.Close())
	require.NoError(t, b.Close())
	require.Panics(t, func() { b.DataPtr() })
	require.Panics(t, func() { b.DataPtrMut() })
	require.Panics(t, func() { b.Fill(make([]byte, 8)) })
}
