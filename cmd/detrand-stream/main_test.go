package main

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/getlantern/detrand/xorshift"
)

func TestStreamChunking(t *testing.T) {
	t.Parallel()

	whole, err := stream(xorshift.DefaultSeed(), 16, 0)
	require.NoError(t, err)
	require.Equal(t, "84e1634d0f62f1db8c5cd50e0b3d1fc2", hex.EncodeToString(whole))

	byEight, err := stream(xorshift.DefaultSeed(), 16, 8)
	require.NoError(t, err)
	require.Equal(t, whole, byEight)

	byThree, err := stream(xorshift.DefaultSeed(), 6, 3)
	require.NoError(t, err)
	require.Equal(t, "84e1638c5cd5", hex.EncodeToString(byThree))
}

func TestRunPreservesSeedOrder(t *testing.T) {
	t.Parallel()

	seeds, err := parseSeeds([]string{
		"000102030405060708090a0b0c0d0e0f",
		"54673a1969d4a7a8050e8397bba73b11",
	})
	require.NoError(t, err)

	results, err := run(context.Background(), seeds, 16, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "4f0f0e2bec07171c0c040e0f6f011770", hex.EncodeToString(results[0]))
	require.Equal(t, "84e1634d0f62f1db8c5cd50e0b3d1fc2", hex.EncodeToString(results[1]))
}

func TestParseSeeds(t *testing.T) {
	t.Parallel()

	seeds, err := parseSeeds(nil)
	require.NoError(t, err)
	require.Equal(t, []xorshift.Seed{xorshift.DefaultSeed()}, seeds)

	_, err = parseSeeds([]string{"nope"})
	require.Error(t, err)
}
