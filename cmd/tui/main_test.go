package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer

	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	return &buf
}

func TestOpenCache(t *testing.T) {
	t.Run("UnreachableRedisWarns", func(t *testing.T) {
		logs := captureLogs(t)

		c := openCache(context.Background(), "127.0.0.1:1", time.Minute)
		require.NotNil(t, c)
		assert.NoError(t, c.Bump(context.Background()))
		assert.Contains(t, logs.String(), "summary cache disabled")
		assert.Contains(t, logs.String(), "127.0.0.1:1")
	})

	t.Run("NoAddressIsSilent", func(t *testing.T) {
		logs := captureLogs(t)

		c := openCache(context.Background(), "", time.Minute)
		require.NotNil(t, c)
		assert.Empty(t, logs.String())
	})

	t.Run("Connects", func(t *testing.T) {
		mr := miniredis.RunT(t)
		logs := captureLogs(t)

		c := openCache(context.Background(), mr.Addr(), time.Minute)
		require.NoError(t, c.Bump(context.Background()))

		ver, err := c.Version(context.Background())
		require.NoError(t, err)
		assert.EqualValues(t, 1, ver)
		assert.Empty(t, logs.String())
	})
}
