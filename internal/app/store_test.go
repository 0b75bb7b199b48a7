package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/legion/internal/config"
)

func TestOpenStoreFile(t *testing.T) {
	cfg := config.Config{StoreDriver: config.StoreFile, DataFile: filepath.Join(t.TempDir(), "db.json")}
	s, err := OpenStore(context.Background(), cfg, false, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	n, err := s.Members().Count(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	_, err := OpenStore(context.Background(), config.Config{StoreDriver: "mongo"}, false, slog.Default())
	require.ErrorContains(t, err, "unknown store driver")
}
