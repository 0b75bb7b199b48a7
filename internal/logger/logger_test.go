package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProdLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("prod", &buf)

	log.Debug("hidden")
	log.Info("member created", "id", "m-1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "member created", entry["msg"])
	require.Equal(t, "legion", entry["service"])
	require.Equal(t, "m-1", entry["id"])
}

func TestDevLoggerIncludesDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("dev", &buf)

	log.Debug("sorting workouts", "sort", "-createdAt")
	require.Contains(t, buf.String(), "sorting workouts")
	require.Contains(t, buf.String(), "sort=-createdAt")
}
