package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/legion/internal/models"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSeedThenRandom(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	data := filepath.Join(t.TempDir(), "db.json")

	out, err := run(t, "--store", "file", "--data-file", data, "seed")
	require.NoError(t, err)
	require.Contains(t, out, "members=")

	out, err = run(t, "--store", "file", "--data-file", data, "workouts", "random", "--mode", "amrap", "--equipment", "barbell")
	require.NoError(t, err)

	var w models.Workout
	require.NoError(t, json.Unmarshal([]byte(out), &w))
	require.NotEmpty(t, w.ID)
	require.Contains(t, w.Mode, "AMRAP")
}

func TestRandomWithNoMatch(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	data := filepath.Join(t.TempDir(), "db.json")

	_, err := run(t, "--store", "file", "--data-file", data, "workouts", "random")
	require.EqualError(t, err, "Can't find a workout matching the given filters")
}

func TestMigrateNeedsPostgres(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	_, err := run(t, "--store", "file", "--data-file", filepath.Join(t.TempDir(), "db.json"), "migrate")
	require.ErrorContains(t, err, "migrate needs --store=postgres")
}
