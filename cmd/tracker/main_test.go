package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestMigrateAndBootstrap(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENV", "test")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("TRACKER_DATABASE_FILE", filepath.Join(dir, "tracker.db"))
	t.Setenv("TRACKER_PEPPER_FILE", filepath.Join(dir, "pepper"))

	require.Contains(t, run(t, "migrate", "up"), "schema at version 3 (dirty=false)")

	out := run(t, "bootstrap-admin", "--username", "root")
	require.Contains(t, out, `admin user "root" created`)
	require.Contains(t, out, "password: ")

	require.Empty(t, run(t, "bootstrap-admin", "--username", "other", "--password", "long-enough"))
}
