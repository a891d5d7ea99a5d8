package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	require.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	require.Equal(t, slog.LevelError, parseLogLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLogLevel("info"))
	require.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}

func TestEnsureDBDir(t *testing.T) {
	require.NoError(t, ensureDBDir(":memory:"))
	require.NoError(t, ensureDBDir("courtside.db"))

	path := filepath.Join(t.TempDir(), "data", "nested", "courtside.db")
	require.NoError(t, ensureDBDir(path))
	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestTailFile_KeepsNewestLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "courtside.log")
	lf, err := openTailFile(path, 64<<10)
	require.NoError(t, err)
	defer lf.Close()

	line := strings.Repeat("x", 1023) + "\n"
	for i := 0; i < 100; i++ {
		_, err := lf.Write([]byte(line))
		require.NoError(t, err)
	}
	_, err = lf.Write([]byte("last\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.LessOrEqual(t, len(data), 64<<10)
	require.True(t, strings.HasSuffix(string(data), "last\n"))
	require.True(t, strings.HasPrefix(string(data), "x"))
	require.Zero(t, (len(data)-len("last\n"))%len(line), "tail starts on a line boundary")
}

func TestTailFile_TrimsOnOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courtside.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("old line\n", 2000)), 0o644))

	lf, err := openTailFile(path, 6000)
	require.NoError(t, err)
	require.NoError(t, lf.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.LessOrEqual(t, info.Size(), int64(5000))
	require.Zero(t, info.Size()%int64(len("old line\n")))
}

func TestRandomSecret(t *testing.T) {
	a, b := randomSecret(), randomSecret()
	require.Len(t, a, 64)
	require.NotEqual(t, a, b)
}
