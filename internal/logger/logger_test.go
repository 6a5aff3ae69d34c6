package logger

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogKeepsLinesInOrder(t *testing.T) {
	chdir(t, t.TempDir())

	l := New()
	l.Log("first")
	l.Logf("second %d", 2)

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "first"))
	assert.True(t, strings.HasSuffix(lines[1], "second 2"))
	assert.True(t, strings.HasPrefix(lines[0], "["))
}

func TestLogAppendsToFile(t *testing.T) {
	chdir(t, t.TempDir())

	l := New()
	l.Log("on disk")
	l.Log("twice")

	data, err := os.ReadFile(LogFilePath)
	require.NoError(t, err)
	got := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, got, 2)
	assert.Contains(t, got[0], "on disk")
	assert.Contains(t, got[1], "twice")
}

func TestTail(t *testing.T) {
	chdir(t, t.TempDir())

	l := New()
	for _, line := range []string{"a", "b", "c"} {
		l.Log(line)
	}

	tail := l.Tail(2)
	require.Len(t, tail, 2)
	assert.True(t, strings.HasSuffix(tail[0], "b"))
	assert.True(t, strings.HasSuffix(tail[1], "c"))

	assert.Len(t, l.Tail(10), 3)
	assert.Empty(t, l.Tail(0))
}

func TestLinesReturnsCopy(t *testing.T) {
	chdir(t, t.TempDir())

	l := New()
	l.Log("original")
	lines := l.Lines()
	lines[0] = "mutated"
	assert.True(t, strings.HasSuffix(l.Lines()[0], "original"))
}
