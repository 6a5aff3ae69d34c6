package terminal

import (
	"errors"
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesh-viewer/internal/commands"
	"mesh-viewer/internal/logger"
)

func flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func testTerminal(t *testing.T) (*Terminal, *logger.Logger, *commands.Registry) {
	t.Helper()
	chdir(t, t.TempDir())
	log := logger.New()
	reg := commands.NewRegistry()
	return New(log, reg), log, reg
}

func TestRunDispatchesCommand(t *testing.T) {
	term, log, reg := testTerminal(t)
	ran := false
	reg.Register("ping", flagSet("ping"), func() error {
		ran = true
		log.Log("pong")
		return nil
	})

	term.run("cmd ping")
	assert.True(t, ran)
	assert.Contains(t, log.Tail(1)[0], "pong")
}

func TestRunLogsCommandError(t *testing.T) {
	term, log, reg := testTerminal(t)
	reg.Register("boom", flagSet("boom"), func() error {
		return errors.New("it broke")
	})

	term.run("cmd boom")
	assert.Contains(t, log.Tail(1)[0], "it broke")

	term.run("cmd missing")
	assert.Contains(t, log.Tail(1)[0], "unknown command: missing")
}

func TestRunHintsOnPlainText(t *testing.T) {
	term, log, _ := testTerminal(t)

	term.run("hello")
	tail := log.Tail(1)
	require.Len(t, tail, 1)
	assert.Contains(t, tail[0], "not a command")
}

func TestTerminalStartsClosed(t *testing.T) {
	term, _, _ := testTerminal(t)
	assert.False(t, term.IsOpen())
}
