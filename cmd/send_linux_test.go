/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allbin/serial-sender/internal/transmit"
)

func TestSendOverPseudoTerminal(t *testing.T) {
	master, slave, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() { master.Close(); slave.Close() })

	var out, errOut bytes.Buffer
	s := testSettings(t, slave.Name(), "21.5,60\n\n30.0,invalid\n   \n")

	want := "21.5,60\n30.0,invalid\n"
	received := make(chan string, 1)
	go func() {
		buf := make([]byte, len(want))
		if _, err := io.ReadFull(master, buf); err == nil {
			received <- string(buf)
		}
	}()

	require.NoError(t, send(s, &out, &errOut))
	assert.Equal(t, "Start\nSending: 21.5,60\nSending: 30.0,invalid\nComplete\n", out.String())
	assert.Empty(t, errOut.String())

	select {
	case got := <-received:
		assert.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for device to receive the lines")
	}
}

func TestSendMissingFileOverPseudoTerminal(t *testing.T) {
	master, slave, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() { master.Close(); slave.Close() })

	var out, errOut bytes.Buffer
	s := testSettings(t, slave.Name(), "")

	err = send(s, &out, &errOut)
	assert.ErrorIs(t, err, transmit.ErrFileNotFound)
	assert.Empty(t, out.String())
	assert.Equal(t, "× File not found: "+s.Transmit.File+"\n", errOut.String())
}

func TestRunSendExitsZeroOnSuccess(t *testing.T) {
	master, slave, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() { master.Close(); slave.Close() })
	go io.Copy(io.Discard, master)

	input := filepath.Join(t.TempDir(), "weather_data.csv")
	require.NoError(t, os.WriteFile(input, []byte("21.5,60\n"), 0o644))

	code := stubExit(t)
	out, errOut := runSendCommand(t,
		"--port", slave.Name(),
		"--settle-delay", "0s",
		"--line-delay", "0s",
		input,
	)

	assert.Zero(t, *code)
	assert.Equal(t, "Start\nSending: 21.5,60\nComplete\n", out)
	assert.Empty(t, errOut)
}
