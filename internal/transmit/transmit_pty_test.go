//go:build linux

package transmit

import (
	"io"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
)

func TestRunOverPseudoTerminal(t *testing.T) {
	master, slave, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() { master.Close(); slave.Close() })

	cfg := DefaultConfig()
	cfg.Port = slave.Name()
	cfg.File = writeInput(t, "21.5,60\n\n30.0,invalid\n   \n")

	tx, err := New(cfg, WithSleep(func(time.Duration) {}))
	require.NoError(t, err)

	want := "21.5,60\n30.0,invalid\n"
	received := make(chan string, 1)
	go func() {
		buf := make([]byte, len(want))
		if _, err := io.ReadFull(master, buf); err != nil {
			return
		}
		received <- string(buf)
	}()

	require.NoError(t, tx.Run())

	select {
	case got := <-received:
		require.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for device to receive the lines")
	}
}
