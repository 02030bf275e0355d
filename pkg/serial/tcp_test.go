package serial

import (
	"bufio"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTCPPortResetAndExchange(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	staleSent := make(chan struct{})
	resetDone := make(chan struct{})
	received := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			close(staleSent)
			return
		}
		defer conn.Close()
		conn.Write([]byte("stale boot noise\n"))
		close(staleSent)
		<-resetDone
		conn.Write([]byte("Stored!\n"))
		line, _ := bufio.NewReader(conn).ReadString('\n')
		received <- line
	}()

	port, err := Open(TCPPrefix+ln.Addr().String(), 9600)
	require.NoError(t, err)
	defer port.Close()

	<-staleSent
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, port.SetDTR(false))
	require.NoError(t, port.ResetInputBuffer())
	require.NoError(t, port.ResetOutputBuffer())
	close(resetDone)

	buf := make([]byte, 8)
	_, err = io.ReadFull(port, buf)
	require.NoError(t, err)
	require.Equal(t, "Stored!\n", string(buf))

	_, err = port.Write([]byte("Enroll\n"))
	require.NoError(t, err)
	select {
	case line := <-received:
		require.Equal(t, "Enroll\n", line)
	case <-time.After(time.Second):
		t.Fatal("bridge did not receive command")
	}
}

func TestOpenTCPRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	_, err = Open(TCPPrefix+addr, 9600)
	require.Error(t, err)
	require.Contains(t, err.Error(), addr)
}
