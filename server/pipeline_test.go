package server

import (
	"bufio"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"httpfront/internal/wire"
	"httpfront/response"
)

// dial wraps Server.Connect for test cleanup.
func dial(t *testing.T, s *Server) net.Conn {
	t.Helper()
	client := s.Connect()
	t.Cleanup(func() { client.Close() })
	return client
}

func TestPipelineRespondsToClaimedResource(t *testing.T) {
	s := New(nil)
	s.OnResource("/widgets", func(detail, path string, h wire.Headers, resp response.Bridge) bool {
		body := []byte("hi")
		hdrs := response.DefaultHeaders(len(body), false)
		w := resp.(*response.Writer)
		_ = w.WriteStatusLine(response.OK)
		_ = w.WriteHeaders(hdrs)
		_, _ = w.WriteBody(body)
		w.Finish(false)
		return true
	})

	client := dial(t, s)
	_, err := client.Write([]byte("GET /widgets/1 HTTP/1.1\r\nHost: x\r\n\r\n"))
	require.NoError(t, err)

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	line, err := bufio.NewReader(client).ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, "200")
}

func TestPipelineUnclaimedRequestTimesOutAndCloses(t *testing.T) {
	old := RequestTimeout
	RequestTimeout = 50 * time.Millisecond
	defer func() { RequestTimeout = old }()

	s := New(nil)
	client := dial(t, s)
	_, err := client.Write([]byte("GET /nope HTTP/1.1\r\nHost: x\r\n\r\n"))
	require.NoError(t, err)

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 16)
	_, err = client.Read(buf)
	assert.ErrorIs(t, err, io.EOF)
}

func TestPipelineDelayedReplyWritesErrorAndCloses(t *testing.T) {
	s := New(nil)
	client := dial(t, s)
	_, err := client.Write([]byte("POST /x HTTP/1.1\r\nHost: x\r\nContent-Length: 0\r\n\r\n"))
	require.NoError(t, err)

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	br := bufio.NewReader(client)
	line, err := br.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, "405")

	// The server closes the connection after the reply, so the rest of
	// it reads through to EOF before the deadline.
	_, err = io.ReadAll(br)
	assert.NoError(t, err)
}
