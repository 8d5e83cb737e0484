package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequestLine(t *testing.T) {
	rl, n, err := ParseRequestLine([]byte("GET /index HTTP/1.1\r\nHost: x\r\n\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "GET", rl.Method)
	assert.Equal(t, "/index", rl.Target)
	assert.Equal(t, "HTTP/1.1", rl.Version)
	assert.Equal(t, len("GET /index HTTP/1.1\r\n"), n)

	// No CRLF yet => need more
	_, n, err = ParseRequestLine([]byte("GET /index HTTP/1.1"))
	require.ErrorIs(t, err, ErrNeedMore)
	assert.Equal(t, 0, n)

	// Wrong token count — still reports the line as consumed
	_, n, err = ParseRequestLine([]byte("GET HTTP/1.1\r\n"))
	require.ErrorIs(t, err, ErrMalformedRequestLine)
	assert.Equal(t, len("GET HTTP/1.1\r\n"), n)

	// Non-ASCII byte
	_, _, err = ParseRequestLine([]byte("GET /\xffx HTTP/1.1\r\n"))
	require.ErrorIs(t, err, ErrMalformedRequestLine)
}
