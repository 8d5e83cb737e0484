package cookie

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"httpfront/internal/wire"
)

func headersWithCookie(v string) wire.Headers {
	h := wire.NewHeaders()
	h.Set("Cookie", v)
	return h
}

func TestGet(t *testing.T) {
	v, ok := Get(headersWithCookie("a=1; b=2; a=3"), "a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	v, ok = Get(headersWithCookie("a=1;   b=2"), "b")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	// Leading-whitespace variant still matches at the ';' boundary
	v, ok = Get(headersWithCookie("a=1;    c=hello"), "c")
	assert.True(t, ok)
	assert.Equal(t, "hello", v)

	// Name is a suffix of another cookie's name: must not false-match
	_, ok = Get(headersWithCookie("aa=1; b=2"), "a")
	assert.False(t, ok)

	// No Cookie header at all
	_, ok = Get(wire.NewHeaders(), "a")
	assert.False(t, ok)

	// No match
	_, ok = Get(headersWithCookie("x=1"), "a")
	assert.False(t, ok)

	// Percent-encoded value is decoded
	v, ok = Get(headersWithCookie("a=hello%20world"), "a")
	assert.True(t, ok)
	assert.Equal(t, "hello world", v)

	// Invalid percent-encoding => absent
	_, ok = Get(headersWithCookie("a=%zz"), "a")
	assert.False(t, ok)
}
