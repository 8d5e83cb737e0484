package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"httpfront/request"
	"httpfront/response"
)

func TestDetailToken(t *testing.T) {
	assert.Equal(t, "/widgets", detailToken("/widgets/42"))
	assert.Equal(t, "/widgets", detailToken("/widgets"))
	assert.Equal(t, "", detailToken(""))
	assert.Equal(t, "weird", detailToken("weird"))
}

func TestDispatchStreamFirstClaimWins(t *testing.T) {
	s := New(nil)
	var calledSecond bool
	s.OnStream(func(req *request.Request, resp response.Bridge) bool {
		return true
	})
	s.OnStream(func(req *request.Request, resp response.Bridge) bool {
		calledSecond = true
		return true
	})

	ok := s.dispatchStream(request.New("", nil), nil)
	assert.True(t, ok)
	assert.False(t, calledSecond)
}
