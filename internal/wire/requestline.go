// Package wire implements the two pure parsing functions the request
// pipeline drives: the request-line parser and the header-block parser.
// Both report an exact consumed-byte count so the caller's buffer can be
// drained precisely, and both distinguish "need more bytes" from "invalid".
package wire

import (
	"bytes"
	"errors"
)

var (
	// ErrNeedMore means the buffer does not yet contain a full line/block.
	ErrNeedMore = errors.New("wire: need more data")
	// ErrMalformedRequestLine means a CRLF-terminated line was present but
	// did not parse as "<method> <target> <version>".
	ErrMalformedRequestLine = errors.New("wire: malformed request line")
)

var crlf = []byte("\r\n")

// RequestLine is the parsed three-token start line of an HTTP/1.x request.
type RequestLine struct {
	Method  string
	Target  string
	Version string
}

// ParseRequestLine reads up to the first CRLF in data and splits it into
// method, target and version. It returns (line, consumed, nil) on
// success. When no CRLF is present yet it returns (nil, 0, ErrNeedMore).
// When a complete line was found but is malformed (wrong token count or
// a non-ASCII byte) it still reports the consumed byte count — the
// caller drains the bad line and continues parsing headers, per
// spec.md §4.2's "each may set delayed_reply without aborting parse"
// validation rule.
func ParseRequestLine(data []byte) (*RequestLine, int, error) {
	idx := bytes.Index(data, crlf)
	if idx == -1 {
		return nil, 0, ErrNeedMore
	}
	consumed := idx + len(crlf)

	line := data[:idx]
	for _, b := range line {
		if b > 127 {
			return nil, consumed, ErrMalformedRequestLine
		}
	}

	tokens := bytes.Fields(line)
	if len(tokens) != 3 {
		return nil, consumed, ErrMalformedRequestLine
	}

	return &RequestLine{
		Method:  string(tokens[0]),
		Target:  string(tokens[1]),
		Version: string(tokens[2]),
	}, consumed, nil
}
