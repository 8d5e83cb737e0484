package wire

import (
	"bytes"
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrMalformedHeaderLine means a header line was present but did not parse
// as "Name: Value", or the field-name contained disallowed bytes.
var ErrMalformedHeaderLine = errors.New("wire: malformed header line")

// ErrHeaderLineTooLong means an unterminated line exceeded maxHeaderLine
// without ever producing a CRLF.
var ErrHeaderLineTooLong = errors.New("wire: header line too long")

// maxHeaderLine caps a single unterminated header line so a client cannot
// hold the parser spinning on a line that will never see its CRLF; the
// request pipeline's own 2x-REQUEST_MAX buffer cap (spec.md invariant 1)
// is the outer bound this only tightens.
const maxHeaderLine = 8 * 1024

// Headers is a case-insensitive header-name to header-value mapping.
// Lookup keys are case-folded; Set/Override fold on write so Get never
// needs to fold again.
type Headers map[string]string

// NewHeaders returns an empty header map.
func NewHeaders() Headers { return Headers{} }

func fold(name string) string {
	return cases.Lower(language.Und).String(name)
}

// Get looks up name case-insensitively.
func (h Headers) Get(name string) string {
	return h[fold(name)]
}

// Set stores value under name, folding the name. A repeated name is
// joined with the previous value by a comma, matching RFC 9110 ranking
// of list-valued headers and the teacher's duplicate-header behavior.
// Parse does not use this for duplicates — see Override and spec.md
// §4.1 ("Duplicate names: last one wins").
func (h Headers) Set(name, value string) {
	key := fold(name)
	if old, ok := h[key]; ok {
		h[key] = old + "," + value
	} else {
		h[key] = value
	}
}

// Override replaces any existing value for name outright.
func (h Headers) Override(name, value string) {
	h[fold(name)] = value
}

// Delete removes name, folding it first.
func (h Headers) Delete(name string) {
	delete(h, fold(name))
}

// Parse consumes header lines from data until a blank line terminates the
// block. It returns the number of bytes consumed (including the
// terminating blank line's CRLF), whether the block is complete, and any
// parse error. A malformed line aborts with consumed=0 so the caller does
// not partially drain its buffer on error. Until the blank line has
// arrived it also reports consumed=0 (done=false, no error): the caller
// keeps the whole block buffered and parses it again with more bytes.
func (h Headers) Parse(data []byte) (consumed int, done bool, err error) {
	off := 0
	for {
		rest := data[off:]
		idx := bytes.Index(rest, crlf)
		if idx == -1 {
			if len(rest) > maxHeaderLine {
				return 0, false, ErrHeaderLineTooLong
			}
			return 0, false, nil
		}

		line := rest[:idx]
		off += idx + len(crlf)

		if len(line) == 0 {
			return off, true, nil
		}

		if line[0] == ' ' || line[0] == '\t' {
			return 0, false, ErrMalformedHeaderLine
		}

		colon := bytes.IndexByte(line, ':')
		if colon <= 0 {
			return 0, false, ErrMalformedHeaderLine
		}

		nameRaw := line[:colon]
		if bytes.ContainsAny(nameRaw, " \t") || !isToken(nameRaw) {
			return 0, false, ErrMalformedHeaderLine
		}

		val := strings.Trim(string(line[colon+1:]), " \t")
		h.Override(string(nameRaw), val)
	}
}

var tokenAllowed [256]bool

func init() {
	for c := byte('0'); c <= '9'; c++ {
		tokenAllowed[c] = true
	}
	for c := byte('A'); c <= 'Z'; c++ {
		tokenAllowed[c] = true
	}
	for c := byte('a'); c <= 'z'; c++ {
		tokenAllowed[c] = true
	}
	for _, c := range []byte("!#$%&'*+-.^_`|~") {
		tokenAllowed[c] = true
	}
}

func isToken(s []byte) bool {
	if len(s) == 0 {
		return false
	}
	for _, c := range s {
		if c > 127 || !tokenAllowed[c] {
			return false
		}
	}
	return true
}
