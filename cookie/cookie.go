// Package cookie extracts a single named value out of a raw Cookie header.
package cookie

import (
	"net/url"
	"strings"

	"httpfront/internal/wire"
)

// Get looks up name inside the Cookie header of headers. It returns the
// value and true on a match; (\"\", false) if there is no Cookie header,
// no matching pair, or the matching pair's value is not valid
// percent-encoding (logged by the caller at debug level, per spec.md
// §4.4 and §7 — this package only reports the miss).
func Get(headers wire.Headers, name string) (string, bool) {
	raw := headers.Get("Cookie")
	if raw == "" {
		return "", false
	}

	needle := name + "="
	for i := 0; i+len(needle) <= len(raw); i++ {
		if !atBoundary(raw, i) {
			continue
		}
		if raw[i:i+len(needle)] != needle {
			continue
		}

		start := i + len(needle)
		end := strings.IndexByte(raw[start:], ';')
		var value string
		if end == -1 {
			value = raw[start:]
		} else {
			value = raw[start : start+end]
		}

		decoded, err := url.PathUnescape(value)
		if err != nil {
			return "", false
		}
		return decoded, true
	}

	return "", false
}

// atBoundary reports whether position i in s is either the start of the
// string, or immediately follows a ';' and any run of ASCII whitespace.
func atBoundary(s string, i int) bool {
	if i == 0 {
		return true
	}
	j := i - 1
	for j >= 0 && isASCIISpace(s[j]) {
		j--
	}
	return j >= 0 && s[j] == ';'
}

func isASCIISpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}
