// Package acceptlist parses an Accept-* header (q-value ranked token
// list) and, per spec.md §4.5, appends a base-language derivation pass.
package acceptlist

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

type entry struct {
	token string
	q     float64
}

// Parse tokenizes value on ',', reads an optional ";q=<float>" per token
// (clamped to [0,1], default 1.0), optionally inserts def at q=0.1, sorts
// stably by q descending, drops q==0 entries, and returns the lowercased,
// trimmed tokens followed by a base-language derivation pass: for every
// surviving entry containing '-', the prefix before the first '-' is
// appended in the same order (entries with no '-' contribute nothing to
// this second pass) — see DESIGN.md OQ-1.
func Parse(value string, def string) []string {
	var entries []entry

	if def != "" {
		entries = append(entries, entry{token: def, q: 0.1})
	}

	for _, raw := range strings.Split(value, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		token := raw
		q := 1.0

		if i := strings.Index(raw, ";"); i != -1 {
			token = strings.TrimSpace(raw[:i])
			if qv, ok := parseQValue(raw[i+1:]); ok {
				q = qv
			}
		}

		if token == "" {
			continue
		}

		entries = append(entries, entry{token: token, q: q})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].q > entries[j].q
	})

	var out []string
	var bases []string
	for _, e := range entries {
		if e.q <= 0 {
			continue
		}
		tok := strings.TrimSpace(lower.String(e.token))
		out = append(out, tok)

		if i := strings.IndexByte(tok, '-'); i != -1 {
			bases = append(bases, tok[:i])
		}
	}

	return append(out, bases...)
}

// parseQValue reads "q=<float>" (possibly followed by other
// parameters) out of the ";"-delimited remainder of a token. Values
// outside [0, 1] clamp to 0.
func parseQValue(params string) (float64, bool) {
	for _, p := range strings.Split(params, ";") {
		p = strings.TrimSpace(p)
		name, val, found := strings.Cut(p, "=")
		if !found || strings.TrimSpace(name) != "q" {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		if f < 0 || f > 1 {
			f = 0
		}
		return f, true
	}
	return 0, false
}
