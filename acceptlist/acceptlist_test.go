package acceptlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLiteralExample(t *testing.T) {
	got := Parse("en-US,en;q=0.8,de;q=0.5", "")
	assert.Equal(t, []string{"en-us", "en", "de", "en"}, got)
}

func TestParseDropsZeroQ(t *testing.T) {
	got := Parse("en;q=0,fr;q=0.9", "")
	assert.Equal(t, []string{"fr"}, got)
}

func TestParseClampsOutOfRange(t *testing.T) {
	got := Parse("en;q=2.5", "")
	assert.Empty(t, got)
}

func TestParseDefaultInsertedAtLowPriority(t *testing.T) {
	got := Parse("fr;q=0.05", "en")
	// fr;q=0.05 clamps to neither zero nor dropped (0.05 is in range), but
	// the default (q=0.1) outranks it. Neither token has a '-', so the
	// base-language pass contributes nothing.
	assert.Equal(t, []string{"en", "fr"}, got)
}

func TestParseStableForEqualQValues(t *testing.T) {
	got := Parse("a,b,c", "")
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestParseBaseLanguageOnlyForHyphenatedEntries(t *testing.T) {
	got := Parse("en-US;q=0.9,fr;q=0.8", "")
	assert.Equal(t, []string{"en-us", "fr", "en"}, got)
}
