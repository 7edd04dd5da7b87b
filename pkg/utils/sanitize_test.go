package utils

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	assert.Equal(t, "&lt;script&gt;alert(1)&lt;/script&gt;", Sanitize("<script>alert(1)</script>"))
	assert.Equal(t, "plain text", Sanitize("plain text"))
	assert.Equal(t, "", Sanitize(""))
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "N/A", OrDefault(""))
	assert.Equal(t, "N/A", OrDefault("   "))
	assert.Equal(t, "value", OrDefault("value"))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("user@example.com"))
	assert.True(t, ValidEmail("first.last+tag@sub.domain.org"))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("missing@tld."))
	assert.False(t, ValidEmail("@example.com"))
}

func TestSplitRequirements(t *testing.T) {
	assert.Equal(t, []string{"Go", "MongoDB", "Redis"}, SplitRequirements("Go, MongoDB , Redis"))
	assert.Equal(t, []string{"solo"}, SplitRequirements("solo"))
	assert.Nil(t, SplitRequirements(" , ,"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "abcde", Truncate("abcdefgh", 5))
}

func TestTruncateRuneBoundary(t *testing.T) {
	// Counts characters, not bytes, so multi-byte runes are never split.
	assert.Equal(t, "héllø", Truncate("héllø", 5))
	assert.Equal(t, "hél", Truncate("héllø wörld", 3))
	assert.True(t, utf8.ValidString(Truncate("ééééé", 3)))
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	assert.NoError(t, err)
	assert.True(t, CheckPassword("hunter22", hash))
	assert.False(t, CheckPassword("wrong", hash))
}
