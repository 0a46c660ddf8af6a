package internal

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// EmailRegexTemplate is the pattern used to pre-check admin emails before
// they are sent to the backend.
const EmailRegexTemplate = `^[\w.\+\.\-]+@([\w\-]+\.)+[\w]{2,}$`

var emailRegex = regexp.MustCompile(EmailRegexTemplate)

// ValidEmail helper function allows to validate an email address.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// YesNo renders a boolean flag the way the listing tables show it.
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// IsYes reports whether a rendered flag is affirmative.
func IsYes(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "yes")
}

// SessionKey helper function hashes the backend session token so it can be
// used as a storage key without keeping the token itself at rest.
func SessionKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// timeLayouts are the timestamp formats the backend has been seen to emit.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses a backend timestamp. It returns the zero time when the
// value is empty or cannot be parsed.
func ParseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// RelativeTime renders t relative to now ("3 days ago"). Zero times render as
// an empty string.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
