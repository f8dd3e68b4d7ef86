// internal/app/system/sanitize/sanitize.go
// Package sanitize cleans client-supplied metadata before persistence.
// Browser headers are untrusted input that later renders in the admin
// dashboard, so everything is reduced to plain text.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// maxFieldLen caps stored header values; anything longer is truncated.
const maxFieldLen = 512

var strict = bluemonday.StrictPolicy()

// Plain strips all HTML, collapses surrounding whitespace, and truncates
// to a storable length.
func Plain(s string) string {
	s = strings.TrimSpace(strict.Sanitize(s))
	if len(s) > maxFieldLen {
		s = s[:maxFieldLen]
	}
	return s
}
