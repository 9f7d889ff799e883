// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// htmlEscaper replaces the characters that are unsafe inside HTML text and attributes.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Trim removes surrounding whitespace and composes the text to Unicode NFC,
// so visually identical input compares equal.
func Trim(value string) string {
	return norm.NFC.String(strings.TrimSpace(value))
}

// Escape converts HTML-significant characters into entities.
func Escape(value string) string {
	return htmlEscaper.Replace(value)
}

// Sanitize is [Trim] followed by [Escape]; the result is the value persisted for
// free-text form fields.
func Sanitize(value string) string {
	return Escape(Trim(value))
}
