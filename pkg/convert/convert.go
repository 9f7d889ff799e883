// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides fault-tolerant conversions of submitted text.

Form fields that reference other records (an author, a book, a genre) arrive as
strings. An unparseable reference is not a decoding error here: it converts to
zero, which no stored record uses, so the caller's existence check rejects it.

Do not use this package where malformed input must be told apart from zero.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToInt converts a string to an integer, silencing parsing errors.
// It returns 0 if the string is empty or cannot be parsed.
func ToInt(s string) int {
	return ToIntD(s, 0)
}

// ToIntD converts a string to an int, returning def if parsing fails or the string is blank.
func ToIntD(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}

	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
