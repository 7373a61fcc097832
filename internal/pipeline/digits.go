// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pipeline

import (
	"unicode"
	"unicode/utf8"
)

// LastDigit finds the byte index of the last digit in s. If there
// is no digit it returns -1 and false.
func LastDigit(s string) (int, bool) {
	last := -1
	for i, r := range s {
		if unicode.IsDigit(r) {
			last = i
		}
	}
	return last, last != -1
}

// TrimToLastDigit cuts off everything after the last digit in s,
// which gets rid of any noise that OCR picked up after the number.
// If there is no digit it returns "" and false.
func TrimToLastDigit(s string) (string, bool) {
	i, ok := LastDigit(s)
	if !ok {
		return "", false
	}
	_, size := utf8.DecodeRuneInString(s[i:])
	return s[:i+size], true
}
