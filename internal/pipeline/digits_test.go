// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pipeline

import (
	"testing"
	"unicode"
	"unicode/utf8"
)

func TestTrimToLastDigit(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		out   string
		index int
		found bool
	}{
		{"twonumbers", "42 17", "42 17", 4, true},
		{"trailingnoise", "42 17 |~\n\x0c", "42 17", 4, true},
		{"trailingletters", "12-34abc", "12-34", 4, true},
		{"interiornoise", "4,2 x 17.", "4,2 x 17", 7, true},
		{"single", "7", "7", 0, true},
		{"leadingnoise", "  9 ", "  9", 2, true},
		{"nodigits", "abc def\n", "", -1, false},
		{"empty", "", "", -1, false},
		{"onlywhitespace", " \n\x0c", "", -1, false},
		{"nonascii", "№ 42 ü", "№ 42", 5, true},
		{"arabicindic", "١٢ x", "١٢", 2, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			i, found := LastDigit(c.in)
			if i != c.index || found != c.found {
				t.Errorf("LastDigit(%q): expected %d, %v, got %d, %v", c.in, c.index, c.found, i, found)
			}
			out, found := TrimToLastDigit(c.in)
			if out != c.out || found != c.found {
				t.Errorf("TrimToLastDigit(%q): expected %q, %v, got %q, %v", c.in, c.out, c.found, out, found)
			}
			if found {
				r, _ := utf8.DecodeLastRuneInString(out)
				if !unicode.IsDigit(r) {
					t.Errorf("Trimmed output %q does not end with a digit", out)
				}
			}
		})
	}
}
