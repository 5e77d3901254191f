package utils

import "testing"

func TestParsePage(t *testing.T) {
	cases := []struct {
		value string
		def   int
		want  int
	}{
		{"", 1, 1},
		{"3", 1, 3},
		{"0", 1, 1},
		{"-2", 1, 1},
		{"abc", 10, 10},
	}
	for _, c := range cases {
		if got := ParsePage(c.value, c.def); got != c.want {
			t.Errorf("ParsePage(%q, %d) = %d, want %d", c.value, c.def, got, c.want)
		}
	}
}

func TestPageBounds(t *testing.T) {
	cases := []struct {
		page, size, n  int
		wantLo, wantHi int
	}{
		{1, 10, 25, 0, 10},
		{3, 10, 25, 20, 25},
		{4, 10, 25, 25, 25},
		{1, 10, 0, 0, 0},
		{2, 5, 5, 5, 5},
	}
	for _, c := range cases {
		lo, hi := PageBounds(c.page, c.size, c.n)
		if lo != c.wantLo || hi != c.wantHi {
			t.Errorf("PageBounds(%d,%d,%d) = (%d,%d), want (%d,%d)",
				c.page, c.size, c.n, lo, hi, c.wantLo, c.wantHi)
		}
	}
}
