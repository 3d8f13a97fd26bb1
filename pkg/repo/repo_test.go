package repo

import "testing"

func TestFormatLimitOffset(t *testing.T) {
	cases := []struct {
		limit, offset int
		want          string
	}{
		{10, 20, "LIMIT 10 OFFSET 20"},
		{10, 0, "LIMIT 10"},
		{0, 20, "OFFSET 20"},
		{0, 0, ""},
		{-1, -5, ""},
	}
	for _, c := range cases {
		if got := FormatLimitOffset(c.limit, c.offset); got != c.want {
			t.Errorf("FormatLimitOffset(%d, %d) = %q, want %q", c.limit, c.offset, got, c.want)
		}
	}
}

func TestEscapeLike(t *testing.T) {
	if got := EscapeLike(`50%_off\now`); got != `50\%\_off\\now` {
		t.Errorf("EscapeLike = %q", got)
	}
	if got := EscapeLike("acme"); got != "acme" {
		t.Errorf("EscapeLike plain = %q", got)
	}
}
