package strings

import "testing"

func TestNormalizeWhitespace(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "only spaces", input: "   ", want: ""},
		{name: "collapses runs", input: "a  b\t c", want: "a b c"},
		{name: "trims ends", input: "  hello  ", want: "hello"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeWhitespace(tc.input); got != tc.want {
				t.Errorf("NormalizeWhitespace(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeNewlines(t *testing.T) {
	if got := NormalizeNewlines("a\r\nb\rc"); got != "a\nb\nc" {
		t.Errorf("NormalizeNewlines = %q", got)
	}
}

func TestTrimTrailingNewlines(t *testing.T) {
	if got := TrimTrailingNewlines("line\r\n\n"); got != "line" {
		t.Errorf("TrimTrailingNewlines = %q", got)
	}
}
