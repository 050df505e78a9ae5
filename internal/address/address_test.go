package address

import (
	"strings"
	"testing"
)

func TestStandardize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0xabc", "0x" + strings.Repeat("0", 61) + "abc"},
		{"abc", "0x" + strings.Repeat("0", 61) + "abc"},
		{"0XABC", "0x" + strings.Repeat("0", 61) + "abc"},
		{"0x1", "0x" + strings.Repeat("0", 63) + "1"},
		{"", "0x" + strings.Repeat("0", 64)},
		{"0x" + strings.Repeat("f", 64), "0x" + strings.Repeat("f", 64)},
	}

	for _, tc := range cases {
		if got := Standardize(tc.in); got != tc.want {
			t.Fatalf("Standardize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStandardizeIdempotent(t *testing.T) {
	inputs := []string{"0xabc", "ABC", "0x0", "", "0x" + strings.Repeat("9", 70), "not-hex"}
	for _, in := range inputs {
		once := Standardize(in)
		if twice := Standardize(once); twice != once {
			t.Fatalf("not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := []string{"0x1", "0xABCdef", strings.Repeat("a", 64)}
	for _, in := range valid {
		if err := Validate(in); err != nil {
			t.Fatalf("Validate(%q): unexpected error: %v", in, err)
		}
	}

	invalid := []string{"0xzz", "0x" + strings.Repeat("1", 65), "hello"}
	for _, in := range invalid {
		if err := Validate(in); err == nil {
			t.Fatalf("Validate(%q): expected error", in)
		}
	}
}
