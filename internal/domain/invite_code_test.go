package domain

import "testing"

func TestNormalizeInviteCode(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"bare suffix", "ab12z", "DBV-AB12Z"},
		{"uppercase suffix", "AB12Z", "DBV-AB12Z"},
		{"full code", "DBV-AB12Z", "DBV-AB12Z"},
		{"lowercase full code", "dbv-ab12z", "DBV-AB12Z"},
		{"padded", "  ab12z  ", "DBV-AB12Z"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeInviteCode(tc.in); got != tc.want {
				t.Errorf("NormalizeInviteCode(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestValidInviteCode(t *testing.T) {
	cases := []struct {
		code string
		want bool
	}{
		{"DBV-AB12Z", true},
		{"DBV-00000", true},
		{"DBV-ZZZZZ", true},
		{"DBV-AB12", false},
		{"DBV-AB12ZZ", false},
		{"DBV-ab12z", false},
		{"DBV-AB1 Z", false},
		{"XYZ-AB12Z", false},
		{"AB12Z", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := ValidInviteCode(tc.code); got != tc.want {
			t.Errorf("ValidInviteCode(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}
