package domain

import "strings"

const (
	// InviteCodePrefix is fixed for every generated code.
	InviteCodePrefix = "DBV-"
	// InviteCodeAlphabet is the 36-symbol set the random suffix draws from.
	InviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// InviteCodeSuffixLength gives ~36^5 combinations per prefix.
	InviteCodeSuffixLength = 5
)

// NormalizeInviteCode canonicalizes a user-supplied invite code: trims
// whitespace, strips a duplicate prefix, uppercases the suffix and
// re-applies the prefix. An empty or whitespace-only input yields "".
func NormalizeInviteCode(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	suffix := strings.ToUpper(trimmed)
	suffix = strings.TrimPrefix(suffix, InviteCodePrefix)
	return InviteCodePrefix + suffix
}

// ValidInviteCode reports whether a code has the generated format:
// prefix plus exactly five characters from the code alphabet.
func ValidInviteCode(code string) bool {
	if !strings.HasPrefix(code, InviteCodePrefix) {
		return false
	}
	suffix := strings.TrimPrefix(code, InviteCodePrefix)
	if len(suffix) != InviteCodeSuffixLength {
		return false
	}
	for _, r := range suffix {
		if !strings.ContainsRune(InviteCodeAlphabet, r) {
			return false
		}
	}
	return true
}
