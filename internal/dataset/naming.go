package dataset

import "strings"

// SanitizeAddress converts a wallet address to a filename-safe stem.
// "kaspa:qpz..." -> "kaspa_qpz...".
func SanitizeAddress(address string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '.' || r == '_':
			return r
		default:
			return '_'
		}
	}, address)
}
