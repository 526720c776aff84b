package jwtx

import "strings"

// ParseBearer extracts a token from an Authorization header value. It
// accepts "Bearer <token>" with a case-insensitive scheme as well as a
// bare token. Returns false for empty or malformed values. Pure parsing,
// no verification.
func ParseBearer(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}

	fields := strings.Fields(header)
	switch len(fields) {
	case 1:
		return fields[0], true
	case 2:
		if strings.EqualFold(fields[0], "Bearer") {
			return fields[1], true
		}
	}
	return "", false
}
