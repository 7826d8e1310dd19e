// Package mailto builds mailto: URIs per RFC 2368.
package mailto

// Scheme is the literal URI scheme prefix.
const Scheme = "mailto:"

const upperhex = "0123456789ABCDEF"

// URI builds a mailto: URI from an optional recipient and subject.
// An empty string means the field is absent. Each present field is
// percent-encoded independently; with both absent the result is the
// bare scheme, which desktop handlers treat as "open an empty composer".
func URI(to, subject string) string {
	uri := Scheme
	if to != "" {
		uri += escape(to)
	}
	if subject != "" {
		uri += "?subject=" + escape(subject)
	}
	return uri
}

// escape percent-encodes everything outside the RFC 3986 unreserved set.
// '@' stays literal: RFC 2368 keeps the mailbox separator visible in the
// recipient, and encoding it in a subject is harmless but unnecessary.
func escape(s string) string {
	hexCount := 0
	for i := 0; i < len(s); i++ {
		if shouldEscape(s[i]) {
			hexCount++
		}
	}
	if hexCount == 0 {
		return s
	}

	buf := make([]byte, 0, len(s)+2*hexCount)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldEscape(c) {
			buf = append(buf, '%', upperhex[c>>4], upperhex[c&0xf])
		} else {
			buf = append(buf, c)
		}
	}
	return string(buf)
}

func shouldEscape(c byte) bool {
	if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' {
		return false
	}
	switch c {
	case '-', '_', '.', '~', '@':
		return false
	}
	return true
}
