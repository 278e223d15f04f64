// Package fingerprint computes content digests used for dedup and change
// detection. The digest is an equality check and a display value, not a
// security boundary.
package fingerprint

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
)

var digestRegex = regexp.MustCompile("^[a-f0-9]{40}$")

// Sum returns the lowercase hex SHA-1 digest of data. Identical bytes
// always produce the identical digest.
func Sum(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

// Valid reports whether s has the shape of a digest produced by Sum.
func Valid(s string) bool {
	return digestRegex.MatchString(s)
}

// Short returns a display prefix of a digest, at most n characters.
func Short(digest string, n int) string {
	if len(digest) <= n {
		return digest
	}
	return digest[:n]
}
