package utils

import (
	"crypto/md5"
	"fmt"
)

// QueryHasher provides consistent hashing of canonical query keys, used for
// cache keys and compact log correlation ids.
type QueryHasher struct{}

// NewQueryHasher creates a new query hasher instance.
func NewQueryHasher() *QueryHasher {
	return &QueryHasher{}
}

// HashQuery generates a consistent MD5 hash for a canonical query key.
func (h *QueryHasher) HashQuery(key string) string {
	if key == "" {
		return ""
	}

	sum := md5.Sum([]byte(key))
	return fmt.Sprintf("%x", sum)
}

// HashQueryShort generates the first 8 characters of the query hash, for
// logging and display.
func (h *QueryHasher) HashQueryShort(key string) string {
	full := h.HashQuery(key)
	if len(full) >= 8 {
		return full[:8]
	}
	return full
}

var globalHasher = NewQueryHasher()

// HashQuery hashes a canonical query key using the global hasher.
func HashQuery(key string) string {
	return globalHasher.HashQuery(key)
}

// HashQueryShort returns the short query hash using the global hasher.
func HashQueryShort(key string) string {
	return globalHasher.HashQueryShort(key)
}
