package password

import (
	"crypto/sha256"
	"fmt"
)

// DigestWidth is the length of every digest produced by Digest.
const DigestWidth = sha256.Size * 2

// Digest returns the lowercase hex SHA-256 of plain, zero-padded to
// DigestWidth. The same input always yields the same digest, so it can be
// compared against the value stored in Users.
func Digest(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return fmt.Sprintf("%0*x", DigestWidth, sum[:])
}
