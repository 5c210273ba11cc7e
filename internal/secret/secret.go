package secret

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost of 10 keeps hashing fast enough for interactive requests.
const bcryptCost = 10

// Digest derives a one-way digest of a caller-supplied secret. The
// secret itself is never stored.
func Digest(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("digest secret: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches digest. The comparison is
// timing-resistant.
func Verify(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
