package password

import "golang.org/x/crypto/bcrypt"

// Cost is the bcrypt cost factor used for new hashes.
const Cost = bcrypt.DefaultCost

// Hash returns a salted bcrypt hash of plaintext. Each call produces a
// different hash for the same input because bcrypt generates a fresh salt.
func Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash. It returns false
// for empty input and malformed hashes instead of surfacing an error, so a
// failed comparison is indistinguishable from a wrong password.
func Verify(plaintext, hash string) bool {
	if plaintext == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
