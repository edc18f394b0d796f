package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted bcrypt digest. The salt is randomized per
// call, so hashing the same plaintext twice yields different digests.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the digest was produced from the plaintext.
// A malformed or empty digest verifies as false, never as an error; accounts
// without a stored hash (Google sign-in) therefore always fail password login.
func VerifyPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
