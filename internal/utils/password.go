package utils

import "golang.org/x/crypto/bcrypt"

// passwordHashCost is the bcrypt work factor used for member passwords.
const passwordHashCost = bcrypt.DefaultCost

// HashPassword derives a bcrypt hash suitable for storing on the user row.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	return string(hash), err
}

// CheckPasswordHash reports whether the plaintext matches the stored hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
