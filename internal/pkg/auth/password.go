package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the hashing cost for configured admin secrets
const BcryptCost = 12

// HashPassword hashes a secret for the admin list in config
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword compares a bcrypt hash with a candidate secret
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// MatchSecret checks a supplied secret against a configured one, preferring
// the hash when present. Plain secrets are compared in constant time.
func MatchSecret(plain, hash, supplied string) bool {
	if hash != "" {
		return CheckPassword(hash, supplied)
	}
	if plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(plain), []byte(supplied)) == 1
}

// EqualDerived compares a supplied secret with a derived one in constant time
func EqualDerived(expected, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(expected), []byte(supplied)) == 1
}
