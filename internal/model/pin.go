package model

import "golang.org/x/crypto/bcrypt"

// HashPIN hashes a staff POS access PIN with bcrypt at the default
// cost. The plain PIN is never stored.
func HashPIN(pin string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckPIN reports whether pin matches the stored bcrypt hash.
func CheckPIN(hash, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
