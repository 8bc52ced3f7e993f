package security

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const accessCodeLength = 8

// NewAccessCode returns a fresh order-form access code and its bcrypt hash.
// Only the hash is stored; the plain code is shown to staff once.
func NewAccessCode() (code, hash string, err error) {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	code = strings.ToUpper(raw[:accessCodeLength])

	h, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return code, string(h), nil
}

// CheckAccessCode reports whether code matches the stored hash. Codes are
// case-insensitive.
func CheckAccessCode(hash, code string) bool {
	if hash == "" || code == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(strings.ToUpper(strings.TrimSpace(code))))
	return err == nil
}
