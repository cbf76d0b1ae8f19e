package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// Confirmation codes are fixed-width 6-digit decimal strings. The width is
// part of the contract: "042137" and "42137" are different codes.
const codeDigits = 6

var codeSpace = func() *big.Int {
	n := big.NewInt(10)
	return n.Exp(n, big.NewInt(codeDigits), nil)
}()

// GenerateCode draws a fresh confirmation code from crypto/rand.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n), nil
}

// HashCode creates a bcrypt hash of the code for storage. The raw code is
// never persisted, so overwriting the hash invalidates the previous code.
func HashCode(code string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyCode checks the supplied code against the stored hash. The match
// is exact and case-insensitivity does not apply (codes are numeric).
func VerifyCode(hashedCode, providedCode string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedCode), []byte(providedCode))
}
