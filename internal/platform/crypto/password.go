package crypto

import (
	"fmt"
	"sync"

	"libraryapi/internal/apperr"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is bcrypt's input limit; longer inputs are rejected rather than truncated.
const MaxPasswordBytes = 72

var ErrPasswordTooLong = fmt.Errorf("%w: password must be at most 72 bytes", apperr.ErrInvalidOperation)

// HashPassword returns a salted bcrypt digest of plain.
func HashPassword(plain string) (string, error) {
	if len(plain) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether plain matches hash. A malformed hash never matches.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

var dummyHash = sync.OnceValue(func() string {
	h, err := bcrypt.GenerateFromPassword([]byte("library-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		return ""
	}
	return string(h)
})

// VerifyDummy spends the same bcrypt cost as VerifyPassword and always reports false.
// Login uses it when the account does not exist.
func VerifyDummy(plain string) bool {
	_ = VerifyPassword(dummyHash(), plain)
	return false
}
