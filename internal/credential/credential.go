// Package credential issues one-time candidate passwords and quiz tokens.
package credential

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const (
	PasswordLength = 8
	tokenBytes     = 16

	passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%"
)

// GeneratePassword draws PasswordLength characters uniformly from the
// password alphabet.
func GeneratePassword() (string, error) {
	max := big.NewInt(int64(len(passwordAlphabet)))
	buf := make([]byte, PasswordLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		buf[i] = passwordAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// GenerateToken returns 16 random bytes encoded as unpadded URL-safe base64.
func GenerateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// ComparePassword reports whether password matches the stored bcrypt hash.
func ComparePassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Issued is a freshly generated credential pair. Password is plaintext and
// must only travel to the candidate's inbox.
type Issued struct {
	Password     string
	PasswordHash string
	Token        string
}

// Issue generates a password, its hash, and a quiz token.
func Issue() (Issued, error) {
	password, err := GeneratePassword()
	if err != nil {
		return Issued{}, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return Issued{}, err
	}
	token, err := GenerateToken()
	if err != nil {
		return Issued{}, err
	}
	return Issued{Password: password, PasswordHash: hash, Token: token}, nil
}
