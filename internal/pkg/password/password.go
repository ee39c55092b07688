package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes  = 32
	iterations = 260000
	keyBytes   = 32
)

// Hash derives a PBKDF2-SHA256 hash of password with a fresh random salt.
// The salt is returned base64-encoded and must be stored alongside the hash;
// it is never reused across calls.
func Hash(password string) (hash, salt string, err error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}
	salt = base64.RawStdEncoding.EncodeToString(raw)
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyBytes, sha256.New)
	return hex.EncodeToString(key), salt, nil
}

// Verify recomputes the derivation with the stored salt and compares it to the
// stored hash in constant time. Any malformed input fails closed (false).
func Verify(hash, password, salt string) bool {
	stored, err := hex.DecodeString(hash)
	if err != nil || len(stored) != keyBytes {
		return false
	}
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyBytes, sha256.New)
	return subtle.ConstantTimeCompare(stored, key) == 1
}
