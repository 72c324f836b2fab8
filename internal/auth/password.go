package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters, encoded into each hash so they can evolve without
// invalidating stored credentials.
const (
	scryptN       = 32768
	scryptR       = 8
	scryptP       = 1
	scryptKeyLen  = 32
	scryptSaltLen = 16
)

// FederatedSentinelPrefix marks accounts provisioned through a federated
// login. The stored value is not a hash and can never verify as a password.
const FederatedSentinelPrefix = "firebase:"

// ErrNotPasswordHash is returned when the stored credential is not an scrypt
// hash, e.g. the federated account sentinel.
var ErrNotPasswordHash = errors.New("stored credential is not a password hash")

// HashPassword derives an scrypt hash with a fresh random salt, encoded as
// scrypt:N:r:p$<salt-hex>$<key-hex>.
func HashPassword(password string) (string, error) {
	salt := make([]byte, scryptSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}
	return fmt.Sprintf("scrypt:%d:%d:%d$%s$%s",
		scryptN, scryptR, scryptP,
		hex.EncodeToString(salt), hex.EncodeToString(key)), nil
}

// VerifyPassword reports whether password matches the encoded hash. The
// comparison of derived keys is constant-time. Values that are not scrypt
// hashes (the federated sentinel included) fail with ErrNotPasswordHash.
func VerifyPassword(encoded, password string) error {
	n, r, p, salt, want, err := decodeHash(encoded)
	if err != nil {
		return err
	}
	got, err := scrypt.Key([]byte(password), salt, n, r, p, len(want))
	if err != nil {
		return fmt.Errorf("derive key: %w", err)
	}
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return errors.New("password mismatch")
	}
	return nil
}

// FederatedSentinel builds the placeholder credential for an auto-provisioned
// account.
func FederatedSentinel(uid string) string {
	return FederatedSentinelPrefix + uid
}

func decodeHash(encoded string) (n, r, p int, salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || !strings.HasPrefix(parts[0], "scrypt:") {
		return 0, 0, 0, nil, nil, ErrNotPasswordHash
	}
	params := strings.Split(strings.TrimPrefix(parts[0], "scrypt:"), ":")
	if len(params) != 3 {
		return 0, 0, 0, nil, nil, ErrNotPasswordHash
	}
	if n, err = strconv.Atoi(params[0]); err != nil {
		return 0, 0, 0, nil, nil, ErrNotPasswordHash
	}
	if r, err = strconv.Atoi(params[1]); err != nil {
		return 0, 0, 0, nil, nil, ErrNotPasswordHash
	}
	if p, err = strconv.Atoi(params[2]); err != nil {
		return 0, 0, 0, nil, nil, ErrNotPasswordHash
	}
	if salt, err = hex.DecodeString(parts[1]); err != nil {
		return 0, 0, 0, nil, nil, ErrNotPasswordHash
	}
	if key, err = hex.DecodeString(parts[2]); err != nil || len(key) == 0 {
		return 0, 0, 0, nil, nil, ErrNotPasswordHash
	}
	return n, r, p, salt, key, nil
}
