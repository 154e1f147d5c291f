// Package passhash implements salted password hashing for account
// credentials.
//
// Two schemes are available. The default "sha256" scheme computes a single
// SHA-256 digest of password||salt, which is what existing deployments store
// on disk. The "argon2id" scheme derives the hash with a memory-hard KDF and
// is the recommended choice for new databases; it is not the default because
// rows written by the sha256 scheme must keep validating.
//
// Hashes are compared in constant time regardless of scheme.
package passhash

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/takatracker/takatracker/internal/common"
)

const (
	SchemeSHA256   = "sha256"
	SchemeArgon2id = "argon2id"

	saltSize = 32
)

// Hasher turns a password and a stored salt into a text hash and verifies
// candidates against stored hashes.
type Hasher interface {
	// Hash computes the text hash of password under salt.
	Hash(password, salt string) string

	// Verify reports whether password under salt matches storedHash.
	// The comparison is constant-time.
	Verify(password, salt, storedHash string) bool
}

// New returns the Hasher for the named scheme.
func New(scheme string) (Hasher, error) {
	switch scheme {
	case SchemeSHA256:
		return sha256Hasher{}, nil
	case SchemeArgon2id:
		return argon2Hasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}

// GenerateSalt returns a fresh base64-encoded 32-byte salt.
func GenerateSalt() (string, error) {
	b, err := common.GenerateRandBytes(saltSize)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// sha256Hasher reproduces the legacy on-disk format:
// base64(SHA-256(password || salt)), with salt already in its encoded text
// form when concatenated.
type sha256Hasher struct{}

func (sha256Hasher) Hash(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (h sha256Hasher) Verify(password, salt, storedHash string) bool {
	return constantTimeEqual(h.Hash(password, salt), storedHash)
}

// argon2Hasher derives base64(argon2id(password, salt)) with t=1, m=64MiB,
// p=4 and a 32-byte output.
type argon2Hasher struct{}

func (argon2Hasher) Hash(password, salt string) string {
	key := argon2.IDKey([]byte(password), []byte(salt), 1, 64*1024, 4, 32)
	return base64.StdEncoding.EncodeToString(key)
}

func (h argon2Hasher) Verify(password, salt, storedHash string) bool {
	return constantTimeEqual(h.Hash(password, salt), storedHash)
}
