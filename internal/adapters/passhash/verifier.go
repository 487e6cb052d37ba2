// Package passhash verifies plaintext secrets against stored password
// hashes in either of two formats: the delimited PBKDF2 form minted by
// the platform being migrated from, or native bcrypt. The format is
// detected structurally, never configured, and every failure path
// resolves to "no match" rather than an error.
package passhash

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// legacyAlgorithmTag identifies hashes imported from the prior system.
	legacyAlgorithmTag = "pbkdf2_sha256"

	// legacyDelimiter separates algorithm, iterations, salt, and digest.
	legacyDelimiter = "$"

	// legacyKeyLen is the derived key length of the imported hashes.
	legacyKeyLen = 32

	// legacySegments is the number of fields in a well-formed legacy hash.
	legacySegments = 4
)

// Verifier validates secrets against stored hashes. The zero value is
// ready to use.
type Verifier struct{}

// New returns a Verifier.
func New() *Verifier { return &Verifier{} }

// Verify reports whether secret matches storedHash. It never panics;
// malformed or unrecognized hashes verify as false.
func (v *Verifier) Verify(secret, storedHash string) bool {
	if secret == "" || storedHash == "" {
		return false
	}

	if !strings.Contains(storedHash, legacyDelimiter) {
		return verifyNative(secret, storedHash)
	}

	parts := strings.SplitN(storedHash, legacyDelimiter, legacySegments)
	if len(parts) < legacySegments {
		return verifyNative(secret, storedHash)
	}

	algorithm, iterations, salt, digest := parts[0], parts[1], parts[2], parts[3]
	if algorithm != legacyAlgorithmTag {
		// Unrecognized tag: the hash may still be a self-describing
		// native one (bcrypt strings contain the delimiter too).
		return verifyNative(secret, storedHash)
	}

	return verifyLegacy(secret, iterations, salt, digest)
}

// verifyLegacy recomputes the imported PBKDF2-HMAC-SHA256 digest and
// compares it in constant time.
func verifyLegacy(secret, iterations, salt, digest string) bool {
	rounds, err := strconv.Atoi(iterations)
	if err != nil || rounds <= 0 || salt == "" || digest == "" {
		return false
	}

	key := pbkdf2.Key([]byte(secret), []byte(salt), rounds, legacyKeyLen, sha256.New)
	encoded := base64.StdEncoding.EncodeToString(key)

	return subtle.ConstantTimeCompare([]byte(encoded), []byte(digest)) == 1
}

// verifyNative delegates to bcrypt, which parses its own self-salting
// format and compares internally in constant time.
func verifyNative(secret, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(secret)) == nil
}
