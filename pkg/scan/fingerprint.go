package scan

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// fingerprintSize is the BLAKE2b digest size in bytes.
const fingerprintSize = 8

// FingerprintPrefix marks a fingerprinted address in the session log.
const FingerprintPrefix = "fp:"

// Fingerprinter maps hardware addresses to keyed digests. Equal addresses
// give equal fingerprints for the same Fingerprinter only.
type Fingerprinter struct {
	key []byte
}

// NewFingerprinter creates a fingerprinter with a random key.
func NewFingerprinter() (*Fingerprinter, error) {
	key := make([]byte, blake2b.Size256)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return &Fingerprinter{key: key}, nil
}

// NewFingerprinterWithKey creates a fingerprinter with a fixed key of at
// most 64 bytes.
func NewFingerprinterWithKey(key []byte) (*Fingerprinter, error) {
	if _, err := blake2b.New(fingerprintSize, key); err != nil {
		return nil, err
	}
	return &Fingerprinter{key: append([]byte(nil), key...)}, nil
}

// Address returns the fingerprint of addr. Case is ignored.
func (f *Fingerprinter) Address(addr string) string {
	h, err := blake2b.New(fingerprintSize, f.key)
	if err != nil {
		// The key was checked at construction.
		panic(err)
	}
	h.Write([]byte(strings.ToUpper(addr)))
	return FingerprintPrefix + hex.EncodeToString(h.Sum(nil))
}
