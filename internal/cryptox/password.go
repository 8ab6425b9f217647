// Package cryptox implements the password digest stored in directory
// records. The digest is an obfuscation, not a security boundary: it is
// deterministic (equal plaintexts produce equal digests, so records can be
// compared without decoding) and reversible only with the codec key.
package cryptox

import (
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/nacl/secretbox"
)

const digestPrefix = "sb1$"

const nonceSize = 24

var ErrMalformedDigest = errors.New("malformed password digest")

// PasswordCodec encodes plaintext passwords into digests and back.
type PasswordCodec struct {
	key [32]byte
}

// NewPasswordCodec derives the codec key from an arbitrary secret string.
func NewPasswordCodec(secret string) *PasswordCodec {
	return &PasswordCodec{key: blake2b.Sum256([]byte(secret))}
}

// Encode returns the digest of plaintext.
//
// The nonce is a keyed BLAKE2b hash of the plaintext, which is what makes
// the output deterministic.
func (c *PasswordCodec) Encode(plaintext string) string {
	nonce := c.nonceFor(plaintext)
	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &c.key)
	return digestPrefix + base64.RawURLEncoding.EncodeToString(sealed)
}

// Decode recovers the plaintext from a digest produced by Encode.
func (c *PasswordCodec) Decode(digest string) (string, error) {
	raw, ok := strings.CutPrefix(digest, digestPrefix)
	if !ok {
		return "", ErrMalformedDigest
	}

	sealed, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil || len(sealed) < nonceSize+secretbox.Overhead {
		return "", ErrMalformedDigest
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	plaintext, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &c.key)
	if !ok {
		return "", ErrMalformedDigest
	}
	return string(plaintext), nil
}

// Matches reports whether plaintext encodes to digest.
func (c *PasswordCodec) Matches(plaintext, digest string) bool {
	return digest != "" && c.Encode(plaintext) == digest
}

func (c *PasswordCodec) nonceFor(plaintext string) [nonceSize]byte {
	var nonce [nonceSize]byte

	// blake2b.New only fails for invalid sizes or keys longer than 64 bytes.
	h, _ := blake2b.New(nonceSize, c.key[:])
	h.Write([]byte(plaintext))
	copy(nonce[:], h.Sum(nil))

	return nonce
}
