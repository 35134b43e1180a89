// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the length of the configured field key (256 bits).
	KeySize = 32

	ivSize  = aes.BlockSize
	tagSize = sha256.Size

	fieldDelimiter = ":"
	hkdfInfo       = "go-ride-keeper field cipher v1"
)

// fieldCipher is the private implementation of [FieldCipher].
type fieldCipher struct {
	block  cipher.Block
	macKey []byte
	random io.Reader
}

// NewFieldCipher builds a [FieldCipher] from a 32-byte key. The key is split
// with HKDF-SHA256 into an AES-256 key and an HMAC-SHA256 key, so the same
// key material is never used for both purposes.
//
// Returns [ErrInvalidKey] if key is not [KeySize] bytes long.
func NewFieldCipher(key []byte) (FieldCipher, error) {
	return newFieldCipher(key, rand.Reader)
}

func newFieldCipher(key []byte, random io.Reader) (*fieldCipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKey, len(key))
	}

	sub := make([]byte, 2*KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, key, nil, []byte(hkdfInfo)), sub); err != nil {
		return nil, fmt.Errorf("derive sub-keys: %w", err)
	}

	block, err := aes.NewCipher(sub[:KeySize])
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	return &fieldCipher{
		block:  block,
		macKey: sub[KeySize:],
		random: random,
	}, nil
}

// Encrypt implements [FieldCipher].
func (c *fieldCipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	// 1. Fresh IV per field
	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(c.random, iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	// 2. AES-256-CBC over the padded plaintext
	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(ciphertext, padded)

	// 3. Encrypt-then-MAC: the tag covers the IV too
	sealed := append(ciphertext, c.tag(iv, ciphertext)...)

	return hex.EncodeToString(iv) + fieldDelimiter + hex.EncodeToString(sealed), nil
}

// EncryptOptional implements [FieldCipher].
func (c *fieldCipher) EncryptOptional(plaintext *string) (*string, error) {
	if plaintext == nil {
		return nil, nil
	}
	enc, err := c.Encrypt(*plaintext)
	if err != nil {
		return nil, err
	}
	return &enc, nil
}

// Decrypt implements [FieldCipher].
func (c *fieldCipher) Decrypt(payload string) (string, error) {
	if payload == "" {
		return "", nil
	}

	ivHex, sealedHex, found := strings.Cut(payload, fieldDelimiter)
	if !found {
		return "", fmt.Errorf("%w: missing delimiter", ErrDecryptionFailed)
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil || len(iv) != ivSize {
		return "", fmt.Errorf("%w: bad iv", ErrDecryptionFailed)
	}

	sealed, err := hex.DecodeString(sealedHex)
	if err != nil {
		return "", fmt.Errorf("%w: bad ciphertext encoding", ErrDecryptionFailed)
	}

	ctLen := len(sealed) - tagSize
	if ctLen < aes.BlockSize || ctLen%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: bad ciphertext length", ErrDecryptionFailed)
	}
	ciphertext, tag := sealed[:ctLen], sealed[ctLen:]

	// Verify before touching the padding.
	if !hmac.Equal(tag, c.tag(iv, ciphertext)) {
		return "", fmt.Errorf("%w: authentication failed", ErrDecryptionFailed)
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(padded, ciphertext)

	plain, ok := pkcs7Unpad(padded, aes.BlockSize)
	if !ok {
		return "", fmt.Errorf("%w: bad padding", ErrDecryptionFailed)
	}

	return string(plain), nil
}

func (c *fieldCipher) tag(iv, ciphertext []byte) []byte {
	mac := hmac.New(sha256.New, c.macKey)
	mac.Write(iv)
	mac.Write(ciphertext)
	return mac.Sum(nil)
}

// IsEncrypted reports whether s has the shape of an encrypted field. It does
// not verify the tag; use Decrypt for that.
func IsEncrypted(s string) bool {
	ivHex, sealedHex, found := strings.Cut(s, fieldDelimiter)
	if !found || len(ivHex) != 2*ivSize || len(sealedHex) < 2*(aes.BlockSize+tagSize) {
		return false
	}
	_, errIV := hex.DecodeString(ivHex)
	_, errCT := hex.DecodeString(sealedHex)
	return errIV == nil && errCT == nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(bytes.Clone(data), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, false
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, false
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, false
		}
	}
	return data[:len(data)-n], true
}
