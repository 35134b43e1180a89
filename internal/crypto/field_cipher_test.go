package crypto

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCipher(t *testing.T) FieldCipher {
	t.Helper()
	c, err := NewFieldCipher(bytes.Repeat([]byte{0x2A}, KeySize))
	require.NoError(t, err)
	return c
}

// flipHex replaces the hex digit at i with a different one.
func flipHex(s string, i int) string {
	b := []byte(s)
	if b[i] == '0' {
		b[i] = '1'
	} else {
		b[i] = '0'
	}
	return string(b)
}

// ── construction ──────────────────────────────────────────────────────────────

func TestNewFieldCipher_KeyLength(t *testing.T) {
	for _, n := range []int{0, 16, 24, 31, 33, 64} {
		_, err := NewFieldCipher(make([]byte, n))
		assert.ErrorIs(t, err, ErrInvalidKey, "key length %d", n)
	}

	_, err := NewFieldCipher(make([]byte, KeySize))
	assert.NoError(t, err)
}

// ── Encrypt / Decrypt ─────────────────────────────────────────────────────────

func TestFieldCipher_RoundTrip(t *testing.T) {
	c := newTestCipher(t)

	inputs := []string{
		"x",
		"hunter2",
		"rider@example.com",
		"+49 151 23456789",
		"exactly16bytes!!",
		"Straße 12, 10115 Berlin 🚕",
		strings.Repeat("long field ", 200),
	}

	for _, in := range inputs {
		enc, err := c.Encrypt(in)
		require.NoError(t, err)
		assert.NotContains(t, enc, in)
		assert.True(t, IsEncrypted(enc), enc)

		got, err := c.Decrypt(enc)
		require.NoError(t, err)
		assert.Equal(t, in, got)
	}
}

func TestFieldCipher_Format(t *testing.T) {
	c := newTestCipher(t)

	enc, err := c.Encrypt("secret")
	require.NoError(t, err)

	ivHex, ctHex, found := strings.Cut(enc, ":")
	require.True(t, found)
	assert.Len(t, ivHex, 32, "16-byte IV hex-encoded")
	assert.Zero(t, len(ctHex)%2)
	assert.Equal(t, 2*(16+32), len(ctHex), "one block plus tag")
	assert.Equal(t, strings.ToLower(enc), enc)
}

func TestFieldCipher_FreshIVPerCall(t *testing.T) {
	c := newTestCipher(t)

	a, err := c.Encrypt("same")
	require.NoError(t, err)
	b, err := c.Encrypt("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a[:32], b[:32])
}

func TestFieldCipher_EmptyIsPassthrough(t *testing.T) {
	c := newTestCipher(t)

	enc, err := c.Encrypt("")
	require.NoError(t, err)
	assert.Empty(t, enc)
	assert.False(t, IsEncrypted(enc))

	dec, err := c.Decrypt("")
	require.NoError(t, err)
	assert.Empty(t, dec)
}

func TestFieldCipher_EncryptOptional(t *testing.T) {
	c := newTestCipher(t)

	got, err := c.EncryptOptional(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	empty := ""
	got, err = c.EncryptOptional(&empty)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, *got)

	phone := "+1 555 0100"
	got, err = c.EncryptOptional(&phone)
	require.NoError(t, err)
	require.NotNil(t, got)
	dec, err := c.Decrypt(*got)
	require.NoError(t, err)
	assert.Equal(t, phone, dec)
}

// ── failure modes ─────────────────────────────────────────────────────────────

func TestFieldCipher_TamperedCiphertextFails(t *testing.T) {
	c := newTestCipher(t)

	enc, err := c.Encrypt("4111111111111111")
	require.NoError(t, err)
	sep := strings.Index(enc, ":")

	for i := sep + 1; i < len(enc); i++ {
		got, err := c.Decrypt(flipHex(enc, i))
		require.ErrorIs(t, err, ErrDecryptionFailed, "position %d", i)
		assert.Empty(t, got)
	}
}

func TestFieldCipher_TamperedIVFails(t *testing.T) {
	c := newTestCipher(t)

	enc, err := c.Encrypt("driver phone")
	require.NoError(t, err)

	for i := 0; i < 32; i++ {
		_, err := c.Decrypt(flipHex(enc, i))
		require.ErrorIs(t, err, ErrDecryptionFailed, "position %d", i)
	}
}

func TestFieldCipher_WrongKeyFails(t *testing.T) {
	c := newTestCipher(t)
	other, err := NewFieldCipher(bytes.Repeat([]byte{0x2B}, KeySize))
	require.NoError(t, err)

	enc, err := c.Encrypt("secret")
	require.NoError(t, err)

	got, err := other.Decrypt(enc)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
	assert.Empty(t, got)
}

func TestFieldCipher_MalformedInput(t *testing.T) {
	c := newTestCipher(t)
	valid, err := c.Encrypt("secret")
	require.NoError(t, err)
	ivHex, ctHex, _ := strings.Cut(valid, ":")

	tests := []struct {
		name    string
		payload string
	}{
		{"no delimiter", ivHex + ctHex},
		{"only delimiter", ":"},
		{"non-hex iv", strings.Repeat("zz", 16) + ":" + ctHex},
		{"short iv", ivHex[:30] + ":" + ctHex},
		{"non-hex ciphertext", ivHex + ":" + strings.Repeat("g", len(ctHex))},
		{"odd-length ciphertext", ivHex + ":" + ctHex[:len(ctHex)-1]},
		{"truncated ciphertext", ivHex + ":" + ctHex[:len(ctHex)-2]},
		{"tag only", ivHex + ":" + ctHex[32:]},
		{"extra delimiter", ivHex + ":" + ctHex + ":00"},
		{"plain text", "not encrypted at all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				got, err := c.Decrypt(tt.payload)
				assert.True(t, errors.Is(err, ErrDecryptionFailed), "got %v", err)
				assert.Empty(t, got)
			})
		})
	}
}

func TestFieldCipher_RandomSourceFailure(t *testing.T) {
	c, err := newFieldCipher(make([]byte, KeySize), bytes.NewReader(nil))
	require.NoError(t, err)

	_, err = c.Encrypt("secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate iv")
}

// ── helpers ───────────────────────────────────────────────────────────────────

func TestPKCS7(t *testing.T) {
	for n := 0; n <= 33; n++ {
		data := bytes.Repeat([]byte{'a'}, n)
		padded := pkcs7Pad(data, 16)
		assert.Zero(t, len(padded)%16)
		assert.Greater(t, len(padded), n)

		got, ok := pkcs7Unpad(padded, 16)
		require.True(t, ok)
		assert.Equal(t, data, got)
	}

	_, ok := pkcs7Unpad(append(bytes.Repeat([]byte{'a'}, 15), 0), 16)
	assert.False(t, ok)
	_, ok = pkcs7Unpad(append(bytes.Repeat([]byte{'a'}, 15), 17), 16)
	assert.False(t, ok)
	_, ok = pkcs7Unpad(append(bytes.Repeat([]byte{'a'}, 14), 1, 2), 16)
	assert.False(t, ok)
}

func TestIsEncrypted(t *testing.T) {
	assert.False(t, IsEncrypted(""))
	assert.False(t, IsEncrypted("plain"))
	assert.False(t, IsEncrypted("abcd:ef"))
	assert.False(t, IsEncrypted(strings.Repeat("0", 32)+":"+strings.Repeat("0", 10)))
	assert.True(t, IsEncrypted(strings.Repeat("0", 32)+":"+strings.Repeat("0", 96)))
}
