package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Setenv("DATA_ENCRYPTION_KEY", testKey)

	ciphertext, err := EncryptString("JBSWY3DPEHPK3PXP")
	require.NoError(t, err)
	assert.NotContains(t, ciphertext, "JBSWY3DPEHPK3PXP")

	plaintext, err := DecryptString(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", plaintext)
}

func TestDecrypt_WrongKey(t *testing.T) {
	t.Setenv("DATA_ENCRYPTION_KEY", testKey)
	ciphertext, err := EncryptString("secret")
	require.NoError(t, err)

	t.Setenv("DATA_ENCRYPTION_KEY", "ffffffffffffffffffffffffffffffff")
	_, err = DecryptString(ciphertext)
	assert.Error(t, err)
}

func TestEncrypt_RequiresFullLengthKey(t *testing.T) {
	t.Setenv("DATA_ENCRYPTION_KEY", "too-short")

	_, err := EncryptString("secret")
	assert.Error(t, err)
}
