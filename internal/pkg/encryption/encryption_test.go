package encryption_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelops/console-service/internal/pkg/encryption"
)

// generateTestKey creates a valid 32-byte key for testing.
func generateTestKey(t *testing.T) string {
	t.Helper()
	key, err := encryption.GenerateKey()
	require.NoError(t, err)
	return key
}

func TestNewAESEncryptor_ValidKey(t *testing.T) {
	// Arrange
	key := generateTestKey(t)

	// Act
	encryptor, err := encryption.NewAESEncryptor(key)

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, encryptor)
}

func TestNewAESEncryptor_RawHexKey(t *testing.T) {
	// Arrange - a raw 32-character key works without base64 encoding
	key := "0123456789abcdef0123456789abcdef"

	// Act
	encryptor, err := encryption.NewAESEncryptor(key)

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, encryptor)
}

func TestNewAESEncryptor_InvalidKeyLength(t *testing.T) {
	// Arrange
	key := "tooshort!!!"

	// Act
	encryptor, err := encryption.NewAESEncryptor(key)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, encryptor)
	assert.Contains(t, err.Error(), "must be 32 bytes")
}

func TestAESEncryptor_EncryptDecrypt(t *testing.T) {
	// Arrange
	key := generateTestKey(t)
	encryptor, err := encryption.NewAESEncryptor(key)
	require.NoError(t, err)

	plaintext := []byte("refresh tokens are not for sharing")

	// Act
	ciphertext, err := encryptor.Encrypt(plaintext)
	require.NoError(t, err)

	decrypted, err := encryptor.Decrypt(ciphertext)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, plaintext, decrypted)
	assert.NotEqual(t, string(plaintext), ciphertext)
}

func TestAESEncryptor_EncryptDecryptString(t *testing.T) {
	// Arrange
	key := generateTestKey(t)
	encryptor, err := encryption.NewAESEncryptor(key)
	require.NoError(t, err)

	plaintext := "session payload"

	// Act
	ciphertext, err := encryptor.EncryptString(plaintext)
	require.NoError(t, err)

	decrypted, err := encryptor.DecryptString(ciphertext)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, plaintext, decrypted)
}

func TestAESEncryptor_Decrypt_InvalidCiphertext(t *testing.T) {
	// Arrange
	key := generateTestKey(t)
	encryptor, err := encryption.NewAESEncryptor(key)
	require.NoError(t, err)

	// Act
	_, err = encryptor.Decrypt("not-valid-base64!!!")

	// Assert
	assert.Error(t, err)
}

func TestAESEncryptor_Decrypt_TamperedCiphertext(t *testing.T) {
	// Arrange
	key := generateTestKey(t)
	encryptor, err := encryption.NewAESEncryptor(key)
	require.NoError(t, err)

	ciphertext, err := encryptor.Encrypt([]byte("secret"))
	require.NoError(t, err)

	// Act - appending characters corrupts the GCM tag
	_, err = encryptor.Decrypt(ciphertext + "X")

	// Assert
	assert.Error(t, err)
}

func TestAESEncryptor_EncryptDifferentNonces(t *testing.T) {
	// Arrange
	key := generateTestKey(t)
	encryptor, err := encryption.NewAESEncryptor(key)
	require.NoError(t, err)

	plaintext := []byte("same message")

	// Act - encrypt same message twice
	ciphertext1, err := encryptor.Encrypt(plaintext)
	require.NoError(t, err)

	ciphertext2, err := encryptor.Encrypt(plaintext)
	require.NoError(t, err)

	// Assert - ciphertexts differ because of random nonces
	assert.NotEqual(t, ciphertext1, ciphertext2)

	decrypted1, err := encryptor.Decrypt(ciphertext1)
	require.NoError(t, err)

	decrypted2, err := encryptor.Decrypt(ciphertext2)
	require.NoError(t, err)

	assert.Equal(t, decrypted1, decrypted2)
}

func TestGenerateKey(t *testing.T) {
	// Act
	key, err := encryption.GenerateKey()

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, key)

	encryptor, err := encryption.NewAESEncryptor(key)
	require.NoError(t, err)
	assert.NotNil(t, encryptor)
}

func TestGenerateKey_Uniqueness(t *testing.T) {
	// Act
	key1, err := encryption.GenerateKey()
	require.NoError(t, err)

	key2, err := encryption.GenerateKey()
	require.NoError(t, err)

	// Assert
	assert.NotEqual(t, key1, key2)
}

func TestNoOpEncryptor(t *testing.T) {
	// Arrange
	encryptor := encryption.NewNoOpEncryptor()
	plaintext := []byte("test message")

	// Act
	encrypted, err := encryptor.Encrypt(plaintext)
	require.NoError(t, err)

	decrypted, err := encryptor.Decrypt(encrypted)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, plaintext, decrypted)
}

func TestNoOpEncryptor_String(t *testing.T) {
	// Arrange
	encryptor := encryption.NewNoOpEncryptor()
	plaintext := "test message"

	// Act
	encrypted, err := encryptor.EncryptString(plaintext)
	require.NoError(t, err)

	decrypted, err := encryptor.DecryptString(encrypted)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, plaintext, decrypted)
}
