package creds

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/pbkdf2"
	"uplog/pkg/errors"
)

const (
	encryptedPrefix = "ENC["
	encryptedSuffix = "]"

	keyIterations = 10000
	keySalt       = "uplog-credentials-v1"
)

// getEncryptionKey derives an encryption key from environment or machine ID
func getEncryptionKey() []byte {
	// First check for explicit encryption key
	if key := os.Getenv("UPLOG_ENCRYPTION_KEY"); key != "" {
		return pbkdf2.Key([]byte(key), []byte(keySalt), keyIterations, 32, sha256.New)
	}

	// Fall back to machine-specific key. Protects against casual reading
	// of the config file, not against an attacker on the same machine.
	hostname, _ := os.Hostname()
	homeDir, _ := os.UserHomeDir()
	machineID := fmt.Sprintf("%s-%s-uplog", hostname, homeDir)
	return pbkdf2.Key([]byte(machineID), []byte(keySalt), keyIterations, 32, sha256.New)
}

// IsEncrypted reports whether a value carries the ENC[...] envelope.
func IsEncrypted(value string) bool {
	return strings.HasPrefix(value, encryptedPrefix) && strings.HasSuffix(value, encryptedSuffix)
}

// EncryptValue encrypts a credential value using AES-256-GCM and wraps it
// in the ENC[...] envelope. Already-encrypted values pass through.
func EncryptValue(value string) (string, error) {
	if value == "" || IsEncrypted(value) {
		return value, nil
	}

	key := getEncryptionKey()

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeEncryptionFailed, "failed to create cipher")
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeEncryptionFailed, "failed to create GCM")
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeEncryptionFailed, "failed to generate nonce")
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(value), nil)
	encoded := base64.StdEncoding.EncodeToString(ciphertext)

	return encryptedPrefix + encoded + encryptedSuffix, nil
}

// MaybeDecrypt decrypts ENC[...]-wrapped values and passes everything
// else through unchanged.
func MaybeDecrypt(value string) (string, error) {
	if !IsEncrypted(value) {
		return value, nil
	}

	encoded := strings.TrimPrefix(value, encryptedPrefix)
	encoded = strings.TrimSuffix(encoded, encryptedSuffix)

	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeEncryptionFailed, "failed to decode encrypted value")
	}

	key := getEncryptionKey()

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeEncryptionFailed, "failed to create cipher")
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeEncryptionFailed, "failed to create GCM")
	}

	if len(ciphertext) < gcm.NonceSize() {
		return "", errors.New(errors.ErrCodeEncryptionFailed, "encrypted value too short")
	}

	nonce, payload := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, payload, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeEncryptionFailed,
			"failed to decrypt value (wrong UPLOG_ENCRYPTION_KEY or different machine?)")
	}

	return string(plaintext), nil
}
