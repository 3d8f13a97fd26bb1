package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// Codec encrypts and decrypts short string values (settings at rest) with
// AES-256-GCM. The key is derived per value from the configured secret and a
// random salt, so the stored form is self-contained:
//
//	v1:<base64 salt>:<base64 nonce||ciphertext>
type Codec struct {
	secret []byte
}

const (
	version = "v1"
	saltLen = 16
	keyLen  = 32
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

var ErrMalformed = fmt.Errorf("secrets: malformed ciphertext")

func NewCodec(secret string) (*Codec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("secrets: empty secret")
	}
	return &Codec{secret: []byte(secret)}, nil
}

func (c *Codec) aead(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(c.secret, salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (c *Codec) Encrypt(plaintext string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	aead, err := c.aead(salt)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return strings.Join([]string{
		version,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(sealed),
	}, ":"), nil
}

func (c *Codec) Decrypt(encoded string) (string, error) {
	parts := strings.SplitN(encoded, ":", 3)
	if len(parts) != 3 || parts[0] != version {
		return "", ErrMalformed
	}
	salt, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", ErrMalformed
	}
	sealed, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return "", ErrMalformed
	}
	aead, err := c.aead(salt)
	if err != nil {
		return "", err
	}
	if len(sealed) < aead.NonceSize() {
		return "", ErrMalformed
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("secrets: decrypt: %w", err)
	}
	return string(plaintext), nil
}
