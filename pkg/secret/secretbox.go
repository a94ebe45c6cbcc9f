// Package secret cifra segredos de usuários antes de persistir no banco
package secret

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var ErrInvalidCiphertext = errors.New("secret: texto cifrado inválido")

// Box cifra e decifra valores com NaCl secretbox usando uma chave derivada da SECRET_KEY
type Box struct {
	key [32]byte
}

func NewBox(passphrase string) *Box {
	return &Box{key: sha256.Sum256([]byte(passphrase))}
}

// Seal cifra o texto e devolve nonce+ciphertext em base64
func (b *Box) Seal(plaintext string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("secret: erro ao gerar nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &b.key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (b *Box) Open(encoded string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}

	if len(sealed) < nonceSize+secretbox.Overhead {
		return "", ErrInvalidCiphertext
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	plaintext, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &b.key)
	if !ok {
		return "", ErrInvalidCiphertext
	}

	return string(plaintext), nil
}
