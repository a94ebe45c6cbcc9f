package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBox_SealOpen(t *testing.T) {
	box := NewBox("chave-de-teste")

	sealed, err := box.Seal("minha-chave-secreta")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "minha-chave-secreta")

	opened, err := box.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "minha-chave-secreta", opened)
}

func TestBox_OpenWithWrongKey(t *testing.T) {
	sealed, err := NewBox("chave-a").Seal("valor")
	require.NoError(t, err)

	_, err = NewBox("chave-b").Open(sealed)
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}

func TestBox_OpenGarbage(t *testing.T) {
	box := NewBox("chave")

	_, err := box.Open("não é base64")
	assert.ErrorIs(t, err, ErrInvalidCiphertext)

	_, err = box.Open("YWJj")
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}
