package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptBytes_RoundTrip(t *testing.T) {
	t.Parallel()
	plaintext := []byte("government id scan")

	sealed, err := encryptBytes(plaintext, "admin-key")
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, sealed)

	opened, err := DecryptBytes(sealed, "admin-key")
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestEncryptBytes_NonceDiffersPerCall(t *testing.T) {
	t.Parallel()
	a, err := encryptBytes([]byte("same"), "k")
	require.NoError(t, err)
	b, err := encryptBytes([]byte("same"), "k")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecryptBytes_WrongKeyFails(t *testing.T) {
	t.Parallel()
	sealed, err := encryptBytes([]byte("secret"), "right")
	require.NoError(t, err)

	_, err = DecryptBytes(sealed, "wrong")
	assert.Error(t, err)

	_, err = DecryptBytes([]byte{1, 2}, "right")
	assert.Error(t, err)
}

func TestEncryptBytes_EmptyKeyRejected(t *testing.T) {
	t.Parallel()
	_, err := encryptBytes([]byte("x"), "")
	assert.Error(t, err)
}

func TestSignedURL_Format(t *testing.T) {
	t.Parallel()
	exp := time.Unix(1700000000, 0)
	u := signedURL("demo", "secret", ResourceRaw, "documents/id-1234", exp)

	assert.True(t, strings.HasPrefix(u, "https://res.cloudinary.com/demo/raw/authenticated/s--"))
	assert.Contains(t, u, "/expires_1700000000/documents/id-1234")
	assert.Equal(t, u, signedURL("demo", "secret", ResourceRaw, "documents/id-1234", exp))
	assert.NotEqual(t, u, signedURL("demo", "other", ResourceRaw, "documents/id-1234", exp))
}

func TestObjectName_Sanitizes(t *testing.T) {
	t.Parallel()
	name := objectName("My Passport (scan).PDF")
	assert.True(t, strings.HasPrefix(name, "my-passport--scan--"), name)
	assert.Len(t, name, len("my-passport--scan-")+1+8)
}
