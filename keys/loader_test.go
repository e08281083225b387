package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warrantyseal/warrantyseal/crypto"
)

// writeTestKeyPair writes a fresh PEM keypair into dir and returns the paths.
func writeTestKeyPair(t *testing.T, dir string) (privPath, pubPath string, key *rsa.PrivateKey) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privPEM, err := crypto.MarshalPrivateKeyPEM(key)
	require.NoError(t, err)
	pubPEM, err := crypto.MarshalPublicKeyPEM(&key.PublicKey)
	require.NoError(t, err)

	privPath = filepath.Join(dir, "signer.pem")
	pubPath = filepath.Join(dir, "signer.pub")
	require.NoError(t, os.WriteFile(privPath, privPEM, 0o600))
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0o644))
	return privPath, pubPath, key
}

func TestFileStorePrivateKey(t *testing.T) {
	dir := t.TempDir()
	privPath, _, key := writeTestKeyPair(t, dir)
	store := &FileStore{}

	t.Run("loads from path", func(t *testing.T) {
		got, err := store.PrivateKey(privPath)
		require.NoError(t, err)
		assert.True(t, key.Equal(got))
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := store.PrivateKey("")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := store.PrivateKey(filepath.Join(dir, "nope.pem"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unparsable file", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.pem")
		require.NoError(t, os.WriteFile(bad, []byte("not a key"), 0o600))
		_, err := store.PrivateKey(bad)
		assert.ErrorIs(t, err, crypto.ErrKey)
	})
}

func TestFileStorePublicKey(t *testing.T) {
	dir := t.TempDir()
	_, pubPath, key := writeTestKeyPair(t, dir)

	t.Run("explicit path wins", func(t *testing.T) {
		store := &FileStore{EnvVar: "WARRANTYSEAL_TEST_PUBKEY", DefaultPath: "/nonexistent"}
		got, err := store.PublicKey(pubPath)
		require.NoError(t, err)
		assert.True(t, key.PublicKey.Equal(got))
	})

	t.Run("env var fallback", func(t *testing.T) {
		t.Setenv("WARRANTYSEAL_TEST_PUBKEY", pubPath)
		store := &FileStore{EnvVar: "WARRANTYSEAL_TEST_PUBKEY"}
		got, err := store.PublicKey("")
		require.NoError(t, err)
		assert.True(t, key.PublicKey.Equal(got))
	})

	t.Run("default path fallback", func(t *testing.T) {
		store := &FileStore{DefaultPath: pubPath}
		got, err := store.PublicKey("")
		require.NoError(t, err)
		assert.True(t, key.PublicKey.Equal(got))
	})

	t.Run("nothing resolvable", func(t *testing.T) {
		store := &FileStore{}
		_, err := store.PublicKey("")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("resolved path unreadable", func(t *testing.T) {
		store := &FileStore{DefaultPath: filepath.Join(dir, "absent.pub")}
		_, err := store.PublicKey("")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
