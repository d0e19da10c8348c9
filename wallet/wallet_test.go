package wallet

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/multiversx/mx-chain-core-go/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aliceSeedHex = "413f42575f7f26fad3317a778771212fdb80245850981e48b58a4f25e344e8f9"
const aliceAddressHex = "0139472eff6886771a982f3083da5d421f24c29181e63888228dc81ca60d69e1"

func TestNewWalletFromHexSeed(t *testing.T) {
	t.Parallel()

	t.Run("invalid hex should error", func(t *testing.T) {
		t.Parallel()

		w, err := NewWalletFromHexSeed("zz")
		require.Nil(t, w)
		require.NotNil(t, err)
	})
	t.Run("invalid length should error", func(t *testing.T) {
		t.Parallel()

		w, err := NewWalletFromHexSeed("0102")
		require.Nil(t, w)
		require.True(t, errors.Is(err, ErrInvalidSeedLength))
	})
	t.Run("should derive the address", func(t *testing.T) {
		t.Parallel()

		w, err := NewWalletFromHexSeed(aliceSeedHex)
		require.Nil(t, err)
		require.False(t, w.IsInterfaceNil())
		require.Equal(t, aliceAddressHex, hex.EncodeToString(w.Address()))

		seed, err := w.Seed()
		require.Nil(t, err)
		require.Equal(t, aliceSeedHex, seed)
	})
	t.Run("seed followed by public key should work", func(t *testing.T) {
		t.Parallel()

		w, err := NewWalletFromHexSeed(aliceSeedHex + aliceAddressHex)
		require.Nil(t, err)
		require.Equal(t, aliceAddressHex, hex.EncodeToString(w.Address()))
	})
}

func TestWallet_SignAndVerify(t *testing.T) {
	t.Parallel()

	w, err := GenerateWallet()
	require.Nil(t, err)

	message := []byte("message to sign")
	signature, err := w.Sign(message)
	require.Nil(t, err)
	require.Len(t, signature, 64)

	require.Nil(t, VerifySignature(w.Address(), message, signature))
	require.NotNil(t, VerifySignature(w.Address(), []byte("another message"), signature))

	other, _ := GenerateWallet()
	require.NotNil(t, VerifySignature(other.Address(), message, signature))
}

func TestWallet_AddressIsACopy(t *testing.T) {
	t.Parallel()

	w, _ := NewWalletFromHexSeed(aliceSeedHex)
	address := w.Address()
	address[0] = 0xff

	assert.Equal(t, aliceAddressHex, hex.EncodeToString(w.Address()))
}

func TestNewWalletFromPemFile(t *testing.T) {
	t.Parallel()

	t.Run("empty path should error", func(t *testing.T) {
		t.Parallel()

		w, err := NewWalletFromPemFile("", 0)
		require.Nil(t, w)
		require.Equal(t, ErrEmptyPemFile, err)
	})
	t.Run("missing file should error", func(t *testing.T) {
		t.Parallel()

		w, err := NewWalletFromPemFile(filepath.Join(t.TempDir(), "missing.pem"), 0)
		require.Nil(t, w)
		require.NotNil(t, err)
	})
	t.Run("should load the saved key", func(t *testing.T) {
		t.Parallel()

		pemPath := filepath.Join(t.TempDir(), "alice.pem")
		file, err := os.Create(pemPath)
		require.Nil(t, err)
		err = core.SaveSkToPemFile(file, aliceAddressHex, []byte(aliceSeedHex))
		require.Nil(t, err)
		require.Nil(t, file.Close())

		w, err := NewWalletFromPemFile(pemPath, 0)
		require.Nil(t, err)
		require.Equal(t, aliceAddressHex, hex.EncodeToString(w.Address()))
	})
}

func TestWallet_SaveToPemFile(t *testing.T) {
	t.Parallel()

	t.Run("empty path should error", func(t *testing.T) {
		t.Parallel()

		w, _ := NewWalletFromHexSeed(aliceSeedHex)
		err := w.SaveToPemFile("", "alice")
		assert.Equal(t, ErrEmptyPemFile, err)
	})
	t.Run("saved file should load the same key", func(t *testing.T) {
		t.Parallel()

		w, err := GenerateWallet()
		require.Nil(t, err)

		pemPath := filepath.Join(t.TempDir(), "generated.pem")
		err = w.SaveToPemFile(pemPath, hex.EncodeToString(w.Address()))
		require.Nil(t, err)

		loaded, err := NewWalletFromPemFile(pemPath, 0)
		require.Nil(t, err)
		assert.Equal(t, w.Address(), loaded.Address())

		message := []byte("message")
		signature, err := loaded.Sign(message)
		require.Nil(t, err)
		assert.Nil(t, VerifySignature(w.Address(), message, signature))
	})
	t.Run("existing file should not be overwritten", func(t *testing.T) {
		t.Parallel()

		pemPath := filepath.Join(t.TempDir(), "existing.pem")
		require.Nil(t, os.WriteFile(pemPath, []byte("content"), 0600))

		w, _ := NewWalletFromHexSeed(aliceSeedHex)
		err := w.SaveToPemFile(pemPath, "alice")
		require.NotNil(t, err)

		content, _ := os.ReadFile(pemPath)
		assert.Equal(t, "content", string(content))
	})
}
