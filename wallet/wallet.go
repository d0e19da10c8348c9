package wallet

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/multiversx/mx-chain-core-go/core"
	crypto "github.com/multiversx/mx-chain-crypto-go"
	"github.com/multiversx/mx-chain-crypto-go/signing"
	"github.com/multiversx/mx-chain-crypto-go/signing/ed25519"
	"github.com/multiversx/mx-chain-crypto-go/signing/ed25519/singlesig"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("wallet")

const (
	seedLength         = 32
	seedAndPubkeyBytes = 64
)

type wallet struct {
	privateKey crypto.PrivateKey
	address    []byte
	signer     crypto.SingleSigner
}

// NewKeyGenerator returns the ed25519 key generator used for account keys
func NewKeyGenerator() crypto.KeyGenerator {
	return signing.NewKeyGenerator(ed25519.NewEd25519())
}

// NewWalletFromPemFile loads the key with the provided index from a PEM file
func NewWalletFromPemFile(pemFile string, index int) (*wallet, error) {
	if len(pemFile) == 0 {
		return nil, ErrEmptyPemFile
	}

	skHex, _, err := core.LoadSkPkFromPemFile(pemFile, index)
	if err != nil {
		return nil, err
	}

	w, err := NewWalletFromHexSeed(string(skHex))
	if err != nil {
		return nil, fmt.Errorf("%w while loading %s", err, pemFile)
	}

	log.Debug("wallet loaded", "file", pemFile, "index", index)

	return w, nil
}

// NewWalletFromHexSeed creates a wallet from a hex encoded ed25519 seed. The seed followed by
// the public key, as stored by the wallet PEM files, is accepted as well.
func NewWalletFromHexSeed(seedHex string) (*wallet, error) {
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, err
	}

	return NewWalletFromSeed(seed)
}

// NewWalletFromSeed creates a wallet from a raw ed25519 seed
func NewWalletFromSeed(seed []byte) (*wallet, error) {
	switch len(seed) {
	case seedLength:
	case seedAndPubkeyBytes:
		seed = seed[:seedLength]
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeedLength, len(seed))
	}

	privateKey, err := NewKeyGenerator().PrivateKeyFromByteArray(seed)
	if err != nil {
		return nil, err
	}

	return newWallet(privateKey)
}

// GenerateWallet creates a wallet holding a new random key
func GenerateWallet() (*wallet, error) {
	privateKey, _ := NewKeyGenerator().GeneratePair()

	return newWallet(privateKey)
}

func newWallet(privateKey crypto.PrivateKey) (*wallet, error) {
	address, err := privateKey.GeneratePublic().ToByteArray()
	if err != nil {
		return nil, err
	}

	return &wallet{
		privateKey: privateKey,
		address:    address,
		signer:     &singlesig.Ed25519Signer{},
	}, nil
}

// Address returns the account address, which is the ed25519 public key
func (w *wallet) Address() []byte {
	return append([]byte(nil), w.address...)
}

// Sign signs the provided message
func (w *wallet) Sign(message []byte) ([]byte, error) {
	return w.signer.Sign(w.privateKey, message)
}

// Seed returns the hex encoded private key seed
func (w *wallet) Seed() (string, error) {
	seed, err := w.privateKey.ToByteArray()
	if err != nil {
		return "", err
	}
	if len(seed) > seedLength {
		seed = seed[:seedLength]
	}

	return hex.EncodeToString(seed), nil
}

// SaveToPemFile writes the seed followed by the public key into a new PEM file, under the provided identifier
func (w *wallet) SaveToPemFile(pemFile string, identifier string) error {
	if len(pemFile) == 0 {
		return ErrEmptyPemFile
	}

	seed, err := w.Seed()
	if err != nil {
		return err
	}

	file, err := os.OpenFile(pemFile, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	skHex := seed + hex.EncodeToString(w.address)
	err = core.SaveSkToPemFile(file, identifier, []byte(skHex))
	if err != nil {
		_ = file.Close()
		return err
	}

	log.Debug("wallet saved", "file", pemFile, "identifier", identifier)

	return file.Close()
}

// IsInterfaceNil returns true if there is no value under the interface
func (w *wallet) IsInterfaceNil() bool {
	return w == nil
}
