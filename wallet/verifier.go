package wallet

import (
	"github.com/multiversx/mx-chain-crypto-go/signing/ed25519/singlesig"
)

// VerifySignature checks the ed25519 signature of a message against the signer address
func VerifySignature(address []byte, message []byte, signature []byte) error {
	publicKey, err := NewKeyGenerator().PublicKeyFromByteArray(address)
	if err != nil {
		return err
	}

	signer := &singlesig.Ed25519Signer{}

	return signer.Verify(publicKey, message, signature)
}
