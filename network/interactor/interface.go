package interactor

// Wallet holds the signing credential of the sender
type Wallet interface {
	Address() []byte
	Sign(message []byte) ([]byte, error)
	IsInterfaceNil() bool
}
