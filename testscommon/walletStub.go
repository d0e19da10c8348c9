package testscommon

// WalletStub -
type WalletStub struct {
	AddressCalled func() []byte
	SignCalled    func(message []byte) ([]byte, error)
}

// Address -
func (stub *WalletStub) Address() []byte {
	if stub.AddressCalled != nil {
		return stub.AddressCalled()
	}

	return make([]byte, 32)
}

// Sign -
func (stub *WalletStub) Sign(message []byte) ([]byte, error) {
	if stub.SignCalled != nil {
		return stub.SignCalled(message)
	}

	return make([]byte, 64), nil
}

// IsInterfaceNil -
func (stub *WalletStub) IsInterfaceNil() bool {
	return stub == nil
}
