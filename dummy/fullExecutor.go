package dummy

// FullDummyExecutor groups the three dummy executors into a full backend
type FullDummyExecutor struct {
	*DummyExecutor
	*DummyTransactionExecutor
	*DummyDeployExecutor
}

// NewFullDummyExecutor creates a full backend out of default dummy executors
func NewFullDummyExecutor() *FullDummyExecutor {
	return &FullDummyExecutor{
		DummyExecutor:            NewDummyExecutor(nil),
		DummyTransactionExecutor: NewDummyTransactionExecutor(nil),
		DummyDeployExecutor:      NewDummyDeployExecutor(nil, nil),
	}
}

// IsInterfaceNil returns true if there is no value under the interface
func (dummy *FullDummyExecutor) IsInterfaceNil() bool {
	return dummy == nil
}
