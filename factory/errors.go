package factory

import "errors"

// ErrNilConfig signals that a nil configuration has been provided
var ErrNilConfig = errors.New("nil executor config")

// ErrGatewayProxyCreation signals that the gateway proxy could not be created
var ErrGatewayProxyCreation = errors.New("error creating the gateway proxy")

// ErrInteractorCreation signals that the wallet interactor could not be created
var ErrInteractorCreation = errors.New("error creating the wallet interactor")

// ErrMetricsHandlerCreation signals that the metrics handler could not be created
var ErrMetricsHandlerCreation = errors.New("error creating the metrics handler")
