package mocking

import "errors"

// ErrNilRequestMatcherTarget signals that an expected call was added without a request shape or a matcher
var ErrNilRequestMatcherTarget = errors.New("expected call without request and matcher")

// ErrInvalidCallType signals that an expected call holds an unknown call type
var ErrInvalidCallType = errors.New("invalid call type")

// ErrInvalidDeployerAddress signals that an invalid deployer address has been provided
var ErrInvalidDeployerAddress = errors.New("invalid deployer address")
