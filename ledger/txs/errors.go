// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"
	"fmt"
)

// Error kinds from spec.md §7, as sentinel errors wrapped with %w so
// callers can errors.Is against the kind while still getting a useful
// message.
var (
	ErrParse                = errors.New("parse error")
	ErrSignature            = errors.New("signature error")
	ErrReplay               = errors.New("replay error")
	ErrMissingInput         = errors.New("missing input error")
	ErrDuplicateAsset       = errors.New("duplicate asset error")
	ErrDelegationContext    = errors.New("delegation context error")
	ErrCapacity             = errors.New("capacity error")
	ErrStaking              = errors.New("staking error")
	ErrUnsupported          = errors.New("unsupported")
	ErrInternalInconsistent = errors.New("internal operation inconsistency")
)

func NewParseError(msg string) error {
	return fmt.Errorf("%w: %s", ErrParse, msg)
}

func NewSignatureError(msg string) error {
	return fmt.Errorf("%w: %s", ErrSignature, msg)
}

func NewReplayError(msg string) error {
	return fmt.Errorf("%w: %s", ErrReplay, msg)
}

func NewMissingInputError(msg string) error {
	return fmt.Errorf("%w: %s", ErrMissingInput, msg)
}

func NewDuplicateAssetError(msg string) error {
	return fmt.Errorf("%w: %s", ErrDuplicateAsset, msg)
}

func NewDelegationContextError(msg string) error {
	return fmt.Errorf("%w: %s", ErrDelegationContext, msg)
}

func NewInternalInconsistentError(msg string) error {
	return fmt.Errorf("%w: %s", ErrInternalInconsistent, msg)
}
