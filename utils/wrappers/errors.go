// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package wrappers provides small aggregation helpers, matching the
// teacher's utils/wrappers package (referenced from utxo_state_test.go).
package wrappers

// Errs aggregates a sequence of errors, keeping only the first non-nil one.
// Useful when several independent setup steps should all run regardless of
// earlier failures, with only the first error reported.
type Errs struct {
	Err error
}

func (errs *Errs) Add(errors ...error) {
	if errs.Err != nil {
		return
	}
	for _, err := range errors {
		if err != nil {
			errs.Err = err
			return
		}
	}
}

func (errs *Errs) Errored() bool {
	return errs.Err != nil
}
