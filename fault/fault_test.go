// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/bitmark-inc/blobvault/fault"
)

// test that the classification works correctly
func TestClassification(t *testing.T) {

	errorList := []struct {
		err       error
		exists    bool
		invalid   bool
		length    bool
		notFound  bool
		process   bool
		retryable bool
		crypto    bool
	}{
		{fault.AlreadyInitialised, true, false, false, false, false, false, false},
		{fault.InvalidNamespaceLength, false, true, false, false, false, false, false},
		{fault.NamespaceInputTooLong, false, false, true, false, false, false, false},
		{fault.SchemaNotFound, false, false, false, true, false, false, false},
		{fault.UnrecognisedResponse, false, false, false, false, true, false, false},
		{fault.ConnectionTimeout, false, false, false, false, false, true, false},
		{fault.DecryptionFailed, false, false, false, false, false, false, true},
	}

	for i, item := range errorList {
		if fault.IsErrExists(item.err) != item.exists {
			t.Errorf("%d: exists misclassified: %v", i, item.err)
		}
		if fault.IsErrInvalid(item.err) != item.invalid {
			t.Errorf("%d: invalid misclassified: %v", i, item.err)
		}
		if fault.IsErrLength(item.err) != item.length {
			t.Errorf("%d: length misclassified: %v", i, item.err)
		}
		if fault.IsErrNotFound(item.err) != item.notFound {
			t.Errorf("%d: not found misclassified: %v", i, item.err)
		}
		if fault.IsErrProcess(item.err) != item.process {
			t.Errorf("%d: process misclassified: %v", i, item.err)
		}
		if fault.IsErrRetryable(item.err) != item.retryable {
			t.Errorf("%d: retryable misclassified: %v", i, item.err)
		}
		if fault.IsErrCrypto(item.err) != item.crypto {
			t.Errorf("%d: crypto misclassified: %v", i, item.err)
		}
	}
}

// ensure that an error from another package is never classified
func TestForeignError(t *testing.T) {
	err := notMyError("some other error")
	if fault.IsErrExists(err) || fault.IsErrInvalid(err) || fault.IsErrLength(err) ||
		fault.IsErrNotFound(err) || fault.IsErrProcess(err) ||
		fault.IsErrRetryable(err) || fault.IsErrCrypto(err) {
		t.Errorf("foreign error was classified: %v", err)
	}
}

type notMyError string

func (e notMyError) Error() string { return string(e) }
