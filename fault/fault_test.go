// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-inc/vaultd/fault"
)

func TestErrorClasses(t *testing.T) {
	assert.True(t, fault.IsErrAccess(fault.NotAuthorized), "not an access error")
	assert.True(t, fault.IsErrAccess(fault.PolicyDenied), "not an access error")
	assert.True(t, fault.IsErrExists(fault.AlreadyListed), "not an exists error")
	assert.True(t, fault.IsErrExists(fault.AlreadyClosed), "not an exists error")
	assert.True(t, fault.IsErrInvalid(fault.ZeroPrice), "not an invalid error")
	assert.True(t, fault.IsErrNotFound(fault.MissingAsset), "not a not found error")
	assert.True(t, fault.IsErrProcess(fault.UnresolvedTransferRequest), "not a process error")

	assert.False(t, fault.IsErrExists(fault.MissingAsset), "wrong class")
	assert.False(t, fault.IsErrAccess(fault.TypeMismatch), "wrong class")
}

func TestErrorComparison(t *testing.T) {
	err := func() error {
		return fault.AlreadyExclusivelyListed
	}()

	assert.Equal(t, fault.AlreadyExclusivelyListed, err, "single instance comparison failed")
	assert.Equal(t, "already exclusively listed", err.Error(), "wrong message")
}
