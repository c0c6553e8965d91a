// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transfer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-inc/vaultd/asset"
	"github.com/custodia-inc/vaultd/fault"
	"github.com/custodia-inc/vaultd/principal"
	"github.com/custodia-inc/vaultd/transfer"
)

func makeRequest(t *testing.T) *transfer.Request {
	var p principal.Principal
	p[0] = 0x42
	return transfer.NewRequest(asset.NewAssetID([]byte("payload")), p)
}

func TestResolveOnce(t *testing.T) {
	r := makeRequest(t)
	assert.False(t, r.IsResolved(), "fresh ticket already resolved")

	err := r.Resolve()
	assert.Nil(t, err, "resolve error")
	assert.True(t, r.IsResolved(), "ticket not resolved")

	err = r.Resolve()
	assert.Equal(t, fault.TransferRequestResolved, err, "second resolve accepted")
}

func TestFinishGuard(t *testing.T) {
	r := makeRequest(t)
	assert.Equal(t, fault.UnresolvedTransferRequest, r.Finish(), "unresolved ticket passed guard")

	err := r.Resolve()
	assert.Nil(t, err, "resolve error")
	assert.Nil(t, r.Finish(), "resolved ticket failed guard")

	var none *transfer.Request
	assert.Nil(t, none.Finish(), "nil ticket failed guard")
}

func TestAttachMetadata(t *testing.T) {
	r := makeRequest(t)

	err := r.AttachMetadata("authorized-by", []byte("owner"))
	assert.Nil(t, err, "attach error")

	value, ok := r.Metadata("authorized-by")
	assert.True(t, ok, "metadata missing")
	assert.Equal(t, []byte("owner"), value, "metadata mismatch")

	err = r.AttachMetadata("authorized-by", []byte("listing"))
	assert.Equal(t, fault.DuplicateMetadata, err, "duplicate attach accepted")

	value, ok = r.Metadata("authorized-by")
	assert.True(t, ok, "metadata missing after duplicate attach")
	assert.Equal(t, []byte("owner"), value, "duplicate attach overwrote value")

	_, ok = r.Metadata("absent")
	assert.False(t, ok, "absent key reported present")
}
