// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vaultid_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-inc/vaultd/fault"
	"github.com/custodia-inc/vaultd/vaultid"
)

func TestNewUnique(t *testing.T) {
	a, err := vaultid.New()
	assert.Nil(t, err, "unexpected error")
	b, err := vaultid.New()
	assert.Nil(t, err, "unexpected error")

	assert.NotEqual(t, a, b, "ids not unique")
	assert.NotEqual(t, 0, a.Compare(b), "compare equal for distinct ids")
	assert.Equal(t, 0, a.Compare(a), "compare unequal for same id")
}

func TestTextRoundTrip(t *testing.T) {
	id, err := vaultid.New()
	assert.Nil(t, err, "unexpected error")

	marshalled, err := json.Marshal(id)
	assert.Nil(t, err, "marshal error")

	var decoded vaultid.ID
	err = json.Unmarshal(marshalled, &decoded)
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, id, decoded, "round trip mismatch")
}

func TestFromBytesInvalid(t *testing.T) {
	_, err := vaultid.FromBytes([]byte{1, 2, 3})
	assert.Equal(t, fault.CannotDecodeVaultId, err, "wrong error")
}
