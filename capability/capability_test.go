// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package capability_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-inc/vaultd/capability"
	"github.com/custodia-inc/vaultd/fault"
)

func TestNewUnique(t *testing.T) {
	a, err := capability.New()
	assert.Nil(t, err, "unexpected error")
	b, err := capability.New()
	assert.Nil(t, err, "unexpected error")

	assert.NotEqual(t, a, b, "tokens not unique")
	assert.NotEqual(t, a.Digest(), b.Digest(), "digests not unique")
}

func TestDigestMatches(t *testing.T) {
	token, err := capability.New()
	assert.Nil(t, err, "unexpected error")
	other, err := capability.New()
	assert.Nil(t, err, "unexpected error")

	digest := token.Digest()
	assert.True(t, digest.Matches(token), "digest rejected its own token")
	assert.False(t, digest.Matches(other), "digest accepted a foreign token")
}

func TestTokenTextRoundTrip(t *testing.T) {
	token, err := capability.New()
	assert.Nil(t, err, "unexpected error")

	marshalled, err := json.Marshal(token)
	assert.Nil(t, err, "marshal error")

	var decoded capability.Token
	err = json.Unmarshal(marshalled, &decoded)
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, token, decoded, "round trip mismatch")
}

func TestTokenFromBytesInvalid(t *testing.T) {
	_, err := capability.TokenFromBytes([]byte{1, 2, 3})
	assert.Equal(t, fault.CannotDecodeCapability, err, "wrong error")

	_, err = capability.DigestFromBytes([]byte{1, 2, 3})
	assert.Equal(t, fault.CannotDecodeCapability, err, "wrong error")
}
