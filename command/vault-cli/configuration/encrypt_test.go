// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-inc/vaultd/command/vault-cli/configuration"
	"github.com/custodia-inc/vaultd/fault"
)

func TestSeedAndPrincipal(t *testing.T) {
	seed, err := configuration.NewSeed()
	assert.Nil(t, err, "unexpected seed error")
	assert.Equal(t, 64, len(seed), "wrong seed length")

	p1, err := configuration.PrincipalFromSeed(seed)
	assert.Nil(t, err, "unexpected principal error")
	assert.False(t, p1.IsZero(), "zero principal")

	// derivation is deterministic
	p2, err := configuration.PrincipalFromSeed(seed)
	assert.Nil(t, err, "unexpected principal error")
	assert.Equal(t, p1, p2, "derivation not deterministic")

	otherSeed, err := configuration.NewSeed()
	assert.Nil(t, err, "unexpected seed error")
	p3, err := configuration.PrincipalFromSeed(otherSeed)
	assert.Nil(t, err, "unexpected principal error")
	assert.NotEqual(t, p1, p3, "distinct seeds gave the same principal")

	_, err = configuration.PrincipalFromSeed("abcdef")
	assert.Equal(t, fault.InvalidKeyLength, err, "wrong error")
}

func TestIdentityEncryption(t *testing.T) {
	seed, err := configuration.NewSeed()
	assert.Nil(t, err, "unexpected seed error")

	config := &configuration.Configuration{
		DefaultIdentity: "first",
		Connections:     []string{"127.0.0.1:2130"},
		Identities:      map[string]configuration.Identity{},
	}

	err = config.AddIdentity("first", "test identity", seed, "a secret password")
	assert.Nil(t, err, "unexpected add error")

	err = config.AddIdentity("first", "duplicate", seed, "a secret password")
	assert.Equal(t, fault.IdentityNameExists, err, "wrong error")

	// encrypted data never contains the seed
	id, err := config.Identity("first")
	assert.Nil(t, err, "unexpected identity error")
	assert.NotContains(t, id.Data, seed, "seed leaked to config data")

	private, err := config.Private("a secret password", "first")
	assert.Nil(t, err, "unexpected decrypt error")
	assert.Equal(t, seed, private.Seed, "wrong seed")

	expected, err := configuration.PrincipalFromSeed(seed)
	assert.Nil(t, err, "unexpected principal error")
	assert.Equal(t, expected, private.Principal, "wrong principal")

	p, err := config.Principal("first")
	assert.Nil(t, err, "unexpected principal error")
	assert.Equal(t, expected, p, "wrong stored principal")

	_, err = config.Private("not the password", "first")
	assert.Equal(t, fault.WrongPassword, err, "wrong error")

	_, err = config.Private("a secret password", "nobody")
	assert.Equal(t, fault.IdentityNameNotFound, err, "wrong error")
}

func TestReceiveOnlyIdentity(t *testing.T) {
	seed, err := configuration.NewSeed()
	assert.Nil(t, err, "unexpected seed error")
	p, err := configuration.PrincipalFromSeed(seed)
	assert.Nil(t, err, "unexpected principal error")

	config := &configuration.Configuration{
		Identities: map[string]configuration.Identity{},
	}

	err = config.AddReceiveOnlyIdentity("watcher", "receive only", p.String())
	assert.Nil(t, err, "unexpected add error")

	stored, err := config.Principal("watcher")
	assert.Nil(t, err, "unexpected principal error")
	assert.Equal(t, p, stored, "wrong principal")

	// no private data to decrypt
	_, err = config.Private("any password", "watcher")
	assert.NotNil(t, err, "decrypt succeeded without data")

	err = config.AddReceiveOnlyIdentity("bad", "broken", "***")
	assert.NotNil(t, err, "invalid principal accepted")
}
