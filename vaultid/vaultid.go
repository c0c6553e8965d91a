// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package vaultid - unique identity of a custody vault
package vaultid

import (
	"bytes"
	"crypto/rand"

	"github.com/mr-tron/base58"

	"github.com/custodia-inc/vaultd/fault"
)

// Size - exact byte count of a vault id
const Size = 32

// ID - the vault identity
type ID [Size]byte

// New - create a random vault id
//
// only the vault constructor calls this; randomness comes from the
// system CSPRNG so ids are unforgeable and collision free in practice
func New() (ID, error) {
	var id ID
	_, err := rand.Read(id[:])
	if nil != err {
		return id, err
	}
	return id, nil
}

// FromBytes - convert a byte slice to an id
func FromBytes(buffer []byte) (ID, error) {
	var id ID
	if Size != len(buffer) {
		return id, fault.CannotDecodeVaultId
	}
	copy(id[:], buffer)
	return id, nil
}

// FromString - convert a base58 representation to an id
func FromString(s string) (ID, error) {
	buffer, err := base58.Decode(s)
	if nil != err {
		return ID{}, fault.CannotDecodeVaultId
	}
	return FromBytes(buffer)
}

// Compare - byte-wise comparison, like bytes.Compare
func (id ID) Compare(other ID) int {
	return bytes.Compare(id[:], other[:])
}

// Bytes - byte slice form
func (id ID) Bytes() []byte {
	return id[:]
}

// String - base58 form
func (id ID) String() string {
	return base58.Encode(id[:])
}

// MarshalText - convert to base58 for JSON
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - convert from base58
func (id *ID) UnmarshalText(s []byte) error {
	decoded, err := FromString(string(s))
	if nil != err {
		return err
	}
	*id = decoded
	return nil
}
