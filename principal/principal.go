// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package principal - opaque identities permitted to act on assets
//
// A principal is any unforgeable 32 byte identifier supplied by the
// host: an ed25519 public key, another object's identity, etc.  The
// engine only ever compares principals, it never interprets them.
// Callers that must prove control of a principal treat it as an
// ed25519 public key and sign their requests.
package principal

import (
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"

	"github.com/custodia-inc/vaultd/fault"
)

// Size - exact byte count of a principal
const Size = 32

// Principal - opaque comparable identity token
type Principal [Size]byte

// Nobody - the zero principal
//
// used as the owner of a permissionless vault; never a valid actor
var Nobody Principal

// FromBytes - convert a byte slice to a principal
func FromBytes(buffer []byte) (Principal, error) {
	var p Principal
	if Size != len(buffer) {
		return p, fault.CannotDecodePrincipal
	}
	copy(p[:], buffer)
	return p, nil
}

// FromString - convert a base58 representation to a principal
func FromString(s string) (Principal, error) {
	buffer, err := base58.Decode(s)
	if nil != err {
		return Nobody, fault.CannotDecodePrincipal
	}
	return FromBytes(buffer)
}

// IsZero - check for the zero principal
func (p Principal) IsZero() bool {
	return Nobody == p
}

// Bytes - byte slice form
func (p Principal) Bytes() []byte {
	return p[:]
}

// Verify - check a signature treating the principal as an ed25519
// public key
//
// the zero principal never verifies anything
func (p Principal) Verify(message []byte, signature []byte) bool {
	if p.IsZero() || ed25519.SignatureSize != len(signature) {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p[:]), message, signature)
}

// String - base58 form
func (p Principal) String() string {
	return base58.Encode(p[:])
}

// MarshalText - convert to base58 for JSON
func (p Principal) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText - convert from base58
func (p *Principal) UnmarshalText(s []byte) error {
	decoded, err := FromString(string(s))
	if nil != err {
		return err
	}
	*p = decoded
	return nil
}
