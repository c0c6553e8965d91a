// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package capability - unforgeable bearer tokens gating vault operations
//
// A token is 32 bytes from the system CSPRNG and is handed to exactly
// one caller at mint time.  The engine never stores tokens; it stores
// the SHA3-256 digest and checks presented tokens by recomputing the
// digest.  Possession of the token is the entire authorisation.
package capability

import (
	"crypto/rand"
	"crypto/subtle"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/custodia-inc/vaultd/fault"
)

// Size - exact byte count of a token and of its digest
const Size = 32

// Token - a secret bearer token
type Token [Size]byte

// Digest - the stored fingerprint of a token
type Digest [Size]byte

// New - mint a fresh token
func New() (Token, error) {
	var token Token
	_, err := rand.Read(token[:])
	if nil != err {
		return token, err
	}
	return token, nil
}

// Digest - fingerprint for storage
func (t Token) Digest() Digest {
	return Digest(sha3.Sum256(t[:]))
}

// Matches - check a presented token against a stored digest
//
// constant time so storage contents cannot be probed byte by byte
func (d Digest) Matches(t Token) bool {
	actual := t.Digest()
	return 1 == subtle.ConstantTimeCompare(d[:], actual[:])
}

// TokenFromBytes - convert a byte slice to a token
func TokenFromBytes(buffer []byte) (Token, error) {
	var token Token
	if Size != len(buffer) {
		return token, fault.CannotDecodeCapability
	}
	copy(token[:], buffer)
	return token, nil
}

// TokenFromString - convert a base58 representation to a token
func TokenFromString(s string) (Token, error) {
	buffer, err := base58.Decode(s)
	if nil != err {
		return Token{}, fault.CannotDecodeCapability
	}
	return TokenFromBytes(buffer)
}

// String - base58 form of the secret, for client delivery only
func (t Token) String() string {
	return base58.Encode(t[:])
}

// MarshalText - convert to base58 for JSON
func (t Token) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText - convert from base58
func (t *Token) UnmarshalText(s []byte) error {
	decoded, err := TokenFromString(string(s))
	if nil != err {
		return err
	}
	*t = decoded
	return nil
}

// DigestFromBytes - convert a byte slice to a digest
func DigestFromBytes(buffer []byte) (Digest, error) {
	var digest Digest
	if Size != len(buffer) {
		return digest, fault.CannotDecodeCapability
	}
	copy(digest[:], buffer)
	return digest, nil
}

// Bytes - byte slice form of the digest
func (d Digest) Bytes() []byte {
	return d[:]
}
