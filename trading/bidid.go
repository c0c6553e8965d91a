// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trading

import (
	"crypto/rand"

	"github.com/mr-tron/base58"

	"github.com/custodia-inc/vaultd/fault"
)

// BidIDSize - exact byte count of a bid id
const BidIDSize = 32

// BidID - unique identity of a bid
type BidID [BidIDSize]byte

func newBidID() (BidID, error) {
	var id BidID
	_, err := rand.Read(id[:])
	if nil != err {
		return id, err
	}
	return id, nil
}

// BidIDFromBytes - convert a byte slice to a bid id
func BidIDFromBytes(buffer []byte) (BidID, error) {
	var id BidID
	if BidIDSize != len(buffer) {
		return id, fault.CannotDecodeBidId
	}
	copy(id[:], buffer)
	return id, nil
}

// BidIDFromString - convert a base58 representation to a bid id
func BidIDFromString(s string) (BidID, error) {
	buffer, err := base58.Decode(s)
	if nil != err {
		return BidID{}, fault.CannotDecodeBidId
	}
	return BidIDFromBytes(buffer)
}

// Bytes - byte slice form
func (id BidID) Bytes() []byte {
	return id[:]
}

// String - base58 form
func (id BidID) String() string {
	return base58.Encode(id[:])
}

// MarshalText - convert to base58 for JSON
func (id BidID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - convert from base58
func (id *BidID) UnmarshalText(s []byte) error {
	decoded, err := BidIDFromString(string(s))
	if nil != err {
		return err
	}
	*id = decoded
	return nil
}
