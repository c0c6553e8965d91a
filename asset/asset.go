// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/custodia-inc/vaultd/fault"
)

// IdentifierLength - exact byte count of an asset identifier
const IdentifierLength = 32

// AssetID - identifier of an asset: SHA3-256 of its payload
type AssetID [IdentifierLength]byte

// NewAssetID - compute the identifier for a payload
func NewAssetID(payload []byte) AssetID {
	return AssetID(sha3.Sum256(payload))
}

// AssetIDFromBytes - convert a byte slice to an asset id
func AssetIDFromBytes(buffer []byte) (AssetID, error) {
	var id AssetID
	if IdentifierLength != len(buffer) {
		return id, fault.MissingAsset
	}
	copy(id[:], buffer)
	return id, nil
}

// AssetIDFromString - convert a base58 representation to an asset id
func AssetIDFromString(s string) (AssetID, error) {
	buffer, err := base58.Decode(s)
	if nil != err {
		return AssetID{}, fault.MissingAsset
	}
	return AssetIDFromBytes(buffer)
}

// Bytes - byte slice form
func (id AssetID) Bytes() []byte {
	return id[:]
}

// String - base58 form
func (id AssetID) String() string {
	return base58.Encode(id[:])
}

// MarshalText - convert to base58 for JSON
func (id AssetID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - convert from base58
func (id *AssetID) UnmarshalText(s []byte) error {
	decoded, err := AssetIDFromString(string(s))
	if nil != err {
		return err
	}
	*id = decoded
	return nil
}

// Asset - an opaque payload with its declared type
type Asset struct {
	Id      AssetID `json:"id"`
	Tag     TypeTag `json:"tag"`
	Payload []byte  `json:"payload"`
}

// New - build an asset record, computing its identifier
func New(tag TypeTag, payload []byte) (*Asset, error) {
	if err := tag.Validate(); nil != err {
		return nil, err
	}
	if 0 == len(payload) {
		return nil, fault.MissingPayload
	}
	return &Asset{
		Id:      NewAssetID(payload),
		Tag:     tag,
		Payload: payload,
	}, nil
}

// packed asset record layout:
//   1 byte   tag length
//   n bytes  tag
//   m bytes  payload

// Pack - binary form for storage
func (a *Asset) Pack() []byte {
	tag := []byte(a.Tag)
	packed := make([]byte, 0, 1+len(tag)+len(a.Payload))
	packed = append(packed, byte(len(tag)))
	packed = append(packed, tag...)
	packed = append(packed, a.Payload...)
	return packed
}

// Unpack - decode the binary form; recomputes the identifier
func Unpack(packed []byte) (*Asset, error) {
	if len(packed) < 2 {
		return nil, fault.DataInconsistent
	}
	n := int(packed[0])
	if len(packed) < 1+n+1 {
		return nil, fault.DataInconsistent
	}
	tag := TypeTag(packed[1 : 1+n])
	if err := tag.Validate(); nil != err {
		return nil, fault.DataInconsistent
	}
	payload := packed[1+n:]
	return &Asset{
		Id:      NewAssetID(payload),
		Tag:     tag,
		Payload: payload,
	}, nil
}
