// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"encoding/binary"

	"github.com/custodia-inc/vaultd/asset"
	"github.com/custodia-inc/vaultd/capability"
	"github.com/custodia-inc/vaultd/fault"
	"github.com/custodia-inc/vaultd/principal"
	"github.com/custodia-inc/vaultd/storage"
	"github.com/custodia-inc/vaultd/vaultid"
)

// vault record flags
const (
	flagPermissionless = 0x01
	flagAllowAll       = 0x02
)

// asset ref flags
const (
	flagExclusive = 0x01
)

// packed vault record layout:
//   32 bytes  owner principal
//   32 bytes  owner capability digest
//    1 byte   flags
//    2 bytes  allowed tag count, big endian
//   per tag:  1 byte length + tag bytes
func (v *Vault) packRecord() []byte {
	packed := make([]byte, 0, 67)
	packed = append(packed, v.Owner.Bytes()...)
	packed = append(packed, v.ownerDigest.Bytes()...)

	flags := byte(0)
	if v.permissionless {
		flags |= flagPermissionless
	}
	if v.policy.AllowAll {
		flags |= flagAllowAll
	}
	packed = append(packed, flags)

	count := make([]byte, 2)
	binary.BigEndian.PutUint16(count, uint16(len(v.policy.Allowed)))
	packed = append(packed, count...)

	for tag := range v.policy.Allowed {
		packed = append(packed, byte(len(tag)))
		packed = append(packed, tag...)
	}
	return packed
}

func unpackRecord(id vaultid.ID, packed []byte) (*Vault, error) {
	if len(packed) < 67 {
		return nil, fault.NotVaultRecordPack
	}

	owner, err := principal.FromBytes(packed[0:32])
	if nil != err {
		return nil, fault.NotVaultRecordPack
	}
	digest, err := capability.DigestFromBytes(packed[32:64])
	if nil != err {
		return nil, fault.NotVaultRecordPack
	}

	flags := packed[64]
	count := int(binary.BigEndian.Uint16(packed[65:67]))

	allowed := make(map[asset.TypeTag]struct{})
	offset := 67
	for i := 0; i < count; i += 1 {
		if offset >= len(packed) {
			return nil, fault.NotVaultRecordPack
		}
		n := int(packed[offset])
		offset += 1
		if offset+n > len(packed) {
			return nil, fault.NotVaultRecordPack
		}
		allowed[asset.TypeTag(packed[offset:offset+n])] = struct{}{}
		offset += n
	}
	if offset != len(packed) {
		return nil, fault.NotVaultRecordPack
	}

	return &Vault{
		Id:             id,
		Owner:          owner,
		ownerDigest:    digest,
		permissionless: 0 != flags&flagPermissionless,
		policy: DepositPolicy{
			AllowAll: 0 != flags&flagAllowAll,
			Allowed:  allowed,
		},
		assets: make(map[asset.AssetID]*asset.Asset),
		refs:   make(map[asset.AssetID]*AssetRef),
	}, nil
}

// packed asset ref layout:
//    1 byte   flags
//    1 byte   tag length + tag bytes
//    2 bytes  principal count, big endian
//   32 bytes  per principal
func (r *AssetRef) pack() []byte {
	packed := make([]byte, 0, 4+len(r.Tag)+32*len(r.Principals))

	flags := byte(0)
	if r.Exclusive {
		flags |= flagExclusive
	}
	packed = append(packed, flags)
	packed = append(packed, byte(len(r.Tag)))
	packed = append(packed, r.Tag...)

	count := make([]byte, 2)
	binary.BigEndian.PutUint16(count, uint16(len(r.Principals)))
	packed = append(packed, count...)

	for p := range r.Principals {
		packed = append(packed, p.Bytes()...)
	}
	return packed
}

func unpackRef(packed []byte) (*AssetRef, error) {
	if len(packed) < 4 {
		return nil, fault.DataInconsistent
	}

	flags := packed[0]
	n := int(packed[1])
	if len(packed) < 4+n {
		return nil, fault.DataInconsistent
	}
	tag := asset.TypeTag(packed[2 : 2+n])

	count := int(binary.BigEndian.Uint16(packed[2+n : 4+n]))
	if len(packed) != 4+n+32*count {
		return nil, fault.DataInconsistent
	}

	principals := make(map[principal.Principal]struct{})
	offset := 4 + n
	for i := 0; i < count; i += 1 {
		p, err := principal.FromBytes(packed[offset : offset+32])
		if nil != err {
			return nil, fault.DataInconsistent
		}
		principals[p] = struct{}{}
		offset += 32
	}

	return &AssetRef{
		Tag:        tag,
		Exclusive:  0 != flags&flagExclusive,
		Principals: principals,
	}, nil
}

// storage key for an asset inside a vault
func assetKey(vaultId vaultid.ID, assetId asset.AssetID) []byte {
	key := make([]byte, 0, vaultid.Size+asset.IdentifierLength)
	key = append(key, vaultId.Bytes()...)
	key = append(key, assetId.Bytes()...)
	return key
}

// rebuild the in-memory state from the storage pools
//
// called with the lock held during Initialise
func reload() error {
	err := storage.Pool.Vaults.Scan(func(key []byte, value []byte) error {
		id, err := vaultid.FromBytes(key)
		if nil != err {
			return fault.DataInconsistent
		}
		v, err := unpackRecord(id, value)
		if nil != err {
			return err
		}
		globalData.vaults[id] = v
		return nil
	})
	if nil != err {
		return err
	}

	err = storage.Pool.Assets.Scan(func(key []byte, value []byte) error {
		vaultId, assetId, err := splitAssetKey(key)
		if nil != err {
			return err
		}
		v, ok := globalData.vaults[vaultId]
		if !ok {
			return fault.DataInconsistent
		}
		a, err := asset.Unpack(value)
		if nil != err {
			return err
		}
		if a.Id != assetId {
			return fault.DataInconsistent
		}
		v.assets[assetId] = a
		return nil
	})
	if nil != err {
		return err
	}

	return storage.Pool.AssetRefs.Scan(func(key []byte, value []byte) error {
		vaultId, assetId, err := splitAssetKey(key)
		if nil != err {
			return err
		}
		v, ok := globalData.vaults[vaultId]
		if !ok {
			return fault.DataInconsistent
		}
		if _, ok := v.assets[assetId]; !ok {
			return fault.DataInconsistent
		}
		ref, err := unpackRef(value)
		if nil != err {
			return err
		}
		v.refs[assetId] = ref
		return nil
	})
}

func splitAssetKey(key []byte) (vaultid.ID, asset.AssetID, error) {
	if vaultid.Size+asset.IdentifierLength != len(key) {
		return vaultid.ID{}, asset.AssetID{}, fault.DataInconsistent
	}
	vaultId, err := vaultid.FromBytes(key[:vaultid.Size])
	if nil != err {
		return vaultid.ID{}, asset.AssetID{}, fault.DataInconsistent
	}
	assetId, err := asset.AssetIDFromBytes(key[vaultid.Size:])
	if nil != err {
		return vaultid.ID{}, asset.AssetID{}, fault.DataInconsistent
	}
	return vaultId, assetId, nil
}
