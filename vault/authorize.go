// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"github.com/custodia-inc/vaultd/asset"
	"github.com/custodia-inc/vaultd/capability"
	"github.com/custodia-inc/vaultd/fault"
	"github.com/custodia-inc/vaultd/journal"
	"github.com/custodia-inc/vaultd/principal"
	"github.com/custodia-inc/vaultd/storage"
	"github.com/custodia-inc/vaultd/vaultid"
)

// Authorize - list a principal as allowed to withdraw an asset
//
// idempotent; refused while an exclusive lock is in place
func Authorize(vaultId vaultid.ID, token *capability.Token, assetId asset.AssetID, p principal.Principal) error {
	return updateRef(vaultId, token, assetId, func(ref *AssetRef) error {
		if ref.Exclusive {
			return fault.AlreadyExclusivelyListed
		}
		ref.Principals[p] = struct{}{}
		return nil
	})
}

// AuthorizeExclusive - reserve an asset for a single principal
//
// only valid on an empty listing; the lock can only be freed by the
// listed principal through ReleaseExclusive
func AuthorizeExclusive(vaultId vaultid.ID, token *capability.Token, assetId asset.AssetID, p principal.Principal) error {
	return updateRef(vaultId, token, assetId, func(ref *AssetRef) error {
		if ref.Exclusive {
			return fault.AlreadyExclusivelyListed
		}
		if 0 != len(ref.Principals) {
			return fault.AlreadyListed
		}
		ref.Principals[p] = struct{}{}
		ref.Exclusive = true
		return nil
	})
}

// Revoke - remove a principal from an asset's listing
//
// idempotent; refused while an exclusive lock is in place
func Revoke(vaultId vaultid.ID, token *capability.Token, assetId asset.AssetID, p principal.Principal) error {
	return updateRef(vaultId, token, assetId, func(ref *AssetRef) error {
		if ref.Exclusive {
			return fault.AlreadyExclusivelyListed
		}
		delete(ref.Principals, p)
		return nil
	})
}

// ClearAll - empty an asset's listing
//
// refused while an exclusive lock is in place
func ClearAll(vaultId vaultid.ID, token *capability.Token, assetId asset.AssetID) error {
	return updateRef(vaultId, token, assetId, func(ref *AssetRef) error {
		if ref.Exclusive {
			return fault.AlreadyExclusivelyListed
		}
		ref.Principals = make(map[principal.Principal]struct{})
		return nil
	})
}

// ReleaseExclusive - free an exclusive lock
//
// not owner-gated: only the listed principal itself may release
func ReleaseExclusive(vaultId vaultid.ID, assetId asset.AssetID, p principal.Principal) error {
	globalData.Lock()
	defer globalData.Unlock()

	v, err := get(vaultId)
	if nil != err {
		return err
	}
	ref, ok := v.refs[assetId]
	if !ok {
		return fault.MissingAsset
	}
	if !ref.Exclusive {
		return fault.NotAuthorized
	}
	if _, ok := ref.Principals[p]; !ok {
		return fault.NotAuthorized
	}

	ref.Exclusive = false
	ref.Principals = make(map[principal.Principal]struct{})

	key := assetKey(vaultId, assetId)
	storage.Pool.AssetRefs.Put(key, ref.pack())
	journal.Record(journal.GrantChanged, key)
	return nil
}

// owner-gated asset ref mutation with write-through
func updateRef(vaultId vaultid.ID, token *capability.Token, assetId asset.AssetID, change func(*AssetRef) error) error {
	globalData.Lock()
	defer globalData.Unlock()

	v, err := get(vaultId)
	if nil != err {
		return err
	}
	if !v.ownerAuthorised(token) {
		return fault.NotAuthorized
	}
	ref, ok := v.refs[assetId]
	if !ok {
		return fault.MissingAsset
	}

	err = change(ref)
	if nil != err {
		return err
	}

	key := assetKey(vaultId, assetId)
	storage.Pool.AssetRefs.Put(key, ref.pack())
	journal.Record(journal.GrantChanged, key)
	return nil
}
