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

// Create - make a new empty vault for an owner
//
// returns the vault id and the only copy of the owner capability; a
// Nobody owner makes the vault permissionless so every owner gate
// passes without a token.  The fresh policy allows all deposits.
func Create(owner principal.Principal) (vaultid.ID, capability.Token, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return vaultid.ID{}, capability.Token{}, fault.NotInitialised
	}

	id, err := vaultid.New()
	if nil != err {
		return vaultid.ID{}, capability.Token{}, err
	}
	token, err := capability.New()
	if nil != err {
		return vaultid.ID{}, capability.Token{}, err
	}

	v := &Vault{
		Id:             id,
		Owner:          owner,
		ownerDigest:    token.Digest(),
		permissionless: owner.IsZero(),
		policy: DepositPolicy{
			AllowAll: true,
			Allowed:  make(map[asset.TypeTag]struct{}),
		},
		assets: make(map[asset.AssetID]*asset.Asset),
		refs:   make(map[asset.AssetID]*AssetRef),
	}

	batch := storage.NewBatch()
	batch.Put(storage.Pool.Vaults, id.Bytes(), v.packRecord())
	err = batch.Commit()
	if nil != err {
		return vaultid.ID{}, capability.Token{}, err
	}

	globalData.vaults[id] = v
	globalData.log.Infof("created vault: %s", id)
	journal.Record(journal.VaultCreated, id.Bytes())

	return id, token, nil
}

// owner gate: permissionless vaults always pass, otherwise the
// presented token must match the stored digest
func (v *Vault) ownerAuthorised(token *capability.Token) bool {
	if v.permissionless {
		return true
	}
	if nil == token {
		return false
	}
	return v.ownerDigest.Matches(*token)
}

// fetch a vault, lock already held
func get(vaultId vaultid.ID) (*Vault, error) {
	if !globalData.initialised {
		return nil, fault.NotInitialised
	}
	v, ok := globalData.vaults[vaultId]
	if !ok {
		return nil, fault.VaultNotFound
	}
	return v, nil
}

// IsCustodyVault - whether an id names a live vault
func IsCustodyVault(vaultId vaultid.ID) bool {
	globalData.RLock()
	defer globalData.RUnlock()
	_, ok := globalData.vaults[vaultId]
	return ok
}

// OwnerOf - the principal a vault is bound to
func OwnerOf(vaultId vaultid.ID) (principal.Principal, error) {
	globalData.RLock()
	defer globalData.RUnlock()
	v, err := get(vaultId)
	if nil != err {
		return principal.Principal{}, err
	}
	return v.Owner, nil
}

// HasAsset - whether a vault currently holds an asset
func HasAsset(vaultId vaultid.ID, assetId asset.AssetID) bool {
	globalData.RLock()
	defer globalData.RUnlock()
	v, err := get(vaultId)
	if nil != err {
		return false
	}
	_, ok := v.assets[assetId]
	return ok
}

// AssetType - the type tag of a held asset
func AssetType(vaultId vaultid.ID, assetId asset.AssetID) (asset.TypeTag, error) {
	globalData.RLock()
	defer globalData.RUnlock()
	v, err := get(vaultId)
	if nil != err {
		return "", err
	}
	ref, ok := v.refs[assetId]
	if !ok {
		return "", fault.MissingAsset
	}
	return ref.Tag, nil
}

// CanDeposit - whether a capability-less deposit of a tag would pass
func CanDeposit(vaultId vaultid.ID, tag asset.TypeTag) bool {
	globalData.RLock()
	defer globalData.RUnlock()
	v, err := get(vaultId)
	if nil != err {
		return false
	}
	return depositPermitted(v, tag)
}

// gate for capability-less deposits, lock already held
func depositPermitted(v *Vault, tag asset.TypeTag) bool {
	if nil != globalData.depositHook {
		return globalData.depositHook.Permits(v.Id, tag)
	}
	return v.policy.Permits(tag)
}

// Listed - the principals authorized for a held asset and the
// exclusive flag, for status queries
func Listed(vaultId vaultid.ID, assetId asset.AssetID) ([]principal.Principal, bool, error) {
	globalData.RLock()
	defer globalData.RUnlock()
	v, err := get(vaultId)
	if nil != err {
		return nil, false, err
	}
	ref, ok := v.refs[assetId]
	if !ok {
		return nil, false, fault.MissingAsset
	}
	principals := make([]principal.Principal, 0, len(ref.Principals))
	for p := range ref.Principals {
		principals = append(principals, p)
	}
	return principals, ref.Exclusive, nil
}

// Count - number of live vaults
func Count() int {
	globalData.RLock()
	defer globalData.RUnlock()
	return len(globalData.vaults)
}
