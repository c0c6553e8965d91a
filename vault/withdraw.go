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
	"github.com/custodia-inc/vaultd/transfer"
	"github.com/custodia-inc/vaultd/vaultid"
)

// metadata key recording which check authorized a withdrawal
const authorizedByKey = "authorized-by"

// Withdraw - take an asset out of a vault
//
// allowed for the owner (valid capability or permissionless vault) or
// for a principal in the asset's listing.  The asset ref is consumed:
// a second withdrawal of the same asset reports MissingAsset.  Returns
// the asset and a live ticket the caller must resolve.
func Withdraw(vaultId vaultid.ID, assetId asset.AssetID, p principal.Principal, token *capability.Token) (*asset.Asset, *transfer.Request, error) {
	globalData.Lock()
	defer globalData.Unlock()

	v, err := get(vaultId)
	if nil != err {
		return nil, nil, err
	}
	ref, ok := v.refs[assetId]
	if !ok {
		return nil, nil, fault.MissingAsset
	}

	authorizedBy := ""
	if v.ownerAuthorised(token) {
		authorizedBy = "owner"
	} else if _, ok := ref.Principals[p]; ok {
		authorizedBy = "listing"
	} else {
		return nil, nil, fault.NotAuthorized
	}

	a := v.assets[assetId]

	key := assetKey(vaultId, assetId)
	batch := storage.NewBatch()
	batch.Delete(storage.Pool.Assets, key)
	batch.Delete(storage.Pool.AssetRefs, key)
	err = batch.Commit()
	if nil != err {
		return nil, nil, err
	}

	delete(v.assets, assetId)
	delete(v.refs, assetId)

	req := transfer.NewRequest(assetId, p)
	err = req.AttachMetadata(authorizedByKey, []byte(authorizedBy))
	if nil != err {
		return nil, nil, err
	}

	globalData.log.Debugf("withdraw: vault: %s  asset: %s  by: %s", vaultId, assetId, authorizedBy)
	journal.Record(journal.AssetWithdrawn, key)
	return a, req, nil
}

// TransferBetweenVaults - atomically re-home an asset
//
// the vaults must share an owner; the withdrawal side is authorized
// like Withdraw and the deposit side skips the target's policy
func TransferBetweenVaults(source vaultid.ID, target vaultid.ID, assetId asset.AssetID, p principal.Principal, token *capability.Token) error {
	globalData.Lock()
	defer globalData.Unlock()

	src, err := get(source)
	if nil != err {
		return err
	}
	tgt, err := get(target)
	if nil != err {
		return err
	}
	if src.Owner != tgt.Owner {
		return fault.NotOwner
	}

	ref, ok := src.refs[assetId]
	if !ok {
		return fault.MissingAsset
	}
	if !src.ownerAuthorised(token) {
		if _, ok := ref.Principals[p]; !ok {
			return fault.NotAuthorized
		}
	}
	if _, ok := tgt.assets[assetId]; ok {
		return fault.AssetAlreadyHeld
	}

	a := src.assets[assetId]
	newRef := &AssetRef{
		Tag:        ref.Tag,
		Exclusive:  false,
		Principals: make(map[principal.Principal]struct{}),
	}

	srcKey := assetKey(source, assetId)
	tgtKey := assetKey(target, assetId)
	batch := storage.NewBatch()
	batch.Delete(storage.Pool.Assets, srcKey)
	batch.Delete(storage.Pool.AssetRefs, srcKey)
	batch.Put(storage.Pool.Assets, tgtKey, a.Pack())
	batch.Put(storage.Pool.AssetRefs, tgtKey, newRef.pack())
	err = batch.Commit()
	if nil != err {
		return err
	}

	delete(src.assets, assetId)
	delete(src.refs, assetId)
	tgt.assets[assetId] = a
	tgt.refs[assetId] = newRef

	// the ticket lives entirely inside this operation
	req := transfer.NewRequest(assetId, p)
	_ = req.AttachMetadata(authorizedByKey, []byte("free-transfer"))
	err = req.Resolve()
	if nil == err {
		err = req.Finish()
	}
	if nil != err {
		globalData.log.Criticalf("transfer ticket failure: %s", err)
		return err
	}

	journal.Record(journal.AssetWithdrawn, srcKey)
	journal.Record(journal.AssetDeposited, tgtKey)
	journal.Record(journal.TransferResolved, assetId.Bytes())
	return nil
}

// Settle - move a sold asset from seller vault to buyer vault
//
// called by the trading engine after all funds checks pass; the token
// must authorize the seller vault.  The target's policy is bypassed:
// the buyer committed to this vault when creating the bid.
func Settle(source vaultid.ID, target vaultid.ID, token capability.Token, assetId asset.AssetID, buyer principal.Principal) (asset.TypeTag, error) {
	globalData.Lock()
	defer globalData.Unlock()

	src, err := get(source)
	if nil != err {
		return "", err
	}
	tgt, err := get(target)
	if nil != err {
		return "", err
	}
	if !src.ownerAuthorised(&token) {
		return "", fault.NotAuthorized
	}
	ref, ok := src.refs[assetId]
	if !ok {
		return "", fault.MissingAsset
	}
	if _, ok := tgt.assets[assetId]; ok {
		return "", fault.AssetAlreadyHeld
	}

	a := src.assets[assetId]
	newRef := &AssetRef{
		Tag:        ref.Tag,
		Exclusive:  false,
		Principals: make(map[principal.Principal]struct{}),
	}

	srcKey := assetKey(source, assetId)
	tgtKey := assetKey(target, assetId)
	batch := storage.NewBatch()
	batch.Delete(storage.Pool.Assets, srcKey)
	batch.Delete(storage.Pool.AssetRefs, srcKey)
	batch.Put(storage.Pool.Assets, tgtKey, a.Pack())
	batch.Put(storage.Pool.AssetRefs, tgtKey, newRef.pack())
	err = batch.Commit()
	if nil != err {
		return "", err
	}

	delete(src.assets, assetId)
	delete(src.refs, assetId)
	tgt.assets[assetId] = a
	tgt.refs[assetId] = newRef

	req := transfer.NewRequest(assetId, buyer)
	_ = req.AttachMetadata(authorizedByKey, []byte("settlement"))
	err = req.Resolve()
	if nil == err {
		err = req.Finish()
	}
	if nil != err {
		globalData.log.Criticalf("settlement ticket failure: %s", err)
		return "", err
	}

	journal.Record(journal.AssetWithdrawn, srcKey)
	journal.Record(journal.AssetDeposited, tgtKey)
	journal.Record(journal.TransferResolved, assetId.Bytes())
	return ref.Tag, nil
}
