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

// Deposit - place an asset into a vault through the deposit policy
func Deposit(vaultId vaultid.ID, a *asset.Asset) error {
	globalData.Lock()
	defer globalData.Unlock()

	v, err := get(vaultId)
	if nil != err {
		return err
	}
	return depositLocked(v, a, false)
}

// OwnerDeposit - place an asset into a vault bypassing the policy
//
// the owner capability must verify
func OwnerDeposit(vaultId vaultid.ID, token capability.Token, a *asset.Asset) error {
	globalData.Lock()
	defer globalData.Unlock()

	v, err := get(vaultId)
	if nil != err {
		return err
	}
	if !v.ownerAuthorised(&token) {
		return fault.NotAuthorized
	}
	return depositLocked(v, a, true)
}

// Redeposit - re-home a withdrawn asset, resolving its ticket
//
// the policy applies; the ticket must be live and must name the asset
func Redeposit(vaultId vaultid.ID, a *asset.Asset, req *transfer.Request) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == req || nil == a {
		return fault.MissingParameters
	}
	if req.IsResolved() {
		return fault.TransferRequestResolved
	}
	if req.AssetId != a.Id {
		return fault.TypeMismatch
	}

	v, err := get(vaultId)
	if nil != err {
		return err
	}
	err = depositLocked(v, a, false)
	if nil != err {
		return err
	}

	err = req.Resolve()
	if nil != err {
		return err
	}
	journal.Record(journal.TransferResolved, a.Id.Bytes())
	return nil
}

// shared deposit path, lock already held and owner gate already done
func depositLocked(v *Vault, a *asset.Asset, bypassPolicy bool) error {
	if nil == a || 0 == len(a.Payload) {
		return fault.MissingPayload
	}
	err := a.Tag.Validate()
	if nil != err {
		return err
	}
	if asset.NewAssetID(a.Payload) != a.Id {
		return fault.DataInconsistent
	}
	if _, ok := v.assets[a.Id]; ok {
		return fault.AssetAlreadyHeld
	}
	if !bypassPolicy && !depositPermitted(v, a.Tag) {
		return fault.PolicyDenied
	}

	ref := &AssetRef{
		Tag:        a.Tag,
		Exclusive:  false,
		Principals: make(map[principal.Principal]struct{}),
	}

	key := assetKey(v.Id, a.Id)
	batch := storage.NewBatch()
	batch.Put(storage.Pool.Assets, key, a.Pack())
	batch.Put(storage.Pool.AssetRefs, key, ref.pack())
	err = batch.Commit()
	if nil != err {
		return err
	}

	v.assets[a.Id] = a
	v.refs[a.Id] = ref
	globalData.log.Debugf("deposit: vault: %s  asset: %s", v.Id, a.Id)
	journal.Record(journal.AssetDeposited, key)
	return nil
}
